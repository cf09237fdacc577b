package readeck

import (
	"net/http"
	"strconv"
	"strings"
)

// Pagination headers of list endpoints.
const (
	headerTotalCount  = "Total-Count"
	headerCurrentPage = "Current-Page"
	headerTotalPages  = "Total-Pages"
	headerLink        = "Link"
)

// intHeader parses a numeric header, falling back when it is absent or
// not a number.
func intHeader(h http.Header, key string, fallback int) int {
	v, err := strconv.Atoi(h.Get(key))
	if err != nil {
		return fallback
	}
	return v
}

// parsePagination reads the pagination metadata of a list response.
// Each value falls back independently: the total count to the number of
// items actually returned, the page and page count to 1.
func parsePagination(h http.Header, itemCount int) (totalCount, page, totalPages int) {
	totalCount = intHeader(h, headerTotalCount, itemCount)
	page = intHeader(h, headerCurrentPage, 1)
	totalPages = intHeader(h, headerTotalPages, 1)
	return totalCount, page, totalPages
}

// parseLinkHeader parses an RFC 5988 Link header into a relation-to-URL
// map. Entries look like `<URL>; rel="name"`; a duplicate relation
// overwrites the earlier one. An empty or absent header yields an empty
// map.
func parseLinkHeader(header string) map[string]string {
	links := map[string]string{}
	for _, entry := range strings.Split(header, ",") {
		target, params, ok := strings.Cut(strings.TrimSpace(entry), ";")
		if !ok {
			continue
		}
		target = strings.TrimSpace(target)
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}
		rel := ""
		for _, param := range strings.Split(params, ";") {
			name, value, ok := strings.Cut(strings.TrimSpace(param), "=")
			if ok && strings.TrimSpace(name) == "rel" {
				rel = strings.Trim(strings.TrimSpace(value), `"`)
			}
		}
		if rel == "" {
			continue
		}
		links[rel] = strings.Trim(target, "<>")
	}
	return links
}
