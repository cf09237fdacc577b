package readeck

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultUserAgent   = "goreadeck/0.1.0"
)

// ExportFormat selects the representation of a bookmark export.
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "md"
	ExportFormatEPUB     ExportFormat = "epub"
)

// Client is a Readeck API client. It is safe for concurrent use to the
// extent the underlying http.Client is: the client itself holds no
// mutable state after construction.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	headers    http.Header
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent replaces the default User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.headers.Set("User-Agent", ua)
	}
}

// WithHeader sets an extra default header, overriding the built-in one
// of the same name.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// NewClient creates a client for the Readeck instance at baseURL,
// authenticating every request with the given bearer token. A single
// trailing slash on baseURL is ignored.
func NewClient(baseURL, token string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	headers := http.Header{}
	headers.Set("Accept", "application/json")
	headers.Set("Authorization", "Bearer "+token)
	headers.Set("User-Agent", defaultUserAgent)

	c := &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		headers:    headers,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close releases the transport's idle connections. The client must not
// be used afterwards.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// buildURL joins an endpoint under the api/ path segment. A single
// leading slash on the endpoint is ignored so callers can pass either
// form.
func (c *Client) buildURL(endpoint string) string {
	return c.baseURL + "/api/" + strings.TrimPrefix(endpoint, "/")
}

// apiResponse is a classified successful response.
type apiResponse struct {
	status int
	body   []byte
	header http.Header
}

// do performs one request and classifies the outcome. Extra headers are
// merged over the client defaults. Any 2xx status is a success; every
// other status maps to the error taxonomy.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, payload any, headers map[string]string) (*apiResponse, error) {
	reqURL := c.buildURL(endpoint)
	if enc := query.Encode(); enc != "" {
		reqURL += "?" + enc
	}

	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, newError("Failed to encode request body: %v", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, newError("Request error: %v", err)
	}
	req.Header = c.headers.Clone()
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, newError("Request timeout: %v", err)
		}
		return nil, newError("Request error: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError("Request error: %v", err)
	}

	if err := classify(resp.StatusCode, body); err != nil {
		return nil, err
	}
	return &apiResponse{status: resp.StatusCode, body: body, header: resp.Header}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// classify maps a response status to the error taxonomy. The order
// matters: auth statuses win over everything, then not-found, then
// validation, then server errors; any other non-2xx status becomes a
// generic error carrying the raw body.
func classify(status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized:
		return &AuthError{APIError{Message: "Authentication failed. Please check your token.", StatusCode: status}}
	case status == http.StatusForbidden:
		return &AuthError{APIError{Message: "Access forbidden. Insufficient permissions.", StatusCode: status}}
	case status == http.StatusNotFound:
		return &NotFoundError{APIError{Message: "Resource not found.", StatusCode: status}}
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		// Structured detail is best effort; an unparsable body is not
		// an error here.
		var detail map[string]any
		_ = json.Unmarshal(body, &detail)
		return &ValidationError{APIError{
			Message:      fmt.Sprintf("Validation error: %s", body),
			StatusCode:   status,
			ResponseData: detail,
		}}
	case status >= 500 && status < 600:
		return &ServerError{APIError{Message: fmt.Sprintf("Server error: %s", body), StatusCode: status}}
	case status < 200 || status >= 300:
		return newStatusError(status, "HTTP %d: %s", status, body)
	}
	return nil
}

// GetUserProfile fetches the profile of the authenticated user.
func (c *Client) GetUserProfile(ctx context.Context) (*UserProfile, error) {
	resp, err := c.do(ctx, http.MethodGet, "profile", nil, nil, nil)
	if err != nil {
		return nil, err
	}

	var profile UserProfile
	if err := json.Unmarshal(resp.body, &profile); err != nil {
		return nil, newError("Failed to parse JSON response: %v", err)
	}
	if err := validate.Struct(&profile); err != nil {
		return nil, newError("Failed to parse user profile response: %v", err)
	}
	return &profile, nil
}

// HealthCheck reports whether the instance is reachable with the
// configured credentials.
func (c *Client) HealthCheck(ctx context.Context) bool {
	_, err := c.GetUserProfile(ctx)
	return err == nil
}

// GetBookmarks fetches bookmarks matching the given filters. The
// response must be a JSON array; anything else is an error.
func (c *Client) GetBookmarks(ctx context.Context, params *BookmarkListParams) ([]Bookmark, error) {
	resp, err := c.do(ctx, http.MethodGet, "bookmarks", params.ToQueryParams(), nil, nil)
	if err != nil {
		return nil, err
	}

	if !isJSONArray(resp.body) {
		return nil, newError("Unexpected response format: expected a list of bookmarks")
	}
	var bookmarks []Bookmark
	if err := json.Unmarshal(resp.body, &bookmarks); err != nil {
		return nil, newError("Failed to parse JSON response: %v", err)
	}
	for i := range bookmarks {
		if err := validate.Struct(&bookmarks[i]); err != nil {
			return nil, newError("Failed to parse bookmark response: %v", err)
		}
	}
	return bookmarks, nil
}

// GetBookmark fetches a single bookmark by ID.
func (c *Client) GetBookmark(ctx context.Context, id string) (*Bookmark, error) {
	resp, err := c.do(ctx, http.MethodGet, "bookmarks/"+id, nil, nil, nil)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil, &NotFoundError{APIError{Message: fmt.Sprintf("Bookmark with ID %q not found.", id), StatusCode: nf.StatusCode}}
		}
		return nil, err
	}

	var bookmark Bookmark
	if err := json.Unmarshal(resp.body, &bookmark); err != nil {
		return nil, newError("Failed to parse JSON response: %v", err)
	}
	if err := validate.Struct(&bookmark); err != nil {
		return nil, newError("Failed to parse bookmark response: %v", err)
	}
	return &bookmark, nil
}

// CreateBookmark submits a URL for bookmarking. The server accepts the
// bookmark asynchronously with a 202; the new bookmark's ID and
// location come back as headers and are empty when the server does not
// send them.
func (c *Client) CreateBookmark(ctx context.Context, req *BookmarkCreateRequest) (*BookmarkCreateResult, error) {
	payload := *req
	if payload.Labels == nil {
		payload.Labels = []string{}
	}

	resp, err := c.do(ctx, http.MethodPost, "bookmarks", nil, &payload, nil)
	if err != nil {
		return nil, err
	}

	var body BookmarkCreateResponse
	if err := json.Unmarshal(resp.body, &body); err != nil {
		return nil, newError("Failed to parse JSON response: %v", err)
	}
	return &BookmarkCreateResult{
		Response:   body,
		BookmarkID: resp.header.Get("Bookmark-Id"),
		Location:   resp.header.Get("Location"),
	}, nil
}

// UpdateBookmark applies a partial update to a bookmark.
func (c *Client) UpdateBookmark(ctx context.Context, id string, update *BookmarkUpdate) error {
	_, err := c.do(ctx, http.MethodPatch, "bookmarks/"+id, nil, update, nil)
	return err
}

// DeleteBookmark removes a bookmark.
func (c *Client) DeleteBookmark(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "bookmarks/"+id, nil, nil, nil)
	return err
}

// GetBookmarkSyncs fetches bookmark change events, optionally limited
// to changes after the given time.
func (c *Client) GetBookmarkSyncs(ctx context.Context, since *time.Time) ([]BookmarkSyncEvent, error) {
	query := url.Values{}
	if since != nil {
		query.Set("since", strconv.FormatInt(since.Unix(), 10))
	}

	resp, err := c.do(ctx, http.MethodGet, "bookmarks/sync", query, nil, nil)
	if err != nil {
		return nil, err
	}

	if !isJSONArray(resp.body) {
		return nil, newError("Unexpected response format: expected a list of sync events")
	}
	var events []BookmarkSyncEvent
	if err := json.Unmarshal(resp.body, &events); err != nil {
		return nil, newError("Failed to parse JSON response: %v", err)
	}
	return events, nil
}

// ExportBookmark fetches a bookmark's article in the given format. The
// format is checked before any network call: markdown exports negotiate
// text/markdown, EPUB exports application/epub+zip.
func (c *Client) ExportBookmark(ctx context.Context, id string, format ExportFormat) ([]byte, error) {
	var accept string
	switch format {
	case ExportFormatMarkdown:
		accept = "text/markdown"
	case ExportFormatEPUB:
		accept = "application/epub+zip"
	default:
		return nil, &ValidationError{APIError{Message: fmt.Sprintf("Invalid format %q. Allowed formats: md, epub", string(format))}}
	}

	endpoint := fmt.Sprintf("bookmarks/%s/article.%s", id, format)
	resp, err := c.do(ctx, http.MethodGet, endpoint, nil, nil, map[string]string{"Accept": accept})
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil, &NotFoundError{APIError{Message: fmt.Sprintf("Bookmark with ID %q not found.", id), StatusCode: nf.StatusCode}}
		}
		return nil, err
	}
	return resp.body, nil
}

// ExportBookmarkParsed fetches a bookmark's markdown export and splits
// it into frontmatter metadata and content.
func (c *Client) ExportBookmarkParsed(ctx context.Context, id string) (*MarkdownExportResult, error) {
	raw, err := c.ExportBookmark(ctx, id, ExportFormatMarkdown)
	if err != nil {
		return nil, err
	}

	metadata, content := ParseMarkdownFrontmatter(string(raw))
	return &MarkdownExportResult{
		Metadata:   metadata,
		Content:    content,
		RawContent: string(raw),
	}, nil
}

// GetHighlights fetches highlights across all bookmarks. Pagination
// metadata comes from the response headers; a missing header falls back
// per field rather than failing the call.
func (c *Client) GetHighlights(ctx context.Context, params *HighlightListParams) (*HighlightListResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, "bookmarks/annotations", params.ToQueryParams(), nil, nil)
	if err != nil {
		return nil, err
	}

	if !isJSONArray(resp.body) {
		return nil, newError("Unexpected response format: expected a list of highlights")
	}
	var items []Highlight
	if err := json.Unmarshal(resp.body, &items); err != nil {
		return nil, newError("Failed to parse JSON response: %v", err)
	}
	for i := range items {
		if err := validate.Struct(&items[i]); err != nil {
			return nil, newError("Failed to parse highlight response: %v", err)
		}
	}

	totalCount, page, totalPages := parsePagination(resp.header, len(items))
	return &HighlightListResponse{
		Items:      items,
		TotalCount: totalCount,
		Page:       page,
		TotalPages: totalPages,
		Links:      parseLinkHeader(resp.header.Get(headerLink)),
	}, nil
}

// isJSONArray reports whether a JSON document's top-level value is an
// array.
func isJSONArray(body []byte) bool {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
