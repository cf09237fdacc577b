package readeck

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseMarkdownFrontmatter splits a markdown export into its YAML
// frontmatter metadata and the remaining content. The metadata block
// must start on the first line with "---" and end on a line containing
// only "---". Parsing never fails: when the block is missing,
// unterminated or not valid YAML, the metadata is nil and the content
// is returned unchanged. An empty block yields a metadata value with
// every field unset.
func ParseMarkdownFrontmatter(text string) (*MarkdownExportMetadata, string) {
	if !strings.HasPrefix(text, "---\n") {
		return nil, text
	}

	lines := strings.Split(text, "\n")
	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			closing = i
			break
		}
	}
	if closing == -1 {
		return nil, text
	}

	var meta MarkdownExportMetadata
	block := strings.Join(lines[1:closing], "\n")
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return nil, text
	}

	content := strings.Join(lines[closing+1:], "\n")
	content = strings.TrimLeft(content, "\n")
	return &meta, content
}
