package readeck

import (
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate checks wire payloads after decoding. Required tags mirror the
// fields the API always sends; everything else keeps its zero value when
// absent from the payload.
var validate = validator.New()

// EmailSettings holds the user's email delivery addresses.
type EmailSettings struct {
	ReplyTo string `json:"reply_to"`
	EpubTo  string `json:"epub_to"`
}

// ReaderSettings holds the user's reader display configuration.
type ReaderSettings struct {
	Font        string `json:"font" validate:"required"`
	FontSize    int    `json:"font_size" validate:"required"`
	LineHeight  int    `json:"line_height" validate:"required"`
	Width       int    `json:"width"`
	Justify     int    `json:"justify"`
	Hyphenation int    `json:"hyphenation"`
}

// UserSettings holds user preferences. Lang defaults to "en-US" and
// AddonReminder to true when the payload omits them.
type UserSettings struct {
	DebugInfo      bool           `json:"debug_info"`
	ReaderSettings ReaderSettings `json:"reader_settings"`
	Lang           string         `json:"lang"`
	AddonReminder  bool           `json:"addon_reminder"`
	EmailSettings  EmailSettings  `json:"email_settings"`
}

func (s *UserSettings) UnmarshalJSON(data []byte) error {
	type settings UserSettings
	v := settings{Lang: "en-US", AddonReminder: true}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = UserSettings(v)
	return nil
}

// User holds account information.
type User struct {
	Created  time.Time    `json:"created" validate:"required"`
	Email    string       `json:"email" validate:"required"`
	Updated  time.Time    `json:"updated" validate:"required"`
	Username string       `json:"username" validate:"required"`
	Settings UserSettings `json:"settings"`
}

// Provider describes the authentication provider of the current session.
type Provider struct {
	Application string   `json:"application"`
	ID          string   `json:"id"`
	Name        string   `json:"name" validate:"required"`
	Permissions []string `json:"permissions" validate:"required"`
	Roles       []string `json:"roles" validate:"required"`
}

// UserProfile is the response of the profile endpoint.
type UserProfile struct {
	Provider Provider `json:"provider"`
	User     User     `json:"user"`
}

// BookmarkLink is a link found inside a bookmark's content.
type BookmarkLink struct {
	ContentType string `json:"content_type" validate:"required"`
	Domain      string `json:"domain" validate:"required"`
	IsPage      bool   `json:"is_page"`
	Title       string `json:"title" validate:"required"`
	URL         string `json:"url" validate:"required"`
}

// BookmarkResource is a file attached to a bookmark.
type BookmarkResource struct {
	Src    string `json:"src" validate:"required"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// BookmarkResources groups the resources of a bookmark. Every entry is
// optional.
type BookmarkResources struct {
	Article   *BookmarkResource `json:"article,omitempty"`
	Icon      *BookmarkResource `json:"icon,omitempty"`
	Image     *BookmarkResource `json:"image,omitempty"`
	Log       *BookmarkResource `json:"log,omitempty"`
	Props     *BookmarkResource `json:"props,omitempty"`
	Thumbnail *BookmarkResource `json:"thumbnail,omitempty"`
}

// Bookmark is a saved page. Boolean flags and counters default to their
// zero values when absent from the payload; TextDirection defaults to
// "ltr".
type Bookmark struct {
	ID            string   `json:"id" validate:"required"`
	Href          string   `json:"href" validate:"required"`
	URL           string   `json:"url" validate:"required"`
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description"`
	Site          string   `json:"site"`
	SiteName      string   `json:"site_name"`
	Authors       []string `json:"authors"`
	Type          string   `json:"type" validate:"required"`
	DocumentType  string   `json:"document_type"`
	Lang          string   `json:"lang"`
	TextDirection string   `json:"text_direction"`

	Loaded     bool `json:"loaded"`
	HasArticle bool `json:"has_article"`
	IsArchived bool `json:"is_archived"`
	IsDeleted  bool `json:"is_deleted"`
	IsMarked   bool `json:"is_marked"`

	WordCount    int     `json:"word_count"`
	ReadingTime  int     `json:"reading_time"`
	ReadProgress float64 `json:"read_progress" validate:"min=0,max=1"`
	State        int     `json:"state"`

	Labels []string `json:"labels"`

	Created   time.Time  `json:"created" validate:"required"`
	Updated   time.Time  `json:"updated" validate:"required"`
	Published *time.Time `json:"published,omitempty"`

	Resources  *BookmarkResources `json:"resources,omitempty"`
	Links      []BookmarkLink     `json:"links,omitempty" validate:"dive"`
	ReadAnchor string             `json:"read_anchor,omitempty"`
}

func (b *Bookmark) UnmarshalJSON(data []byte) error {
	type bookmark Bookmark
	v := bookmark{TextDirection: "ltr"}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = Bookmark(v)
	return nil
}

// BookmarkSyncEvent is a change record from the bookmark sync endpoint.
// Type is either "update" or "delete".
type BookmarkSyncEvent struct {
	ID   string    `json:"id" validate:"required"`
	Time time.Time `json:"time"`
	Type string    `json:"type" validate:"required,oneof=update delete"`
}

// BookmarkListParams are the optional filters of the bookmark list
// endpoint. The zero value selects nothing.
type BookmarkListParams struct {
	Limit        *int
	Offset       *int
	Sort         []string
	Search       string
	Title        string
	Author       string
	Site         string
	Type         []string
	Labels       string
	IsLoaded     *bool
	HasErrors    *bool
	HasLabels    *bool
	IsMarked     *bool
	IsArchived   *bool
	RangeStart   string
	RangeEnd     string
	ReadStatus   []string
	UpdatedSince *time.Time
	ID           string
	Collection   string
}

// ToQueryParams converts the set filters to query parameters. Unset
// fields are omitted, list filters repeat their key per value, booleans
// encode as literal true/false and datetimes as RFC 3339.
func (p *BookmarkListParams) ToQueryParams() url.Values {
	q := url.Values{}
	if p == nil {
		return q
	}

	setInt := func(key string, v *int) {
		if v != nil {
			q.Set(key, strconv.Itoa(*v))
		}
	}
	setBool := func(key string, v *bool) {
		if v != nil {
			q.Set(key, strconv.FormatBool(*v))
		}
	}
	setString := func(key, v string) {
		if v != "" {
			q.Set(key, v)
		}
	}
	setList := func(key string, vs []string) {
		for _, v := range vs {
			q.Add(key, v)
		}
	}

	setInt("limit", p.Limit)
	setInt("offset", p.Offset)
	setList("sort", p.Sort)
	setString("search", p.Search)
	setString("title", p.Title)
	setString("author", p.Author)
	setString("site", p.Site)
	setList("type", p.Type)
	setString("labels", p.Labels)
	setBool("is_loaded", p.IsLoaded)
	setBool("has_errors", p.HasErrors)
	setBool("has_labels", p.HasLabels)
	setBool("is_marked", p.IsMarked)
	setBool("is_archived", p.IsArchived)
	setString("range_start", p.RangeStart)
	setString("range_end", p.RangeEnd)
	setList("read_status", p.ReadStatus)
	if p.UpdatedSince != nil {
		q.Set("updated_since", p.UpdatedSince.Format(time.RFC3339))
	}
	setString("id", p.ID)
	setString("collection", p.Collection)

	return q
}

// BookmarkCreateRequest is the payload of the create endpoint. Title is
// omitted when empty; Labels is always sent, as an empty array when no
// label is given.
type BookmarkCreateRequest struct {
	URL    string   `json:"url" validate:"required"`
	Title  string   `json:"title,omitempty"`
	Labels []string `json:"labels"`
}

// BookmarkCreateResponse is the body returned by the create endpoint.
type BookmarkCreateResponse struct {
	Message string `json:"message" validate:"required"`
	Status  int    `json:"status"`
}

// BookmarkCreateResult wraps the create response together with the two
// values the server returns as headers. Both are empty when the server
// does not send them.
type BookmarkCreateResult struct {
	Response   BookmarkCreateResponse
	BookmarkID string
	Location   string
}

// BookmarkUpdate is a partial update payload. Only set fields are sent.
type BookmarkUpdate struct {
	Title        *string  `json:"title,omitempty"`
	IsArchived   *bool    `json:"is_archived,omitempty"`
	IsMarked     *bool    `json:"is_marked,omitempty"`
	IsDeleted    *bool    `json:"is_deleted,omitempty"`
	ReadProgress *float64 `json:"read_progress,omitempty"`
	ReadAnchor   *string  `json:"read_anchor,omitempty"`
	Labels       []string `json:"labels,omitempty"`
	AddLabels    []string `json:"add_labels,omitempty"`
	RemoveLabels []string `json:"remove_labels,omitempty"`
}

// Highlight is an annotation on a bookmark. Updated is nil when the API
// omits it.
type Highlight struct {
	ID               string     `json:"id" validate:"required"`
	Href             string     `json:"href" validate:"required"`
	BookmarkID       string     `json:"bookmark_id" validate:"required"`
	BookmarkHref     string     `json:"bookmark_href" validate:"required"`
	BookmarkTitle    string     `json:"bookmark_title" validate:"required"`
	BookmarkURL      string     `json:"bookmark_url" validate:"required"`
	BookmarkSiteName string     `json:"bookmark_site_name"`
	Text             string     `json:"text" validate:"required"`
	Created          time.Time  `json:"created" validate:"required"`
	Updated          *time.Time `json:"updated,omitempty"`
}

// HighlightListParams are the pagination parameters of the highlight
// list endpoint.
type HighlightListParams struct {
	Limit  *int
	Offset *int
}

// ToQueryParams converts the set parameters to query parameters.
func (p *HighlightListParams) ToQueryParams() url.Values {
	q := url.Values{}
	if p == nil {
		return q
	}
	if p.Limit != nil {
		q.Set("limit", strconv.Itoa(*p.Limit))
	}
	if p.Offset != nil {
		q.Set("offset", strconv.Itoa(*p.Offset))
	}
	return q
}

// HighlightListResponse is a page of highlights with the pagination
// metadata derived from the response headers.
type HighlightListResponse struct {
	Items      []Highlight
	TotalCount int
	Page       int
	TotalPages int
	Links      map[string]string
}

// MarkdownExportMetadata is the YAML frontmatter of a markdown export.
// Every field is optional.
type MarkdownExportMetadata struct {
	Title     string   `yaml:"title" json:"title,omitempty"`
	Saved     string   `yaml:"saved" json:"saved,omitempty"`
	Published string   `yaml:"published" json:"published,omitempty"`
	Website   string   `yaml:"website" json:"website,omitempty"`
	Source    string   `yaml:"source" json:"source,omitempty"`
	Authors   []string `yaml:"authors" json:"authors,omitempty"`
	Labels    []string `yaml:"labels" json:"labels,omitempty"`
}

// MarkdownExportResult is a markdown export split into frontmatter
// metadata and content. Metadata is nil when the export carries no
// parsable frontmatter; RawContent is always the verbatim export.
type MarkdownExportResult struct {
	Metadata   *MarkdownExportMetadata
	Content    string
	RawContent string
}
