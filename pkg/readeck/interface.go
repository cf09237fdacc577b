package readeck

import (
	"context"
	"time"
)

// ClientInterface defines the interface for the Readeck API client.
type ClientInterface interface {
	GetUserProfile(ctx context.Context) (*UserProfile, error)
	HealthCheck(ctx context.Context) bool
	GetBookmarks(ctx context.Context, params *BookmarkListParams) ([]Bookmark, error)
	GetBookmark(ctx context.Context, id string) (*Bookmark, error)
	CreateBookmark(ctx context.Context, req *BookmarkCreateRequest) (*BookmarkCreateResult, error)
	UpdateBookmark(ctx context.Context, id string, update *BookmarkUpdate) error
	DeleteBookmark(ctx context.Context, id string) error
	GetBookmarkSyncs(ctx context.Context, since *time.Time) ([]BookmarkSyncEvent, error)
	ExportBookmark(ctx context.Context, id string, format ExportFormat) ([]byte, error)
	ExportBookmarkParsed(ctx context.Context, id string) (*MarkdownExportResult, error)
	GetHighlights(ctx context.Context, params *HighlightListParams) (*HighlightListResponse, error)
}

var _ ClientInterface = (*Client)(nil)
