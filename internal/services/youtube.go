package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/rahul4469/youtube-analyzer/internal/models"
)

// VideoPlatform is the subset of the YouTube Data API the analyzer needs.
// List calls that succeed with zero items return models.ErrNoItems.
type VideoPlatform interface {
	SearchChannelID(ctx context.Context, query string) (string, error)
	Channel(ctx context.Context, id string) (*ChannelResource, error)
	PlaylistVideoIDs(ctx context.Context, playlistID string, maxResults int64) ([]string, error)
	Video(ctx context.Context, id string, withContentDetails bool) (*VideoResource, error)
	TopComments(ctx context.Context, videoID string, maxResults int64) ([]CommentResource, error)
}

// ChannelResource is the part of a channels.list item used for analysis.
type ChannelResource struct {
	ID                string
	Title             string
	Description       string
	CustomURL         string
	Country           string
	PublishedAt       string
	ThumbnailURL      string
	Keywords          string
	UploadsPlaylistID string
	SubscriberCount   int64
	ViewCount         int64
	VideoCount        int64
}

// VideoResource is the part of a videos.list item used for analysis.
// Duration is only set when content details were requested.
type VideoResource struct {
	ID           string
	Title        string
	Description  string
	ChannelID    string
	ChannelTitle string
	PublishedAt  string
	ThumbnailURL string
	CategoryID   string
	Tags         []string
	Duration     string
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
}

// CommentResource is a top level comment of a comment thread.
type CommentResource struct {
	Author      string
	Text        string
	LikeCount   int64
	PublishedAt string
}

// YouTubeConfig configures the API client.
// OAuthToken, when set, is used instead of APIKey.
type YouTubeConfig struct {
	APIKey     string
	OAuthToken string
	BaseURL    string
	HTTPClient *http.Client
}

// YouTubeClient talks to the YouTube Data API v3. It is safe for concurrent use.
type YouTubeClient struct {
	service *youtube.Service
}

func NewYouTubeClient(ctx context.Context, cfg YouTubeConfig) (*YouTubeClient, error) {
	var opts []option.ClientOption

	if cfg.OAuthToken != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.OAuthToken})
		opts = append(opts, option.WithTokenSource(ts))
	} else {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	return &YouTubeClient{service: service}, nil
}

// SearchChannelID returns the id of the best matching channel for query.
func (c *YouTubeClient) SearchChannelID(ctx context.Context, query string) (string, error) {
	resp, err := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", apiError("search.list", err)
	}

	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil || resp.Items[0].Snippet.ChannelId == "" {
		return "", models.ErrNoItems
	}

	return resp.Items[0].Snippet.ChannelId, nil
}

func (c *YouTubeClient) Channel(ctx context.Context, id string) (*ChannelResource, error) {
	resp, err := c.service.Channels.List([]string{"statistics", "snippet", "brandingSettings", "contentDetails"}).
		Id(id).
		Context(ctx).
		Do()
	if err != nil {
		return nil, apiError("channels.list", err)
	}
	if len(resp.Items) == 0 {
		return nil, models.ErrNoItems
	}

	ch := resp.Items[0]
	if ch.Snippet == nil || ch.Statistics == nil ||
		ch.ContentDetails == nil || ch.ContentDetails.RelatedPlaylists == nil ||
		ch.ContentDetails.RelatedPlaylists.Uploads == "" {
		return nil, fmt.Errorf("channel %s: %w", id, models.ErrMalformedResource)
	}

	res := &ChannelResource{
		ID:                ch.Id,
		Title:             ch.Snippet.Title,
		Description:       ch.Snippet.Description,
		CustomURL:         ch.Snippet.CustomUrl,
		Country:           ch.Snippet.Country,
		PublishedAt:       ch.Snippet.PublishedAt,
		ThumbnailURL:      highThumbnail(ch.Snippet.Thumbnails),
		UploadsPlaylistID: ch.ContentDetails.RelatedPlaylists.Uploads,
		SubscriberCount:   int64(ch.Statistics.SubscriberCount),
		ViewCount:         int64(ch.Statistics.ViewCount),
		VideoCount:        int64(ch.Statistics.VideoCount),
	}
	if ch.BrandingSettings != nil && ch.BrandingSettings.Channel != nil {
		res.Keywords = ch.BrandingSettings.Channel.Keywords
	}
	if res.ID == "" {
		res.ID = id
	}

	return res, nil
}

// PlaylistVideoIDs lists video ids of a playlist in playlist order.
func (c *YouTubeClient) PlaylistVideoIDs(ctx context.Context, playlistID string, maxResults int64) ([]string, error) {
	resp, err := c.service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, apiError("playlistItems.list", err)
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ContentDetails == nil || item.ContentDetails.VideoId == "" {
			continue
		}
		ids = append(ids, item.ContentDetails.VideoId)
	}
	if len(ids) == 0 {
		return nil, models.ErrNoItems
	}

	return ids, nil
}

func (c *YouTubeClient) Video(ctx context.Context, id string, withContentDetails bool) (*VideoResource, error) {
	parts := []string{"statistics", "snippet"}
	if withContentDetails {
		parts = append(parts, "contentDetails")
	}

	resp, err := c.service.Videos.List(parts).Id(id).Context(ctx).Do()
	if err != nil {
		return nil, apiError("videos.list", err)
	}
	if len(resp.Items) == 0 {
		return nil, models.ErrNoItems
	}

	v := resp.Items[0]
	if v.Snippet == nil || v.Statistics == nil {
		return nil, fmt.Errorf("video %s: %w", id, models.ErrMalformedResource)
	}
	if withContentDetails && v.ContentDetails == nil {
		return nil, fmt.Errorf("video %s content details: %w", id, models.ErrMalformedResource)
	}

	res := &VideoResource{
		ID:           id,
		Title:        v.Snippet.Title,
		Description:  v.Snippet.Description,
		ChannelID:    v.Snippet.ChannelId,
		ChannelTitle: v.Snippet.ChannelTitle,
		PublishedAt:  v.Snippet.PublishedAt,
		ThumbnailURL: highThumbnail(v.Snippet.Thumbnails),
		CategoryID:   v.Snippet.CategoryId,
		Tags:         v.Snippet.Tags,
		ViewCount:    int64(v.Statistics.ViewCount),
		LikeCount:    int64(v.Statistics.LikeCount),
		CommentCount: int64(v.Statistics.CommentCount),
	}
	if v.ContentDetails != nil {
		res.Duration = v.ContentDetails.Duration
	}

	return res, nil
}

// TopComments returns top level comments ordered by relevance.
// A video without comments yields an empty slice, not an error.
func (c *YouTubeClient) TopComments(ctx context.Context, videoID string, maxResults int64) ([]CommentResource, error) {
	resp, err := c.service.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).
		Order("relevance").
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, apiError("commentThreads.list", err)
	}

	comments := make([]CommentResource, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil || item.Snippet.TopLevelComment == nil || item.Snippet.TopLevelComment.Snippet == nil {
			continue
		}
		s := item.Snippet.TopLevelComment.Snippet
		comments = append(comments, CommentResource{
			Author:      s.AuthorDisplayName,
			Text:        s.TextDisplay,
			LikeCount:   int64(s.LikeCount),
			PublishedAt: s.PublishedAt,
		})
	}

	return comments, nil
}

func highThumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil || t.High == nil {
		return ""
	}
	return t.High.Url
}

// apiError keeps the HTTP status and API message of a failed call readable in logs.
func apiError(op string, err error) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		switch gErr.Code {
		case http.StatusBadRequest:
			return fmt.Errorf("youtube %s: bad request, check YOUTUBE_API_KEY (%s): %w", op, gErr.Message, err)
		case http.StatusForbidden:
			return fmt.Errorf("youtube %s: quota exceeded or access forbidden (%s): %w", op, gErr.Message, err)
		case http.StatusNotFound:
			return fmt.Errorf("youtube %s: not found: %w", op, err)
		default:
			return fmt.Errorf("youtube %s: API error %d: %w", op, gErr.Code, err)
		}
	}
	return fmt.Errorf("youtube %s: %w", op, err)
}
