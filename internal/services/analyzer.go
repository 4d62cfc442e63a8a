package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rahul4469/youtube-analyzer/internal/metrics"
	"github.com/rahul4469/youtube-analyzer/internal/models"
)

const (
	recentVideosFetched  = 10
	recentVideosReturned = 5
	commentsFetched      = 50

	defaultCallTimeout = 10 * time.Second
	defaultCountry     = "Not specified"
	channelURLPrefix   = "https://www.youtube.com/channel/"
)

// Options tune the analyzer. Zero values fall back to defaults.
type Options struct {
	CallTimeout           time.Duration
	VideoFetchConcurrency int
}

// Analyzer turns YouTube URLs into analysis results.
type Analyzer struct {
	platform VideoPlatform
	opts     Options
	log      zerolog.Logger
}

func NewAnalyzer(platform VideoPlatform, opts Options, log zerolog.Logger) *Analyzer {
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = defaultCallTimeout
	}
	if opts.VideoFetchConcurrency < 1 {
		opts.VideoFetchConcurrency = 1
	}

	return &Analyzer{
		platform: platform,
		opts:     opts,
		log:      log.With().Str("component", "analyzer").Logger(),
	}
}

// Analyze classifies url and runs the matching pipeline.
// It never returns a partially populated result and never panics.
func (a *Analyzer) Analyze(ctx context.Context, url string) (result models.AnalysisResult) {
	url = strings.TrimSpace(url)

	defer func() {
		if r := recover(); r != nil {
			a.log.Error().Interface("panic", r).Str("url", url).Msg("analysis panicked")
			result = models.FailedAnalysis(fmt.Sprintf("Analysis failed: %v", r))
		}
		metrics.Analyses.WithLabelValues(string(result.Type()), strconv.FormatBool(result.Success())).Inc()
	}()

	if url == "" {
		return models.FailedWith(models.ErrEmptyURL)
	}

	class := models.ClassifyURL(url)
	switch class.Kind {
	case models.URLChannel:
		return a.ChannelStats(ctx, class.ID)
	case models.URLVideo:
		return a.VideoStats(ctx, url)
	default:
		return models.FailedWith(models.ErrUnsupportedURL)
	}
}

// ResolveChannel maps a handle, custom name or username to a canonical channel id.
// Canonical ids are returned without a remote call.
func (a *Analyzer) ResolveChannel(ctx context.Context, identifier string) (string, bool) {
	if isCanonicalChannelID(identifier) {
		return identifier, true
	}

	out := fetch(ctx, a.opts.CallTimeout, a.log, "search.list", func(ctx context.Context) (string, error) {
		return a.platform.SearchChannelID(ctx, identifier)
	})
	if !out.OK() {
		return "", false
	}
	return out.Value, true
}

func isCanonicalChannelID(id string) bool {
	return strings.HasPrefix(id, "UC") && len(id) == 24
}

// ChannelStats analyzes a channel and up to ten of its most recent uploads.
func (a *Analyzer) ChannelStats(ctx context.Context, identifier string) models.AnalysisResult {
	if identifier == "" {
		return models.FailedWith(models.ErrChannelNotResolved)
	}

	channelID, ok := a.ResolveChannel(ctx, identifier)
	if !ok {
		return models.FailedWith(models.ErrChannelNotResolved)
	}

	ch := fetch(ctx, a.opts.CallTimeout, a.log, "channels.list", func(ctx context.Context) (*ChannelResource, error) {
		return a.platform.Channel(ctx, channelID)
	})
	if !ch.OK() {
		return models.FailedWith(models.ErrChannelFetch)
	}
	channel := ch.Value

	recent := a.recentVideos(ctx, channel.UploadsPlaylistID)

	country := channel.Country
	if country == "" {
		country = defaultCountry
	}

	return models.NewChannelAnalysis(&models.ChannelResult{
		ChannelID:         channel.ID,
		Title:             channel.Title,
		Description:       channel.Description,
		CustomURL:         channel.CustomURL,
		URL:               channelURLPrefix + channel.ID,
		Keywords:          channel.Keywords,
		Subscribers:       FormatNumber(float64(channel.SubscriberCount)),
		Views:             FormatNumber(float64(channel.ViewCount)),
		Videos:            FormatNumber(float64(channel.VideoCount)),
		Thumbnail:         channel.ThumbnailURL,
		Country:           country,
		PublishedAt:       channel.PublishedAt,
		EngagementMetrics: CalculateChannelEngagement(recent, channel.SubscriberCount),
		RecentVideos:      recent[:min(len(recent), recentVideosReturned)],
		RawData: models.ChannelRawData{
			Subscribers: channel.SubscriberCount,
			Views:       channel.ViewCount,
			Videos:      channel.VideoCount,
		},
	})
}

// recentVideos fetches stats for the newest uploads in playlist order.
// Videos that cannot be fetched are skipped; a failed playlist yields no videos.
func (a *Analyzer) recentVideos(ctx context.Context, playlistID string) []models.VideoSummary {
	ids := fetch(ctx, a.opts.CallTimeout, a.log, "playlistItems.list", func(ctx context.Context) ([]string, error) {
		return a.platform.PlaylistVideoIDs(ctx, playlistID, recentVideosFetched)
	})
	if !ids.OK() {
		return []models.VideoSummary{}
	}

	slots := make([]*models.VideoSummary, len(ids.Value))

	var (
		g         errgroup.Group
		panicOnce sync.Once
		panicked  any
	)
	g.SetLimit(a.opts.VideoFetchConcurrency)
	for i, id := range ids.Value {
		g.Go(func() error {
			// re-raised on the calling goroutine so Analyze can recover it
			defer func() {
				if r := recover(); r != nil {
					panicOnce.Do(func() { panicked = r })
				}
			}()

			out := fetch(ctx, a.opts.CallTimeout, a.log, "videos.list", func(ctx context.Context) (*VideoResource, error) {
				return a.platform.Video(ctx, id, false)
			})
			if out.OK() {
				slots[i] = &models.VideoSummary{
					VideoID:     id,
					Title:       out.Value.Title,
					PublishedAt: out.Value.PublishedAt,
					RawData: models.VideoCounts{
						Views:    out.Value.ViewCount,
						Likes:    out.Value.LikeCount,
						Comments: out.Value.CommentCount,
					},
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	if panicked != nil {
		panic(panicked)
	}

	videos := make([]models.VideoSummary, 0, len(slots))
	for _, v := range slots {
		if v != nil {
			videos = append(videos, *v)
		}
	}
	return videos
}

// VideoStats analyzes a single video and its most relevant comments.
func (a *Analyzer) VideoStats(ctx context.Context, url string) models.AnalysisResult {
	videoID := models.ExtractVideoID(url)
	if videoID == "" {
		return models.FailedWith(models.ErrInvalidVideoURL)
	}

	vo := fetch(ctx, a.opts.CallTimeout, a.log, "videos.list", func(ctx context.Context) (*VideoResource, error) {
		return a.platform.Video(ctx, videoID, true)
	})
	if !vo.OK() {
		return models.FailedWith(models.ErrVideoFetch)
	}
	video := vo.Value

	tags := video.Tags
	if tags == nil {
		tags = []string{}
	}

	return models.NewVideoAnalysis(&models.VideoResult{
		VideoID:           videoID,
		Title:             video.Title,
		Description:       video.Description,
		ChannelTitle:      video.ChannelTitle,
		ChannelID:         video.ChannelID,
		Views:             FormatNumber(float64(video.ViewCount)),
		Likes:             FormatNumber(float64(video.LikeCount)),
		Comments:          FormatNumber(float64(video.CommentCount)),
		Duration:          video.Duration,
		DurationFormatted: FormatDuration(video.Duration),
		PublishedAt:       video.PublishedAt,
		Thumbnail:         video.ThumbnailURL,
		CategoryID:        video.CategoryID,
		Tags:              tags,
		CommentsData:      a.comments(ctx, videoID),
		EngagementMetrics: CalculateVideoEngagement(video.ViewCount, video.LikeCount, video.CommentCount),
		RawData: models.VideoRawData{
			VideoCounts: models.VideoCounts{
				Views:    video.ViewCount,
				Likes:    video.LikeCount,
				Comments: video.CommentCount,
			},
			Duration: video.Duration,
		},
	})
}

// comments degrades to an empty list, which covers videos with comments disabled.
func (a *Analyzer) comments(ctx context.Context, videoID string) []models.Comment {
	out := fetch(ctx, a.opts.CallTimeout, a.log, "commentThreads.list", func(ctx context.Context) ([]CommentResource, error) {
		return a.platform.TopComments(ctx, videoID, commentsFetched)
	})
	if !out.OK() {
		return []models.Comment{}
	}

	comments := make([]models.Comment, 0, len(out.Value))
	for _, c := range out.Value {
		comments = append(comments, models.Comment{
			Author:      c.Author,
			Text:        c.Text,
			Likes:       c.LikeCount,
			PublishedAt: c.PublishedAt,
			Sentiment:   AnalyzeSentiment(c.Text),
		})
	}
	return comments
}
