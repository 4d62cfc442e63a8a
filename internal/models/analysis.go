package models

import (
	"encoding/json"
)

type ResultType string

const (
	ResultChannel ResultType = "channel"
	ResultVideo   ResultType = "video"
)

// ChannelRawData holds the unformatted channel counters.
type ChannelRawData struct {
	Subscribers int64 `json:"subscribers"`
	Views       int64 `json:"views"`
	Videos      int64 `json:"videos"`
}

// ChannelEngagement is derived from a channel's recent uploads.
// The zero value marshals to an empty object.
type ChannelEngagement struct {
	AvgViewsPerVideo    string `json:"avg_views_per_video,omitempty"`
	EngagementRate      string `json:"engagement_rate,omitempty"`
	TotalRecentViews    string `json:"total_recent_views,omitempty"`
	TotalRecentLikes    string `json:"total_recent_likes,omitempty"`
	TotalRecentComments string `json:"total_recent_comments,omitempty"`
}

type ChannelResult struct {
	ChannelID         string            `json:"channel_id"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	CustomURL         string            `json:"custom_url"`
	URL               string            `json:"url"`
	Keywords          string            `json:"keywords"`
	Subscribers       string            `json:"subscribers"`
	Views             string            `json:"views"`
	Videos            string            `json:"videos"`
	Thumbnail         string            `json:"thumbnail"`
	Country           string            `json:"country"`
	PublishedAt       string            `json:"published_at"`
	EngagementMetrics ChannelEngagement `json:"engagement_metrics"`
	RecentVideos      []VideoSummary    `json:"recent_videos"`
	RawData           ChannelRawData    `json:"raw_data"`
}

type VideoCounts struct {
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
}

// VideoSummary is a recent upload, used as input for channel engagement.
type VideoSummary struct {
	VideoID     string      `json:"video_id"`
	Title       string      `json:"title"`
	PublishedAt string      `json:"published_at"`
	RawData     VideoCounts `json:"raw_data"`
}

type VideoRawData struct {
	VideoCounts
	Duration string `json:"duration"`
}

// VideoEngagement ratios are relative to views.
type VideoEngagement struct {
	LikeRatio       string `json:"like_ratio"`
	CommentRatio    string `json:"comment_ratio"`
	TotalEngagement string `json:"total_engagement"`
	LikesPerView    string `json:"likes_per_view"`
}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

type Comment struct {
	Author      string    `json:"author"`
	Text        string    `json:"text"`
	Likes       int64     `json:"likes"`
	PublishedAt string    `json:"published_at"`
	Sentiment   Sentiment `json:"sentiment"`
}

type VideoResult struct {
	VideoID           string          `json:"video_id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	ChannelTitle      string          `json:"channel_title"`
	ChannelID         string          `json:"channel_id"`
	Views             string          `json:"views"`
	Likes             string          `json:"likes"`
	Comments          string          `json:"comments"`
	Duration          string          `json:"duration"`
	DurationFormatted string          `json:"duration_formatted"`
	PublishedAt       string          `json:"published_at"`
	Thumbnail         string          `json:"thumbnail"`
	CategoryID        string          `json:"category_id"`
	Tags              []string        `json:"tags"`
	CommentsData      []Comment       `json:"comments_data"`
	EngagementMetrics VideoEngagement `json:"engagement_metrics"`
	RawData           VideoRawData    `json:"raw_data"`
}

// AnalysisResult is either a channel result, a video result or a failure.
// Use the constructors; the zero value is a failure without a message.
type AnalysisResult struct {
	channel *ChannelResult
	video   *VideoResult
	err     string
}

func NewChannelAnalysis(c *ChannelResult) AnalysisResult {
	return AnalysisResult{channel: c}
}

func NewVideoAnalysis(v *VideoResult) AnalysisResult {
	return AnalysisResult{video: v}
}

// FailedAnalysis builds a failure carrying only msg.
func FailedAnalysis(msg string) AnalysisResult {
	return AnalysisResult{err: msg}
}

// FailedWith builds a failure from one of the user-visible errors.
func FailedWith(err error) AnalysisResult {
	return FailedAnalysis(err.Error())
}

func (r AnalysisResult) Success() bool {
	return r.channel != nil || r.video != nil
}

// ErrorMessage is empty for successful results.
func (r AnalysisResult) ErrorMessage() string {
	return r.err
}

// Type returns "" for failures.
func (r AnalysisResult) Type() ResultType {
	switch {
	case r.channel != nil:
		return ResultChannel
	case r.video != nil:
		return ResultVideo
	default:
		return ""
	}
}

func (r AnalysisResult) Channel() *ChannelResult { return r.channel }

func (r AnalysisResult) Video() *VideoResult { return r.video }

// MarshalJSON flattens the active variant next to "success" and "type".
func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	switch {
	case r.channel != nil:
		return json.Marshal(struct {
			Success bool       `json:"success"`
			Type    ResultType `json:"type"`
			*ChannelResult
		}{true, ResultChannel, r.channel})
	case r.video != nil:
		return json.Marshal(struct {
			Success bool       `json:"success"`
			Type    ResultType `json:"type"`
			*VideoResult
		}{true, ResultVideo, r.video})
	default:
		return json.Marshal(struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}{false, r.err})
	}
}
