package services

import (
	"fmt"

	"github.com/rahul4469/youtube-analyzer/internal/models"
)

// CalculateVideoEngagement derives like and comment ratios from raw video counts.
func CalculateVideoEngagement(views, likes, comments int64) models.VideoEngagement {
	if views <= 0 {
		return models.VideoEngagement{
			LikeRatio:       percent(0),
			CommentRatio:    percent(0),
			TotalEngagement: percent(0),
			LikesPerView:    "0",
		}
	}

	v := float64(views)
	likeRatio := float64(likes) / v * 100
	commentRatio := float64(comments) / v * 100

	return models.VideoEngagement{
		LikeRatio:       percent(likeRatio),
		CommentRatio:    percent(commentRatio),
		TotalEngagement: percent(likeRatio + commentRatio),
		LikesPerView:    fmt.Sprintf("%.4f", float64(likes)/v),
	}
}

// CalculateChannelEngagement aggregates recent uploads against the subscriber count.
// No videos means no metrics, not an error.
func CalculateChannelEngagement(videos []models.VideoSummary, subscribers int64) models.ChannelEngagement {
	if len(videos) == 0 {
		return models.ChannelEngagement{}
	}

	var views, likes, comments int64
	for _, v := range videos {
		views += v.RawData.Views
		likes += v.RawData.Likes
		comments += v.RawData.Comments
	}

	avgViews := float64(views) / float64(len(videos))
	rate := float64(likes+comments) / float64(max(subscribers, 1)) * 100

	return models.ChannelEngagement{
		AvgViewsPerVideo:    FormatNumber(avgViews),
		EngagementRate:      percent(rate),
		TotalRecentViews:    FormatNumber(float64(views)),
		TotalRecentLikes:    FormatNumber(float64(likes)),
		TotalRecentComments: FormatNumber(float64(comments)),
	}
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
