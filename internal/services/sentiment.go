package services

import (
	"strings"

	"github.com/rahul4469/youtube-analyzer/internal/models"
)

var positiveWords = []string{"great", "awesome", "amazing", "love", "good", "excellent", "perfect", "nice", "wonderful"}

var negativeWords = []string{"bad", "terrible", "awful", "hate", "worst", "horrible", "dislike", "poor"}

// AnalyzeSentiment tags text by counting which keywords occur in it.
// Each keyword counts once no matter how often it appears; ties are neutral.
func AnalyzeSentiment(text string) models.Sentiment {
	lower := strings.ToLower(text)
	positive := countKeywords(lower, positiveWords)
	negative := countKeywords(lower, negativeWords)

	switch {
	case positive > negative:
		return models.SentimentPositive
	case negative > positive:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func countKeywords(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}
