package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rahul4469/youtube-analyzer/internal/models"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{999.9, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{999_999, "1000.0K"},
		{2_300_000, "2.3M"},
		{1_000_000_000, "1.0B"},
		{12_345_678_901, "12.3B"},
		{math.NaN(), "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in), "FormatNumber(%v)", tt.in)
	}
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "1.5K", FormatCount("1500"))
	assert.Equal(t, "42", FormatCount(" 42 "))
	assert.Equal(t, "0", FormatCount("abc"))
	assert.Equal(t, "0", FormatCount(""))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PT1H2M3S", "1:02:03"},
		{"PT5M9S", "5:09"},
		{"PT45S", "0:45"},
		{"PT2H", "2:00:00"},
		{"PT10M", "10:00"},
		{"PT1H5S", "1:00:05"},
		{"", "0:00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.in))
		})
	}
}

func TestAnalyzeSentiment(t *testing.T) {
	tests := []struct {
		text string
		want models.Sentiment
	}{
		{"This is great and amazing", models.SentimentPositive},
		{"terrible, worst ever", models.SentimentNegative},
		{"it is what it is", models.SentimentNeutral},
		{"good bad", models.SentimentNeutral},
		{"GREAT video", models.SentimentPositive},
		{"bad bad bad but good and nice", models.SentimentPositive},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, AnalyzeSentiment(tt.text))
		})
	}
}
