package models

import (
	"regexp"
	"strings"
)

// URLKind tells which analysis path a URL takes.
type URLKind string

const (
	URLChannel     URLKind = "channel"
	URLVideo       URLKind = "video"
	URLUnsupported URLKind = "unsupported"
)

// URLClass is the result of classifying a URL.
// ID is empty when a marker was found but nothing could be extracted.
type URLClass struct {
	Kind URLKind
	ID   string
}

var channelMarkers = []string{
	"youtube.com/channel/",
	"youtube.com/c/",
	"youtube.com/user/",
	"youtube.com/@",
}

var videoMarkers = []string{
	"youtube.com/watch",
	"youtu.be/",
	"youtube.com/shorts/",
}

// Each pattern captures the segment up to the next '/', '?' or '&'.
var channelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/channel/([^/?&]+)`),
	regexp.MustCompile(`youtube\.com/c/([^/?&]+)`),
	regexp.MustCompile(`youtube\.com/user/([^/?&]+)`),
	regexp.MustCompile(`youtube\.com/@([^/?&]+)`),
}

// Tried in order, first match wins.
var videoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11}).*`),
	regexp.MustCompile(`(?:embed/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`(?:shorts/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`),
}

// markers used by the loose split fallback, in the order they are tried
var fallbackMarkers = []string{
	"youtube.com/c/",
	"youtube.com/@",
	"youtube.com/user/",
}

// ClassifyURL decides whether url points at a channel or a video and extracts its identifier.
// Channel markers win over video markers.
func ClassifyURL(url string) URLClass {
	url = strings.TrimSpace(url)

	if containsAny(url, channelMarkers) {
		id := ExtractChannelID(url)
		if id == "" {
			id = splitChannelRef(url)
		}
		return URLClass{Kind: URLChannel, ID: id}
	}

	if containsAny(url, videoMarkers) {
		return URLClass{Kind: URLVideo, ID: ExtractVideoID(url)}
	}

	return URLClass{Kind: URLUnsupported}
}

// ExtractChannelID returns the channel id, custom name, username or handle in url,
// or "" if no channel pattern matches.
func ExtractChannelID(url string) string {
	return firstSubmatch(channelPatterns, url)
}

// ExtractVideoID returns the 11 character video id in url, or "" if none is found.
func ExtractVideoID(url string) string {
	return firstSubmatch(videoPatterns, url)
}

// splitChannelRef is the looser second pass: it takes the first path segment
// after the last occurrence of a channel marker.
func splitChannelRef(url string) string {
	for _, marker := range fallbackMarkers {
		if !strings.Contains(url, marker) {
			continue
		}
		parts := strings.Split(url, marker)
		rest := parts[len(parts)-1]
		segment, _, _ := strings.Cut(rest, "/")
		return segment
	}
	return ""
}

func firstSubmatch(patterns []*regexp.Regexp, s string) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(s); len(m) == 2 {
			return m[1]
		}
	}
	return ""
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
