package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahul4469/youtube-analyzer/internal/models"
)

// fakeYouTubeAPI maps a resource path suffix such as "/videos" to a canned JSON body.
// Unknown paths answer 404.
type fakeYouTubeAPI struct {
	bodies map[string]string
	status map[string]int

	mu       sync.Mutex
	requests []*http.Request
}

func (f *fakeYouTubeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r)
	f.mu.Unlock()

	for suffix, body := range f.bodies {
		if !strings.HasSuffix(r.URL.Path, suffix) {
			continue
		}
		w.Header().Set("Content-Type", "application/json")
		if code, ok := f.status[suffix]; ok {
			w.WriteHeader(code)
		}
		io.WriteString(w, body)
		return
	}
	http.NotFound(w, r)
}

func (f *fakeYouTubeAPI) request(i int) *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[i]
}

func (f *fakeYouTubeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func newFakeClient(t *testing.T, api *fakeYouTubeAPI) *YouTubeClient {
	t.Helper()

	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client, err := NewYouTubeClient(context.Background(), YouTubeConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/",
	})
	require.NoError(t, err)
	return client
}

func TestYouTubeClient_SearchChannelID(t *testing.T) {
	api := &fakeYouTubeAPI{bodies: map[string]string{
		"/search": `{"items":[{"snippet":{"channelId":"UCabcdefghijklmnopqrstuv","title":"x"}}]}`,
	}}
	client := newFakeClient(t, api)

	id, err := client.SearchChannelID(context.Background(), "somehandle")
	require.NoError(t, err)
	assert.Equal(t, "UCabcdefghijklmnopqrstuv", id)

	require.Equal(t, 1, api.count())
	q := api.request(0).URL.Query()
	assert.Equal(t, "somehandle", q.Get("q"))
	assert.Equal(t, "channel", q.Get("type"))
	assert.Equal(t, "1", q.Get("maxResults"))
}

func TestYouTubeClient_SearchChannelID_NoItems(t *testing.T) {
	client := newFakeClient(t, &fakeYouTubeAPI{bodies: map[string]string{"/search": `{"items":[]}`}})

	_, err := client.SearchChannelID(context.Background(), "nobody")
	assert.ErrorIs(t, err, models.ErrNoItems)
}

func TestYouTubeClient_Channel(t *testing.T) {
	api := &fakeYouTubeAPI{bodies: map[string]string{
		"/channels": `{"items":[{
			"id":"UCabcdefghijklmnopqrstuv",
			"snippet":{"title":"Chan","description":"d","customUrl":"@chan","publishedAt":"2015-01-01T00:00:00Z",
				"thumbnails":{"high":{"url":"https://img/high.jpg"}}},
			"statistics":{"subscriberCount":"1200","viewCount":"3400000","videoCount":"56"},
			"contentDetails":{"relatedPlaylists":{"uploads":"UUabcdefghijklmnopqrstuv"}},
			"brandingSettings":{"channel":{"keywords":"go music"}}
		}]}`,
	}}
	client := newFakeClient(t, api)

	ch, err := client.Channel(context.Background(), "UCabcdefghijklmnopqrstuv")
	require.NoError(t, err)
	assert.Equal(t, &ChannelResource{
		ID:                "UCabcdefghijklmnopqrstuv",
		Title:             "Chan",
		Description:       "d",
		CustomURL:         "@chan",
		PublishedAt:       "2015-01-01T00:00:00Z",
		ThumbnailURL:      "https://img/high.jpg",
		Keywords:          "go music",
		UploadsPlaylistID: "UUabcdefghijklmnopqrstuv",
		SubscriberCount:   1200,
		ViewCount:         3_400_000,
		VideoCount:        56,
	}, ch)

	part := partParam(api.request(0))
	for _, p := range []string{"statistics", "snippet", "brandingSettings", "contentDetails"} {
		assert.Contains(t, part, p)
	}
}

func TestYouTubeClient_Channel_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"no items", `{"items":[]}`, models.ErrNoItems},
		{"no statistics", `{"items":[{"snippet":{"title":"x"},"contentDetails":{"relatedPlaylists":{"uploads":"UU1"}}}]}`, models.ErrMalformedResource},
		{"no uploads playlist", `{"items":[{"snippet":{"title":"x"},"statistics":{"viewCount":"1"}}]}`, models.ErrMalformedResource},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newFakeClient(t, &fakeYouTubeAPI{bodies: map[string]string{"/channels": tt.body}})

			_, err := client.Channel(context.Background(), "UCabcdefghijklmnopqrstuv")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestYouTubeClient_PlaylistVideoIDs(t *testing.T) {
	api := &fakeYouTubeAPI{bodies: map[string]string{
		"/playlistItems": `{"items":[
			{"contentDetails":{"videoId":"aaaaaaaaaaa"}},
			{"contentDetails":{}},
			{"contentDetails":{"videoId":"bbbbbbbbbbb"}}
		]}`,
	}}
	client := newFakeClient(t, api)

	ids, err := client.PlaylistVideoIDs(context.Background(), "UU1", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"aaaaaaaaaaa", "bbbbbbbbbbb"}, ids)
	assert.Equal(t, "10", api.request(0).URL.Query().Get("maxResults"))
	assert.Equal(t, "UU1", api.request(0).URL.Query().Get("playlistId"))
}

func TestYouTubeClient_Video(t *testing.T) {
	api := &fakeYouTubeAPI{bodies: map[string]string{
		"/videos": `{"items":[{
			"snippet":{"title":"Vid","channelId":"UCabcdefghijklmnopqrstuv","channelTitle":"Chan","categoryId":"10",
				"publishedAt":"2024-01-01T00:00:00Z","tags":["a","b"],"thumbnails":{"high":{"url":"https://img/v.jpg"}}},
			"statistics":{"viewCount":"1000","likeCount":"50","commentCount":"7"},
			"contentDetails":{"duration":"PT4M13S"}
		}]}`,
	}}
	client := newFakeClient(t, api)

	v, err := client.Video(context.Background(), "ABCDEFGHIJK", true)
	require.NoError(t, err)
	assert.Equal(t, "ABCDEFGHIJK", v.ID)
	assert.Equal(t, "Vid", v.Title)
	assert.Equal(t, "Chan", v.ChannelTitle)
	assert.Equal(t, "10", v.CategoryID)
	assert.Equal(t, []string{"a", "b"}, v.Tags)
	assert.Equal(t, "PT4M13S", v.Duration)
	assert.Equal(t, "https://img/v.jpg", v.ThumbnailURL)
	assert.Equal(t, int64(1000), v.ViewCount)
	assert.Equal(t, int64(50), v.LikeCount)
	assert.Equal(t, int64(7), v.CommentCount)
	assert.Contains(t, partParam(api.request(0)), "contentDetails")
}

func TestYouTubeClient_Video_StatsOnly(t *testing.T) {
	api := &fakeYouTubeAPI{bodies: map[string]string{
		"/videos": `{"items":[{"snippet":{"title":"Vid"},"statistics":{"viewCount":"5"}}]}`,
	}}
	client := newFakeClient(t, api)

	v, err := client.Video(context.Background(), "ABCDEFGHIJK", false)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v.ViewCount)
	assert.Empty(t, v.Duration)
	assert.NotContains(t, partParam(api.request(0)), "contentDetails")
}

func TestYouTubeClient_TopComments(t *testing.T) {
	api := &fakeYouTubeAPI{bodies: map[string]string{
		"/commentThreads": `{"items":[
			{"snippet":{"topLevelComment":{"snippet":{"authorDisplayName":"amy","textDisplay":"great","likeCount":4,"publishedAt":"2024-01-02T00:00:00Z"}}}},
			{"snippet":{}}
		]}`,
	}}
	client := newFakeClient(t, api)

	comments, err := client.TopComments(context.Background(), "ABCDEFGHIJK", 50)
	require.NoError(t, err)
	assert.Equal(t, []CommentResource{
		{Author: "amy", Text: "great", LikeCount: 4, PublishedAt: "2024-01-02T00:00:00Z"},
	}, comments)

	q := api.request(0).URL.Query()
	assert.Equal(t, "relevance", q.Get("order"))
	assert.Equal(t, "50", q.Get("maxResults"))
	assert.Equal(t, "ABCDEFGHIJK", q.Get("videoId"))
}

func TestYouTubeClient_APIError(t *testing.T) {
	api := &fakeYouTubeAPI{
		bodies: map[string]string{
			"/commentThreads": `{"error":{"code":403,"message":"comments disabled"}}`,
		},
		status: map[string]int{"/commentThreads": http.StatusForbidden},
	}
	client := newFakeClient(t, api)

	_, err := client.TopComments(context.Background(), "ABCDEFGHIJK", 50)
	require.Error(t, err)
	assert.False(t, errors.Is(err, models.ErrNoItems))
	assert.Contains(t, err.Error(), "commentThreads.list")
}

// partParam joins "part" whether it was sent repeated or comma separated.
func partParam(r *http.Request) string {
	return strings.Join(r.URL.Query()["part"], ",")
}
