package manifest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/assets/music/playlist.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
}

func TestFetch_Normalization(t *testing.T) {
	server := serve(t, http.StatusOK, `[
		{"title": "First", "url": "a/b/first.mp3", "artist": "Someone", "album": "Debut", "track": 1, "duration": 215.5},
		{"url": "a/b/My_Song.mp3"},
		{"url": "a/b/odd.mp3", "track": "three", "duration": "long"}
	]`)
	defer server.Close()

	tracks, err := New().Fetch(context.Background(), server.URL, DefaultPath)
	require.NoError(t, err)
	require.Len(t, tracks, 3)

	assert.Equal(t, "First", tracks[0].Title)
	assert.Equal(t, "Someone", tracks[0].Artist)
	assert.Equal(t, "Debut", tracks[0].Album)
	assert.Equal(t, 1, tracks[0].TrackNumber)
	assert.Equal(t, 215.5, tracks[0].DurationSeconds)

	// Missing title derives from the filename
	assert.Equal(t, "My Song", tracks[1].Title)
	assert.Equal(t, "", tracks[1].Artist)

	// Non-numeric track/duration degrade to absent
	assert.Equal(t, 0, tracks[2].TrackNumber)
	assert.Equal(t, 0.0, tracks[2].DurationSeconds)
}

func TestFetch_EntriesWithoutURLDropped(t *testing.T) {
	server := serve(t, http.StatusOK, `[
		{"title": "no url here"},
		{"url": "a/b/kept.mp3"}
	]`)
	defer server.Close()

	tracks, err := New().Fetch(context.Background(), server.URL, DefaultPath)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "a/b/kept.mp3", tracks[0].URL)
}

func TestFetch_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "not an array", status: http.StatusOK, body: `{"tracks": []}`},
		{name: "empty array", status: http.StatusOK, body: `[]`},
		{name: "only unusable entries", status: http.StatusOK, body: `[{"title": "x"}]`},
		{name: "not found", status: http.StatusNotFound, body: ``},
		{name: "malformed json", status: http.StatusOK, body: `[{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := serve(t, tt.status, tt.body)
			defer server.Close()

			_, err := New().Fetch(context.Background(), server.URL, DefaultPath)
			assert.Error(t, err)
		})
	}
}

func TestFetch_Unreachable(t *testing.T) {
	server := serve(t, http.StatusOK, `[]`)
	server.Close() // closed before use

	_, err := New().Fetch(context.Background(), server.URL, DefaultPath)
	assert.Error(t, err)
}
