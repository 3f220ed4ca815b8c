package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		switch r.URL.Path {
		case "/assets/music/track1.mp3":
			w.WriteHeader(http.StatusOK)
		case "/assets/music/track2.mp3":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	c := New()
	ctx := context.Background()

	assert.True(t, c.Exists(ctx, server.URL, "assets/music/track1.mp3"))
	assert.False(t, c.Exists(ctx, server.URL, "assets/music/track2.mp3"))
	assert.False(t, c.Exists(ctx, server.URL, "assets/music/other.mp3"))
}

func TestExists_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	assert.False(t, New().Exists(context.Background(), server.URL, "assets/music/track1.mp3"))
}
