// Package track provides the Track domain entity.
package track

import (
	"path"
	"strings"
	"unicode"
)

// Track represents one playable item in a playlist.
// URL is the only required field; a resolved playlist never contains
// a track with an empty URL.
type Track struct {
	Title           string  // Display name (derived from filename if absent)
	URL             string  // Locator for the audio resource
	Artist          string  // Artist name (empty if unknown)
	Album           string  // Album name (empty if unknown)
	TrackNumber     int     // Track number within the album (0 if absent)
	DurationSeconds float64 // Advisory duration; the media element is authoritative (0 if unknown)
}

// DisplayTitle returns the explicit title, or one derived from the
// filename portion of the URL when no title is set.
func (t *Track) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return PrettifyName(t.URL)
}

// PrettifyName derives a human-readable title from a file path or URL:
// the final path segment with its extension stripped, underscores and
// hyphens replaced by spaces, whitespace collapsed, and each word
// title-cased. "a/b/my_cool-track.mp3" becomes "My Cool Track".
func PrettifyName(name string) string {
	base := path.Base(name)
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)

	words := strings.Fields(base)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
