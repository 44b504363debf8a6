// Package youtube recognizes YouTube links registered in the catalog in
// lieu of an uploaded file, and synthesizes canonical watch and thumbnail
// URLs from the extracted video ID.
package youtube

import "regexp"

// Video IDs are exactly 11 characters from the base64url alphabet.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?(?:[^#]*&)?v=([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`youtube\.com/embed/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`youtube\.com/shorts/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`youtube\.com/v/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
}

var hostPattern = regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?(?:youtube\.com|youtu\.be)/`)

// IsVideoURL reports whether raw looks like a YouTube link at all. A true
// result does not guarantee a video ID can be extracted.
func IsVideoURL(raw string) bool {
	return hostPattern.MatchString(raw)
}

// ExtractID pulls the 11-character video ID out of a watch, embed, shorts,
// or short-link URL. Returns false when no known shape matches.
func ExtractID(raw string) (string, bool) {
	for _, p := range idPatterns {
		if m := p.FindStringSubmatch(raw); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// WatchURL returns the canonical playback URL stored in the catalog.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// ThumbnailURL returns the highest-resolution thumbnail YouTube publishes
// for the video.
func ThumbnailURL(id string) string {
	return "https://img.youtube.com/vi/" + id + "/maxresdefault.jpg"
}
