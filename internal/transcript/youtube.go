// ABOUTME: Fetches YouTube transcripts and normalizes them into timed segments
// ABOUTME: Scrapes caption track metadata from the watch page, then pulls json3 timedtext
package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/learnrise/learnrise/internal/errdefs"
	"github.com/learnrise/learnrise/internal/models"
)

const watchURL = "https://www.youtube.com/watch?v=%s"

var (
	videoIDPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	locatorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`[?&]v=([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/shorts/([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/embed/([A-Za-z0-9_-]{11})`),
	}
)

// ExtractVideoID pulls the 11-character video ID out of a URL or accepts a bare ID
func ExtractVideoID(locator string) (string, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return "", errdefs.New(errdefs.CodeMalformedInput, "YouTube URL is required")
	}
	if videoIDPattern.MatchString(locator) {
		return locator, nil
	}
	for _, p := range locatorPatterns {
		if m := p.FindStringSubmatch(locator); m != nil {
			return m[1], nil
		}
	}
	return "", errdefs.Newf(errdefs.CodeMalformedInput, "could not extract video ID from %q", locator)
}

// Fetcher retrieves transcripts for YouTube videos
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher with the given request timeout
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// captionTrack is one entry from the watch page's captionTracks metadata
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// timedText is the json3 timedtext payload shape
type timedText struct {
	Events []struct {
		StartMs    int64 `json:"tStartMs"`
		DurationMs int64 `json:"dDurationMs"`
		Segs       []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// Fetch returns the ordered transcript segments for a video URL or ID.
// Fails with TRANSCRIPT_UNAVAILABLE when the video has no caption track.
func (f *Fetcher) Fetch(ctx context.Context, locator string) ([]models.TranscriptSegment, error) {
	videoID, err := ExtractVideoID(locator)
	if err != nil {
		return nil, err
	}

	page, err := f.get(ctx, fmt.Sprintf(watchURL, videoID))
	if err != nil {
		return nil, errdefs.Wrap(err, errdefs.CodeTranscriptFetchFailed, "failed to load watch page")
	}

	tracks, err := parseCaptionTracks(page)
	if err != nil {
		return nil, err
	}

	track := pickTrack(tracks)
	body, err := f.get(ctx, track.BaseURL+"&fmt=json3")
	if err != nil {
		return nil, errdefs.Wrap(err, errdefs.CodeTranscriptFetchFailed, "failed to fetch timedtext")
	}

	segments, err := parseTimedText(body)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, errdefs.New(errdefs.CodeTranscriptUnavailable, "transcript track is empty")
	}
	return segments, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// parseCaptionTracks extracts the captionTracks JSON array embedded in the watch page
func parseCaptionTracks(page []byte) ([]captionTrack, error) {
	const marker = `"captionTracks":`
	idx := strings.Index(string(page), marker)
	if idx < 0 {
		return nil, errdefs.New(errdefs.CodeTranscriptUnavailable,
			"video has no captions enabled")
	}

	raw := extractJSONArray(string(page)[idx+len(marker):])
	if raw == "" {
		return nil, errdefs.New(errdefs.CodeTranscriptFetchFailed, "malformed caption track metadata")
	}

	var tracks []captionTrack
	if err := json.Unmarshal([]byte(raw), &tracks); err != nil {
		return nil, errdefs.Wrap(err, errdefs.CodeTranscriptFetchFailed, "failed to parse caption tracks")
	}
	if len(tracks) == 0 {
		return nil, errdefs.New(errdefs.CodeTranscriptUnavailable, "video has no caption tracks")
	}
	return tracks, nil
}

// extractJSONArray returns the balanced [...] prefix of s, respecting strings
func extractJSONArray(s string) string {
	if len(s) == 0 || s[0] != '[' {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}

// pickTrack prefers manually-authored English captions over auto-generated ones
func pickTrack(tracks []captionTrack) captionTrack {
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") && t.Kind != "asr" {
			return t
		}
	}
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t
		}
	}
	return tracks[0]
}

// parseTimedText converts a json3 payload into ordered transcript segments
func parseTimedText(body []byte) ([]models.TranscriptSegment, error) {
	var tt timedText
	if err := json.Unmarshal(body, &tt); err != nil {
		return nil, errdefs.Wrap(err, errdefs.CodeTranscriptFetchFailed, "failed to parse timedtext")
	}

	var segments []models.TranscriptSegment
	for _, ev := range tt.Events {
		var b strings.Builder
		for _, seg := range ev.Segs {
			b.WriteString(seg.UTF8)
		}
		text := strings.TrimSpace(strings.ReplaceAll(b.String(), "\n", " "))
		if text == "" {
			continue
		}
		segments = append(segments, models.TranscriptSegment{
			Start:    float64(ev.StartMs) / 1000.0,
			Duration: float64(ev.DurationMs) / 1000.0,
			Text:     text,
		})
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Start < segments[j].Start
	})
	return segments, nil
}
