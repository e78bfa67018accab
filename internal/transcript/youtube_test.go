// ABOUTME: Tests for YouTube transcript acquisition
// ABOUTME: Uses httptest servers for watch page and timedtext payloads
package transcript

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/learnrise/learnrise/internal/errdefs"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name    string
		locator string
		want    string
		wantErr bool
	}{
		{"watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"watch URL extra params", "https://www.youtube.com/watch?t=10&v=dQw4w9WgXcQ&list=x", "dQw4w9WgXcQ", false},
		{"short URL", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"shorts URL", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"embed URL", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"bare ID", "dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"empty", "", "", true},
		{"whitespace", "   ", "", true},
		{"garbage", "not a url at all", "", true},
		{"wrong length ID", "short", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.locator)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractVideoID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errdefs.Is(err, errdefs.CodeMalformedInput) {
					t.Errorf("expected MALFORMED_INPUT, got %v", errdefs.CodeOf(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("ExtractVideoID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", `[1,2,3]tail`, `[1,2,3]`},
		{"nested", `[[1],[2]]x`, `[[1],[2]]`},
		{"brackets in strings", `[{"a":"] tricky ["}]rest`, `[{"a":"] tricky ["}]`},
		{"escaped quote", `[{"a":"say \" hi"}]more`, `[{"a":"say \" hi"}]`},
		{"not an array", `{"a":1}`, ""},
		{"unbalanced", `[1,2`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSONArray(tt.input); got != tt.want {
				t.Errorf("extractJSONArray() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseTimedText(t *testing.T) {
	body := []byte(`{"events":[
		{"tStartMs":0,"dDurationMs":1500,"segs":[{"utf8":"hello "},{"utf8":"world"}]},
		{"tStartMs":1500,"dDurationMs":2000,"segs":[{"utf8":"\n"}]},
		{"tStartMs":3500,"dDurationMs":1000,"segs":[{"utf8":"second line"}]}
	]}`)

	segments, err := parseTimedText(body)
	if err != nil {
		t.Fatalf("parseTimedText() error = %v", err)
	}

	if len(segments) != 2 {
		t.Fatalf("expected 2 segments (newline-only dropped), got %d", len(segments))
	}
	if segments[0].Text != "hello world" {
		t.Errorf("segment 0 text = %q", segments[0].Text)
	}
	if segments[0].Start != 0 || segments[0].Duration != 1.5 {
		t.Errorf("segment 0 timing = %f/%f", segments[0].Start, segments[0].Duration)
	}
	if segments[1].Start != 3.5 {
		t.Errorf("segment 1 start = %f, want 3.5", segments[1].Start)
	}
}

func TestPickTrack(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "auto", LanguageCode: "en", Kind: "asr"},
		{BaseURL: "manual", LanguageCode: "en"},
		{BaseURL: "german", LanguageCode: "de"},
	}

	if got := pickTrack(tracks); got.BaseURL != "manual" {
		t.Errorf("pickTrack() = %q, want manual track", got.BaseURL)
	}

	asrOnly := []captionTrack{
		{BaseURL: "german", LanguageCode: "de"},
		{BaseURL: "auto", LanguageCode: "en", Kind: "asr"},
	}
	if got := pickTrack(asrOnly); got.BaseURL != "auto" {
		t.Errorf("pickTrack() = %q, want auto English track", got.BaseURL)
	}

	foreign := []captionTrack{{BaseURL: "german", LanguageCode: "de"}}
	if got := pickTrack(foreign); got.BaseURL != "german" {
		t.Errorf("pickTrack() = %q, want first track", got.BaseURL)
	}
}

func TestParseCaptionTracks_NoCaptions(t *testing.T) {
	_, err := parseCaptionTracks([]byte(`<html>watch page without captions</html>`))
	if !errdefs.Is(err, errdefs.CodeTranscriptUnavailable) {
		t.Errorf("expected TRANSCRIPT_UNAVAILABLE, got %v", err)
	}
}

func TestFetcher_Fetch(t *testing.T) {
	mux := http.NewServeMux()
	var server *httptest.Server

	mux.HandleFunc("/timedtext", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"events":[{"tStartMs":0,"dDurationMs":2000,"segs":[{"utf8":"learning english"}]}]}`))
	})
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		page := `<html>"captionTracks":[{"baseUrl":"` + server.URL + `/timedtext?v=1","languageCode":"en"}]</html>`
		w.Write([]byte(page))
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	f := NewFetcher(5 * time.Second)
	// Point the fetcher at the test server by fetching the page directly
	page, err := f.get(context.Background(), server.URL+"/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("get() error = %v", err)
	}

	tracks, err := parseCaptionTracks(page)
	if err != nil {
		t.Fatalf("parseCaptionTracks() error = %v", err)
	}

	body, err := f.get(context.Background(), tracks[0].BaseURL+"&fmt=json3")
	if err != nil {
		t.Fatalf("timedtext get() error = %v", err)
	}

	segments, err := parseTimedText(body)
	if err != nil {
		t.Fatalf("parseTimedText() error = %v", err)
	}
	if len(segments) != 1 || segments[0].Text != "learning english" {
		t.Errorf("unexpected segments: %+v", segments)
	}
}
