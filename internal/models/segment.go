// ABOUTME: TranscriptSegment is one time-stamped caption line from a video
// ABOUTME: Produced by transcript acquisition, consumed by the chunker
package models

import "strings"

// TranscriptSegment is a single caption with its timing
type TranscriptSegment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// FullText joins segment texts with single spaces, skipping empties
func FullText(segments []TranscriptSegment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}

// SegmentTexts extracts the text of each segment, preserving order
func SegmentTexts(segments []TranscriptSegment) []string {
	texts := make([]string, 0, len(segments))
	for _, seg := range segments {
		texts = append(texts, seg.Text)
	}
	return texts
}
