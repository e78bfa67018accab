// ABOUTME: Tests for the word-lookup tutor prompt
// ABOUTME: Verifies prompt assembly and input validation
package llm

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/learnrise/learnrise/internal/errdefs"
)

func TestExplainWord(t *testing.T) {
	var requestBody string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requestBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"**Word Focus**: resilient"}}]}`))
	})

	explanation, err := client.ExplainWord(context.Background(), "resilient", "She stayed resilient through hard times.")
	if err != nil {
		t.Fatalf("ExplainWord() error = %v", err)
	}
	if !strings.Contains(explanation, "resilient") {
		t.Errorf("explanation = %q", explanation)
	}

	if !strings.Contains(requestBody, "resilient") {
		t.Error("request should contain the clicked word")
	}
	if !strings.Contains(requestBody, "She stayed resilient through hard times.") {
		t.Error("request should contain the sentence context")
	}
	if !strings.Contains(requestBody, "ESL") {
		t.Error("request should carry the tutor system prompt")
	}
}

func TestExplainWord_EmptyWord(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made for an empty word")
	})

	_, err := client.ExplainWord(context.Background(), "   ", "some sentence")
	if !errdefs.Is(err, errdefs.CodeMalformedInput) {
		t.Errorf("expected MALFORMED_INPUT, got %v", err)
	}
}
