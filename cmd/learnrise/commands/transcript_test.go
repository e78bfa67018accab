// ABOUTME: Tests for transcript command structure and ID extraction
// ABOUTME: Verifies subcommand wiring and the id subcommand output

package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewTranscriptCmd(t *testing.T) {
	cmd := NewTranscriptCmd()

	if cmd.Use != "transcript" {
		t.Errorf("Use = %q, want %q", cmd.Use, "transcript")
	}

	want := []string{"fetch", "id"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestTranscriptIDCmd(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short URL", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"bare ID", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewTranscriptCmd()
			var output bytes.Buffer
			cmd.SetOut(&output)
			cmd.SetErr(&output)
			cmd.SetArgs([]string{"id", tt.url})

			if err := cmd.Execute(); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			if got := strings.TrimSpace(output.String()); got != tt.want {
				t.Errorf("id output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTranscriptIDCmd_Invalid(t *testing.T) {
	cmd := NewTranscriptCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"id", "not a video url"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected an error for an unrecognized URL")
	}
}
