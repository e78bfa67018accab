// ABOUTME: HTTP handlers for transcript processing, chat, transcription, and word lookup
// ABOUTME: All failures are converted to JSON payloads carrying a stable error code
package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/learnrise/learnrise/internal/chat"
	"github.com/learnrise/learnrise/internal/errdefs"
	"github.com/learnrise/learnrise/internal/index"
	"github.com/learnrise/learnrise/internal/models"
	"github.com/learnrise/learnrise/internal/transcript"
)

// maxUploadBytes caps multipart form memory for audio uploads
const maxUploadBytes = 32 << 20

// errorPayload is the JSON body for every failed request
type errorPayload struct {
	Error string       `json:"error"`
	Code  errdefs.Code `json:"code"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errdefs.CodeOf(err)
	s.writeJSON(w, statusFor(code), errorPayload{
		Error: errdefs.MessageOf(err),
		Code:  code,
	})
}

// statusFor maps error codes onto HTTP status codes
func statusFor(code errdefs.Code) int {
	switch code {
	case errdefs.CodeMalformedInput, errdefs.CodeNotReady,
		errdefs.CodeAudioDecodeFailed, errdefs.CodeIndexEmpty:
		return http.StatusBadRequest
	case errdefs.CodeTranscriptUnavailable:
		return http.StatusNotFound
	case errdefs.CodeUpstreamUnavailable, errdefs.CodeEmbeddingFailed,
		errdefs.CodeTranscriptionFailed, errdefs.CodeTranscriptFetchFailed,
		errdefs.CodeUnrecognizedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handleProcessTranscript fetches and indexes a transcript, generates QA
// previews, and installs a fresh chat session for the video
func (s *Server) handleProcessTranscript(w http.ResponseWriter, r *http.Request) {
	var req struct {
		YouTubeURL string `json:"youtube_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errdefs.New(errdefs.CodeMalformedInput, "invalid JSON body"))
		return
	}
	if strings.TrimSpace(req.YouTubeURL) == "" {
		s.writeError(w, errdefs.New(errdefs.CodeMalformedInput, "YouTube URL is required"))
		return
	}

	ctx := r.Context()
	segments, err := s.fetcher.Fetch(ctx, req.YouTubeURL)
	if err != nil {
		s.writeError(w, err)
		return
	}

	videoID, _ := transcript.ExtractVideoID(req.YouTubeURL)
	chunks := s.chunker.SplitSegments(segments, videoID)

	idx := index.New(s.model)
	if err := idx.Build(ctx, chunks); err != nil {
		s.writeError(w, err)
		return
	}

	pairs, skipped, err := s.qa.Generate(ctx, models.SegmentTexts(segments))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if skipped > 0 {
		s.logger.WithField("skipped", skipped).Warn("some QA batches failed")
	}

	session := chat.NewSession(idx, s.model, chat.Options{
		TopK:       s.cfg.TopK,
		MaxHistory: s.cfg.MaxHistory,
	})
	token := s.registry.Replace(session)

	qaPairs := make([][2]string, 0, len(pairs))
	for _, p := range pairs {
		qaPairs = append(qaPairs, [2]string{p.Question, p.Answer})
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Transcript processed successfully",
		"session_token": token,
		"qa_pairs":      qaPairs,
		"qa_skipped":    skipped,
	})
}

// handleProcessInput accepts a text or audio turn and runs it through the chat session
func (s *Server) handleProcessInput(w http.ResponseWriter, r *http.Request) {
	session, err := s.registry.Current()
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		// Fall back to a plain form post without a file part
		if err := r.ParseForm(); err != nil {
			s.writeError(w, errdefs.New(errdefs.CodeMalformedInput, "invalid form body"))
			return
		}
	}

	ctx := r.Context()
	inputType := r.FormValue("input_type")

	var userInput string
	if inputType == "audio" {
		file, _, err := r.FormFile("audio")
		if err != nil {
			s.writeError(w, errdefs.New(errdefs.CodeMalformedInput, "No audio file uploaded"))
			return
		}
		defer file.Close()

		wf, err := s.decoder.Decode(ctx, file)
		if err != nil {
			s.writeError(w, err)
			return
		}
		userInput, err = s.transcriber.Transcribe(ctx, wf)
		if err != nil {
			s.writeError(w, err)
			return
		}
	} else {
		userInput = r.FormValue("message")
	}

	if strings.TrimSpace(userInput) == "" {
		s.writeError(w, errdefs.New(errdefs.CodeMalformedInput, "Empty input"))
		return
	}

	answer, err := session.ProcessTurn(ctx, userInput)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_input":   userInput,
		"bot_response": answer,
		"input_type":   inputType,
	})
}

// handleTranscribe decodes and transcribes an uploaded audio file
func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, errdefs.New(errdefs.CodeMalformedInput, "invalid multipart body"))
		return
	}

	file, _, err := r.FormFile("audio")
	if err != nil {
		s.writeError(w, errdefs.New(errdefs.CodeMalformedInput, "No audio file uploaded"))
		return
	}
	defer file.Close()

	ctx := r.Context()
	wf, err := s.decoder.Decode(ctx, file)
	if err != nil {
		s.writeError(w, err)
		return
	}

	text, err := s.transcriber.Transcribe(ctx, wf)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"transcript": text})
}

// handleSubtitles returns the timed transcript segments for the player overlay
func (s *Server) handleSubtitles(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errdefs.New(errdefs.CodeMalformedInput, "invalid JSON body"))
		return
	}

	segments, err := s.fetcher.Fetch(r.Context(), req.URL)
	if err != nil {
		s.writeError(w, err)
		return
	}

	videoID, _ := transcript.ExtractVideoID(req.URL)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"video_id": videoID,
		"segments": segments,
	})
}

// handleChatbot explains a clicked word in the context of its sentence
func (s *Server) handleChatbot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Word     string `json:"word"`
		Sentence string `json:"sentence"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errdefs.New(errdefs.CodeMalformedInput, "invalid JSON body"))
		return
	}

	response, err := s.model.ExplainWord(r.Context(), req.Word, req.Sentence)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"response": response})
}
