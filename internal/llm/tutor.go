// ABOUTME: Word-lookup tutor prompt for the player's click-to-explain feature
// ABOUTME: Asks the chat model for a structured ESL explanation of a word in context
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/learnrise/learnrise/internal/errdefs"
	"github.com/learnrise/learnrise/internal/models"
)

const tutorSystemPrompt = "You are an expert English tutor specializing in ESL (English as a Second Language)."

const tutorTemplate = `The student clicked on the word "%s" in this sentence:
"%s"

Provide a comprehensive explanation using EXACTLY this template (include ALL sections):

**Word Focus**: %s
   - Pronunciation: /.../ (add phonetic if possible)
   - Part of Speech: (noun/verb/adjective/etc.)

**Core Meanings**:
1. Primary Definition: (most common meaning)
2. Secondary Definition: (other important meanings)

**In This Sentence**:
   - Explain how the word functions here
   - Break down any idioms or phrasal verbs if present

**Learning Tips**:
   - Memory Trick: (mnemonic or visual association)
   - Common Mistakes: (what learners often get wrong)
   - Related Words: (synonyms/antonyms/word family)

**Usage Examples**:
   - Formal: (professional context example)
   - Casual: (everyday conversation example)

**Practice Exercise**:
   "Complete this sentence: _[missing word]_"`

// ExplainWord asks the model for a structured explanation of a word in its sentence
func (c *Client) ExplainWord(ctx context.Context, word, sentence string) (string, error) {
	word = strings.TrimSpace(word)
	sentence = strings.TrimSpace(sentence)
	if word == "" {
		return "", errdefs.New(errdefs.CodeMalformedInput, "word is required")
	}

	messages := []models.ChatMessage{
		{Role: models.RoleSystem, Content: tutorSystemPrompt},
		{Role: models.RoleUser, Content: fmt.Sprintf(tutorTemplate, word, sentence, word)},
	}
	return c.Chat(ctx, messages)
}
