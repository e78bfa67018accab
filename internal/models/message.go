// ABOUTME: ChatMessage and Role form the ordered conversation history
// ABOUTME: History is append-only per turn; two messages land per successful turn
package models

// Role tags who produced a chat message
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry in a conversation history
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
