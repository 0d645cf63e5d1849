// Package chat defines the conversation transcript types shared by the
// retrieval composer and the LLM backends.
package chat

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser   Role = "user"
	RoleSystem Role = "system"
)

// Message is a single entry in a conversation transcript.
type Message struct {
	Role    Role
	Content string
}

// User returns a user-role message with the given content.
func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// System returns a system-role message with the given content.
func System(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}
