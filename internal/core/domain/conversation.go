package domain

const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// ConversationTurn is a single message in an assistant chat. Turns live only
// for the duration of the conversation view; they are never persisted.
type ConversationTurn struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}
