package assistant

import (
	"time"

	"talent-track/core/models"
	"talent-track/core/repository"
)

// Message is one chat turn persisted in the history file
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Chat roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// History persists the assistant conversation to the chat history collection
type History struct {
	store *repository.Store
}

// NewHistory creates a history backed by the store
func NewHistory(store *repository.Store) *History {
	return &History{store: store}
}

// Load returns the full conversation, oldest first
func (h *History) Load() ([]Message, error) {
	var messages []Message
	if err := h.store.Read(repository.ChatHistoryFile, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Append records chat turns, stamping timestamps
func (h *History) Append(msgs ...Message) error {
	unlock := h.store.Lock(repository.ChatHistoryFile)
	defer unlock()

	messages, err := h.Load()
	if err != nil {
		return err
	}
	ts := time.Now().Format(models.AuditTimeLayout)
	for _, m := range msgs {
		if m.Timestamp == "" {
			m.Timestamp = ts
		}
		messages = append(messages, m)
	}
	return h.store.Write(repository.ChatHistoryFile, messages)
}

// Clear wipes the conversation
func (h *History) Clear() error {
	unlock := h.store.Lock(repository.ChatHistoryFile)
	defer unlock()
	return h.store.Write(repository.ChatHistoryFile, []Message{})
}

// Recent trims the conversation to an approximate token budget, keeping the
// newest turns. Budget is estimated at four characters per token.
func Recent(messages []Message, maxTokens int) []Message {
	tokens := 0
	start := len(messages)
	for i := len(messages) - 1; i >= 0; i-- {
		cost := (len(messages[i].Role) + len(messages[i].Content)) / 4
		if tokens+cost > maxTokens {
			break
		}
		tokens += cost
		start = i
	}
	return messages[start:]
}
