package ports

import (
	"context"

	"github.com/pintunes/pintunes-api/internal/core/domain"
)

// AssistantService produces assistant replies for the chat view.
type AssistantService interface {
	// Converse returns the assistant's reply to the latest turn. On upstream
	// failure it degrades to a canned apology rather than propagating the
	// failure; a missing language-API credential returns
	// domain.ErrConfiguration before any network call.
	Converse(ctx context.Context, turns []domain.ConversationTurn, userCID string) (string, error)
}
