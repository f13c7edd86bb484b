package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pintunes/pintunes-api/internal/api/metrics"
	"github.com/pintunes/pintunes-api/internal/core/domain"
	"github.com/pintunes/pintunes-api/internal/core/ports"
)

const assistantTemperature = 0.7

const personaPrompt = `You are a knowledgeable and friendly music personal assistant. You can:
- Recommend songs and artists based on user preferences
- Explain music theory concepts
- Share interesting facts about songs, artists, and genres
- Help users discover new music based on their current favorites
- Discuss music history and cultural impact
- Provide information about instruments and music production
- Create themed playlists based on moods, occasions, or genres

Please keep responses concise and focused on music-related topics.`

const apologyReply = "I'm sorry, I'm having trouble answering right now. Please try again in a moment."

// AssistantService forwards chat turns to the generative-language API with a
// per-user context block built from the pinned profile and listening history.
type AssistantService struct {
	store     ports.PinStore
	history   ports.ListeningHistory
	generator ports.TextGenerator
	logger    zerolog.Logger
}

func NewAssistantService(store ports.PinStore, history ports.ListeningHistory, generator ports.TextGenerator, logger zerolog.Logger) *AssistantService {
	return &AssistantService{
		store:     store,
		history:   history,
		generator: generator,
		logger:    logger,
	}
}

// Converse produces the assistant's reply to the latest turn. The first turn
// of a conversation synthesizes a greeting prompt; later turns forward the
// literal last user message. Upstream failures degrade to a canned apology.
func (s *AssistantService) Converse(ctx context.Context, turns []domain.ConversationTurn, userCID string) (string, error) {
	if !s.generator.Enabled() {
		metrics.AssistantRequestsTotal.WithLabelValues("config_error").Inc()
		return "", fmt.Errorf("%w: language-API key is not set", domain.ErrConfiguration)
	}
	if len(turns) == 0 {
		return "", fmt.Errorf("%w: no messages provided", domain.ErrValidation)
	}

	conversationID := uuid.NewString()
	log := s.logger.With().Str("conversation_id", conversationID).Logger()

	prompt, err := s.buildPrompt(ctx, turns, userCID)
	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues("degraded").Inc()
		log.Error().Err(err).Str("cid", userCID).Msg("assistant context build failed")
		return apologyReply, nil
	}

	reply, err := s.generator.Generate(ctx, prompt, assistantTemperature)
	if err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues("degraded").Inc()
		log.Error().Err(err).Msg("language-API call failed")
		return apologyReply, nil
	}

	metrics.AssistantRequestsTotal.WithLabelValues("ok").Inc()
	return reply, nil
}

func (s *AssistantService) buildPrompt(ctx context.Context, turns []domain.ConversationTurn, userCID string) (string, error) {
	var record domain.UserRecord
	if err := s.store.FetchJSON(ctx, userCID, &record); err != nil {
		return "", fmt.Errorf("fetch user record: %w", err)
	}

	listening, err := s.history.ListeningData(ctx, userCID)
	if err != nil {
		return "", fmt.Errorf("fetch listening data: %w", err)
	}

	userContext := buildUserContext(record.Username, listening)

	if len(turns) == 1 {
		return fmt.Sprintf(
			"%s\n\n%s\n\nPlease greet %s and you don't acknowledge their music taste. Keep your introduction short.",
			personaPrompt, userContext, record.Username,
		), nil
	}

	last := turns[len(turns)-1]
	return fmt.Sprintf("%s\n\n%s\n\n%s", personaPrompt, userContext, last.Text), nil
}

func buildUserContext(username string, data *ports.ListeningData) string {
	tracks := make([]string, 0, len(data.RecentlyPlayed))
	for _, t := range data.RecentlyPlayed {
		tracks = append(tracks, fmt.Sprintf("%s by %s", t.Title, t.Artist))
	}
	playlists := make([]string, 0, len(data.Playlists))
	for _, p := range data.Playlists {
		playlists = append(playlists, p.Name)
	}

	return fmt.Sprintf(`User Profile:
- Username: %s
- Favorite Artists: %s
- Preferred Genres: %s
- Recent Tracks: %s
- Playlists: %s`,
		username,
		strings.Join(data.TopArtists, ", "),
		strings.Join(data.TopGenres, ", "),
		strings.Join(tracks, ", "),
		strings.Join(playlists, ", "),
	)
}
