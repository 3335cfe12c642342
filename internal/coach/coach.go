// Package coach holds the AI life coach: free-form chat and quest generation.
package coach

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"liferpg/internal/ai"
	"liferpg/internal/engine"
)

type Coach struct {
	client ai.Completer
	log    *slog.Logger
}

func New(client ai.Completer, log *slog.Logger) *Coach {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Coach{client: client, log: log}
}

func (c *Coach) Available() bool {
	return c.client != nil && c.client.IsConfigured()
}

// Reply asks the coach about message. The state is only read; the caller
// records the exchange once the reply arrives.
func (c *Coach) Reply(ctx context.Context, s *engine.CharacterState, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", errors.New("message is empty")
	}
	if !c.Available() {
		return "", ai.ErrNotConfigured
	}

	msgs := []ai.Message{{Role: "system", Content: SystemPrompt()}}
	for _, m := range s.RecentChat(HistoryContext) {
		msgs = append(msgs, ai.Message{Role: m.Role, Content: m.Content})
	}
	msgs = append(msgs, ai.Message{Role: "user", Content: CharacterContext(s) + message})

	reply, err := c.client.Chat(ctx, msgs)
	if err != nil {
		return "", fmt.Errorf("coach: %w", err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", errors.New("coach: no response received")
	}
	return reply, nil
}

// Exchange is the pair of messages stored after a successful reply.
func Exchange(message, reply string) []engine.ChatMessage {
	return []engine.ChatMessage{
		{Role: "user", Content: strings.TrimSpace(message)},
		{Role: "assistant", Content: reply},
	}
}
