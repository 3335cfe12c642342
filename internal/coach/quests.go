package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"liferpg/internal/ai"
	"liferpg/internal/engine"
)

const (
	DefaultQuestCount = 3
	weakestDomains    = 3

	minQuestXP, maxQuestXP     = 10, 100
	minQuestGold, maxQuestGold = 5, 50
)

// Generated is a batch of suggested quests. Fallback is set when the AI path
// failed and the offline templates were used instead.
type Generated struct {
	Quests   []engine.QuestInput
	Source   engine.QuestSource
	Fallback error
}

type aiQuest struct {
	Name       string `json:"name"`
	Domain     string `json:"domain"`
	Difficulty string `json:"difficulty"`
	XP         int    `json:"xp"`
	Gold       int    `json:"gold"`
}

// GenerateQuests suggests count quests aimed at the weakest domains.
func (c *Coach) GenerateQuests(ctx context.Context, s *engine.CharacterState, count int) Generated {
	if count <= 0 {
		count = DefaultQuestCount
	}
	if c.Available() {
		quests, err := c.generateAI(ctx, s, count)
		if err == nil {
			return Generated{Quests: quests, Source: engine.QuestAI}
		}
		c.log.Warn("ai quest generation failed, using offline templates", "error", err)
		return Generated{Quests: OfflineQuests(s, count), Source: engine.QuestOffline, Fallback: err}
	}
	return Generated{Quests: OfflineQuests(s, count), Source: engine.QuestOffline}
}

func questPrompt(s *engine.CharacterState, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on my lowest-scoring life domains, generate %d specific, actionable quests I can complete this week.\n\nMy weakest domains are:\n", count)
	for _, d := range RankDomains(s)[:weakestDomains] {
		info := d.ID.Info()
		fmt.Fprintf(&b, "- %s %s (id %s): %d%%\n", info.Icon, info.Name, d.ID, d.Score)
	}
	b.WriteString(`
For each quest give a clear name (5-10 words), the target domain id, a difficulty (easy/medium/hard), an XP reward (10-100) and a gold reward (5-50).
Reply with ONLY a JSON array:
[{"name": "Quest name", "domain": "domainId", "difficulty": "medium", "xp": 30, "gold": 15}]`)
	return b.String()
}

func (c *Coach) generateAI(ctx context.Context, s *engine.CharacterState, count int) ([]engine.QuestInput, error) {
	reply, err := c.client.Chat(ctx, []ai.Message{
		{Role: "system", Content: SystemPrompt()},
		{Role: "user", Content: CharacterContext(s) + questPrompt(s, count)},
	})
	if err != nil {
		return nil, err
	}
	return ParseQuests(reply, count)
}

// ParseQuests decodes a JSON array of quests, optionally fenced. Entries with
// no name or an unknown domain are dropped; rewards are clamped.
func ParseQuests(reply string, limit int) ([]engine.QuestInput, error) {
	var raw []aiQuest
	if err := json.Unmarshal([]byte(ai.StripCodeFence(reply)), &raw); err != nil {
		return nil, fmt.Errorf("invalid quest format: %w", err)
	}
	var out []engine.QuestInput
	for _, q := range raw {
		name := strings.TrimSpace(q.Name)
		domain, err := engine.ParseDomain(q.Domain)
		if name == "" || err != nil {
			continue
		}
		out = append(out, engine.QuestInput{
			Name:       name,
			Domain:     domain,
			Difficulty: engine.ParseDifficulty(q.Difficulty),
			XP:         max(minQuestXP, min(maxQuestXP, q.XP)),
			Gold:       max(minQuestGold, min(maxQuestGold, q.Gold)),
			Source:     engine.QuestAI,
		})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no usable quests in reply")
	}
	return out, nil
}
