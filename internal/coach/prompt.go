package coach

import (
	"fmt"
	"sort"
	"strings"

	"liferpg/internal/engine"
)

// HistoryContext is how many past chat messages accompany a new one.
const HistoryContext = 10

const systemPrompt = `You are a life coach inside a Life RPG game. You help the player grow across nine life domains drawn from the Gross National Happiness framework:

%s
When given the player's domain scores, habits and quests:
- give actionable, specific advice
- be encouraging but honest
- suggest small, achievable steps
- reference their scores and patterns
- keep replies to two or three short paragraphs`

// Topics are canned coaching requests.
var Topics = map[string]string{
	"general":    "Based on my current domain scores, what's the single most impactful thing I could focus on this week to improve my overall well-being?",
	"motivation": "I'm feeling unmotivated today. Based on my character profile, give me a personalized pep talk and one small action I can take right now.",
	"habits":     "Look at my current habits and domain scores. Suggest one new habit I should add and one I should consider removing or modifying.",
	"progress":   "Analyze my domain scores. Which area has the most potential for quick improvement, and what specific actions would help?",
}

// TopicNames returns the topic keys in sorted order.
func TopicNames() []string {
	names := make([]string, 0, len(Topics))
	for k := range Topics {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// SystemPrompt lists the domains for the coach persona.
func SystemPrompt() string {
	var b strings.Builder
	for i, id := range engine.DomainOrder {
		info := id.Info()
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, info.Icon, info.Name)
	}
	return fmt.Sprintf(systemPrompt, b.String())
}

// CharacterContext summarizes the character for the coach. It is empty until
// the assessment has been completed.
func CharacterContext(s *engine.CharacterState) string {
	if !s.HasCharacter() {
		return ""
	}
	var b strings.Builder
	b.WriteString("[Character Context]\n")
	fmt.Fprintf(&b, "Name: %s\nLevel: %d\nHP: %d/%d\nGold: %d\n\nDomain Scores:\n",
		s.Profile.Name, s.Level, s.HP, s.MaxHP, s.Gold)
	for _, d := range s.Domains {
		info := d.ID.Info()
		fmt.Fprintf(&b, "- %s %s: %d%%\n", info.Icon, info.Name, d.Score)
	}

	ranked := RankDomains(s)
	fmt.Fprintf(&b, "\nTop Strengths: %s\n", joinDomains(reverse(ranked[len(ranked)-3:])))
	fmt.Fprintf(&b, "Growth Areas: %s\n\n", joinDomains(ranked[:3]))

	open, done, quests := 0, 0, 0
	for _, h := range s.Habits {
		if h.Completed {
			done++
		} else {
			open++
		}
	}
	for _, q := range s.Quests {
		if !q.Completed {
			quests++
		}
	}
	fmt.Fprintf(&b, "Active Habits: %d\nActive Quests: %d\nHabits Completed Today: %d\n\n", open, quests, done)
	return b.String()
}

// RankDomains orders domains from weakest to strongest score.
func RankDomains(s *engine.CharacterState) []engine.Domain {
	out := append([]engine.Domain(nil), s.Domains...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out
}

func reverse(ds []engine.Domain) []engine.Domain {
	out := make([]engine.Domain, len(ds))
	for i, d := range ds {
		out[len(ds)-1-i] = d
	}
	return out
}

func joinDomains(ds []engine.Domain) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		info := d.ID.Info()
		parts[i] = fmt.Sprintf("%s %s (%d%%)", info.Icon, info.Name, d.Score)
	}
	return strings.Join(parts, ", ")
}
