package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	"liferpg/internal/ai"
	"liferpg/internal/engine"
)

// maxPromptChars bounds the bytes of note text sent to the service.
const maxPromptChars = 6000

const analysisPrompt = `You analyze personal journal entries for a life-progress game.
Reply with ONLY a JSON object of this exact shape:
{"domains":{%s},"sentiment":0,"achievements":[],"challenges":[],"suggestedXP":0,"suggestedHPChange":0}
domains: relevance of the entry to each life domain, 0-10.
sentiment: overall tone, -10 (very negative) to 10 (very positive).
achievements, challenges: short phrases taken from the entry.
suggestedXP: 0-50, effort and growth shown.
suggestedHPChange: -20 to 10, effect on wellbeing.`

// aiReply is the decoded service reply. Pointers mark required fields.
type aiReply struct {
	Domains           map[string]float64 `json:"domains"`
	Sentiment         *float64           `json:"sentiment"`
	Achievements      []string           `json:"achievements"`
	Challenges        []string           `json:"challenges"`
	SuggestedXP       *float64           `json:"suggestedXP"`
	SuggestedHPChange *float64           `json:"suggestedHPChange"`
}

// Analyzer runs the offline heuristic and, when a configured client is
// present, augments it with the service's analysis.
type Analyzer struct {
	client ai.Completer
	log    *slog.Logger
}

// NewAnalyzer returns an analyzer; client may be nil for offline-only use.
func NewAnalyzer(client ai.Completer, log *slog.Logger) *Analyzer {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Analyzer{client: client, log: log}
}

func (a *Analyzer) UsesAI() bool {
	return a.client != nil && a.client.IsConfigured()
}

// Analyze never fails: service errors degrade to the offline result.
func (a *Analyzer) Analyze(ctx context.Context, n Note) Analysis {
	base := AnalyzeOffline(n)
	if !a.UsesAI() || strings.TrimSpace(n.Text) == "" {
		return base
	}
	res, err := a.analyzeAI(ctx, base)
	if err != nil {
		a.log.Warn("ai journal analysis failed, using offline analysis", "note", n.FileName, "error", err)
		return base
	}
	return res
}

func (a *Analyzer) analyzeAI(ctx context.Context, base OfflineAnalysis) (AIAnalysis, error) {
	text := truncateRunes(base.Source.Text, maxPromptChars)
	reply, err := a.client.Chat(ctx, []ai.Message{
		{Role: "system", Content: systemPrompt()},
		{Role: "user", Content: "Journal entry:\n\n" + text},
	})
	if err != nil {
		return AIAnalysis{}, err
	}
	return ParseAIReply(reply, base)
}

func systemPrompt() string {
	keys := make([]string, len(engine.DomainOrder))
	for i, id := range engine.DomainOrder {
		keys[i] = fmt.Sprintf("%q:0", id)
	}
	return fmt.Sprintf(analysisPrompt, strings.Join(keys, ","))
}

// ParseAIReply decodes a service reply, optionally fenced, and clamps every
// value into its documented range.
func ParseAIReply(reply string, base OfflineAnalysis) (AIAnalysis, error) {
	var r aiReply
	if err := json.Unmarshal([]byte(ai.StripCodeFence(reply)), &r); err != nil {
		return AIAnalysis{}, fmt.Errorf("decode analysis: %w", err)
	}
	switch {
	case r.Domains == nil:
		return AIAnalysis{}, errors.New("analysis missing domains")
	case r.Sentiment == nil:
		return AIAnalysis{}, errors.New("analysis missing sentiment")
	case r.SuggestedXP == nil:
		return AIAnalysis{}, errors.New("analysis missing suggestedXP")
	case r.SuggestedHPChange == nil:
		return AIAnalysis{}, errors.New("analysis missing suggestedHPChange")
	}

	rel := make(map[engine.DomainID]int, len(engine.DomainOrder))
	for _, id := range engine.DomainOrder {
		rel[id] = clampRound(r.Domains[string(id)], 0, MaxRelevance)
	}
	return AIAnalysis{
		Base:         base,
		Relevance:    rel,
		Sentiment:    clampRound(*r.Sentiment, -MaxAISentiment, MaxAISentiment),
		Achievements: trimList(r.Achievements),
		Challenges:   trimList(r.Challenges),
		SuggestedXP:  clampRound(*r.SuggestedXP, 0, MaxSuggestedXP),
		SuggestedHP:  clampRound(*r.SuggestedHPChange, MinSuggestedHP, MaxSuggestedHP),
	}, nil
}

// clampRound clamps in float64 before converting, since converting an
// out-of-range float to int is implementation-defined. NaN maps to lo.
func clampRound(v float64, lo, hi int) int {
	if math.IsNaN(v) {
		return lo
	}
	v = math.Max(float64(lo), math.Min(float64(hi), v))
	return int(math.Round(v))
}

// truncateRunes cuts s to at most n bytes without splitting a rune.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func trimList(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
