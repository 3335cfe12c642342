package journal

import (
	"context"
	"errors"
	"strings"
	"os"
	"path/filepath"
	"testing"
	"time"
	"unicode/utf8"

	"liferpg/internal/ai"
	"liferpg/internal/engine"
	"liferpg/internal/notes"
)

type fakeCompleter struct {
	reply    string
	err      error
	calls    int
	messages []ai.Message
}

func (f *fakeCompleter) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	f.calls++
	f.messages = messages
	return f.reply, f.err
}

func (f *fakeCompleter) IsConfigured() bool { return true }

var syncTime = time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC)

func TestAnalyzeOffline(t *testing.T) {
	a := AnalyzeOffline(Note{FileName: "a.md", Text: "I went for a RUN and felt great, happy and proud."})
	if a.Sentiment != 3 {
		t.Errorf("Sentiment=%d, want 3", a.Sentiment)
	}
	if a.Relevance[engine.DomainHealth] != 2 || a.Relevance[engine.DomainPsychological] != 2 {
		t.Errorf("Relevance=%v", a.Relevance)
	}
	if a.Relevance[engine.DomainLiving] != 0 {
		t.Errorf("living relevance=%d, want 0", a.Relevance[engine.DomainLiving])
	}
	xp, hp := Suggestion(a)
	if xp != 15 || hp != 3 {
		t.Errorf("Suggestion=(%d,%d), want (15,3)", xp, hp)
	}
}

func TestRelevanceCapped(t *testing.T) {
	a := AnalyzeOffline(Note{Text: strings.Repeat("gym ", 20)})
	if a.Relevance[engine.DomainHealth] != MaxRelevance {
		t.Fatalf("relevance=%d, want %d", a.Relevance[engine.DomainHealth], MaxRelevance)
	}
}

func TestOfflineSuggestion(t *testing.T) {
	tests := []struct {
		sentiment int
		xp, hp    int
	}{
		{0, 0, 0},
		{2, 10, 0},
		{3, 15, 3},
		{15, 75, 10},
		{-2, 0, 0},
		{-3, 0, -6},
		{-15, 0, -20},
	}
	for _, tt := range tests {
		xp, hp := offlineSuggestion(tt.sentiment)
		if xp != tt.xp || hp != tt.hp {
			t.Errorf("offlineSuggestion(%d)=(%d,%d), want (%d,%d)", tt.sentiment, xp, hp, tt.xp, tt.hp)
		}
	}
}

func TestParseAIReply(t *testing.T) {
	base := AnalyzeOffline(Note{FileName: "n.md", Text: "hello"})
	reply := "```json\n{\"domains\":{\"health\":14,\"education\":6.4,\"bogus\":9},\"sentiment\":-30," +
		"\"achievements\":[\" ran 5k \",\"\"],\"challenges\":[],\"suggestedXP\":90,\"suggestedHPChange\":-50}\n```"
	got, err := ParseAIReply(reply, base)
	if err != nil {
		t.Fatalf("ParseAIReply: %v", err)
	}
	if got.Relevance[engine.DomainHealth] != 10 || got.Relevance[engine.DomainEducation] != 6 {
		t.Errorf("Relevance=%v", got.Relevance)
	}
	if got.Sentiment != -10 || got.SuggestedXP != 50 || got.SuggestedHP != -20 {
		t.Errorf("clamped values: sentiment=%d xp=%d hp=%d", got.Sentiment, got.SuggestedXP, got.SuggestedHP)
	}
	if len(got.Achievements) != 1 || got.Achievements[0] != "ran 5k" {
		t.Errorf("Achievements=%q", got.Achievements)
	}
}

func TestParseAIReplyClampsHugeValues(t *testing.T) {
	base := AnalyzeOffline(Note{FileName: "n.md"})
	tests := []struct {
		name                  string
		v                     string
		sentiment, xp, hp, hl int
	}{
		{"huge positive", "1e300", 10, 50, 10, 10},
		{"huge negative", "-1e300", -10, 0, -20, 0},
		{"half rounds away from zero", "-0.5", -1, 0, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := `{"domains":{"health":` + tt.v + `},"sentiment":` + tt.v +
				`,"suggestedXP":` + tt.v + `,"suggestedHPChange":` + tt.v + `}`
			got, err := ParseAIReply(reply, base)
			if err != nil {
				t.Fatalf("ParseAIReply: %v", err)
			}
			if got.Sentiment != tt.sentiment || got.SuggestedXP != tt.xp || got.SuggestedHP != tt.hp {
				t.Errorf("sentiment=%d xp=%d hp=%d, want %d %d %d", got.Sentiment, got.SuggestedXP, got.SuggestedHP, tt.sentiment, tt.xp, tt.hp)
			}
			if h := got.Relevance[engine.DomainHealth]; h != tt.hl {
				t.Errorf("health=%d, want %d", h, tt.hl)
			}
		})
	}
}

func TestTruncateRunesKeepsValidUTF8(t *testing.T) {
	s := strings.Repeat("a", maxPromptChars-1) + "é and more"
	got := truncateRunes(s, maxPromptChars)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated text is not valid UTF-8")
	}
	if len(got) != maxPromptChars-1 {
		t.Errorf("len=%d, want %d", len(got), maxPromptChars-1)
	}
	if short := truncateRunes("héllo", maxPromptChars); short != "héllo" {
		t.Errorf("short text changed: %q", short)
	}
}

func TestAnalyzerSendsValidUTF8(t *testing.T) {
	fc := &fakeCompleter{reply: `{"domains":{},"sentiment":0,"suggestedXP":0,"suggestedHPChange":0}`}
	text := strings.Repeat("a", maxPromptChars-1) + "日本"
	NewAnalyzer(fc, nil).Analyze(context.Background(), Note{FileName: "a.md", Text: text})
	if len(fc.messages) != 2 || !utf8.ValidString(fc.messages[1].Content) {
		t.Fatalf("prompt is not valid UTF-8")
	}
}

func TestParseAIReplyRejectsMalformed(t *testing.T) {
	base := AnalyzeOffline(Note{})
	tests := []struct {
		name  string
		reply string
	}{
		{"not json", "I think this entry is lovely"},
		{"missing sentiment", `{"domains":{},"suggestedXP":1,"suggestedHPChange":0}`},
		{"missing domains", `{"sentiment":1,"suggestedXP":1,"suggestedHPChange":0}`},
		{"array", `[1,2,3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseAIReply(tt.reply, base); err == nil {
				t.Fatalf("expected error for %q", tt.reply)
			}
		})
	}
}

func TestAnalyzerFallsBackToOffline(t *testing.T) {
	n := Note{FileName: "a.md", Text: "great day"}
	tests := []struct {
		name string
		fc   *fakeCompleter
	}{
		{"service error", &fakeCompleter{err: &ai.APIError{StatusCode: 500, Body: "boom"}}},
		{"garbage reply", &fakeCompleter{reply: "{not json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnalyzer(tt.fc, nil).Analyze(context.Background(), n)
			if _, ok := a.(OfflineAnalysis); !ok {
				t.Fatalf("got %T, want OfflineAnalysis", a)
			}
			if tt.fc.calls != 1 {
				t.Errorf("calls=%d, want 1", tt.fc.calls)
			}
		})
	}
}

func TestAnalyzerUsesAI(t *testing.T) {
	fc := &fakeCompleter{reply: `{"domains":{"health":8},"sentiment":5,"achievements":["gym"],"challenges":[],"suggestedXP":30,"suggestedHPChange":5}`}
	a := NewAnalyzer(fc, nil).Analyze(context.Background(), Note{FileName: "a.md", Text: "went to the gym"})
	res, ok := a.(AIAnalysis)
	if !ok {
		t.Fatalf("got %T, want AIAnalysis", a)
	}
	xp, hp := Suggestion(res)
	if xp != 30 || hp != 5 {
		t.Errorf("Suggestion=(%d,%d), want (30,5)", xp, hp)
	}
	impact := Impact(res)
	if impact[engine.DomainHealth] != 2 {
		t.Errorf("health impact=%v, want 2", impact[engine.DomainHealth])
	}
}

func TestMergeBounded(t *testing.T) {
	base := AnalyzeOffline(Note{FileName: "x.md", WordCount: 250})
	extreme := AIAnalysis{
		Base:        base,
		Relevance:   map[engine.DomainID]int{engine.DomainHealth: 10, engine.DomainEcology: 10},
		Sentiment:   10,
		SuggestedXP: 50,
		SuggestedHP: 10,
	}
	negative := extreme
	negative.Relevance = map[engine.DomainID]int{engine.DomainEcology: 10}
	negative.Sentiment = -10

	d := Merge([]Analysis{extreme, extreme, negative}, syncTime)
	if d.DomainDeltas[engine.DomainHealth] != 3 {
		t.Errorf("health delta=%d, want 3", d.DomainDeltas[engine.DomainHealth])
	}
	if _, ok := d.DomainDeltas[engine.DomainEcology]; !ok || d.DomainDeltas[engine.DomainEcology] != 2 {
		t.Errorf("ecology delta=%d, want 2", d.DomainDeltas[engine.DomainEcology])
	}
	for id, v := range d.DomainDeltas {
		if v < -engine.MaxSyncDomainDelta || v > engine.MaxSyncDomainDelta {
			t.Errorf("%s delta %d out of bounds", id, v)
		}
	}
	if d.XP != 150 || d.HPDelta != 30 || d.Gold != 6 {
		t.Errorf("XP=%d HP=%d Gold=%d, want 150 30 6", d.XP, d.HPDelta, d.Gold)
	}
	if len(d.Records) != 3 || d.Records[0].Source != SourceAI {
		t.Errorf("Records=%+v", d.Records)
	}
}

func TestMergeOrderIndependent(t *testing.T) {
	notesIn := []Note{
		{FileName: "a.md", Text: "Great run at the gym, happy and proud", WordCount: 120, Quests: []string{"run #quest"}},
		{FileName: "b.md", Text: "Stressed and tired about money and rent, awful", WordCount: 340},
		{FileName: "c.md", Text: "Read a book and learned a new skill", WordCount: 80},
	}
	var forward, backward []Analysis
	for _, n := range notesIn {
		forward = append(forward, AnalyzeOffline(n))
	}
	for i := len(forward) - 1; i >= 0; i-- {
		backward = append(backward, forward[i])
	}

	a := Merge(forward, syncTime)
	b := Merge(backward, syncTime)
	if a.XP != b.XP || a.Gold != b.Gold || a.HPDelta != b.HPDelta {
		t.Fatalf("totals differ: %+v vs %+v", a, b)
	}
	if len(a.DomainDeltas) != len(b.DomainDeltas) {
		t.Fatalf("domain deltas differ: %v vs %v", a.DomainDeltas, b.DomainDeltas)
	}
	for id, v := range a.DomainDeltas {
		if b.DomainDeltas[id] != v {
			t.Errorf("%s: %d vs %d", id, v, b.DomainDeltas[id])
		}
	}
	if len(a.NoteQuests) != 1 || len(b.NoteQuests) != 1 {
		t.Errorf("note quests=%d/%d, want 1", len(a.NoteQuests), len(b.NoteQuests))
	}
	if a.Gold != 4 {
		t.Errorf("Gold=%d, want 4", a.Gold)
	}
}

type fakeSource struct {
	list    []notes.Note
	content map[string]notes.Content
}

func (f *fakeSource) ListModifiedSince(ctx context.Context, since time.Time) ([]notes.Note, error) {
	var out []notes.Note
	for _, n := range f.list {
		if n.ModTime.After(since) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeSource) ReadNote(ctx context.Context, id string) (notes.Content, error) {
	c, ok := f.content[id]
	if !ok {
		return notes.Content{}, errors.New("permission denied")
	}
	return c, nil
}

func TestSyncerRun(t *testing.T) {
	src := &fakeSource{
		list: []notes.Note{
			{ID: "a.md", ModTime: syncTime.Add(-2 * time.Hour)},
			{ID: "locked.md", ModTime: syncTime.Add(-time.Hour)},
		},
		content: map[string]notes.Content{
			"a.md": {Text: "Great gym session", WordCount: 230, Quests: []string{"Finish report #quest"}},
		},
	}
	eng := engine.New(nil, engine.WithClock(func() time.Time { return syncTime }))
	syncer := NewSyncer(src, nil, nil).WithClock(func() time.Time { return syncTime })

	b, out, err := syncer.Run(context.Background(), eng)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if b.Analyzed != 1 || len(b.Skipped) != 1 || b.Skipped[0] != "locked.md" {
		t.Fatalf("batch=%+v", b)
	}
	if !out.Has(engine.EventJournalSynced) || !out.Has(engine.EventNoteQuest) {
		t.Errorf("events=%+v", out.Events)
	}
	s := eng.State()
	if s.Journal.TotalEntriesSynced != 1 || !s.Journal.LastSyncAt.Equal(syncTime) {
		t.Errorf("journal meta=%+v", s.Journal)
	}
	// 2 gold from words plus the note quest reward.
	if s.TotalGoldEarned < 2+engine.NoteQuestGold {
		t.Errorf("TotalGoldEarned=%d", s.TotalGoldEarned)
	}

	again, _, err := syncer.Run(context.Background(), eng)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if again.Analyzed != 0 {
		t.Errorf("second sync analyzed %d notes, want 0", again.Analyzed)
	}
}

func TestCollectSkipsUnreadableTaggedNote(t *testing.T) {
	root := t.TempDir()
	good := filepath.Join(root, "good.md")
	if err := os.WriteFile(good, []byte("Great gym session #journal"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(root, "gone.md"), filepath.Join(root, "broken.md")); err != nil {
		t.Skipf("symlink: %v", err)
	}

	syncer := NewSyncer(notes.NewDirSource(root, "", "journal"), nil, nil).WithClock(func() time.Time { return syncTime })
	b, err := syncer.Collect(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if b.Analyzed != 1 || len(b.Skipped) != 1 || b.Skipped[0] != "broken.md" {
		t.Fatalf("batch=%+v", b)
	}
}
