package notes

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// QuestTag marks a checked task line as a completed quest.
const QuestTag = "#quest"

// Content is the plain-text view of a note.
type Content struct {
	Text      string
	WordCount int
	Tags      []string
	// Quests holds the text of checked "- [x] ... #quest" items.
	Quests []string
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.TaskList, extension.Strikethrough))

// Parse extracts readable text, tags and checked quest items from markdown.
// Code blocks are skipped.
func Parse(raw []byte) Content {
	fm, body := splitFrontMatter(raw)
	doc := markdown.Parser().Parse(text.NewReader(body))

	var b strings.Builder
	var quests []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock:
			return ast.WalkSkipChildren, nil
		case ast.KindListItem:
			if entering {
				if q, ok := checkedQuest(n, body); ok {
					quests = append(quests, q)
				}
			}
		case ast.KindParagraph, ast.KindHeading, ast.KindTextBlock:
			if !entering {
				b.WriteByte('\n')
			}
		case ast.KindText:
			if entering {
				writeText(&b, n.(*ast.Text), body)
			}
		case ast.KindString:
			if entering {
				b.Write(n.(*ast.String).Value)
			}
		}
		return ast.WalkContinue, nil
	})

	plain := strings.TrimSpace(b.String())
	tags := append([]string(nil), fm.Tags...)
	tags = append(tags, inlineTags(plain)...)
	return Content{
		Text:      plain,
		WordCount: len(strings.Fields(plain)),
		Tags:      tags,
		Quests:    quests,
	}
}

func writeText(b *strings.Builder, t *ast.Text, src []byte) {
	b.Write(t.Segment.Value(src))
	if t.SoftLineBreak() || t.HardLineBreak() {
		b.WriteByte(' ')
	}
}

// checkedQuest reports the text of a list item that starts with a checked
// task box and carries the quest tag.
func checkedQuest(item ast.Node, src []byte) (string, bool) {
	block := item.FirstChild()
	if block == nil {
		return "", false
	}
	box, ok := block.FirstChild().(*extast.TaskCheckBox)
	if !ok || !box.IsChecked {
		return "", false
	}
	var b strings.Builder
	for c := box.NextSibling(); c != nil; c = c.NextSibling() {
		_ = ast.Walk(c, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if entering {
				if t, ok := n.(*ast.Text); ok {
					writeText(&b, t, src)
				}
			}
			return ast.WalkContinue, nil
		})
	}
	line := strings.TrimSpace(b.String())
	if !strings.Contains(strings.ToLower(line), QuestTag) {
		return "", false
	}
	return line, true
}
