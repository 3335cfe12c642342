package root

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"liferpg/internal/engine"
	"liferpg/internal/ui"
)

// answerFile is the non-interactive assessment input.
type answerFile struct {
	Name    string         `yaml:"name"`
	Answers map[string]int `yaml:"answers"`
}

func loadAnswerFile(path string) (*answerFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	var f answerFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse answers %s: %w", path, err)
	}
	if len(f.Answers) == 0 {
		return nil, fmt.Errorf("answers %s: no answers", path)
	}
	return &f, nil
}

func (f *answerFile) session() (*engine.AssessmentSession, error) {
	ids := make([]string, 0, len(f.Answers))
	for id := range f.Answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	session := engine.NewAssessmentSession()
	for _, id := range ids {
		if err := session.Answer(id, f.Answers[id]); err != nil {
			return nil, err
		}
	}
	return session, nil
}

func newAssessCmd() *cobra.Command {
	var answersPath string
	var name string
	var list bool

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Take (or retake) the life assessment",
		Long: "Answers each question on a 1-5 scale (1 strongly disagree, 5 strongly agree).\n" +
			"Unanswered domains start neutral. A retake backs up the current character first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if list {
				printQuestions(w)
				return nil
			}

			var session *engine.AssessmentSession
			if answersPath != "" {
				f, err := loadAnswerFile(answersPath)
				if err != nil {
					return err
				}
				if name == "" {
					name = f.Name
				}
				if session, err = f.session(); err != nil {
					return err
				}
			} else {
				var err error
				in := bufio.NewReader(cmd.InOrStdin())
				if name == "" {
					if name, err = prompt(w, in, "Hero name: "); err != nil {
						return err
					}
				}
				if session, err = askQuestions(w, in); err != nil {
					return err
				}
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out, err := svc.Assess(ctx, name, session)
			if err != nil {
				return err
			}
			printOutcome(w, out)
			answered, total := session.Progress()
			fmt.Fprintln(w, ui.Muted.Render(fmt.Sprintf("%d of %d questions answered. Run `rpg status` to see your character.", answered, total)))
			return nil
		},
	}

	cmd.Flags().StringVar(&answersPath, "answers", "", "YAML file with name and answers (questionId: 1-5)")
	cmd.Flags().StringVar(&name, "name", "", "Hero name")
	cmd.Flags().BoolVar(&list, "list", false, "List the questions and exit")

	return cmd
}

func printQuestions(w io.Writer) {
	for _, d := range engine.DomainOrder {
		fmt.Fprintln(w, ui.H2.Render(ui.DomainLabel(d)))
		for _, q := range engine.QuestionsForDomain(d) {
			fmt.Fprintf(w, "- %s %s\n", ui.Key.Render(q.ID), q.Text)
		}
		fmt.Fprintln(w, "")
	}
}

// askQuestions walks the bank in order. An empty line skips a question and
// "q" stops early.
func askQuestions(w io.Writer, in *bufio.Reader) (*engine.AssessmentSession, error) {
	session := engine.NewAssessmentSession()
	questions := engine.Questions()
	var domain engine.DomainID
	for i, q := range questions {
		if q.Domain != domain {
			domain = q.Domain
			fmt.Fprintln(w, "")
			fmt.Fprintln(w, ui.H2.Render(ui.DomainLabel(domain)))
		}
		fmt.Fprintf(w, "%s %s\n", ui.Muted.Render(fmt.Sprintf("[%d/%d]", i+1, len(questions))), q.Text)
		if q.Hint != "" {
			fmt.Fprintln(w, ui.Muted.Render("  "+q.Hint))
		}
		for {
			line, err := prompt(w, in, "  1-5 (enter to skip, q to stop): ")
			if err != nil {
				return nil, err
			}
			if line == "" {
				break
			}
			if strings.EqualFold(line, "q") {
				return session, nil
			}
			v, err := strconv.Atoi(line)
			if err == nil {
				err = session.Answer(q.ID, v)
			}
			if err == nil {
				break
			}
			fmt.Fprintln(w, ui.Warn.Render("  enter a number from 1 to 5"))
		}
	}
	return session, nil
}

func prompt(w io.Writer, in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(w, label)
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", errors.New("assessment aborted: input closed")
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
