// Package quiz implements the quiz screen: loading, question-by-question
// play, and the error state with retry.
package quiz

import (
	"context"
	"math/rand/v2"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ZaneDavis9616/jlptn1/internal/bank"
	"github.com/ZaneDavis9616/jlptn1/internal/questiongen"
	qz "github.com/ZaneDavis9616/jlptn1/internal/quiz"
	"github.com/ZaneDavis9616/jlptn1/internal/router"
	"github.com/ZaneDavis9616/jlptn1/internal/screen"
	"github.com/ZaneDavis9616/jlptn1/internal/screens/results"
	"github.com/ZaneDavis9616/jlptn1/internal/ui/components"
	"github.com/ZaneDavis9616/jlptn1/internal/ui/layout"
	"github.com/ZaneDavis9616/jlptn1/internal/ui/theme"
)

// generationTimeout bounds one generation attempt. The spec of the external
// call has no cancellation of its own, so the screen enforces one.
const generationTimeout = 90 * time.Second

type phase int

const (
	phaseLoading phase = iota
	phaseActive
	phaseFailed
)

// QuizScreen runs one quiz over a category.
type QuizScreen struct {
	category  qz.Category
	generator questiongen.Generator
	banks     *bank.Banks

	phase   phase
	session *qz.Session
	choice  components.MultiChoice
	spin    spinner.Model
	errMsg  string

	// set after Check, cleared on Next
	lastCorrect bool
	saveErr     string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen for the category. Review categories draw from
// the mistake bank; all others go through the generator.
func New(category qz.Category, generator questiongen.Generator, banks *bank.Banks) *QuizScreen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Secondary)

	return &QuizScreen{
		category:  category,
		generator: generator,
		banks:     banks,
		phase:     phaseLoading,
		spin:      sp,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(s.loadBatch(), s.spin.Tick)
}

func (s *QuizScreen) Title() string {
	return s.category.Title
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseLoading:
		return []layout.KeyHint{
			{Key: "Esc", Description: "戻る"},
		}
	case phaseFailed:
		return []layout.KeyHint{
			{Key: "r", Description: "再試行"},
			{Key: "Esc", Description: "メニューへ"},
		}
	}
	if s.session != nil && s.session.Checked() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "次の問題"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑/↓ 1-4", Description: "選択"},
		{Key: "Enter", Description: "答え合わせ"},
		{Key: "Esc", Description: "中断"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case batchReadyMsg:
		questions := msg.Questions
		if !s.category.IsReview() {
			// Filtering here keeps the bank read on the event loop.
			questions = s.banks.FilterMastered(questions)
		}
		return s.startSession(questions)

	case batchFailedMsg:
		s.phase = phaseFailed
		s.errMsg = msg.Err.Error()
		return s, nil

	case emptyReviewMsg:
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case timerTickMsg:
		if s.phase != phaseActive || s.session.Finished() {
			return s, nil
		}
		s.session.TickSecond()
		return s, tickTimer()

	case spinner.TickMsg:
		if s.phase != phaseLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase {
	case phaseLoading:
		if key == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil

	case phaseFailed:
		switch key {
		case "r":
			s.phase = phaseLoading
			s.errMsg = ""
			return s, tea.Batch(s.loadBatch(), s.spin.Tick)
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	// Active quiz.
	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case "up", "k":
		s.choice.MoveUp()
		s.syncSelection()
	case "down", "j":
		s.choice.MoveDown()
		s.syncSelection()
	case "1", "2", "3", "4":
		s.choice.ChooseIndex(int(key[0] - '1'))
		s.syncSelection()
	case " ":
		s.choice.Choose()
		s.syncSelection()

	case "enter":
		if s.session.Checked() {
			return s.advance()
		}
		if !s.choice.HasChoice() {
			// Enter with only a cursor position selects first.
			s.choice.Choose()
			s.syncSelection()
		}
		return s.check()
	}

	return s, nil
}

// syncSelection mirrors the component's chosen option into the session.
func (s *QuizScreen) syncSelection() {
	if s.choice.HasChoice() {
		s.session.Select(s.choice.Chosen)
	}
}

// check reveals the answer, scores it, and reports the outcome to the banks.
// The report runs right here on the event loop: the banks are unguarded and
// every other access to them happens in Update or View. A failed write only
// loses persistence, so the quiz keeps going and the feedback notes it.
func (s *QuizScreen) check() (screen.Screen, tea.Cmd) {
	correct, ok := s.session.Check()
	if !ok {
		return s, nil
	}
	s.lastCorrect = correct
	s.choice.Reveal()

	q := *s.session.Current()
	if err := s.banks.Report(context.Background(), q, correct, s.category.IsReview()); err != nil {
		s.saveErr = "保存に失敗しました: " + err.Error()
	}
	return s, nil
}

// advance moves to the next question, or replaces this screen with the
// results screen after the last one.
func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	if done := s.session.Next(); done {
		res := results.New(results.Summary{
			Category:       s.category,
			Score:          s.session.Score(),
			Total:          s.session.Total(),
			Percentage:     s.session.Percentage(),
			ElapsedSeconds: s.session.ElapsedSeconds(),
		})
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: res} }
	}

	q := s.session.Current()
	s.choice = components.NewMultiChoice(q.Options, q.CorrectIndex)
	s.lastCorrect = false
	s.saveErr = ""
	return s, nil
}

func (s *QuizScreen) startSession(questions []qz.Question) (screen.Screen, tea.Cmd) {
	s.phase = phaseActive
	s.session = qz.NewSession(s.category, questions)

	q := s.session.Current()
	s.choice = components.NewMultiChoice(q.Options, q.CorrectIndex)
	return s, tickTimer()
}

// loadBatch produces the question set: straight from the mistake bank for
// the review category, from the generator otherwise. loadBatch itself runs
// on the event loop, so the review branch reads the bank here and the
// command only delivers the snapshot.
func (s *QuizScreen) loadBatch() tea.Cmd {
	if s.category.IsReview() {
		if s.banks.MistakeCount() == 0 {
			return func() tea.Msg { return emptyReviewMsg{} }
		}
		now := time.Now()
		rng := rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(now.Unix())))
		batch := s.banks.ReviewBatch(rng)
		return func() tea.Msg { return batchReadyMsg{Questions: batch} }
	}

	gen := s.generator
	cat := s.category
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generationTimeout)
		defer cancel()

		questions, err := gen.Generate(ctx, cat)
		if err != nil {
			return batchFailedMsg{Err: err}
		}
		return batchReadyMsg{Questions: questions}
	}
}

func tickTimer() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
