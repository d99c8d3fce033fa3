package quiz

import (
	"errors"
	"fmt"
	"math"

	"github.com/saulo-duarte/socrates-lambda/internal/aiquiz"
)

type State string

const (
	StateEmpty     State = "empty"
	StateLoaded    State = "loaded"
	StateAnswering State = "answering"
	StateScored    State = "scored"
)

var (
	ErrEmptyQuestionSet  = errors.New("question set is empty")
	ErrUnknownQuestion   = errors.New("unknown question id")
	ErrInvalidState      = errors.New("operation not allowed in current state")
	ErrIncompleteAnswers = errors.New("incomplete answers")
)

type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s a %s session", e.Op, e.State)
}

func (e *StateError) Unwrap() error { return ErrInvalidState }

type IncompleteAnswersError struct {
	Missing int
	Total   int
}

func (e *IncompleteAnswersError) Error() string {
	return fmt.Sprintf("%d of %d questions unanswered", e.Missing, e.Total)
}

func (e *IncompleteAnswersError) Unwrap() error { return ErrIncompleteAnswers }

type QuestionResult struct {
	QuestionID    int    `json:"questionId"`
	Question      string `json:"question"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation"`
}

type ScoreReport struct {
	Correct    int              `json:"correct"`
	Total      int              `json:"total"`
	Percentage int              `json:"percentage"`
	Results    []QuestionResult `json:"results"`
}

// Session is one quiz attempt over a generated question set. It performs no I/O.
type Session struct {
	State     State             `json:"state"`
	Questions []aiquiz.Question `json:"questions"`
	Answers   map[int]string    `json:"answers"`
	Report    *ScoreReport      `json:"report,omitempty"`
}

func NewSession() *Session {
	return &Session{State: StateEmpty, Answers: map[int]string{}}
}

// Load replaces the question set. Duplicate ids are renumbered by position so that
// every question can be answered independently.
func (s *Session) Load(questions []aiquiz.Question) error {
	if s.State != StateEmpty && s.State != StateLoaded {
		return &StateError{Op: "load", State: s.State}
	}
	if len(questions) == 0 {
		return ErrEmptyQuestionSet
	}

	qs := append([]aiquiz.Question(nil), questions...)
	seen := make(map[int]bool, len(qs))
	for _, q := range qs {
		if seen[q.ID] {
			for i := range qs {
				qs[i].ID = i + 1
			}
			break
		}
		seen[q.ID] = true
	}

	s.Questions = qs
	s.Answers = map[int]string{}
	s.Report = nil
	s.State = StateLoaded
	return nil
}

func (s *Session) question(id int) (aiquiz.Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return aiquiz.Question{}, false
}

// Answer records or overwrites the chosen option. The option key itself is not checked
// against the question's options.
func (s *Session) Answer(questionID int, option string) error {
	if s.State != StateLoaded && s.State != StateAnswering {
		return &StateError{Op: "answer", State: s.State}
	}
	if _, ok := s.question(questionID); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownQuestion, questionID)
	}
	if s.Answers == nil {
		s.Answers = map[int]string{}
	}
	s.Answers[questionID] = option
	s.State = StateAnswering
	return nil
}

func (s *Session) Submit() (*ScoreReport, error) {
	if s.State != StateLoaded && s.State != StateAnswering {
		return nil, &StateError{Op: "submit", State: s.State}
	}

	missing := 0
	for _, q := range s.Questions {
		if _, ok := s.Answers[q.ID]; !ok {
			missing++
		}
	}
	if missing > 0 {
		return nil, &IncompleteAnswersError{Missing: missing, Total: len(s.Questions)}
	}

	report := &ScoreReport{Total: len(s.Questions), Results: make([]QuestionResult, 0, len(s.Questions))}
	for _, q := range s.Questions {
		answer := s.Answers[q.ID]
		correct := answer == q.CorrectAnswer
		if correct {
			report.Correct++
		}
		report.Results = append(report.Results, QuestionResult{
			QuestionID:    q.ID,
			Question:      q.Question,
			UserAnswer:    answer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     correct,
			Explanation:   q.Explanation,
		})
	}
	report.Percentage = int(math.Round(100 * float64(report.Correct) / float64(report.Total)))

	s.Report = report
	s.State = StateScored
	return report, nil
}

// Reset clears answers and the report but keeps the question set and its order.
func (s *Session) Reset() error {
	if s.State != StateAnswering && s.State != StateScored && s.State != StateLoaded {
		return &StateError{Op: "reset", State: s.State}
	}
	s.Answers = map[int]string{}
	s.Report = nil
	s.State = StateLoaded
	return nil
}
