package quiz

import (
	"time"

	"github.com/saulo-duarte/socrates-lambda/internal/aiquiz"
)

// HostedSession is a Session persisted between requests.
type HostedSession struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName,omitempty"`
	Difficulty string    `json:"difficulty,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Session
}

type QuestionView struct {
	ID            int               `json:"id"`
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correctAnswer,omitempty"`
	Explanation   string            `json:"explanation,omitempty"`
}

type SessionView struct {
	ID         string         `json:"id"`
	State      State          `json:"state"`
	FileName   string         `json:"fileName,omitempty"`
	Difficulty string         `json:"difficulty,omitempty"`
	Questions  []QuestionView `json:"questions"`
	Answers    map[int]string `json:"answers"`
	Report     *ScoreReport   `json:"report,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// NewSessionView renders a session for clients. Correct answers and explanations stay
// hidden until the session is scored.
func NewSessionView(s *HostedSession) SessionView {
	reveal := s.State == StateScored

	questions := make([]QuestionView, 0, len(s.Questions))
	for _, q := range s.Questions {
		v := QuestionView{ID: q.ID, Question: q.Question, Options: q.Options}
		if reveal {
			v.CorrectAnswer = q.CorrectAnswer
			v.Explanation = q.Explanation
		}
		questions = append(questions, v)
	}

	answers := s.Answers
	if answers == nil {
		answers = map[int]string{}
	}

	return SessionView{
		ID:         s.ID,
		State:      s.State,
		FileName:   s.FileName,
		Difficulty: s.Difficulty,
		Questions:  questions,
		Answers:    answers,
		Report:     s.Report,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

type AnswerRequest struct {
	QuestionID int    `json:"questionId"`
	Option     string `json:"option"`
}

// GenerateSessionRequest carries the same fields as the document-to-MCQ endpoint.
type GenerateSessionRequest = aiquiz.GenerateRequest
