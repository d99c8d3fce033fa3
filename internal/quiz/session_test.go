package quiz

import (
	"errors"
	"reflect"
	"testing"

	"github.com/saulo-duarte/socrates-lambda/internal/aiquiz"
)

func sampleQuestions() []aiquiz.Question {
	opts := map[string]string{"A": "1", "B": "2", "C": "3", "D": "4"}
	return []aiquiz.Question{
		{ID: 1, Question: "One?", Options: opts, CorrectAnswer: "A", Explanation: "first"},
		{ID: 2, Question: "Two?", Options: opts, CorrectAnswer: "B", Explanation: "second"},
		{ID: 3, Question: "Three?", Options: opts, CorrectAnswer: "C", Explanation: "third"},
	}
}

func loadedSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession()
	if err := s.Load(sampleQuestions()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func TestSessionScoresTwoOfThree(t *testing.T) {
	s := loadedSession(t)
	_ = s.Answer(1, "A")
	_ = s.Answer(2, "B")
	_ = s.Answer(3, "D")

	report, err := s.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if report.Correct != 2 || report.Total != 3 || report.Percentage != 67 {
		t.Errorf("report = %d/%d %d%%, want 2/3 67%%", report.Correct, report.Total, report.Percentage)
	}
	if s.State != StateScored {
		t.Errorf("state = %s, want scored", s.State)
	}
	last := report.Results[2]
	if last.IsCorrect || last.UserAnswer != "D" || last.CorrectAnswer != "C" || last.Explanation != "third" {
		t.Errorf("third result = %+v", last)
	}
}

func TestSessionSubmitIncomplete(t *testing.T) {
	s := loadedSession(t)
	_ = s.Answer(2, "B")

	_, err := s.Submit()

	var incomplete *IncompleteAnswersError
	if !errors.As(err, &incomplete) || incomplete.Missing != 2 || incomplete.Total != 3 {
		t.Fatalf("err = %v, want 2 missing", err)
	}
	if !errors.Is(err, ErrIncompleteAnswers) {
		t.Errorf("errors.Is(ErrIncompleteAnswers) = false")
	}
	if s.State != StateAnswering || s.Report != nil {
		t.Errorf("failed submit changed the session: %s %+v", s.State, s.Report)
	}
}

func TestSessionResetKeepsQuestions(t *testing.T) {
	s := loadedSession(t)
	before := append([]aiquiz.Question(nil), s.Questions...)
	for _, q := range s.Questions {
		_ = s.Answer(q.ID, "A")
	}
	if _, err := s.Submit(); err != nil {
		t.Fatal(err)
	}

	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}

	if s.State != StateLoaded || len(s.Answers) != 0 || s.Report != nil {
		t.Errorf("after reset: state %s, answers %v, report %v", s.State, s.Answers, s.Report)
	}
	if !reflect.DeepEqual(s.Questions, before) {
		t.Errorf("question set changed on reset")
	}
}

func TestSessionAnswerOverwrites(t *testing.T) {
	s := loadedSession(t)
	_ = s.Answer(1, "B")
	_ = s.Answer(1, "A")
	_ = s.Answer(2, "zzz")

	if s.Answers[1] != "A" {
		t.Errorf("answer 1 = %q, want A", s.Answers[1])
	}
	if s.Answers[2] != "zzz" {
		t.Errorf("option keys are not validated, got %q", s.Answers[2])
	}
}

func TestSessionTransitions(t *testing.T) {
	t.Run("load empty set", func(t *testing.T) {
		s := NewSession()
		if err := s.Load(nil); !errors.Is(err, ErrEmptyQuestionSet) {
			t.Errorf("err = %v", err)
		}
		if s.State != StateEmpty {
			t.Errorf("state = %s", s.State)
		}
	})

	t.Run("answer before load", func(t *testing.T) {
		if err := NewSession().Answer(1, "A"); !errors.Is(err, ErrInvalidState) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("submit before load", func(t *testing.T) {
		if _, err := NewSession().Submit(); !errors.Is(err, ErrInvalidState) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("unknown question", func(t *testing.T) {
		s := loadedSession(t)
		if err := s.Answer(42, "A"); !errors.Is(err, ErrUnknownQuestion) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("load while answering", func(t *testing.T) {
		s := loadedSession(t)
		_ = s.Answer(1, "A")
		var stateErr *StateError
		if err := s.Load(sampleQuestions()); !errors.As(err, &stateErr) || stateErr.Op != "load" {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("answer after scoring", func(t *testing.T) {
		s := loadedSession(t)
		for _, q := range s.Questions {
			_ = s.Answer(q.ID, q.CorrectAnswer)
		}
		report, _ := s.Submit()
		if report.Percentage != 100 {
			t.Errorf("percentage = %d", report.Percentage)
		}
		if err := s.Answer(1, "B"); !errors.Is(err, ErrInvalidState) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("reload replaces set and clears answers", func(t *testing.T) {
		s := loadedSession(t)
		if err := s.Load(sampleQuestions()[:1]); err != nil {
			t.Fatal(err)
		}
		if len(s.Questions) != 1 || len(s.Answers) != 0 {
			t.Errorf("questions %d answers %d", len(s.Questions), len(s.Answers))
		}
	})

	t.Run("reset empty", func(t *testing.T) {
		if err := NewSession().Reset(); !errors.Is(err, ErrInvalidState) {
			t.Errorf("err = %v", err)
		}
	})
}

func TestSessionLoadRenumbersDuplicateIDs(t *testing.T) {
	qs := sampleQuestions()
	qs[2].ID = 1

	s := NewSession()
	if err := s.Load(qs); err != nil {
		t.Fatal(err)
	}

	for i, q := range s.Questions {
		if q.ID != i+1 {
			t.Errorf("question %d id = %d", i, q.ID)
		}
	}
	if qs[2].ID != 1 {
		t.Errorf("caller's slice was modified")
	}
}
