package attempt

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/saulo-duarte/socrates-lambda/internal/quiz"
)

func scoredSession() *quiz.HostedSession {
	return &quiz.HostedSession{
		ID:         "9b2c0a52-5f7e-4c39-9f1e-6f3f3a0d8a11",
		FileName:   "cells.txt",
		Difficulty: "beginner",
		Session: quiz.Session{
			State: quiz.StateScored,
			Report: &quiz.ScoreReport{
				Correct:    2,
				Total:      3,
				Percentage: 67,
				Results: []quiz.QuestionResult{
					{QuestionID: 1, Question: "One?", UserAnswer: "A", CorrectAnswer: "A", IsCorrect: true},
					{QuestionID: 2, Question: "Two?", UserAnswer: "B", CorrectAnswer: "B", IsCorrect: true},
					{QuestionID: 3, Question: "Three?", UserAnswer: "D", CorrectAnswer: "C"},
				},
			},
		},
	}
}

func TestServiceRecordAndRead(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewRepository(newTestDB(t)))

	if err := svc.Record(ctx, "u1", scoredSession()); err != nil {
		t.Fatalf("Record: %v", err)
	}

	list, err := svc.ListByUser(ctx, "u1")
	if err != nil || len(list) != 1 {
		t.Fatalf("ListByUser = %v, %v", list, err)
	}
	a := list[0]
	if a.Percentage != 67 || a.FileName != "cells.txt" || a.SessionID != "9b2c0a52-5f7e-4c39-9f1e-6f3f3a0d8a11" {
		t.Errorf("attempt = %+v", a)
	}

	var results []quiz.QuestionResult
	if err := json.Unmarshal(a.Results, &results); err != nil || len(results) != 3 || results[2].IsCorrect {
		t.Errorf("results = %+v, %v", results, err)
	}

	if _, err := svc.Get(ctx, "u1", a.ID.String()); err != nil {
		t.Errorf("Get own attempt: %v", err)
	}
	if _, err := svc.Get(ctx, "u2", a.ID.String()); !errors.Is(err, ErrAttemptNotFound) {
		t.Errorf("Get foreign attempt err = %v", err)
	}
	if _, err := svc.Get(ctx, "u1", "not-a-uuid"); !errors.Is(err, ErrAttemptNotFound) {
		t.Errorf("Get malformed id err = %v", err)
	}
}

func TestServiceRecordRequiresReport(t *testing.T) {
	svc := NewService(NewRepository(newTestDB(t)))
	hs := scoredSession()
	hs.Report = nil

	if err := svc.Record(context.Background(), "u1", hs); err == nil {
		t.Error("expected error for unscored session")
	}
}
