package aiquiz

import "time"

// Question is one multiple-choice item. Options are keyed "A".."D".
type Question struct {
	ID            int               `json:"id"`
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correctAnswer"`
	Explanation   string            `json:"explanation"`
}

type GenerateRequest struct {
	FileContent        string `json:"fileContent"`
	FileName           string `json:"fileName"`
	QuestionCount      int    `json:"questionCount,omitempty"`
	Difficulty         string `json:"difficulty,omitempty"`
	CustomInstructions string `json:"customInstructions,omitempty"`
}

type Metadata struct {
	FileName      string    `json:"fileName"`
	QuestionCount int       `json:"questionCount"`
	Difficulty    string    `json:"difficulty"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

type GenerateResponse struct {
	Success   bool       `json:"success"`
	Questions []Question `json:"questions"`
	Metadata  Metadata   `json:"metadata"`
}

type FailureResponse struct {
	Error             string     `json:"error"`
	Details           string     `json:"details"`
	FallbackQuestions []Question `json:"fallbackQuestions"`
}

const (
	DefaultQuestionCount = 5
	MaxQuestionCount     = 20
	DefaultDifficulty    = "intermediate"
	DefaultFileName      = "document.txt"
)

// FallbackQuestions is returned alongside generation failures so the client always has
// something to render.
func FallbackQuestions() []Question {
	return []Question{{
		ID:       1,
		Question: "We could not generate questions from this file. What would you like to do?",
		Options: map[string]string{
			"A": "Try generating the quiz again",
			"B": "Upload a different file",
			"C": "Use a shorter excerpt of the file",
			"D": "Simplify the custom instructions",
		},
		CorrectAnswer: "A",
		Explanation:   "Question generation failed. Retrying usually produces a fresh set of questions.",
	}}
}
