package aiquiz

import (
	"fmt"
	"path/filepath"
	"strings"
)

type SourceKind string

const (
	SourceCode     SourceKind = "Code"
	SourceDocument SourceKind = "Document"
)

var codeExtensions = map[string]bool{
	".go": true, ".py": true, ".js": true, ".ts": true, ".jsx": true, ".tsx": true,
	".java": true, ".c": true, ".h": true, ".cpp": true, ".hpp": true, ".cs": true,
	".rb": true, ".php": true, ".rs": true, ".kt": true, ".swift": true, ".scala": true,
	".sql": true, ".sh": true, ".html": true, ".css": true,
}

func ClassifySource(fileName string) SourceKind {
	if codeExtensions[strings.ToLower(filepath.Ext(fileName))] {
		return SourceCode
	}
	return SourceDocument
}

const SystemPrompt = `You are Socrates, a tutor that writes multiple-choice questions from study material.
Every question has exactly one correct option. Distractors are plausible and similar in length to the correct option.
You reply with a JSON array only: no markdown, no commentary, no text before or after the array.`

type PromptInput struct {
	FileName           string
	FileContent        string
	QuestionCount      int
	Difficulty         string
	CustomInstructions string
}

// BuildPrompt renders the user instruction for one generation call.
func BuildPrompt(in PromptInput) string {
	kind := ClassifySource(in.FileName)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Source type: %s\n", kind)
	fmt.Fprintf(&sb, "File name: %s\n\n", in.FileName)

	fmt.Fprintf(&sb, "Generate %d multiple-choice questions at %s difficulty based on the %s below.\n",
		in.QuestionCount, in.Difficulty, strings.ToLower(string(kind)))

	if kind == SourceCode {
		sb.WriteString("Focus on program logic, control flow, likely bugs, and best practices shown or violated by the code.\n")
	} else {
		sb.WriteString("Focus on the key concepts, principles, definitions, and relationships between ideas in the document.\n")
	}

	if custom := strings.TrimSpace(in.CustomInstructions); custom != "" {
		sb.WriteString("\nAdditional instructions from the student:\n")
		sb.WriteString(custom)
		sb.WriteString("\n")
	}

	sb.WriteString(`
Output format: a JSON array where each element is an object with exactly these fields:
- "id": the question number, starting at 1
- "question": the question text
- "options": an object with exactly four keys "A", "B", "C", "D" mapping to option text
- "correctAnswer": the letter of the correct option
- "explanation": why the correct option is right

Example:
[{"id": 1, "question": "...", "options": {"A": "...", "B": "...", "C": "...", "D": "..."}, "correctAnswer": "B", "explanation": "..."}]

Return only the array. Do not include any prose outside it.
`)

	fmt.Fprintf(&sb, "\n--- BEGIN %s ---\n%s\n--- END %s ---\n",
		strings.ToUpper(string(kind)), in.FileContent, strings.ToUpper(string(kind)))

	return sb.String()
}
