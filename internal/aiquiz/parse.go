package aiquiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/saulo-duarte/socrates-lambda/internal/metrics"
)

var (
	ErrNoStructuredData = errors.New("no valid structured data found")
	ErrNotAList         = errors.New("structured data is not a list")
)

const (
	maxListCandidates = 16
	rawSnippetLen     = 300
)

// ParseError keeps the full model reply so callers can log it or fall back on it.
type ParseError struct {
	Kind error
	Raw  string
	Err  error
}

func (e *ParseError) Error() string {
	raw := e.Raw
	if len(raw) > rawSnippetLen {
		raw = raw[:rawSnippetLen] + "..."
	}
	if e.Err != nil {
		return fmt.Sprintf("%v: %v (raw reply: %q)", e.Kind, e.Err, raw)
	}
	return fmt.Sprintf("%v (raw reply: %q)", e.Kind, raw)
}

func (e *ParseError) Unwrap() error { return e.Kind }

// ParseQuestions recovers a question list from a model reply. Structurally incomplete
// items are backfilled; only the absence of any list is an error.
func ParseQuestions(raw string) ([]Question, error) {
	items, outcome, err := decodeQuestionList(raw)
	if err != nil {
		metrics.ObserveRecovery(metrics.RecoveryFailed)
		return nil, err
	}
	metrics.ObserveRecovery(outcome)

	questions := make([]Question, 0, len(items))
	for i, item := range items {
		obj, _ := item.(map[string]any)
		questions = append(questions, questionFrom(obj, i+1))
	}
	return questions, nil
}

func decodeQuestionList(raw string) ([]any, string, error) {
	text := stripFence(strings.TrimSpace(raw))
	normalized := NormalizeLiterals(text)

	outcome := metrics.RecoveryStrict
	var v any
	err := json.Unmarshal([]byte(normalized), &v)
	if err != nil {
		outcome = metrics.RecoveryExtracted
		if v, err = decodeEmbeddedList(text, normalized); err != nil {
			return nil, "", &ParseError{Kind: ErrNoStructuredData, Raw: raw, Err: err}
		}
	}

	list, ok := v.([]any)
	if !ok {
		return nil, "", &ParseError{Kind: ErrNotAList, Raw: raw}
	}
	return list, outcome, nil
}

// stripFence removes one enclosing ``` block (any language tag, or none).
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	nl := strings.IndexByte(s, '\n')
	if nl < 0 {
		return strings.TrimSpace(strings.Trim(s, "`"))
	}
	if tag := strings.TrimSpace(s[3:nl]); strings.ContainsAny(tag, " []{}") {
		return s
	}
	body := strings.TrimSpace(s[nl+1:])
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body)
}

// decodeEmbeddedList looks for a bracketed list inside surrounding prose. The normalized
// text is tried first; the original text is tried second because a stray apostrophe in
// prose can swallow the rest of the reply during normalization. A list holding at least
// one object beats an earlier list of scalars, so a citation like "[1]" never wins over
// the questions that follow it.
func decodeEmbeddedList(text, normalized string) (any, error) {
	lastErr := errors.New("no bracketed list in reply")
	var fallback any

	try := func(candidate string) bool {
		var v any
		if err := json.Unmarshal([]byte(candidate), &v); err != nil {
			lastErr = err
			return false
		}
		if holdsObject(v) {
			fallback = v
			return true
		}
		if fallback == nil {
			fallback = v
		}
		return false
	}

	for _, candidate := range listCandidates(normalized) {
		if try(candidate) {
			return fallback, nil
		}
	}
	for _, candidate := range listCandidates(text) {
		if try(NormalizeLiterals(candidate)) {
			return fallback, nil
		}
	}
	if fallback != nil {
		return fallback, nil
	}
	return nil, lastErr
}

func holdsObject(v any) bool {
	list, ok := v.([]any)
	if !ok {
		return false
	}
	for _, item := range list {
		if _, ok := item.(map[string]any); ok {
			return true
		}
	}
	return false
}

// listCandidates returns substrings running from a '[' to its matching ']', in order of
// their opening bracket. Quoted text is skipped when matching.
func listCandidates(s string) []string {
	var out []string
	for start := 0; start < len(s) && len(out) < maxListCandidates; {
		open := strings.IndexByte(s[start:], '[')
		if open < 0 {
			break
		}
		open += start
		if end, ok := matchBracket(s, open); ok {
			out = append(out, s[open:end+1])
		}
		start = open + 1
	}
	return out
}

func matchBracket(s string, open int) (int, bool) {
	depth := 0
	var quote byte
	escaped := false
	for i := open; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

func questionFrom(obj map[string]any, ordinal int) Question {
	q := Question{
		ID:          idField(obj["id"], ordinal),
		Question:    stringField(obj, "question", "text"),
		Options:     optionsField(obj["options"]),
		Explanation: stringField(obj, "explanation"),
	}

	if q.Question == "" {
		q.Question = fmt.Sprintf("Question %d", ordinal)
	}
	if len(q.Options) == 0 {
		q.Options = placeholderOptions()
	}
	q.CorrectAnswer = answerKey(stringField(obj, "correctAnswer", "correct_answer", "answer"), q.Options)
	if q.Explanation == "" {
		q.Explanation = "No explanation provided."
	}
	return q
}

func idField(v any, ordinal int) int {
	switch t := v.(type) {
	case float64:
		if t >= 1 && t == math.Trunc(t) && t <= math.MaxInt32 {
			return int(t)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil && n >= 1 {
			return n
		}
	}
	return ordinal
}

func stringField(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		switch t := obj[k].(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		}
	}
	return ""
}

var optionLetters = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

func optionsField(v any) map[string]string {
	switch t := v.(type) {
	case map[string]any:
		opts := make(map[string]string, len(t))
		for k, raw := range t {
			key := strings.TrimSpace(k)
			if key == "" || raw == nil {
				continue
			}
			if s, ok := raw.(string); ok {
				opts[key] = s
			} else {
				opts[key] = fmt.Sprint(raw)
			}
		}
		return opts
	case []any:
		opts := make(map[string]string, len(t))
		for i, raw := range t {
			if i >= len(optionLetters) {
				break
			}
			s, ok := raw.(string)
			if !ok {
				continue
			}
			opts[optionLetters[i]] = stripOptionPrefix(s, optionLetters[i])
		}
		return opts
	}
	return nil
}

// stripOptionPrefix turns "B) text", "B. text" or "B: text" into "text".
func stripOptionPrefix(s, letter string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.EqualFold(s[:1], letter) && strings.ContainsRune(").:", rune(s[1])) {
		return strings.TrimSpace(s[2:])
	}
	return s
}

func placeholderOptions() map[string]string {
	return map[string]string{
		"A": "Option A",
		"B": "Option B",
		"C": "Option C",
		"D": "Option D",
	}
}

func answerKey(given string, options map[string]string) string {
	if _, ok := options[given]; ok {
		return given
	}
	if upper := strings.ToUpper(given); upper != given {
		if _, ok := options[upper]; ok {
			return upper
		}
	}
	if len(given) >= 2 && strings.ContainsRune(").:", rune(given[1])) {
		if _, ok := options[strings.ToUpper(given[:1])]; ok {
			return strings.ToUpper(given[:1])
		}
	}
	if given != "" {
		return given
	}
	return firstOptionKey(options)
}

func firstOptionKey(options map[string]string) string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0]
}
