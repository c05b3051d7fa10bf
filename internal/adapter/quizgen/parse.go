package quizgen

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"quiz-prep/internal/domain"
)

// ErrNoJSON is returned when a reply holds no JSON object or array.
var ErrNoJSON = errors.New("no JSON found in LLM response")

type rawQuestion struct {
	Question string          `json:"question"`
	Type     string          `json:"type"`
	Options  []string        `json:"options"`
	Answer   json.RawMessage `json:"answer"`
}

type rawQuiz struct {
	Summary string        `json:"summary"`
	Quiz    []rawQuestion `json:"quiz"`
}

// ParseGeneratedQuiz extracts the quiz from an LLM reply. Reasoning blocks and code
// fences are removed, then the first JSON object (or a bare question array) is
// decoded and checked. Questions whose type is not in allowedTypes are rejected
// unless allowedTypes is empty.
func ParseGeneratedQuiz(reply string, allowedTypes []string) (*domain.GeneratedQuiz, error) {
	cleaned := stripCodeFences(stripThinkBlocks(reply))

	start := strings.IndexAny(cleaned, "{[")
	if start == -1 {
		return nil, ErrNoJSON
	}

	var rq rawQuiz
	dec := json.NewDecoder(strings.NewReader(cleaned[start:]))
	if cleaned[start] == '[' {
		if err := dec.Decode(&rq.Quiz); err != nil {
			return nil, fmt.Errorf("failed to decode question array: %w", err)
		}
	} else if err := dec.Decode(&rq); err != nil {
		return nil, fmt.Errorf("failed to decode quiz object: %w", err)
	}

	if len(rq.Quiz) == 0 {
		return nil, errors.New("quiz contains no questions")
	}

	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = true
	}

	quiz := &domain.GeneratedQuiz{
		Summary:   strings.TrimSpace(rq.Summary),
		Questions: make([]domain.GeneratedQuestion, 0, len(rq.Quiz)),
	}
	for i, q := range rq.Quiz {
		gq, err := toGeneratedQuestion(q)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		if len(allowed) > 0 && !allowed[gq.Type] {
			return nil, fmt.Errorf("question %d: type %q was not requested", i+1, gq.Type)
		}
		quiz.Questions = append(quiz.Questions, gq)
	}
	return quiz, nil
}

func toGeneratedQuestion(q rawQuestion) (domain.GeneratedQuestion, error) {
	gq := domain.GeneratedQuestion{
		Question: strings.TrimSpace(q.Question),
		Type:     strings.TrimSpace(q.Type),
		Options:  q.Options,
	}
	if gq.Question == "" {
		return gq, errors.New("missing question text")
	}
	switch gq.Type {
	case domain.QuestionTypeMultipleChoice:
		if len(gq.Options) < 2 {
			return gq, errors.New("multiple_choice question needs at least two options")
		}
	case domain.QuestionTypeTrueFalse, domain.QuestionTypeShortAnswer:
		gq.Options = nil
	default:
		return gq, fmt.Errorf("unknown question type %q", gq.Type)
	}

	answer, err := answerText(q.Answer)
	if err != nil {
		return gq, err
	}
	gq.Answer = answer
	return gq, nil
}

// answerText renders a JSON answer value as text. Booleans become "true" or "false".
func answerText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", errors.New("missing answer")
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("invalid answer: %w", err)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return "", errors.New("missing answer")
		}
		return s, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return "", fmt.Errorf("invalid answer: %w", err)
		}
		return strconv.FormatBool(b), nil
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", fmt.Errorf("unsupported answer value %s", string(raw))
		}
		return n.String(), nil
	}
}

func stripThinkBlocks(s string) string {
	for {
		start := strings.Index(s, "<think>")
		if start == -1 {
			return strings.TrimSpace(s)
		}
		end := strings.Index(s[start:], "</think>")
		if end == -1 {
			return strings.TrimSpace(s[:start])
		}
		s = s[:start] + s[start+end+len("</think>"):]
	}
}

func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
