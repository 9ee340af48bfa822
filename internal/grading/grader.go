// Package grading scores submitted answers against canonical answers.
// Scoring is total: malformed values, unknown kinds and missing questions
// all degrade to zero instead of failing a submission.
package grading

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/devroute/bootcamp-backend/internal/model"
	"github.com/google/uuid"
)

// Result aggregates one submission's grade.
type Result struct {
	Score        int `json:"score"`
	CorrectCount int `json:"correct_answer_count"`
}

// Score computes awarded points for one answered question. It never
// returns an error; anything it cannot interpret scores zero.
func Score(q model.Question, submitted json.RawMessage) int {
	switch q.Kind {
	case model.KindTrueFalse, model.KindShortAnswer:
		return scoreExactToken(q, submitted)
	case model.KindMultiSelect:
		return scoreMultiSelect(q, submitted)
	case model.KindOrdering:
		return scoreOrdering(q, submitted)
	case model.KindFillBlank:
		return scoreFillBlank(q, submitted)
	default:
		return 0
	}
}

// Grade scores a whole answer sheet against a question set. Answers
// referencing questions absent from the set are ignored. A question counts
// as fully correct only when it earns its entire point value, so partial
// credit contributes to Score but never to CorrectCount. Grading is
// idempotent: the result is a pure function of its inputs.
func Grade(questions []model.Question, sheet model.AnswerSheet) Result {
	byID := make(map[uuid.UUID]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	var res Result
	for _, ans := range sheet {
		q, ok := byID[ans.QuestionID]
		if !ok {
			continue
		}
		awarded := Score(q, ans.Value)
		res.Score += awarded
		if awarded == q.Point {
			res.CorrectCount++
		}
	}
	return res
}

// scoreExactToken grades TRUE_FALSE and SHORT_ANSWER: full points when the
// normalized submitted token equals the normalized canonical token, else 0.
func scoreExactToken(q model.Question, submitted json.RawMessage) int {
	sub := decodeValues(submitted)
	canonical := decodeValues(q.Answer)
	if len(sub) != 1 || len(canonical) != 1 {
		return 0
	}
	if norm(sub[0]) == norm(canonical[0]) {
		return q.Point
	}
	return 0
}

// scoreMultiSelect grades by the fraction of canonical options selected:
// floor(points × |intersection| / |canonical set|). Extra wrong selections
// are not penalized beyond being absent from the intersection.
func scoreMultiSelect(q model.Question, submitted json.RawMessage) int {
	canonical := toSet(decodeValues(q.Answer))
	if len(canonical) == 0 {
		return 0
	}

	intersection := 0
	for v := range toSet(decodeValues(submitted)) {
		if _, ok := canonical[v]; ok {
			intersection++
		}
	}
	return q.Point * intersection / len(canonical)
}

// scoreOrdering grades all-or-nothing: the submitted sequence must equal
// the canonical sequence element-for-element. Length mismatch is 0.
func scoreOrdering(q model.Question, submitted json.RawMessage) int {
	sub := decodeValues(submitted)
	canonical := decodeValues(q.Answer)
	if len(canonical) == 0 || len(sub) != len(canonical) {
		return 0
	}
	for i := range canonical {
		if sub[i] != canonical[i] {
			return 0
		}
	}
	return q.Point
}

// scoreFillBlank compares blanks pairwise by position without requiring
// equal lengths: floor(points × matched / canonical length).
func scoreFillBlank(q model.Question, submitted json.RawMessage) int {
	sub := decodeValues(submitted)
	canonical := decodeValues(q.Answer)
	if len(canonical) == 0 {
		return 0
	}

	matched := 0
	for i := range canonical {
		if i >= len(sub) {
			break
		}
		if norm(sub[i]) == norm(canonical[i]) {
			matched++
		}
	}
	return q.Point * matched / len(canonical)
}

// decodeValues coerces a raw JSON answer value into a list of strings.
// Scalars become one-element lists; lists convert element-wise; anything
// unintelligible becomes an empty list.
func decodeValues(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}

	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := scalarString(e); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		if s, ok := scalarString(v); ok {
			return []string{s}
		}
		return nil
	}
}

// scalarString renders a JSON scalar as a comparable string.
func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return "", false
	}
}

// toSet deduplicates a list of values.
func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// norm trims and lowercases a token for case/whitespace-insensitive
// comparison.
func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
