package model

import (
	"encoding/json"
	"errors"
	"sort"

	"github.com/google/uuid"
)

// SubmittedAnswer pairs a question with the student's answer. Value keeps
// the raw JSON because its shape depends on the question kind (string,
// list, boolean-like token).
type SubmittedAnswer struct {
	QuestionID uuid.UUID       `json:"question_id"`
	Kind       QuestionKind    `json:"type,omitempty"`
	Value      json.RawMessage `json:"submitted_answer"`
}

// AnswerSheet is the canonical ordered list of submitted answers.
type AnswerSheet []SubmittedAnswer

// ErrUnrecognizedAnswerShape is returned when a payload matches none of the
// historical answer encodings.
var ErrUnrecognizedAnswerShape = errors.New("unrecognized answer payload shape")

// wrappedAnswers is the legacy {"answers": [...]} encoding.
type wrappedAnswers struct {
	Answers []SubmittedAnswer `json:"answers"`
}

// ParseAnswerSheet normalizes any of the historical answer payload shapes
// into one canonical ordered list. Fallback order:
//
//  1. list of {question_id, submitted_answer} objects
//  2. wrapped object {"answers": [...]}
//  3. map of question id → value (ordered by id for determinism)
//
// An empty or null payload normalizes to an empty sheet.
func ParseAnswerSheet(raw json.RawMessage) (AnswerSheet, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return AnswerSheet{}, nil
	}

	var list []SubmittedAnswer
	if err := json.Unmarshal(raw, &list); err == nil && validSheet(list) {
		return list, nil
	}

	var wrapped wrappedAnswers
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Answers != nil && validSheet(wrapped.Answers) {
		return wrapped.Answers, nil
	}

	var byID map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byID); err == nil && len(byID) > 0 {
		ids := make([]string, 0, len(byID))
		for id := range byID {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		sheet := make(AnswerSheet, 0, len(ids))
		for _, id := range ids {
			qid, err := uuid.Parse(id)
			if err != nil {
				return nil, ErrUnrecognizedAnswerShape
			}
			sheet = append(sheet, SubmittedAnswer{QuestionID: qid, Value: byID[id]})
		}
		return sheet, nil
	}

	return nil, ErrUnrecognizedAnswerShape
}

// validSheet rejects list decodings where entries carry no question id,
// which happens when a map payload loosely unmarshals into an empty slice.
func validSheet(list []SubmittedAnswer) bool {
	for _, a := range list {
		if a.QuestionID == uuid.Nil {
			return false
		}
	}
	return true
}
