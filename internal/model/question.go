package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// QuestionKind enumerates the five supported question kinds. Each kind
// carries its own grading rule (see internal/grading).
type QuestionKind string

const (
	KindFillBlank   QuestionKind = "FILL_BLANK"
	KindOrdering    QuestionKind = "ORDERING"
	KindMultiSelect QuestionKind = "MULTI_SELECT"
	KindShortAnswer QuestionKind = "SHORT_ANSWER"
	KindTrueFalse   QuestionKind = "TRUE_FALSE"
)

// Per-exam authoring ceilings, enforced at creation time only.
const (
	MaxQuestionsPerExam = 20
	MaxPointsPerExam    = 100
)

// Question represents a single exam question. Answer holds the canonical
// answer whose JSON shape depends on the kind: a string token for
// TRUE_FALSE and SHORT_ANSWER, a list of strings for MULTI_SELECT,
// ORDERING and FILL_BLANK.
type Question struct {
	ID         uuid.UUID       `json:"id"`
	ExamID     uuid.UUID       `json:"exam_id"`
	Kind       QuestionKind    `json:"kind"`
	Text       string          `json:"text"`
	Prompt     *string         `json:"prompt,omitempty"`      // FILL_BLANK passage
	BlankCount *int            `json:"blank_count,omitempty"` // FILL_BLANK only
	Options    []string        `json:"options,omitempty"`     // MULTI_SELECT / ORDERING
	Answer     json.RawMessage `json:"answer"`
	Point      int             `json:"point"`
	Position   int             `json:"position"`
}

// QuestionRequest is the payload for one question in a bulk-replace call.
type QuestionRequest struct {
	Kind       QuestionKind    `json:"kind" binding:"required,oneof=FILL_BLANK ORDERING MULTI_SELECT SHORT_ANSWER TRUE_FALSE"`
	Text       string          `json:"text" binding:"required,min=1,max=2000"`
	Prompt     *string         `json:"prompt" binding:"omitempty,max=4000"`
	BlankCount *int            `json:"blank_count" binding:"omitempty,min=1,max=10"`
	Options    []string        `json:"options" binding:"omitempty,max=10,dive,min=1,max=500"`
	Answer     json.RawMessage `json:"answer" binding:"required"`
	Point      int             `json:"point" binding:"required,min=1,max=10"`
}

// ReplaceQuestionsRequest is the payload for bulk replacing an exam's questions.
type ReplaceQuestionsRequest struct {
	Questions []QuestionRequest `json:"questions" binding:"required,min=1,dive"`
}
