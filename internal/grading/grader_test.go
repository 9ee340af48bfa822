package grading

import (
	"encoding/json"
	"testing"

	"github.com/devroute/bootcamp-backend/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func question(kind model.QuestionKind, answer string, point int) model.Question {
	return model.Question{
		ID:     uuid.New(),
		Kind:   kind,
		Answer: json.RawMessage(answer),
		Point:  point,
	}
}

func TestScore_TrueFalse(t *testing.T) {
	q := question(model.KindTrueFalse, `"O"`, 5)

	assert.Equal(t, 5, Score(q, json.RawMessage(`"O"`)))
	assert.Equal(t, 5, Score(q, json.RawMessage(`" o "`)), "trimmed, case-insensitive")
	assert.Equal(t, 0, Score(q, json.RawMessage(`"X"`)))
	assert.Equal(t, 0, Score(q, json.RawMessage(`null`)))
}

func TestScore_TrueFalse_BooleanTokens(t *testing.T) {
	q := question(model.KindTrueFalse, `true`, 3)

	assert.Equal(t, 3, Score(q, json.RawMessage(`true`)))
	assert.Equal(t, 3, Score(q, json.RawMessage(`"TRUE"`)), "boolean and token forms compare equal")
	assert.Equal(t, 0, Score(q, json.RawMessage(`false`)))
}

func TestScore_ShortAnswer(t *testing.T) {
	q := question(model.KindShortAnswer, `"Goroutine"`, 4)

	assert.Equal(t, 4, Score(q, json.RawMessage(`"  goroutine "`)))
	assert.Equal(t, 0, Score(q, json.RawMessage(`"goroutines"`)))
}

func TestScore_MultiSelect(t *testing.T) {
	q := question(model.KindMultiSelect, `["1","2","3"]`, 6)

	assert.Equal(t, 6, Score(q, json.RawMessage(`["1","2","3"]`)))
	assert.Equal(t, 4, Score(q, json.RawMessage(`["1","2"]`)), "partial credit by recall")
	assert.Equal(t, 4, Score(q, json.RawMessage(`["1","2","4"]`)), "extra wrong option does not reduce score")
	assert.Equal(t, 0, Score(q, json.RawMessage(`["4","5"]`)))
	assert.Equal(t, 2, Score(q, json.RawMessage(`"1"`)), "scalar submission treated as one-element set")
}

func TestScore_MultiSelect_NumericOptions(t *testing.T) {
	q := question(model.KindMultiSelect, `[1,2,3]`, 6)

	assert.Equal(t, 4, Score(q, json.RawMessage(`[1,2]`)), "numeric and string encodings compare equal")
	assert.Equal(t, 4, Score(q, json.RawMessage(`["1","2"]`)))
}

func TestScore_MultiSelect_EmptyCanonical(t *testing.T) {
	q := question(model.KindMultiSelect, `[]`, 6)
	assert.Equal(t, 0, Score(q, json.RawMessage(`["1"]`)))
}

func TestScore_Ordering(t *testing.T) {
	q := question(model.KindOrdering, `["a","b","c"]`, 8)

	assert.Equal(t, 8, Score(q, json.RawMessage(`["a","b","c"]`)))
	assert.Equal(t, 0, Score(q, json.RawMessage(`["b","a","c"]`)), "wrong order")
	assert.Equal(t, 0, Score(q, json.RawMessage(`["a","b"]`)), "length mismatch")
	assert.Equal(t, 0, Score(q, json.RawMessage(`["a","b","c","d"]`)))
}

func TestScore_FillBlank(t *testing.T) {
	q := question(model.KindFillBlank, `["Django","Python"]`, 10)

	assert.Equal(t, 10, Score(q, json.RawMessage(`[" django ", "python"]`)))
	assert.Equal(t, 5, Score(q, json.RawMessage(`["django","java"]`)))
	assert.Equal(t, 0, Score(q, json.RawMessage(`["java","ruby"]`)))
	assert.Equal(t, 5, Score(q, json.RawMessage(`["django"]`)), "short submission compares pairwise")
	assert.Equal(t, 5, Score(q, json.RawMessage(`"django"`)), "scalar coerced to one-element list")
}

func TestScore_FillBlank_EmptyCanonical(t *testing.T) {
	q := question(model.KindFillBlank, `[]`, 10)
	assert.Equal(t, 0, Score(q, json.RawMessage(`["x"]`)))
}

func TestScore_UnknownKind(t *testing.T) {
	q := question(model.QuestionKind("ESSAY"), `"whatever"`, 9)
	assert.Equal(t, 0, Score(q, json.RawMessage(`"whatever"`)), "unknown kinds score zero, never error")
}

func TestScore_MalformedValues(t *testing.T) {
	q := question(model.KindShortAnswer, `"ok"`, 2)

	assert.Equal(t, 0, Score(q, json.RawMessage(`{`)))
	assert.Equal(t, 0, Score(q, json.RawMessage(`{"nested":"object"}`)))
	assert.Equal(t, 0, Score(model.Question{Kind: model.KindShortAnswer, Answer: json.RawMessage(`{`), Point: 2}, json.RawMessage(`"ok"`)))
}

func TestGrade_Aggregation(t *testing.T) {
	ox := question(model.KindTrueFalse, `"O"`, 5)
	multi := question(model.KindMultiSelect, `["1","2","3"]`, 6)
	gone := uuid.New() // question no longer in the set

	sheet := model.AnswerSheet{
		{QuestionID: ox.ID, Value: json.RawMessage(`"O"`)},
		{QuestionID: multi.ID, Value: json.RawMessage(`["1","2"]`)},
		{QuestionID: gone, Value: json.RawMessage(`"ignored"`)},
	}

	res := Grade([]model.Question{ox, multi}, sheet)

	assert.Equal(t, 9, res.Score)
	assert.Equal(t, 1, res.CorrectCount, "partial credit excluded from correct count")
}

func TestGrade_Idempotent(t *testing.T) {
	q := question(model.KindOrdering, `["a","b"]`, 4)
	sheet := model.AnswerSheet{{QuestionID: q.ID, Value: json.RawMessage(`["a","b"]`)}}

	first := Grade([]model.Question{q}, sheet)
	second := Grade([]model.Question{q}, sheet)

	require.Equal(t, first, second)
	assert.Equal(t, 4, first.Score)
	assert.Equal(t, 1, first.CorrectCount)
}

func TestGrade_EmptySheet(t *testing.T) {
	q := question(model.KindTrueFalse, `"O"`, 5)
	res := Grade([]model.Question{q}, nil)

	assert.Zero(t, res.Score)
	assert.Zero(t, res.CorrectCount)
}
