package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswerSheet_ListShape(t *testing.T) {
	qid := uuid.New()
	raw := json.RawMessage(`[{"question_id":"` + qid.String() + `","type":"TRUE_FALSE","submitted_answer":"O"}]`)

	sheet, err := ParseAnswerSheet(raw)
	require.NoError(t, err)
	require.Len(t, sheet, 1)
	assert.Equal(t, qid, sheet[0].QuestionID)
	assert.Equal(t, KindTrueFalse, sheet[0].Kind)
	assert.JSONEq(t, `"O"`, string(sheet[0].Value))
}

func TestParseAnswerSheet_WrappedShape(t *testing.T) {
	qid := uuid.New()
	raw := json.RawMessage(`{"answers":[{"question_id":"` + qid.String() + `","submitted_answer":["a","b"]}]}`)

	sheet, err := ParseAnswerSheet(raw)
	require.NoError(t, err)
	require.Len(t, sheet, 1)
	assert.Equal(t, qid, sheet[0].QuestionID)
	assert.JSONEq(t, `["a","b"]`, string(sheet[0].Value))
}

func TestParseAnswerSheet_MapShape(t *testing.T) {
	q1 := uuid.New()
	q2 := uuid.New()
	raw := json.RawMessage(`{"` + q1.String() + `":"O","` + q2.String() + `":["1","2"]}`)

	sheet, err := ParseAnswerSheet(raw)
	require.NoError(t, err)
	require.Len(t, sheet, 2)

	byID := map[uuid.UUID]string{}
	for _, a := range sheet {
		byID[a.QuestionID] = string(a.Value)
	}
	assert.JSONEq(t, `"O"`, byID[q1])
	assert.JSONEq(t, `["1","2"]`, byID[q2])
}

func TestParseAnswerSheet_EmptyAndNull(t *testing.T) {
	for _, raw := range []json.RawMessage{nil, json.RawMessage(`null`), json.RawMessage(`[]`)} {
		sheet, err := ParseAnswerSheet(raw)
		require.NoError(t, err)
		assert.Empty(t, sheet)
	}
}

func TestParseAnswerSheet_Unrecognized(t *testing.T) {
	_, err := ParseAnswerSheet(json.RawMessage(`{"not-a-uuid":"O"}`))
	assert.ErrorIs(t, err, ErrUnrecognizedAnswerShape)

	_, err = ParseAnswerSheet(json.RawMessage(`42`))
	assert.ErrorIs(t, err, ErrUnrecognizedAnswerShape)
}
