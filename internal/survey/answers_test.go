package survey

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswer(t *testing.T) {
	for _, s := range []string{"Yes", "Maybe", "No"} {
		a, err := ParseAnswer(s)
		require.NoError(t, err)
		assert.Equal(t, Answer(s), a)
	}
	for _, s := range []string{"yes", "", "N/A", "Perhaps"} {
		_, err := ParseAnswer(s)
		assert.Error(t, err, "%q should be rejected", s)
	}
}

func TestAnswers_JSONKeys(t *testing.T) {
	data, err := json.Marshal(Answers{1: Yes, 25: No})
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":"Yes","25":"No"}`, string(data))

	var back Answers
	require.NoError(t, json.Unmarshal([]byte(`{"3":"Maybe"}`), &back))
	assert.Equal(t, Answers{3: Maybe}, back)
}

func TestAnswers_Validate(t *testing.T) {
	c := DefaultCatalog()

	assert.NoError(t, Answers{1: Yes, 25: Maybe}.Validate(c))

	err := Answers{26: Yes}.Validate(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown question id 26")

	err = Answers{2: "yes"}.Validate(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "question 2")
}

func TestDecodeStoredAnswers_DropsMalformedEntries(t *testing.T) {
	got, err := DecodeStoredAnswers([]byte(`{"1":"Yes","2":"maybe","x":"No","4":7,"5":"No"}`))
	require.NoError(t, err)
	assert.Equal(t, Answers{1: Yes, 5: No}, got)
}

func TestDecodeStoredAnswers_InvalidJSON(t *testing.T) {
	_, err := DecodeStoredAnswers([]byte(`[1,2]`))
	assert.Error(t, err)
}
