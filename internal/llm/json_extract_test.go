package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONFromFencedBlock(t *testing.T) {
	response := "Here is your plan:\n```json\n{\"refined_goal\": \"Run 5K\"}\n```\nGood luck!"
	jsonStr, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.JSONEq(t, `{"refined_goal": "Run 5K"}`, jsonStr)
}

func TestExtractJSONFromUntaggedFence(t *testing.T) {
	response := "```\n{\"a\": 1}\n```"
	jsonStr, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1}`, jsonStr)
}

func TestExtractJSONSkipsNonJSONFences(t *testing.T) {
	response := "```python\nprint('hi')\n```\nThe result: {\"a\": 2}"
	jsonStr, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 2}`, jsonStr)
}

func TestExtractJSONRawObject(t *testing.T) {
	response := `The plan is {"tasks": [{"title": "Run"}]} as requested.`
	jsonStr, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tasks": [{"title": "Run"}]}`, jsonStr)
}

func TestExtractJSONHandlesNestedBracesInStrings(t *testing.T) {
	response := `{"note": "use {curly} braces and \"quotes\""}`
	jsonStr, err := ExtractJSON(response)
	require.NoError(t, err)
	assert.Equal(t, response, jsonStr)
}

func TestExtractJSONArray(t *testing.T) {
	jsonStr, err := ExtractJSON(`Options: [1, 2, 3]`)
	require.NoError(t, err)
	assert.JSONEq(t, `[1, 2, 3]`, jsonStr)
}

func TestExtractJSONNoJSON(t *testing.T) {
	_, err := ExtractJSON("I could not produce a plan, sorry.")
	assert.Error(t, err)
}

func TestExtractJSONAs(t *testing.T) {
	type payload struct {
		Goal string `json:"goal"`
	}
	got, err := ExtractJSONAs[payload]("```json\n{\"goal\": \"read more\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "read more", got.Goal)

	_, err = ExtractJSONAs[payload](`{"goal": 42}`)
	assert.Error(t, err)
}
