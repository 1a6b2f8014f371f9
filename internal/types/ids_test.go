package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	id := NewID()
	assert.NoError(t, id.Validate())
	assert.False(t, id.IsZero())

	other := NewID()
	assert.NotEqual(t, id, other)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid uuid", "550e8400-e29b-41d4-a716-446655440000", false},
		{"empty string", "", true},
		{"not a uuid", "not-a-uuid", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, id.String())
		})
	}
}

func TestID_JSONRoundTrip(t *testing.T) {
	id := NewID()
	data, err := json.Marshal(id)
	require.NoError(t, err)

	var decoded ID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)
}

func TestID_MarshalJSON_Zero(t *testing.T) {
	var id ID
	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestNormalizeResolutionType(t *testing.T) {
	assert.Equal(t, ResolutionHabit, NormalizeResolutionType("Habit"))
	assert.Equal(t, ResolutionSkill, NormalizeResolutionType("  skill "))
	assert.Equal(t, ResolutionUnspecified, NormalizeResolutionType("gardening"))
	assert.Equal(t, ResolutionUnspecified, NormalizeResolutionType(""))
}

func TestResolutionType_IsRepetitionOriented(t *testing.T) {
	assert.True(t, ResolutionHabit.IsRepetitionOriented())
	assert.True(t, ResolutionLearning.IsRepetitionOriented())
	assert.False(t, ResolutionProject.IsRepetitionOriented())
	assert.False(t, ResolutionUnspecified.IsRepetitionOriented())
}
