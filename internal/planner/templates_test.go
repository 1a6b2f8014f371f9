package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akash114/SarthiAI/internal/cadence"
	"github.com/Akash114/SarthiAI/internal/types"
)

func TestTemplatesEmbedIsComplete(t *testing.T) {
	require.NotEmpty(t, templates)
	for _, tpl := range templates {
		assert.NotEmpty(t, tpl.Name)
		assert.NotEmpty(t, tpl.PromptHint, "template %s", tpl.Name)
		assert.NotEmpty(t, tpl.MilestoneFocuses, "template %s", tpl.Name)
		require.NotEmpty(t, tpl.Tasks, "template %s", tpl.Name)
		for _, task := range tpl.Tasks {
			assert.NotEmpty(t, task.Title, "template %s", tpl.Name)
			assert.Positive(t, task.DurationMinutes, "template %s task %q", tpl.Name, task.Title)
		}
	}
}

func TestSelectTemplateKeywordBeatsType(t *testing.T) {
	// "guitar" routes to the music template even for a generic skill type.
	tpl := SelectTemplate("learn guitar", types.ResolutionSkill)
	assert.Equal(t, "music_skill", tpl.Name)

	tpl = SelectTemplate("start running again", types.ResolutionHabit)
	assert.Equal(t, "fitness", tpl.Name)
}

func TestSelectTemplateTypeDefault(t *testing.T) {
	tpl := SelectTemplate("master something obscure", types.ResolutionProject)
	assert.Equal(t, "project", tpl.Name)

	tpl = SelectTemplate("do the thing", types.ResolutionUnspecified)
	assert.Equal(t, "generic", tpl.Name)
}

func TestInstantiateSubstitutesFocus(t *testing.T) {
	tpl, ok := templateByName("fitness")
	require.True(t, ok)

	drafts := tpl.Instantiate("running")
	require.NotEmpty(t, drafts)
	assert.Contains(t, drafts[0].Title, "running")
	assert.NotContains(t, drafts[0].Title, "{goal_focus}")
	assert.Equal(t, cadence.XPerWeek, drafts[0].Cadence.Type)
	assert.NotEmpty(t, drafts[0].CadenceLabel)
}
