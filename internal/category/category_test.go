package category

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Akash114/SarthiAI/internal/types"
)

func TestInfer(t *testing.T) {
	assert.Equal(t, Fitness, Infer(types.ResolutionHealth))
	assert.Equal(t, Fitness, Infer(types.ResolutionHabit))
	assert.Equal(t, Learning, Infer(types.ResolutionLearning))
	assert.Equal(t, Hobby, Infer(types.ResolutionProject))
	assert.Equal(t, General, Infer(types.ResolutionUnspecified))
}

func TestParse(t *testing.T) {
	assert.Equal(t, Fitness, Parse(" Fitness "))
	assert.Equal(t, General, Parse("unknown"))
	assert.Equal(t, General, Parse(""))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Fitness", DisplayName(Fitness))
	assert.Equal(t, "General", DisplayName(Category("whatever")))
}
