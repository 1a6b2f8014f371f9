package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Akash114/SarthiAI/internal/config"
)

func TestWeeklySlotMatches(t *testing.T) {
	slot := config.JobTime{Day: 6, Hour: 18, Minute: 0} // Sunday 18:00

	sunday := time.Date(2026, 9, 6, 18, 0, 30, 0, time.UTC)
	assert.True(t, weeklySlotMatches(slot, sunday))

	assert.False(t, weeklySlotMatches(slot, sunday.Add(time.Minute)))
	assert.False(t, weeklySlotMatches(slot, sunday.Add(-24*time.Hour)))

	monday := config.JobTime{Day: 0, Hour: 6, Minute: 30}
	assert.True(t, weeklySlotMatches(monday, time.Date(2026, 9, 7, 6, 30, 0, 0, time.UTC)))
}
