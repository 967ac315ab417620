package handler

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestNormalizeTimeOfDay(t *testing.T) {
    assert.Equal(t, "18:00:00", normalizeTimeOfDay("18:00"))
    assert.Equal(t, "18:30:00", normalizeTimeOfDay("18:30:00"))
    assert.Equal(t, "09:05:00", normalizeTimeOfDay(" 09:05 "))
    assert.Equal(t, "", normalizeTimeOfDay("25:00"))
    assert.Equal(t, "", normalizeTimeOfDay("6pm"))
    assert.Equal(t, "", normalizeTimeOfDay(""))
}

func TestValidateWindowBoundsAccepts(t *testing.T) {
    fields := validateWindowBounds(5, 90, 3, "18:00:00", "22:00:00")
    assert.Empty(t, fields)
}

func TestValidateWindowBoundsRejects(t *testing.T) {
    fields := validateWindowBounds(7, 10, 0, "", "22:00:00")
    assert.Contains(t, fields, "day_of_week")
    assert.Contains(t, fields, "duration_min")
    assert.Contains(t, fields, "concurrency_cap")
    assert.Contains(t, fields, "start_time")

    // Start must come strictly before end on the same day.
    fields = validateWindowBounds(2, 60, 2, "22:00:00", "18:00:00")
    assert.Equal(t, "must be strictly before end_time", fields["start_time"])

    fields = validateWindowBounds(2, 60, 2, "18:00:00", "18:00:00")
    assert.Contains(t, fields, "start_time")
}
