package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateID_CarriesPrefix(t *testing.T) {
	id := GenerateID("activity")
	assert.True(t, strings.HasPrefix(id, "activity_"))
	assert.Greater(t, len(id), len("activity_"))
}

func TestGenerateID_SequentialCallsAreUnique(t *testing.T) {
	seen := make(map[string]bool, 1000)

	for range 1000 {
		id := GenerateID("n")
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}

	assert.Len(t, seen, 1000)
}
