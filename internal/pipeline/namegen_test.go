package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitAnimationFrameMatchesKnownAnimation(t *testing.T) {
	names := map[string]string{"wait": "Wait"}
	cursor, frame, ok := splitAnimationFrame("wait-012", names)
	assert.True(t, ok)
	assert.Equal(t, "Wait", cursor)
	assert.Equal(t, 12, frame)
}

func TestSplitAnimationFrameIgnoresUnknownPrefix(t *testing.T) {
	names := map[string]string{"wait": "Wait"}
	cursor, _, ok := splitAnimationFrame("default-01", names)
	assert.False(t, ok)
	assert.Equal(t, "default-01", cursor)
}

func TestSplitAnimationFrameRequiresDigitSuffix(t *testing.T) {
	names := map[string]string{"wait": "Wait"}
	cursor, _, ok := splitAnimationFrame("wait-abc", names)
	assert.False(t, ok)
	assert.Equal(t, "wait-abc", cursor)
}
