package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRequestID(t *testing.T) {
	a := GenerateRequestID()
	b := GenerateRequestID()

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
	assert.True(t, ValidRequestID(a))
}

func TestValidRequestID(t *testing.T) {
	assert.True(t, ValidRequestID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
	assert.False(t, ValidRequestID(""))
	assert.False(t, ValidRequestID("not-a-uuid"))
}
