package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidIdentifier(t *testing.T) {
	assert.True(t, IsValidIdentifier("x"))
	assert.True(t, IsValidIdentifier("_count2"))
	assert.True(t, IsValidIdentifier(BuiltinVaList))
	assert.False(t, IsValidIdentifier(""))
	assert.False(t, IsValidIdentifier("2fast"))
	assert.False(t, IsValidIdentifier("a-b"))
	assert.False(t, IsValidIdentifier(".t0"))
}
