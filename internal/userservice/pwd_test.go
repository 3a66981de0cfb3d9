package userservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordMatches(t *testing.T) {
	var p Password
	require.NoError(t, p.set("Test_1234!"))

	ok, err := p.matches("Test_1234!")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.matches("test_1234!")
	assert.NoError(t, err)
	assert.False(t, ok)

	var empty Password
	ok, err = empty.matches("Test_1234!")
	assert.NoError(t, err)
	assert.False(t, ok)
}
