package linkedinservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMove(t *testing.T) {
	testCases := []struct {
		name     string
		from, to int
		expected []string
	}{
		{name: "forward", from: 0, to: 2, expected: []string{"b", "c", "a", "d"}},
		{name: "backward", from: 3, to: 1, expected: []string{"a", "d", "b", "c"}},
		{name: "to end", from: 1, to: 3, expected: []string{"a", "c", "d", "b"}},
		{name: "same index", from: 2, to: 2, expected: []string{"a", "b", "c", "d"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := []string{"a", "b", "c", "d"}

			out := move(in, tc.from, tc.to)
			assert.Equal(t, tc.expected, out)
			assert.Equal(t, []string{"a", "b", "c", "d"}, in)
		})
	}
}
