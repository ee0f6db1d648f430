package transcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []Segment
	}{
		{
			name:  "absolute",
			input: "M0 1000L1000 1000Q1000 500 500 500C250 500 0 750 0 1000Z",
			expected: []Segment{
				{Op: OpMove, Pts: []Point{{0, 1000}}},
				{Op: OpLine, Pts: []Point{{1000, 1000}}},
				{Op: OpQuad, Pts: []Point{{1000, 500}, {500, 500}}},
				{Op: OpCube, Pts: []Point{{250, 500}, {0, 750}, {0, 1000}}},
				{Op: OpClose},
			},
		},
		{
			name:  "relative with implicit line-to",
			input: "m10,10 5,0 0,5 z",
			expected: []Segment{
				{Op: OpMove, Pts: []Point{{10, 10}}},
				{Op: OpLine, Pts: []Point{{15, 10}}},
				{Op: OpLine, Pts: []Point{{15, 15}}},
				{Op: OpClose},
			},
		},
		{
			name:  "horizontal and vertical",
			input: "M1 2H5V7h-1v-2",
			expected: []Segment{
				{Op: OpMove, Pts: []Point{{1, 2}}},
				{Op: OpLine, Pts: []Point{{5, 2}}},
				{Op: OpLine, Pts: []Point{{5, 7}}},
				{Op: OpLine, Pts: []Point{{4, 7}}},
				{Op: OpLine, Pts: []Point{{4, 5}}},
			},
		},
		{
			name:  "compact numbers",
			input: "M.5-.5L1e1-2.5",
			expected: []Segment{
				{Op: OpMove, Pts: []Point{{0.5, -0.5}}},
				{Op: OpLine, Pts: []Point{{10, -2.5}}},
			},
		},
		{
			name:  "relative after close starts at subpath start",
			input: "M10 10L20 10Zl0 5",
			expected: []Segment{
				{Op: OpMove, Pts: []Point{{10, 10}}},
				{Op: OpLine, Pts: []Point{{20, 10}}},
				{Op: OpClose},
				{Op: OpLine, Pts: []Point{{10, 15}}},
			},
		},
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			segs, err := ParsePath(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, segs)
		})
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, input := range []string{
		"10 10",
		"M10",
		"M10 10A5 5 0 0 1 20 20",
		"M10 10Z 5 5",
		"Mx y",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ParsePath(input)
			assert.Error(t, err)
		})
	}
}
