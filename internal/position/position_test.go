package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Run("basic references", func(t *testing.T) {
		cases := map[string]Position{
			"A1":  {Row: 0, Col: 0},
			"Z99": {Row: 98, Col: 25},
			"AA1": {Row: 0, Col: 26},
		}
		for str, want := range cases {
			got, err := Parse(str)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		for _, str := range []string{"A1", "Z99", "AA1", "BZ12"} {
			pos, err := Parse(str)
			assert.NoError(t, err)
			assert.Equal(t, str, pos.String())
		}
	})

	t.Run("malformed input", func(t *testing.T) {
		for _, str := range []string{"", "1A", "A", "A0", "A-1", "a1"} {
			_, err := Parse(str)
			assert.ErrorIs(t, err, ErrParsePosition)
		}
	})
}

func TestIsValid(t *testing.T) {
	assert.True(t, Position{Row: 0, Col: 0}.IsValid())
	assert.True(t, Position{Row: MaxRows - 1, Col: MaxCols - 1}.IsValid())
	assert.False(t, Position{Row: -1, Col: 0}.IsValid())
	assert.False(t, Position{Row: MaxRows, Col: 0}.IsValid())
	assert.False(t, Position{Row: 0, Col: MaxCols}.IsValid())
}

func TestStringOutOfRange(t *testing.T) {
	assert.Equal(t, "#REF!", Position{Row: -1, Col: 0}.String())
	assert.Equal(t, "#REF!", Position{Row: MaxRows, Col: 0}.String())
}
