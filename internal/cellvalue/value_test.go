package cellvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToNumber(t *testing.T) {
	assert.Equal(t, Number(0), Text("").ToNumber())
	assert.Equal(t, Number(12), Text("12").ToNumber())
	assert.Equal(t, Number(-3.5), Text("-3.5").ToNumber())
	assert.Equal(t, Error(ValueError), Text("hello").ToNumber())
	assert.Equal(t, Error(ValueError), Text("12x").ToNumber())
	assert.Equal(t, Number(4), Number(4).ToNumber())
	assert.Equal(t, Error(Ref), Error(Ref).ToNumber())
}

func TestStringRendering(t *testing.T) {
	assert.Equal(t, "12", Number(12).String())
	assert.Equal(t, "hello", Text("hello").String())
	assert.Equal(t, "#REF!", Error(Ref).String())
	assert.Equal(t, "#VALUE!", Error(ValueError).String())
	assert.Equal(t, "#ARITHM!", Error(Arithmetic).String())
}
