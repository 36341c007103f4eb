package gwvar

import (
	"expvar"
	"testing"

	"github.com/bmizerany/assert"
)

func TestBool(t *testing.T) {
	b := NewBool("TestBool")
	assert.T(t, !b.Value())
	b.Set(true)
	assert.T(t, b.Value())
	assert.Equal(t, "1", expvar.Get("TestBool").String())
	b.Set(false)
	assert.T(t, !b.Value())
}

func TestPublished(t *testing.T) {
	assert.NotEqual(t, nil, expvar.Get("IsWorldReady"))
	assert.NotEqual(t, nil, expvar.Get("OnlinePlayers"))
}
