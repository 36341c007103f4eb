package gwutils

import (
	"fmt"
	"testing"

	"github.com/bmizerany/assert"
)

func TestRunPanicless(t *testing.T) {
	assert.T(t, RunPanicless(func() {
		panic(1)
	}))
	assert.T(t, RunPanicless(func() {
		panic(fmt.Errorf("bad"))
	}))
	assert.T(t, !RunPanicless(func() {}))
}

func TestCatchPanic(t *testing.T) {
	err := CatchPanic(func() error {
		panic("boom")
	})
	assert.NotEqual(t, nil, err)

	want := fmt.Errorf("plain")
	assert.Equal(t, want, CatchPanic(func() error {
		return want
	}))
	assert.Equal(t, nil, CatchPanic(func() error {
		return nil
	}))
}

func TestRepeatUntilPanicless(t *testing.T) {
	n := 0
	RepeatUntilPanicless(func() {
		n += 1
		if n < 3 {
			panic(n)
		}
	})
	assert.Equal(t, 3, n)
}
