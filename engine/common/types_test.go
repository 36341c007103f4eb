package common

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestEntityID(t *testing.T) {
	if !NilEntityID.IsNil() {
		t.Fail()
	}
	if EntityID(42).IsNil() {
		t.Fail()
	}
	assert.Equal(t, "E0000002A", EntityID(42).String())
}

func TestViewID(t *testing.T) {
	if !ViewID(0).IsNil() {
		t.Fail()
	}
	assert.Equal(t, "V0001", ViewID(1).String())
	assert.Equal(t, ViewID(0xFFFF), MaxViewID)
}

func TestEntityIDSet(t *testing.T) {
	es := EntityIDSet{}
	es.Add(1)
	es.Add(2)
	es.Add(2)
	assert.Equal(t, 2, len(es))
	assert.T(t, es.Contains(1))
	es.Del(1)
	assert.T(t, !es.Contains(1))
	assert.Equal(t, []EntityID{2}, es.ToList())

	visited := 0
	es.Add(3)
	es.ForEach(func(eid EntityID) bool {
		visited++
		return false
	})
	assert.Equal(t, 1, visited)
}
