// Package gwvar publishes world server state through expvar, served on /debug/vars
package gwvar

import "expvar"

// Bool is a boolean expvar, shown as 0 or 1
type Bool struct {
	val *expvar.Int
}

func NewBool(name string) *Bool {
	return &Bool{
		val: expvar.NewInt(name),
	}
}

func (b *Bool) Value() bool {
	return b.val.Value() > 0
}

func (b *Bool) Set(v bool) {
	if v {
		b.val.Set(1)
	} else {
		b.val.Set(0)
	}
}

var (
	// IsWorldReady is set while the world service accepts commands
	IsWorldReady = NewBool("IsWorldReady")
	// OnlinePlayers is the number of players in the world
	OnlinePlayers = expvar.NewInt("OnlinePlayers")
)
