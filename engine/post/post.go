package post

import (
	"sync"

	"github.com/mxosim/reality/engine/gwutils"
)

// PostCallback is the type of functions to be posted
type PostCallback func()

var (
	callbacks []PostCallback
	lock      sync.Mutex
)

// Post a callback which will be executed by the world service routine
//
// Connection goroutines post inbound commands here, so the callbacks are protected by a lock
func Post(f PostCallback) {
	lock.Lock()
	callbacks = append(callbacks, f)
	lock.Unlock()
}

// Pending returns the number of callbacks waiting for the next Tick
func Pending() int {
	lock.Lock()
	n := len(callbacks)
	lock.Unlock()
	return n
}

// Tick is called by the world service routine to run all posted functions
func Tick() {
	for { // callbacks may post more callbacks
		lock.Lock()
		if len(callbacks) == 0 {
			lock.Unlock()
			break
		}
		callbacksCopy := callbacks
		callbacks = make([]PostCallback, 0, len(callbacks))
		lock.Unlock()

		for _, f := range callbacksCopy {
			gwutils.RunPanicless(f)
		}
	}
}
