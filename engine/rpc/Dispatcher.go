package rpc

import (
	"time"

	"github.com/mxosim/reality/engine/consts"
	"github.com/mxosim/reality/engine/gwlog"
	"github.com/mxosim/reality/engine/gwutils"
	"github.com/mxosim/reality/engine/netutil"
	"github.com/mxosim/reality/engine/opmon"
	"github.com/pkg/errors"
)

var (
	// ErrUnhandledOpcode is returned for payloads no handler is registered for
	ErrUnhandledOpcode = errors.New("unhandled opcode")
)

// Dispatcher routes inbound command payloads to the handlers of its table
type Dispatcher struct {
	table         *Table
	warnThreshold time.Duration
	dumpUnhandled bool
}

// NewDispatcher creates a dispatcher. Handlers taking longer than warnThreshold are reported, 0 disables it.
func NewDispatcher(table *Table, warnThreshold time.Duration) *Dispatcher {
	return &Dispatcher{
		table:         table,
		warnThreshold: warnThreshold,
	}
}

// SetDumpUnhandled makes unhandled payloads logged as warnings instead of debug logs
func (d *Dispatcher) SetDumpUnhandled(dump bool) {
	d.dumpUnhandled = dump
}

// Dispatch invokes the handler of the payload
//
// The single byte table is checked first, then the two byte table. Failures are logged
// with the whole payload and returned; the session goes on with the next command.
func (d *Dispatcher) Dispatch(s Session, payload []byte) error {
	buf := netutil.WrapWireBuffer(payload)
	entry, ok := d.lookup(buf)
	if !ok {
		buf.SetRpos(0)
		if d.dumpUnhandled {
			gwlog.Warnf("%s: unhandled RPC data: %s", s, buf)
		} else {
			gwlog.Debugf("%s: unhandled RPC data: %s", s, buf)
		}
		return errors.Wrapf(ErrUnhandledOpcode, "%s", buf)
	}

	if consts.DEBUG_PACKETS {
		gwlog.Debugf("%s: dispatching %s: %s", s, entry, buf)
	}

	op := opmon.StartOperation("rpc." + entry.Name)
	err := gwutils.CatchPanic(func() error {
		return entry.Handler(s, buf)
	})
	op.Finish(d.warnThreshold)

	if err != nil {
		buf.SetRpos(0)
		switch {
		case errors.Is(err, netutil.ErrTruncatedData):
			gwlog.Debugf("%s: out of range error processing %s: %s", s, entry, buf)
		case errors.Is(err, ErrViewMismatch):
			gwlog.Warnf("%s: possible spoofing or desync in %s: %v, data: %s", s, entry, err, buf)
		default:
			gwlog.Warnf("%s: %s failed: %v, data: %s", s, entry, err, buf)
		}
	}
	return err
}

func (d *Dispatcher) lookup(buf *netutil.WireBuffer) (Entry, bool) {
	first, err := buf.ReadUint8()
	if err != nil {
		return Entry{}, false
	}
	if e, ok := d.table.LookupSingle(first); ok {
		return e, true
	}
	second, err := buf.ReadUint8()
	if err != nil {
		return Entry{}, false
	}
	return d.table.LookupPair(first, second)
}
