package rpc

import (
	"fmt"

	"github.com/mxosim/reality/engine/gwlog"
	"github.com/mxosim/reality/engine/netutil"
	"github.com/mxosim/reality/engine/views"
)

// Session is the connection an inbound command came from
type Session interface {
	Views() *views.Registry
	String() string
}

// Handler handles one inbound command. buf is positioned right after the opcode.
type Handler func(s Session, buf *netutil.WireBuffer) error

// Entry registers a handler for a single byte or a two byte opcode
type Entry struct {
	Opcode  uint16
	Wide    bool
	Name    string
	Handler Handler
}

// Single registers a one byte opcode
func Single(opcode uint8, name string, handler Handler) Entry {
	return Entry{Opcode: uint16(opcode), Name: name, Handler: handler}
}

// Pair registers a two byte opcode, the first byte in the high half
func Pair(opcode uint16, name string, handler Handler) Entry {
	return Entry{Opcode: opcode, Wide: true, Name: name, Handler: handler}
}

// Family registers every two byte opcode from first to last, inclusive
func Family(first, last uint16, name string, handler Handler) []Entry {
	entries := make([]Entry, 0, int(last)-int(first)+1)
	for op := int(first); op <= int(last); op++ {
		entries = append(entries, Pair(uint16(op), name, handler))
	}
	return entries
}

func (e Entry) String() string {
	if e.Wide {
		return fmt.Sprintf("%s(%04X)", e.Name, e.Opcode)
	}
	return fmt.Sprintf("%s(%02X)", e.Name, e.Opcode)
}

// Table is the immutable opcode table of a dispatcher
type Table struct {
	single map[uint8]Entry
	pair   map[uint16]Entry
}

// NewTable builds the table from the registrations, panicking on duplicate opcodes
func NewTable(entries ...[]Entry) *Table {
	t := &Table{
		single: map[uint8]Entry{},
		pair:   map[uint16]Entry{},
	}
	for _, group := range entries {
		for _, e := range group {
			if e.Handler == nil {
				gwlog.Panicf("rpc: %s has no handler", e)
			}
			if e.Wide {
				if old, ok := t.pair[e.Opcode]; ok {
					gwlog.Panicf("rpc: %s registered twice (%s)", e, old)
				}
				t.pair[e.Opcode] = e
			} else {
				if e.Opcode > 0xFF {
					gwlog.Panicf("rpc: single byte opcode %s out of range", e)
				}
				if old, ok := t.single[uint8(e.Opcode)]; ok {
					gwlog.Panicf("rpc: %s registered twice (%s)", e, old)
				}
				t.single[uint8(e.Opcode)] = e
			}
		}
	}
	return t
}

// LookupSingle returns the handler registered for the single byte opcode
func (t *Table) LookupSingle(first uint8) (Entry, bool) {
	e, ok := t.single[first]
	return e, ok
}

// LookupPair returns the handler registered for the two byte opcode
func (t *Table) LookupPair(first, second uint8) (Entry, bool) {
	e, ok := t.pair[uint16(first)<<8|uint16(second)]
	return e, ok
}

// Len returns the number of registered opcodes
func (t *Table) Len() int {
	return len(t.single) + len(t.pair)
}
