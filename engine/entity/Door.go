package entity

import (
	"fmt"
	"math"
	"sync"

	"github.com/mxosim/reality/engine/common"
	"github.com/mxosim/reality/engine/consts"
)

// DoorType selects the door animation template
type DoorType int

const (
	// InsideDoor is a hallway door
	InsideDoor DoorType = iota
	// OutsideDoor is a street door
	OutsideDoor
)

// DoorState is a consistent copy of a door
type DoorState struct {
	ID     common.EntityID
	DoorID uint32
	Pos    Location
	Type   DoorType
	Open   bool
}

// Door is a static world object that can be opened by players
type Door struct {
	mu sync.Mutex

	id     common.EntityID
	doorID uint32 // static object id in the world data
	pos    Location
	typ    DoorType
	open   bool
}

// NewDoor creates a closed door
func NewDoor(id common.EntityID, doorID uint32, pos Location, typ DoorType) *Door {
	return &Door{
		id:     id,
		doorID: doorID,
		pos:    pos,
		typ:    typ,
	}
}

func (d *Door) String() string {
	return fmt.Sprintf("Door<%s:%08X>", d.id, d.doorID)
}

func (d *Door) ID() common.EntityID {
	return d.id
}

func (d *Door) DoorID() uint32 {
	return d.doorID
}

// Open marks the door open with the type and at the location it was last opened from, and returns if it was closed before
func (d *Door) Open(from Location, typ DoorType) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	wasClosed := !d.open
	d.open = true
	d.pos = from
	d.typ = typ
	return wasClosed
}

// Close marks the door closed and returns if it was open before
func (d *Door) Close() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	wasOpen := d.open
	d.open = false
	return wasOpen
}

func (d *Door) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

func (d *Door) Snapshot() DoorState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return DoorState{
		ID:     d.id,
		DoorID: d.doorID,
		Pos:    d.pos,
		Type:   d.typ,
		Open:   d.open,
	}
}

// AnimationAnchor returns where the door animation is played and the client rotation byte of the door
func (s DoorState) AnimationAnchor() (Location, uint8) {
	anchor := s.Pos
	anchor.Y += consts.DOOR_ANCHOR_HEIGHT
	anchor = anchor.Ahead(consts.DOOR_ANCHOR_DISTANCE/10, 10)

	rot := s.Pos.Rot
	var rotation uint8
	switch {
	case math.Abs(rot) > 2.3: // north
		rotation = 0x03
	case math.Abs(rot) < 0.78: // south opens like north
		rotation = 0x03
	case rot < 0: // west
		rotation = 0x3F
	default: // east
		rotation = 0xBF
	}
	return anchor, rotation
}
