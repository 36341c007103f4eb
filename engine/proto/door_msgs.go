package proto

import (
	"github.com/mxosim/reality/engine/common"
	"github.com/mxosim/reality/engine/entity"
	"github.com/mxosim/reality/engine/netutil"
	"github.com/pkg/errors"
)

const (
	doorIDOffset       = 6
	doorRotationOffset = 22
	doorPositionOffset = 32
	doorViewOffset     = 60
)

var insideDoorTemplate = [65]byte{
	0x03, 0x01, 0x00, 0x08, 0xDA, 0x19,
	0xAA, 0xAA, 0xAA, 0xAA, // door id
	0xEF, 0xCD, 0xAB, 0x03, 0x84, 0x00, 0x00, 0x00, 0x00, 0xF2, 0x04,
	0x35, 0xBF, // rotation at the second byte
	0x00, 0x00, 0x00, 0x00, 0xF3, 0x04, 0x35, 0x3F,
	0x41,
	0x00, 0x00, 0x00, 0x00, 0xBB, 0xBB, 0xBB, 0xBB, // x
	0x00, 0x00, 0x00, 0x00, 0xCC, 0xCC, 0xCC, 0xCC, // y
	0x00, 0x00, 0x00, 0x00, 0xDD, 0xDD, 0xDD, 0xDD, // z
	0x34, 0x08, 0x00, 0x00,
	0xBB, 0xBB, 0x00, 0x00, 0x00,
}

var outsideDoorTemplate = [65]byte{
	0x03, 0x01, 0x00, 0x08, 0x33, 0x1B,
	0xAA, 0xAA, 0xAA, 0xAA,
	0xBC, 0xCD, 0xAB, 0x03, 0x84, 0x00, 0x00, 0x00, 0x00, 0xF3, 0x04, 0x35, 0xBF, 0x00, 0x00,
	0x00, 0x00, 0xF3, 0x04, 0x35, 0x3F, 0x41, 0x00, 0x00, 0x00, 0x00, 0x20, 0xF4, 0xEA, 0x40,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x20, 0x62, 0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x7E, 0xCD,
	0x40, 0x34, 0x08, 0x00, 0x00, 0xBB, 0xBB, 0x00, 0x00, 0x00,
}

// NewDoorOpen plays the opening animation of the door object
func NewDoorOpen(world World, doorEID common.EntityID) *Message {
	return &Message{kind: MK_DOOR_OPEN, source: doorEID, world: world}
}

func (m *Message) renderDoorOpen() (*netutil.WireBuffer, error) {
	obj, err := m.world.ResolveEntity(m.source)
	if err != nil {
		return nil, m.noLongerValid(err)
	}
	door, ok := obj.(*entity.Door)
	if !ok {
		return nil, m.noLongerValid(errors.Wrapf(common.ErrEntityNotVisible, "%s is not a door", obj))
	}
	state := door.Snapshot()
	if !state.Open {
		return nil, m.noLongerValid(ErrDoorClosed)
	}
	vid, err := m.admitView()
	if err != nil {
		return nil, err
	}

	var buf *netutil.WireBuffer
	if state.Type == entity.OutsideDoor {
		buf = netutil.FromTemplate(outsideDoorTemplate[:])
	} else {
		buf = netutil.FromTemplate(insideDoorTemplate[:])
	}
	anchor, rotation := state.AnimationAnchor()
	buf.PutUint32(doorIDOffset, state.DoorID)
	buf.PutUint8(doorRotationOffset, rotation)
	anchor.PutDoubles(buf, doorPositionOffset)
	buf.PutUint16(doorViewOffset, uint16(vid))
	return buf, nil
}

var doorCloseTemplate = [12]byte{0x03, 0x03, 0x00, 0x01, 0x80, 0x02, 0x38, 0x08, 0x00, 0x00, 0x00, 0x00}

// NewDoorClose closes the door on clients that saw it open and retires its view id
func NewDoorClose(doorEID common.EntityID) *Message {
	return &Message{kind: MK_DOOR_CLOSE, source: doorEID}
}

func (m *Message) renderDoorClose() (*netutil.WireBuffer, error) {
	vid, err := m.retireView()
	if err != nil {
		return nil, err
	}
	buf := netutil.FromTemplate(doorCloseTemplate[:])
	buf.PutUint16(7, uint16(vid))
	return buf, nil
}
