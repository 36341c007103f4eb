package common

import (
	"fmt"

	"github.com/pkg/errors"
)

// EntityID is the stable world-wide identifier of an object, never reused while the object exists
type EntityID uint32

// NilEntityID is never assigned to a world object
const NilEntityID EntityID = 0

// IsNil returns if EntityID is nil
func (id EntityID) IsNil() bool {
	return id == NilEntityID
}

func (id EntityID) String() string {
	return fmt.Sprintf("E%08X", uint32(id))
}

// ViewID is the connection scoped alias of an EntityID as seen by one client
type ViewID uint16

// NilViewID is never issued to a client
const NilViewID ViewID = 0

// MaxViewID is the last view slot a connection can allocate
const MaxViewID ViewID = 0xFFFF

// IsNil returns if ViewID is nil
func (vid ViewID) IsNil() bool {
	return vid == NilViewID
}

func (vid ViewID) String() string {
	return fmt.Sprintf("V%04X", uint16(vid))
}

var (
	// ErrEntityNotVisible is returned when the entity is retired on this connection
	ErrEntityNotVisible = errors.New("entity not visible")
	// ErrConnectionGone is returned by a connection that is closing
	ErrConnectionGone = errors.New("connection gone")
	// ErrEntityNotFound is returned when the world has no such entity
	ErrEntityNotFound = errors.New("entity not found")
)
