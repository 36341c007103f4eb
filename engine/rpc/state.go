package rpc

import (
	"github.com/mxosim/reality/engine/common"
	"github.com/mxosim/reality/engine/entity"
	"github.com/mxosim/reality/engine/netutil"
	"github.com/pkg/errors"
)

var (
	// ErrUnknownStateTag is returned for state updates with a tag that is not understood
	ErrUnknownStateTag = errors.New("unknown state tag")
	// ErrViewMismatch is returned when a client updates a view that is not its own
	ErrViewMismatch = errors.New("state update for another view")
)

const (
	statePrefix = 0x03
	stateMarker = 0x01
)

// StateKind is the kind of change a state update carries
type StateKind uint8

const (
	SU_NONE StateKind = iota
	SU_ANGLE
	SU_ANGLE_HINT
	SU_POSITION
	SU_POSITION_LEADING
)

var stateKindNames = [...]string{
	SU_NONE:             "None",
	SU_ANGLE:            "Angle",
	SU_ANGLE_HINT:       "AngleHint",
	SU_POSITION:         "Position",
	SU_POSITION_LEADING: "PositionLeading",
}

func (k StateKind) String() string {
	if int(k) < len(stateKindNames) {
		return stateKindNames[k]
	}
	return "StateKind?"
}

// StateUpdate is a decoded client state update
type StateUpdate struct {
	Kind    StateKind
	View    common.ViewID
	Tag     uint8
	Rot     uint8 // SU_ANGLE, SU_ANGLE_HINT
	Hint    uint8 // SU_ANGLE_HINT
	X, Y, Z float32
	// Tail is the payload from the byte after the view id, relayed to other clients as it is
	Tail []byte
}

// HasRotation returns if the update changes the facing
func (u StateUpdate) HasRotation() bool {
	return u.Kind == SU_ANGLE || u.Kind == SU_ANGLE_HINT
}

// HasPosition returns if the update changes the coordinates
func (u StateUpdate) HasPosition() bool {
	return u.Kind == SU_POSITION || u.Kind == SU_POSITION_LEADING
}

// Apply applies the update to loc
func (u StateUpdate) Apply(loc *entity.Location) {
	if u.HasRotation() {
		loc.SetMxoRot(u.Rot)
	} else if u.HasPosition() {
		loc.X, loc.Y, loc.Z = entity.Coord(u.X), entity.Coord(u.Y), entity.Coord(u.Z)
	}
}

// DecodeStateUpdate decodes the state update payload from its start
//
// checkView is called with the echoed view id before anything else is decoded and must fail
// unless the view belongs to the sender. Nothing of a rejected or truncated update should be applied.
func DecodeStateUpdate(buf *netutil.WireBuffer, checkView func(vid common.ViewID) error) (StateUpdate, error) {
	var u StateUpdate
	buf.SetRpos(0)

	prefix, err := buf.ReadUint8()
	if err != nil {
		return u, err
	}
	if prefix != statePrefix {
		return u, errors.Wrapf(ErrUnknownStateTag, "prefix %02X", prefix)
	}
	vid, err := buf.ReadUint16()
	if err != nil {
		return u, err
	}
	u.View = common.ViewID(vid)
	if err := checkView(u.View); err != nil {
		return u, errors.Wrapf(ErrViewMismatch, "%s: %v", u.View, err)
	}

	tailStart := buf.Rpos()
	marker, err := buf.ReadUint8()
	if err != nil {
		return u, err
	}
	if marker != stateMarker {
		return u, errors.Wrapf(ErrUnknownStateTag, "no %02X after view id", stateMarker)
	}
	if u.Tag, err = buf.ReadUint8(); err != nil {
		return u, err
	}

	switch u.Tag {
	case 0x02:
		u.Kind = SU_NONE
	case 0x04:
		u.Kind = SU_ANGLE
		if u.Rot, err = buf.ReadUint8(); err != nil {
			return u, err
		}
	case 0x06:
		u.Kind = SU_ANGLE_HINT
		if u.Hint, err = buf.ReadUint8(); err != nil {
			return u, err
		}
		if u.Rot, err = buf.ReadUint8(); err != nil {
			return u, err
		}
	case 0x08:
		u.Kind = SU_POSITION
		if u.X, u.Y, u.Z, err = entity.ReadFloats(buf); err != nil {
			return u, err
		}
	case 0x0A, 0x0C, 0x0E:
		u.Kind = SU_POSITION_LEADING
		leading := 1
		if u.Tag == 0x0E {
			leading = 2
		}
		if err = buf.Skip(leading); err != nil {
			return u, err
		}
		if u.X, u.Y, u.Z, err = entity.ReadFloats(buf); err != nil {
			return u, err
		}
	default:
		return u, errors.Wrapf(ErrUnknownStateTag, "tag %02X", u.Tag)
	}

	raw := buf.Bytes()[tailStart:]
	u.Tail = make([]byte, len(raw))
	copy(u.Tail, raw)
	return u, nil
}
