package entity

import (
	"fmt"
	"math"

	"github.com/mxosim/reality/engine/netutil"
)

// Coord is the type of world coordinates, stored with full precision
type Coord = float64

// Location is the position and facing of a world object
type Location struct {
	X   Coord
	Y   Coord
	Z   Coord
	Rot float64 // radians in (-Pi, Pi]
}

func (l Location) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f) rot %.3f", l.X, l.Y, l.Z, l.Rot)
}

// DistanceTo calculates distance between two positions
func (l Location) DistanceTo(o Location) Coord {
	dx := l.X - o.X
	dy := l.Y - o.Y
	dz := l.Z - o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// SamePlace checks if both locations have the same coordinates and facing
func (l Location) SamePlace(o Location) bool {
	return l.X == o.X && l.Y == o.Y && l.Z == o.Z && l.Rot == o.Rot
}

// SetMxoRot sets the facing from the one byte angle used by the client, 256 steps per turn
func (l *Location) SetMxoRot(b uint8) {
	rot := float64(b) * 2 * math.Pi / 256
	if rot > math.Pi {
		rot -= 2 * math.Pi
	}
	l.Rot = rot
}

// MxoRot converts the facing to the client's one byte angle
func (l Location) MxoRot() uint8 {
	rot := l.Rot
	if rot < 0 {
		rot += 2 * math.Pi
	}
	return uint8(int(math.Floor(rot*256/(2*math.Pi)+0.5)) & 0xFF)
}

// AppendFloats writes x, y, z as 32 bit floats
func (l Location) AppendFloats(buf *netutil.WireBuffer) {
	buf.AppendFloat32(float32(l.X))
	buf.AppendFloat32(float32(l.Y))
	buf.AppendFloat32(float32(l.Z))
}

// PutFloats overwrites x, y, z as 32 bit floats at offset
func (l Location) PutFloats(buf *netutil.WireBuffer, offset int) {
	buf.PutFloat32(offset, float32(l.X))
	buf.PutFloat32(offset+4, float32(l.Y))
	buf.PutFloat32(offset+8, float32(l.Z))
}

// PutDoubles overwrites x, y, z as 64 bit floats at offset
func (l Location) PutDoubles(buf *netutil.WireBuffer, offset int) {
	buf.PutFloat64(offset, l.X)
	buf.PutFloat64(offset+8, l.Y)
	buf.PutFloat64(offset+16, l.Z)
}

// ReadFloats reads x, y, z as 32 bit floats. The location is unchanged if the buffer is truncated.
func ReadFloats(buf *netutil.WireBuffer) (x, y, z float32, err error) {
	start := buf.Rpos()
	if x, err = buf.ReadFloat32(); err != nil {
		return
	}
	if y, err = buf.ReadFloat32(); err != nil {
		buf.SetRpos(start)
		return
	}
	if z, err = buf.ReadFloat32(); err != nil {
		buf.SetRpos(start)
		return
	}
	return
}

// Ahead returns the location moved forward along the facing by distance*scale
func (l Location) Ahead(distance float64, scale float64) Location {
	xInc := distance * math.Sin(l.Rot)
	zInc := math.Sqrt(math.Max(distance*distance-xInc*xInc, 0))
	xInc *= scale
	zInc *= scale

	l.X -= xInc
	if math.Abs(l.Rot) > math.Pi/2 {
		l.Z += zInc
	} else {
		l.Z -= zInc
	}
	return l
}
