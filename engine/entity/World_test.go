package entity

import (
	"math"
	"testing"
	"time"

	"github.com/bmizerany/assert"
	"github.com/mxosim/reality/engine/common"
	"github.com/pkg/errors"
)

func TestWorldObjects(t *testing.T) {
	w := NewWorld()
	neo := NewPlayer(w.AllocEntityID(), testCharacter(), time.Now())
	w.Add(neo)
	trinity := NewPlayer(w.AllocEntityID(), Character{Handle: "Trinity"}, time.Now())
	w.Add(trinity)

	assert.Equal(t, []common.EntityID{neo.ID(), trinity.ID()}, w.AllEntityIDs())
	assert.Equal(t, 2, len(w.Players()))
	w.OpenDoor(7, neo.Position(), InsideDoor)
	assert.Equal(t, 2, w.PlayerCount())

	obj, err := w.ResolveEntity(neo.ID())
	assert.Equal(t, nil, err)
	assert.Equal(t, neo, obj.(*Player))

	found, err := w.PlayerByHandle("TRINITY")
	assert.Equal(t, nil, err)
	assert.Equal(t, trinity, found)
	_, err = w.PlayerByHandle("Morpheus")
	assert.T(t, errors.Is(err, common.ErrEntityNotFound))

	assert.T(t, w.Remove(neo.ID()))
	assert.T(t, !w.Remove(neo.ID()))
	assert.Equal(t, 1, w.PlayerCount())
	assert.Equal(t, []*Player{trinity}, w.Players())
	_, err = w.ResolveEntity(neo.ID())
	assert.T(t, errors.Is(err, common.ErrEntityNotVisible))
	_, err = w.Player(neo.ID())
	assert.T(t, errors.Is(err, common.ErrEntityNotVisible))
}

func TestWorldAllocSkipsLiveIDs(t *testing.T) {
	w := NewWorld()
	w.Add(NewPlayer(1, testCharacter(), time.Now()))
	w.Add(NewPlayer(2, Character{Handle: "Trinity"}, time.Now()))
	assert.Equal(t, common.EntityID(3), w.AllocEntityID())
}

func TestWorldSimTime(t *testing.T) {
	now := time.Unix(5000, 0)
	w := NewWorld()
	w.SetClock(func() time.Time { return now })
	assert.Equal(t, float32(0), w.SimTime())
	now = now.Add(1500 * time.Millisecond)
	assert.Equal(t, float32(1.5), w.SimTime())
}

func TestDoors(t *testing.T) {
	w := NewWorld()
	door, opened := w.OpenDoor(0x19005030, Location{X: 1}, InsideDoor)
	assert.T(t, opened)
	_, opened = w.OpenDoor(0x19005030, Location{X: 2}, InsideDoor)
	assert.T(t, !opened)
	assert.Equal(t, []*Door{door}, w.OpenDoors())
	assert.Equal(t, Coord(2), door.Snapshot().Pos.X)

	_, err := w.ResolveEntity(door.ID())
	assert.Equal(t, nil, err)
	_, err = w.Player(door.ID())
	assert.T(t, errors.Is(err, common.ErrEntityNotVisible))

	closed, ok := w.CloseDoor(0x19005030)
	assert.T(t, ok)
	assert.Equal(t, door, closed)
	_, ok = w.CloseDoor(0x19005030)
	assert.T(t, !ok)
	_, ok = w.CloseDoor(0x1234)
	assert.T(t, !ok)
	assert.Equal(t, 0, len(w.OpenDoors()))

	// reopening keeps the entity
	again, opened := w.OpenDoor(0x19005030, Location{}, OutsideDoor)
	assert.T(t, opened)
	assert.Equal(t, door.ID(), again.ID())
	assert.Equal(t, OutsideDoor, again.Snapshot().Type)
}

func TestDoorAnimationAnchor(t *testing.T) {
	cases := []struct {
		rot      float64
		rotation uint8
	}{
		{0, 0x03},
		{0.5, 0x03},
		{-0.7, 0x03},
		{1.2, 0xBF},
		{-1.2, 0x3F},
		{2.5, 0x03},
		{-3.0, 0x03},
	}
	for _, c := range cases {
		_, rotation := DoorState{Pos: Location{Rot: c.rot}}.AnimationAnchor()
		assert.Equal(t, c.rotation, rotation, "rot", c.rot)
	}

	anchor, _ := DoorState{Pos: Location{X: 100, Y: 10, Z: 100}}.AnimationAnchor()
	assert.T(t, almostEqual(100, anchor.X))
	assert.T(t, almostEqual(60, anchor.Y))
	assert.T(t, almostEqual(40, anchor.Z))

	anchor, _ = DoorState{Pos: Location{X: 100, Z: 100, Rot: math.Pi}}.AnimationAnchor()
	assert.T(t, almostEqual(160, anchor.Z))
}
