package entity

import (
	"sort"
	"sync"
	"time"

	"github.com/mxosim/reality/engine/common"
	"github.com/mxosim/reality/engine/gwlog"
	"github.com/pkg/errors"
)

// Object is anything in the world that clients can reference
type Object interface {
	ID() common.EntityID
	String() string
}

// World is the set of live objects shared by all connections
type World struct {
	sync.RWMutex

	objects map[common.EntityID]Object
	players common.EntityIDSet
	doors   map[uint32]*Door // static door id => door
	lastID  common.EntityID
	started time.Time
	now     func() time.Time
}

// NewWorld creates an empty world whose sim time starts now
func NewWorld() *World {
	return &World{
		objects: map[common.EntityID]Object{},
		players: common.EntityIDSet{},
		doors:   map[uint32]*Door{},
		started: time.Now(),
		now:     time.Now,
	}
}

// SetClock replaces the clock of the world and restarts its sim time
func (w *World) SetClock(now func() time.Time) {
	w.Lock()
	w.now = now
	w.started = now()
	w.Unlock()
}

// Now returns the current time of the world clock
func (w *World) Now() time.Time {
	w.RLock()
	now := w.now
	w.RUnlock()
	return now()
}

// SimTime returns the seconds elapsed since the world started
func (w *World) SimTime() float32 {
	w.RLock()
	defer w.RUnlock()
	return float32(w.now().Sub(w.started).Seconds())
}

// AllocEntityID returns an id that no live object uses
func (w *World) AllocEntityID() common.EntityID {
	w.Lock()
	defer w.Unlock()
	return w.allocLocked()
}

func (w *World) allocLocked() common.EntityID {
	for {
		w.lastID++
		if w.lastID.IsNil() {
			continue
		}
		if _, ok := w.objects[w.lastID]; !ok {
			return w.lastID
		}
	}
}

// Add puts the object into the world
func (w *World) Add(obj Object) {
	w.Lock()
	defer w.Unlock()
	if old, ok := w.objects[obj.ID()]; ok && old != obj {
		gwlog.Panicf("World.Add: %s already used by %s", obj.ID(), old)
	}
	w.objects[obj.ID()] = obj
	switch o := obj.(type) {
	case *Player:
		w.players.Add(o.ID())
	case *Door:
		w.doors[o.DoorID()] = o
	}
}

// Remove takes the object out of the world and returns if it was there
func (w *World) Remove(eid common.EntityID) bool {
	w.Lock()
	defer w.Unlock()
	obj, ok := w.objects[eid]
	if !ok {
		return false
	}
	delete(w.objects, eid)
	w.players.Del(eid)
	if door, ok := obj.(*Door); ok {
		delete(w.doors, door.DoorID())
	}
	return true
}

// ResolveEntity returns the live object of the id
func (w *World) ResolveEntity(eid common.EntityID) (Object, error) {
	w.RLock()
	obj, ok := w.objects[eid]
	w.RUnlock()
	if !ok {
		return nil, errors.Wrapf(common.ErrEntityNotVisible, "%s is not in the world", eid)
	}
	return obj, nil
}

// Contains returns if the object is in the world
func (w *World) Contains(eid common.EntityID) bool {
	w.RLock()
	_, ok := w.objects[eid]
	w.RUnlock()
	return ok
}

// Player resolves the id to a player
func (w *World) Player(eid common.EntityID) (*Player, error) {
	obj, err := w.ResolveEntity(eid)
	if err != nil {
		return nil, err
	}
	player, ok := obj.(*Player)
	if !ok {
		return nil, errors.Wrapf(common.ErrEntityNotVisible, "%s is not a player", obj)
	}
	return player, nil
}

// PlayerByHandle finds the player using the handle, ignoring case
func (w *World) PlayerByHandle(handle string) (*Player, error) {
	w.RLock()
	defer w.RUnlock()
	for eid := range w.players {
		if player := w.objects[eid].(*Player); player.HasHandle(handle) {
			return player, nil
		}
	}
	return nil, errors.Wrapf(common.ErrEntityNotFound, "no player %q", handle)
}

// AllEntityIDs returns the ids of all live objects in ascending order
func (w *World) AllEntityIDs() []common.EntityID {
	w.RLock()
	eids := make([]common.EntityID, 0, len(w.objects))
	for eid := range w.objects {
		eids = append(eids, eid)
	}
	w.RUnlock()
	sort.Slice(eids, func(i, j int) bool {
		return eids[i] < eids[j]
	})
	return eids
}

// Players returns all players ordered by entity id
func (w *World) Players() []*Player {
	w.RLock()
	defer w.RUnlock()
	players := make([]*Player, 0, len(w.players))
	for _, eid := range w.players.ToList() {
		players = append(players, w.objects[eid].(*Player))
	}
	return players
}

// PlayerCount returns the number of players in the world
func (w *World) PlayerCount() int {
	w.RLock()
	defer w.RUnlock()
	return len(w.players)
}

// Len returns the number of live objects
func (w *World) Len() int {
	w.RLock()
	defer w.RUnlock()
	return len(w.objects)
}

// OpenDoor opens the door with the static id, creating its world object on first use.
// The type and location of the latest opening replace the previous ones.
// It returns the door and if it was closed before.
func (w *World) OpenDoor(doorID uint32, from Location, typ DoorType) (*Door, bool) {
	w.Lock()
	door, ok := w.doors[doorID]
	if !ok {
		door = NewDoor(w.allocLocked(), doorID, from, typ)
		w.objects[door.ID()] = door
		w.doors[doorID] = door
	}
	w.Unlock()

	return door, door.Open(from, typ)
}

// CloseDoor closes the door with the static id and returns it if it was open
func (w *World) CloseDoor(doorID uint32) (*Door, bool) {
	w.RLock()
	door, ok := w.doors[doorID]
	w.RUnlock()
	if !ok {
		return nil, false
	}
	return door, door.Close()
}

// OpenDoors returns the doors currently open, ordered by entity id
func (w *World) OpenDoors() []*Door {
	w.RLock()
	doors := make([]*Door, 0, len(w.doors))
	for _, door := range w.doors {
		if door.IsOpen() {
			doors = append(doors, door)
		}
	}
	w.RUnlock()
	sort.Slice(doors, func(i, j int) bool {
		return doors[i].ID() < doors[j].ID()
	})
	return doors
}
