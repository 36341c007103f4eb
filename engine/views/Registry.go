package views

import (
	"sync"

	"github.com/mxosim/reality/engine/common"
	"github.com/mxosim/reality/engine/consts"
	"github.com/mxosim/reality/engine/gwlog"
	"github.com/petar/GoLLRB/llrb"
	"github.com/pkg/errors"
)

var (
	// ErrViewsExhausted is returned when every view slot of the connection is in use
	ErrViewsExhausted = errors.New("view ids exhausted")
)

type freeSlot common.ViewID

func (s freeSlot) Less(other llrb.Item) bool {
	return s < other.(freeSlot)
}

// Registry maps EntityIDs to the ViewIDs of one connection
//
// Released slots are kept in an ordered set so the lowest free slot is always reused first,
// which keeps view ids small for long sessions. An entity released on this connection is
// retired: it can not be resolved again until it is admitted by a new spawn.
type Registry struct {
	sync.Mutex

	owner    string
	byEntity map[common.EntityID]common.ViewID
	byView   map[common.ViewID]common.EntityID
	retired  map[common.EntityID]common.ViewID // entity => slot held when it was released
	free     *llrb.LLRB
	next     int // lowest slot never allocated
	closing  bool
}

// NewRegistry creates the view registry of a connection
func NewRegistry(owner string) *Registry {
	return &Registry{
		owner:    owner,
		byEntity: map[common.EntityID]common.ViewID{},
		byView:   map[common.ViewID]common.EntityID{},
		retired:  map[common.EntityID]common.ViewID{},
		free:     llrb.New(),
		next:     1,
	}
}

func (r *Registry) String() string {
	return "Registry<" + r.owner + ">"
}

// Resolve returns the view id of the entity, allocating the lowest free slot on first reference
func (r *Registry) Resolve(eid common.EntityID) (common.ViewID, error) {
	r.Lock()
	defer r.Unlock()

	if r.closing {
		return common.NilViewID, common.ErrConnectionGone
	}
	if vid, ok := r.byEntity[eid]; ok {
		return vid, nil
	}
	if _, ok := r.retired[eid]; ok {
		return common.NilViewID, errors.Wrapf(common.ErrEntityNotVisible, "%s retired on %s", eid, r)
	}
	return r.allocLocked(eid, common.NilViewID)
}

// Admit makes a retired entity visible again and resolves it
//
// The slot the entity held when it was retired is only handed back when no other slot is free.
func (r *Registry) Admit(eid common.EntityID) (common.ViewID, error) {
	r.Lock()
	defer r.Unlock()

	if r.closing {
		return common.NilViewID, common.ErrConnectionGone
	}
	if vid, ok := r.byEntity[eid]; ok {
		return vid, nil
	}
	previous := r.retired[eid]
	delete(r.retired, eid)
	return r.allocLocked(eid, previous)
}

func (r *Registry) allocLocked(eid common.EntityID, avoid common.ViewID) (common.ViewID, error) {
	vid, ok := r.takeFreeSlotLocked(avoid)
	if !ok {
		if r.next > int(common.MaxViewID) {
			gwlog.Errorf("%s: no view id left for %s", r, eid)
			return common.NilViewID, ErrViewsExhausted
		}
		vid = common.ViewID(r.next)
		r.next += 1
	}

	r.byEntity[eid] = vid
	r.byView[vid] = eid
	if consts.DEBUG_VIEWS {
		gwlog.Debugf("%s: %s => %s", r, eid, vid)
	}
	return vid, nil
}

func (r *Registry) takeFreeSlotLocked(avoid common.ViewID) (common.ViewID, bool) {
	if r.free.Len() == 0 {
		return common.NilViewID, false
	}

	slot := r.free.Min().(freeSlot)
	if !avoid.IsNil() && common.ViewID(slot) == avoid {
		found := false
		if slot < freeSlot(common.MaxViewID) {
			r.free.AscendGreaterOrEqual(slot+1, func(item llrb.Item) bool {
				slot = item.(freeSlot)
				found = true
				return false
			})
		}
		if !found && r.next <= int(common.MaxViewID) {
			return common.NilViewID, false
		}
	}

	r.free.Delete(slot)
	return common.ViewID(slot), true
}

// Lookup returns the existing view id of the entity without allocating
func (r *Registry) Lookup(eid common.EntityID) (common.ViewID, bool) {
	r.Lock()
	vid, ok := r.byEntity[eid]
	r.Unlock()
	return vid, ok
}

// EntityOf returns the entity currently behind the view id
func (r *Registry) EntityOf(vid common.ViewID) (common.EntityID, bool) {
	r.Lock()
	eid, ok := r.byView[vid]
	r.Unlock()
	return eid, ok
}

// Release removes the mapping of the entity and retires it on this connection. Releasing twice is harmless.
func (r *Registry) Release(eid common.EntityID) {
	r.Lock()
	defer r.Unlock()

	if r.closing {
		return
	}
	vid, ok := r.byEntity[eid]
	if !ok {
		if _, retired := r.retired[eid]; !retired {
			r.retired[eid] = common.NilViewID
		}
		return
	}

	delete(r.byEntity, eid)
	delete(r.byView, vid)
	r.free.ReplaceOrInsert(freeSlot(vid))
	r.retired[eid] = vid
	if consts.DEBUG_VIEWS {
		gwlog.Debugf("%s: released %s (%s)", r, eid, vid)
	}
}

// Prune drops the retirement records of entities for which alive returns false and returns how many were dropped.
// Only prune after every queued despawn of those entities has been rendered.
func (r *Registry) Prune(alive func(eid common.EntityID) bool) int {
	r.Lock()
	defer r.Unlock()

	n := 0
	for eid := range r.retired {
		if !alive(eid) {
			delete(r.retired, eid)
			n += 1
		}
	}
	return n
}

// Retired returns the number of entities retired on this connection
func (r *Registry) Retired() int {
	r.Lock()
	n := len(r.retired)
	r.Unlock()
	return n
}

// ReleaseAll drops every mapping and marks the registry closing, after which all resolutions fail
func (r *Registry) ReleaseAll() {
	r.Lock()
	defer r.Unlock()

	if r.closing {
		return
	}
	r.closing = true
	r.byEntity = map[common.EntityID]common.ViewID{}
	r.byView = map[common.ViewID]common.EntityID{}
	r.retired = map[common.EntityID]common.ViewID{}
	r.free = llrb.New()
	r.next = 1
}

// IsClosing returns if ReleaseAll has been called
func (r *Registry) IsClosing() bool {
	r.Lock()
	closing := r.closing
	r.Unlock()
	return closing
}

// Len returns the number of entities currently mapped
func (r *Registry) Len() int {
	r.Lock()
	n := len(r.byEntity)
	r.Unlock()
	return n
}
