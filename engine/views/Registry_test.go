package views

import (
	"sync"
	"testing"

	"github.com/bmizerany/assert"
	"github.com/mxosim/reality/engine/common"
	"github.com/pkg/errors"
)

func mustResolve(t *testing.T, r *Registry, eid common.EntityID) common.ViewID {
	vid, err := r.Resolve(eid)
	if err != nil {
		t.Fatalf("resolve %s: %v", eid, err)
	}
	return vid
}

func TestResolveIsStable(t *testing.T) {
	r := NewRegistry("test")
	v1 := mustResolve(t, r, 42)
	v2 := mustResolve(t, r, 42)
	assert.Equal(t, common.ViewID(1), v1)
	assert.Equal(t, v1, v2)
	assert.Equal(t, 1, r.Len())

	v3 := mustResolve(t, r, 43)
	assert.Equal(t, common.ViewID(2), v3)

	eid, ok := r.EntityOf(v3)
	assert.T(t, ok)
	assert.Equal(t, common.EntityID(43), eid)
	vid, ok := r.Lookup(42)
	assert.T(t, ok)
	assert.Equal(t, v1, vid)
	_, ok = r.Lookup(44)
	assert.T(t, !ok)
}

func TestLowestFreeSlotIsReused(t *testing.T) {
	r := NewRegistry("test")
	for eid := common.EntityID(1); eid <= 5; eid++ {
		mustResolve(t, r, eid)
	}
	r.Release(4)
	r.Release(2)

	assert.Equal(t, common.ViewID(2), mustResolve(t, r, 100))
	assert.Equal(t, common.ViewID(4), mustResolve(t, r, 101))
	assert.Equal(t, common.ViewID(6), mustResolve(t, r, 102))
}

func TestRetiredEntityIsNotVisible(t *testing.T) {
	r := NewRegistry("test")
	mustResolve(t, r, 42)
	r.Release(42)

	_, err := r.Resolve(42)
	assert.T(t, errors.Is(err, common.ErrEntityNotVisible))

	// another entity reuses the slot
	assert.Equal(t, common.ViewID(1), mustResolve(t, r, 99))
	_, ok := r.EntityOf(1)
	assert.T(t, ok)
}

func TestAdmitAvoidsPreviousSlot(t *testing.T) {
	r := NewRegistry("test")
	mustResolve(t, r, 42) // 1
	mustResolve(t, r, 43) // 2
	r.Release(42)

	vid, err := r.Admit(42)
	assert.Equal(t, nil, err)
	assert.NotEqual(t, common.ViewID(1), vid)
	assert.Equal(t, common.ViewID(3), vid)

	// slot 1 is still free and goes to the next new entity
	assert.Equal(t, common.ViewID(1), mustResolve(t, r, 44))

	// admitting a visible entity returns its mapping
	again, err := r.Admit(42)
	assert.Equal(t, nil, err)
	assert.Equal(t, vid, again)
}

func TestAdmitPrefersOtherFreeSlot(t *testing.T) {
	r := NewRegistry("test")
	for eid := common.EntityID(1); eid <= 3; eid++ {
		mustResolve(t, r, eid)
	}
	r.Release(1)
	r.Release(3)

	vid, err := r.Admit(1)
	assert.Equal(t, nil, err)
	assert.Equal(t, common.ViewID(3), vid)
}

func TestReleaseIsIdempotent(t *testing.T) {
	r := NewRegistry("test")
	mustResolve(t, r, 1)
	mustResolve(t, r, 2)
	r.Release(1)
	r.Release(1)
	r.Release(1)
	assert.Equal(t, 1, r.Len())

	assert.Equal(t, common.ViewID(1), mustResolve(t, r, 3))
	assert.Equal(t, common.ViewID(3), mustResolve(t, r, 4))
}

func TestReleaseUnknownEntityRetiresIt(t *testing.T) {
	r := NewRegistry("test")
	r.Release(7)
	_, err := r.Resolve(7)
	assert.T(t, errors.Is(err, common.ErrEntityNotVisible))

	assert.Equal(t, 0, r.Prune(func(eid common.EntityID) bool { return true }))
	assert.Equal(t, 1, r.Prune(func(eid common.EntityID) bool { return eid != 7 }))
	assert.Equal(t, 0, r.Retired())
	assert.Equal(t, common.ViewID(1), mustResolve(t, r, 7))
}

func TestPruneBoundsRetired(t *testing.T) {
	r := NewRegistry("test")
	gone := func(eid common.EntityID) bool { return false }
	for eid := common.EntityID(1); eid <= 1000; eid++ {
		mustResolve(t, r, eid)
		r.Release(eid)
		r.Prune(gone)
	}
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 0, r.Retired())

	// live entities stay retired until a spawn admits them
	mustResolve(t, r, 2000)
	r.Release(2000)
	r.Prune(func(eid common.EntityID) bool { return eid == 2000 })
	assert.Equal(t, 1, r.Retired())
	_, err := r.Resolve(2000)
	assert.T(t, errors.Is(err, common.ErrEntityNotVisible))
}

func TestReleaseAll(t *testing.T) {
	r := NewRegistry("test")
	mustResolve(t, r, 1)
	mustResolve(t, r, 2)
	r.ReleaseAll()
	r.ReleaseAll()

	assert.T(t, r.IsClosing())
	assert.Equal(t, 0, r.Len())
	_, err := r.Resolve(3)
	assert.Equal(t, common.ErrConnectionGone, err)
	_, err = r.Admit(1)
	assert.Equal(t, common.ErrConnectionGone, err)
	r.Release(1)
}

func TestExhaustion(t *testing.T) {
	r := NewRegistry("test")
	for eid := common.EntityID(1); eid <= common.EntityID(common.MaxViewID); eid++ {
		mustResolve(t, r, eid)
	}
	_, err := r.Resolve(0x10000)
	assert.Equal(t, ErrViewsExhausted, err)

	r.Release(500)
	assert.Equal(t, common.ViewID(500), mustResolve(t, r, 0x10000))

	// the only free slot is handed back to the entity that held it
	r.Release(600)
	vid, err := r.Admit(600)
	assert.Equal(t, nil, err)
	assert.Equal(t, common.ViewID(600), vid)
}

func TestMappingStaysInjective(t *testing.T) {
	r := NewRegistry("test")
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(base common.EntityID) {
			defer wg.Done()
			for i := common.EntityID(0); i < 200; i++ {
				eid := base + i
				r.Resolve(eid)
				if i%3 == 0 {
					r.Release(eid)
				}
			}
		}(common.EntityID(g*1000 + 1))
	}
	wg.Wait()

	seen := map[common.ViewID]common.EntityID{}
	for eid, vid := range r.byEntity {
		other, dup := seen[vid]
		assert.Tf(t, !dup, "%s shared by %s and %s", vid, eid, other)
		seen[vid] = eid
		back, ok := r.EntityOf(vid)
		assert.T(t, ok)
		assert.Equal(t, eid, back)
	}
	assert.Equal(t, len(r.byEntity), len(r.byView))
}
