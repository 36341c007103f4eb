package common

import "sort"

// EntityIDSet is a set of entity ids
type EntityIDSet map[EntityID]struct{}

func (es EntityIDSet) Add(id EntityID) {
	es[id] = struct{}{}
}

func (es EntityIDSet) Del(id EntityID) {
	delete(es, id)
}

func (es EntityIDSet) Contains(id EntityID) bool {
	_, ok := es[id]
	return ok
}

// ToList returns the ids in ascending order, which is the order objects are sent to clients
func (es EntityIDSet) ToList() []EntityID {
	list := make([]EntityID, 0, len(es))
	for eid := range es {
		list = append(list, eid)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i] < list[j]
	})
	return list
}

// ForEach calls cb for the ids in no particular order until cb returns false
func (es EntityIDSet) ForEach(cb func(eid EntityID) bool) {
	for eid := range es {
		if !cb(eid) {
			break
		}
	}
}
