package proto

import (
	"github.com/mxosim/reality/engine/common"
	"github.com/mxosim/reality/engine/entity"
)

// StatePackets returns the messages that bring a client up to date with the object: its spawn,
// followed by its animation state when it has one. Objects that are not players have no state packets.
func StatePackets(world World, eid common.EntityID) []*Message {
	obj, err := world.ResolveEntity(eid)
	if err != nil {
		return nil
	}
	player, ok := obj.(*entity.Player)
	if !ok {
		return nil
	}

	msgs := []*Message{NewSpawn(world, eid)}
	if s := player.Snapshot(); s.Animation != 0 || s.Mood != 0 {
		msgs = append(msgs, NewAnimationState(world, eid))
	}
	return msgs
}

// OpenDoorMessages returns a door opening message for every door currently open in the world
func OpenDoorMessages(world *entity.World) []*Message {
	doors := world.OpenDoors()
	msgs := make([]*Message, 0, len(doors))
	for _, door := range doors {
		msgs = append(msgs, NewDoorOpen(world, door.ID()))
	}
	return msgs
}
