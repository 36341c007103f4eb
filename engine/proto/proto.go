package proto

import (
	"fmt"
)

// Kind is the variant of an outbound message
type Kind uint8

const (
	// MK_INVALID is the invalid message kind
	MK_INVALID Kind = iota
	// MK_DESPAWN removes an object from the client
	MK_DESPAWN
	// MK_SPAWN creates a player object on the client
	MK_SPAWN
	// MK_APPEARANCE refreshes the appearance of a player object
	MK_APPEARANCE
	// MK_ANIMATION_STATE sets the current animation and mood of a player object
	MK_ANIMATION_STATE
	// MK_POSITION_STATE sets the position of an object
	MK_POSITION_STATE
	// MK_EMOTE plays an emote on a player object
	MK_EMOTE
	// MK_JACKOUT plays the jack out (or jack in) effect
	MK_JACKOUT
	// MK_DOOR_OPEN plays the door opening animation
	MK_DOOR_OPEN
	// MK_DOOR_CLOSE closes a door previously opened on the client
	MK_DOOR_CLOSE
	// MK_STATE_RELAY forwards a state update of another client
	MK_STATE_RELAY
	// MK_LOAD_WORLD makes the client load a world
	MK_LOAD_WORLD
	// MK_WHISPER is a private chat message
	MK_WHISPER
	// MK_SYSTEM_CHAT is a chat message from the server
	MK_SYSTEM_CHAT
	// MK_PLAYER_DETAILS answers a player details request
	MK_PLAYER_DETAILS
	// MK_WHERE_AM_I answers a where am i request
	MK_WHERE_AM_I
	// MK_HEX is a pre-rendered packet
	MK_HEX
)

var kindNames = [...]string{
	MK_INVALID:         "Invalid",
	MK_DESPAWN:         "Despawn",
	MK_SPAWN:           "Spawn",
	MK_APPEARANCE:      "Appearance",
	MK_ANIMATION_STATE: "AnimationState",
	MK_POSITION_STATE:  "PositionState",
	MK_EMOTE:           "Emote",
	MK_JACKOUT:         "Jackout",
	MK_DOOR_OPEN:       "DoorOpen",
	MK_DOOR_CLOSE:      "DoorClose",
	MK_STATE_RELAY:     "StateRelay",
	MK_LOAD_WORLD:      "LoadWorld",
	MK_WHISPER:         "Whisper",
	MK_SYSTEM_CHAT:     "SystemChat",
	MK_PLAYER_DETAILS:  "PlayerDetails",
	MK_WHERE_AM_I:      "WhereAmI",
	MK_HEX:             "Hex",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Inbound opcodes handled with a single byte
const (
	// RPC_PERFORM_EMOTE is followed by the u32 emote opcode
	RPC_PERFORM_EMOTE = 0x30
	// RPC_STOP_ANIMATION clears the current animation
	RPC_STOP_ANIMATION = 0x33
	// RPC_START_ANIMATION is followed by the animation byte
	RPC_START_ANIMATION = 0x34
	// RPC_CHANGE_MOOD is followed by the mood byte
	RPC_CHANGE_MOOD = 0x35
)

// Inbound opcodes handled with two bytes, first byte in the high half
const (
	RPC_CHAT                   = 0x2810
	RPC_WHISPER                = 0x2907
	RPC_JUMP                   = 0x80C2
	RPC_STATIC_OBJ_INTERACTION = 0x80C8
	RPC_REGION_LOADED          = 0x80C9
	RPC_READY_FOR_WORLD_CHANGE = 0x8108
	RPC_OBJECT_SELECTED        = 0x8151
	RPC_WHERE_AM_I             = 0x8154
	RPC_HARDLINE_TELEPORT      = 0x818E
	RPC_GET_PLAYER_DETAILS     = 0x8192
	RPC_GET_BACKGROUND         = 0x8194
	RPC_SET_BACKGROUND         = 0x8196

	// RPC_STATE_FIRST and RPC_STATE_LAST bound the state update family: 0x03 followed by the low byte of a view id
	RPC_STATE_FIRST = 0x0300
	RPC_STATE_LAST  = 0x03FF
)

// STATE_PREFIX starts every object state packet
const STATE_PREFIX = 0x03
