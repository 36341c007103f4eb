package consts

import "time"

// Tunable Options
const (
	// WORLD_SERVICE_TICK_INTERVAL is the default tick interval of timers and posted callbacks in the world service
	WORLD_SERVICE_TICK_INTERVAL = time.Millisecond * 10
	// WORLD_SERVICE_COMMAND_QUEUE_SIZE is the max number of pending inbound commands of the world service
	WORLD_SERVICE_COMMAND_QUEUE_SIZE = 10000

	// DEFAULT_SAVE_INTERVAL is the minimal interval between two position saves of a player
	DEFAULT_SAVE_INTERVAL = time.Second * 60

	// For Connections
	// CLIENT_COMMAND_QUEUE_INIT_SIZE is the initial capacity of a client's reliable command queue
	CLIENT_COMMAND_QUEUE_INIT_SIZE = 16
	// CLIENT_STATE_QUEUE_INIT_SIZE is the initial capacity of a client's state queue
	CLIENT_STATE_QUEUE_INIT_SIZE = 64

	// For Operation Monitor
	// OPMON_DUMP_INTERVAL is the interval to print opmon infos to output
	OPMON_DUMP_INTERVAL = 0
	// RPC_WARN_THRESHOLD is the default duration above which a dispatched opcode is reported
	RPC_WARN_THRESHOLD = time.Millisecond * 10

	// For Chat
	// MAX_CHAT_LENGTH is the longest chat text sent to clients, longer text is cut
	MAX_CHAT_LENGTH = 1024

	// For Districts
	// MAX_DISTRICT is the last valid district, larger values are treated as district 0
	MAX_DISTRICT = 17
	// DOOR_ANCHOR_DISTANCE is the distance a door animation is placed ahead of the door
	DOOR_ANCHOR_DISTANCE = 60.0
	// DOOR_ANCHOR_HEIGHT is the height added to a door animation anchor
	DOOR_ANCHOR_HEIGHT = 50.0
	// DOOR_OPEN_DURATION is how long a door stays open after a player opened it
	DOOR_OPEN_DURATION = time.Second * 10
)

// Debug Options
const (
	// DEBUG_PACKETS prints packet send/recv debug logs
	DEBUG_PACKETS = false
	// DEBUG_VIEWS prints view id allocation debug logs
	DEBUG_VIEWS = false
	// DEBUG_SAVE_LOAD prints save & load debug logs
	DEBUG_SAVE_LOAD = false
	// DEBUG_STATE prints state update debug logs
	DEBUG_STATE = false
)

//  System level configurations
const (
	// DEBUG_MODE = true turns on debug mode
	DEBUG_MODE = false
)
