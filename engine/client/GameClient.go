package client

import (
	"fmt"
	"sync"

	"github.com/mxosim/reality/engine/consts"
	"github.com/mxosim/reality/engine/gwlog"
	"github.com/mxosim/reality/engine/proto"
	"github.com/mxosim/reality/engine/views"
	"github.com/pkg/errors"
	"github.com/xiaonanln/go-xnsyncutil/xnsyncutil"
)

// Channel is the stream a rendered packet is sent on
type Channel uint8

const (
	// CH_COMMAND is the reliable ordered command channel
	CH_COMMAND Channel = iota
	// CH_STATE is the state channel, used for object state updates
	CH_STATE
)

func (ch Channel) String() string {
	switch ch {
	case CH_COMMAND:
		return "command"
	case CH_STATE:
		return "state"
	}
	return fmt.Sprintf("Channel(%d)", uint8(ch))
}

// Transport sends rendered packets to the remote client, framing and encryption are up to it
type Transport interface {
	Send(ch Channel, data []byte) error
	Close() error
}

// GameClient is the connection of a game client
//
// It owns the view registry of the connection and the queues of messages waiting to be rendered.
type GameClient struct {
	name      string
	transport Transport
	registry  *views.Registry
	closed    xnsyncutil.AtomicBool

	queueLock sync.Mutex
	commands  []*proto.Message
	states    []*proto.Message
}

// NewGameClient creates the client of a transport
func NewGameClient(name string, transport Transport) *GameClient {
	return &GameClient{
		name:      name,
		transport: transport,
		registry:  views.NewRegistry(name),
		commands:  make([]*proto.Message, 0, consts.CLIENT_COMMAND_QUEUE_INIT_SIZE),
		states:    make([]*proto.Message, 0, consts.CLIENT_STATE_QUEUE_INIT_SIZE),
	}
}

func (gc *GameClient) String() string {
	if gc == nil {
		return "GameClient<nil>"
	}
	return fmt.Sprintf("GameClient<%s>", gc.name)
}

// Views returns the view registry of the connection
func (gc *GameClient) Views() *views.Registry {
	return gc.registry
}

// QueueCommand queues a message on the command channel. Messages queued after Close are dropped.
func (gc *GameClient) QueueCommand(msg *proto.Message) bool {
	return gc.queue(msg, false)
}

// QueueState queues a message on the state channel
func (gc *GameClient) QueueState(msg *proto.Message) bool {
	return gc.queue(msg, true)
}

func (gc *GameClient) queue(msg *proto.Message, state bool) bool {
	if gc.closed.Load() {
		return false
	}
	gc.queueLock.Lock()
	if state {
		gc.states = append(gc.states, msg)
	} else {
		gc.commands = append(gc.commands, msg)
	}
	gc.queueLock.Unlock()
	return true
}

// Pending returns the number of queued messages
func (gc *GameClient) Pending() int {
	gc.queueLock.Lock()
	n := len(gc.commands) + len(gc.states)
	gc.queueLock.Unlock()
	return n
}

// Flush renders the queued messages and hands them to the transport, commands first
//
// Messages that are no longer valid for this client are dropped. The first transport error stops the flush.
func (gc *GameClient) Flush(reason string) (sent int, err error) {
	gc.queueLock.Lock()
	commands, states := gc.commands, gc.states
	gc.commands = make([]*proto.Message, 0, consts.CLIENT_COMMAND_QUEUE_INIT_SIZE)
	gc.states = make([]*proto.Message, 0, consts.CLIENT_STATE_QUEUE_INIT_SIZE)
	gc.queueLock.Unlock()

	if gc.closed.Load() {
		return 0, nil
	}

	if consts.DEBUG_PACKETS {
		gwlog.Debugf("%s: flush %d commands %d states (%s)", gc, len(commands), len(states), reason)
	}

	n, err := gc.send(CH_COMMAND, commands)
	sent += n
	if err != nil {
		return sent, err
	}
	n, err = gc.send(CH_STATE, states)
	sent += n
	return sent, err
}

func (gc *GameClient) send(ch Channel, msgs []*proto.Message) (sent int, err error) {
	for _, msg := range msgs {
		data, err := msg.RenderFor(gc)
		if err != nil {
			if proto.IsNoLongerValid(err) {
				if consts.DEBUG_PACKETS {
					gwlog.Debugf("%s: dropped: %v", gc, err)
				}
			} else {
				gwlog.Errorf("%s: render %s failed: %v", gc, msg, err)
			}
			continue
		}
		if err := gc.transport.Send(ch, data); err != nil {
			return sent, errors.Wrapf(err, "%s: send %s on %s", gc, msg, ch)
		}
		sent += 1
	}
	return sent, nil
}

// Close marks the client closing, drops the queued messages and closes the transport
func (gc *GameClient) Close() error {
	if gc.closed.Load() {
		return nil
	}
	gc.closed.Store(true)
	gc.registry.ReleaseAll()

	gc.queueLock.Lock()
	gc.commands = nil
	gc.states = nil
	gc.queueLock.Unlock()
	return gc.transport.Close()
}

// IsClosed returns if the client is closed
func (gc *GameClient) IsClosed() bool {
	return gc.closed.Load()
}
