package proto

import (
	"fmt"

	"github.com/mxosim/reality/engine/common"
	"github.com/mxosim/reality/engine/consts"
	"github.com/mxosim/reality/engine/entity"
	"github.com/mxosim/reality/engine/gwlog"
	"github.com/mxosim/reality/engine/netutil"
	"github.com/mxosim/reality/engine/views"
	"github.com/pkg/errors"
)

var (
	// ErrNotBound is returned when rendering a message that has no receiver
	ErrNotBound = errors.New("message not bound to a receiver")
	// ErrUnknownEmote is the reason an emote without animation is dropped
	ErrUnknownEmote = errors.New("unknown emote")
	// ErrDoorClosed is the reason a door animation is dropped after the door closed
	ErrDoorClosed = errors.New("door closed")
)

// World is the part of the world a message needs at render time
type World interface {
	ResolveEntity(eid common.EntityID) (entity.Object, error)
	SimTime() float32
}

// Receiver is the connection a message is rendered for
type Receiver interface {
	Views() *views.Registry
	String() string
}

// NoLongerValidError means the message can not be delivered to the bound receiver
//
// It is a normal outcome: the caller drops the message for this receiver and goes on with the others.
type NoLongerValidError struct {
	Kind     Kind
	Source   common.EntityID
	Receiver string
	Reason   error
}

func (e *NoLongerValidError) Error() string {
	return fmt.Sprintf("%s of %s for %s no longer valid: %v", e.Kind, e.Source, e.Receiver, e.Reason)
}

// Cause returns the reason for pkg/errors
func (e *NoLongerValidError) Cause() error {
	return e.Reason
}

func (e *NoLongerValidError) Unwrap() error {
	return e.Reason
}

// IsNoLongerValid checks if err says the message should be dropped for its receiver
func IsNoLongerValid(err error) bool {
	var nlv *NoLongerValidError
	return errors.As(err, &nlv)
}

// Message is an outbound packet naming a source object, rendered separately for each receiver
//
// The view id of the source is resolved at render time in the registry of the bound receiver,
// so the same message can be queued for many connections.
type Message struct {
	kind     Kind
	source   common.EntityID
	world    World
	receiver Receiver

	emoteOpcode uint32
	emoteCount  uint8
	jackout     bool
	pos         entity.Location
	location    WorldLocation
	sky         string
	sender      string
	text        string
	raw         []byte
}

func (m *Message) String() string {
	if m.source.IsNil() {
		return m.kind.String()
	}
	return fmt.Sprintf("%s<%s>", m.kind, m.source)
}

// Kind returns the variant of the message
func (m *Message) Kind() Kind {
	return m.kind
}

// Source returns the object the message is about, nil for messages addressed to the connection itself
func (m *Message) Source() common.EntityID {
	return m.source
}

// Bind sets the receiver the next Render is for
func (m *Message) Bind(receiver Receiver) *Message {
	m.receiver = receiver
	return m
}

// Render produces the bytes for the bound receiver, or a *NoLongerValidError
func (m *Message) Render() ([]byte, error) {
	if m.receiver == nil {
		return nil, ErrNotBound
	}

	var (
		buf *netutil.WireBuffer
		err error
	)
	switch m.kind {
	case MK_DESPAWN:
		buf, err = m.renderDespawn()
	case MK_SPAWN:
		buf, err = m.renderSpawn()
	case MK_APPEARANCE:
		buf, err = m.renderAppearance()
	case MK_ANIMATION_STATE:
		buf, err = m.renderAnimationState()
	case MK_POSITION_STATE:
		buf, err = m.renderPositionState()
	case MK_EMOTE:
		buf, err = m.renderEmote()
	case MK_JACKOUT:
		buf, err = m.renderJackout()
	case MK_DOOR_OPEN:
		buf, err = m.renderDoorOpen()
	case MK_DOOR_CLOSE:
		buf, err = m.renderDoorClose()
	case MK_STATE_RELAY:
		buf, err = m.renderStateRelay()
	case MK_LOAD_WORLD:
		buf, err = m.renderLoadWorld()
	case MK_WHISPER:
		buf, err = m.renderWhisper()
	case MK_SYSTEM_CHAT:
		buf, err = m.renderSystemChat()
	case MK_PLAYER_DETAILS:
		buf, err = m.renderPlayerDetails()
	case MK_WHERE_AM_I:
		buf, err = m.renderWhereAmI()
	case MK_HEX:
		buf = netutil.WrapWireBuffer(m.raw)
	default:
		gwlog.Panicf("%s: unknown message kind %d", m.receiver, m.kind)
	}

	if err != nil {
		return nil, err
	}
	if consts.DEBUG_PACKETS {
		gwlog.Debugf("%s: rendered %s: %s", m.receiver, m, buf)
	}
	return buf.Bytes(), nil
}

// RenderFor renders for the receiver without touching the binding of m,
// so connections can render a shared message concurrently
func (m *Message) RenderFor(receiver Receiver) ([]byte, error) {
	bound := *m
	return bound.Bind(receiver).Render()
}

func (m *Message) noLongerValid(reason error) error {
	return &NoLongerValidError{
		Kind:     m.kind,
		Source:   m.source,
		Receiver: m.receiver.String(),
		Reason:   reason,
	}
}

// player takes a snapshot of the source player
func (m *Message) player() (entity.PlayerState, error) {
	obj, err := m.world.ResolveEntity(m.source)
	if err != nil {
		return entity.PlayerState{}, m.noLongerValid(err)
	}
	player, ok := obj.(*entity.Player)
	if !ok {
		return entity.PlayerState{}, m.noLongerValid(errors.Wrapf(common.ErrEntityNotVisible, "%s is not a player", obj))
	}
	return player.Snapshot(), nil
}

// resolveView resolves the view id of the source on the receiver, allocating on first reference
func (m *Message) resolveView() (common.ViewID, error) {
	vid, err := m.receiver.Views().Resolve(m.source)
	if err != nil {
		return common.NilViewID, m.noLongerValid(err)
	}
	return vid, nil
}

// admitView is resolveView for messages that make the source visible again
func (m *Message) admitView() (common.ViewID, error) {
	vid, err := m.receiver.Views().Admit(m.source)
	if err != nil {
		return common.NilViewID, m.noLongerValid(err)
	}
	return vid, nil
}

// retireView releases the view id of the source, the message must only use an existing mapping
func (m *Message) retireView() (common.ViewID, error) {
	registry := m.receiver.Views()
	vid, ok := registry.Lookup(m.source)
	registry.Release(m.source)
	if !ok {
		if registry.IsClosing() {
			return common.NilViewID, m.noLongerValid(common.ErrConnectionGone)
		}
		return common.NilViewID, m.noLongerValid(errors.Wrapf(common.ErrEntityNotVisible, "%s has no view", m.source))
	}
	return vid, nil
}
