package proto

import (
	"github.com/mxosim/reality/engine/common"
	"github.com/mxosim/reality/engine/entity"
	"github.com/mxosim/reality/engine/netutil"
)

var despawnPrefix = []byte{0x03, 0x01, 0x00, 0x01, 0x01, 0x00}

// NewDespawn removes the object from clients. It retires the object on every connection it is rendered for.
func NewDespawn(eid common.EntityID) *Message {
	return &Message{kind: MK_DESPAWN, source: eid}
}

func (m *Message) renderDespawn() (*netutil.WireBuffer, error) {
	vid, err := m.retireView()
	if err != nil {
		return nil, err
	}
	buf := netutil.NewWireBuffer(len(despawnPrefix) + 4)
	buf.Append(despawnPrefix)
	buf.AppendUint16(uint16(vid))
	buf.AppendUint16(0) // no more attributes
	return buf, nil
}

const (
	spawnFirstNameOffset  = 0x11
	spawnLastNameOffset   = 0x32
	spawnHealthCOffset    = 0x54
	spawnInnerStrCOffset  = 0x5A
	spawnHandleOffset     = 0x5F
	spawnHealthMOffset    = 0x7F
	spawnProfessionOffset = 0x82
	spawnAppearanceOffset = 0x8C
	spawnInnerStrMOffset  = 0x9B
	spawnPositionOffset   = 0x9E
	spawnLevelOffset      = 0xB8
	spawnAlignmentOffset  = 0xBE
	spawnViewOffset       = 0xC5

	spawnNameSize = 32
)

var spawnTemplate = [202]byte{
	0x03, 0x01, 0x00, 0x0C, 0x0C, 0x00, 0x2F, 0xCD, 0xAB, 0x18, 0x8B, 0xEC, 0xFF, 0x05, 0x00, 0x00,
	0x00, 0x3A, 0x3A, 0x3A, 0x3A, 0x3A, 0x3A, 0x3A, 0x3A, 0x3A, 0x3A, 0x3A, 0x3A, 0x3A, 0x3A, 0x3A,
	0x3A, 0x3A, 0x3A, 0x3A, 0x3A, 0x3A, 0x3A, 0x3A, 0x3A, 0x3A, 0x3A, 0x3A, 0x3A, 0x3A, 0x3A, 0x3A,
	0x3A, 0x90, 0x3B, 0x3B, 0x3B, 0x3B, 0x3B, 0x3B, 0x3B, 0x3B, 0x3B, 0x3B, 0x3B, 0x3B, 0x3B, 0x3B,
	0x3B, 0x3B, 0x3B, 0x3B, 0x3B, 0x3B, 0x3B, 0x3B, 0x3B, 0x3B, 0x3B, 0x3B, 0x3B, 0x3B, 0x3B, 0x3B,
	0x3B, 0x3B, 0x80, 0x98, 0x5A, 0x5A, 0x04, 0x86, 0x8C, 0xFF, 0x6A, 0x6A, 0xC6, 0xC5, 0xFF, 0x3C,
	0x3C, 0x3C, 0x3C, 0x3C, 0x3C, 0x3C, 0x3C, 0x3C, 0x3C, 0x3C, 0x3C, 0x3C, 0x3C, 0x3C, 0x3C, 0x3C,
	0x3C, 0x3C, 0x3C, 0x3C, 0x3C, 0x3C, 0x3C, 0x3C, 0x3C, 0x3C, 0x3C, 0x3C, 0x3C, 0x3C, 0x3C, 0x5B,
	0x5B, 0xED, 0x7A, 0x7A, 0x7A, 0x7A, 0xC5, 0xFF, 0x75, 0xD4, 0x01, 0x00, 0x8A, 0x8A, 0x8A, 0x8A,
	0x8A, 0x8A, 0x8A, 0x8A, 0x8A, 0x8A, 0x8A, 0x8A, 0x8A, 0x00, 0x00, 0x6B, 0x6B, 0x9D, 0x4A, 0x4A,
	0x4A, 0x4A, 0x4A, 0x4A, 0x4A, 0x4A, 0x4B, 0x4B, 0x4B, 0x4B, 0x4B, 0x4B, 0x4B, 0x4B, 0x4C, 0x4C,
	0x4C, 0x4C, 0x4C, 0x4C, 0x4C, 0x4C, 0x8C, 0xFF, 0x7B, 0x22, 0x80, 0x88, 0x17, 0x1C, 0x7C, 0x00,
	0x10, 0x00, 0x00, 0xC5, 0xFF, 0x02, 0x00, 0x00, 0x00, 0x00,
}

// NewSpawn creates the player object on clients, making it visible again where it was despawned
func NewSpawn(world World, eid common.EntityID) *Message {
	return &Message{kind: MK_SPAWN, source: eid, world: world}
}

func (m *Message) renderSpawn() (*netutil.WireBuffer, error) {
	p, err := m.player()
	if err != nil {
		return nil, err
	}
	vid, err := m.admitView()
	if err != nil {
		return nil, err
	}

	buf := netutil.FromTemplate(spawnTemplate[:])
	buf.PutString(spawnFirstNameOffset, p.FirstName, spawnNameSize)
	buf.PutString(spawnLastNameOffset, p.LastName, spawnNameSize)
	buf.PutString(spawnHandleOffset, p.Handle, spawnNameSize)
	buf.PutBytes(spawnAppearanceOffset, p.Appearance[:])
	p.Pos.PutDoubles(buf, spawnPositionOffset)
	buf.PutUint16(spawnHealthCOffset, p.HealthC)
	buf.PutUint16(spawnHealthMOffset, p.HealthM)
	buf.PutUint16(spawnInnerStrCOffset, p.InnerStrC)
	buf.PutUint16(spawnInnerStrMOffset, p.InnerStrM)
	buf.PutUint32(spawnProfessionOffset, p.Profession)
	buf.PutUint8(spawnLevelOffset, p.Level)
	buf.PutUint8(spawnAlignmentOffset, p.Alignment)
	buf.PutUint16(spawnViewOffset, uint16(vid))
	return buf, nil
}

// NewAppearance refreshes the look of the player on clients
func NewAppearance(world World, eid common.EntityID) *Message {
	return &Message{kind: MK_APPEARANCE, source: eid, world: world}
}

func (m *Message) renderAppearance() (*netutil.WireBuffer, error) {
	p, err := m.player()
	if err != nil {
		return nil, err
	}
	vid, err := m.resolveView()
	if err != nil {
		return nil, err
	}

	buf := netutil.NewWireBuffer(8 + entity.APPEARANCE_SIZE)
	buf.AppendByte(STATE_PREFIX)
	buf.AppendUint16(uint16(vid))
	buf.Append([]byte{0x02, 0x80, 0x81})
	buf.Append(p.Appearance[:])
	buf.AppendUint16(0)
	return buf, nil
}

var animationStateTemplate = [9]byte{0x03, 0x02, 0x00, 0x01, 0x01, 0xAA, 0xBB, 0x00, 0x00}

// NewAnimationState sends the current animation and mood of the player
func NewAnimationState(world World, eid common.EntityID) *Message {
	return &Message{kind: MK_ANIMATION_STATE, source: eid, world: world}
}

func (m *Message) renderAnimationState() (*netutil.WireBuffer, error) {
	p, err := m.player()
	if err != nil {
		return nil, err
	}
	vid, err := m.resolveView()
	if err != nil {
		return nil, err
	}

	buf := netutil.FromTemplate(animationStateTemplate[:])
	buf.PutUint16(1, uint16(vid))
	buf.PutUint8(5, p.Animation)
	buf.PutUint8(6, p.Mood)
	return buf, nil
}

// NewPositionState sends the current position of the player
func NewPositionState(world World, eid common.EntityID) *Message {
	return &Message{kind: MK_POSITION_STATE, source: eid, world: world}
}

func (m *Message) renderPositionState() (*netutil.WireBuffer, error) {
	p, err := m.player()
	if err != nil {
		return nil, err
	}
	vid, err := m.resolveView()
	if err != nil {
		return nil, err
	}

	buf := netutil.NewWireBuffer(17)
	buf.AppendByte(STATE_PREFIX)
	buf.AppendUint16(uint16(vid))
	buf.AppendByte(0x01)
	buf.AppendByte(0x08) // position update
	p.Pos.AppendFloats(buf)
	return buf, nil
}

// NewStateRelay forwards the raw state of a player, starting at the byte after the echoed view id
func NewStateRelay(world World, eid common.EntityID, tail []byte) *Message {
	raw := make([]byte, len(tail))
	copy(raw, tail)
	return &Message{kind: MK_STATE_RELAY, source: eid, world: world, raw: raw}
}

func (m *Message) renderStateRelay() (*netutil.WireBuffer, error) {
	if _, err := m.world.ResolveEntity(m.source); err != nil {
		return nil, m.noLongerValid(err)
	}
	vid, err := m.resolveView()
	if err != nil {
		return nil, err
	}

	buf := netutil.NewWireBuffer(3 + len(m.raw))
	buf.AppendByte(STATE_PREFIX)
	buf.AppendUint16(uint16(vid))
	buf.Append(m.raw)
	return buf, nil
}

const (
	emoteCountOffset     = 5
	emoteAnimationOffset = 9
	emotePositionOffset  = 0x0D
)

var emoteTemplate = [31]byte{
	0x03, 0x02, 0x00, 0x01, 0x28, 0xAA, 0x40, 0x00, 0x25, 0x01, 0x00, 0x00, 0x10, 0xBB, 0xBB, 0xBB,
	0xBB, 0xCC, 0xCC, 0xCC, 0xCC, 0xDD, 0xDD, 0xDD, 0xDD, 0x2A, 0x9F, 0x1E, 0x20, 0x00, 0x00,
}

// NewEmote plays the animation of the client emote opcode on the player. count is the emote counter of the player.
func NewEmote(world World, eid common.EntityID, opcode uint32, count uint8) *Message {
	return &Message{kind: MK_EMOTE, source: eid, world: world, emoteOpcode: opcode, emoteCount: count}
}

func (m *Message) renderEmote() (*netutil.WireBuffer, error) {
	animation, ok := LookupEmote(m.emoteOpcode)
	if !ok {
		return nil, m.noLongerValid(ErrUnknownEmote)
	}
	p, err := m.player()
	if err != nil {
		return nil, err
	}
	vid, err := m.resolveView()
	if err != nil {
		return nil, err
	}

	buf := netutil.FromTemplate(emoteTemplate[:])
	buf.PutUint16(1, uint16(vid))
	buf.PutUint8(emoteCountOffset, m.emoteCount)
	buf.PutUint8(emoteAnimationOffset, animation)
	p.Pos.PutFloats(buf, emotePositionOffset)
	return buf, nil
}

const (
	jackoutPositionOffset = 0x0B
	jackoutFlagOffset     = 0x22
)

var jackoutTemplate = [37]byte{
	0x03, 0x02, 0x00, 0x03, 0x28, 0x03, 0xC0, 0x00, 0x74, 0x00, 0x10, 0xA1, 0x4B, 0x36, 0x48, 0x00,
	0x40, 0x62, 0xC4, 0x8A, 0x58, 0x43, 0x47, 0xBE, 0x65, 0x82, 0x21, 0x80, 0x80, 0x80, 0x80, 0x80,
	0x80, 0x10, 0x01, 0x00, 0x00,
}

// NewJackout plays the jack out effect at the player, or the jack in effect if jackout is false
func NewJackout(world World, eid common.EntityID, jackout bool) *Message {
	return &Message{kind: MK_JACKOUT, source: eid, world: world, jackout: jackout}
}

func (m *Message) renderJackout() (*netutil.WireBuffer, error) {
	p, err := m.player()
	if err != nil {
		return nil, err
	}
	vid, err := m.resolveView()
	if err != nil {
		return nil, err
	}

	buf := netutil.FromTemplate(jackoutTemplate[:])
	buf.PutUint16(1, uint16(vid))
	p.Pos.PutFloats(buf, jackoutPositionOffset)
	if m.jackout {
		buf.PutUint8(jackoutFlagOffset, 1)
	} else {
		buf.PutUint8(jackoutFlagOffset, 0)
	}
	return buf, nil
}
