package proto

import (
	"github.com/mxosim/reality/engine/common"
	"github.com/mxosim/reality/engine/consts"
	"github.com/mxosim/reality/engine/entity"
	"github.com/mxosim/reality/engine/netutil"
)

// NewLoadWorld makes the client load the world of the location with the sky. The sim time is taken at render time.
func NewLoadWorld(world World, loc WorldLocation, sky string) *Message {
	return &Message{kind: MK_LOAD_WORLD, world: world, location: loc, sky: sky}
}

func (m *Message) renderLoadWorld() (*netutil.WireBuffer, error) {
	worldFile := m.location.WorldFile()
	buf := netutil.NewWireBuffer(16 + len(worldFile) + len(m.sky))
	buf.Append([]byte{0x06, 0x0E, 0x00})
	buf.AppendUint32(uint32(m.location))
	buf.AppendFloat32(m.world.SimTime())
	buf.AppendByte(0x01)
	skyOffsetPos := buf.Wpos()
	buf.AppendUint16(0)
	buf.WriteVarString(worldFile)
	buf.PutUint16(skyOffsetPos, uint16(buf.Wpos()))
	buf.WriteVarString(m.sky)
	return buf, nil
}

// NewWhisper is a private message from sender. prefix is the chat prefix of the server.
func NewWhisper(prefix string, sender string, text string) *Message {
	return &Message{kind: MK_WHISPER, sender: prefix + "+" + sender, text: clampChat(text)}
}

func (m *Message) renderWhisper() (*netutil.WireBuffer, error) {
	return chatPacket(0x2E11, m.sender, m.text), nil
}

// NewSystemChat is a chat line from the server
func NewSystemChat(text string) *Message {
	return &Message{kind: MK_SYSTEM_CHAT, text: clampChat(text)}
}

func clampChat(text string) string {
	if len(text) > consts.MAX_CHAT_LENGTH {
		return text[:consts.MAX_CHAT_LENGTH]
	}
	return text
}

func (m *Message) renderSystemChat() (*netutil.WireBuffer, error) {
	return chatPacket(0x2E07, "", m.text), nil
}

func chatPacket(opcode uint16, sender string, text string) *netutil.WireBuffer {
	buf := netutil.NewWireBuffer(48 + len(sender) + len(text))
	buf.AppendByte(byte(opcode >> 8))
	buf.AppendByte(byte(opcode))
	buf.AppendByte(0)
	buf.AppendUint32(0)
	senderOffsetPos := buf.Wpos()
	buf.AppendUint32(0)
	textOffsetPos := buf.Wpos()
	buf.AppendUint32(0)
	buf.AppendZeros(0x15)

	buf.PutUint32(senderOffsetPos, uint32(buf.Wpos()))
	buf.WriteVarString(sender)
	buf.PutUint32(textOffsetPos, uint32(buf.Wpos()))
	buf.WriteVarString(text)
	return buf
}

// NewPlayerDetails describes the player to the client that selected it
func NewPlayerDetails(world World, eid common.EntityID) *Message {
	return &Message{kind: MK_PLAYER_DETAILS, source: eid, world: world}
}

const (
	playerDetailsTrait    = 300
	playerDetailsCQPoints = 9001
)

func (m *Message) renderPlayerDetails() (*netutil.WireBuffer, error) {
	p, err := m.player()
	if err != nil {
		return nil, err
	}

	buf := netutil.NewWireBuffer(64 + len(p.Handle) + len(p.FirstName) + len(p.LastName))
	buf.Append([]byte{0x81, 0x93})
	buf.AppendUint32(p.WorldCharID)
	handleOffsetPos := buf.Wpos()
	buf.AppendUint16(0)
	buf.AppendUint32(0)
	firstOffsetPos := buf.Wpos()
	buf.AppendUint16(0)
	lastOffsetPos := buf.Wpos()
	buf.AppendUint16(0)
	buf.AppendUint32(playerDetailsTrait)
	buf.AppendUint8(p.Alignment)
	crewOffsetPos := buf.Wpos()
	buf.AppendUint16(0)
	factionOffsetPos := buf.Wpos()
	buf.AppendUint16(0)
	buf.AppendUint32(playerDetailsCQPoints)

	for _, field := range []struct {
		offsetPos int
		value     string
	}{
		{handleOffsetPos, clampName(p.Handle)},
		{firstOffsetPos, clampName(p.FirstName)},
		{lastOffsetPos, clampName(p.LastName)},
		{crewOffsetPos, ""},
		{factionOffsetPos, ""},
	} {
		buf.PutUint16(field.offsetPos, uint16(buf.Wpos()))
		buf.WriteVarString(field.value)
	}
	return buf, nil
}

// names are cut to the size of their spawn fields, which also keeps the u16 offsets in range
func clampName(name string) string {
	if len(name) > spawnNameSize {
		return name[:spawnNameSize]
	}
	return name
}

var whereAmITrailer = []byte{0x07, 0x01, 0x00}

// NewWhereAmI tells the client the position the server has for it
func NewWhereAmI(pos entity.Location) *Message {
	return &Message{kind: MK_WHERE_AM_I, pos: pos}
}

func (m *Message) renderWhereAmI() (*netutil.WireBuffer, error) {
	buf := netutil.NewWireBuffer(17)
	buf.Append([]byte{0x81, 0x54})
	m.pos.AppendFloats(buf)
	buf.Append(whereAmITrailer)
	return buf, nil
}

// NewHex sends the bytes of the hex string as they are
func NewHex(s string) (*Message, error) {
	raw, err := netutil.ParseHex(s)
	if err != nil {
		return nil, err
	}
	return &Message{kind: MK_HEX, raw: raw}, nil
}
