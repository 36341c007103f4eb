package proto

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/bmizerany/assert"
	"github.com/mxosim/reality/engine/common"
	"github.com/mxosim/reality/engine/consts"
	"github.com/mxosim/reality/engine/entity"
	"github.com/mxosim/reality/engine/netutil"
	"github.com/mxosim/reality/engine/views"
	"github.com/pkg/errors"
)

type testReceiver struct {
	name     string
	registry *views.Registry
}

func newTestReceiver(name string) *testReceiver {
	return &testReceiver{name: name, registry: views.NewRegistry(name)}
}

func (r *testReceiver) Views() *views.Registry {
	return r.registry
}

func (r *testReceiver) String() string {
	return r.name
}

func neoCharacter() entity.Character {
	return entity.Character{
		WorldCharID: 0xCAFE,
		Handle:      "Neo",
		FirstName:   "Thomas",
		LastName:    "Anderson",
		Pos:         entity.Location{X: 1000.5, Y: -20.25, Z: 3000.75},
		HealthC:     500,
		HealthM:     600,
		InnerStrC:   100,
		InnerStrM:   200,
		Profession:  0x11223344,
		Level:       50,
		Alignment:   2,
	}
}

func newTestWorld(eid common.EntityID) (*entity.World, *entity.Player) {
	world := entity.NewWorld()
	player := entity.NewPlayer(eid, neoCharacter(), time.Now())
	world.Add(player)
	return world, player
}

func mustRender(t *testing.T, msg *Message, receiver Receiver) []byte {
	out, err := msg.RenderFor(receiver)
	if err != nil {
		t.Fatalf("render %s for %s: %v", msg, receiver, err)
	}
	return out
}

func assertBytes(t *testing.T, expected string, actual []byte) {
	want := netutil.MustParseHex(expected)
	if !bytes.Equal(want, actual) {
		t.Fatalf("bytes mismatch\nwant %s\n got %s", netutil.HexString(want), netutil.HexString(actual))
	}
}

func assertNoLongerValid(t *testing.T, err error, reason error) {
	assert.Tf(t, IsNoLongerValid(err), "expected no longer valid, got %v", err)
	assert.Tf(t, errors.Is(err, reason), "expected reason %v, got %v", reason, err)
}

const spawnGolden = `03 01 00 0C 0C 00 2F CD AB 18 8B EC FF 05 00 00
	00 54 68 6F 6D 61 73 00 00 00 00 00 00 00 00 00
	00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00
	00 90 41 6E 64 65 72 73 6F 6E 00 00 00 00 00 00
	00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00
	00 00 80 98 F4 01 04 86 8C FF 64 00 C6 C5 FF 4E
	65 6F 00 00 00 00 00 00 00 00 00 00 00 00 00 00
	00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 58
	02 ED 44 33 22 11 C5 FF 75 D4 01 00 00 0C 71 48
	18 0C E2 00 23 00 B0 00 40 00 00 C8 00 9D 00 00
	00 00 00 44 8F 40 00 00 00 00 00 40 34 C0 00 00
	00 00 80 71 A7 40 8C FF 32 22 80 88 17 1C 02 00
	10 00 00 C5 FF 01 00 00 00 00`

func TestSpawn(t *testing.T) {
	world, _ := newTestWorld(42)
	c1 := newTestReceiver("C1")

	out := mustRender(t, NewSpawn(world, 42), c1)
	assert.Equal(t, 202, len(out))
	assertBytes(t, spawnGolden, out)
}

func TestSpawnTruncatesLongNames(t *testing.T) {
	world := entity.NewWorld()
	char := neoCharacter()
	char.Handle = "ThisHandleIsWayTooLongForTheSpawnPacket"
	world.Add(entity.NewPlayer(1, char, time.Now()))

	out := mustRender(t, NewSpawn(world, 1), newTestReceiver("C1"))
	assert.Equal(t, 202, len(out))
	assert.Equal(t, char.Handle[:32], string(out[0x5F:0x5F+32]))
	assert.Equal(t, byte(0xED), out[0x81])
}

func TestDespawn(t *testing.T) {
	world, _ := newTestWorld(42)
	c1 := newTestReceiver("C1")
	mustRender(t, NewSpawn(world, 42), c1)

	assertBytes(t, "03 01 00 01 01 00 01 00 00 00", mustRender(t, NewDespawn(42), c1))
	_, ok := c1.Views().Lookup(42)
	assert.T(t, !ok)

	// no mapping left, nothing is sent twice
	_, err := NewDespawn(42).RenderFor(c1)
	assertNoLongerValid(t, err, common.ErrEntityNotVisible)

	// never seen by the receiver
	_, err = NewDespawn(7).RenderFor(newTestReceiver("C2"))
	assertNoLongerValid(t, err, common.ErrEntityNotVisible)
}

func TestSlotReuseAfterDespawn(t *testing.T) {
	world, _ := newTestWorld(42)
	c1 := newTestReceiver("C1")

	vid, err := c1.Views().Resolve(42)
	assert.Equal(t, nil, err)
	assert.Equal(t, common.ViewID(1), vid)
	out := mustRender(t, NewSpawn(world, 42), c1)
	assert.Equal(t, []byte{0x01, 0x00}, out[0xC5:0xC7])

	stale := NewPositionState(world, 42)
	staleSpawn := NewSpawn(world, 42)

	mustRender(t, NewDespawn(42), c1)
	world.Remove(42)
	world.Add(entity.NewPlayer(99, entity.Character{Handle: "Smith"}, time.Now()))

	out = mustRender(t, NewSpawn(world, 99), c1)
	assert.Equal(t, []byte{0x01, 0x00}, out[0xC5:0xC7])

	_, err = stale.RenderFor(c1)
	assertNoLongerValid(t, err, common.ErrEntityNotVisible)
	_, err = staleSpawn.RenderFor(c1)
	assertNoLongerValid(t, err, common.ErrEntityNotVisible)
	eid, _ := c1.Views().EntityOf(1)
	assert.Equal(t, common.EntityID(99), eid)
}

func TestRetiredEntityIsNotResolvedByUpdates(t *testing.T) {
	world, _ := newTestWorld(42)
	c1 := newTestReceiver("C1")
	mustRender(t, NewSpawn(world, 42), c1)
	mustRender(t, NewDespawn(42), c1)

	// the entity is still in the world but was despawned for this receiver
	_, err := NewAnimationState(world, 42).RenderFor(c1)
	assertNoLongerValid(t, err, common.ErrEntityNotVisible)

	// a new spawn makes it visible again, avoiding the slot it held before
	out := mustRender(t, NewSpawn(world, 42), c1)
	assert.Equal(t, []byte{0x02, 0x00}, out[0xC5:0xC7])
	assertBytes(t, "03 02 00 01 01 00 00 00 00", mustRender(t, NewAnimationState(world, 42), c1))
}

func TestOneMessageManyReceivers(t *testing.T) {
	world, _ := newTestWorld(42)
	c1 := newTestReceiver("C1")
	c2 := newTestReceiver("C2")
	c2.Views().Resolve(1000)
	c2.Views().Resolve(1001)

	msg := NewPositionState(world, 42)
	assertBytes(t, "03 01 00 01 08 00 20 7A 44 00 00 A2 C1 00 8C 3B 45", mustRender(t, msg, c1))
	assertBytes(t, "03 03 00 01 08 00 20 7A 44 00 00 A2 C1 00 8C 3B 45", mustRender(t, msg, c2))

	c2.Views().ReleaseAll()
	_, err := msg.RenderFor(c2)
	assertNoLongerValid(t, err, common.ErrConnectionGone)
	// other receivers are not affected
	assertBytes(t, "03 01 00 01 08 00 20 7A 44 00 00 A2 C1 00 8C 3B 45", mustRender(t, msg, c1))
}

func TestNotBound(t *testing.T) {
	_, err := NewSystemChat("hi").Render()
	assert.Equal(t, ErrNotBound, err)
}

func TestAppearanceAndAnimationState(t *testing.T) {
	world, player := newTestWorld(42)
	c1 := newTestReceiver("C1")

	assertBytes(t, "03 01 00 02 80 81 00 0C 71 48 18 0C E2 00 23 00 B0 00 40 00 00 00 00",
		mustRender(t, NewAppearance(world, 42), c1))

	player.SetAnimation(0x11)
	player.SetMood(0x22)
	assertBytes(t, "03 01 00 01 01 11 22 00 00", mustRender(t, NewAnimationState(world, 42), c1))
}

func TestStateRelay(t *testing.T) {
	world, _ := newTestWorld(42)
	c1 := newTestReceiver("C1")
	c1.Views().Resolve(5)

	tail := []byte{0x01, 0x0E, 0xAA, 0xBB, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 0xFF}
	msg := NewStateRelay(world, 42, tail)
	tail[0] = 0x99 // the message keeps its own copy
	assertBytes(t, "03 02 00 01 0E AA BB 01 02 03 04 05 06 07 08 09 0A 0B 0C FF", mustRender(t, msg, c1))

	world.Remove(42)
	_, err := msg.RenderFor(c1)
	assertNoLongerValid(t, err, common.ErrEntityNotVisible)
}

func TestEmote(t *testing.T) {
	world, _ := newTestWorld(42)
	c1 := newTestReceiver("C1")

	assertBytes(t, `03 01 00 01 28 07 40 00 25 01 00 00 10 00 20 7A
		44 00 00 A2 C1 00 8C 3B 45 2A 9F 1E 20 00 00`,
		mustRender(t, NewEmote(world, 42, 0x580002E6, 7), c1))

	_, err := NewEmote(world, 42, 0xDEADBEEF, 8).RenderFor(c1)
	assertNoLongerValid(t, err, ErrUnknownEmote)
}

func TestJackout(t *testing.T) {
	world, _ := newTestWorld(42)
	c1 := newTestReceiver("C1")

	out := mustRender(t, NewJackout(world, 42, true), c1)
	assertBytes(t, `03 01 00 03 28 03 C0 00 74 00 10 00 20 7A 44 00
		00 A2 C1 00 8C 3B 45 BE 65 82 21 80 80 80 80 80
		80 10 01 00 00`, out)

	out = mustRender(t, NewJackout(world, 42, false), c1)
	assert.Equal(t, byte(0), out[0x22])
}

func TestDoorOpenInside(t *testing.T) {
	world := entity.NewWorld()
	world.AllocEntityID() // the door gets entity id 2
	door, _ := world.OpenDoor(0x19005030, entity.Location{X: 1000, Z: 2000}, entity.InsideDoor)
	assert.Equal(t, common.EntityID(2), door.ID())

	c1 := newTestReceiver("C1")
	c1.Views().Resolve(1)
	out := mustRender(t, NewDoorOpen(world, door.ID()), c1)
	assertBytes(t, `03 01 00 08 DA 19 30 50 00 19 EF CD AB 03 84 00
		00 00 00 F2 04 35 03 00 00 00 00 F3 04 35 3F 41
		00 00 00 00 00 40 8F 40 00 00 00 00 00 00 49 40
		00 00 00 00 00 50 9E 40 34 08 00 00 02 00 00 00
		00`, out)
}

func TestDoorOpenOutside(t *testing.T) {
	world := entity.NewWorld()
	door, _ := world.OpenDoor(0x1B330001, entity.Location{X: 1000, Z: 2000, Rot: -1.2}, entity.OutsideDoor)

	c1 := newTestReceiver("C1")
	out := mustRender(t, NewDoorOpen(world, door.ID()), c1)
	assert.Equal(t, 65, len(out))

	golden := netutil.MustParseHex(`03 01 00 08 33 1B 01 00 33 1B BC CD AB 03 84 00
		00 00 00 F3 04 35 3F 00 00 00 00 F3 04 35 3F 41
		83 C5 3F 7B B0 7F 90 40 00 00 00 00 00 00 49 40
		F7 20 54 BD 08 E9 9E 40 34 08 00 00 01 00 00 00
		00`)
	assert.Equal(t, golden[:32], out[:32])
	assert.Equal(t, golden[56:], out[56:])

	buf := netutil.WrapWireBuffer(out)
	buf.SetRpos(32)
	x, _ := buf.ReadFloat64()
	y, _ := buf.ReadFloat64()
	z, _ := buf.ReadFloat64()
	assert.T(t, math.Abs(x-(1000+60*math.Sin(1.2))) < 1e-6)
	assert.Equal(t, 50.0, y)
	assert.T(t, math.Abs(z-(2000-60*math.Cos(1.2))) < 1e-6)
}

func TestDoorClose(t *testing.T) {
	world := entity.NewWorld()
	door, _ := world.OpenDoor(0x19005030, entity.Location{}, entity.InsideDoor)
	c1 := newTestReceiver("C1")
	c1.Views().Resolve(100)
	c1.Views().Resolve(101)
	mustRender(t, NewDoorOpen(world, door.ID()), c1)

	open := NewDoorOpen(world, door.ID())
	world.CloseDoor(0x19005030)
	_, err := open.RenderFor(c1)
	assertNoLongerValid(t, err, ErrDoorClosed)

	assertBytes(t, "03 03 00 01 80 02 38 03 00 00 00 00", mustRender(t, NewDoorClose(door.ID()), c1))
	_, err = NewDoorClose(door.ID()).RenderFor(c1)
	assertNoLongerValid(t, err, common.ErrEntityNotVisible)

	// a client that never saw the door open gets no close
	_, err = NewDoorClose(door.ID()).RenderFor(newTestReceiver("C2"))
	assert.T(t, IsNoLongerValid(err))

	// reopening admits the door again
	world.OpenDoor(0x19005030, entity.Location{}, entity.InsideDoor)
	out := mustRender(t, NewDoorOpen(world, door.ID()), c1)
	assert.Equal(t, []byte{0x04, 0x00}, out[60:62])
}

const loadWorldCapture = `060e001200000022c3114901560046007265736f757263652f776f726c64732f66696e616c5f776f726c642f636f6e737472756374732f617263686976652f617263686976655f736174692f736174692e6d65747200280048616c6c6f7765656e5f4576656e742c57696e7465723348616c6c6f7765656e466c7954534543`

func TestLoadWorld(t *testing.T) {
	start := time.Unix(100000, 0)
	now := start
	world := entity.NewWorld()
	world.SetClock(func() time.Time { return now })
	now = start.Add(time.Duration(float64(math.Float32frombits(0x4911C322)) * float64(time.Second)))

	out := mustRender(t, NewLoadWorld(world, LOC_SATI, "Halloween_Event,Winter3HalloweenFlyTSEC"), newTestReceiver("C1"))

	// the capture was taken with another location numbering and ends before the last terminator
	capture := netutil.MustParseHex(loadWorldCapture)
	copy(capture[3:7], []byte{byte(LOC_SATI), 0, 0, 0})
	assert.Equal(t, len(capture)+1, len(out))
	assert.Equal(t, capture, out[:len(capture)])
	assert.Equal(t, byte(0), out[len(out)-1])

	// the sky offset points at the length of the sky string
	buf := netutil.WrapWireBuffer(out)
	buf.SetRpos(12)
	skyOffset, _ := buf.ReadUint16()
	assert.Equal(t, uint16(0x56), skyOffset)
	buf.SetRpos(int(skyOffset))
	sky, err := buf.ReadVarString()
	assert.Equal(t, nil, err)
	assert.Equal(t, "Halloween_Event,Winter3HalloweenFlyTSEC", sky)

	// sim time is taken at render time
	now = now.Add(time.Second)
	again := mustRender(t, NewLoadWorld(world, LOC_SATI, "Massive"), newTestReceiver("C2"))
	assert.NotEqual(t, out[7:11], again[7:11])
}

func TestLoadWorldFiles(t *testing.T) {
	for loc := LOC_TUTORIAL; loc <= LOC_CAVES; loc++ {
		assert.Tf(t, len(loc.WorldFile()) > 0, "%s has no world file", loc)
	}
	assert.Equal(t, "resource/worlds/final_world/downtown/dt_world.metr", LOC_DOWNTOWN.WorldFile())
}

func TestWhisperAndSystemChat(t *testing.T) {
	c1 := newTestReceiver("C1")
	assertBytes(t, `2E 11 00 00 00 00 00 24 00 00 00 33 00 00 00 00
		00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00
		00 00 00 00 0D 00 53 4F 45 2B 4D 6F 72 70 68 65
		75 73 00 18 00 46 6F 6C 6C 6F 77 20 74 68 65 20
		77 68 69 74 65 20 72 61 62 62 69 74 00`,
		mustRender(t, NewWhisper("SOE", "Morpheus", "Follow the white rabbit"), c1))

	assertBytes(t, `2E 07 00 00 00 00 00 24 00 00 00 27 00 00 00 00
		00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00
		00 00 00 00 01 00 00 16 00 57 65 6C 63 6F 6D 65
		20 74 6F 20 74 68 65 20 4D 61 74 72 69 78 00`,
		mustRender(t, NewSystemChat("Welcome to the Matrix"), c1))

	// connection addressed messages need no view
	assert.Equal(t, 0, c1.Views().Len())
}

func TestLongChatIsCut(t *testing.T) {
	out := mustRender(t, NewSystemChat(strings.Repeat("a", consts.MAX_CHAT_LENGTH+100)), newTestReceiver("C1"))
	assert.Equal(t, 0x24+3+2+consts.MAX_CHAT_LENGTH+1, len(out))

	buf := netutil.WrapWireBuffer(out)
	buf.SetRpos(11)
	textOffset, _ := buf.ReadUint32()
	buf.SetRpos(int(textOffset))
	text, err := buf.ReadVarString()
	assert.Equal(t, nil, err)
	assert.Equal(t, strings.Repeat("a", consts.MAX_CHAT_LENGTH), text)
}

func TestPlayerDetailsCutsLongNames(t *testing.T) {
	world := entity.NewWorld()
	char := neoCharacter()
	char.Handle = strings.Repeat("N", 70000)
	world.Add(entity.NewPlayer(1, char, time.Now()))

	out := mustRender(t, NewPlayerDetails(world, 1), newTestReceiver("C1"))
	buf := netutil.WrapWireBuffer(out)
	buf.SetRpos(6)
	handleOffset, _ := buf.ReadUint16()
	buf.SetRpos(int(handleOffset))
	handle, err := buf.ReadVarString()
	assert.Equal(t, nil, err)
	assert.Equal(t, strings.Repeat("N", 32), handle)
	first, _ := buf.ReadVarString()
	assert.Equal(t, char.FirstName, first)
}

func TestPlayerDetails(t *testing.T) {
	world, _ := newTestWorld(42)
	assertBytes(t, `81 93 FE CA 00 00 1D 00 00 00 00 00 23 00 2C 00
		2C 01 00 00 02 37 00 3A 00 29 23 00 00 04 00 4E
		65 6F 00 07 00 54 68 6F 6D 61 73 00 09 00 41 6E
		64 65 72 73 6F 6E 00 01 00 00 01 00 00`,
		mustRender(t, NewPlayerDetails(world, 42), newTestReceiver("C1")))

	_, err := NewPlayerDetails(world, 43).RenderFor(newTestReceiver("C1"))
	assert.T(t, IsNoLongerValid(err))
}

func TestWhereAmI(t *testing.T) {
	out := mustRender(t, NewWhereAmI(entity.Location{X: 25050, Y: -505, Z: 33250}), newTestReceiver("C1"))
	assertBytes(t, "81 54 00 B4 C3 46 00 80 FC C3 00 E2 01 47 07 01 00", out)
}

func TestHex(t *testing.T) {
	msg, err := NewHex("80b2 4e00 0800 0802")
	assert.Equal(t, nil, err)
	assertBytes(t, "80 B2 4E 00 08 00 08 02", mustRender(t, msg, newTestReceiver("C1")))

	_, err = NewHex("8")
	assert.NotEqual(t, nil, err)
}

func TestStatePackets(t *testing.T) {
	world, player := newTestWorld(42)
	door, _ := world.OpenDoor(1, entity.Location{}, entity.InsideDoor)

	msgs := StatePackets(world, 42)
	assert.Equal(t, 1, len(msgs))
	assert.Equal(t, MK_SPAWN, msgs[0].Kind())

	player.SetMood(3)
	msgs = StatePackets(world, 42)
	assert.Equal(t, 2, len(msgs))
	assert.Equal(t, MK_ANIMATION_STATE, msgs[1].Kind())

	assert.Equal(t, 0, len(StatePackets(world, door.ID())))
	assert.Equal(t, 0, len(StatePackets(world, 1000)))

	doors := OpenDoorMessages(world)
	assert.Equal(t, 1, len(doors))
	assert.Equal(t, door.ID(), doors[0].Source())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Spawn", MK_SPAWN.String())
	assert.Equal(t, "Kind(200)", Kind(200).String())
	assert.Equal(t, "Spawn<E0000002A>", NewSpawn(nil, 42).String())
}
