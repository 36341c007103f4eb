package game

import (
	"strconv"
	"strings"

	"github.com/mxosim/reality/engine/common"
	"github.com/mxosim/reality/engine/consts"
	"github.com/mxosim/reality/engine/entity"
	"github.com/mxosim/reality/engine/gwlog"
	"github.com/mxosim/reality/engine/netutil"
	"github.com/mxosim/reality/engine/proto"
	"github.com/mxosim/reality/engine/rpc"
	"github.com/pkg/errors"
)

const commandPrefix = "?"

// method adapts a session method to an rpc handler
func method(f func(s *Session, buf *netutil.WireBuffer) error) rpc.Handler {
	return func(rs rpc.Session, buf *netutil.WireBuffer) error {
		return f(rs.(*Session), buf)
	}
}

func newCommandTable() *rpc.Table {
	return rpc.NewTable(
		[]rpc.Entry{
			rpc.Single(proto.RPC_PERFORM_EMOTE, "PerformEmote", method((*Session).handlePerformEmote)),
			rpc.Single(proto.RPC_STOP_ANIMATION, "StopAnimation", method((*Session).handleStopAnimation)),
			rpc.Single(proto.RPC_START_ANIMATION, "StartAnimation", method((*Session).handleStartAnimation)),
			rpc.Single(proto.RPC_CHANGE_MOOD, "ChangeMood", method((*Session).handleChangeMood)),

			rpc.Pair(proto.RPC_CHAT, "Chat", method((*Session).handleChat)),
			rpc.Pair(proto.RPC_WHISPER, "Whisper", method((*Session).handleWhisper)),
			rpc.Pair(proto.RPC_STATIC_OBJ_INTERACTION, "StaticObjectInteraction", method((*Session).handleStaticObjectInteraction)),
			rpc.Pair(proto.RPC_JUMP, "Jump", method((*Session).handleJump)),
			rpc.Pair(proto.RPC_REGION_LOADED, "RegionLoaded", method((*Session).handleRegionLoaded)),
			rpc.Pair(proto.RPC_READY_FOR_WORLD_CHANGE, "ReadyForWorldChange", method((*Session).handleReadyForWorldChange)),
			rpc.Pair(proto.RPC_WHERE_AM_I, "WhereAmI", method((*Session).handleWhereAmI)),
			rpc.Pair(proto.RPC_GET_PLAYER_DETAILS, "GetPlayerDetails", method((*Session).handleGetPlayerDetails)),
			rpc.Pair(proto.RPC_GET_BACKGROUND, "GetBackground", method((*Session).handleGetBackground)),
			rpc.Pair(proto.RPC_SET_BACKGROUND, "SetBackground", method((*Session).handleSetBackground)),
			rpc.Pair(proto.RPC_HARDLINE_TELEPORT, "HardlineTeleport", method((*Session).handleHardlineTeleport)),
			rpc.Pair(proto.RPC_OBJECT_SELECTED, "ObjectSelected", method((*Session).handleObjectSelected)),
		},
		rpc.Family(proto.RPC_STATE_FIRST, proto.RPC_STATE_LAST, "StateUpdate", method((*Session).handleStateUpdate)),
	)
}

// readStringAt reads the u16 offset at the read position and the var string it points to.
// Offsets count from the start of the payload.
func readStringAt(buf *netutil.WireBuffer) (string, error) {
	offset, err := buf.ReadUint16()
	if err != nil {
		return "", err
	}
	next := buf.Rpos()
	buf.SetRpos(int(offset))
	str, err := buf.ReadVarString()
	if err != nil {
		return "", err
	}
	buf.SetRpos(next)
	return str, nil
}

func (s *Session) handlePerformEmote(buf *netutil.WireBuffer) error {
	opcode, err := buf.ReadUint32()
	if err != nil {
		return err
	}
	if _, ok := proto.LookupEmote(opcode); !ok {
		gwlog.Debugf("%s: unknown emote %08X", s, opcode)
	}
	count := s.player.NextEmoteCount()
	s.srv.Announce(nil, proto.NewEmote(s.srv.world, s.ID(), opcode, count), true)
	return nil
}

func (s *Session) handleStopAnimation(buf *netutil.WireBuffer) error {
	s.player.SetAnimation(0)
	s.srv.Announce(s, proto.NewAnimationState(s.srv.world, s.ID()), true)
	return nil
}

func (s *Session) handleStartAnimation(buf *netutil.WireBuffer) error {
	animation, err := buf.ReadUint8()
	if err != nil {
		return err
	}
	s.player.SetAnimation(animation)
	s.srv.Announce(s, proto.NewAnimationState(s.srv.world, s.ID()), true)
	return nil
}

func (s *Session) handleChangeMood(buf *netutil.WireBuffer) error {
	mood, err := buf.ReadUint8()
	if err != nil {
		return err
	}
	s.player.SetMood(mood)
	s.srv.Announce(s, proto.NewAnimationState(s.srv.world, s.ID()), true)
	return nil
}

func (s *Session) handleStateUpdate(buf *netutil.WireBuffer) error {
	u, err := rpc.DecodeStateUpdate(buf, s.checkOwnView)
	if err != nil {
		return err
	}

	switch {
	case u.HasRotation():
		s.player.SetMxoRot(u.Rot)
	case u.HasPosition():
		s.player.SetCoords(u.X, u.Y, u.Z)
	}
	if consts.DEBUG_STATE {
		gwlog.Debugf("%s: state %s tag %02X, now at %s", s, u.Kind, u.Tag, s.player.Position())
	}
	s.srv.Announce(s, proto.NewStateRelay(s.srv.world, s.ID(), u.Tail), true)
	return nil
}

// checkOwnView accepts the view id only if it is the player's own view on this connection
func (s *Session) checkOwnView(vid common.ViewID) error {
	eid, ok := s.Views().EntityOf(vid)
	if !ok {
		return errors.Errorf("%s is not mapped", vid)
	}
	if eid != s.ID() {
		return errors.Errorf("%s is %s", vid, eid)
	}
	return nil
}

func (s *Session) handleChat(buf *netutil.WireBuffer) error {
	text, err := readStringAt(buf)
	if err != nil {
		return err
	}
	if strings.HasPrefix(text, commandPrefix) {
		s.runChatCommand(strings.Fields(strings.TrimPrefix(text, commandPrefix)))
		return nil
	}

	gwlog.Infof("%s says: %s", s, text)
	s.srv.Announce(s, proto.NewWhisper(s.srv.cfg.ChatPrefix, s.player.Handle(), text), false)
	return nil
}

func (s *Session) runChatCommand(args []string) {
	if len(args) == 0 {
		return
	}

	switch strings.ToLower(args[0]) {
	case "goahead":
		distance := 100.0
		if len(args) > 1 {
			d, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				s.SystemChat("goahead: invalid distance %q", args[1])
				return
			}
			distance = d
		}
		s.GoAhead(distance)
	case "update":
		s.srv.Announce(nil, proto.NewPositionState(s.srv.world, s.ID()), true)
		s.srv.Announce(nil, proto.NewAnimationState(s.srv.world, s.ID()), true)
	case "pos":
		s.SystemChat("Position: %s", s.player.Position())
	case "district":
		if len(args) < 2 {
			s.SystemChat("District: %d", s.player.District(consts.MAX_DISTRICT))
			return
		}
		district, err := strconv.ParseUint(args[1], 10, 8)
		if err != nil {
			s.SystemChat("district: invalid district %q", args[1])
			return
		}
		s.changeDistrict(uint8(district))
	case "door":
		if len(args) < 2 {
			s.SystemChat("door: need a door id")
			return
		}
		doorID, err := strconv.ParseUint(args[1], 16, 32)
		if err != nil {
			s.SystemChat("door: invalid door id %q", args[1])
			return
		}
		typ := entity.InsideDoor
		if len(args) > 2 && strings.EqualFold(args[2], "outside") {
			typ = entity.OutsideDoor
		}
		door := s.srv.OpenDoor(s, uint32(doorID), typ)
		s.SystemChat("Opened %s", door)
	default:
		s.SystemChat("Unknown command: %s", args[0])
	}
}

func (s *Session) handleWhisper(buf *netutil.WireBuffer) error {
	recipient, err := readStringAt(buf)
	if err != nil {
		return err
	}
	text, err := readStringAt(buf)
	if err != nil {
		return err
	}
	// recipients may be addressed with the server prefix, as in SOE+MXO+Neo
	if i := strings.LastIndex(recipient, "+"); i >= 0 {
		recipient = recipient[i+1:]
	}

	target, err := s.srv.world.PlayerByHandle(recipient)
	if err != nil {
		s.SystemChat("%s is not online", recipient)
		return nil
	}
	if other := s.srv.Session(target.ID()); other != nil {
		other.sendCommand(proto.NewWhisper(s.srv.cfg.ChatPrefix, s.player.Handle(), text))
	}
	return nil
}

func (s *Session) handleStaticObjectInteraction(buf *netutil.WireBuffer) error {
	doorID, err := buf.ReadUint32()
	if err != nil {
		return err
	}
	s.srv.OpenDoor(s, doorID, entity.InsideDoor)
	return nil
}

func (s *Session) handleJump(buf *netutil.WireBuffer) error {
	x, y, z, err := entity.ReadFloats(buf)
	if err != nil {
		return err
	}
	s.player.SetCoords(x, y, z)
	s.srv.Announce(s, proto.NewPositionState(s.srv.world, s.ID()), true)
	return nil
}

func (s *Session) handleRegionLoaded(buf *netutil.WireBuffer) error {
	s.SpawnSelf()
	s.PopulateWorld()
	return nil
}

func (s *Session) handleReadyForWorldChange(buf *netutil.WireBuffer) error {
	s.InitializeWorld()
	return nil
}

func (s *Session) handleWhereAmI(buf *netutil.WireBuffer) error {
	s.sendCommand(proto.NewWhereAmI(s.player.Position()))
	return nil
}

func (s *Session) handleGetPlayerDetails(buf *netutil.WireBuffer) error {
	s.sendCommand(proto.NewPlayerDetails(s.srv.world, s.ID()))
	return nil
}

func (s *Session) handleObjectSelected(buf *netutil.WireBuffer) error {
	vid, err := buf.ReadUint16()
	if err != nil {
		return err
	}
	eid, ok := s.Views().EntityOf(common.ViewID(vid))
	if !ok {
		return errors.Wrapf(common.ErrEntityNotVisible, "%s selected unknown %s", s, common.ViewID(vid))
	}
	if _, err := s.srv.world.Player(eid); err != nil {
		return err
	}
	s.sendCommand(proto.NewPlayerDetails(s.srv.world, eid))
	return nil
}

func (s *Session) handleGetBackground(buf *netutil.WireBuffer) error {
	s.SystemChat("%s", s.player.Background())
	return nil
}

func (s *Session) handleSetBackground(buf *netutil.WireBuffer) error {
	background, err := readStringAt(buf)
	if err != nil {
		return err
	}
	s.player.SetBackground(background)
	if err := s.srv.storage.SaveBackground(s.player.CharID(), background); err != nil {
		gwlog.Errorf("%s: save background failed: %v", s, err)
	}
	return nil
}

func (s *Session) handleHardlineTeleport(buf *netutil.WireBuffer) error {
	hardline, err := buf.ReadUint32()
	if err != nil {
		return err
	}
	district, err := buf.ReadUint32()
	if err != nil {
		return err
	}
	gwlog.Infof("%s: hardline %d to district %d", s, hardline, district)
	if district > consts.MAX_DISTRICT {
		district = 0
	}
	s.changeDistrict(uint8(district))
	return nil
}

// changeDistrict jacks the player out, despawns it on the other clients and loads the district's world
func (s *Session) changeDistrict(district uint8) {
	if district > consts.MAX_DISTRICT {
		district = 0
	}
	s.player.SetDistrict(district)
	if err := s.srv.storage.SaveDistrict(s.player.CharID(), district); err != nil {
		gwlog.Errorf("%s: save district failed: %v", s, err)
	}

	s.srv.Announce(nil, proto.NewJackout(s.srv.world, s.ID(), true), false)
	s.srv.Announce(s, proto.NewDespawn(s.ID()), false)
	s.spawned.Store(false)
	s.populated.Store(false)
	s.InitializeWorld()
}
