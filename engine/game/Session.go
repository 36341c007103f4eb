package game

import (
	"fmt"

	"github.com/mxosim/reality/engine/client"
	"github.com/mxosim/reality/engine/common"
	"github.com/mxosim/reality/engine/consts"
	"github.com/mxosim/reality/engine/entity"
	"github.com/mxosim/reality/engine/gwlog"
	"github.com/mxosim/reality/engine/gwvar"
	"github.com/mxosim/reality/engine/proto"
	"github.com/mxosim/reality/engine/views"
	"github.com/pkg/errors"
	"github.com/xiaonanln/go-xnsyncutil/xnsyncutil"
)

// Session is a logged in player and the client connection it plays through
type Session struct {
	srv    *Server
	player *entity.Player
	client *client.GameClient

	spawned   xnsyncutil.AtomicBool
	populated xnsyncutil.AtomicBool
	left      xnsyncutil.AtomicBool
}

func newSession(srv *Server, player *entity.Player, gc *client.GameClient) *Session {
	return &Session{
		srv:    srv,
		player: player,
		client: gc,
	}
}

func (s *Session) String() string {
	return fmt.Sprintf("Session<%s:%s>", s.player.ID(), s.player.Handle())
}

// Views returns the view registry of the session's connection
func (s *Session) Views() *views.Registry {
	return s.client.Views()
}

// ID returns the entity id of the player
func (s *Session) ID() common.EntityID {
	return s.player.ID()
}

func (s *Session) Player() *entity.Player {
	return s.player
}

func (s *Session) Client() *client.GameClient {
	return s.client
}

// Receive queues a payload received from the client for the world service
func (s *Session) Receive(payload []byte) {
	if s.left.Load() {
		return
	}
	data := make([]byte, len(payload))
	copy(data, payload)
	s.srv.inbound <- Inbound{Session: s, Payload: data} // may block the connection routine
}

// HandlePacket dispatches one inbound command and saves the player position when it is due
func (s *Session) HandlePacket(payload []byte) error {
	if s.left.Load() {
		return errors.Wrapf(common.ErrConnectionGone, "%s", s)
	}
	err := s.srv.dispatcher.Dispatch(s, payload)
	s.CheckAndStore()
	return err
}

func (s *Session) sendCommand(msg *proto.Message) {
	s.client.QueueCommand(msg)
}

func (s *Session) sendState(msg *proto.Message) {
	s.client.QueueState(msg)
}

// SystemChat sends a server chat line to the player
func (s *Session) SystemChat(format string, args ...interface{}) {
	s.sendCommand(proto.NewSystemChat(fmt.Sprintf(format, args...)))
}

// InitializeWorld makes the client load the world of the player's district
func (s *Session) InitializeWorld() {
	world := s.srv.world
	district := s.player.District(consts.MAX_DISTRICT)
	s.sendCommand(proto.NewLoadWorld(world, proto.WorldLocation(district), s.srv.cfg.Sky))
	if s.srv.cfg.WelcomeMessage != "" {
		s.SystemChat("%s", s.srv.cfg.WelcomeMessage)
	}
}

// SpawnSelf spawns the player on its own client and announces it to everyone else, once per world load
func (s *Session) SpawnSelf() {
	if s.spawned.Load() {
		return
	}
	s.spawned.Store(true)

	for _, msg := range proto.StatePackets(s.srv.world, s.ID()) {
		s.sendCommand(msg)
		s.srv.Announce(s, msg, false)
	}
}

// PopulateWorld sends the state of every other object and every open door to the client, once per world load
func (s *Session) PopulateWorld() {
	if s.populated.Load() {
		return
	}
	s.populated.Store(true)

	world := s.srv.world
	for _, eid := range world.AllEntityIDs() {
		if eid == s.ID() {
			continue
		}
		for _, msg := range proto.StatePackets(world, eid) {
			s.sendCommand(msg)
		}
	}
	for _, msg := range proto.OpenDoorMessages(world) {
		s.sendCommand(msg)
	}
}

// CheckAndStore saves the position when it changed and the save interval has elapsed since the last save
func (s *Session) CheckAndStore() {
	pos, due := s.player.PendingSave(s.srv.world.Now(), s.srv.cfg.SaveInterval)
	if !due {
		return
	}
	s.savePosition(pos)
}

// SaveData saves the position now if it changed. A failed save is logged, the player keeps its position.
func (s *Session) SaveData() {
	if pos, dirty := s.player.DirtyPosition(); dirty {
		s.savePosition(pos)
	}
}

func (s *Session) savePosition(pos entity.Location) {
	if err := s.srv.storage.SavePosition(s.player.CharID(), pos); err != nil {
		gwlog.Errorf("%s: save position %s failed: %v", s, pos, err)
		return
	}
	s.player.MarkSaved(pos)
	if consts.DEBUG_SAVE_LOAD {
		gwlog.Debugf("%s: saved position %s", s, pos)
	}
}

// GoAhead moves the player forward and updates every client, the player's own included
func (s *Session) GoAhead(distance float64) {
	pos := s.player.GoAhead(distance)
	gwlog.Debugf("%s: went ahead %.1f to %s", s, distance, pos)
	s.srv.Announce(nil, proto.NewPositionState(s.srv.world, s.ID()), true)
}

// Leave saves the player, despawns it everywhere and closes the connection
func (s *Session) Leave() {
	if s.left.Load() {
		return
	}
	s.left.Store(true)

	s.SaveData()
	s.srv.removeSession(s)
	s.srv.Announce(s, proto.NewDespawn(s.ID()), false)
	s.srv.world.Remove(s.ID())
	gwvar.OnlinePlayers.Set(int64(s.srv.world.PlayerCount()))
	if err := s.client.Close(); err != nil {
		gwlog.Warnf("%s: close client: %v", s, err)
	}
	gwlog.Infof("%s left the world", s)
}

// IsLeft returns if the player has left the world
func (s *Session) IsLeft() bool {
	return s.left.Load()
}
