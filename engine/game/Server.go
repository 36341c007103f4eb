package game

import (
	"sort"
	"sync"

	"github.com/mxosim/reality/engine/client"
	"github.com/mxosim/reality/engine/common"
	"github.com/mxosim/reality/engine/config"
	"github.com/mxosim/reality/engine/consts"
	"github.com/mxosim/reality/engine/entity"
	"github.com/mxosim/reality/engine/gwlog"
	"github.com/mxosim/reality/engine/gwvar"
	"github.com/mxosim/reality/engine/proto"
	"github.com/mxosim/reality/engine/rpc"
	"github.com/mxosim/reality/engine/storage"
	"github.com/mxosim/reality/engine/storage/storage_common"
	"github.com/pkg/errors"
	timer "github.com/xiaonanln/goTimer"
)

var (
	// ErrAlreadyOnline is returned when a character logs in twice
	ErrAlreadyOnline = errors.New("character already online")
)

// Inbound is a command payload received from a session, waiting to be handled by the world service
type Inbound struct {
	Session *Session
	Payload []byte
}

// Handle dispatches the payload on the session
func (in Inbound) Handle() error {
	return in.Session.HandlePacket(in.Payload)
}

// Server is the world server: the world, its sessions and the character storage
//
// Handlers, timers and the periodic save run on the world service routine.
// Sessions may receive payloads from any goroutine.
type Server struct {
	cfg        *config.WorldConfig
	world      *entity.World
	storage    *storage.Engine
	dispatcher *rpc.Dispatcher
	inbound    chan Inbound

	sessionsLock sync.RWMutex
	sessions     map[common.EntityID]*Session

	doorTimers map[uint32]*timer.Timer
}

// NewServer creates the world server using the storage
func NewServer(cfg *config.WorldConfig, store *storage.Engine) *Server {
	queueLength := cfg.CommandQueueLength
	if queueLength <= 0 {
		queueLength = consts.WORLD_SERVICE_COMMAND_QUEUE_SIZE
	}
	dispatcher := rpc.NewDispatcher(newCommandTable(), cfg.RPCWarnThreshold)
	dispatcher.SetDumpUnhandled(cfg.DumpUnhandled)

	return &Server{
		cfg:        cfg,
		world:      entity.NewWorld(),
		storage:    store,
		dispatcher: dispatcher,
		inbound:    make(chan Inbound, queueLength),
		sessions:   map[common.EntityID]*Session{},
		doorTimers: map[uint32]*timer.Timer{},
	}
}

func (srv *Server) String() string {
	return "Server<" + srv.storage.String() + ">"
}

// World returns the world of the server
func (srv *Server) World() *entity.World {
	return srv.world
}

// Inbound returns the queue of received payloads
func (srv *Server) Inbound() <-chan Inbound {
	return srv.inbound
}

// CreateCharacter stores a new character which starts in the default district
func (srv *Server) CreateCharacter(rec *storagecommon.CharacterRecord) error {
	rec.District = uint8(srv.cfg.DefaultDistrict)
	return srv.storage.Create(rec)
}

// Login loads the character and puts the player into the world
//
// The client is told the world to load; the player is spawned when the client reports the region loaded.
func (srv *Server) Login(charID uint64, worldCharID uint32, transport client.Transport) (*Session, error) {
	rec, err := srv.storage.Load(charID)
	if err != nil {
		return nil, errors.Wrapf(err, "login %d", charID)
	}

	for _, other := range srv.Sessions() {
		if other.player.CharID() == charID {
			return nil, errors.Wrapf(ErrAlreadyOnline, "%s", other)
		}
	}

	char, err := rec.Character()
	if err != nil {
		gwlog.Warnf("%s: %s has invalid appearance, using default: %v", srv, rec, err)
	}
	char.WorldCharID = worldCharID

	eid := srv.world.AllocEntityID()
	player := entity.NewPlayer(eid, char, srv.world.Now())
	s := newSession(srv, player, client.NewGameClient(rec.Handle, transport))

	srv.world.Add(player)
	srv.sessionsLock.Lock()
	srv.sessions[eid] = s
	srv.sessionsLock.Unlock()
	gwvar.OnlinePlayers.Set(int64(srv.world.PlayerCount()))

	gwlog.Infof("%s: %s logged in as %s", srv, rec, player)
	s.SystemChat("Your Object Id is %d", uint32(eid))
	s.InitializeWorld()
	return s, nil
}

// Session returns the session of the player entity
func (srv *Server) Session(eid common.EntityID) *Session {
	srv.sessionsLock.RLock()
	defer srv.sessionsLock.RUnlock()
	return srv.sessions[eid]
}

// Sessions returns all sessions ordered by player entity id
func (srv *Server) Sessions() []*Session {
	srv.sessionsLock.RLock()
	sessions := make([]*Session, 0, len(srv.sessions))
	for _, s := range srv.sessions {
		sessions = append(sessions, s)
	}
	srv.sessionsLock.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ID() < sessions[j].ID()
	})
	return sessions
}

func (srv *Server) removeSession(s *Session) {
	srv.sessionsLock.Lock()
	delete(srv.sessions, s.ID())
	srv.sessionsLock.Unlock()
}

// Announce queues the message for every session except exclude, which may be nil
func (srv *Server) Announce(exclude *Session, msg *proto.Message, state bool) {
	for _, s := range srv.Sessions() {
		if s == exclude {
			continue
		}
		if state {
			s.client.QueueState(msg)
		} else {
			s.client.QueueCommand(msg)
		}
	}
}

// FlushAll flushes the queued messages of every session. Sessions whose transport fails are removed from the world.
//
// Once flushed, the despawns of removed objects have been rendered, so their retirement records are dropped.
func (srv *Server) FlushAll(reason string) {
	for _, s := range srv.Sessions() {
		if _, err := s.client.Flush(reason); err != nil {
			gwlog.Errorf("%s: flush failed, leaving: %v", s, err)
			s.Leave()
			continue
		}
		s.Views().Prune(srv.world.Contains)
	}
}

// SaveAll stores the positions of players that moved since their last save
func (srv *Server) SaveAll() {
	for _, s := range srv.Sessions() {
		s.CheckAndStore()
	}
}

// Shutdown saves every player and closes all sessions
func (srv *Server) Shutdown() {
	for doorID, t := range srv.doorTimers {
		t.Cancel()
		delete(srv.doorTimers, doorID)
	}
	sessions := srv.Sessions()
	for _, s := range sessions {
		s.Leave()
	}
	srv.FlushAll("shutdown")
	gwlog.Infof("%s: shutdown, %d sessions closed", srv, len(sessions))
}

// OpenDoor opens the door for the player and closes it again after a while
func (srv *Server) OpenDoor(s *Session, doorID uint32, typ entity.DoorType) *entity.Door {
	door, wasClosed := srv.world.OpenDoor(doorID, s.player.Position(), typ)
	if !wasClosed {
		gwlog.Debugf("%s: %s is already open", s, door)
		return door
	}

	gwlog.Debugf("%s: opened %s", s, door)
	srv.Announce(nil, proto.NewDoorOpen(srv.world, door.ID()), false)
	srv.doorTimers[doorID] = timer.AddCallback(consts.DOOR_OPEN_DURATION, func() {
		delete(srv.doorTimers, doorID)
		srv.CloseDoor(doorID)
	})
	return door
}

// CloseDoor closes the door if it is open
func (srv *Server) CloseDoor(doorID uint32) {
	door, wasOpen := srv.world.CloseDoor(doorID)
	if !wasOpen {
		return
	}
	if t, ok := srv.doorTimers[doorID]; ok {
		t.Cancel()
		delete(srv.doorTimers, doorID)
	}
	gwlog.Debugf("%s: closed %s", srv, door)
	srv.Announce(nil, proto.NewDoorClose(door.ID()), false)
}
