package main

import (
	"fmt"
	"time"

	"github.com/mxosim/reality/engine/config"
	"github.com/mxosim/reality/engine/game"
	"github.com/mxosim/reality/engine/gwlog"
	"github.com/mxosim/reality/engine/gwutils"
	"github.com/mxosim/reality/engine/gwvar"
	"github.com/mxosim/reality/engine/opmon"
	"github.com/mxosim/reality/engine/post"
	"github.com/mxosim/reality/engine/storage"
	"github.com/xiaonanln/go-xnsyncutil/xnsyncutil"
	timer "github.com/xiaonanln/goTimer"
)

const (
	rsNotRunning = iota
	rsRunning
	rsTerminating
	rsTerminated
)

// WorldService runs the world: inbound commands, timers, posted callbacks and flushing clients all happen on its routine
type WorldService struct {
	config   *config.WorldConfig
	server   *game.Server
	store    *storage.Engine
	runState xnsyncutil.AtomicInt

	saveTimer *timer.Timer
}

func newWorldService(cfg *config.WorldConfig, server *game.Server, store *storage.Engine) *WorldService {
	return &WorldService{
		config: cfg,
		server: server,
		store:  store,
	}
}

func (ws *WorldService) String() string {
	return fmt.Sprintf("WorldService<%s>", ws.store)
}

func (ws *WorldService) run() {
	ws.runState.Store(rsRunning)
	if ws.config.SaveInterval > 0 {
		ws.saveTimer = timer.AddTimer(ws.config.SaveInterval, ws.server.SaveAll)
	}
	gwvar.IsWorldReady.Set(true)
	gwlog.Infof("%s: running, tick interval %s, save interval %s", ws, ws.config.TickInterval, ws.config.SaveInterval)

	gwutils.RepeatUntilPanicless(ws.serveRoutine)
}

func (ws *WorldService) serveRoutine() {
	ticker := time.NewTicker(ws.config.TickInterval)
	defer ticker.Stop()

	for ws.runState.Load() != rsTerminated {
		select {
		case in := <-ws.server.Inbound():
			op := opmon.StartOperation("WorldServiceHandlePacket")
			in.Handle() // failures are logged by the dispatcher
			op.Finish(time.Millisecond * 100)
		case <-ticker.C:
			if ws.runState.Load() == rsTerminating {
				ws.doTerminate()
				return
			}

			timer.Tick()
			ws.server.FlushAll("tick")
		}

		// after handling packets or firing timers, check the posted functions
		post.Tick()
	}
}

func (ws *WorldService) terminate() {
	ws.runState.Store(rsTerminating)
}

func (ws *WorldService) doTerminate() {
	gwvar.IsWorldReady.Set(false)
	post.Tick() // consume remaining posts
	if ws.saveTimer != nil {
		ws.saveTimer.Cancel()
	}

	ws.server.Shutdown()
	ws.store.Close()
	opmon.Dump()
	ws.runState.Store(rsTerminated)
	gwlog.Infof("%s: all players saved, world service terminated.", ws)
}
