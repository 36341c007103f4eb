package main

import (
	"io/ioutil"
	"os"
	"testing"
	"time"

	"github.com/bmizerany/assert"
	"github.com/mxosim/reality/engine/client"
	"github.com/mxosim/reality/engine/config"
	"github.com/mxosim/reality/engine/game"
	"github.com/mxosim/reality/engine/gwvar"
	"github.com/mxosim/reality/engine/post"
	"github.com/mxosim/reality/engine/storage"
	"github.com/mxosim/reality/engine/storage/storage_common"
)

type chanTransport struct {
	sent   chan []byte
	closed chan struct{}
}

func (t *chanTransport) Send(ch client.Channel, data []byte) error {
	t.sent <- data
	return nil
}

func (t *chanTransport) Close() error {
	close(t.closed)
	return nil
}

func TestWorldService(t *testing.T) {
	dir, err := ioutil.TempDir("", "test_world")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	store, err := storage.Open(&config.StorageConfig{Type: "filesystem", Directory: dir})
	assert.Equal(t, nil, err)
	cfg := &config.WorldConfig{
		TickInterval:     time.Millisecond * 10,
		SaveInterval:     time.Minute,
		RPCWarnThreshold: time.Second,
		Sky:              "Massive",
	}
	server := game.NewServer(cfg, store)
	assert.Equal(t, nil, server.CreateCharacter(&storagecommon.CharacterRecord{CharID: 7, Handle: "Morpheus"}))

	transport := &chanTransport{sent: make(chan []byte, 16), closed: make(chan struct{})}
	session, err := server.Login(7, 0x700, transport)
	assert.Equal(t, nil, err)

	ws := newWorldService(cfg, server, store)
	done := make(chan struct{})
	go func() {
		ws.run()
		close(done)
	}()

	// object id chat, then load world
	<-transport.sent
	loadWorld := <-transport.sent
	assert.Equal(t, []byte{0x06, 0x0E, 0x00}, loadWorld[:3])

	session.Receive([]byte{0x81, 0x54})
	whereAmI := <-transport.sent
	assert.Equal(t, []byte{0x81, 0x54}, whereAmI[:2])

	post.Post(ws.terminate)
	select {
	case <-done:
	case <-time.After(time.Second * 5):
		t.Fatalf("world service not terminated")
	}
	<-transport.closed
	assert.T(t, session.IsLeft())
	assert.T(t, ws.runState.Load() == rsTerminated)
	assert.T(t, !gwvar.IsWorldReady.Value())
}
