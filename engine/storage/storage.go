package storage

import (
	"strconv"
	"sync"
	"time"

	"github.com/mxosim/reality/engine/config"
	"github.com/mxosim/reality/engine/consts"
	"github.com/mxosim/reality/engine/entity"
	"github.com/mxosim/reality/engine/gwlog"
	"github.com/mxosim/reality/engine/opmon"
	"github.com/mxosim/reality/engine/storage/backend/filesystem"
	"github.com/mxosim/reality/engine/storage/backend/mysql"
	"github.com/mxosim/reality/engine/storage/backend/redis"
	"github.com/mxosim/reality/engine/storage/storage_common"
	"github.com/pkg/errors"
)

const storageWarnThreshold = time.Millisecond * 100

// Engine is the character storage used by the world
//
// Calls are synchronous and never retried. A backend whose connection is lost is closed and
// reopened on the next call.
type Engine struct {
	sync.Mutex
	cfg     config.StorageConfig
	backend storagecommon.CharacterStorage
	open    func(cfg *config.StorageConfig) (storagecommon.CharacterStorage, error)
}

// Open opens the storage engine of the config
func Open(cfg *config.StorageConfig) (*Engine, error) {
	return openWith(cfg, openBackend)
}

// Wrap uses an already opened backend as storage engine
func Wrap(backend storagecommon.CharacterStorage) *Engine {
	return &Engine{
		cfg:     config.StorageConfig{Type: "custom"},
		backend: backend,
		open: func(cfg *config.StorageConfig) (storagecommon.CharacterStorage, error) {
			return nil, errors.New("backend can not be reopened")
		},
	}
}

func openWith(cfg *config.StorageConfig, open func(cfg *config.StorageConfig) (storagecommon.CharacterStorage, error)) (*Engine, error) {
	e := &Engine{cfg: *cfg, open: open}
	backend, err := open(cfg)
	if err != nil {
		return nil, err
	}
	e.backend = backend
	return e, nil
}

func openBackend(cfg *config.StorageConfig) (storagecommon.CharacterStorage, error) {
	switch cfg.Type {
	case "filesystem":
		return characterstoragefilesystem.OpenDirectory(cfg.Directory)
	case "redis":
		dbindex, err := strconv.Atoi(cfg.DB)
		if err != nil {
			return nil, errors.Wrap(err, "redis db must be integer")
		}
		return characterstorageredis.OpenRedis(cfg.Url, dbindex)
	case "mysql":
		return characterstoragemysql.OpenMySQL(cfg.Url)
	}
	return nil, errors.Errorf("unknown storage type: %s", cfg.Type)
}

func (e *Engine) String() string {
	return "Storage<" + e.cfg.Type + ">"
}

// call runs op on the backend, reconnecting first if the previous call lost the connection
func (e *Engine) call(opname string, op func(backend storagecommon.CharacterStorage) error) error {
	e.Lock()
	defer e.Unlock()

	if e.backend == nil {
		backend, err := e.open(&e.cfg)
		if err != nil {
			return errors.Wrapf(err, "%s is not ready", e)
		}
		e.backend = backend
	}

	monop := opmon.StartOperation("storage." + opname)
	err := op(e.backend)
	monop.Finish(storageWarnThreshold)

	if err != nil && e.backend.IsEOF(err) {
		gwlog.Warnf("%s: connection lost during %s: %v", e, opname, err)
		e.backend.Close()
		e.backend = nil
	}
	return err
}

// Load loads the character record
func (e *Engine) Load(charID uint64) (rec *storagecommon.CharacterRecord, err error) {
	if consts.DEBUG_SAVE_LOAD {
		gwlog.Debugf("%s: LOADING character %d ...", e, charID)
	}
	err = e.call("load", func(backend storagecommon.CharacterStorage) error {
		rec, err = backend.Load(charID)
		return err
	})
	return
}

// Create stores a new character record, replacing any stored record of the same id
func (e *Engine) Create(rec *storagecommon.CharacterRecord) error {
	return e.call("create", func(backend storagecommon.CharacterStorage) error {
		return backend.Create(rec)
	})
}

// SavePosition stores the location of the character
func (e *Engine) SavePosition(charID uint64, pos entity.Location) error {
	if consts.DEBUG_SAVE_LOAD {
		gwlog.Debugf("%s: SAVING position of character %d: %s", e, charID, pos)
	}
	return e.call("savePosition", func(backend storagecommon.CharacterStorage) error {
		return backend.SavePosition(charID, pos)
	})
}

// SaveBackground stores the background text of the character
func (e *Engine) SaveBackground(charID uint64, background string) error {
	return e.call("saveBackground", func(backend storagecommon.CharacterStorage) error {
		return backend.SaveBackground(charID, background)
	})
}

// SaveDistrict stores the district of the character
func (e *Engine) SaveDistrict(charID uint64, district uint8) error {
	return e.call("saveDistrict", func(backend storagecommon.CharacterStorage) error {
		return backend.SaveDistrict(charID, district)
	})
}

// Close closes the backend
func (e *Engine) Close() {
	e.Lock()
	defer e.Unlock()
	if e.backend != nil {
		e.backend.Close()
		e.backend = nil
	}
}
