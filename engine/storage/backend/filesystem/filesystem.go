package characterstoragefilesystem

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/mxosim/reality/engine/consts"
	"github.com/mxosim/reality/engine/entity"
	"github.com/mxosim/reality/engine/gwlog"
	"github.com/mxosim/reality/engine/netutil"
	. "github.com/mxosim/reality/engine/storage/storage_common"
	"github.com/pkg/errors"
)

type fileSystemCharacterStorage struct {
	sync.Mutex
	directory string
}

func getFileName(charID uint64) string {
	return "character$" + strconv.FormatUint(charID, 10)
}

func (cs *fileSystemCharacterStorage) getFilePath(charID uint64) string {
	return filepath.Join(cs.directory, getFileName(charID))
}

func (cs *fileSystemCharacterStorage) read(charID uint64) (*CharacterRecord, error) {
	dataBytes, err := ioutil.ReadFile(cs.getFilePath(charID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrCharacterNotFound, "character %d", charID)
		}
		return nil, err
	}

	var rec CharacterRecord
	if err := netutil.RECORD_PACKER.UnpackRecord(dataBytes, &rec); err != nil {
		return nil, errors.Wrapf(err, "character %d", charID)
	}
	return &rec, nil
}

func (cs *fileSystemCharacterStorage) write(rec *CharacterRecord) error {
	saveFile := cs.getFilePath(rec.CharID)
	dataBytes, err := netutil.RECORD_PACKER.PackRecord(rec)
	if err != nil {
		return err
	}

	if consts.DEBUG_SAVE_LOAD {
		gwlog.Debugf("Saving to file %s: %s", saveFile, rec)
	}
	// replaced by rename
	tmpFile := saveFile + ".tmp"
	if err := ioutil.WriteFile(tmpFile, dataBytes, 0644); err != nil {
		return err
	}
	return os.Rename(tmpFile, saveFile)
}

func (cs *fileSystemCharacterStorage) update(charID uint64, change func(rec *CharacterRecord)) error {
	cs.Lock()
	defer cs.Unlock()

	rec, err := cs.read(charID)
	if err != nil {
		return err
	}
	change(rec)
	return cs.write(rec)
}

func (cs *fileSystemCharacterStorage) Load(charID uint64) (*CharacterRecord, error) {
	cs.Lock()
	defer cs.Unlock()
	return cs.read(charID)
}

func (cs *fileSystemCharacterStorage) Create(rec *CharacterRecord) error {
	cs.Lock()
	defer cs.Unlock()
	return cs.write(rec)
}

func (cs *fileSystemCharacterStorage) SavePosition(charID uint64, pos entity.Location) error {
	return cs.update(charID, func(rec *CharacterRecord) {
		rec.SetPosition(pos)
	})
}

func (cs *fileSystemCharacterStorage) SaveBackground(charID uint64, background string) error {
	return cs.update(charID, func(rec *CharacterRecord) {
		rec.Background = background
	})
}

func (cs *fileSystemCharacterStorage) SaveDistrict(charID uint64, district uint8) error {
	return cs.update(charID, func(rec *CharacterRecord) {
		rec.District = district
	})
}

func (cs *fileSystemCharacterStorage) Close() {
	// need to do nothing
}

func (cs *fileSystemCharacterStorage) IsEOF(err error) bool {
	return false
}

// OpenDirectory opens the directory as character storage, creating it if needed
func OpenDirectory(directory string) (CharacterStorage, error) {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return nil, err
	}

	return &fileSystemCharacterStorage{
		directory: directory,
	}, nil
}
