package characterstoragefilesystem

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/bmizerany/assert"
	"github.com/mxosim/reality/engine/entity"
	"github.com/mxosim/reality/engine/storage/storage_common"
	"github.com/pkg/errors"
)

func openTestStorage(t *testing.T) (storagecommon.CharacterStorage, func()) {
	dir, err := ioutil.TempDir("", "test_character_storage")
	if err != nil {
		t.Fatal(err)
	}
	cs, err := OpenDirectory(dir)
	if err != nil {
		t.Fatal(err)
	}
	return cs, func() {
		cs.Close()
		os.RemoveAll(dir)
	}
}

func TestFileSystemCharacterStorage(t *testing.T) {
	cs, cleanup := openTestStorage(t)
	defer cleanup()

	_, err := cs.Load(1)
	assert.T(t, errors.Is(err, storagecommon.ErrCharacterNotFound))

	rec := &storagecommon.CharacterRecord{
		CharID:    1,
		Handle:    "Neo",
		FirstName: "Thomas",
		X:         1.5,
		HealthC:   500,
		Exp:       5000000,
		Cash:      1234,
		RSI:       entity.RSIValues{"Sex": 0, "Hat": 3},
	}
	assert.Equal(t, nil, cs.Create(rec))

	loaded, err := cs.Load(1)
	assert.Equal(t, nil, err)
	assert.Equal(t, rec, loaded)

	assert.Equal(t, nil, cs.SavePosition(1, entity.Location{X: 10, Y: 20, Z: 30, Rot: 1}))
	assert.Equal(t, nil, cs.SaveBackground(1, "The One"))
	assert.Equal(t, nil, cs.SaveDistrict(1, 3))

	loaded, err = cs.Load(1)
	assert.Equal(t, nil, err)
	assert.Equal(t, 10.0, loaded.X)
	assert.Equal(t, 30.0, loaded.Z)
	assert.Equal(t, 1.0, loaded.Rot)
	assert.Equal(t, "The One", loaded.Background)
	assert.Equal(t, uint8(3), loaded.District)
	assert.Equal(t, "Neo", loaded.Handle)
	// columns the world does not use are kept by partial saves
	assert.Equal(t, uint64(5000000), loaded.Exp)
	assert.Equal(t, uint64(1234), loaded.Cash)
}

func TestSaveMissingCharacter(t *testing.T) {
	cs, cleanup := openTestStorage(t)
	defer cleanup()

	err := cs.SavePosition(7, entity.Location{})
	assert.T(t, errors.Is(err, storagecommon.ErrCharacterNotFound))
	assert.T(t, !cs.IsEOF(err))
}
