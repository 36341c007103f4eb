package characterstorageredis

import (
	"testing"

	"github.com/bmizerany/assert"
	"github.com/mxosim/reality/engine/entity"
	"github.com/mxosim/reality/engine/gwlog"
	"github.com/mxosim/reality/engine/storage/storage_common"
	"github.com/pkg/errors"
)

const testCharID = 0x7E57

func TestRedisCharacterStorage(t *testing.T) {
	cs, err := OpenRedis("redis://localhost:6379", 15)
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	defer cs.Close()
	gwlog.Infof("TestRedisCharacterStorage: %v", cs)

	assert.Equal(t, nil, cs.Create(&storagecommon.CharacterRecord{CharID: testCharID, Handle: "Neo"}))
	assert.Equal(t, nil, cs.SavePosition(testCharID, entity.Location{X: 1, Y: 2, Z: 3}))
	assert.Equal(t, nil, cs.SaveDistrict(testCharID, 5))

	rec, err := cs.Load(testCharID)
	assert.Equal(t, nil, err)
	assert.Equal(t, "Neo", rec.Handle)
	assert.Equal(t, 2.0, rec.Y)
	assert.Equal(t, uint8(5), rec.District)

	_, err = cs.Load(testCharID + 1)
	assert.T(t, errors.Is(err, storagecommon.ErrCharacterNotFound))
}
