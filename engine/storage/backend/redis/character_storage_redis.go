package characterstorageredis

import (
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/garyburd/redigo/redis"
	"github.com/mxosim/reality/engine/entity"
	"github.com/mxosim/reality/engine/netutil"
	. "github.com/mxosim/reality/engine/storage/storage_common"
	"github.com/pkg/errors"
)

type redisCharacterStorage struct {
	sync.Mutex
	c redis.Conn
}

// OpenRedis opens redis as character storage. url is host:port or a redis:// URL.
func OpenRedis(url string, dbindex int) (CharacterStorage, error) {
	var (
		c   redis.Conn
		err error
	)
	if strings.HasPrefix(url, "redis://") {
		c, err = redis.DialURL(url)
	} else {
		c, err = redis.Dial("tcp", url)
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis dail failed")
	}

	if _, err := c.Do("SELECT", dbindex); err != nil {
		c.Close()
		return nil, errors.Wrap(err, "redis select db failed")
	}

	return &redisCharacterStorage{
		c: c,
	}, nil
}

func characterKey(charID uint64) string {
	return "character$" + strconv.FormatUint(charID, 10)
}

func (cs *redisCharacterStorage) read(charID uint64) (*CharacterRecord, error) {
	b, err := redis.Bytes(cs.c.Do("GET", characterKey(charID)))
	if err == redis.ErrNil {
		return nil, errors.Wrapf(ErrCharacterNotFound, "character %d", charID)
	} else if err != nil {
		return nil, err
	}
	var rec CharacterRecord
	if err = netutil.RECORD_PACKER.UnpackRecord(b, &rec); err != nil {
		return nil, errors.Wrapf(err, "character %d", charID)
	}
	return &rec, nil
}

func (cs *redisCharacterStorage) write(rec *CharacterRecord) error {
	b, err := netutil.RECORD_PACKER.PackRecord(rec)
	if err != nil {
		return err
	}
	_, err = cs.c.Do("SET", characterKey(rec.CharID), b)
	return err
}

func (cs *redisCharacterStorage) update(charID uint64, change func(rec *CharacterRecord)) error {
	cs.Lock()
	defer cs.Unlock()

	rec, err := cs.read(charID)
	if err != nil {
		return err
	}
	change(rec)
	return cs.write(rec)
}

func (cs *redisCharacterStorage) Load(charID uint64) (*CharacterRecord, error) {
	cs.Lock()
	defer cs.Unlock()
	return cs.read(charID)
}

func (cs *redisCharacterStorage) Create(rec *CharacterRecord) error {
	cs.Lock()
	defer cs.Unlock()
	return cs.write(rec)
}

func (cs *redisCharacterStorage) SavePosition(charID uint64, pos entity.Location) error {
	return cs.update(charID, func(rec *CharacterRecord) {
		rec.SetPosition(pos)
	})
}

func (cs *redisCharacterStorage) SaveBackground(charID uint64, background string) error {
	return cs.update(charID, func(rec *CharacterRecord) {
		rec.Background = background
	})
}

func (cs *redisCharacterStorage) SaveDistrict(charID uint64, district uint8) error {
	return cs.update(charID, func(rec *CharacterRecord) {
		rec.District = district
	})
}

func (cs *redisCharacterStorage) Close() {
	cs.c.Close()
}

func (cs *redisCharacterStorage) IsEOF(err error) bool {
	err = errors.Cause(err)
	return err == io.EOF || err == io.ErrUnexpectedEOF
}
