package storagecommon

import (
	"fmt"

	"github.com/mxosim/reality/engine/entity"
	"github.com/pkg/errors"
)

var (
	// ErrCharacterNotFound is returned when loading a character that is not stored
	ErrCharacterNotFound = errors.New("character not found")
)

// CharacterStorage defines the interface of character storage backends
type CharacterStorage interface {
	Load(charID uint64) (*CharacterRecord, error)
	Create(rec *CharacterRecord) error
	SavePosition(charID uint64, pos entity.Location) error
	SaveBackground(charID uint64, background string) error
	SaveDistrict(charID uint64, district uint8) error
	Close()
	IsEOF(err error) bool
}

// CharacterRecord is the stored form of a character
type CharacterRecord struct {
	CharID     uint64           `msgpack:"charId"`
	Handle     string           `msgpack:"handle"`
	FirstName  string           `msgpack:"firstName"`
	LastName   string           `msgpack:"lastName"`
	Background string           `msgpack:"background"`
	X          float64          `msgpack:"x"`
	Y          float64          `msgpack:"y"`
	Z          float64          `msgpack:"z"`
	Rot        float64          `msgpack:"rot"`
	HealthC    uint16           `msgpack:"healthC"`
	HealthM    uint16           `msgpack:"healthM"`
	InnerStrC  uint16           `msgpack:"innerStrC"`
	InnerStrM  uint16           `msgpack:"innerStrM"`
	Level      uint8            `msgpack:"level"`
	Profession uint32           `msgpack:"profession"`
	Alignment  uint8            `msgpack:"alignment"`
	PvPFlag    bool             `msgpack:"pvpflag"`
	Exp        uint64           `msgpack:"exp"`
	Cash       uint64           `msgpack:"cash"`
	District   uint8            `msgpack:"district"`
	Admin      bool             `msgpack:"adminFlags"`
	RSI        entity.RSIValues `msgpack:"rsi,omitempty"`
}

func (rec *CharacterRecord) String() string {
	return fmt.Sprintf("CharacterRecord<%d:%s>", rec.CharID, rec.Handle)
}

// SetPosition stores the location in the record
func (rec *CharacterRecord) SetPosition(pos entity.Location) {
	rec.X, rec.Y, rec.Z, rec.Rot = pos.X, pos.Y, pos.Z, pos.Rot
}

// Character converts the record to the in-memory character
//
// Appearance attributes that can not be encoded fall back to the default appearance, the error is returned along.
func (rec *CharacterRecord) Character() (entity.Character, error) {
	appearance, err := entity.EncodeAppearance(rec.RSI)
	return entity.Character{
		CharID:     rec.CharID,
		Handle:     rec.Handle,
		FirstName:  rec.FirstName,
		LastName:   rec.LastName,
		Background: rec.Background,
		Pos:        entity.Location{X: rec.X, Y: rec.Y, Z: rec.Z, Rot: rec.Rot},
		HealthC:    rec.HealthC,
		HealthM:    rec.HealthM,
		InnerStrC:  rec.InnerStrC,
		InnerStrM:  rec.InnerStrM,
		Level:      rec.Level,
		Profession: rec.Profession,
		Alignment:  rec.Alignment,
		PvPFlag:    rec.PvPFlag,
		District:   rec.District,
		Admin:      rec.Admin,
		Appearance: appearance,
	}, err
}
