package entity

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mxosim/reality/engine/common"
)

// Character is the persistent part of a player
type Character struct {
	CharID      uint64
	WorldCharID uint32
	Handle      string
	FirstName   string
	LastName    string
	Background  string
	Pos         Location
	HealthC     uint16
	HealthM     uint16
	InnerStrC   uint16
	InnerStrM   uint16
	Level       uint8
	Profession  uint32
	Alignment   uint8
	PvPFlag     bool
	District    uint8
	Admin       bool
	Appearance  Appearance
}

// PlayerState is a consistent copy of a player taken under its lock
type PlayerState struct {
	Character
	ID           common.EntityID
	Animation    uint8
	Mood         uint8
	EmoteCounter uint8
}

// Player is a player controlled world object
type Player struct {
	mu sync.Mutex

	id           common.EntityID
	char         Character
	savedPos     Location
	lastStore    time.Time
	animation    uint8
	mood         uint8
	emoteCounter uint8
}

// NewPlayer creates the world object of a loaded character
func NewPlayer(id common.EntityID, char Character, now time.Time) *Player {
	if char.FirstName == "" {
		char.FirstName = "NOFIRST"
	}
	if char.LastName == "" {
		char.LastName = "NOLAST"
	}
	if char.Appearance.IsZero() {
		char.Appearance = DefaultAppearance
	}
	return &Player{
		id:        id,
		char:      char,
		savedPos:  char.Pos,
		lastStore: now,
	}
}

func (p *Player) String() string {
	return fmt.Sprintf("Player<%s:%s>", p.id, p.Handle())
}

// ID returns the entity id of the player
func (p *Player) ID() common.EntityID {
	return p.id
}

// Handle returns the player's handle, never changed after creation
func (p *Player) Handle() string {
	return p.char.Handle
}

// CharID returns the persistent character id
func (p *Player) CharID() uint64 {
	return p.char.CharID
}

// HasHandle compares handles case insensitively
func (p *Player) HasHandle(handle string) bool {
	return strings.EqualFold(p.char.Handle, handle)
}

// Snapshot returns a copy of the player state
func (p *Player) Snapshot() PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PlayerState{
		Character:    p.char,
		ID:           p.id,
		Animation:    p.animation,
		Mood:         p.mood,
		EmoteCounter: p.emoteCounter,
	}
}

// Position returns the current location
func (p *Player) Position() Location {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.char.Pos
}

// SetPosition replaces the current location
func (p *Player) SetPosition(loc Location) {
	p.mu.Lock()
	p.char.Pos = loc
	p.mu.Unlock()
}

// SetCoords moves the player keeping its facing
func (p *Player) SetCoords(x, y, z float32) {
	p.mu.Lock()
	p.char.Pos.X = Coord(x)
	p.char.Pos.Y = Coord(y)
	p.char.Pos.Z = Coord(z)
	p.mu.Unlock()
}

// SetMxoRot turns the player to the client's one byte angle
func (p *Player) SetMxoRot(b uint8) {
	p.mu.Lock()
	p.char.Pos.SetMxoRot(b)
	p.mu.Unlock()
}

// GoAhead moves the player forward along its facing
func (p *Player) GoAhead(distance float64) Location {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.char.Pos = p.char.Pos.Ahead(distance, 100)
	return p.char.Pos
}

func (p *Player) SetAnimation(animation uint8) {
	p.mu.Lock()
	p.animation = animation
	p.mu.Unlock()
}

func (p *Player) SetMood(mood uint8) {
	p.mu.Lock()
	p.mood = mood
	p.mu.Unlock()
}

// NextEmoteCount increments and returns the emote counter, which wraps at 256
func (p *Player) NextEmoteCount() uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.emoteCounter++
	return p.emoteCounter
}

func (p *Player) Background() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.char.Background
}

func (p *Player) SetBackground(background string) {
	p.mu.Lock()
	p.char.Background = background
	p.mu.Unlock()
}

// District returns the district, values beyond the last district are treated as district 0
func (p *Player) District(maxDistrict uint8) uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.char.District > maxDistrict {
		p.char.District = 0
	}
	return p.char.District
}

func (p *Player) SetDistrict(district uint8) {
	p.mu.Lock()
	p.char.District = district
	p.mu.Unlock()
}

// PendingSave returns the position to store if it changed since the last save and the interval has elapsed
func (p *Player) PendingSave(now time.Time, interval time.Duration) (Location, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if now.Sub(p.lastStore) <= interval {
		return Location{}, false
	}
	p.lastStore = now
	if p.savedPos.SamePlace(p.char.Pos) {
		return Location{}, false
	}
	return p.char.Pos, true
}

// DirtyPosition returns the position if it changed since the last save, regardless of the interval
func (p *Player) DirtyPosition() (Location, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.savedPos.SamePlace(p.char.Pos) {
		return Location{}, false
	}
	return p.char.Pos, true
}

// MarkSaved records loc as the stored position
func (p *Player) MarkSaved(loc Location) {
	p.mu.Lock()
	p.savedPos = loc
	p.mu.Unlock()
}
