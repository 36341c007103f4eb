package entity

import "github.com/pkg/errors"

// APPEARANCE_SIZE is the size of the encoded appearance blob
const APPEARANCE_SIZE = 15

// Appearance is the encoded look (RSI) of a character as sent to clients
type Appearance [APPEARANCE_SIZE]byte

// DefaultAppearance is used for characters without stored appearance
var DefaultAppearance = Appearance{0x00, 0x0C, 0x71, 0x48, 0x18, 0x0C, 0xE2, 0x00, 0x23, 0x00, 0xB0, 0x00, 0x40, 0x00, 0x00}

// IsZero returns if no appearance has been set
func (a Appearance) IsZero() bool {
	return a == Appearance{}
}

// RSIValues are the stored appearance attributes of a character, keyed by attribute name (Sex, Body, Hat ...)
type RSIValues map[string]uint8

// AppearanceEncoder packs appearance attributes into the client's bit layout
type AppearanceEncoder func(values RSIValues) (Appearance, error)

// ErrNoAppearanceEncoder is returned by the default encoder
var ErrNoAppearanceEncoder = errors.New("no appearance encoder installed")

var appearanceEncoder AppearanceEncoder = func(values RSIValues) (Appearance, error) {
	return DefaultAppearance, ErrNoAppearanceEncoder
}

// SetAppearanceEncoder installs the encoder of appearance attributes
func SetAppearanceEncoder(enc AppearanceEncoder) {
	appearanceEncoder = enc
}

// EncodeAppearance encodes appearance attributes, falling back to DefaultAppearance on error
func EncodeAppearance(values RSIValues) (Appearance, error) {
	if len(values) == 0 {
		return DefaultAppearance, nil
	}
	a, err := appearanceEncoder(values)
	if err != nil {
		return DefaultAppearance, err
	}
	return a, nil
}
