package netutil

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"github.com/mxosim/reality/engine/gwlog"
	"github.com/pkg/errors"
)

const (
	_MIN_BUFFER_CAP = 64

	// MaxVarStringLength is the longest string whose length and terminator fit the u16 length field
	MaxVarStringLength = 0xFFFE
)

var (
	packetEndian = binary.LittleEndian

	// ErrTruncatedData is returned when a read needs more bytes than remain in the buffer
	ErrTruncatedData = errors.New("truncated data")
)

// WireBuffer is a growable byte sequence with a write cursor (the end) and an independent read cursor
//
// All multi-byte scalars are little-endian. A WireBuffer is not safe for concurrent use.
type WireBuffer struct {
	data []byte
	rpos int
}

// NewWireBuffer creates an empty WireBuffer for writing
func NewWireBuffer(capacity int) *WireBuffer {
	if capacity < _MIN_BUFFER_CAP {
		capacity = _MIN_BUFFER_CAP
	}
	return &WireBuffer{
		data: make([]byte, 0, capacity),
	}
}

// WrapWireBuffer creates a WireBuffer for reading the bytes. The bytes are copied.
func WrapWireBuffer(b []byte) *WireBuffer {
	data := make([]byte, len(b))
	copy(data, b)
	return &WireBuffer{data: data}
}

// FromTemplate creates a WireBuffer whose content is a copy of the template, ready to be patched
func FromTemplate(template []byte) *WireBuffer {
	return WrapWireBuffer(template)
}

// Append appends raw bytes
func (b *WireBuffer) Append(v []byte) {
	b.data = append(b.data, v...)
}

// AppendByte appends one byte
func (b *WireBuffer) AppendByte(v byte) {
	b.data = append(b.data, v)
}

// AppendUint8 appends one byte
func (b *WireBuffer) AppendUint8(v uint8) {
	b.data = append(b.data, v)
}

// AppendBool appends one byte of 0 or 1
func (b *WireBuffer) AppendBool(v bool) {
	if v {
		b.AppendByte(1)
	} else {
		b.AppendByte(0)
	}
}

// AppendZeros appends n zero bytes
func (b *WireBuffer) AppendZeros(n int) {
	for i := 0; i < n; i++ {
		b.data = append(b.data, 0)
	}
}

// AppendUint16 appends a little-endian uint16
func (b *WireBuffer) AppendUint16(v uint16) {
	var tmp [2]byte
	packetEndian.PutUint16(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

// AppendUint32 appends a little-endian uint32
func (b *WireBuffer) AppendUint32(v uint32) {
	var tmp [4]byte
	packetEndian.PutUint32(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

// AppendUint64 appends a little-endian uint64
func (b *WireBuffer) AppendUint64(v uint64) {
	var tmp [8]byte
	packetEndian.PutUint64(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

// AppendInt8 appends one byte
func (b *WireBuffer) AppendInt8(v int8) {
	b.AppendUint8(uint8(v))
}

// AppendInt16 appends a little-endian int16
func (b *WireBuffer) AppendInt16(v int16) {
	b.AppendUint16(uint16(v))
}

// AppendInt32 appends a little-endian int32
func (b *WireBuffer) AppendInt32(v int32) {
	b.AppendUint32(uint32(v))
}

// AppendInt64 appends a little-endian int64
func (b *WireBuffer) AppendInt64(v int64) {
	b.AppendUint64(uint64(v))
}

// AppendFloat32 appends the IEEE-754 bits of f
func (b *WireBuffer) AppendFloat32(f float32) {
	b.AppendUint32(math.Float32bits(f))
}

// AppendFloat64 appends the IEEE-754 bits of f
func (b *WireBuffer) AppendFloat64(f float64) {
	b.AppendUint64(math.Float64bits(f))
}

// WriteString appends the raw bytes of s without any length prefix or terminator
func (b *WireBuffer) WriteString(s string) {
	b.data = append(b.data, s...)
}

// WriteVarString appends s as the client reads in-line strings: u16 length including the terminator, bytes, NUL.
// Strings longer than MaxVarStringLength are cut.
func (b *WireBuffer) WriteVarString(s string) {
	if len(s) > MaxVarStringLength {
		s = s[:MaxVarStringLength]
	}
	b.AppendUint16(uint16(len(s) + 1))
	b.WriteString(s)
	b.AppendByte(0)
}

// Wpos returns the write position, i.e. the offset the next appended byte will have
func (b *WireBuffer) Wpos() int {
	return len(b.data)
}

// Len returns the total number of written bytes
func (b *WireBuffer) Len() int {
	return len(b.data)
}

func (b *WireBuffer) checkPut(offset int, size int) {
	if offset < 0 || offset+size > len(b.data) {
		gwlog.Panicf("WireBuffer: put %d bytes at offset %d out of range (len=%d)", size, offset, len(b.data))
	}
}

// PutUint8 overwrites the byte at offset
func (b *WireBuffer) PutUint8(offset int, v uint8) {
	b.checkPut(offset, 1)
	b.data[offset] = v
}

// PutUint16 overwrites 2 bytes at offset, used to back-patch a reserved field
func (b *WireBuffer) PutUint16(offset int, v uint16) {
	b.checkPut(offset, 2)
	packetEndian.PutUint16(b.data[offset:], v)
}

// PutUint32 overwrites 4 bytes at offset, used to back-patch a reserved field
func (b *WireBuffer) PutUint32(offset int, v uint32) {
	b.checkPut(offset, 4)
	packetEndian.PutUint32(b.data[offset:], v)
}

// PutFloat32 overwrites the 4 bytes at offset with the bits of f
func (b *WireBuffer) PutFloat32(offset int, f float32) {
	b.PutUint32(offset, math.Float32bits(f))
}

// PutFloat64 overwrites the 8 bytes at offset with the bits of f
func (b *WireBuffer) PutFloat64(offset int, f float64) {
	b.checkPut(offset, 8)
	packetEndian.PutUint64(b.data[offset:], math.Float64bits(f))
}

// PutBytes overwrites len(v) bytes at offset
func (b *WireBuffer) PutBytes(offset int, v []byte) {
	b.checkPut(offset, len(v))
	copy(b.data[offset:], v)
}

// PutString writes s at offset, truncated or NUL padded to exactly size bytes
func (b *WireBuffer) PutString(offset int, s string, size int) {
	b.checkPut(offset, size)
	field := b.data[offset : offset+size]
	n := copy(field, s)
	for i := n; i < size; i++ {
		field[i] = 0
	}
}

// Rpos returns the read position
func (b *WireBuffer) Rpos() int {
	return b.rpos
}

// SetRpos moves the read position, clamped to [0, Len()]
func (b *WireBuffer) SetRpos(pos int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(b.data) {
		pos = len(b.data)
	}
	b.rpos = pos
}

// Remaining returns the number of unread bytes
func (b *WireBuffer) Remaining() int {
	return len(b.data) - b.rpos
}

func (b *WireBuffer) need(n int) error {
	if n < 0 || b.Remaining() < n {
		return errors.Wrapf(ErrTruncatedData, "need %d bytes at %d, %d remaining", n, b.rpos, b.Remaining())
	}
	return nil
}

// ReadUint8 reads one byte
func (b *WireBuffer) ReadUint8() (uint8, error) {
	if err := b.need(1); err != nil {
		return 0, err
	}
	v := b.data[b.rpos]
	b.rpos += 1
	return v, nil
}

// ReadByte reads one byte
func (b *WireBuffer) ReadByte() (byte, error) {
	return b.ReadUint8()
}

// ReadBool reads one byte, any non zero value is true
func (b *WireBuffer) ReadBool() (bool, error) {
	v, err := b.ReadUint8()
	return v != 0, err
}

// ReadUint16 reads a little-endian uint16
func (b *WireBuffer) ReadUint16() (uint16, error) {
	if err := b.need(2); err != nil {
		return 0, err
	}
	v := packetEndian.Uint16(b.data[b.rpos:])
	b.rpos += 2
	return v, nil
}

// ReadUint32 reads a little-endian uint32
func (b *WireBuffer) ReadUint32() (uint32, error) {
	if err := b.need(4); err != nil {
		return 0, err
	}
	v := packetEndian.Uint32(b.data[b.rpos:])
	b.rpos += 4
	return v, nil
}

// ReadUint64 reads a little-endian uint64
func (b *WireBuffer) ReadUint64() (uint64, error) {
	if err := b.need(8); err != nil {
		return 0, err
	}
	v := packetEndian.Uint64(b.data[b.rpos:])
	b.rpos += 8
	return v, nil
}

// ReadInt16 reads a little-endian int16
func (b *WireBuffer) ReadInt16() (int16, error) {
	v, err := b.ReadUint16()
	return int16(v), err
}

// ReadInt32 reads a little-endian int32
func (b *WireBuffer) ReadInt32() (int32, error) {
	v, err := b.ReadUint32()
	return int32(v), err
}

// ReadFloat32 reads the IEEE-754 bits of a float32
func (b *WireBuffer) ReadFloat32() (float32, error) {
	v, err := b.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFloat64 reads the IEEE-754 bits of a float64
func (b *WireBuffer) ReadFloat64() (float64, error) {
	v, err := b.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadBytes reads n bytes, the returned slice is a copy
func (b *WireBuffer) ReadBytes(n int) ([]byte, error) {
	if err := b.need(n); err != nil {
		return nil, err
	}
	v := make([]byte, n)
	copy(v, b.data[b.rpos:b.rpos+n])
	b.rpos += n
	return v, nil
}

// Skip advances the read position by n bytes
func (b *WireBuffer) Skip(n int) error {
	if err := b.need(n); err != nil {
		return err
	}
	b.rpos += n
	return nil
}

// ReadVarString reads a string written by WriteVarString
func (b *WireBuffer) ReadVarString() (string, error) {
	start := b.rpos
	n, err := b.ReadUint16()
	if err != nil {
		return "", err
	}
	raw, err := b.ReadBytes(int(n))
	if err != nil {
		b.rpos = start
		return "", err
	}
	if len(raw) > 0 && raw[len(raw)-1] == 0 {
		raw = raw[:len(raw)-1]
	}
	return string(raw), nil
}

// ReadFixedString reads a NUL padded string field of exactly size bytes
func (b *WireBuffer) ReadFixedString(size int) (string, error) {
	raw, err := b.ReadBytes(size)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return string(raw), nil
}

// Bytes returns all written bytes. The slice is shared with the buffer.
func (b *WireBuffer) Bytes() []byte {
	return b.data
}

// Unread returns the unread bytes. The slice is shared with the buffer.
func (b *WireBuffer) Unread() []byte {
	return b.data[b.rpos:]
}

// Equal checks if two buffers have the same content, read positions are ignored
func (b *WireBuffer) Equal(other *WireBuffer) bool {
	return bytes.Equal(b.data, other.data)
}

// String returns the content as space separated hex bytes, for logging
func (b *WireBuffer) String() string {
	return fmt.Sprintf("% X", b.data)
}

// HexString formats bytes the same way as WireBuffer.String
func HexString(data []byte) string {
	return fmt.Sprintf("% X", data)
}

// ParseHex parses hex digits into bytes, white spaces are ignored
func ParseHex(s string) ([]byte, error) {
	out, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		return nil, errors.Wrap(err, "parse hex")
	}
	return out, nil
}

// MustParseHex is ParseHex that panics on error, used for packet templates
func MustParseHex(s string) []byte {
	b, err := ParseHex(s)
	if err != nil {
		gwlog.Panicf("MustParseHex: %v", err)
	}
	return b
}
