package netutil

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack"
)

// RecordPacker encodes character records for the storage backends that keep them as blobs
type RecordPacker interface {
	PackRecord(rec interface{}) ([]byte, error)
	UnpackRecord(data []byte, rec interface{}) error
}

// RECORD_PACKER is shared by the blob storage backends
var RECORD_PACKER RecordPacker = MessagePackRecordPacker{}

// MessagePackRecordPacker stores records in MessagePack, field names included
type MessagePackRecordPacker struct{}

func (MessagePackRecordPacker) PackRecord(rec interface{}) ([]byte, error) {
	var buffer bytes.Buffer
	if err := msgpack.NewEncoder(&buffer).Encode(rec); err != nil {
		return nil, errors.Wrapf(err, "pack %T", rec)
	}
	return buffer.Bytes(), nil
}

func (MessagePackRecordPacker) UnpackRecord(data []byte, rec interface{}) error {
	if len(data) == 0 {
		return errors.Wrapf(ErrTruncatedData, "unpack %T: empty record", rec)
	}
	return errors.Wrapf(msgpack.Unmarshal(data, rec), "unpack %T", rec)
}
