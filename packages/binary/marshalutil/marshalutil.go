// Package marshalutil offers a cursor based utility to compose and parse the binary
// representations of ledger entities. All multi-byte integers are written in network
// byte order (big-endian).
package marshalutil

import (
	"github.com/cockroachdb/errors"
)

// ByteSize contains the amount of bytes of a marshaled byte value.
const ByteSize = 1

// MarshalUtil is a utility for reading from and writing to a byte buffer. It keeps
// independent read and write offsets so that partially parsed structures can hand the
// remaining bytes to nested parsers.
type MarshalUtil struct {
	bytes       []byte
	readOffset  int
	writeOffset int
	size        int
}

// New creates a new MarshalUtil. If an initial byte slice is provided, it is used as the
// read buffer; otherwise an empty write buffer is created.
func New(optionalData ...[]byte) *MarshalUtil {
	if len(optionalData) >= 1 {
		return &MarshalUtil{
			bytes: optionalData[0],
			size:  len(optionalData[0]),
		}
	}

	return &MarshalUtil{
		bytes: make([]byte, 0),
	}
}

// WriteBytes appends the given bytes to the internal buffer.
func (util *MarshalUtil) WriteBytes(bytes []byte) *MarshalUtil {
	writeEndOffset := util.expandWriteCapacity(len(bytes))

	copy(util.bytes[util.writeOffset:writeEndOffset], bytes)

	util.WriteSeek(writeEndOffset)

	return util
}

// WriteByte appends the given byte to the internal buffer.
func (util *MarshalUtil) WriteByte(b byte) *MarshalUtil {
	writeEndOffset := util.expandWriteCapacity(ByteSize)

	util.bytes[util.writeOffset] = b

	util.WriteSeek(writeEndOffset)

	return util
}

// ReadBytes unmarshals the given amount of bytes from the internal read buffer. It
// returns a view into the underlying buffer, so callers that retain the result beyond
// the lifetime of the buffer need to copy it.
func (util *MarshalUtil) ReadBytes(length int) ([]byte, error) {
	readEndOffset, err := util.checkReadCapacity(length)
	if err != nil {
		return nil, err
	}

	defer util.ReadSeek(readEndOffset)

	return util.bytes[util.readOffset:readEndOffset], nil
}

// ReadByte unmarshals a single byte from the internal read buffer.
func (util *MarshalUtil) ReadByte() (byte, error) {
	readEndOffset, err := util.checkReadCapacity(ByteSize)
	if err != nil {
		return 0, err
	}

	defer util.ReadSeek(readEndOffset)

	return util.bytes[util.readOffset], nil
}

// ReadRemainingBytes unmarshals all bytes that have not been read, yet.
func (util *MarshalUtil) ReadRemainingBytes() []byte {
	defer util.ReadSeek(util.size)

	return util.bytes[util.readOffset:]
}

// Bytes returns the internal buffer. If the optional clone flag is set, the buffer is
// copied first.
func (util *MarshalUtil) Bytes(clone ...bool) []byte {
	if len(clone) >= 1 && clone[0] {
		clonedBytes := make([]byte, len(util.bytes))
		copy(clonedBytes, util.bytes)

		return clonedBytes
	}

	return util.bytes
}

// ReadOffset returns the current read offset of the internal buffer.
func (util *MarshalUtil) ReadOffset() int {
	return util.readOffset
}

// WriteOffset returns the current write offset of the internal buffer.
func (util *MarshalUtil) WriteOffset() int {
	return util.writeOffset
}

// ReadSeek sets the read offset of the internal buffer. A negative offset seeks
// relative to the current position.
func (util *MarshalUtil) ReadSeek(offset int) {
	if offset < 0 {
		util.readOffset += offset

		return
	}

	util.readOffset = offset
}

// WriteSeek sets the write offset of the internal buffer.
func (util *MarshalUtil) WriteSeek(offset int) {
	util.writeOffset = offset
}

// checkReadCapacity checks if the internal read buffer holds the given amount of
// remaining bytes and returns the position of the read cursor after the read.
func (util *MarshalUtil) checkReadCapacity(length int) (readEndOffset int, err error) {
	readEndOffset = util.readOffset + length

	if readEndOffset > util.size {
		err = errors.Errorf("tried to read %d bytes at offset %d while only %d bytes are available", length, util.readOffset, util.size-util.readOffset)
	}

	return
}

// expandWriteCapacity grows the internal write buffer so that it can hold the given
// amount of additional bytes and returns the position of the write cursor afterwards.
func (util *MarshalUtil) expandWriteCapacity(length int) (writeEndOffset int) {
	writeEndOffset = util.writeOffset + length

	if writeEndOffset > util.size {
		extendedBytes := make([]byte, writeEndOffset-util.size)
		util.bytes = append(util.bytes, extendedBytes...)
		util.size = writeEndOffset
	}

	return
}
