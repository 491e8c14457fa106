package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// MaxPacketSize is the largest datagram this package will produce or accept,
// the maximum UDP payload over IPv4.
const MaxPacketSize = 65507

const bit32Size = 4

////
// De/Encoding functions
////

// parsePaddedString reads a NUL-terminated, 4-byte padded OSC string from the
// start of data. Returns the string and the number of bytes consumed,
// including terminator and padding.
func parsePaddedString(data []byte) (string, int, error) {
	pos := bytes.IndexByte(data, 0)
	if pos == -1 {
		return "", 0, fmt.Errorf("parsePaddedString: missing terminator: %w", ErrTruncated)
	}

	n := pos + 1
	n += padBytesNeeded(n)
	if n > len(data) {
		return "", 0, fmt.Errorf("parsePaddedString: short padding: %w", ErrTruncated)
	}

	return string(data[:pos]), n, nil
}

// writePaddedString writes str to b with a NUL terminator and padding bytes
// up to the next 4-byte boundary. Returns the number of bytes written.
func writePaddedString(str string, b *bytes.Buffer) int {
	b.WriteString(str)
	b.WriteByte(0)

	n := len(str) + 1
	pad := padBytesNeeded(n)
	for i := 0; i < pad; i++ {
		b.WriteByte(0)
	}

	return n + pad
}

// parseBlob reads an OSC blob (4-byte big-endian length prefix, raw bytes,
// padding) from the start of data. The returned slice is a copy.
func parseBlob(data []byte) ([]byte, int, error) {
	if len(data) < bit32Size {
		return nil, 0, fmt.Errorf("parseBlob: missing length prefix: %w", ErrTruncated)
	}

	blobLen := int(int32(binary.BigEndian.Uint32(data[:bit32Size])))
	if blobLen < 0 || blobLen > MaxPacketSize {
		return nil, 0, fmt.Errorf("parseBlob: invalid blob length %d: %w", blobLen, ErrBadArgument)
	}

	n := bit32Size + blobLen
	n += padBytesNeeded(n)
	if n > len(data) {
		return nil, 0, fmt.Errorf("parseBlob: blob length %d exceeds packet: %w", blobLen, ErrTruncated)
	}

	buf := make([]byte, blobLen)
	copy(buf, data[bit32Size:])
	return buf, n, nil
}

// writeBlob writes data as an OSC blob into b, padding to 32-bit alignment.
func writeBlob(data []byte, b *bytes.Buffer) int {
	var prefix [bit32Size]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(len(data)))
	b.Write(prefix[:])
	b.Write(data)

	n := bit32Size + len(data)
	pad := padBytesNeeded(n)
	for i := 0; i < pad; i++ {
		b.WriteByte(0)
	}

	return n + pad
}

// padBytesNeeded determines how many bytes are needed to fill up to the next
// 4 byte length.
func padBytesNeeded(elementLen int) int {
	return (4 - (elementLen % 4)) % 4
}
