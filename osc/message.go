package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// Message represents a single OSC message. An OSC message consists of an OSC
// address and zero or more typed arguments.
type Message struct {
	Address   string
	Arguments []Argument
}

// NewMessage returns a new Message. The address parameter is the OSC address.
func NewMessage(addr string, args ...Argument) *Message {
	return &Message{Address: addr, Arguments: args}
}

// Append appends the given arguments to the arguments list.
func (m *Message) Append(args ...Argument) {
	m.Arguments = append(m.Arguments, args...)
}

// Clear clears the OSC address and all arguments.
func (m *Message) Clear() {
	m.Address = ""
	m.Arguments = m.Arguments[:0]
}

// TypeTags returns the type tag string: a leading ',' followed by one tag
// character per argument, in order. A message without arguments yields ",".
func (m *Message) TypeTags() string {
	tags := make([]byte, 0, len(m.Arguments)+1)
	tags = append(tags, ',')
	for _, a := range m.Arguments {
		tags = append(tags, byte(a.TypeTag()))
	}
	return string(tags)
}

// validate checks the Message invariants shared by encode and the send path.
func (m *Message) validate() error {
	if m.Address == "" || m.Address[0] != '/' {
		return fmt.Errorf("address %q: %w", m.Address, ErrInvalidAddress)
	}
	if strings.IndexByte(m.Address, 0) != -1 {
		return fmt.Errorf("address contains NUL: %w", ErrInvalidAddress)
	}
	return nil
}

// String implements the fmt.Stringer interface.
func (m *Message) String() string {
	if m == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.Address)
	b.WriteByte(' ')
	b.WriteString(m.TypeTags())
	for _, a := range m.Arguments {
		b.WriteByte(' ')
		if s, ok := a.(String); ok {
			fmt.Fprintf(&b, "%q", string(s))
			continue
		}
		fmt.Fprintf(&b, "%v", a)
	}
	return b.String()
}

// MarshalBinary serializes the OSC message to a byte buffer with the
// following format:
// 1. OSC Address
// 2. OSC Type Tag String
// 3. OSC Arguments
// Encoding fails only if the message violates its invariants or carries an
// Unknown argument.
func (m *Message) MarshalBinary() ([]byte, error) {
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("MarshalBinary: %w", err)
	}

	data := new(bytes.Buffer)
	writePaddedString(m.Address, data)
	writePaddedString(m.TypeTags(), data)

	for _, arg := range m.Arguments {
		switch t := arg.(type) {
		default:
			return nil, fmt.Errorf("MarshalBinary: %w: %T", ErrUnsupported, t)

		case Int32:
			var buf [bit32Size]byte
			binary.BigEndian.PutUint32(buf[:], uint32(t))
			data.Write(buf[:])

		case Float32:
			var buf [bit32Size]byte
			binary.BigEndian.PutUint32(buf[:], math.Float32bits(float32(t)))
			data.Write(buf[:])

		case String:
			if strings.IndexByte(string(t), 0) != -1 {
				return nil, fmt.Errorf("MarshalBinary: string contains NUL: %w", ErrBadArgument)
			}
			writePaddedString(string(t), data)

		case Blob:
			if len(t) > MaxPacketSize {
				return nil, fmt.Errorf("MarshalBinary: blob of %d bytes: %w", len(t), ErrBadArgument)
			}
			writeBlob(t, data)
		}
	}

	if data.Len() > MaxPacketSize {
		return nil, fmt.Errorf("MarshalBinary: packet too large: %d", data.Len())
	}

	return data.Bytes(), nil
}

// ParseMessage decodes a single OSC message from one datagram payload.
func ParseMessage(data []byte) (*Message, error) {
	m := &Message{}
	if err := m.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return m, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface. It
// never panics on malformed input; every reject path returns an error
// wrapping one of the package sentinels.
//
// An argument with an unrecognized tag becomes an Unknown placeholder. Tags
// with a size fixed by the OSC spec are skipped over so later arguments still
// decode; a tag of unknowable size ends decoding, marking the remaining tags
// Unknown, since nothing past it in the payload is addressable.
func (m *Message) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("UnmarshalBinary: empty packet: %w", ErrTruncated)
	}
	if len(data) > MaxPacketSize {
		return fmt.Errorf("UnmarshalBinary: %d bytes exceeds max packet size: %w", len(data), ErrBadArgument)
	}
	if data[0] != '/' {
		return fmt.Errorf("UnmarshalBinary: not an OSC message: %w", ErrInvalidAddress)
	}
	if len(data)%bit32Size != 0 {
		return fmt.Errorf("UnmarshalBinary: %d bytes isn't 32-bit aligned: %w", len(data), ErrTruncated)
	}

	addr, n, err := parsePaddedString(data)
	if err != nil {
		return fmt.Errorf("UnmarshalBinary: address: %w", err)
	}
	m.Address = addr
	m.Arguments = nil

	rest := data[n:]
	if len(rest) == 0 {
		// Some senders omit the type tag string for zero-argument messages;
		// tolerate that on decode.
		return nil
	}

	tags, n, err := parsePaddedString(rest)
	if err != nil {
		return fmt.Errorf("UnmarshalBinary: type tags: %w", err)
	}
	if len(tags) == 0 || tags[0] != ',' {
		return fmt.Errorf("UnmarshalBinary: %q: %w", tags, ErrInvalidTypeTags)
	}

	rest = rest[n:]
	return m.parseArguments(tags[1:], rest)
}

// parseArguments consumes one argument payload per tag character. It must
// account for every remaining byte: too few is ErrTruncated, too many is
// ErrTrailingBytes, so the tag count and the argument blocks always agree.
func (m *Message) parseArguments(tags string, rest []byte) error {
	if len(tags) == 0 {
		if len(rest) != 0 {
			return fmt.Errorf("parseArguments: %d bytes left over: %w", len(rest), ErrTrailingBytes)
		}
		return nil
	}
	m.Arguments = make([]Argument, 0, len(tags))

	for i := 0; i < len(tags); i++ {
		tag := TypeTag(tags[i])
		switch tag {
		case TypeInt32:
			if len(rest) < bit32Size {
				return fmt.Errorf("parseArguments: 'i' at %d: %w", i, ErrTruncated)
			}
			m.Arguments = append(m.Arguments, Int32(binary.BigEndian.Uint32(rest)))
			rest = rest[bit32Size:]

		case TypeFloat32:
			if len(rest) < bit32Size {
				return fmt.Errorf("parseArguments: 'f' at %d: %w", i, ErrTruncated)
			}
			m.Arguments = append(m.Arguments, Float32(math.Float32frombits(binary.BigEndian.Uint32(rest))))
			rest = rest[bit32Size:]

		case TypeString:
			str, n, err := parsePaddedString(rest)
			if err != nil {
				return fmt.Errorf("parseArguments: 's' at %d: %w", i, err)
			}
			m.Arguments = append(m.Arguments, String(str))
			rest = rest[n:]

		case TypeBlob:
			buf, n, err := parseBlob(rest)
			if err != nil {
				return fmt.Errorf("parseArguments: 'b' at %d: %w", i, err)
			}
			m.Arguments = append(m.Arguments, Blob(buf))
			rest = rest[n:]

		default:
			size, sized := foreignTagSizes[tag]
			if !sized {
				// No way to tell where this argument ends; everything from
				// here on is unaddressable but the message is still usable.
				for ; i < len(tags); i++ {
					m.Arguments = append(m.Arguments, Unknown{Tag: TypeTag(tags[i])})
				}
				return nil
			}
			if len(rest) < size {
				return fmt.Errorf("parseArguments: %q at %d: %w", rune(tag), i, ErrTruncated)
			}
			m.Arguments = append(m.Arguments, Unknown{Tag: tag})
			rest = rest[size:]
		}
	}

	if len(rest) != 0 {
		return fmt.Errorf("parseArguments: %d bytes left over: %w", len(rest), ErrTrailingBytes)
	}
	return nil
}
