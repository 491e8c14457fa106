package osc

import "errors"

// Decode and encode failures wrap one of these sentinels, so callers can
// classify without string matching.
var (
	// ErrTruncated marks a packet that ends before its declared contents do:
	// a missing NUL terminator, a short argument payload, or a buffer whose
	// length isn't 32-bit aligned.
	ErrTruncated = errors.New("osc: truncated packet")

	// ErrInvalidAddress marks an address that is empty, doesn't begin with
	// '/', or contains a NUL byte.
	ErrInvalidAddress = errors.New("osc: invalid address")

	// ErrInvalidTypeTags marks a type tag string that doesn't begin with ','.
	ErrInvalidTypeTags = errors.New("osc: invalid type tag string")

	// ErrTrailingBytes marks bytes left over after every tagged argument has
	// been consumed.
	ErrTrailingBytes = errors.New("osc: trailing bytes after arguments")

	// ErrBadArgument marks an argument value that can't be encoded or
	// inferred: an embedded NUL, an oversized blob, an unparseable token.
	ErrBadArgument = errors.New("osc: bad argument")

	// ErrUnsupported marks an attempt to encode an argument kind the wire
	// format half of this package doesn't carry, such as Unknown.
	ErrUnsupported = errors.New("osc: unsupported argument type")
)
