package osc

import (
	"fmt"
	"strconv"
)

// Argument is one typed OSC argument. The concrete types are Int32, Float32,
// String, Blob and Unknown; no other implementations exist.
type Argument interface {
	TypeTag() TypeTag
}

// Int32 is an 'i' argument.
type Int32 int32

// Float32 is an 'f' argument.
type Float32 float32

// String is an 's' argument. It must not contain a NUL byte; MarshalBinary
// rejects one that does.
type String string

// Blob is a 'b' argument: length-prefixed raw bytes.
type Blob []byte

// Unknown stands in for an argument whose type tag the decoder does not
// support. It carries the tag but no value, so the rest of the message stays
// usable instead of the whole datagram being dropped.
type Unknown struct {
	Tag TypeTag
}

func (Int32) TypeTag() TypeTag   { return TypeInt32 }
func (Float32) TypeTag() TypeTag { return TypeFloat32 }
func (String) TypeTag() TypeTag  { return TypeString }
func (Blob) TypeTag() TypeTag    { return TypeBlob }

func (u Unknown) TypeTag() TypeTag { return u.Tag }

func (a Int32) String() string   { return strconv.FormatInt(int64(a), 10) }
func (a Float32) String() string { return strconv.FormatFloat(float64(a), 'g', -1, 32) }

func (b Blob) String() string { return fmt.Sprintf("blob[%d]", len(b)) }

func (u Unknown) String() string { return fmt.Sprintf("?(%c)", rune(u.Tag)) }
