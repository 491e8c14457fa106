package osc

// TypeTag identifies the wire type of a single OSC argument.
type TypeTag rune

const (
	TypeInt32   TypeTag = 'i'
	TypeFloat32 TypeTag = 'f'
	TypeString  TypeTag = 's'
	TypeBlob    TypeTag = 'b'
	TypeInvalid TypeTag = 0
)

// foreignTagSizes lists tags outside the supported set whose payload size is
// still fixed by the OSC 1.0/1.1 specs. The decoder skips their payload so the
// arguments after them survive; a tag absent from this table has an
// unknowable payload and ends argument decoding.
var foreignTagSizes = map[TypeTag]int{
	'h': 8, // int64
	'd': 8, // float64
	't': 8, // timetag
	'r': 4, // RGBA color
	'c': 4, // ASCII character
	'm': 4, // MIDI message
	'T': 0, // true
	'F': 0, // false
	'N': 0, // nil
	'I': 0, // impulse
}
