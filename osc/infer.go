package osc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// InferArgument converts one raw operator token into a typed argument. The
// rule is ordered and purely syntactic:
//
//  1. A token wrapped in a matching pair of double quotes is a String, with
//     the quotes stripped.
//  2. A token containing a '.' must parse as a float32 literal and becomes a
//     Float32.
//  3. Anything else must parse as a base-10 int32 literal and becomes an
//     Int32.
//
// So `"1.0"` is the string 1.0 while 1.0 is the float 1.0. Scientific
// notation, negative zero and out-of-range literals are rejected rather than
// guessed at, as is the empty token.
func InferArgument(token string) (Argument, error) {
	if token == "" {
		return nil, fmt.Errorf("InferArgument: empty token: %w", ErrBadArgument)
	}

	if len(token) >= 2 && token[0] == '"' && token[len(token)-1] == '"' {
		return String(token[1 : len(token)-1]), nil
	}

	if strings.Contains(token, ".") {
		if strings.ContainsAny(token, "eE") {
			return nil, fmt.Errorf("InferArgument: scientific notation %q: %w", token, ErrBadArgument)
		}
		f, err := strconv.ParseFloat(token, 32)
		if err != nil {
			return nil, fmt.Errorf("InferArgument: float %q: %w", token, ErrBadArgument)
		}
		if f == 0 && math.Signbit(f) {
			return nil, fmt.Errorf("InferArgument: negative zero: %w", ErrBadArgument)
		}
		return Float32(f), nil
	}

	i, err := strconv.ParseInt(token, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("InferArgument: integer %q: %w", token, ErrBadArgument)
	}
	return Int32(i), nil
}
