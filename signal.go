// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package syncsim

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// A Signal is the value carried by a wire: either Unknown (not yet driven) or
// a 32 bits data word. The word can be read as unsigned or two's complement
// signed.
//
// The zero value is Unknown.
//
type Signal struct {
	w     uint32
	known bool
}

// Unknown is the value of an output that has not been driven yet.
//
var Unknown = Signal{}

// Data returns a known signal holding the word w.
//
func Data(w uint32) Signal { return Signal{w: w, known: true} }

// Int returns a known signal holding the two's complement encoding of v.
//
func Int(v int32) Signal { return Signal{w: uint32(v), known: true} }

// Bool returns Data(1) if b is true, Data(0) otherwise.
//
func Bool(b bool) Signal {
	if b {
		return Data(1)
	}
	return Data(0)
}

// Known returns true if s is not Unknown.
//
func (s Signal) Known() bool { return s.known }

// Uint32 returns the word held by s. It fails with a *ConversionError if s is
// Unknown.
//
func (s Signal) Uint32() (uint32, error) {
	if !s.known {
		return 0, &ConversionError{To: "uint32"}
	}
	return s.w, nil
}

// Int32 returns the word held by s interpreted as a signed integer. It fails
// with a *ConversionError if s is Unknown.
//
func (s Signal) Int32() (int32, error) {
	if !s.known {
		return 0, &ConversionError{To: "int32"}
	}
	return int32(s.w), nil
}

// String returns "-" for Unknown and the unsigned decimal value otherwise.
//
func (s Signal) String() string {
	if !s.known {
		return "-"
	}
	return strconv.FormatUint(uint64(s.w), 10)
}

// Hex returns the value formatted as 0x%08x, or "-" for Unknown.
//
func (s Signal) Hex() string {
	if !s.known {
		return "-"
	}
	return fmt.Sprintf("0x%08x", s.w)
}

// MarshalJSON encodes Unknown as null and data as an unsigned number.
//
func (s Signal) MarshalJSON() ([]byte, error) {
	if !s.known {
		return []byte("null"), nil
	}
	return strconv.AppendUint(nil, uint64(s.w), 10), nil
}

// UnmarshalJSON accepts null, unsigned and negative 32 bits integers.
//
func (s *Signal) UnmarshalJSON(b []byte) error {
	str := string(b)
	if str == "null" {
		*s = Unknown
		return nil
	}
	if len(str) > 0 && str[0] == '-' {
		v, err := strconv.ParseInt(str, 10, 32)
		if err != nil {
			return errors.Wrap(err, "invalid signal value")
		}
		*s = Int(int32(v))
		return nil
	}
	v, err := strconv.ParseUint(str, 10, 32)
	if err != nil {
		return errors.Wrap(err, "invalid signal value")
	}
	*s = Data(uint32(v))
	return nil
}
