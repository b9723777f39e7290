// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package syncsim

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnbuilt is returned by Simulator methods that require a valid evaluation
// plan when the last build failed or a fatal evaluation error occurred.
//
var ErrUnbuilt = errors.New("simulator not built")

// DuplicateIDError reports two components sharing the same id.
//
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return "duplicate component id " + e.ID
}

// UnresolvedInputError reports an input port bound to a component or output
// that does not exist.
//
type UnresolvedInputError struct {
	ID    string // component owning the input
	Port  string // input port name
	Input Input  // dangling reference
}

func (e *UnresolvedInputError) Error() string {
	return "input " + e.ID + "." + e.Port + " connected to unknown output " + e.Input.String()
}

// PortError reports an invalid port declaration.
//
type PortError struct {
	ID   string
	Port string
	Msg  string
}

func (e *PortError) Error() string {
	return e.ID + "." + e.Port + ": " + e.Msg
}

// CycleError reports a combinatorial loop. IDs lists the components taking
// part in the loop, in store order.
//
type CycleError struct {
	IDs []string
}

func (e *CycleError) Error() string {
	return "combinatorial cycle between " + strings.Join(e.IDs, ", ")
}

// ConversionError is returned when reading an Unknown Signal as a number.
//
type ConversionError struct {
	To string
}

func (e *ConversionError) Error() string {
	return "cannot convert unknown signal to " + e.To
}

// ConditionKind classifies runtime conditions.
//
type ConditionKind int

// Condition kinds.
const (
	Assert  ConditionKind = iota // assertion failure
	Halt                         // explicit halt request
	Illegal                      // illegal operation or out of range access
)

func (k ConditionKind) String() string {
	switch k {
	case Assert:
		return "assert"
	case Halt:
		return "halt"
	case Illegal:
		return "illegal"
	}
	return "unknown"
}

// A Condition is a recoverable signal raised by a component during
// evaluation. It stops the current cycle but leaves the state consistent.
//
type Condition struct {
	ID   string // originating component
	Kind ConditionKind
	Msg  string
}

// NewCondition returns a new Condition for the component id.
//
func NewCondition(id string, kind ConditionKind, format string, args ...interface{}) *Condition {
	return &Condition{ID: id, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func (c *Condition) Error() string {
	return c.Kind.String() + " in " + c.ID + ": " + c.Msg
}
