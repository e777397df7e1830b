// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rtlsim

import (
	"strconv"
	"strings"
)

// ConflictKind qualifies a ConflictError.
//
type ConflictKind uint8

// Conflict kinds.
//
const (
	// MergeConflict: a connectivity group holds more than one pre-owned cell.
	MergeConflict ConflictKind = iota
	// WidthMismatch: a pre-owned cell is narrower than its group.
	WidthMismatch
	// ResetConflict: a cell is declared as a register with different reset
	// values, or a constant is declared as a register.
	ResetConflict
)

func (k ConflictKind) String() string {
	switch k {
	case MergeConflict:
		return "merge conflict"
	case WidthMismatch:
		return "width mismatch"
	case ResetConflict:
		return "register conflict"
	}
	return "ConflictKind(" + strconv.Itoa(int(k)) + ")"
}

// A ConflictError is returned by NewCircuit when a connectivity group cannot
// be resolved to a single storage cell. Group lists the full names of the
// group members.
//
type ConflictError struct {
	Kind   ConflictKind
	Group  []string
	Detail string
}

func (e *ConflictError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(" in group {")
	b.WriteString(strings.Join(e.Group, ", "))
	b.WriteByte('}')
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// A ResolveError is returned by NewCircuit when a module declaration refers to
// something that is not part of the elaborated circuit, or declares a
// reaction without a function.
//
type ResolveError struct {
	Module   string
	Reaction string
	Port     string
	Reason   string
}

func (e *ResolveError) Error() string {
	s := e.Module
	if e.Reaction != "" {
		s += ": reaction " + e.Reaction
	}
	if e.Port != "" {
		s += ": port " + e.Port
	}
	return s + ": " + e.Reason
}

// A NonTerminationError is returned when combinational settlement does not
// reach a fixpoint within the configured iteration cap. It usually denotes a
// combinational loop. Pending holds the names of the reactions still queued.
//
type NonTerminationError struct {
	Iterations int
	Pending    []string
}

func (e *NonTerminationError) Error() string {
	return "combinational logic did not settle after " + strconv.Itoa(e.Iterations) +
		" reactions; pending: " + strings.Join(e.Pending, ", ")
}
