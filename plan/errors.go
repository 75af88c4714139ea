// Copyright 2017 The Godeco Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plan

import (
	"errors"

	"github.com/cpmech/gosl/io"
)

// Kind classifies engine errors
type Kind int

const (
	// KindConfiguration indicates invalid settings or gas data
	KindConfiguration Kind = iota + 1

	// KindPlan indicates an inconsistent dive plan or profile input
	KindPlan

	// KindNumeric indicates a failed numerical procedure (root finder
	// bracket or iteration cap, insufficient off-gassing gradient)
	KindNumeric

	// KindUnsupported indicates an operation a planner does not implement
	KindUnsupported
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration error"
	case KindPlan:
		return "plan error"
	case KindNumeric:
		return "numeric error"
	case KindUnsupported:
		return "unsupported"
	}
	return "unknown error"
}

// Error is the engine error type. All errors are reported
// synchronously at the call that produced them; no partial results
type Error struct {
	Kind Kind
	Msg  string
}

// Error implements the error interface
func (o *Error) Error() string {
	return o.Kind.String() + ": " + o.Msg
}

// CfgErr returns a new configuration error
func CfgErr(msg string, prm ...interface{}) *Error {
	return &Error{Kind: KindConfiguration, Msg: io.Sf(msg, prm...)}
}

// PlanErr returns a new plan error
func PlanErr(msg string, prm ...interface{}) *Error {
	return &Error{Kind: KindPlan, Msg: io.Sf(msg, prm...)}
}

// NumErr returns a new numeric error
func NumErr(msg string, prm ...interface{}) *Error {
	return &Error{Kind: KindNumeric, Msg: io.Sf(msg, prm...)}
}

// UnsupErr returns a new unsupported-operation error
func UnsupErr(msg string, prm ...interface{}) *Error {
	return &Error{Kind: KindUnsupported, Msg: io.Sf(msg, prm...)}
}

// IsKind reports whether err is an engine error of the given kind
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
