// seehuhn.de/go/fractal - fractal generation and rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package fractal

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is matched by every validation failure in this module.
var ErrInvalidParameter = errors.New("invalid parameter")

// ErrIO is matched by every failure to write an exported file.
var ErrIO = errors.New("i/o error")

// ParamError describes a rejected parameter value.
type ParamError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Unwrap returns [ErrInvalidParameter].
func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}

// InvalidParameter returns a [*ParamError] for the given field.
func InvalidParameter(field string, value any, reason string) error {
	return &ParamError{Field: field, Value: value, Reason: reason}
}

// IOError reports a failed export. The underlying error is kept unchanged
// and can be retrieved with [errors.As] or [errors.Unwrap].
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return "export " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports whether target is [ErrIO].
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}
