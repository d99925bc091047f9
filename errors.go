/*
 * errors.go, part of nebprep.
 *
 * Copyright 2024 The nebprep authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package nebprep

// Error is the interface for errors that all packages in this library
// implement. The Decorate method allows adding and retrieving information from
// the error without changing its type or wrapping it around something else.
// The decoration slice should contain the functions in the calling stack plus,
// for each function, any relevant extra information in the format
// "FunctionName: extra info". If passed an empty string, Decorate just returns
// the current slice without appending anything.
type Error interface {
	Error() string
	Decorate(string) []string
}

type errKind int

const (
	kindExternal errKind = iota
	kindInvalidArgument
	kindInvalidPermutation
	kindIO
)

// CError is the concrete error type of the library. It fulfills Error.
type CError struct {
	kind errKind
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

// Decorate adds new information to the error.
func (err CError) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries
	//to alter the receiver, it works, since err.deco is a slice, and hence a
	//pointer itself.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func invalidArgument(msg string, caller string) CError {
	return CError{kind: kindInvalidArgument, msg: msg, deco: []string{caller}}
}

func invalidPermutation(msg string, caller string) CError {
	return CError{kind: kindInvalidPermutation, msg: msg, deco: []string{caller}}
}

func ioError(msg string, caller string) CError {
	return CError{kind: kindIO, msg: msg, deco: []string{caller}}
}

// IsInvalidArgument reports whether err was caused by an out-of-range or
// otherwise malformed argument, as opposed to an io problem or a malformed
// permutation.
func IsInvalidArgument(err error) bool {
	c, ok := err.(CError)
	return ok && c.kind == kindInvalidArgument
}

// IsInvalidPermutation reports whether err was caused by a reindexing slice
// that is not a bijection over the atom indices, or has the wrong length.
func IsInvalidPermutation(err error) bool {
	c, ok := err.(CError)
	return ok && c.kind == kindInvalidPermutation
}

// NewInvalidArgument builds an error classified as an invalid-argument
// failure. It is meant for the subpackages of this library; callers normally
// only ever need the Is predicates.
func NewInvalidArgument(msg, caller string) Error {
	return invalidArgument(msg, caller)
}

// NewInvalidPermutation is the NewInvalidArgument counterpart for malformed
// reindexing slices.
func NewInvalidPermutation(msg, caller string) Error {
	return invalidPermutation(msg, caller)
}

// Decorated returns err with caller appended to its decoration chain, when
// err supports one. It is the helper the subpackages use, since they cannot
// reach into CError; for a CError the returned error carries the grown chain,
// because Decorate on a value receiver cannot grow it in place.
func Decorated(err error, caller string) error {
	if err2, ok := err.(CError); ok {
		err2.deco = err2.Decorate(caller)
		return err2
	}
	if err2, ok := err.(Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}

func errDecorate(err error, caller string) error {
	err2, ok := err.(CError)
	if !ok {
		//errors from outside the library (say, os) get wrapped here so the
		//decoration chain is not lost.
		return CError{kind: kindExternal, msg: err.Error(), deco: []string{caller}}
	}
	err2.deco = err2.Decorate(caller)
	return err2
}
