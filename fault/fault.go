// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type AuthorisationError GenericError
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type PersistenceError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	AccountNotFound              = NotFoundError("account not found")
	AlreadyInitialised           = ExistsError("already initialised")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ChecksumMismatch             = ProcessError("checksum mismatch")
	EmptyCID                     = InvalidError("cid is empty")
	InvalidAccount               = InvalidError("invalid account")
	InvalidBackend               = InvalidError("invalid snapshot backend")
	InvalidCID                   = InvalidError("invalid cid")
	InvalidCount                 = InvalidError("invalid count")
	InvalidCredential            = InvalidError("invalid credential")
	InvalidIpAddress             = InvalidError("invalid IP Address")
	InvalidKeyLength             = LengthError("invalid key length")
	InvalidKeyType               = InvalidError("invalid key type")
	InvalidSignature             = InvalidError("invalid signature")
	InvalidStructPointer         = InvalidError("invalid struct pointer")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	MissingParameters            = InvalidError("missing parameters")
	NotConfigurationTable        = InvalidError("configuration did not return a table")
	NotInitialised               = NotFoundError("not initialised")
	NotPublicKey                 = InvalidError("not public key")
	PersistenceFailed            = PersistenceError("persistence failed")
	PersistenceTimeout           = PersistenceError("persistence timed out")
	RateLimiting                 = InvalidError("rate limit exceeded")
	RecordTooLong                = LengthError("record too long")
	RequestReplayed              = AuthorisationError("request replayed")
	SignatureExpired             = AuthorisationError("signature expired")
	SignatureRequired            = AuthorisationError("signature required")
	SnapshotDamaged              = PersistenceError("snapshot damaged")
	Unauthorised                 = AuthorisationError("unauthorised")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AuthorisationError) Error() string { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e LengthError) Error() string        { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e PersistenceError) Error() string   { return string(e) }
func (e ProcessError) Error() string       { return string(e) }

// determine the class of an error
//
// wrapped errors are unwrapped so a class survives fmt.Errorf("…: %w")
func IsErrAuthorisation(e error) bool { var x AuthorisationError; return errors.As(e, &x) }
func IsErrExists(e error) bool        { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool       { var x InvalidError; return errors.As(e, &x) }
func IsErrLength(e error) bool        { var x LengthError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool      { var x NotFoundError; return errors.As(e, &x) }
func IsErrPersistence(e error) bool   { var x PersistenceError; return errors.As(e, &x) }
func IsErrProcess(e error) bool       { var x ProcessError; return errors.As(e, &x) }

// persistenceFailure - a persistence class error carrying its cause
type persistenceFailure struct {
	class PersistenceError
	cause error
}

// Persistence - wrap an I/O or encoding error so that it is reported
// as a persistence error while keeping the original cause
//
// a nil cause returns nil, an existing persistence error is returned unchanged
func Persistence(cause error) error {
	if nil == cause {
		return nil
	}
	if IsErrPersistence(cause) {
		return cause
	}
	return &persistenceFailure{
		class: PersistenceFailed,
		cause: cause,
	}
}

func (p *persistenceFailure) Error() string {
	return string(p.class) + ": " + p.cause.Error()
}

// Unwrap - allow errors.Is/As to reach the cause
func (p *persistenceFailure) Unwrap() error { return p.cause }

// As - expose the class to errors.As
func (p *persistenceFailure) As(target interface{}) bool {
	if t, ok := target.(*PersistenceError); ok {
		*t = p.class
		return true
	}
	return false
}

// Is - match the class value with errors.Is
func (p *persistenceFailure) Is(target error) bool {
	return target == error(p.class)
}
