// Copyright 2026 The httpwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package httpwire

import "fmt"

// ErrorKind identifies the class of a parse failure. It is a closed, fixed
// set (spec §7): every error carries exactly one of these.
type ErrorKind uint8

// ErrorKind values. ErrNone is the zero value and never appears on a
// returned *Error.
const (
	ErrNone ErrorKind = iota
	ErrMethod
	ErrURL
	ErrVersion
	ErrStatus
	ErrStatusCode
	ErrCrlfSequence
	ErrHeaderName
	ErrHeaderValue
	ErrMaxChunkLength
	ErrChunkExtensionName
	ErrChunkExtensionValue
	ErrChunkSize
	ErrURLEncodedName
	ErrURLEncodedValue
	ErrDecode
	ErrInvalidUTF8
	ErrMultipartBoundary
)

var errKindStr = [...]string{
	ErrNone:                "none",
	ErrMethod:              "method",
	ErrURL:                 "url",
	ErrVersion:             "version",
	ErrStatus:              "status",
	ErrStatusCode:          "status-code",
	ErrCrlfSequence:        "crlf-sequence",
	ErrHeaderName:          "header-name",
	ErrHeaderValue:         "header-value",
	ErrMaxChunkLength:      "max-chunk-length",
	ErrChunkExtensionName:  "chunk-extension-name",
	ErrChunkExtensionValue: "chunk-extension-value",
	ErrChunkSize:           "chunk-size",
	ErrURLEncodedName:      "url-encoded-name",
	ErrURLEncodedValue:     "url-encoded-value",
	ErrDecode:              "decode",
	ErrInvalidUTF8:         "invalid-utf8",
	ErrMultipartBoundary:   "multipart-boundary",
}

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	if int(k) >= len(errKindStr) {
		return "invalid"
	}
	return errKindStr[k]
}

// Error is returned by Resume (wrapped in a Result) when parsing fails.
// It is fatal to the Parser instance: State() transitions to a dead state,
// no further callbacks fire, and every subsequent Resume call returns the
// same Error until the Parser is re-initialized (spec §7).
type Error struct {
	Kind ErrorKind
	// Byte is the offending octet, or the most recently read byte when the
	// fault is structural rather than a single bad character.
	Byte byte
	// State is the fine-grained parser state at the moment of failure.
	State State
	// ByteCount is the total number of bytes consumed since the last
	// Init* call, not including the offending byte (i.e. its offset).
	ByteCount uint64
	// LineCount is the number of LF bytes observed so far (head/trailer
	// parsing only; always 0 for chunk-data and url-encoded bodies).
	LineCount uint64
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("httpwire: %s error at byte %q (state=%s, offset=%d, line=%d)",
		e.Kind, e.Byte, e.State, e.ByteCount, e.LineCount)
}
