// Copyright 2026 The httpwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package httpwire

import "unicode/utf8"

// C2: percent-decoder (spec §4.2). Decode is a non-resumable utility: it
// operates over a byte sequence that is already fully available (unlike the
// CORE state machines, which are fed fragment-by-fragment).

// Decode scans b, decoding "+" to a single space and "%HH" to the byte HH,
// and invokes sink with each maximal unmodified run plus each decoded
// replacement byte, in order. sink returning false stops the scan
// immediately (Decode then returns nil; the caller asked to stop, which is
// not an error).
//
// If a '%' is not followed by two hex digits, Decode stops and returns a
// *Error with Kind ErrDecode and Byte set to the first offending octet (or
// 0 if the input ends before a second digit can be read).
func Decode(b []byte, sink func([]byte) bool) *Error {
	runStart := 0
	i := 0
	for i < len(b) {
		switch b[i] {
		case '+':
			if i > runStart {
				if !sink(b[runStart:i]) {
					return nil
				}
			}
			var sp [1]byte
			sp[0] = ' '
			if !sink(sp[:]) {
				return nil
			}
			i++
			runStart = i
		case '%':
			if i > runStart {
				if !sink(b[runStart:i]) {
					return nil
				}
			}
			if i+1 >= len(b) {
				return &Error{Kind: ErrDecode, Byte: 0}
			}
			h1 := b[i+1]
			v1 := hexValue(h1)
			if v1 < 0 {
				return &Error{Kind: ErrDecode, Byte: h1}
			}
			if i+2 >= len(b) {
				return &Error{Kind: ErrDecode, Byte: 0}
			}
			h2 := b[i+2]
			v2 := hexValue(h2)
			if v2 < 0 {
				return &Error{Kind: ErrDecode, Byte: h2}
			}
			var out [1]byte
			out[0] = byte(v1)<<4 | byte(v2)
			if !sink(out[:]) {
				return nil
			}
			i += 3
			runStart = i
		default:
			i++
		}
	}
	if i > runStart {
		sink(b[runStart:i])
	}
	return nil
}

// DecodeInto decodes b and appends the result to buf, returning the
// extended slice. It is a convenience wrapper around Decode for callers
// that want a single contiguous decoded result rather than a stream of
// sink calls.
func DecodeInto(b []byte, buf []byte) ([]byte, *Error) {
	out := buf
	err := Decode(b, func(frag []byte) bool {
		out = append(out, frag...)
		return true
	})
	return out, err
}

// DecodeString decodes b into buf (which is reused/grown as scratch) and
// returns the result as a string. It fails with ErrInvalidUTF8 if the
// decoded bytes are not valid UTF-8, distinct from a malformed %-escape
// (ErrDecode).
func DecodeString(b []byte, buf []byte) (string, *Error) {
	out, err := DecodeInto(b, buf[:0])
	if err != nil {
		return "", err
	}
	if !utf8.Valid(out) {
		return "", &Error{Kind: ErrInvalidUTF8}
	}
	return string(out), nil
}
