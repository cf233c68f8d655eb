// Copyright 2026 The httpwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package httpwire

import "github.com/intuitivelabs/bytescase"

// C1: constant-time byte classifiers (spec §4.1). Table-driven so every
// predicate is a single slice lookup, no branching on ranges.

var (
	tokenTable    [256]bool // RFC 7230 tchar
	visibleTable  [256]bool // VCHAR (0x21-0x7e)
	hdrValueTable [256]bool // VCHAR + SP + HT
	hexTable      [256]bool
	hexValueTable [256]int8 // 0-15, or -1
	urlCharTable  [256]bool // unreserved + sub-delims + gen-delims + '%'
	controlTable  [256]bool // CTL, i.e. < 0x20 or 0x7f
)

func init() {
	const tchar = "!#$%&'*+-.^_`|~"
	for _, c := range []byte(tchar) {
		tokenTable[c] = true
	}
	for c := 'a'; c <= 'z'; c++ {
		tokenTable[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		tokenTable[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		tokenTable[c] = true
	}

	for c := 0x21; c <= 0x7e; c++ {
		visibleTable[c] = true
	}
	hdrValueTable = visibleTable
	hdrValueTable[' '] = true
	hdrValueTable['\t'] = true
	// obs-text (0x80-0xff) is allowed verbatim in header values too.
	for c := 0x80; c <= 0xff; c++ {
		hdrValueTable[c] = true
	}

	for i := range hexValueTable {
		hexValueTable[i] = -1
	}
	for c := '0'; c <= '9'; c++ {
		hexTable[c] = true
		hexValueTable[c] = int8(c - '0')
	}
	for c := 'a'; c <= 'f'; c++ {
		hexTable[c] = true
		hexValueTable[c] = int8(c-'a') + 10
	}
	for c := 'A'; c <= 'F'; c++ {
		hexTable[c] = true
		hexValueTable[c] = int8(c-'A') + 10
	}

	const urlSafe = "-._~:/?#[]@!$&'()*+,;=%"
	for _, c := range []byte(urlSafe) {
		urlCharTable[c] = true
	}
	for c := 'a'; c <= 'z'; c++ {
		urlCharTable[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		urlCharTable[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		urlCharTable[c] = true
	}

	for c := 0; c < 0x20; c++ {
		controlTable[c] = true
	}
	controlTable[0x7f] = true
}

// isToken returns true if b is a RFC 7230 tchar.
func isToken(b byte) bool { return tokenTable[b] }

// isVisible returns true if b is a VCHAR.
func isVisible(b byte) bool { return visibleTable[b] }

// isHeaderValueChar returns true if b may appear unquoted inside a header
// field-value (VCHAR, SP, HT, or obs-text).
func isHeaderValueChar(b byte) bool { return hdrValueTable[b] }

// isHex returns true if b is an ASCII hex digit.
func isHex(b byte) bool { return hexTable[b] }

// hexValue returns the numeric value of an ASCII hex digit (0-15), or -1 if
// b is not a hex digit.
func hexValue(b byte) int8 { return hexValueTable[b] }

// isURLChar returns true if b may appear unescaped inside a request target.
func isURLChar(b byte) bool { return urlCharTable[b] }

// isControl returns true if b is a C0 control character or DEL.
func isControl(b byte) bool { return controlTable[b] }

// toLower lower-cases b if it is an ASCII uppercase letter; every other
// byte (including non-ASCII) passes through unchanged. Backed by
// bytescase so the case-folding table matches the rest of the pack
// bit-for-bit.
func toLower(b byte) byte { return bytescase.ByteToLower(b) }

// lowerInto lower-cases src into dst (len(dst) must be >= len(src)) and
// returns the written prefix of dst. Used to normalize header names and
// chunk-extension names through a small fixed scratch window instead of
// allocating (spec §9).
func lowerInto(dst, src []byte) []byte {
	for i, b := range src {
		dst[i] = toLower(b)
	}
	return dst[:len(src)]
}

// emitLower lower-cases b through the fixed-size scratch window, calling
// emit once per scratch-sized chunk. It returns the number of bytes of b
// consumed (flushed via emit) and whether every chunk was accepted; a
// caller that gets ok == false knows exactly how much of b still needs
// delivering on the next Resume call.
func emitLower(scratch []byte, b []byte, emit func([]byte) bool) (int, bool) {
	consumed := 0
	for len(b) > 0 {
		n := len(b)
		if n > len(scratch) {
			n = len(scratch)
		}
		if !emit(lowerInto(scratch[:n], b[:n])) {
			return consumed, false
		}
		consumed += n
		b = b[n:]
	}
	return consumed, true
}
