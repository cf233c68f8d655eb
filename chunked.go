// Copyright 2026 The httpwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package httpwire

import "github.com/intuitivelabs/bytescase"

// C7: chunked transfer-coding state machine (spec §6.2). Parses the
// RFC 7230 §4.1 chunked-body grammar:
//
//	chunked-body = *chunk last-chunk trailer-part CRLF
//	chunk        = chunk-size [ chunk-ext ] CRLF chunk-data CRLF
//	chunk-ext    = *( ";" chunk-ext-name [ "=" chunk-ext-val ] )
//
// The trailer section is a header block and is parsed by the exact same
// runHeaders machinery head.go uses for message headers (spec §6.2 calls
// this out explicitly).

// maxChunkSizeValue bounds the accumulated chunk-size to keep the
// left-shift accumulation below uint64 overflow; a size this large is
// never legitimate and signals a malformed or hostile stream.
const maxChunkSizeValue = ^uint64(0) >> 4

// wellKnownChunkExtensions are chunk-extension names with established
// real-world meaning (e.g. the trailing-checksum extension used by AWS
// SigV4 streaming uploads) that a caller building on OnChunkExtensionName
// may want to recognize for diagnostics. The CORE never branches on
// these itself; spec.md §6.2 leaves extension-name interpretation
// entirely to the caller, the same way it leaves header values to the
// caller.
var wellKnownChunkExtensions = [][]byte{
	[]byte("chunk-signature"),
}

// RecognizedChunkExtension reports whether name matches a well-known
// chunk-extension name, compared case-insensitively the same way header
// names are lower-cased before delivery.
func RecognizedChunkExtension(name []byte) bool {
	for _, known := range wellKnownChunkExtensions {
		if bytescase.CmpEq(known, name) {
			return true
		}
	}
	return false
}

// Chunked states. 200-239 is this file's reserved State range.
const (
	csSize                 State = 200
	csLengthPending        State = 201
	csLengthDelim          State = 202
	csExtNameStart         State = 203
	csExtName              State = 204
	csExtEqOrSep           State = 205
	csExtValueStart        State = 206
	csExtValueChar         State = 207
	csExtValueQuoted       State = 208
	csExtValueEscape       State = 209
	csExtFinishedPending   State = 210
	csCRLF                 State = 211
	csChunkData            State = 212
	csNextChunkReset       State = 213
	csBodyFinishedPending  State = 214
)

var chunkStateName = map[State]string{
	csSize:                "chunk-size",
	csLengthPending:       "chunk-length-pending",
	csLengthDelim:         "chunk-length-delim",
	csExtNameStart:        "chunk-ext-name-start",
	csExtName:             "chunk-ext-name",
	csExtEqOrSep:          "chunk-ext-eq-or-sep",
	csExtValueStart:       "chunk-ext-value-start",
	csExtValueChar:        "chunk-ext-value",
	csExtValueQuoted:      "chunk-ext-value-quoted",
	csExtValueEscape:      "chunk-ext-value-escape",
	csExtFinishedPending:  "chunk-ext-finished-pending",
	csCRLF:                "chunk-crlf",
	csChunkData:           "chunk-data",
	csNextChunkReset:      "chunk-next-reset",
	csBodyFinishedPending: "chunk-body-finished-pending",
}

func chunkStateStr(s State) string {
	if n, ok := chunkStateName[s]; ok {
		return n
	}
	return "invalid"
}

// chunkState is the scratch a chunked-mode Parser needs to survive a
// suspension.
type chunkState struct {
	value     uint64
	digits    uint8
	remaining uint64
	afterCRLF State
	hadExt    bool
}

func (p *Parser) resumeChunked(h Handler, buf []byte) Result {
	if p.state == csBodyFinishedPending {
		if !h.OnBodyFinished() {
			return p.cont(0)
		}
		return p.finishOK(0)
	}
	if p.state >= hsHeaderNameStart && p.state <= hsHeaderCRLF {
		ni, res, done := p.runHeaders(h, buf, 0)
		if !done {
			return res
		}
		return p.finishTrailers(h, ni)
	}

	i := 0
	// No i < len(buf) loop gate: csLengthPending and csExtFinishedPending
	// only retry a suspended callback and must run even with an empty buf
	// (see the matching comment in resumeHead).
	for {
		switch p.state {
		case csSize:
			for i < len(buf) {
				c := buf[i]
				if !isHex(c) {
					break
				}
				if p.c.value > maxChunkSizeValue {
					return p.parseErr(ErrMaxChunkLength, c, csSize, i)
				}
				p.c.value = p.c.value<<4 | uint64(hexValue(c))
				p.c.digits++
				i++
			}
			if i >= len(buf) {
				return p.cont(i)
			}
			if p.c.digits == 0 {
				return p.parseErr(ErrChunkSize, buf[i], csSize, i)
			}
			p.state = csLengthPending
			continue

		case csLengthPending:
			if !h.OnChunkLength(p.c.value) {
				return p.cont(i)
			}
			// Always transition onward once the callback succeeds, even
			// with no bytes left to peek: otherwise a Resume call that
			// arrives with nothing new would re-invoke OnChunkLength a
			// second time instead of moving on to csLengthDelim's own
			// i >= len(buf) wait.
			p.state = csLengthDelim
			continue

		case csLengthDelim:
			if i >= len(buf) {
				return p.cont(i)
			}
			c := buf[i]
			if c == ';' {
				i++
				p.c.hadExt = true
				p.state = csExtNameStart
				continue
			}
			if c == '\r' {
				i++
				p.c.afterCRLF = csExtFinishedPending
				p.state = csCRLF
				continue
			}
			if c == '\n' {
				i++
				p.state = csExtFinishedPending
				continue
			}
			return p.parseErr(ErrChunkSize, c, csLengthDelim, i)

		case csExtNameStart:
			if i >= len(buf) {
				return p.cont(i)
			}
			c := buf[i]
			if !isToken(c) {
				return p.parseErr(ErrChunkExtensionName, c, csExtNameStart, i)
			}
			p.state = csExtName
			continue

		case csExtName:
			start := i
			for i < len(buf) {
				c := buf[i]
				if !isToken(c) {
					break
				}
				i++
			}
			if i > start {
				n, ok := emitLower(p.lowerScratch[:], buf[start:i], h.OnChunkExtensionName)
				if !ok {
					return p.cont(start + n)
				}
			}
			if i >= len(buf) {
				return p.cont(i)
			}
			p.state = csExtEqOrSep
			continue

		case csExtEqOrSep:
			if i >= len(buf) {
				return p.cont(i)
			}
			c := buf[i]
			if c == '=' {
				i++
				p.state = csExtValueStart
				continue
			}
			if c == ';' {
				i++
				p.state = csExtNameStart
				continue
			}
			if c == '\r' {
				i++
				p.c.afterCRLF = csExtFinishedPending
				p.state = csCRLF
				continue
			}
			if c == '\n' {
				i++
				p.state = csExtFinishedPending
				continue
			}
			return p.parseErr(ErrChunkExtensionName, c, csExtEqOrSep, i)

		case csExtValueStart:
			if i >= len(buf) {
				return p.cont(i)
			}
			c := buf[i]
			if c == '"' {
				i++
				p.state = csExtValueQuoted
				continue
			}
			p.state = csExtValueChar
			continue

		case csExtValueChar:
			start := i
			for i < len(buf) {
				c := buf[i]
				if c == ';' || c == '\r' || c == '\n' {
					break
				}
				if !isFieldValueChar(c) {
					return p.parseErr(ErrChunkExtensionValue, c, csExtValueChar, i)
				}
				i++
			}
			if i > start {
				if !h.OnChunkExtensionValue(buf[start:i]) {
					return p.cont(i)
				}
			}
			if i >= len(buf) {
				return p.cont(i)
			}
			p.state = csExtEqOrSep
			continue

		case csExtValueQuoted:
			start := i
			for i < len(buf) {
				c := buf[i]
				if c == '"' || c == '\\' {
					break
				}
				if isControl(c) {
					return p.parseErr(ErrChunkExtensionValue, c, csExtValueQuoted, i)
				}
				i++
			}
			if i > start {
				if !h.OnChunkExtensionValue(buf[start:i]) {
					return p.cont(i)
				}
			}
			if i >= len(buf) {
				return p.cont(i)
			}
			c := buf[i]
			if c == '"' {
				i++
				p.state = csExtEqOrSep
				continue
			}
			// c == '\\'
			i++
			p.state = csExtValueEscape
			continue

		case csExtValueEscape:
			if i >= len(buf) {
				return p.cont(i)
			}
			if !h.OnChunkExtensionValue(buf[i : i+1]) {
				return p.cont(i)
			}
			i++
			p.state = csExtValueQuoted
			continue

		case csExtFinishedPending:
			if p.c.hadExt {
				if !h.OnChunkExtensionFinished() {
					return p.cont(i)
				}
			}
			if p.c.value == 0 {
				p.state = hsHeaderNameStart
				ni, res, done := p.runHeaders(h, buf, i)
				if !done {
					return res
				}
				return p.finishTrailers(h, ni)
			}
			p.c.remaining = p.c.value
			p.state = csChunkData
			continue

		case csChunkData:
			n := len(buf) - i
			if uint64(n) > p.c.remaining {
				n = int(p.c.remaining)
			}
			if n > 0 {
				if !h.OnChunkData(buf[i : i+n]) {
					p.c.remaining -= uint64(n)
					return p.cont(i + n)
				}
				p.c.remaining -= uint64(n)
				i += n
			}
			if p.c.remaining > 0 || i >= len(buf) {
				return p.cont(i)
			}
			// Chunk data is followed by CRLF (or a bare LF).
			c := buf[i]
			if c == '\r' {
				i++
				p.c.afterCRLF = csNextChunkReset
				p.state = csCRLF
				continue
			}
			if c == '\n' {
				i++
				p.state = csNextChunkReset
				continue
			}
			return p.parseErr(ErrCrlfSequence, c, csChunkData, i)

		case csNextChunkReset:
			p.c.value = 0
			p.c.digits = 0
			p.c.hadExt = false
			p.state = csSize
			continue

		case csCRLF:
			if i >= len(buf) {
				return p.cont(i)
			}
			c := buf[i]
			if c != '\n' {
				return p.parseErr(ErrCrlfSequence, c, csCRLF, i)
			}
			i++
			p.state = p.c.afterCRLF
			continue
		}
	}
}

// finishTrailers resolves the OnBodyFinished pending-callback step once
// the trailer header block has been fully consumed, either completing
// the call immediately or leaving the Parser ready to retry the callback
// on the next Resume if the handler suspended.
func (p *Parser) finishTrailers(h Handler, i int) Result {
	p.state = csBodyFinishedPending
	if !h.OnBodyFinished() {
		return p.cont(i)
	}
	return p.finishOK(i)
}
