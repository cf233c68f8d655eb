// Copyright 2026 The httpwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package httpwire

import "github.com/intuitivelabs/bytescase"

// C6: head state machine (spec §6.1). Parses a single request-line or
// status-line followed by a header block, auto-detecting which of the two
// it is from the first bytes of input. Request and response share the
// exact same header-block machinery (runHeaders), which is also reused
// verbatim by chunked.go to parse the trailer section of a
// chunked-transfer-coding message.

const httpVersionLiteral = "HTTP/"

var httpVersionLiteralBytes = []byte(httpVersionLiteral)

// Head states. 100-139 is this file's reserved State range.
const (
	hsDetect                 State = 100
	hsMethod                 State = 101
	hsURL                    State = 102
	hsReqVersionLit          State = 103
	hsVersionMajor           State = 104
	hsVersionMinor           State = 105
	hsVersionPending         State = 106
	hsStatusCode             State = 107
	hsStatusCodePending      State = 108
	hsStatusText             State = 109
	hsCRLF                   State = 110
	hsInitialFinishedPending State = 111
	hsHeaderNameStart        State = 112
	hsHeaderName             State = 113
	hsHeaderValueLwsStart    State = 114
	hsHeaderValueChar        State = 115
	hsHeaderValueQuoted      State = 116
	hsHeaderValueEscape      State = 117
	hsHeaderFoldSkipWS       State = 118
	hsHeaderFoldEmitPending  State = 119
	hsHeadersFinishedPending State = 120
	// hsHeaderCRLF is identical in behavior to hsCRLF; it exists as a
	// separate value so a suspension mid-CRLF inside the header block
	// still dispatches to runHeaders on resumption (the range check in
	// resumeHead keys off state >= hsHeaderNameStart).
	hsHeaderCRLF State = 121
)

var headStateName = map[State]string{
	hsDetect:                 "head-detect",
	hsMethod:                 "head-method",
	hsURL:                    "head-url",
	hsReqVersionLit:          "head-version-literal",
	hsVersionMajor:           "head-version-major",
	hsVersionMinor:           "head-version-minor",
	hsVersionPending:         "head-version-pending",
	hsStatusCode:             "head-status-code",
	hsStatusCodePending:      "head-status-code-pending",
	hsStatusText:             "head-status-text",
	hsCRLF:                   "head-crlf",
	hsInitialFinishedPending: "head-initial-finished-pending",
	hsHeaderNameStart:        "header-name-start",
	hsHeaderName:             "header-name",
	hsHeaderValueLwsStart:    "header-value-lws",
	hsHeaderValueChar:        "header-value",
	hsHeaderValueQuoted:      "header-value-quoted",
	hsHeaderValueEscape:      "header-value-escape",
	hsHeaderFoldSkipWS:       "header-fold-ws",
	hsHeaderFoldEmitPending:  "header-fold-emit-pending",
	hsHeadersFinishedPending: "headers-finished-pending",
	hsHeaderCRLF:             "header-crlf",
}

func headStateStr(s State) string {
	if n, ok := headStateName[s]; ok {
		return n
	}
	return "invalid"
}

// headState is the scratch a head-mode Parser needs to survive a
// suspension. It is also reused, for its header-block fields only, by
// chunked.go while parsing trailers.
type headState struct {
	isResponse bool
	detectBuf  [5]byte
	detectIdx  uint8

	major, minor uint16
	verDigits    uint8

	statusCode    uint16
	statusDigits  uint8

	afterCRLF State
}

func (p *Parser) parseErr(kind ErrorKind, b byte, st State, i int) Result {
	return p.finishErr(&Error{Kind: kind, Byte: b, State: st, ByteCount: p.byteCount + uint64(i), LineCount: p.lineCount})
}

func (p *Parser) resumeHead(h Handler, buf []byte) Result {
	if p.state >= hsHeaderNameStart {
		ni, res, done := p.runHeaders(h, buf, 0)
		if !done {
			return res
		}
		return p.finishOK(ni)
	}

	i := 0
	// The loop has no i < len(buf) gate: several states below (the
	// "-Pending" ones) only re-invoke a suspended handler callback and
	// never touch buf at all, so they must run even when buf is empty
	// (the zero-byte re-entry Resume's doc comment promises). Every case
	// that does read buf[i] directly guards it with its own i >= len(buf)
	// check instead.
	for {
		switch p.state {
		case hsDetect:
			if i >= len(buf) {
				return p.cont(i)
			}
			// Fast path: when the whole literal fits in the buffer we were
			// handed, settle the method-vs-status-line ambiguity in one
			// case-insensitive comparison instead of five per-byte ones,
			// the same precondition-gated shape parse_fline.go uses for
			// bytescase.Prefix. A miss falls through to the byte-at-a-time
			// sniff below unchanged, since none of these bytes have been
			// buffered yet.
			if p.h.detectIdx == 0 && len(buf)-i >= len(httpVersionLiteralBytes) {
				if l, match := bytescase.Prefix(httpVersionLiteralBytes, buf[i:]); match {
					i += l
					p.h.isResponse = true
					p.h.verDigits = 0
					p.state = hsVersionMajor
					continue
				}
			}
			c := buf[i]
			if int(p.h.detectIdx) < 5 && bytescase.ByteToLower(c) == bytescase.ByteToLower(httpVersionLiteral[p.h.detectIdx]) {
				p.h.detectBuf[p.h.detectIdx] = c
				p.h.detectIdx++
				i++
				if p.h.detectIdx == 5 {
					p.h.isResponse = true
					p.h.verDigits = 0
					p.state = hsVersionMajor
				}
				continue
			}
			if c == ' ' {
				if p.h.detectIdx > 0 {
					n := p.h.detectIdx
					p.h.detectIdx = 0 // already buffered; don't re-emit on resume
					if !h.OnMethod(p.h.detectBuf[:n]) {
						return p.cont(i)
					}
				}
				i++
				p.state = hsURL
				continue
			}
			if !isToken(c) {
				return p.parseErr(ErrMethod, c, hsDetect, i)
			}
			if p.h.detectIdx > 0 {
				if !h.OnMethod(p.h.detectBuf[:p.h.detectIdx]) {
					p.h.detectIdx = 0
					p.state = hsMethod
					return p.cont(i)
				}
				p.h.detectIdx = 0
			}
			p.state = hsMethod
			continue

		case hsMethod:
			start := i
			for i < len(buf) {
				c := buf[i]
				if c == ' ' {
					break
				}
				if !isToken(c) {
					return p.parseErr(ErrMethod, c, hsMethod, i)
				}
				i++
			}
			if i > start {
				if !h.OnMethod(buf[start:i]) {
					return p.cont(i)
				}
			}
			if i >= len(buf) {
				return p.cont(i)
			}
			i++ // consume SP
			p.state = hsURL
			continue

		case hsURL:
			start := i
			for i < len(buf) {
				c := buf[i]
				if c == ' ' {
					break
				}
				if isControl(c) {
					return p.parseErr(ErrURL, c, hsURL, i)
				}
				i++
			}
			if i > start {
				if !h.OnURL(buf[start:i]) {
					return p.cont(i)
				}
			}
			if i >= len(buf) {
				return p.cont(i)
			}
			i++ // consume SP
			p.h.detectIdx = 0
			p.state = hsReqVersionLit
			continue

		case hsReqVersionLit:
			if i >= len(buf) {
				return p.cont(i)
			}
			if p.h.detectIdx == 0 && len(buf)-i >= len(httpVersionLiteralBytes) {
				if l, match := bytescase.Prefix(httpVersionLiteralBytes, buf[i:]); match {
					i += l
					p.h.verDigits = 0
					p.state = hsVersionMajor
					continue
				}
				// Mismatch: fall through to the byte-at-a-time comparison
				// below so the error reports the exact offending byte and
				// offset, the way a resumed (partial-buffer) comparison
				// would.
			}
			c := buf[i]
			if bytescase.ByteToLower(c) != bytescase.ByteToLower(httpVersionLiteral[p.h.detectIdx]) {
				return p.parseErr(ErrVersion, c, hsReqVersionLit, i)
			}
			p.h.detectIdx++
			i++
			if p.h.detectIdx == 5 {
				p.h.detectIdx = 0
				p.h.verDigits = 0
				p.state = hsVersionMajor
			}
			continue

		case hsVersionMajor:
			for i < len(buf) {
				c := buf[i]
				if c < '0' || c > '9' {
					break
				}
				if p.h.verDigits >= 3 {
					return p.parseErr(ErrVersion, c, hsVersionMajor, i)
				}
				p.h.major = p.h.major*10 + uint16(c-'0')
				p.h.verDigits++
				i++
			}
			if i >= len(buf) {
				return p.cont(i)
			}
			c := buf[i]
			if c != '.' {
				return p.parseErr(ErrVersion, c, hsVersionMajor, i)
			}
			i++
			p.h.verDigits = 0
			p.state = hsVersionMinor
			continue

		case hsVersionMinor:
			for i < len(buf) {
				c := buf[i]
				if c < '0' || c > '9' {
					break
				}
				if p.h.verDigits >= 3 {
					return p.parseErr(ErrVersion, c, hsVersionMinor, i)
				}
				p.h.minor = p.h.minor*10 + uint16(c-'0')
				p.h.verDigits++
				i++
			}
			if i >= len(buf) {
				return p.cont(i)
			}
			c := buf[i]
			if p.h.isResponse {
				if c != ' ' {
					return p.parseErr(ErrVersion, c, hsVersionMinor, i)
				}
				i++
				p.state = hsVersionPending
				continue
			}
			if c == '\r' {
				i++
				p.h.afterCRLF = hsVersionPending
				p.state = hsCRLF
				continue
			}
			if c == '\n' {
				p.lineCount++
				i++
				p.state = hsVersionPending
				continue
			}
			return p.parseErr(ErrVersion, c, hsVersionMinor, i)

		case hsVersionPending:
			if !h.OnVersion(p.h.major, p.h.minor) {
				return p.cont(i)
			}
			if p.h.isResponse {
				p.state = hsStatusCode
				p.h.statusCode = 0
				p.h.statusDigits = 0
			} else {
				p.state = hsInitialFinishedPending
			}
			continue

		case hsStatusCode:
			for i < len(buf) {
				c := buf[i]
				if c < '0' || c > '9' {
					break
				}
				if p.h.statusDigits >= 3 {
					return p.parseErr(ErrStatusCode, c, hsStatusCode, i)
				}
				p.h.statusCode = p.h.statusCode*10 + uint16(c-'0')
				p.h.statusDigits++
				i++
			}
			if i >= len(buf) {
				return p.cont(i)
			}
			c := buf[i]
			if p.h.statusDigits != 3 || c != ' ' {
				return p.parseErr(ErrStatusCode, c, hsStatusCode, i)
			}
			i++
			p.state = hsStatusCodePending
			continue

		case hsStatusCodePending:
			if !h.OnStatusCode(p.h.statusCode) {
				return p.cont(i)
			}
			p.state = hsStatusText
			continue

		case hsStatusText:
			start := i
			for i < len(buf) {
				c := buf[i]
				if c == '\r' || c == '\n' {
					break
				}
				if isControl(c) {
					return p.parseErr(ErrStatus, c, hsStatusText, i)
				}
				i++
			}
			if i > start {
				if !h.OnStatus(buf[start:i]) {
					return p.cont(i)
				}
			}
			if i >= len(buf) {
				return p.cont(i)
			}
			c := buf[i]
			if c == '\r' {
				i++
				p.h.afterCRLF = hsInitialFinishedPending
				p.state = hsCRLF
				continue
			}
			p.lineCount++
			i++
			p.state = hsInitialFinishedPending
			continue

		case hsCRLF:
			if i >= len(buf) {
				return p.cont(i)
			}
			c := buf[i]
			if c != '\n' {
				return p.parseErr(ErrCrlfSequence, c, hsCRLF, i)
			}
			p.lineCount++
			i++
			p.state = p.h.afterCRLF
			continue

		case hsInitialFinishedPending:
			if !h.OnInitialFinished() {
				return p.cont(i)
			}
			p.state = hsHeaderNameStart
			ni, res, done := p.runHeaders(h, buf, i)
			if !done {
				return res
			}
			return p.finishOK(ni)
		}
	}
}

// runHeaders scans a header block (spec §4.5's header/trailer callbacks)
// starting at buf[i], with p.state already positioned at a header-block
// state. It returns once it needs more input, the handler suspends or
// errors, or OnHeadersFinished returns true (done=true, at which point
// the caller performs its own mode-specific completion).
func (p *Parser) runHeaders(h Handler, buf []byte, i int) (int, Result, bool) {
	// No i < len(buf) loop gate, matching resumeHead: hsHeadersFinishedPending
	// only retries a suspended callback and must run even with an empty buf.
	for {
		switch p.state {
		case hsHeaderNameStart:
			if i >= len(buf) {
				return i, p.cont(i), false
			}
			c := buf[i]
			if c == '\r' {
				i++
				p.h.afterCRLF = hsHeadersFinishedPending
				p.state = hsHeaderCRLF
				continue
			}
			if c == '\n' {
				p.lineCount++
				i++
				p.state = hsHeadersFinishedPending
				continue
			}
			if !isToken(c) {
				return i, p.parseErr(ErrHeaderName, c, hsHeaderNameStart, i), false
			}
			p.state = hsHeaderName
			continue

		case hsHeaderName:
			start := i
			for i < len(buf) {
				c := buf[i]
				if !isToken(c) {
					break
				}
				i++
			}
			if i > start {
				n, ok := emitLower(p.lowerScratch[:], buf[start:i], h.OnHeaderName)
				if !ok {
					return start + n, p.cont(start + n), false
				}
			}
			if i >= len(buf) {
				return i, p.cont(i), false
			}
			c := buf[i]
			if c == ':' {
				i++
				p.state = hsHeaderValueLwsStart
				continue
			}
			return i, p.parseErr(ErrHeaderName, c, hsHeaderName, i), false

		case hsHeaderValueLwsStart:
			for i < len(buf) && (buf[i] == ' ' || buf[i] == '\t') {
				i++
			}
			if i >= len(buf) {
				return i, p.cont(i), false
			}
			p.state = hsHeaderValueChar
			continue

		case hsHeaderValueChar:
			start := i
			for i < len(buf) {
				c := buf[i]
				if c == '\r' || c == '\n' || c == '"' {
					break
				}
				if !isHeaderValueChar(c) {
					return i, p.parseErr(ErrHeaderValue, c, hsHeaderValueChar, i), false
				}
				i++
			}
			if i > start {
				if !h.OnHeaderValue(buf[start:i]) {
					return i, p.cont(i), false
				}
			}
			if i >= len(buf) {
				return i, p.cont(i), false
			}
			c := buf[i]
			if c == '"' {
				i++
				p.state = hsHeaderValueQuoted
				continue
			}
			if c == '\r' {
				i++
				p.h.afterCRLF = hsHeaderFoldSkipWS
				p.state = hsHeaderCRLF
				continue
			}
			p.lineCount++
			i++
			p.state = hsHeaderFoldSkipWS
			continue

		case hsHeaderValueQuoted:
			start := i
			for i < len(buf) {
				c := buf[i]
				if c == '"' || c == '\\' {
					break
				}
				if isControl(c) {
					return i, p.parseErr(ErrHeaderValue, c, hsHeaderValueQuoted, i), false
				}
				i++
			}
			if i > start {
				if !h.OnHeaderValue(buf[start:i]) {
					return i, p.cont(i), false
				}
			}
			if i >= len(buf) {
				return i, p.cont(i), false
			}
			c := buf[i]
			if c == '"' {
				i++
				p.state = hsHeaderValueChar
				continue
			}
			// c == '\\'
			i++
			p.state = hsHeaderValueEscape
			continue

		case hsHeaderValueEscape:
			if i >= len(buf) {
				return i, p.cont(i), false
			}
			if !h.OnHeaderValue(buf[i : i+1]) {
				return i, p.cont(i), false
			}
			i++
			p.state = hsHeaderValueQuoted
			continue

		case hsHeaderFoldSkipWS:
			if i >= len(buf) {
				return i, p.cont(i), false
			}
			if buf[i] == ' ' || buf[i] == '\t' {
				for i < len(buf) && (buf[i] == ' ' || buf[i] == '\t') {
					i++
				}
				if i >= len(buf) {
					return i, p.cont(i), false
				}
				p.state = hsHeaderFoldEmitPending
				continue
			}
			p.state = hsHeaderNameStart
			continue

		case hsHeaderFoldEmitPending:
			var sp [1]byte
			sp[0] = ' '
			if !h.OnHeaderValue(sp[:]) {
				return i, p.cont(i), false
			}
			p.state = hsHeaderValueChar
			continue

		case hsHeaderCRLF:
			if i >= len(buf) {
				return i, p.cont(i), false
			}
			c := buf[i]
			if c != '\n' {
				return i, p.parseErr(ErrCrlfSequence, c, hsHeaderCRLF, i), false
			}
			p.lineCount++
			i++
			p.state = p.h.afterCRLF
			continue

		case hsHeadersFinishedPending:
			if !h.OnHeadersFinished() {
				return i, p.cont(i), false
			}
			return i, Result{}, true
		}
	}
}
