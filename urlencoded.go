// Copyright 2026 The httpwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package httpwire

// C8: application/x-www-form-urlencoded body state machine (spec §6.3).
// Streams "name=value&name=value..." pairs, percent/"+"-decoding each
// side as it goes (the byte-at-a-time percent decoder here is the
// resumable sibling of the whole-buffer Decode in percent.go: the two
// share the hex table in classify.go but Decode cannot be reused
// directly since a "%" split across a Resume boundary is not an error
// here the way it is for a fully-buffered decode).
//
// Unlike head and chunked bodies, a url-encoded body has no
// self-describing terminator in this grammar; the caller (which alone
// knows the framing, e.g. Content-Length) calls Finish once no further
// bytes are coming.

// URL-encoded states. 300-339 is this file's reserved State range.
const (
	uesRun                State = 300
	uesPercentHi          State = 301
	uesPercentLo          State = 302
	uesPercentEmitPending State = 303
)

var urlEncStateName = map[State]string{
	uesRun:                "url-encoded-run",
	uesPercentHi:          "url-encoded-percent-hi",
	uesPercentLo:          "url-encoded-percent-lo",
	uesPercentEmitPending: "url-encoded-percent-pending",
}

func urlEncStateStr(s State) string {
	if n, ok := urlEncStateName[s]; ok {
		return n
	}
	return "invalid"
}

// urlEncState is the scratch a url-encoded-mode Parser needs to survive
// a suspension.
type urlEncState struct {
	inValue    bool
	pctFirst   byte
	pendingBuf [1]byte
}

func (p *Parser) ueErrKind() ErrorKind {
	if p.u.inValue {
		return ErrURLEncodedValue
	}
	return ErrURLEncodedName
}

func (p *Parser) ueEmit(h Handler, b []byte) bool {
	if p.u.inValue {
		return h.OnURLEncodedValue(b)
	}
	return h.OnURLEncodedName(b)
}

func (p *Parser) resumeURLEncoded(h Handler, buf []byte) Result {
	i := 0
	// No i < len(buf) loop gate: uesPercentEmitPending only retries a
	// suspended callback and must run even with an empty buf (see the
	// matching comment in resumeHead).
	for {
		switch p.state {
		case uesRun:
			start := i
			for i < len(buf) {
				c := buf[i]
				if c == '&' || c == '%' || c == '+' {
					break
				}
				if !p.u.inValue && c == '=' {
					break
				}
				if !isURLChar(c) {
					return p.parseErr(p.ueErrKind(), c, uesRun, i)
				}
				i++
			}
			if i > start {
				if !p.ueEmit(h, buf[start:i]) {
					return p.cont(i)
				}
			}
			if i >= len(buf) {
				return p.cont(i)
			}
			c := buf[i]
			switch c {
			case '&':
				// Pair boundaries are implicit: the next OnURLEncodedName
				// firing (or OnBodyFinished) marks the end of this pair,
				// matching the handler contract used throughout (spec §4.5).
				i++
				p.u.inValue = false
				continue
			case '=':
				i++
				p.u.inValue = true
				continue
			case '+':
				var sp [1]byte
				sp[0] = ' '
				if !p.ueEmit(h, sp[:]) {
					return p.cont(i)
				}
				i++
				continue
			case '%':
				i++
				p.state = uesPercentHi
				continue
			}

		case uesPercentHi:
			if i >= len(buf) {
				return p.cont(i)
			}
			c := buf[i]
			v := hexValue(c)
			if v < 0 {
				return p.parseErr(p.ueErrKind(), c, uesPercentHi, i)
			}
			p.u.pctFirst = byte(v)
			i++
			p.state = uesPercentLo
			continue

		case uesPercentLo:
			if i >= len(buf) {
				return p.cont(i)
			}
			c := buf[i]
			v := hexValue(c)
			if v < 0 {
				return p.parseErr(p.ueErrKind(), c, uesPercentLo, i)
			}
			decoded := p.u.pctFirst<<4 | byte(v)
			i++
			p.u.pendingBuf[0] = decoded
			if !p.ueEmit(h, p.u.pendingBuf[:]) {
				p.state = uesPercentEmitPending
				return p.cont(i)
			}
			p.state = uesRun
			continue

		case uesPercentEmitPending:
			if !p.ueEmit(h, p.u.pendingBuf[:]) {
				return p.cont(i)
			}
			p.state = uesRun
			continue
		}
	}
}

// Finish signals that no further body bytes are coming (the caller alone
// tracks body framing, e.g. Content-Length). For ModeURLEncoded this
// flushes any pending decode and fires OnBodyFinished; a percent-escape
// left incomplete at this point is a decode error, not a suspension,
// since there genuinely is no more input to complete it. For any other
// mode Finish is equivalent to calling Resume with no bytes.
func (p *Parser) Finish(h Handler) Result {
	if p.err != nil {
		return Result{Status: StatusError, Err: p.err}
	}
	if p.mode != ModeURLEncoded {
		return p.Resume(h, nil)
	}
	switch p.state {
	case uesPercentHi, uesPercentLo:
		return p.finishErr(&Error{Kind: p.ueErrKind(), State: p.state, ByteCount: p.byteCount, LineCount: p.lineCount})
	case uesPercentEmitPending:
		if !p.ueEmit(h, p.u.pendingBuf[:]) {
			return p.cont(0)
		}
		p.state = uesRun
	}
	if !h.OnBodyFinished() {
		return p.cont(0)
	}
	return p.finishOK(0)
}
