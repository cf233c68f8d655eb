// Copyright 2026 The httpwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package httpwire

// C9: the mode-selecting parser facade (spec §6). Parser multiplexes the
// three resumable state machines (head, chunked, url-encoded) behind one
// Resume entry point, tracking the scalar "bits" each machine needs to
// survive a suspension: a fine-grained State, a running byte/line count,
// and a small amount of per-mode scratch. The only bytes carried from one
// Resume call to the next are the up-to-5-byte "HTTP/" sniff buffer of
// head detection and the single decoded byte of a suspended url-encoded
// percent escape.

// Mode selects which state machine Resume drives.
type Mode uint8

const (
	// ModeNone is the zero value: no Init* call has been made yet.
	ModeNone Mode = iota
	// ModeHead parses a request-line or status-line followed by headers.
	ModeHead
	// ModeChunked parses a chunked-transfer-coding message body.
	ModeChunked
	// ModeURLEncoded parses an application/x-www-form-urlencoded body.
	ModeURLEncoded
	// ModeMultipart is out of scope; InitMultipart always fails fast with
	// ErrMultipartBoundary (see DESIGN.md).
	ModeMultipart
	// ModeFinished marks a machine that reached its terminal state; Resume
	// is then a no-op returning StatusFinished, or, if the machine stopped
	// on a parse error, returning that same error.
	ModeFinished
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeHead:
		return "head"
	case ModeChunked:
		return "chunked"
	case ModeURLEncoded:
		return "url-encoded"
	case ModeMultipart:
		return "multipart"
	case ModeFinished:
		return "finished"
	default:
		return "invalid"
	}
}

// State is a fine-grained parser position, valid only relative to the
// Mode that produced it. Numeric ranges are reserved per mode so a State
// value is self-describing for logging/error purposes without needing the
// Mode alongside it:
//
//	0-31    generic / shared
//	100-139 head (request-line, status-line, headers)
//	200-239 chunked
//	300-339 url-encoded
type State uint16

const (
	stateNone     State = 0
	stateFinished State = 1
	stateDead     State = 2
)

func (s State) String() string {
	switch {
	case s == stateNone:
		return "none"
	case s == stateFinished:
		return "finished"
	case s == stateDead:
		return "dead"
	case s >= 100 && s < 140:
		return headStateStr(s)
	case s >= 200 && s < 240:
		return chunkStateStr(s)
	case s >= 300 && s < 340:
		return urlEncStateStr(s)
	default:
		return "invalid"
	}
}

// Status is the outcome of a single Resume call.
type Status uint8

const (
	// StatusContinue means the input slice was consumed (or parsing
	// suspended early because a handler returned false); call Resume again
	// with the next fragment to continue.
	StatusContinue Status = iota
	// StatusFinished means the active mode reached its terminal state
	// during this call. Parser.Mode reports ModeFinished from now on.
	StatusFinished
	// StatusError means parsing failed; Result.Err is non-nil and every
	// subsequent Resume call returns the same error.
	StatusError
)

// Result is returned by every Resume call.
type Result struct {
	Status Status
	// N is the number of bytes of the slice passed to Resume that were
	// actually consumed. N < len(buf) only when a handler callback
	// returned false (cooperative suspension), when parsing failed, or
	// when the active mode finished before the end of buf (the remaining
	// bytes, e.g. a body following the head, are left to the caller).
	N   int
	Err *Error
}

// Parser drives one of the resumable HTTP/1.x wire state machines. The
// zero value is valid but unusable until one of the Init* methods is
// called. Not safe for concurrent use.
type Parser struct {
	mode      Mode
	state     State
	byteCount uint64
	lineCount uint64
	err       *Error

	// lowerScratch is shared bounded scratch for in-place lower-casing of
	// header names and chunk-extension names (spec §9). Only the actively
	// selected mode's state machine touches it.
	lowerScratch [64]byte

	h headState
	c chunkState
	u urlEncState
}

// Mode reports which state machine is currently selected.
func (p *Parser) Mode() Mode { return p.mode }

// State reports the current fine-grained parser state.
func (p *Parser) State() State { return p.state }

// ByteCount reports the total number of bytes consumed since the last
// Init* call.
func (p *Parser) ByteCount() uint64 { return p.byteCount }

// LineCount reports the number of LF bytes observed since the last
// Init* call. Only head/trailer parsing advances it.
func (p *Parser) LineCount() uint64 { return p.lineCount }

// InitHead resets the Parser to parse a request-line or status-line
// followed by headers, auto-detecting which on the first bytes seen
// (spec §6.1): an initial byte run of "HTTP/" selects a status-line, any
// other request-target-shaped token selects a request-line.
func (p *Parser) InitHead() {
	*p = Parser{}
	p.mode = ModeHead
	p.state = hsDetect
}

// InitChunked resets the Parser to parse a chunked-transfer-coding
// message body: chunk-size lines, chunk data, the zero-size terminating
// chunk, and a trailer header section (spec §6.2).
func (p *Parser) InitChunked() {
	*p = Parser{}
	p.mode = ModeChunked
	p.state = csSize
}

// InitURLEncoded resets the Parser to parse an
// application/x-www-form-urlencoded message body (spec §6.3).
func (p *Parser) InitURLEncoded() {
	*p = Parser{}
	p.mode = ModeURLEncoded
	p.state = uesRun
}

// InitMultipart always fails: multipart bodies are out of scope for this
// parser (see DESIGN.md). It is provided so callers that dispatch on
// Content-Type get a uniform error instead of a missing method.
func (p *Parser) InitMultipart(boundary []byte) {
	*p = Parser{}
	p.mode = ModeMultipart
	p.state = stateDead
	p.err = &Error{Kind: ErrMultipartBoundary, State: stateDead}
}

// finishErr latches err as the Parser's terminal error and returns the
// Result callers should return from Resume.
func (p *Parser) finishErr(err *Error) Result {
	p.mode = ModeFinished
	p.state = stateDead
	p.err = err
	return Result{Status: StatusError, Err: err}
}

// finishOK transitions to ModeFinished with consumed n bytes of the
// current call's input.
func (p *Parser) finishOK(n int) Result {
	p.mode = ModeFinished
	p.state = stateFinished
	p.byteCount += uint64(n)
	return Result{Status: StatusFinished, N: n}
}

// cont reports a suspended-but-not-failed call, having consumed n bytes
// of the current call's input.
func (p *Parser) cont(n int) Result {
	p.byteCount += uint64(n)
	return Result{Status: StatusContinue, N: n}
}

// Resume feeds the next fragment of input to the active state machine.
// buf may be empty: that is how a caller re-enters after a handler
// callback returned false without having any new bytes to offer yet.
//
// buf is borrowed only for the duration of this call: every byte slice
// handed to a Handler callback points into buf or into the Parser's own
// scratch (lower-cased names, decoded or unescaped bytes) and must not be
// retained past that callback (spec §3, §9).
func (p *Parser) Resume(h Handler, buf []byte) Result {
	if p.err != nil {
		return Result{Status: StatusError, Err: p.err}
	}
	switch p.mode {
	case ModeHead:
		return p.resumeHead(h, buf)
	case ModeChunked:
		return p.resumeChunked(h, buf)
	case ModeURLEncoded:
		return p.resumeURLEncoded(h, buf)
	case ModeFinished:
		return Result{Status: StatusFinished}
	default:
		// ModeNone: Resume called before any Init*. Nothing to do.
		return Result{Status: StatusFinished}
	}
}
