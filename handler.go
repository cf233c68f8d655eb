// Copyright 2026 The httpwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package httpwire

// Handler is the capability set of named callbacks a Parser invokes as it
// recognizes each syntactic fragment of the wire format (spec §4.5).
//
// Every callback receives a byte slice (or scalar) borrowed from the buffer
// passed to the current Resume call or from the Parser's own scratch; the
// slice is only valid for the dynamic extent of the callback and must not
// be retained. A callback
// returns true to keep parsing or false to suspend: Resume then unwinds the
// current step (the triggering byte is considered consumed) and returns a
// Continue Result pointing just after it. The next Resume call re-enters at
// exactly that point.
//
// Bytes delivered to *Name/*Value callbacks may arrive across several
// calls for what is logically one token; the next distinct callback firing
// (or *Finished) marks the token boundary. Header names and chunk-extension
// names are lower-cased through a scratch copy before delivery (the input
// buffer is not modified). Header values and chunk-extension values have
// their quotes removed and backslash escapes resolved; url-encoded names
// and values are delivered percent- and '+'-decoded; methods, URLs and
// status text are delivered verbatim.
//
// Implementations normally embed BaseHandler and override only the
// callbacks they care about, rather than implementing every method.
type Handler interface {
	// Status-line / request-line.
	OnMethod(b []byte) bool
	OnURL(b []byte) bool
	OnVersion(major, minor uint16) bool
	OnStatus(b []byte) bool
	OnStatusCode(code uint16) bool
	OnInitialFinished() bool

	// Headers and trailers (same callbacks for both).
	OnHeaderName(b []byte) bool
	OnHeaderValue(b []byte) bool
	OnHeadersFinished() bool

	// Chunked transfer-encoding.
	OnChunkLength(n uint64) bool
	OnChunkExtensionName(b []byte) bool
	OnChunkExtensionValue(b []byte) bool
	OnChunkExtensionFinished() bool
	OnChunkData(b []byte) bool
	OnBodyFinished() bool

	// URL-encoded body.
	OnURLEncodedName(b []byte) bool
	OnURLEncodedValue(b []byte) bool
}

// BaseHandler implements Handler with every callback returning true
// ("continue, no action"). Embed it in a caller-defined handler type and
// override only the callbacks of interest.
type BaseHandler struct{}

func (BaseHandler) OnMethod(b []byte) bool               { return true }
func (BaseHandler) OnURL(b []byte) bool                  { return true }
func (BaseHandler) OnVersion(major, minor uint16) bool   { return true }
func (BaseHandler) OnStatus(b []byte) bool               { return true }
func (BaseHandler) OnStatusCode(code uint16) bool        { return true }
func (BaseHandler) OnInitialFinished() bool              { return true }
func (BaseHandler) OnHeaderName(b []byte) bool           { return true }
func (BaseHandler) OnHeaderValue(b []byte) bool          { return true }
func (BaseHandler) OnHeadersFinished() bool              { return true }
func (BaseHandler) OnChunkLength(n uint64) bool          { return true }
func (BaseHandler) OnChunkExtensionName(b []byte) bool   { return true }
func (BaseHandler) OnChunkExtensionValue(b []byte) bool  { return true }
func (BaseHandler) OnChunkExtensionFinished() bool       { return true }
func (BaseHandler) OnChunkData(b []byte) bool            { return true }
func (BaseHandler) OnBodyFinished() bool                 { return true }
func (BaseHandler) OnURLEncodedName(b []byte) bool       { return true }
func (BaseHandler) OnURLEncodedValue(b []byte) bool      { return true }

var _ Handler = BaseHandler{}
