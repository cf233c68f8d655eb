// Copyright 2026 The httpwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package httpwire

import (
	"fmt"
	"strings"
	"testing"
)

// recorder is a Handler that logs every callback as a ("Kind", "data")
// event and can be configured to suspend (return false) exactly once on a
// chosen event kind, to exercise the cooperative-suspension contract.
type recorder struct {
	BaseHandler
	events []string

	suspendOn   string
	suspendHits int
	suspended   bool
}

func (r *recorder) fire(kind, data string) bool {
	if r.suspendOn == kind && !r.suspended {
		r.suspended = true
		r.suspendHits++
		return false
	}
	r.events = append(r.events, kind+":"+data)
	return true
}

func (r *recorder) OnMethod(b []byte) bool { return r.fire("Method", string(b)) }
func (r *recorder) OnURL(b []byte) bool    { return r.fire("URL", string(b)) }
func (r *recorder) OnVersion(major, minor uint16) bool {
	return r.fire("Version", fmt.Sprintf("%d.%d", major, minor))
}
func (r *recorder) OnStatus(b []byte) bool     { return r.fire("Status", string(b)) }
func (r *recorder) OnStatusCode(code uint16) bool {
	return r.fire("StatusCode", fmt.Sprintf("%d", code))
}
func (r *recorder) OnInitialFinished() bool { return r.fire("InitialFinished", "") }
func (r *recorder) OnHeaderName(b []byte) bool  { return r.fire("HeaderName", string(b)) }
func (r *recorder) OnHeaderValue(b []byte) bool { return r.fire("HeaderValue", string(b)) }
func (r *recorder) OnHeadersFinished() bool     { return r.fire("HeadersFinished", "") }
func (r *recorder) OnChunkLength(n uint64) bool {
	return r.fire("ChunkLength", fmt.Sprintf("%d", n))
}
func (r *recorder) OnChunkExtensionName(b []byte) bool {
	return r.fire("ChunkExtName", string(b))
}
func (r *recorder) OnChunkExtensionValue(b []byte) bool {
	return r.fire("ChunkExtValue", string(b))
}
func (r *recorder) OnChunkExtensionFinished() bool { return r.fire("ChunkExtFinished", "") }
func (r *recorder) OnChunkData(b []byte) bool      { return r.fire("ChunkData", string(b)) }
func (r *recorder) OnBodyFinished() bool           { return r.fire("BodyFinished", "") }
func (r *recorder) OnURLEncodedName(b []byte) bool {
	return r.fire("URLEncodedName", string(b))
}
func (r *recorder) OnURLEncodedValue(b []byte) bool {
	return r.fire("URLEncodedValue", string(b))
}

var _ Handler = (*recorder)(nil)

// coalesce merges consecutive events of the same kind into one event whose
// data is their concatenation. A logical token may reach the handler in
// several callbacks depending on how the input was fragmented (see
// Handler), so traces from differently fragmented feeds are compared in
// this form.
func coalesce(events []string) []string {
	var out []string
	for _, e := range events {
		kind := e[:strings.IndexByte(e, ':')+1]
		if n := len(out); n > 0 && strings.HasPrefix(out[n-1], kind) {
			out[n-1] += e[len(kind):]
			continue
		}
		out = append(out, e)
	}
	return out
}

// feedInPieces drives resume over full in pieces of at most pieceSize
// bytes, re-presenting any unconsumed remainder (spec §8: suspension or
// fragmentation must never lose or duplicate bytes). It stops at the
// first non-Continue Result or once input and any pending remainder are
// exhausted, and fails the test if a Continue call makes no progress at
// all (consumes nothing and has no more input to offer).
func feedInPieces(t *testing.T, resume func([]byte) Result, full []byte, pieceSize int) Result {
	t.Helper()
	if pieceSize <= 0 {
		pieceSize = len(full)
		if pieceSize == 0 {
			pieceSize = 1
		}
	}
	var pending []byte
	pos := 0
	for {
		var piece []byte
		if pos < len(full) {
			end := pos + pieceSize
			if end > len(full) {
				end = len(full)
			}
			piece = full[pos:end]
			pos = end
		}
		buf := append(append([]byte(nil), pending...), piece...)
		res := resume(buf)
		if res.Status != StatusContinue {
			return res
		}
		if res.N == 0 && len(piece) == 0 {
			t.Fatalf("feedInPieces: no progress and no more input (stuck at state)")
		}
		pending = append([]byte(nil), buf[res.N:]...)
		if pos >= len(full) && len(pending) == 0 {
			return res
		}
	}
}
