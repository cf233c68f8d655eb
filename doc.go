// Copyright 2026 The httpwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

// Package httpwire implements a push-oriented, zero-copy HTTP/1.x wire
// parser.
//
// A Parser is a resumable byte-streaming state machine: the caller feeds it
// arbitrary byte segments via Resume and the parser invokes Handler
// callbacks as soon as each syntactic fragment (method, header name, chunk
// length, ...) is recognized. Emitted byte slices point inside the buffer
// passed to the current Resume call, or, for lower-cased names and decoded
// or unescaped bytes, into a small fixed scratch area owned by the Parser;
// the parser never accumulates parsed bytes, and the handler must not
// retain an emitted slice past the callback that delivered it.
//
// Parsing can be interrupted at any byte boundary (a TCP segment can split
// a header name in half) and resumed later with more bytes; it can also be
// suspended cooperatively by any Handler callback returning false, in which
// case the next Resume call (even with zero bytes) continues from the exact
// point where it stopped.
//
// A Parser is not safe for concurrent use. Independent Parser/Handler pairs
// may run on separate goroutines with no shared state.
package httpwire
