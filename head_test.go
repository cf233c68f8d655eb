// Copyright 2026 The httpwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package httpwire

import (
	"reflect"
	"testing"
)

func TestResumeHeadRequestLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			"simple GET",
			"GET /r?x HTTP/1.1\r\nHost: a\r\n\r\n",
			[]string{
				"Method:GET", "URL:/r?x", "Version:1.1", "InitialFinished:",
				"HeaderName:host", "HeaderValue:a", "HeadersFinished:",
			},
		},
		{
			"status line",
			"HTTP/1.0 204 No Content\r\n\r\n",
			[]string{
				"Version:1.0", "StatusCode:204", "Status:No Content",
				"InitialFinished:", "HeadersFinished:",
			},
		},
		{
			"multiple headers",
			"POST /submit HTTP/1.1\r\nContent-Type: text/plain\r\nContent-Length: 5\r\n\r\n",
			[]string{
				"Method:POST", "URL:/submit", "Version:1.1", "InitialFinished:",
				"HeaderName:content-type", "HeaderValue:text/plain",
				"HeaderName:content-length", "HeaderValue:5",
				"HeadersFinished:",
			},
		},
		{
			"no headers",
			"GET / HTTP/1.1\r\n\r\n",
			[]string{
				"Method:GET", "URL:/", "Version:1.1", "InitialFinished:",
				"HeadersFinished:",
			},
		},
		{
			"header name uppercased normalized",
			"GET / HTTP/1.1\r\nHOST: EXAMPLE\r\n\r\n",
			[]string{
				"Method:GET", "URL:/", "Version:1.1", "InitialFinished:",
				"HeaderName:host", "HeaderValue:EXAMPLE", "HeadersFinished:",
			},
		},
	}

	for _, c := range tests {
		for _, pieceSize := range []int{0, 1, 2, 5} {
			var p Parser
			p.InitHead()
			rec := &recorder{}
			res := feedInPieces(t, func(buf []byte) Result { return p.Resume(rec, buf) }, []byte(c.input), pieceSize)
			if res.Status != StatusFinished {
				t.Fatalf("%s (piece=%d): status = %v, err = %v, events = %v", c.name, pieceSize, res.Status, res.Err, rec.events)
			}
			if got := coalesce(rec.events); !reflect.DeepEqual(got, c.want) {
				t.Errorf("%s (piece=%d): events = %v, want %v", c.name, pieceSize, got, c.want)
			}
		}
	}
}

func TestResumeHeadBareCRError(t *testing.T) {
	// A bare CR in the request-line terminator (not followed by LF) is a
	// malformed CRLF sequence; the byte actually reported is whatever
	// comes next in the stream, since that is the byte inspected when the
	// \n check fails.
	var p Parser
	p.InitHead()
	rec := &recorder{}
	res := p.Resume(rec, []byte("GET /r HTTP/1.1\rHost: a\r\n\r\n"))
	if res.Status != StatusError {
		t.Fatalf("status = %v, want StatusError", res.Status)
	}
	if res.Err.Kind != ErrCrlfSequence {
		t.Fatalf("err.Kind = %v, want ErrCrlfSequence", res.Err.Kind)
	}
	if res.Err.Byte != 'H' {
		t.Fatalf("err.Byte = %q, want 'H'", res.Err.Byte)
	}
}

func TestResumeHeadFolding(t *testing.T) {
	var p Parser
	p.InitHead()
	rec := &recorder{}
	input := "GET / HTTP/1.1\r\nX-Custom: line1\r\n  line2\r\n\r\n"
	res := p.Resume(rec, []byte(input))
	if res.Status != StatusFinished {
		t.Fatalf("status = %v, err = %v", res.Status, res.Err)
	}
	want := []string{
		"Method:GET", "URL:/", "Version:1.1", "InitialFinished:",
		"HeaderName:x-custom", "HeaderValue:line1", "HeaderValue: ", "HeaderValue:line2",
		"HeadersFinished:",
	}
	if !reflect.DeepEqual(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestResumeHeadQuotedValue(t *testing.T) {
	var p Parser
	p.InitHead()
	rec := &recorder{}
	input := `GET / HTTP/1.1` + "\r\n" + `X-Custom: a"b\"c"d` + "\r\n\r\n"
	res := p.Resume(rec, []byte(input))
	if res.Status != StatusFinished {
		t.Fatalf("status = %v, err = %v", res.Status, res.Err)
	}
	want := []string{
		"Method:GET", "URL:/", "Version:1.1", "InitialFinished:",
		"HeaderName:x-custom",
		"HeaderValue:a", "HeaderValue:b", "HeaderValue:\"", "HeaderValue:c", "HeaderValue:d",
		"HeadersFinished:",
	}
	if !reflect.DeepEqual(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestResumeHeadFoldEmitPendingSuspendAndResume(t *testing.T) {
	// The header value is empty before the fold, so the very first
	// OnHeaderValue call is the fold's injected space: this isolates the
	// hsHeaderFoldEmitPending retry path specifically.
	var p Parser
	p.InitHead()
	rec := &recorder{suspendOn: "HeaderValue"}
	input := []byte("GET / HTTP/1.1\r\nX-Custom:\r\n  line2\r\n\r\n")
	res := p.Resume(rec, input)
	if res.Status != StatusContinue {
		t.Fatalf("first Resume: status = %v, want StatusContinue", res.Status)
	}
	if rec.suspendHits != 1 {
		t.Fatalf("suspendHits = %d, want 1", rec.suspendHits)
	}
	consumed := res.N
	// Retry with no new bytes: must re-fire the pending space emit, not stall.
	res = p.Resume(rec, nil)
	if res.Status != StatusContinue {
		t.Fatalf("second Resume: status = %v, err = %v", res.Status, res.Err)
	}
	consumed += res.N
	res = feedInPieces(t, func(buf []byte) Result { return p.Resume(rec, buf) }, input[consumed:], 0)
	if res.Status != StatusFinished {
		t.Fatalf("third Resume: status = %v, err = %v, events = %v", res.Status, res.Err, rec.events)
	}
	want := []string{
		"Method:GET", "URL:/", "Version:1.1", "InitialFinished:",
		"HeaderName:x-custom", "HeaderValue: ", "HeaderValue:line2",
		"HeadersFinished:",
	}
	if !reflect.DeepEqual(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestResumeHeadMethodTooLong(t *testing.T) {
	// A method name longer than the 5-byte sniff window must still be
	// delivered correctly (exercises the hsDetect -> hsMethod handoff).
	var p Parser
	p.InitHead()
	rec := &recorder{}
	for _, pieceSize := range []int{0, 1, 3} {
		p = Parser{}
		p.InitHead()
		rec = &recorder{}
		res := feedInPieces(t, func(buf []byte) Result { return p.Resume(rec, buf) },
			[]byte("PROPFIND /dav HTTP/1.1\r\n\r\n"), pieceSize)
		if res.Status != StatusFinished {
			t.Fatalf("piece=%d: status = %v, err = %v", pieceSize, res.Status, res.Err)
		}
		want := []string{"Method:PROPFIND", "URL:/dav", "Version:1.1", "InitialFinished:", "HeadersFinished:"}
		if got := coalesce(rec.events); !reflect.DeepEqual(got, want) {
			t.Errorf("piece=%d: events = %v, want %v", pieceSize, got, want)
		}
	}
}

func TestResumeHeadInvalidMethodChar(t *testing.T) {
	var p Parser
	p.InitHead()
	rec := &recorder{}
	res := p.Resume(rec, []byte("GE(T / HTTP/1.1\r\n\r\n"))
	if res.Status != StatusError {
		t.Fatalf("status = %v, want StatusError", res.Status)
	}
	if res.Err.Kind != ErrMethod {
		t.Errorf("err.Kind = %v, want ErrMethod", res.Err.Kind)
	}
}

func TestResumeHeadSuspendAndResume(t *testing.T) {
	var p Parser
	p.InitHead()
	rec := &recorder{suspendOn: "HeadersFinished"}
	input := []byte("GET / HTTP/1.1\r\nHost: a\r\n\r\n")
	res := p.Resume(rec, input)
	if res.Status != StatusContinue {
		t.Fatalf("first Resume: status = %v, want StatusContinue", res.Status)
	}
	if rec.suspendHits != 1 {
		t.Fatalf("suspendHits = %d, want 1", rec.suspendHits)
	}
	if res.N != len(input) {
		t.Fatalf("N = %d, want %d (OnHeadersFinished consumes no new bytes)", res.N, len(input))
	}
	// Resume with no new bytes: retries exactly the suspended callback.
	res = p.Resume(rec, nil)
	if res.Status != StatusFinished {
		t.Fatalf("second Resume: status = %v, err = %v", res.Status, res.Err)
	}
	want := []string{
		"Method:GET", "URL:/", "Version:1.1", "InitialFinished:",
		"HeaderName:host", "HeaderValue:a", "HeadersFinished:",
	}
	if !reflect.DeepEqual(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestResumeHeadErrorIsSticky(t *testing.T) {
	var p Parser
	p.InitHead()
	rec := &recorder{}
	res := p.Resume(rec, []byte("GE(T / HTTP/1.1\r\n\r\n"))
	if res.Status != StatusError {
		t.Fatalf("status = %v, want StatusError", res.Status)
	}
	first := res.Err
	res2 := p.Resume(rec, []byte("more bytes"))
	if res2.Status != StatusError || res2.Err != first {
		t.Fatalf("second Resume after error: got %+v, want the same sticky error %+v", res2, first)
	}
}

func TestRecognizedChunkExtensionUnrelatedToHeadNames(t *testing.T) {
	// Sanity check that header-name recognition and the chunk-extension
	// diagnostic helper are independent surfaces.
	if RecognizedChunkExtension([]byte("host")) {
		t.Errorf("RecognizedChunkExtension(host) = true, want false")
	}
}
