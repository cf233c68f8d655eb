// Copyright 2026 The httpwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package httpwire

import "testing"

func TestQueryIterator(t *testing.T) {
	type pair struct {
		name, value string
		hasValue    bool
	}
	tests := []struct {
		in   string
		want []pair
	}{
		{"a=1&b=2", []pair{{"a", "1", true}, {"b", "2", true}}},
		{"a=1;b=2", []pair{{"a", "1", true}, {"b", "2", true}}},
		{"flag&a=1", []pair{{"flag", "", false}, {"a", "1", true}}},
		{"name=a+b%20c", []pair{{"name", "a b c", true}}},
		{"", nil},
		{"a=1&&b=2", []pair{{"a", "1", true}, {"b", "2", true}}},
	}
	for _, c := range tests {
		q := NewQueryIterator([]byte(c.in))
		var got []pair
		for {
			name, value, hasValue, ok := q.Next()
			if !ok {
				break
			}
			got = append(got, pair{name, value, hasValue})
		}
		if len(got) != len(c.want) {
			t.Fatalf("QueryIterator(%q) = %d pairs %v, want %d %v", c.in, len(got), got, len(c.want), c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("QueryIterator(%q)[%d] = %+v, want %+v", c.in, i, got[i], c.want[i])
			}
		}
	}
}

func TestQueryIteratorDecodeError(t *testing.T) {
	q := NewQueryIterator([]byte("a=%zz"))
	var errByte byte
	var errSide QueryErrSide
	called := false
	q.OnError(func(side QueryErrSide, b byte) {
		called = true
		errSide = side
		errByte = b
	})
	_, _, _, ok := q.Next()
	if ok {
		t.Fatalf("Next(): want ok=false for malformed escape")
	}
	if !called {
		t.Fatalf("OnError sink was never invoked")
	}
	if errSide != QueryErrValue {
		t.Errorf("errSide = %v, want QueryErrValue", errSide)
	}
	if errByte != 'z' {
		t.Errorf("errByte = %q, want 'z'", errByte)
	}
	if _, _, _, ok := q.Next(); ok {
		t.Errorf("Next() after error: want ok=false (halted)")
	}
}

func TestQueryIteratorDecodeErrorSkippedWithoutSink(t *testing.T) {
	// No OnError sink registered: a malformed pair is skipped rather than
	// halting iteration, matching OnError's documented default behavior.
	q := NewQueryIterator([]byte("a=%zz&b=2"))
	name, value, hasValue, ok := q.Next()
	if !ok || name != "b" || value != "2" || !hasValue {
		t.Fatalf("Next() = (%q, %q, %v, %v), want (b, 2, true, true)", name, value, hasValue, ok)
	}
	if _, _, _, ok := q.Next(); ok {
		t.Errorf("Next(): expected exhaustion after the one valid pair")
	}
}

func TestQueryIteratorEmptyNameSkipped(t *testing.T) {
	q := NewQueryIterator([]byte("=orphan&a=1"))
	name, value, hasValue, ok := q.Next()
	if !ok || name != "a" || value != "1" || !hasValue {
		t.Fatalf("Next() = (%q, %q, %v, %v), want (a, 1, true, true)", name, value, hasValue, ok)
	}
	if _, _, _, ok := q.Next(); ok {
		t.Errorf("Next(): expected exhaustion after the one real pair")
	}
}
