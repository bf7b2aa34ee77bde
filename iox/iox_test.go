package iox

import (
	"errors"
	"testing"
)

type spyCloser struct{ closes int }

func (s *spyCloser) Close() error { s.closes++; return errors.New("ignored") }

func TestDiscardClose(t *testing.T) {
	s := &spyCloser{}
	DiscardClose(s)
	if s.closes != 1 {
		t.Fatalf("closes = %d, want 1", s.closes)
	}
}

func TestCloseFunc_Deferred(t *testing.T) {
	s := &spyCloser{}
	fn := CloseFunc(s)
	if s.closes != 0 {
		t.Fatal("Close called before invoking returned func")
	}
	fn()
	fn()
	if s.closes != 2 {
		t.Fatalf("closes = %d, want 2", s.closes)
	}
}

func TestDiscardErr(t *testing.T) {
	calls := 0
	DiscardErr(func() error {
		calls++
		return errors.New("ignored")
	})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}
