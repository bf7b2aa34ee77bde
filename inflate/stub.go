package inflate

import "sync"

// Stub is an Inflater that records calls and returns canned results.
// Use it to assert whether, and with which hints, the service was invoked.
type Stub struct {
	mu    sync.Mutex
	Calls []StubCall

	// Output is returned on success (truncated to the hint if longer).
	Output []byte
	// Err, if set, is returned from every call.
	Err error
	// TooSmall makes the first TooSmall calls return ErrBufferTooSmall.
	TooSmall int
}

// StubCall is a recorded Inflate call.
type StubCall struct {
	CompressedLen int
	SizeHint      int
}

// Verify Stub implements Inflater.
var _ Inflater = (*Stub)(nil)

// Inflate implements Inflater by recording the call.
func (s *Stub) Inflate(compressed []byte, sizeHint int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, StubCall{CompressedLen: len(compressed), SizeHint: sizeHint})

	if s.Err != nil {
		return nil, s.Err
	}
	if len(s.Calls) <= s.TooSmall {
		return nil, ErrBufferTooSmall
	}
	out := s.Output
	if sizeHint < 0 {
		return nil, ErrBufferTooSmall
	}
	if len(out) > sizeHint {
		out = out[:sizeHint]
	}
	return append([]byte(nil), out...), nil
}

// CallCount returns the number of recorded calls.
func (s *Stub) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}
