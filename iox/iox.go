// Package iox holds small I/O cleanup helpers shared by the decode stages
// and the CLI.
package iox

import "io"

// DiscardClose closes c and drops the error. For deferred closes of
// read-only resources (input files, decompressor readers), where a close
// error cannot change the outcome:
//
//	defer iox.DiscardClose(f)
func DiscardClose(c io.Closer) { _ = c.Close() }

// CloseFunc returns a func that closes c, for t.Cleanup registration:
//
//	t.Cleanup(iox.CloseFunc(client))
func CloseFunc(c io.Closer) func() {
	return func() { _ = c.Close() }
}

// DiscardErr calls fn and drops its error, for deferred flushes of
// terminal output:
//
//	defer iox.DiscardErr(w.Flush)
func DiscardErr(fn func() error) { _ = fn() }
