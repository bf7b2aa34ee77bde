// Package inflate provides the decompression service used by the decoder.
//
// The service is consumed through the Inflater interface so the decoder can
// be exercised with a stub. Zlib is the production implementation, backed by
// klauspost/compress.
package inflate

import (
	"bytes"
	"errors"
	"io"
	"math"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"

	"github.com/pithecene-io/lumen/iox"
	"github.com/pithecene-io/lumen/types"
)

// maxPrealloc caps the up-front output allocation. The buffer grows past it
// only as output arrives.
const maxPrealloc = 64 << 20

// ErrBufferTooSmall is returned by an Inflater when the decompressed output
// does not fit within the size hint. It is recoverable: Run retries with a
// larger hint.
var ErrBufferTooSmall = errors.New("output exceeds size hint")

// Inflater decompresses a complete compressed stream.
// sizeHint is the capacity the caller expects the output to need; an
// implementation must not return more than sizeHint bytes and signals
// ErrBufferTooSmall instead.
type Inflater interface {
	Inflate(compressed []byte, sizeHint int) ([]byte, error)
}

// Zlib inflates zlib-framed DEFLATE streams.
type Zlib struct{}

// Verify Zlib implements Inflater.
var _ Inflater = Zlib{}

// Inflate implements Inflater. The adler-32 trailer is verified when the
// whole stream fits within sizeHint.
func (Zlib) Inflate(compressed []byte, sizeHint int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer iox.DiscardClose(zr)

	if sizeHint < 0 {
		return nil, ErrBufferTooSmall
	}
	out := bytes.NewBuffer(make([]byte, 0, min(sizeHint, maxPrealloc)))
	// Read one byte past the hint to detect overflow without a second pass.
	limit := int64(sizeHint)
	if limit < math.MaxInt64 {
		limit++
	}
	n, err := io.CopyN(out, zr, limit)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if n > int64(sizeHint) {
		return nil, ErrBufferTooSmall
	}
	return out.Bytes(), nil
}

// Defaults for Options.
const (
	DefaultHeadroom    = 1024
	DefaultMaxAttempts = 3
)

// Options tunes Run.
type Options struct {
	// Headroom is added to the expected size to form the first hint.
	Headroom int
	// MaxAttempts bounds the number of Inflate calls.
	MaxAttempts int
}

func (o Options) withDefaults() Options {
	if o.Headroom <= 0 {
		o.Headroom = DefaultHeadroom
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	return o
}

// Result is the outcome of Run.
type Result struct {
	// Raw is the decompressed scanline stream.
	Raw []byte
	// Attempts is the number of Inflate calls made.
	Attempts int
	// Hint is the size hint of the successful call.
	Hint int
}

// Run inflates compressed with inf. The first hint is expected plus
// headroom, where expected is the exact raw size known from the header.
// The hint doubles on each ErrBufferTooSmall until MaxAttempts is reached.
// Every other error is terminal and returned as *types.DecompressionError.
func Run(inf Inflater, compressed []byte, expected int, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if expected < 0 {
		return nil, &types.DecompressionError{Code: types.DecompressCodeBuffer, Err: ErrBufferTooSmall}
	}
	hint := addSat(expected, opts.Headroom)

	for attempt := 1; ; attempt++ {
		raw, err := inf.Inflate(compressed, hint)
		if err == nil {
			return &Result{Raw: raw, Attempts: attempt, Hint: hint}, nil
		}
		if !errors.Is(err, ErrBufferTooSmall) {
			return nil, &types.DecompressionError{Code: classify(err), Err: err}
		}
		if attempt >= opts.MaxAttempts {
			return nil, &types.DecompressionError{Code: types.DecompressCodeBuffer, Err: err}
		}
		hint = addSat(hint, hint)
	}
}

// addSat adds two non-negative ints, saturating at math.MaxInt.
func addSat(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// classify maps a decompressor error to a failure code.
func classify(err error) string {
	var corrupt flate.CorruptInputError
	switch {
	case errors.As(err, &corrupt),
		errors.Is(err, zlib.ErrChecksum),
		errors.Is(err, zlib.ErrHeader),
		errors.Is(err, zlib.ErrDictionary),
		errors.Is(err, io.ErrUnexpectedEOF):
		return types.DecompressCodeData
	default:
		return types.DecompressCodeStream
	}
}
