// Package metrics provides decode metrics collection.
//
// The Collector accumulates counters across every decode of one process
// (a CLI invocation may decode several files). It is a leaf package: error
// kinds arrive as plain strings so it does not depend on the types package.
package metrics

import "sync"

// Snapshot is an immutable point-in-time view of all counters.
type Snapshot struct {
	// Decode lifecycle
	DecodesStarted   int64 `json:"decodes_started"`
	DecodesCompleted int64 `json:"decodes_completed"`
	DecodesFailed    int64 `json:"decodes_failed"`
	// FailuresByKind is keyed by error kind (e.g. "checksum_mismatch").
	FailuresByKind map[string]int64 `json:"failures_by_kind"`

	// Stream
	ChunksRead      int64 `json:"chunks_read"`
	ImageDataChunks int64 `json:"image_data_chunks"`
	CompressedBytes int64 `json:"compressed_bytes"`
	RawBytes        int64 `json:"raw_bytes"`
	PixelBytes      int64 `json:"pixel_bytes"`
	InflateRetries  int64 `json:"inflate_retries"`

	// Storage
	StorageWriteSuccess int64 `json:"storage_write_success"`
	StorageWriteFailure int64 `json:"storage_write_failure"`

	// Dimensions
	Inflater       string `json:"inflater"`
	StorageBackend string `json:"storage_backend"`
}

// Collector accumulates decode metrics.
// Thread-safe via sync.Mutex. All methods are nil-receiver safe.
type Collector struct {
	mu sync.Mutex

	decodesStarted   int64
	decodesCompleted int64
	decodesFailed    int64
	failuresByKind   map[string]int64

	chunksRead      int64
	imageDataChunks int64
	compressedBytes int64
	rawBytes        int64
	pixelBytes      int64
	inflateRetries  int64

	storageWriteSuccess int64
	storageWriteFailure int64

	inflater       string
	storageBackend string
}

// NewCollector creates a Collector with dimension labels.
// storageBackend is empty when decodes are not persisted.
func NewCollector(inflater, storageBackend string) *Collector {
	return &Collector{
		failuresByKind: make(map[string]int64),
		inflater:       inflater,
		storageBackend: storageBackend,
	}
}

// --- Decode lifecycle ---

// IncDecodeStarted records a decode start.
func (c *Collector) IncDecodeStarted() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.decodesStarted++
	c.mu.Unlock()
}

// IncDecodeCompleted records a decode that produced a pixel buffer.
func (c *Collector) IncDecodeCompleted() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.decodesCompleted++
	c.mu.Unlock()
}

// IncDecodeFailed records a failed decode under its error kind.
func (c *Collector) IncDecodeFailed(kind string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.decodesFailed++
	c.failuresByKind[kind]++
	c.mu.Unlock()
}

// --- Stream ---

// AddChunks records records read by the chunk reader.
func (c *Collector) AddChunks(total, imageData int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.chunksRead += int64(total)
	c.imageDataChunks += int64(imageData)
	c.mu.Unlock()
}

// AddInflate records one decompression: input size, output size, and how
// many attempts it took.
func (c *Collector) AddInflate(compressed, raw, attempts int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.compressedBytes += int64(compressed)
	c.rawBytes += int64(raw)
	if attempts > 1 {
		c.inflateRetries += int64(attempts - 1)
	}
	c.mu.Unlock()
}

// AddPixels records reconstructed bytes.
func (c *Collector) AddPixels(n int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.pixelBytes += int64(n)
	c.mu.Unlock()
}

// --- Storage ---

// IncStorageWriteSuccess records a successful persisted decode.
func (c *Collector) IncStorageWriteSuccess() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.storageWriteSuccess++
	c.mu.Unlock()
}

// IncStorageWriteFailure records a failed persist.
func (c *Collector) IncStorageWriteFailure() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.storageWriteFailure++
	c.mu.Unlock()
}

// --- Snapshot ---

// Snapshot returns an immutable point-in-time view of all metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	failures := make(map[string]int64, len(c.failuresByKind))
	for k, v := range c.failuresByKind {
		failures[k] = v
	}

	return Snapshot{
		DecodesStarted:   c.decodesStarted,
		DecodesCompleted: c.decodesCompleted,
		DecodesFailed:    c.decodesFailed,
		FailuresByKind:   failures,

		ChunksRead:      c.chunksRead,
		ImageDataChunks: c.imageDataChunks,
		CompressedBytes: c.compressedBytes,
		RawBytes:        c.rawBytes,
		PixelBytes:      c.pixelBytes,
		InflateRetries:  c.inflateRetries,

		StorageWriteSuccess: c.storageWriteSuccess,
		StorageWriteFailure: c.storageWriteFailure,

		Inflater:       c.inflater,
		StorageBackend: c.storageBackend,
	}
}
