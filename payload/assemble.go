// Package payload joins the image-data records into one compressed stream.
package payload

import "github.com/pithecene-io/lumen/types"

// Assemble concatenates the payloads of every image-data record in seq, in
// sequence order and without separators. The records form a single logical
// compressed stream, so order matters.
func Assemble(seq []*types.Record) ([]byte, error) {
	total := 0
	count := 0
	for _, rec := range seq {
		if rec.IsImageData() {
			total += len(rec.Payload)
			count++
		}
	}
	if count == 0 {
		return nil, types.ErrNoImageData
	}

	out := make([]byte, 0, total)
	for _, rec := range seq {
		if rec.IsImageData() {
			out = append(out, rec.Payload...)
		}
	}
	return out, nil
}
