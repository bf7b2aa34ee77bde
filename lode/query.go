package lode

import (
	"context"
	"errors"
	"fmt"

	"github.com/justapithecus/lode/lode"
)

// ErrNoDecodesFound is returned when no decode records match.
var ErrNoDecodesFound = errors.New("no decode records found")

// QueryDecodes reads decode records, newest snapshot first.
// Filters by source and decodeID if non-empty; limit <= 0 means no limit.
func QueryDecodes(ctx context.Context, ds lode.Dataset, source, decodeID string, limit int) ([]map[string]any, error) {
	snapshots, err := ds.Snapshots(ctx)
	if err != nil {
		return nil, WrapReadError(err, fmt.Sprintf("%s/snapshots", ds.ID()))
	}

	var out []map[string]any
	for i := len(snapshots) - 1; i >= 0; i-- {
		snap := snapshots[i]

		if !isDecodeSnapshot(snap) {
			continue
		}
		if !snapshotMatchesFilter(snap, "source", source) {
			continue
		}
		if !snapshotMatchesFilter(snap, "decode_id", decodeID) {
			continue
		}

		data, err := ds.Read(ctx, snap.ID)
		if err != nil {
			return nil, WrapReadError(err, fmt.Sprintf("%s/snapshot/%s", ds.ID(), snap.ID))
		}

		// Manifest paths are a coarse pre-filter; record fields decide.
		for _, item := range data {
			record, ok := item.(map[string]any)
			if !ok || record["record_kind"] != RecordKindDecode {
				continue
			}
			if source != "" && toString(record["source"]) != source {
				continue
			}
			if decodeID != "" && toString(record["decode_id"]) != decodeID {
				continue
			}
			out = append(out, record)
			if limit > 0 && len(out) == limit {
				return out, nil
			}
		}
	}

	if len(out) == 0 {
		return nil, ErrNoDecodesFound
	}
	return out, nil
}

// toString converts a value to string, returning empty string for nil/non-string.
func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
