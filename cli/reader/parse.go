package reader

import "errors"

// ParseDecodeRecord converts a stored decode record (map[string]any) to a
// StoredDecode. Numeric fields may be int64 (direct writes) or float64
// (JSON round-trips).
func ParseDecodeRecord(record map[string]any) (*StoredDecode, error) {
	if record == nil {
		return nil, errors.New("nil record")
	}

	d := &StoredDecode{
		DecodeID:        toString(record["decode_id"]),
		Path:            toString(record["path"]),
		Source:          toString(record["source"]),
		Day:             toString(record["day"]),
		DecodedAt:       toString(record["decoded_at"]),
		Width:           toInt64(record["width"]),
		Height:          toInt64(record["height"]),
		Chunks:          toInt64(record["chunks"]),
		CompressedBytes: toInt64(record["compressed_bytes"]),
		RawBytes:        toInt64(record["raw_bytes"]),
		DurationMS:      toInt64(record["duration_ms"]),
		LayoutVersion:   toString(record["layout_version"]),
	}

	// The write path always populates these; missing values indicate a
	// malformed record.
	if d.DecodeID == "" {
		return nil, errors.New("decode record missing required field: decode_id")
	}
	if d.Source == "" {
		return nil, errors.New("decode record missing required field: source")
	}
	if d.DecodedAt == "" {
		return nil, errors.New("decode record missing required field: decoded_at")
	}
	return d, nil
}

// ParseDecodeRecords parses every record, stopping at the first malformed one.
func ParseDecodeRecords(records []map[string]any) ([]StoredDecode, error) {
	out := make([]StoredDecode, 0, len(records))
	for _, rec := range records {
		d, err := ParseDecodeRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

// toInt64 converts a value to int64, handling float64 from JSON and int64 from direct writes.
func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	case int:
		return int64(n)
	case uint32:
		return int64(n)
	default:
		return 0
	}
}

// toString converts a value to string, returning empty string for nil/non-string.
func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
