package lode

import (
	"strings"

	"github.com/justapithecus/lode/lode"
)

// Partition keys, in layout order.
var partitionKeys = []string{"source", "day", "decode_id", "record_kind"}

// NewReadDataset creates a Lode Dataset.
// Reads and writes share codec and layout so records round-trip.
func NewReadDataset(dataset string, factory lode.StoreFactory) (lode.Dataset, error) {
	return lode.NewDataset(
		lode.DatasetID(dataset),
		factory,
		lode.WithHiveLayout(partitionKeys...),
		lode.WithCodec(lode.NewJSONLCodec()),
	)
}

// NewReadDatasetFS creates a read Dataset with filesystem storage.
func NewReadDatasetFS(dataset, rootPath string) (lode.Dataset, error) {
	return NewReadDataset(dataset, lode.NewFSFactory(rootPath))
}

// isDecodeSnapshot checks if a snapshot contains decode records
// by examining file paths for the record_kind=decode partition.
func isDecodeSnapshot(snap *lode.DatasetSnapshot) bool {
	for _, f := range snap.Manifest.Files {
		if matchesPartitionValue(f.Path, "record_kind", RecordKindDecode) {
			return true
		}
	}
	return false
}

// snapshotMatchesFilter checks if a snapshot's file paths match
// the given partition key=value filter.
func snapshotMatchesFilter(snap *lode.DatasetSnapshot, key, value string) bool {
	if value == "" {
		return true
	}
	for _, f := range snap.Manifest.Files {
		if matchesPartitionValue(f.Path, key, value) {
			return true
		}
	}
	return false
}

// matchesPartitionValue checks if a Hive-partitioned path contains an exact
// key=value segment, so source=a does not match source=ab.
func matchesPartitionValue(path, key, value string) bool {
	segment := key + "=" + value
	for _, part := range strings.Split(path, "/") {
		if part == segment {
			return true
		}
	}
	return false
}
