package types

// Version is the canonical project version.
// The CLI, the storage record layout and the header sidecar all report it.
const Version = "0.3.0"

// RecordLayoutVersion is written into every persisted decode record.
// It moves in lockstep with Version.
const RecordLayoutVersion = Version
