// Package cmd provides CLI commands for the lumen binary.
package cmd

import "github.com/urfave/cli/v2"

// Shared flags for read-only output.
var (
	// FormatFlag selects output format: json, table, yaml.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, table, yaml",
	}

	// NoColorFlag disables colored output.
	NoColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable colored output",
	}

	// TUIFlag enables Bubble Tea interactive mode.
	// Only valid for inspect and decode.
	TUIFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Enable interactive TUI mode (inspect, decode only)",
	}
)

// Settings flags shared by every command that reads lumen.yaml.
var (
	// ConfigFlag names the YAML config file.
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to config file (default: ./lumen.yaml if present)",
		EnvVars: []string{"LUMEN_CONFIG"},
	}

	// LogLevelFlag overrides log.level.
	LogLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Log level: debug, info, warn, error",
		EnvVars: []string{"LUMEN_LOG_LEVEL"},
	}
)

// ReadOnlyFlags returns the shared flags for all output-producing commands.
// Includes --tui so that unsupported commands can provide explicit error messages
// instead of generic "flag not defined" errors.
func ReadOnlyFlags() []cli.Flag {
	return []cli.Flag{
		FormatFlag,
		NoColorFlag,
		TUIFlag,
	}
}

// SettingsFlags returns the config and logging flags.
func SettingsFlags() []cli.Flag {
	return []cli.Flag{
		ConfigFlag,
		LogLevelFlag,
	}
}

// LimitFlags returns flags overriding the limits and inflate config sections.
func LimitFlags() []cli.Flag {
	return []cli.Flag{
		&cli.UintFlag{
			Name:  "max-width",
			Usage: "Reject images wider than this (0 = container maximum, 2147483647)",
		},
		&cli.UintFlag{
			Name:  "max-height",
			Usage: "Reject images taller than this (0 = container maximum, 2147483647)",
		},
		&cli.IntFlag{
			Name:  "inflate-headroom",
			Usage: "Extra bytes added to the decompression size hint",
		},
		&cli.IntFlag{
			Name:  "inflate-attempts",
			Usage: "Decompression attempts before giving up",
		},
	}
}

// StorageFlags returns flags overriding the storage config section.
func StorageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "storage-backend",
			Usage: "Storage backend: fs or s3",
		},
		&cli.StringFlag{
			Name:  "storage-path",
			Usage: "Storage path (fs: directory, s3: bucket/prefix)",
		},
		&cli.StringFlag{
			Name:  "storage-dataset",
			Usage: "Dataset name",
		},
		&cli.StringFlag{
			Name:  "storage-source",
			Usage: "Source partition value",
		},
		&cli.StringFlag{
			Name:  "storage-region",
			Usage: "AWS region for the s3 backend (optional, uses default chain)",
		},
		&cli.StringFlag{
			Name:  "storage-endpoint",
			Usage: "Custom S3 endpoint URL for S3-compatible providers",
		},
		&cli.BoolFlag{
			Name:  "storage-s3-path-style",
			Usage: "Force path-style S3 addressing",
		},
	}
}

// NotifyFlags returns flags overriding the notify config section.
func NotifyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "notify-webhook",
			Usage: "POST a decode_completed event to this URL after each stored decode",
		},
		&cli.StringFlag{
			Name:  "notify-redis",
			Usage: "PUBLISH a decode_completed event to this Redis URL after each stored decode",
		},
		&cli.StringFlag{
			Name:  "notify-redis-channel",
			Usage: "Redis pub/sub channel (default lumen:decode_completed)",
		},
	}
}

func concat(groups ...[]cli.Flag) []cli.Flag {
	var out []cli.Flag
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
