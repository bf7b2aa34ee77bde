package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/lumen/cli/reader"
	"github.com/pithecene-io/lumen/cli/render"
)

// listWarningThreshold is the number of items above which we warn about using --limit.
const listWarningThreshold = 100

// isStderrTTY returns true if stderr is a TTY.
func isStderrTTY() bool {
	info, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// ListCommand returns the list command.
// List returns stored decode records, newest first.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List stored decode records",
		Flags: concat(
			ReadOnlyFlags(),
			SettingsFlags(),
			StorageFlags(),
			[]cli.Flag{
				&cli.StringFlag{
					Name:  "source",
					Usage: "Only records from this source partition",
				},
				&cli.StringFlag{
					Name:  "decode-id",
					Usage: "Only the record with this decode ID",
				},
				&cli.IntFlag{
					Name:  "limit",
					Usage: "Maximum number of records to return (0 = no limit)",
					Value: 0,
				},
			},
		),
		Action: listAction,
	}
}

func listAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}

	// TUI not supported for list
	if c.Bool("tui") {
		return cli.Exit("--tui is not supported for list", exitFailure)
	}

	cfg, err := loadSettings(c)
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}

	limit := c.Int("limit")
	records, err := queryStored(c.Context, cfg.Storage, c.String("source"), c.String("decode-id"), limit)
	if err != nil {
		return cli.Exit(fmt.Sprintf("list: %v", err), exitFailure)
	}
	results, err := reader.ParseDecodeRecords(records)
	if err != nil {
		return cli.Exit(fmt.Sprintf("list: %v", err), exitFailure)
	}

	// Warn if output is large and --limit was not specified (TTY only to avoid noise in pipelines)
	if len(results) > listWarningThreshold && limit == 0 && isStderrTTY() {
		fmt.Fprintf(os.Stderr, "Warning: returning %d results. Consider using --limit to reduce output.\n\n", len(results))
	}

	return r.Render(results)
}
