package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/lumen/cli/reader"
	"github.com/pithecene-io/lumen/cli/render"
	"github.com/pithecene-io/lumen/cli/tui"
)

// InspectCommand returns the inspect command.
// Inspect walks the record stream without decompressing image data and
// reports every record up to the first failure.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "List the records of a file without decoding pixels",
		ArgsUsage: "<file>",
		Flags:     concat(ReadOnlyFlags(), SettingsFlags(), LimitFlags()),
		Action:    inspectAction,
	}
}

func inspectAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("exactly one file required", exitFailure)
	}
	path := c.Args().First()

	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}
	cfg, err := loadSettings(c)
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}

	report, err := reader.InspectFile(path, cfg.HeaderLimits())
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}

	if c.Bool("tui") {
		err = r.RenderTUI(tui.ViewInspectChunks, report)
	} else {
		err = r.Render(report)
	}
	if err != nil {
		return err
	}

	switch {
	case report.Err() != nil:
		return cli.Exit("", exitCode(report.Err()))
	case report.HeaderError != "":
		return cli.Exit("", exitFormatRejected)
	}
	return nil
}
