package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/lumen/cli/tui"
	"github.com/pithecene-io/lumen/decoder"
	"github.com/pithecene-io/lumen/iox"
)

// ViewCommand returns the view command, which decodes a file and draws it
// in the terminal.
func ViewCommand() *cli.Command {
	return &cli.Command{
		Name:      "view",
		Usage:     "Decode an image and show it in the terminal",
		ArgsUsage: "<file>",
		Flags:     concat(SettingsFlags(), LimitFlags()),
		Action:    viewAction,
	}
}

func viewAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("exactly one file required", exitFailure)
	}

	cfg, err := loadSettings(c)
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}
	defer iox.DiscardErr(logger.Sync)

	dec := decoder.New(decoder.Options{
		Limits:  cfg.HeaderLimits(),
		Inflate: cfg.InflateOptions(),
		Logger:  logger,
	})
	res, err := dec.DecodeFile(c.Args().First())
	if err != nil {
		return cli.Exit(err.Error(), exitCode(err))
	}

	return tui.Run(tui.ViewImage, res)
}
