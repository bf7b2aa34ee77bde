package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/lumen/adapter"
	"github.com/pithecene-io/lumen/cli/reader"
	"github.com/pithecene-io/lumen/cli/render"
	"github.com/pithecene-io/lumen/cli/tui"
	"github.com/pithecene-io/lumen/decoder"
	"github.com/pithecene-io/lumen/iox"
	"github.com/pithecene-io/lumen/lode"
	"github.com/pithecene-io/lumen/metrics"
)

// DecodeCommand returns the decode command.
// Each file is decoded independently; the exit code reflects the first
// failure (2 format rejection, 3 corruption, 1 anything else).
func DecodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Decode RGBA8 images and report what was read",
		ArgsUsage: "<file>...",
		Flags: concat(
			ReadOnlyFlags(),
			SettingsFlags(),
			LimitFlags(),
			StorageFlags(),
			NotifyFlags(),
			[]cli.Flag{
				&cli.StringFlag{
					Name:    "out",
					Aliases: []string{"o"},
					Usage:   "Write raw RGBA pixels to this file (single input only)",
				},
				&cli.BoolFlag{
					Name:  "store",
					Usage: "Persist the decode record and pixels to storage",
				},
				&cli.BoolFlag{
					Name:  "stats",
					Usage: "Print the metrics snapshot after all decodes",
				},
			},
		),
		Action: decodeAction,
	}
}

func decodeAction(c *cli.Context) error {
	paths := c.Args().Slice()
	if len(paths) == 0 {
		return cli.Exit("at least one file required", exitFailure)
	}
	out := c.String("out")
	if out != "" && len(paths) > 1 {
		return cli.Exit("--out requires a single input file", exitFailure)
	}
	if c.Bool("tui") && len(paths) > 1 {
		return cli.Exit("--tui requires a single input file", exitFailure)
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
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

	backend := "none"
	if c.Bool("store") {
		backend = cfg.Storage.Backend
	}
	collector := metrics.NewCollector("zlib", backend)

	var store lode.Client
	var notifier adapter.Adapter
	if c.Bool("store") {
		client, err := openStorage(c.Context, cfg.Storage)
		if err != nil {
			return cli.Exit(fmt.Sprintf("storage: %v", err), exitFailure)
		}
		defer iox.DiscardClose(client)
		store = lode.NewInstrumentedClient(client, collector)

		notifier, err = openNotifier(cfg.Notify)
		if err != nil {
			return cli.Exit(fmt.Sprintf("notify: %v", err), exitFailure)
		}
		if notifier != nil {
			defer iox.DiscardClose(notifier)
		}
	} else if c.IsSet("notify-webhook") || c.IsSet("notify-redis") {
		return cli.Exit("--notify-* requires --store", exitFailure)
	}

	dec := decoder.New(decoder.Options{
		Limits:    cfg.HeaderLimits(),
		Inflate:   cfg.InflateOptions(),
		Logger:    logger,
		Collector: collector,
	})

	code := exitSuccess
	fail := func(n int) {
		if code == exitSuccess {
			code = n
		}
	}

	for _, path := range paths {
		res, err := dec.DecodeFile(path)
		if err != nil {
			fail(exitCode(err))
			if rerr := r.Render(reader.Failure(path, err)); rerr != nil {
				return rerr
			}
			continue
		}

		summary := reader.Summarize(res)
		if out != "" {
			if err := os.WriteFile(out, res.Pixels.Pix, 0o644); err != nil {
				return cli.Exit(fmt.Sprintf("write %s: %v", out, err), exitFailure)
			}
			summary.Output = out
		}
		if store != nil {
			if err := store.WriteDecode(c.Context, res); err != nil {
				logger.Sugar().Errorf("store %s: %v (%s)", path, err, lode.ErrorKind(err))
				fail(exitFailure)
			} else {
				summary.Stored = true
				if notifier != nil {
					ev := adapter.NewDecodeCompletedEvent(res, cfg.Storage.Dataset, cfg.Storage.Source, time.Now())
					if err := notifier.Publish(c.Context, ev); err != nil {
						logger.Sugar().Errorf("notify %s: %v", path, err)
						fail(exitFailure)
					}
				}
			}
		}

		if c.Bool("tui") {
			if err := r.RenderTUI(tui.ViewDecodeStats, summary); err != nil {
				return err
			}
			continue
		}
		if err := r.Render(summary); err != nil {
			return err
		}
	}

	if c.Bool("stats") {
		if err := r.Render(collector.Snapshot()); err != nil {
			return err
		}
	}

	if code != exitSuccess {
		return cli.Exit("", code)
	}
	return nil
}
