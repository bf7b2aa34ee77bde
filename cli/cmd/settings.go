package cmd

import (
	"context"
	"errors"
	"fmt"

	lodelib "github.com/justapithecus/lode/lode"
	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/lumen/adapter"
	"github.com/pithecene-io/lumen/adapter/redis"
	"github.com/pithecene-io/lumen/adapter/webhook"
	"github.com/pithecene-io/lumen/cli/config"
	"github.com/pithecene-io/lumen/iox"
	"github.com/pithecene-io/lumen/lode"
	"github.com/pithecene-io/lumen/log"
	"github.com/pithecene-io/lumen/types"
)

// Exit codes for decode, inspect and view.
const (
	exitSuccess        = 0
	exitFailure        = 1 // usage, I/O or storage error
	exitFormatRejected = 2 // not a supported RGBA8 container
	exitCorrupt        = 3 // recognised container with damaged data
)

// exitCode maps a decode error to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case types.IsFormatRejection(err):
		return exitFormatRejected
	case types.IsCorruption(err):
		return exitCorrupt
	default:
		return exitFailure
	}
}

// loadSettings loads the config file and applies flag overrides.
// Flags always win over the file.
func loadSettings(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadOptional(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}

	dims := []struct {
		flag  string
		field *uint32
	}{
		{"max-width", &cfg.Limits.MaxWidth},
		{"max-height", &cfg.Limits.MaxHeight},
	}
	for _, d := range dims {
		if !c.IsSet(d.flag) {
			continue
		}
		v := c.Uint(d.flag)
		if v > types.MaxDimension {
			return nil, fmt.Errorf("--%s must be <= %d, got %d", d.flag, types.MaxDimension, v)
		}
		*d.field = uint32(v)
	}
	if c.IsSet("inflate-headroom") {
		cfg.Inflate.Headroom = c.Int("inflate-headroom")
	}
	if c.IsSet("inflate-attempts") {
		cfg.Inflate.MaxAttempts = c.Int("inflate-attempts")
	}

	overrides := []struct {
		flag  string
		field *string
	}{
		{"storage-backend", &cfg.Storage.Backend},
		{"storage-path", &cfg.Storage.Path},
		{"storage-dataset", &cfg.Storage.Dataset},
		{"storage-source", &cfg.Storage.Source},
		{"storage-region", &cfg.Storage.Region},
		{"storage-endpoint", &cfg.Storage.Endpoint},
	}
	for _, o := range overrides {
		if c.IsSet(o.flag) {
			*o.field = c.String(o.flag)
		}
	}
	notifyOverrides := []struct {
		flag  string
		field *string
	}{
		{"notify-webhook", &cfg.Notify.WebhookURL},
		{"notify-redis", &cfg.Notify.RedisURL},
		{"notify-redis-channel", &cfg.Notify.RedisChannel},
	}
	for _, o := range notifyOverrides {
		if c.IsSet(o.flag) {
			*o.field = c.String(o.flag)
		}
	}
	if c.IsSet("storage-s3-path-style") {
		cfg.Storage.S3PathStyle = c.Bool("storage-s3-path-style")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger. Each decode replaces the decode
// context via Logger.With.
func newLogger(cfg *config.Config) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return log.NewLogger(types.NewDecodeMeta(""), level), nil
}

func s3Config(sc config.StorageConfig) lode.S3Config {
	bucket, prefix := lode.ParseS3Path(sc.Path)
	return lode.S3Config{
		Bucket:       bucket,
		Prefix:       prefix,
		Region:       sc.Region,
		Endpoint:     sc.Endpoint,
		UsePathStyle: sc.S3PathStyle,
	}
}

// openStorage builds the write client for the configured backend.
func openStorage(ctx context.Context, sc config.StorageConfig) (*lode.LodeClient, error) {
	cfg := lode.Config{Dataset: sc.Dataset, Source: sc.Source}
	switch sc.Backend {
	case config.BackendFS:
		if sc.Path == "" {
			return nil, errors.New("storage.path is required for the fs backend")
		}
		return lode.NewLodeClient(cfg, sc.Path)
	case config.BackendS3:
		return lode.NewLodeS3Client(ctx, cfg, s3Config(sc))
	default:
		return nil, fmt.Errorf("storage is disabled (backend %q)", sc.Backend)
	}
}

// openNotifier builds one adapter per configured URL. It returns nil when
// notifications are disabled.
func openNotifier(nc config.NotifyConfig) (adapter.Adapter, error) {
	if !nc.Enabled() {
		return nil, nil
	}

	var fan adapter.Fanout
	if nc.WebhookURL != "" {
		a, err := webhook.New(webhook.Config{
			URL:     nc.WebhookURL,
			Headers: nc.WebhookHeaders,
			Timeout: nc.Timeout,
			Retries: nc.Retries,
		})
		if err != nil {
			return nil, err
		}
		fan = append(fan, a)
	}
	if nc.RedisURL != "" {
		a, err := redis.New(redis.Config{
			URL:     nc.RedisURL,
			Channel: nc.RedisChannel,
			Timeout: nc.Timeout,
			Retries: nc.Retries,
			List:    nc.RedisList,
			ListMax: nc.RedisListMax,
		})
		if err != nil {
			iox.DiscardClose(fan)
			return nil, err
		}
		fan = append(fan, a)
	}
	return fan, nil
}

// queryStored reads decode records from the configured backend.
// A dataset with no matching records yields an empty slice.
func queryStored(ctx context.Context, sc config.StorageConfig, source, decodeID string, limit int) ([]map[string]any, error) {
	var ds lodelib.Dataset
	var err error
	switch sc.Backend {
	case config.BackendFS:
		ds, err = lode.NewReadDatasetFS(sc.Dataset, sc.Path)
	case config.BackendS3:
		factory, ferr := lode.NewS3Factory(ctx, s3Config(sc))
		if ferr != nil {
			return nil, ferr
		}
		ds, err = lode.NewReadDataset(sc.Dataset, factory)
	default:
		return nil, fmt.Errorf("storage is disabled (backend %q)", sc.Backend)
	}
	if err != nil {
		return nil, err
	}

	records, err := lode.QueryDecodes(ctx, ds, source, decodeID, limit)
	if errors.Is(err, lode.ErrNoDecodesFound) {
		return []map[string]any{}, nil
	}
	return records, err
}
