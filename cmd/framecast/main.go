package main

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/vtx-labs/framecast/internal/adapters/udp"
	"github.com/vtx-labs/framecast/internal/cliconfig"
	fclog "github.com/vtx-labs/framecast/pkg/log"

	"github.com/vtx-labs/framecast/pkg/framecast"
)

const helpDescription = `
Stream video frames over a lossy link without ever blocking the encoder.

Highlights:
  - Fixed buffer pool: memory is bounded at startup, no per-frame allocation.
  - Latest-frame-wins: under backpressure stale queued frames are dropped,
    keeping end-to-end latency flat.
  - Every submitted frame gets exactly one terminal status (Sent or Cancelled).
  - Configure via file ($HOME/.framecast/config.toml), FRAMECAST_* env, or flags.
`

var longHelp = strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  framecast --target 192.168.1.20:5004 --rate 30
  framecast --config $HOME/.framecast/config.toml --input frame.h264 --count 100
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "framecast",
		Short:   "Stream video frames over a lossy link without blocking the encoder",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.framecast/config.toml),
			// then env, then flag overrides via the changed map.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			if cfg.Verbose {
				log = log.Level(zerolog.DebugLevel)
			} else {
				log = log.Level(zerolog.InfoLevel)
			}

			log.Info().Interface("config", cfg).Msg("configuration")

			return run(cmd.Context(), cfg, cfgFile, changed, log)
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.framecast/config.toml)")
	root.Flags().StringVar(&cfg.TargetAddr, "target", cfg.TargetAddr, "UDP destination address")
	root.Flags().StringVar(&cfg.InputPath, "input", cfg.InputPath, "file whose contents are sent as each frame (default: synthetic frames)")

	root.Flags().IntVar(&cfg.FrameRate, "rate", cfg.FrameRate, "frames per second")
	root.Flags().IntVar(&cfg.FrameSize, "frame-size", cfg.FrameSize, "synthetic frame size in bytes")

	root.Flags().IntVar(&cfg.PoolCapacity, "pool-capacity", cfg.PoolCapacity, "number of pre-allocated frame buffers")
	root.Flags().IntVar(&cfg.BufferSize, "buffer-size", cfg.BufferSize, "capacity of each frame buffer in bytes")
	root.Flags().IntVar(&cfg.MaxFragment, "max-fragment", cfg.MaxFragment, "max payload bytes per fragment")
	root.Flags().IntVar(&cfg.NotifyBuffer, "notify-buffer", cfg.NotifyBuffer, "status event channel capacity")

	root.Flags().DurationVar(&cfg.WriteTimeout, "write-timeout", cfg.WriteTimeout, "UDP write deadline per fragment")
	root.Flags().DurationVar(&cfg.BusyBackoffInitial, "busy-backoff-initial", cfg.BusyBackoffInitial, "initial retry wait when transport is busy")
	root.Flags().DurationVar(&cfg.BusyBackoffMax, "busy-backoff-max", cfg.BusyBackoffMax, "max retry wait when transport is busy")

	root.Flags().DurationVar(&cfg.Duration, "duration", cfg.Duration, "stop after this long (0 = until signal)")
	root.Flags().IntVar(&cfg.Count, "count", cfg.Count, "stop after this many frames (0 = unlimited)")
	root.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "debug logging")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("framecast")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg cliconfig.Config, cfgFile string, changed map[string]bool, log zerolog.Logger) error {
	transport, err := udp.Dial(cfg.TargetAddr, cfg.WriteTimeout, fclog.NewZerologAdapterWithLogger(log))
	if err != nil {
		return err
	}
	defer transport.Close()

	libCfg := framecast.Config{
		PoolCapacity:       cfg.PoolCapacity,
		BufferSize:         cfg.BufferSize,
		MaxFragment:        cfg.MaxFragment,
		NotifyBuffer:       cfg.NotifyBuffer,
		BusyBackoffInitial: cfg.BusyBackoffInitial,
		BusyBackoffMax:     cfg.BusyBackoffMax,
	}

	sender, err := framecast.New(transport, libCfg,
		framecast.WithLogger(fclog.NewZerologAdapterWithLogger(log)),
		framecast.WithListener(framecast.StatusListenerFunc(func(cause framecast.Status, f *framecast.Frame) {
			log.Debug().Uint64("seq", f.Seq).Stringer("status", cause).Msg("frame terminal")
		})),
	)
	if err != nil {
		return fmt.Errorf("create sender: %w", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if err := sender.Start(ctx); err != nil {
		return fmt.Errorf("start sender: %w", err)
	}

	// Frame interval is hot-reloadable from the config file; flags still win.
	var interval atomic.Int64
	interval.Store(int64(time.Second / time.Duration(cfg.FrameRate)))

	var watcher *cliconfig.Watcher
	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		watcher = cliconfig.NewWatcher(cfgFile, 0, func(fc cliconfig.FileConfig) {
			if fc.FrameRate > 0 && !changed["rate"] {
				interval.Store(int64(time.Second / time.Duration(fc.FrameRate)))
				log.Info().Int("rate", fc.FrameRate).Msg("frame rate updated")
			}
		}, log)
		if err := watcher.Start(ctx); err != nil {
			log.Warn().Err(err).Msg("config watcher unavailable")
			watcher = nil
		}
	}
	if watcher != nil {
		defer watcher.Stop()
	}

	payload, err := framePayload(cfg)
	if err != nil {
		return err
	}

	var deadline <-chan time.Time
	if cfg.Duration > 0 {
		deadline = time.After(cfg.Duration)
	}

	log.Info().
		Str("target", cfg.TargetAddr).
		Str("local", transport.LocalAddr().String()).
		Int("rate", cfg.FrameRate).
		Int("frame_bytes", len(payload)).
		Msg("streaming")

	sent := 0
	timer := time.NewTimer(time.Duration(interval.Load()))
	defer timer.Stop()

loop:
	for {
		select {
		case <-sigCh:
			log.Info().Msg("received signal, stopping...")
			break loop
		case <-ctx.Done():
			break loop
		case <-deadline:
			break loop
		case <-timer.C:
		}

		// Stamp the frame counter so the receiver can spot drops.
		binary.BigEndian.PutUint64(payload, uint64(sent+1))

		if _, err := sender.Submit(payload); err != nil {
			if errors.Is(err, framecast.ErrPoolExhausted) {
				log.Debug().Msg("frame dropped, pool exhausted")
			} else {
				log.Error().Err(err).Msg("submit failed")
				break loop
			}
		}

		sent++
		if cfg.Count > 0 && sent >= cfg.Count {
			break loop
		}
		timer.Reset(time.Duration(interval.Load()))
	}

	if err := sender.Close(); err != nil {
		return fmt.Errorf("close sender: %w", err)
	}

	stats := sender.Stats()
	log.Info().
		Uint64("submitted", stats.Submitted).
		Uint64("sent", stats.Sent).
		Uint64("cancelled", stats.Cancelled).
		Uint64("evicted", stats.Evicted).
		Uint64("fragments", stats.FragmentsSent).
		Uint64("bytes", stats.BytesSent).
		Msg("done")
	return nil
}

// framePayload builds the bytes sent as every frame: the input file if
// configured, otherwise a synthetic pattern. The first 8 bytes are
// reserved for the frame counter stamp.
func framePayload(cfg cliconfig.Config) ([]byte, error) {
	if cfg.InputPath != "" {
		b, err := os.ReadFile(cfg.InputPath)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		if len(b) > cfg.BufferSize {
			return nil, fmt.Errorf("input of %d bytes exceeds buffer size %d", len(b), cfg.BufferSize)
		}
		if len(b) < 8 {
			return nil, fmt.Errorf("input must be at least 8 bytes")
		}
		return b, nil
	}

	size := cfg.FrameSize
	if size < 8 {
		size = 8
	}
	payload := make([]byte, size)
	for i := 8; i < len(payload); i++ {
		payload[i] = byte(i)
	}
	return payload, nil
}
