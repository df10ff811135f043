//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"trail/app"
	"trail/hal"
	"trail/internal/buildinfo"
	"trail/internal/config"
	"trail/internal/monitor"
)

func main() {
	var (
		cfgPath    = flag.String("config", "", "YAML config file.")
		mode       = flag.String("mode", config.ModeWindow, "window|headless|tui.")
		backend    = flag.String("backend", config.BackendSim, "sim|periph.")
		scheduling = flag.String("scheduling", config.SchedulingBlocking, "blocking|cooperative.")
		latch      = flag.Bool("latch", false, "Fire the ritual once per arrival at the target.")
		dial       = flag.Int("dial", -1, "Headless: script the joystick to dial this number.")
		duration   = flag.Duration("duration", 0, "Headless: stop after this long (0 = run until interrupted).")
		monAddr    = flag.String("monitor", "", "Serve the snapshot monitor on this address.")
		logLevel   = flag.String("log-level", "info", "debug|info|warn|error.")
	)
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		c, err := config.Load(*cfgPath)
		if err != nil {
			fatalf("%v", err)
		}
		cfg = c
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *mode
		case "backend":
			cfg.Backend = *backend
		case "scheduling":
			cfg.Scheduling = *scheduling
		case "latch":
			cfg.Latch = *latch
		case "dial":
			cfg.Headless.Dial = *dial
		case "duration":
			cfg.Headless.Duration = *duration
		case "monitor":
			cfg.Monitor.Addr = *monAddr
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		fatalf("config: %v", err)
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		fatalf("log: %v", err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("exit")
		closeLog()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	log.Info().
		Str("build", buildinfo.String()).
		Str("mode", cfg.Mode).
		Str("backend", cfg.Backend).
		Str("scheduling", cfg.Scheduling).
		Bool("latch", cfg.Latch).
		Msg("trail starting")

	var hub *monitor.Hub
	if cfg.Monitor.Addr != "" {
		hub = monitor.New(log)
		go func() {
			if err := hub.Serve(ctx, cfg.Monitor.Addr); err != nil {
				log.Error().Err(err).Msg("monitor stopped")
			}
		}()
	}

	appCfg := app.DefaultConfig()
	appCfg.Latch = cfg.Latch
	appCfg.Cooperative = cfg.Cooperative()
	appCfg.PollMs = cfg.PollMs
	appCfg.TraceScroll = log.GetLevel() <= zerolog.DebugLevel

	runner := func(ctx context.Context, h hal.HAL) error {
		c, err := app.New(h, appCfg)
		if err != nil {
			return err
		}
		if hub != nil {
			c.Observe(hub.Publish)
		}
		return c.Run(ctx)
	}

	hostCfg := hal.HostConfig{Log: &log}

	if cfg.Backend == config.BackendPeriph {
		p := cfg.Periph
		return hal.RunPeriph(ctx, runner, hal.PeriphConfig{
			Log:              &log,
			I2CBus:           p.I2CBus,
			ADCAddress:       p.ADCAddress,
			ChannelX:         p.ChannelX,
			ChannelY:         p.ChannelY,
			SupplyMilliVolts: p.SupplyMilliVolts,
			InvertX:          p.InvertX,
			SegCLK:           p.SegCLK,
			SegDIO:           p.SegDIO,
			LCDData:          p.LCDData,
			LCDRS:            p.LCDRS,
			LCDE:             p.LCDE,
			LEDs:             p.LEDs,
		})
	}

	switch cfg.Mode {
	case config.ModeHeadless:
		if cfg.Headless.Dial >= 0 {
			script, err := app.DialScript(cfg.Headless.Dial, 0)
			if err != nil {
				return err
			}
			hostCfg.Script = script
			log.Info().Int("dial", cfg.Headless.Dial).Int("moves", len(script)).Msg("scripted joystick")
		}
		hcfg := hal.HeadlessConfig{Host: hostCfg, Duration: cfg.Headless.Duration}
		if cfg.Headless.PanelEvery > 0 {
			hcfg.Every = cfg.Headless.PanelEvery
			hcfg.OnPanel = func(s hal.PanelState) {
				log.Info().
					Str("number", s.Digits()).
					Str("row0", s.Lines[0]).
					Str("row1", s.Lines[1]).
					Bool("lamp", s.Lamp).
					Msg("panel")
			}
		}
		return hal.RunHeadless(ctx, runner, hcfg)
	case config.ModeTUI:
		return hal.RunTerminal(ctx, runner, hal.TerminalConfig{Host: hostCfg})
	default:
		return hal.RunWindow(ctx, runner, hal.WindowConfig{Host: hostCfg, Scale: cfg.Scale})
	}
}

// newLogger writes to stderr, or to the configured file in tui mode where
// the terminal is taken.
func newLogger(cfg *config.Config) (zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Logger{}, nil, err
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	closer := func() {}
	if cfg.Mode == config.ModeTUI {
		out = io.Discard
		if cfg.LogFile != "" {
			f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return zerolog.Logger{}, nil, err
			}
			out = f
			closer = func() { _ = f.Close() }
		}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), closer, nil
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
