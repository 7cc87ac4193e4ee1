package wire

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mithrel/answerview/internal/config"
)

// App aggregates the resolved config and logger for injection.
type App struct {
	Cfg *viper.Viper
	Log zerolog.Logger
}

// BuildApp validates cfg and sets up logging to stderr.
func BuildApp(ctx context.Context, cfg *viper.Viper) (*App, error) {
	if err := config.CheckConfigValidity(cfg); err != nil {
		return nil, err
	}
	return &App{
		Cfg: cfg,
		Log: NewLogger(os.Stderr, cfg.GetString("log.level"), cfg.GetString("log.format")),
	}, nil
}

// NewLogger builds a zerolog logger. Format "json" writes raw events;
// anything else uses the console writer.
func NewLogger(w io.Writer, level, format string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := w
	if strings.ToLower(strings.TrimSpace(format)) != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	logger := zerolog.New(out).Level(lvl).With().Timestamp()
	if lvl <= zerolog.DebugLevel {
		logger = logger.Caller()
	}
	return logger.Logger()
}
