package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/Varshithx/task-manager/internal/config"
)

const serviceName = "task-manager"

var globalLogger zerolog.Logger

// InitDefaultLogger wires a bootstrap logger before the config is read,
// so config and connection failures still come out structured.
func InitDefaultLogger() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimestampFieldName = "timestamp"

	globalLogger = zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Str("service", serviceName).
		Int("pid", os.Getpid()).
		Logger()

	globalLogger.Info().Msg("bootstrap logger ready")
}

// MustInitApplicationLogger reshapes the bootstrap logger for the
// configured environment: pretty console output locally, JSON at the
// environment's level everywhere else.
func MustInitApplicationLogger() {
	cfg := config.Global()

	level, err := levelForEnv(cfg.Env)
	if err != nil {
		globalLogger.Error().
			Str("env", cfg.Env).
			Msg("unknown env")
		panic(err)
	}
	zerolog.SetGlobalLevel(level)

	w := io.Writer(os.Stdout)
	if cfg.Env == config.EnvLocal {
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = os.Stdout
		w = consoleWriter
	}

	globalLogger = globalLogger.Output(w)
	globalLogger.Info().
		Str("env", cfg.Env).
		Str("level", level.String()).
		Msg("application logger ready")
}

func levelForEnv(env string) (zerolog.Level, error) {
	switch env {
	case config.EnvLocal:
		return zerolog.TraceLevel, nil
	case config.EnvDev:
		return zerolog.DebugLevel, nil
	case config.EnvProd:
		return zerolog.InfoLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown env: %s", env)
	}
}
