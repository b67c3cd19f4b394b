package app

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Varshithx/task-manager/internal/config"
)

func TestLevelForEnv(t *testing.T) {
	for env, want := range map[string]zerolog.Level{
		config.EnvLocal: zerolog.TraceLevel,
		config.EnvDev:   zerolog.DebugLevel,
		config.EnvProd:  zerolog.InfoLevel,
	} {
		level, err := levelForEnv(env)
		require.NoError(t, err)
		assert.Equal(t, want, level, env)
	}

	_, err := levelForEnv("staging")
	assert.Error(t, err)
}

func TestInitDefaultLogger(t *testing.T) {
	InitDefaultLogger()

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	assert.Equal(t, "timestamp", zerolog.TimestampFieldName)
}
