package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "warn", "json")
	log.Info().Msg("hidden")
	log.Warn().Str("k", "v").Msg("shown")

	var ev map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	assert.Equal(t, "warn", ev["level"])
	assert.Equal(t, "shown", ev["message"])
	assert.Equal(t, "v", ev["k"])
}

func TestNewLoggerUnknownLevelDefaultsToInfo(t *testing.T) {
	log := NewLogger(&bytes.Buffer{}, "loud", "console")
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestBuildAppRejectsInvalidConfig(t *testing.T) {
	v := viper.New()
	v.Set("output", "yaml")
	_, err := BuildApp(context.Background(), v)
	assert.Error(t, err)
}
