package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalconfig "github.com/billy1624/champ/internal/config"
)

func TestEmbeddedConfigs_ParseWithoutUnknownFields(t *testing.T) {
	for name, raw := range map[string][]byte{
		"default":    GetDefaultConfig(),
		"production": GetProductionConfig(),
	} {
		t.Run(name, func(t *testing.T) {
			require.NotEmpty(t, raw)
			cfg, err := internalconfig.Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, "champ", *cfg.AppName)
			assert.Equal(t, 255, *cfg.Validator.MaxTransactions)
		})
	}
}

func TestGet_UnknownEnvironment_ReturnsNil(t *testing.T) {
	assert.Nil(t, Get("staging"))
	assert.Equal(t, GetDefaultConfig(), Get("development"))
}
