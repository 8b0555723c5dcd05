package parallel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	def := DefaultConfig()

	tests := []struct {
		spec string
		want Config
	}{
		{"", def},
		{"on", Config{Enabled: true, NumWorkers: def.NumWorkers, MinChunkSize: def.MinChunkSize}},
		{"TRUE", Config{Enabled: true, NumWorkers: def.NumWorkers, MinChunkSize: def.MinChunkSize}},
		{"off", Config{Enabled: false, NumWorkers: def.NumWorkers, MinChunkSize: def.MinChunkSize}},
		{"0", Config{Enabled: false, NumWorkers: def.NumWorkers, MinChunkSize: def.MinChunkSize}},
		{"workers=4", Config{Enabled: true, NumWorkers: 4, MinChunkSize: def.MinChunkSize}},
		{"workers=1", Config{Enabled: false, NumWorkers: 1, MinChunkSize: def.MinChunkSize}},
		{" workers=8, chunk=2 ", Config{Enabled: true, NumWorkers: 8, MinChunkSize: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseConfig(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	for _, spec := range []string{"maybe", "workers=abc", "workers=0", "threads=4", "workers=2,chunk=-1"} {
		t.Run(spec, func(t *testing.T) {
			_, err := ParseConfig(spec)
			assert.Error(t, err)
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(ConfigEnvVar, "workers=3,chunk=5")
	assert.Equal(t, Config{Enabled: true, NumWorkers: 3, MinChunkSize: 5}, ConfigFromEnv())

	t.Setenv(ConfigEnvVar, "off")
	assert.False(t, ConfigFromEnv().Enabled)

	t.Setenv(ConfigEnvVar, "bogus")
	assert.Equal(t, DefaultConfig(), ConfigFromEnv())
}
