package matching

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"weight above one", func(c *Config) { c.QuantityWeight = 1.5 }, "quantity_weight must be within [0,1]"},
		{"negative weight", func(c *Config) { c.TrustWeight = -0.1 }, "trust_weight must be within [0,1]"},
		{"threshold above one", func(c *Config) { c.ScoreThreshold = 1.2 }, "score_threshold must be within [0,1]"},
		{"markup below one", func(c *Config) { c.ReferenceMarkup = 0.9 }, "reference_markup must be at least 1"},
		{"critical ratio above low", func(c *Config) { c.CriticalStockRatio = 0.5 }, "cannot exceed low_stock_ratio"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}

func TestLoadConfig_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("score_threshold: 0.75\ntrust_weight: 0.2\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0.75, cfg.ScoreThreshold)
	assert.Equal(t, 0.2, cfg.TrustWeight)
	// Omitted fields keep their defaults
	defaults := DefaultConfig()
	assert.Equal(t, defaults.QuantityWeight, cfg.QuantityWeight)
	assert.Equal(t, defaults.ReferenceMarkup, cfg.ReferenceMarkup)
	assert.Equal(t, defaults.SurplusOpportunityQty, cfg.SurplusOpportunityQty)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("score_threshold: [nope"), 0o644))

		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "failed to parse config file")
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("score_threshold: 2.0\n"), 0o644))

		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "invalid config")
	})
}
