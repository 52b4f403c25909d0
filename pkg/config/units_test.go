package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"10s", 10 * time.Second, false},
		{"1.5h", 90 * time.Minute, false},
		{"1d", Day, false},
		{"1w", Week, false},
		{"2d12h", 60 * time.Hour, false},
		{"1w1d30m", 8*Day + 30*time.Minute, false},
		{"0.5d", 12 * time.Hour, false},
		{"750ms", 750 * time.Millisecond, false},
		{" 15s ", 15 * time.Second, false},
		{"", 0, false},
		{"invalid", 0, true},
		{"3x", 0, true},
		{"d", 0, true},
		{"5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDurationYAML(t *testing.T) {
	type testConfig struct {
		TTL     Duration `yaml:"ttl"`
		Timeout Duration `yaml:"timeout"`
		Window  Duration `yaml:"window"`
	}

	var cfg testConfig
	require.NoError(t, yaml.Unmarshal([]byte("ttl: 2w\ntimeout: 750ms\nwindow: 3d\n"), &cfg))
	assert.Equal(t, 2*Week, cfg.TTL.Std())
	assert.Equal(t, 750*time.Millisecond, cfg.Timeout.Std())

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Equal(t, "ttl: 2w\ntimeout: 750ms\nwindow: 3d\n", string(out))

	err = yaml.Unmarshal([]byte("\nttl: soon\n"), &cfg)
	assert.ErrorContains(t, err, "line 2")
}
