package sim

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileConfig_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quadsim.json")

	cfg := FileConfig{
		CPR:      2048,
		Axes:     1,
		Hz:       50,
		Axis1:    AxisConfig{Rate: 2.5, Offset: 45.0},
		Quantize: true,
	}
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, *loaded)
}

func TestLoadConfigFrom_MissingFile(t *testing.T) {
	_, err := LoadConfigFrom(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestFileConfig_ToConfig(t *testing.T) {
	fc := DefaultFileConfig()
	cfg := fc.ToConfig()

	assert.Equal(t, 4096, cfg.CPR)
	assert.Equal(t, 2, cfg.Axes)
	assert.Equal(t, 20, cfg.Hz)
	assert.InDelta(t, 0.0, cfg.Axis1.AngleAt(0), 1e-9)
	assert.InDelta(t, 90.0, cfg.Axis2.AngleAt(0), 1e-9)
	assert.InDelta(t, 1.0, cfg.Axis1.AngleAt(1), 1e-9)   // 1 deg/sec
	assert.InDelta(t, 100.0, cfg.Axis2.AngleAt(1), 1e-9) // 10 deg/sec
}
