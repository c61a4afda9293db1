package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/32bitkid/blockfaces"
)

func TestDefaults(t *testing.T) {
	s, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, blockfaces.DefaultModifiers, s.Modifiers)

	p, err := s.RenderPipeline()
	require.NoError(t, err)
	assert.Equal(t, blockfaces.DefaultPipeline, p)
}

func TestFileEnvAndFlags(t *testing.T) {
	file := filepath.Join(t.TempDir(), "blockfaces.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
standard: ./faces
modifiers:
  intensity: 0.9
  saturation: 0.2
pipeline:
  driver: modifier
  warp_exponent: 32
`), 0o644))

	t.Setenv("BLOCKFACES_MODIFIERS_SATURATION", "0.7")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("standard", "", "")
	fs.Float64("faces", 0, "")
	require.NoError(t, fs.Parse([]string{"--faces", "0.25"}))

	v := New()
	require.NoError(t, BindFlags(v, fs, map[string]string{
		"standard": "standard",
		"faces":    "modifiers.faces",
		"missing":  "nothing",
	}))

	s, err := Load(v, file)
	require.NoError(t, err)
	assert.Equal(t, "./faces", s.Standard)
	assert.Equal(t, 0.9, s.Modifiers.Intensity)
	assert.Equal(t, 0.7, s.Modifiers.Saturation)
	assert.Equal(t, 0.25, s.Modifiers.Faces)

	p, err := s.RenderPipeline()
	require.NoError(t, err)
	assert.Equal(t, blockfaces.DriveByModifier, p.Driver)
	assert.Equal(t, 32.0, p.WarpExponent)
	assert.True(t, p.UseWarp)
}

func TestLoadRejects(t *testing.T) {
	t.Setenv("BLOCKFACES_MODIFIERS_INTENSITY", "3")
	_, err := Load(New(), "")
	var rangeErr *blockfaces.ModifierRangeError
	assert.ErrorAs(t, err, &rangeErr)

	_, err = Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRenderPipelineRejects(t *testing.T) {
	s, err := Load(New(), "")
	require.NoError(t, err)

	bad := s
	bad.Pipeline.Driver = "dice"
	_, err = bad.RenderPipeline()
	assert.Error(t, err)

	tests := []struct {
		name string
		edit func(p *Pipeline)
	}{
		{"min_faces", func(p *Pipeline) { p.MinFaces = 0 }},
		{"norm_target", func(p *Pipeline) { p.NormTarget = 0 }},
		{"norm_target", func(p *Pipeline) { p.NormTarget = -7 }},
		{"warp_exponent", func(p *Pipeline) { p.WarpExponent = -1 }},
		{"rare_threshold", func(p *Pipeline) { p.RareThreshold = 1.5 }},
		{"rare_threshold", func(p *Pipeline) { p.RareThreshold = -0.1 }},
	}
	for _, tt := range tests {
		bad := s
		tt.edit(&bad.Pipeline)
		_, err := bad.RenderPipeline()
		var pe *blockfaces.PipelineError
		if assert.ErrorAs(t, err, &pe, tt.name) {
			assert.Equal(t, tt.name, pe.Name)
		}
	}
}
