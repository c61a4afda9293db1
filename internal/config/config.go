// Package config resolves CLI settings from defaults, an optional config
// file, BLOCKFACES_* environment variables and flags, in increasing order
// of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/32bitkid/blockfaces"
)

const EnvPrefix = "BLOCKFACES"

type Pipeline struct {
	Warp          bool    `mapstructure:"warp"`
	WarpExponent  float64 `mapstructure:"warp_exponent"`
	Variants      bool    `mapstructure:"variants"`
	Saturation    bool    `mapstructure:"saturation"`
	Driver        string  `mapstructure:"driver"`
	MinFaces      int     `mapstructure:"min_faces"`
	NormTarget    float64 `mapstructure:"norm_target"`
	RareThreshold float64 `mapstructure:"rare_threshold"`
}

type Settings struct {
	Standard  string               `mapstructure:"standard"`
	Rare      string               `mapstructure:"rare"`
	Cache     string               `mapstructure:"cache"`
	Workers   int                  `mapstructure:"workers"`
	Verbose   bool                 `mapstructure:"verbose"`
	Modifiers blockfaces.Modifiers `mapstructure:"modifiers"`
	Pipeline  Pipeline             `mapstructure:"pipeline"`
}

// New returns a viper instance carrying the library defaults.
func New() *viper.Viper {
	v := viper.New()

	m := blockfaces.DefaultModifiers
	v.SetDefault("modifiers.intensity", m.Intensity)
	v.SetDefault("modifiers.saturation", m.Saturation)
	v.SetDefault("modifiers.faces", m.Faces)

	p := blockfaces.DefaultPipeline
	v.SetDefault("pipeline.warp", p.UseWarp)
	v.SetDefault("pipeline.warp_exponent", p.WarpExponent)
	v.SetDefault("pipeline.variants", p.VariantSelection)
	v.SetDefault("pipeline.saturation", p.Saturation)
	v.SetDefault("pipeline.driver", p.Driver.String())
	v.SetDefault("pipeline.min_faces", p.MinFaces)
	v.SetDefault("pipeline.norm_target", p.NormTarget)
	v.SetDefault("pipeline.rare_threshold", p.RareThreshold)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags maps flag names onto config keys. Flags missing from fs are
// skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for flag, key := range keys {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// Load reads file, when given, and decodes the merged settings.
func Load(v *viper.Viper, file string) (Settings, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("reading config %s: %w", file, err)
		}
	}
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, err
	}
	if err := s.Modifiers.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// RenderPipeline converts the settings into a blockfaces.Pipeline.
func (s Settings) RenderPipeline() (blockfaces.Pipeline, error) {
	driver, err := blockfaces.ParseFaceDriver(s.Pipeline.Driver)
	if err != nil {
		return blockfaces.Pipeline{}, err
	}
	p := blockfaces.Pipeline{
		UseWarp:          s.Pipeline.Warp,
		WarpExponent:     s.Pipeline.WarpExponent,
		VariantSelection: s.Pipeline.Variants,
		Saturation:       s.Pipeline.Saturation,
		Driver:           driver,
		MinFaces:         s.Pipeline.MinFaces,
		NormTarget:       s.Pipeline.NormTarget,
		RareThreshold:    s.Pipeline.RareThreshold,
	}
	if err := p.Validate(); err != nil {
		return blockfaces.Pipeline{}, err
	}
	return p, nil
}
