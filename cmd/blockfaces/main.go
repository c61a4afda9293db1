// Command blockfaces renders block JSON documents into portrait composites.
//
//	blockfaces render --block block.json --standard faces/ --rare babies/ --out art.png
//	blockfaces pack --dir faces/ --out faces.fpk --lzw
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/32bitkid/blockfaces"
	"github.com/32bitkid/blockfaces/block"
	"github.com/32bitkid/blockfaces/internal/cache"
	"github.com/32bitkid/blockfaces/internal/config"
	"github.com/32bitkid/blockfaces/library"
)

const usage = `usage: blockfaces <command> [flags]

commands:
  render   render one block, or an array of blocks, to PNG
  pack     bundle a directory of portraits into a .fpk pack
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "render":
		err = runRender(os.Args[2:])
	case "pack":
		err = runPack(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "blockfaces:", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

var renderFlagKeys = map[string]string{
	"standard":       "standard",
	"rare":           "rare",
	"cache":          "cache",
	"workers":        "workers",
	"verbose":        "verbose",
	"intensity":      "modifiers.intensity",
	"saturation":     "modifiers.saturation",
	"faces":          "modifiers.faces",
	"driver":         "pipeline.driver",
	"warp":           "pipeline.warp",
	"warp-exponent":  "pipeline.warp_exponent",
	"variants":       "pipeline.variants",
	"saturate":       "pipeline.saturation",
	"rare-threshold": "pipeline.rare_threshold",
}

func runRender(args []string) error {
	fs := pflag.NewFlagSet("render", pflag.ContinueOnError)
	blockPath := fs.String("block", "-", "block JSON file, or - for stdin")
	out := fs.String("out", "blockfaces.png", "output image; {number} is replaced by the block number")
	attrsPath := fs.String("attributes", "", "write attributes JSON here")
	configFile := fs.String("config", "", "config file (yaml, toml or json)")
	fs.String("standard", "", "standard portrait directory or pack")
	fs.String("rare", "", "rare portrait directory or pack")
	fs.String("cache", "", "bolt database caching finished renders")
	fs.Int("workers", 0, "concurrent renders for block arrays (0: one per CPU)")
	fs.Bool("verbose", false, "development logging")
	fs.Float64("intensity", blockfaces.DefaultModifiers.Intensity, "mod1: blend intensity")
	fs.Float64("saturation", blockfaces.DefaultModifiers.Saturation, "mod2: saturation, 0.5 is neutral")
	fs.Float64("faces", blockfaces.DefaultModifiers.Faces, "mod3: portrait count when --driver=modifier")
	fs.String("driver", blockfaces.DefaultPipeline.Driver.String(), "portrait count driver: transactions or modifier")
	fs.Bool("warp", blockfaces.DefaultPipeline.UseWarp, "warp weights by gas utilisation")
	fs.Float64("warp-exponent", blockfaces.DefaultPipeline.WarpExponent, "gas utilisation exponent")
	fs.Bool("variants", blockfaces.DefaultPipeline.VariantSelection, "enable the rare portrait set")
	fs.Bool("saturate", blockfaces.DefaultPipeline.Saturation, "apply the saturation pass")
	fs.Float64("rare-threshold", blockfaces.DefaultPipeline.RareThreshold, "probability of the rare set")
	if err := fs.Parse(args); err != nil {
		return err
	}

	v := config.New()
	if err := config.BindFlags(v, fs, renderFlagKeys); err != nil {
		return err
	}
	settings, err := config.Load(v, *configFile)
	if err != nil {
		return err
	}
	pipeline, err := settings.RenderPipeline()
	if err != nil {
		return err
	}

	logger, err := newLogger(settings.Verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if settings.Standard == "" {
		return errors.New("--standard is required")
	}

	raw, err := readInput(*blockPath)
	if err != nil {
		return err
	}
	blocks, err := parseBlocks(raw)
	if err != nil {
		return err
	}
	if len(blocks) > 1 && !strings.Contains(*out, "{number}") {
		return errors.New("--out must contain {number} when rendering several blocks")
	}

	start := time.Now()
	lib, err := library.Load(settings.Standard, settings.Rare)
	if err != nil {
		return err
	}
	logger.Info("library loaded",
		zap.Int("standard", lib.Standard.Len()),
		zap.Bool("rare", lib.Rare != nil),
		zap.Duration("elapsed", time.Since(start)),
	)

	r := &renderer{
		lib:       lib,
		mods:      settings.Modifiers,
		pipeline:  pipeline,
		logger:    logger,
		workers:   settings.Workers,
		out:       *out,
		attrsPath: *attrsPath,
	}
	if settings.Cache != "" {
		c, err := cache.Open(settings.Cache)
		if err != nil {
			return err
		}
		defer c.Close()
		r.cache = c
	}
	return r.run(context.Background(), blocks)
}

type renderer struct {
	lib       *library.Library
	mods      blockfaces.Modifiers
	pipeline  blockfaces.Pipeline
	logger    *zap.Logger
	workers   int
	cache     *cache.Cache
	out       string
	attrsPath string
}

func (r *renderer) options() blockfaces.Options {
	return blockfaces.Options{Pipeline: &r.pipeline, Logger: r.logger, Workers: r.workers}
}

func (r *renderer) cacheKey(d block.Digest) ([]byte, error) {
	blockJSON, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	modsJSON, err := json.Marshal(r.mods)
	if err != nil {
		return nil, err
	}
	pipelineJSON, err := json.Marshal(r.pipeline)
	if err != nil {
		return nil, err
	}
	return cache.Key([]byte(r.lib.Fingerprint()), blockJSON, modsJSON, pipelineJSON), nil
}

func (r *renderer) run(ctx context.Context, blocks []block.Digest) error {
	pending := blocks[:0:0]
	keys := map[int][]byte{}
	for _, d := range blocks {
		if r.cache == nil {
			pending = append(pending, d)
			continue
		}
		key, err := r.cacheKey(d)
		if err != nil {
			return err
		}
		entry, ok, err := r.cache.Get(key)
		if err != nil {
			return err
		}
		if !ok {
			keys[len(pending)] = key
			pending = append(pending, d)
			continue
		}
		r.logger.Info("cache hit", zap.Uint64("number", d.Number), zap.String("hash", d.Hash))
		if err := r.write(d, entry.PNG, entry.Attributes); err != nil {
			return err
		}
	}
	if len(pending) == 0 {
		return nil
	}

	results, err := blockfaces.RenderBatch(ctx, pending, r.lib, r.mods, r.options())
	if err != nil {
		return err
	}
	for i, res := range results {
		var png bytes.Buffer
		if err := imaging.Encode(&png, res.Image, imaging.PNG); err != nil {
			return err
		}
		attrs, err := json.MarshalIndent(res.Attributes, "", "  ")
		if err != nil {
			return err
		}
		if err := r.write(pending[i], png.Bytes(), attrs); err != nil {
			return err
		}
		if key, ok := keys[i]; ok {
			entry := &cache.Entry{PNG: png.Bytes(), Attributes: attrs, Created: time.Now().UTC()}
			if err := r.cache.Put(key, entry); err != nil {
				return err
			}
		}
		r.logger.Info("rendered",
			zap.Uint64("number", pending[i].Number),
			zap.Stringer("variant", res.Variant),
			zap.Int("faces", res.ActiveCount),
			zap.Float64("warp", res.Warp),
		)
	}
	return nil
}

func (r *renderer) write(d block.Digest, png, attrs []byte) error {
	number := strconv.FormatUint(d.Number, 10)
	if err := os.WriteFile(strings.ReplaceAll(r.out, "{number}", number), png, 0o644); err != nil {
		return err
	}
	if r.attrsPath == "" {
		return nil
	}
	return os.WriteFile(strings.ReplaceAll(r.attrsPath, "{number}", number), attrs, 0o644)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// parseBlocks accepts a single block object or an array of them.
func parseBlocks(raw []byte) ([]block.Digest, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var blocks []block.Digest
		if err := json.Unmarshal(trimmed, &blocks); err != nil {
			return nil, fmt.Errorf("decoding blocks: %w", err)
		}
		if len(blocks) == 0 {
			return nil, errors.New("no blocks to render")
		}
		return blocks, nil
	}
	d, err := block.Parse(trimmed)
	if err != nil {
		return nil, err
	}
	return []block.Digest{d}, nil
}

func runPack(args []string) error {
	fs := pflag.NewFlagSet("pack", pflag.ContinueOnError)
	dir := fs.String("dir", "", "directory of numbered portraits")
	out := fs.String("out", "", "pack file to write")
	compress := fs.Bool("lzw", false, "LZW-compress pixel data")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dir == "" || *out == "" {
		return errors.New("--dir and --out are required")
	}

	set, err := library.LoadDir(*dir)
	if err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	method := library.CompressNone
	if *compress {
		method = library.CompressLZW
	}
	if err := library.WritePack(f, set, method); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
