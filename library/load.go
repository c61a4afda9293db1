package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// LoadFiles decodes each file into an Asset, in the order given.
func LoadFiles(paths ...string) (*Set, error) {
	assets := make([]*Asset, 0, len(paths))
	for _, p := range paths {
		img, err := imaging.Open(p, imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", p, err)
		}
		assets = append(assets, FromImage(filepath.Base(p), imaging.Clone(img)))
	}
	return NewSet(assets...)
}

// LoadDir loads every image in dir. Files named by number (1.jpg, 2.jpg,
// ... 25.jpg) are ordered numerically and come before any other names,
// which are ordered lexically.
func LoadDir(dir string) (*Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.SliceStable(names, func(i, j int) bool {
		ni, iok := fileNumber(names[i])
		nj, jok := fileNumber(names[j])
		switch {
		case iok && jok:
			if ni != nj {
				return ni < nj
			}
			return names[i] < names[j]
		case iok:
			return true
		case jok:
			return false
		}
		return names[i] < names[j]
	})

	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
	}
	return LoadFiles(paths...)
}

func fileNumber(name string) (int, bool) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	n, err := strconv.Atoi(stem)
	return n, err == nil
}

// Load builds a Library from a standard and a rare directory. An empty
// rareDir leaves the rare set unset.
func Load(standardDir, rareDir string) (*Library, error) {
	std, err := loadSet(standardDir)
	if err != nil {
		return nil, fmt.Errorf("standard set: %w", err)
	}
	lib := &Library{Standard: std}
	if rareDir != "" {
		rare, err := loadSet(rareDir)
		if err != nil {
			return nil, fmt.Errorf("rare set: %w", err)
		}
		lib.Rare = rare
	}
	return lib, nil
}

// loadSet accepts either a directory of images or a pack file.
func loadSet(path string) (*Set, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return LoadDir(path)
	}
	return OpenPack(path)
}
