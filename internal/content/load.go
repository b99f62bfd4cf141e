package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const maxPackSize = 1024 * 1024

var (
	// ErrUnsupportedFormat is returned for files that are neither YAML nor TOML.
	ErrUnsupportedFormat = errors.New("unsupported content format")

	// ErrInvalidPack is returned when a file parses but fails validation.
	ErrInvalidPack = errors.New("invalid content pack")
)

// LoadPack reads a YAML (.yaml, .yml) or TOML (.toml) file and overlays
// it on Default. An empty path returns Default.
func LoadPack(path string) (Pack, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := readPackFile(path)
	if err != nil {
		return Pack{}, err
	}

	var file Pack
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
			return Pack{}, fmt.Errorf("%w: %s: %v", ErrInvalidPack, path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), &file)
		if err != nil {
			return Pack{}, fmt.Errorf("%w: %s: %v", ErrInvalidPack, path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Pack{}, fmt.Errorf("%w: %s: unknown key %q", ErrInvalidPack, path, undecoded[0].String())
		}
	default:
		return Pack{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	pack := file.overlay(Default())
	if err := pack.Validate(); err != nil {
		return Pack{}, fmt.Errorf("%w: %s: %v", ErrInvalidPack, path, err)
	}
	return pack, nil
}

func readPackFile(path string) ([]byte, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("opening content file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat content file: %w", err)
	}
	if info.Size() > maxPackSize {
		return nil, fmt.Errorf("content file %s exceeds %d bytes", path, maxPackSize)
	}

	data, err := io.ReadAll(io.LimitReader(f, maxPackSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading content file: %w", err)
	}
	return data, nil
}
