// Package config loads hobkit settings from YAML.
package config

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/hobkit/hob/region"
	"github.com/joshuapare/hobkit/internal/format"
)

// Size is a byte count that unmarshals from an integer ("0x4000000",
// "67108864") or a unit string ("64MB", "64 MiB").
type Size uint64

// ParseSize parses the forms Size accepts.
func ParseSize(s string) (Size, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("config: empty size")
	}
	if n, err := strconv.ParseUint(s, 0, 64); err == nil {
		return Size(n), nil
	}
	var ds datasize.ByteSize
	if err := ds.UnmarshalText([]byte(s)); err == nil {
		return Size(ds.Bytes()), nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, errors.Wrapf(err, "config: invalid size %q", s)
	}
	return Size(n), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Size) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	v, err := ParseSize(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalYAML renders sizes in hex, the way firmware build files do.
func (s Size) MarshalYAML() (interface{}, error) {
	return "0x" + strconv.FormatUint(uint64(s), 16), nil
}

// String renders s in binary units.
func (s Size) String() string {
	return datasize.ByteSize(s).HumanReadable()
}

// Log controls logging output.
type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Config holds the knobs of a HOB migration.
type Config struct {
	// RegionSize is the size reserved for the new list.
	RegionSize Size `yaml:"region_size"`
	// AddressCeiling bounds the descriptors considered for relocation.
	AddressCeiling Size `yaml:"address_ceiling"`
	Log            Log  `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		RegionSize:     Size(region.DefaultMinimalSize),
		AddressCeiling: Size(region.BelowLimit),
		Log:            Log{Level: "info", Format: "text"},
	}
}

// Validate checks that the configuration can drive a migration.
func (c Config) Validate() error {
	if c.RegionSize < format.EmptyListSize {
		return errors.Newf("config: region_size %d is smaller than an empty list (%d bytes)", c.RegionSize, format.EmptyListSize)
	}
	if c.AddressCeiling == 0 {
		return errors.New("config: address_ceiling must be non-zero")
	}
	if uint64(c.RegionSize) > uint64(c.AddressCeiling) {
		return errors.Newf("config: region_size %s exceeds address_ceiling %s", c.RegionSize, c.AddressCeiling)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.Newf("config: unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return errors.Newf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "config: decode")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: read %s", path)
	}
	return Parse(data)
}
