package exa

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the file configuration of an engine and its device.
//
// Example config.toml:
//
//	backend          = "soft"
//	framebuffer_size = 4194304
//	scratch_size     = 262144
//	log_level        = "debug"
type Config struct {
	// Backend names the gp backend; empty selects the best registered one.
	Backend string `toml:"backend"`

	// FramebufferSize is the size of device memory in bytes.
	FramebufferSize int `toml:"framebuffer_size"`

	// ScratchOffset places the two-pass scratch buffer. Zero places it at
	// the end of the framebuffer.
	ScratchOffset uint32 `toml:"scratch_offset"`

	// ScratchSize is the size of the scratch buffer. Zero disables
	// two-pass composites.
	ScratchSize uint32 `toml:"scratch_size"`

	// LogLevel is one of "off", "debug", "info", "warn" or "error".
	LogLevel string `toml:"log_level"`
}

// ErrBadConfig is returned for configurations that cannot be used.
var ErrBadConfig = errors.New("exa: bad configuration")

// DefaultConfig returns the configuration used for missing keys.
func DefaultConfig() Config {
	return Config{
		Backend:         "",
		FramebufferSize: 4 << 20,
		ScratchSize:     256 << 10,
		LogLevel:        "off",
	}
}

// LoadConfig reads a TOML configuration file over the defaults.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, fmt.Errorf("exa: read config %s: %w", path, err)
	}
	return c, checkKeys(md)
}

// DecodeConfig reads a TOML configuration from r over the defaults.
func DecodeConfig(r io.Reader) (Config, error) {
	c := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return Config{}, fmt.Errorf("exa: decode config: %w", err)
	}
	return c, checkKeys(md)
}

func checkKeys(md toml.MetaData) error {
	if keys := md.Undecoded(); len(keys) > 0 {
		return fmt.Errorf("%w: unknown key %q", ErrBadConfig, keys[0].String())
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Scratch returns the offset of the scratch buffer, or 0 if there is none.
func (c Config) Scratch() uint32 {
	if c.ScratchSize == 0 {
		return 0
	}
	if c.ScratchOffset != 0 {
		return c.ScratchOffset
	}
	return uint32(c.FramebufferSize) - c.ScratchSize
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	if c.FramebufferSize <= 0 {
		return fmt.Errorf("%w: framebuffer_size %d", ErrBadConfig, c.FramebufferSize)
	}
	if c.ScratchSize != 0 {
		end := uint64(c.Scratch()) + uint64(c.ScratchSize)
		if c.ScratchSize >= uint32(c.FramebufferSize) || end > uint64(c.FramebufferSize) {
			return fmt.Errorf("%w: scratch buffer [%d, %d) outside %d-byte framebuffer",
				ErrBadConfig, c.Scratch(), end, c.FramebufferSize)
		}
	}
	_, _, err := c.level()
	return err
}

// level parses LogLevel; on is false for "off".
func (c Config) level() (l slog.Level, on bool, err error) {
	switch strings.ToLower(c.LogLevel) {
	case "", "off":
		return l, false, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, false, fmt.Errorf("%w: log_level %q", ErrBadConfig, c.LogLevel)
	}
	return l, true, nil
}

// Logger returns a text logger writing to w at LogLevel, or nil when
// logging is off or LogLevel is invalid. Pass the result to SetLogger.
func (c Config) Logger(w io.Writer) *slog.Logger {
	l, on, err := c.level()
	if err != nil || !on {
		return nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

// Options returns the engine options for a framebuffer allocated from c.
func (c Config) Options(fb []byte) []Option {
	return []Option{
		WithFramebuffer(fb),
		WithScratchBuffer(c.Scratch()),
	}
}
