package payload

import (
	"log/slog"

	"github.com/joshuapare/hobkit/internal/config"
)

// Option configures a Context.
type Option func(*Context)

// WithLogger routes progress records to l. The default discards them.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.log = l
		}
	}
}

// WithPlatform sets the hooks Entry runs around the migration.
func WithPlatform(p Platform) Option {
	return func(c *Context) {
		if p != nil {
			c.platform = p
		}
	}
}

// WithMinimalSize sets the size reserved for the new list.
func WithMinimalSize(n uint64) Option {
	return func(c *Context) { c.selector.MinimalSize = n }
}

// WithCeiling bounds the descriptors considered for relocation.
func WithCeiling(addr uint64) Option {
	return func(c *Context) { c.selector.Ceiling = addr }
}

// WithConfig applies the sizes of cfg.
func WithConfig(cfg config.Config) Option {
	return func(c *Context) {
		c.selector.MinimalSize = uint64(cfg.RegionSize)
		c.selector.Ceiling = uint64(cfg.AddressCeiling)
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
