// Package config holds the example login server's tunables, built with
// the same functional-options constructor shape the teacher uses for
// NewServer/NewClient rather than the INI-file loader seen elsewhere in
// the retrieval pack (see DESIGN.md for why that loader wasn't adopted).
package config

import "time"

// Config is the complete set of knobs cmd/loginserver reads at startup.
type Config struct {
	ListenAddr          string
	AdvertisedAddr      string
	CompressionThresh   int32
	OnlineMode          bool
	RegistryEndpoints   []string
	LoginRateLimit      float64
	LoginRateBurst      int
	KeepAliveInterval   time.Duration
}

// Option mutates a Config under construction.
type Option func(*Config)

// New builds a Config with sane defaults, then applies opts in order.
func New(opts ...Option) *Config {
	c := &Config{
		ListenAddr:        ":25565",
		AdvertisedAddr:    "localhost:25565",
		CompressionThresh: 256,
		OnlineMode:        true,
		LoginRateLimit:    2,
		LoginRateBurst:    5,
		KeepAliveInterval: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithListenAddr(addr string) Option {
	return func(c *Config) { c.ListenAddr = addr }
}

func WithAdvertisedAddr(addr string) Option {
	return func(c *Config) { c.AdvertisedAddr = addr }
}

func WithCompressionThreshold(n int32) Option {
	return func(c *Config) { c.CompressionThresh = n }
}

func WithOnlineMode(enabled bool) Option {
	return func(c *Config) { c.OnlineMode = enabled }
}

func WithRegistryEndpoints(endpoints ...string) Option {
	return func(c *Config) { c.RegistryEndpoints = endpoints }
}

func WithLoginRateLimit(r float64, burst int) Option {
	return func(c *Config) {
		c.LoginRateLimit = r
		c.LoginRateBurst = burst
	}
}
