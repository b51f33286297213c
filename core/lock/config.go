package lock

import "time"

// Config holds configuration for the run lock.
type Config struct {
	// Addr is the redis address. Empty keeps the lock in process.
	Addr string `mapstructure:"addr" default:""`
	// Password is the redis password.
	Password string `mapstructure:"password" default:""`
	// DB is the redis database index.
	DB int `mapstructure:"db" default:"0"`
	// Key names the lock.
	Key string `mapstructure:"key" default:"osm-linker:run"`
	// TTLSeconds bounds how long a crashed holder can keep the lock.
	TTLSeconds int `mapstructure:"ttl_seconds" default:"3600"`
}

// Enabled reports whether a redis backed lock is configured.
func (c Config) Enabled() bool {
	return c.Addr != ""
}

// TTL returns the lock expiry as a duration.
func (c Config) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return time.Hour
	}
	return time.Duration(c.TTLSeconds) * time.Second
}
