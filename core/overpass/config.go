package overpass

import "time"

// Config holds configuration for the Overpass API client.
type Config struct {
	// Endpoint is the Overpass interpreter URL.
	Endpoint string `mapstructure:"endpoint" default:"https://overpass-api.de/api/interpreter"`
	// AreaID is the Overpass area the node queries are scoped to (Helsinki by default).
	AreaID int64 `mapstructure:"area_id" default:"3600034914"`
	// QueryTimeoutSeconds is the server-side [timeout:] of each query.
	QueryTimeoutSeconds int `mapstructure:"query_timeout_seconds" default:"25"`
	// HTTPTimeoutSeconds bounds a single HTTP round trip.
	HTTPTimeoutSeconds int `mapstructure:"http_timeout_seconds" default:"60"`
	// RetryDelaySeconds is the cool-down before the single retry after a 429.
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" default:"30"`
	// MaxParallel caps concurrent requests issued by one client.
	MaxParallel int `mapstructure:"max_parallel" default:"1"`
	// CacheTTLSeconds keeps fetched candidates in memory; 0 disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"0"`
}

// RetryDelay returns the cool-down as a duration.
func (c Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds) * time.Second
}

// CacheTTL returns the candidate cache lifetime as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c Config) httpTimeout() time.Duration {
	if c.HTTPTimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}
