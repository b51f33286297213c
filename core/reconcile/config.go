package reconcile

// Config holds tunables shared by the OSM and address passes.
type Config struct {
	// City filters the address registry.
	City string `mapstructure:"city" default:"Helsinki"`

	// FallbackRadius is the range query radius in degrees used when the
	// nearest candidate does not qualify (about 30 m at Helsinki's latitude).
	FallbackRadius float64 `mapstructure:"fallback_radius" default:"0.0003"`

	// AddressMaxDistance is the address sanity bound in meters.
	AddressMaxDistance float64 `mapstructure:"address_max_distance" default:"150"`
}

// DefaultConfig returns the configuration used when none is loaded.
func DefaultConfig() Config {
	return Config{City: "Helsinki", FallbackRadius: 0.0003, AddressMaxDistance: 150}
}
