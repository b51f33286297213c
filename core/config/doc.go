// Package config provides configuration management for osm-linker.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: connection to the mapping database (mysql, postgres or sqlite)
//   - Storage: S3/MinIO credentials and the report archive bucket
//   - Log: Logging level and format
//   - Overpass: endpoint, area and retry behaviour of the OSM source
//   - Lock: redis address of the run lock
//   - Linking: city and distance thresholds
//
// Nested keys map to environment variables with underscores, e.g.
// OVERPASS_AREA_ID sets overpass.area_id.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Overpass.AreaID)
package config
