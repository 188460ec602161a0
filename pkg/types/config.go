package types

// StoreConfig holds settings for the block store.
type StoreConfig struct {
	// DataDir is the directory holding the SQLite database file
	// (e.g. "data/"). Created on open if absent.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// CORSAllowedOrigins lists origins allowed to call the API from a
	// browser. Empty disables the CORS middleware entirely.
	CORSAllowedOrigins []string `json:"cors_allowed_origins" yaml:"cors_allowed_origins"`

	// CORSAllowCredentials controls the Access-Control-Allow-Credentials
	// header when CORS is enabled.
	CORSAllowCredentials bool `json:"cors_allow_credentials" yaml:"cors_allow_credentials"`
}

// Config groups all settings for recall-engine.
type Config struct {
	Store  StoreConfig  `json:"store" yaml:"store"`
	Server ServerConfig `json:"server" yaml:"server"`
}
