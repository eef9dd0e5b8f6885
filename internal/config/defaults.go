package config

// GetDefault returns the default configuration
func GetDefault() *Config {
	return &Config{
		Hash: HashConfig{
			Algorithm: "blake3",
			Workers:   1, // Sequential by default for deterministic progress
		},
		Scan: ScanConfig{
			MinFileSize:     0, // Include everything, empty files too
			ExcludePatterns: []string{},
		},
		Output: OutputConfig{
			Format: "summary",
		},
		Verbose: false,
	}
}
