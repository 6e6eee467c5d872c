package helpers

import "github.com/Jeffail/gabs"

// config Saves the service-config
var config *gabs.Container

// LoadConfig loads the config from $path into $config
func LoadConfig(path string) {
	json, err := gabs.ParseJSONFile(path)

	if err != nil {
		panic(err)
	}

	config = json
}

// GetConfig is a config getter
func GetConfig() *gabs.Container {
	return config
}

// ConfigString reads a string value at $path, empty when unset.
func ConfigString(path string) string {
	if config == nil {
		return ""
	}
	if v, ok := config.Path(path).Data().(string); ok {
		return v
	}
	return ""
}

// ConfigStringDefault reads a string value at $path, $fallback when unset.
func ConfigStringDefault(path string, fallback string) string {
	if v := ConfigString(path); v != "" {
		return v
	}
	return fallback
}
