package env

// OrDefault returns the value of key, or defaultVal when it is unset or empty.
func OrDefault(getenv func(string) string, key string, defaultVal string) string {
	if envVal := getenv(key); envVal != "" {
		return envVal
	}
	return defaultVal
}
