package config

import (
	"os"
	"strconv"
)

const (
	DefaultPingLength = 280
	DefaultPageSize   = 128
)

// PingLength is the maximum ping text length in bytes, from PING_LENGTH.
func PingLength() int {
	return intEnv("PING_LENGTH", DefaultPingLength)
}

// PageSize is the default page size for list endpoints, from PAGE_SIZE.
func PageSize() int {
	return intEnv("PAGE_SIZE", DefaultPageSize)
}

func intEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
