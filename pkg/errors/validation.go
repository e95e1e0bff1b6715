package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeID checks that id lies in the dense node range [0, count).
func ValidateNodeID(id, count int) error {
	if id < 0 || id >= count {
		return New(ErrCodeInvalidInput, "node %d out of range [0, %d)", id, count)
	}
	return nil
}

// ValidateCacheKey validates a cache key used as a file name.
// It rejects keys that could escape the cache directory.
//
// Validation rules:
//   - Key cannot be empty
//   - Maximum length of 200 characters
//   - No control characters
//   - No path separators or traversal sequences
func ValidateCacheKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidPath, "cache key cannot be empty")
	}

	const maxKeyLength = 200
	if len(key) > maxKeyLength {
		return New(ErrCodeInvalidPath, "cache key too long (max %d characters)", maxKeyLength)
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "cache key contains invalid characters")
		}
	}

	if strings.ContainsAny(key, "/\\") {
		return New(ErrCodeInvalidPath, "cache key cannot contain path separators")
	}
	if strings.Contains(key, "..") {
		return New(ErrCodeInvalidPath, "cache key cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateRedisURL validates a Redis connection URL.
// Only the redis and rediss schemes are accepted.
func ValidateRedisURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "redis URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") {
		return New(ErrCodeInvalidConfig, "redis URL must use redis or rediss scheme")
	}
	return nil
}
