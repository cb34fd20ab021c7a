// Package util contains helpers shared across packages that don't belong anywhere else
package util

import "os"

// IsRunningInDocker reports whether the process appears to run inside a container
func IsRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}

	return os.Getenv("container") != ""
}
