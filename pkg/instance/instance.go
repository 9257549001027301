package instance

import "os"

// GetID returns the running process identifier used in startup logs.
func GetID() string {
	if id := os.Getenv("EASEMART_INSTANCE_ID"); id != "" {
		return id
	}
	if id := os.Getenv("DYNO"); id != "" {
		return id
	}
	return "local"
}
