package utils

import (
	"os"

	"github.com/rs/zerolog/log"
)

// OpenFile opens path for reading, panicking with a logged diagnostic on
// failure. Used by the loader, which treats a missing/unreadable input
// graph as a fatal, unrecoverable condition.
func OpenFile(path string) *os.File {
	file, err := os.Open(path)
	if err != nil {
		log.Panic().Err(err).Msg("failed to open file: " + path)
	}
	return file
}

// CreateFile creates (or truncates) path for writing, panicking on failure.
func CreateFile(path string) *os.File {
	file, err := os.Create(path)
	if err != nil {
		log.Panic().Err(err).Msg("failed to create file: " + path)
	}
	return file
}
