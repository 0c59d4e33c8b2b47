//go:build !unix

package main

import (
	"fmt"
	"os"
)

// Without dup2 only Go-level writes are captured, not runtime panics.
func redirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open stdio log: %w", err)
	}
	os.Stdout = f
	os.Stderr = f
	return nil
}
