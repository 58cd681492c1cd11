//go:build windows

package utils

import (
	"os"
	"path/filepath"
)

// ExeDir is the directory holding the running executable, or the working
// directory if it cannot be determined.
func ExeDir() string {
	exe, err := os.Executable()
	if err != nil {
		dir, _ := os.Getwd()
		return dir
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}
