//go:build !tinygo

package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// File keeps the settings blob in a host file, replaced atomically on write
type File struct {
	Path string
}

// ReadSettings implements hmi.SettingsStore
func (f *File) ReadSettings(buf []byte) error {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return fmt.Errorf("settings file: %w", err)
	}
	if len(data) < len(buf) {
		return ErrShortRead
	}
	copy(buf, data)
	return nil
}

// WriteSettings implements hmi.SettingsStore
func (f *File) WriteSettings(buf []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(f.Path), ".settings-*")
	if err != nil {
		return fmt.Errorf("settings file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		return fmt.Errorf("settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("settings file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("settings file: %w", err)
	}
	return nil
}
