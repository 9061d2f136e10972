// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SaveFile writes data under baseDir/subDir with the same path traversal
// checks applied to image saves. Used for non-image uploads.
func SaveFile(baseDir, subDir, filename string, data []byte) (string, error) {
	p := &Processor{uploadDir: baseDir}
	return p.saveImageFile(subDir, filename, data)
}

// RemoveFile deletes one stored file under baseDir/subDir. Missing files are
// not an error.
func RemoveFile(baseDir, subDir, filename string) error {
	safeName := filepath.Base(filename)
	if safeName == "." || safeName == ".." || safeName == "" {
		return fmt.Errorf("invalid filename")
	}
	cleanSubDir := filepath.Clean(subDir)
	if strings.Contains(cleanSubDir, "..") || filepath.IsAbs(cleanSubDir) {
		return fmt.Errorf("invalid subdirectory path")
	}
	err := os.Remove(filepath.Join(baseDir, cleanSubDir, safeName))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
