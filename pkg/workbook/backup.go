package workbook

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// backupTimestamp matches the original file naming of manual backups.
const backupTimestamp = "2006 01 02 15 04 05"

// backupWorkbook copies the workbook next to itself with a timestamped
// suffix and returns the backup path. Callers treat failure as a warning
// only; a missed backup never blocks a mutation.
func backupWorkbook(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("file not found: %s", path)
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	backupPath := fmt.Sprintf("%s - Backup %s%s", base, time.Now().Format(backupTimestamp), ext)

	src, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(backupPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return backupPath, nil
}
