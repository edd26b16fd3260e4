package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// UniqueOutPath returns path itself when free, otherwise the first
// unused "<stem>_1.json", "<stem>_2.json", ... sibling.
func UniqueOutPath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// DefaultSpecIDOutPath derives the output name for a spec-id rewrite,
// e.g. Rules_20251105.json -> Rules_20251105_spec789.json.
func DefaultSpecIDOutPath(inPath string, specID int64) string {
	return siblingWithSuffix(inPath, fmt.Sprintf("spec%d", specID))
}

// DefaultKeyOutPath derives the output name for a key rewrite from the
// dot-path and a label of the new value.
func DefaultKeyOutPath(inPath, keyPath, valueLabel string) string {
	safeKey := strings.ReplaceAll(keyPath, ".", "_")
	safeVal := strings.ReplaceAll(valueLabel, "/", "")
	safeVal = strings.ReplaceAll(safeVal, " ", "")
	return siblingWithSuffix(inPath, safeKey+"_"+safeVal)
}

// DefaultUnitOutPath derives the output name for a unit rewrite.
func DefaultUnitOutPath(inPath, unitLabel string) string {
	return DefaultKeyOutPath(inPath, "unit", unitLabel)
}

func siblingWithSuffix(inPath, suffix string) string {
	ext := filepath.Ext(inPath)
	stem := strings.TrimSuffix(filepath.Base(inPath), ext)
	return filepath.Join(filepath.Dir(inPath), fmt.Sprintf("%s_%s%s", stem, suffix, ext))
}

// TimestampedName builds the conventional generated-rules filename,
// e.g. Rules_Exim_4906_20260831_1412.json.
func TimestampedName(prefix string, specID int64, now time.Time) string {
	return fmt.Sprintf("%s_%d_%s.json", prefix, specID, now.Format("20060102_1504"))
}
