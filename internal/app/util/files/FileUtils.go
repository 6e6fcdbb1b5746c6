package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// CopyToTemp streams r into a new file under dir, keeping the extension of
// filename so ffmpeg can pick a demuxer. The returned cleanup removes the file
// and is safe to call more than once.
func CopyToTemp(r io.Reader, dir, filename string) (string, func(), error) {
	tmp, err := os.CreateTemp(dir, "v2csv-input-*"+strings.ToLower(filepath.Ext(filename)))
	if err != nil {
		return "", nil, fmt.Errorf("create input copy: %w", err)
	}
	path := tmp.Name()
	cleanup := func() { os.Remove(path) }

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("copy input: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close input copy: %w", err)
	}
	return path, cleanup, nil
}

// EnsureDir creates dir and its parents when missing.
func EnsureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// Stem returns the base name of filename without its extension, with path
// separators and control characters replaced. "transcript" is used when
// nothing is left.
func Stem(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.Map(func(r rune) rune {
		if r == '/' || unicode.IsControl(r) {
			return '_'
		}
		return r
	}, stem)
	stem = strings.TrimSpace(stem)
	if stem == "" || stem == "." || stem == ".." {
		return "transcript"
	}
	return stem
}

// OutputPath derives the export path for an uploaded file:
// <outputDir>/<stem>.<ext>.
func OutputPath(outputDir, filename, ext string) string {
	return filepath.Join(outputDir, Stem(filename)+"."+strings.TrimPrefix(ext, "."))
}
