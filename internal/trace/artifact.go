package trace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// ArtifactName is the file written into each run directory.
	ArtifactName = "test-result.json"
	// ScreenshotDir is the run subdirectory holding screenshot files.
	ScreenshotDir = "Screenshots"

	runDirPrefix = "TestRun-"
	runDirLayout = "20060102-150405"
)

// RunDirName returns the directory name for a run started at t.
func RunDirName(t time.Time) string {
	return runDirPrefix + t.Format(runDirLayout)
}

// createRunDir makes a fresh run directory under root. A run started within
// the same second as an existing one gets a numeric suffix.
func createRunDir(root string, start time.Time) (string, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("create registry %s: %w", root, err)
	}
	base := filepath.Join(root, RunDirName(start))
	dir := base
	for i := 2; ; i++ {
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("create run dir: %w", err)
		}
		dir = fmt.Sprintf("%s-%d", base, i)
	}
}

// EncodeResult writes r as indented JSON.
func EncodeResult(w io.Writer, r *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteResult persists r at path, replacing any previous file atomically.
func WriteResult(path string, r *Result) error {
	var buf bytes.Buffer
	if err := EncodeResult(&buf, r); err != nil {
		return &ArtifactError{Path: path, Err: err}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".test-result-*.json")
	if err != nil {
		return &ArtifactError{Path: path, Err: err}
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return &ArtifactError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &ArtifactError{Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &ArtifactError{Path: path, Err: err}
	}
	return nil
}

// ReadResult loads a run artifact.
func ReadResult(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ArtifactError{Path: path, Err: err}
	}
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, &ArtifactError{Path: path, Err: err}
	}
	return &r, nil
}

// ListRuns returns the artifact paths of all runs under root, oldest first.
func ListRuns(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read registry %s: %w", root, err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), runDirPrefix) {
			continue
		}
		p := filepath.Join(root, e.Name(), ArtifactName)
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}
