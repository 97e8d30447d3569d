package listener

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/timvw/webtrace/internal/event"
	"github.com/timvw/webtrace/internal/webdriver"
)

// LocatorLogger collects the locator of every element lookup, from the
// driver or from an element, in call order. Close writes the count followed
// by one locator per line.
type LocatorLogger struct {
	Base

	path string

	mu       sync.Mutex
	locators []string
}

// NewLocatorLogger writes to path on Close unless path is empty.
func NewLocatorLogger(path string) *LocatorLogger {
	return &LocatorLogger{path: path}
}

// LocatorsPath is the conventional locator list location for a test.
func LocatorsPath(dir, testName string) string {
	return filepath.Join(dir, fileName(testName)+"-locators.txt")
}

func (l *LocatorLogger) BeforeFindElementByDriver(_ context.Context, rec *event.Record, _ webdriver.Driver) {
	l.add(rec)
}

func (l *LocatorLogger) BeforeFindElementsByDriver(_ context.Context, rec *event.Record, _ webdriver.Driver) {
	l.add(rec)
}

func (l *LocatorLogger) BeforeFindElementByElement(_ context.Context, rec *event.Record, _ webdriver.Driver) {
	l.add(rec)
}

func (l *LocatorLogger) BeforeFindElementsByElement(_ context.Context, rec *event.Record, _ webdriver.Driver) {
	l.add(rec)
}

func (l *LocatorLogger) add(rec *event.Record) {
	l.mu.Lock()
	l.locators = append(l.locators, rec.Param1())
	l.mu.Unlock()
}

// Locators returns the lookups seen so far, repeats included.
func (l *LocatorLogger) Locators() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.locators...)
}

func (l *LocatorLogger) Close() error {
	if l.path == "" {
		return nil
	}
	locs := l.Locators()
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n", len(locs))
	for _, loc := range locs {
		b.WriteString(loc)
		b.WriteByte('\n')
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create locator list dir: %w", err)
	}
	if err := os.WriteFile(l.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write locator list: %w", err)
	}
	return nil
}
