package listener

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/timvw/webtrace/internal/event"
	"github.com/timvw/webtrace/internal/webdriver"
)

//go:embed devtools.js
var shadowPathScript string

// ShadowPathExtractor checks every element returned by a lookup and, when
// the element lives inside one or more shadow roots, prints a script
// expression that reaches it without the locator. Found paths are kept in a
// dictionary written out on Close.
type ShadowPathExtractor struct {
	Base

	w    io.Writer
	path string
	log  *slog.Logger

	mu   sync.Mutex
	dict map[string]string
}

// NewShadowPathExtractor prints to w (stderr when nil) and writes the
// dictionary to path on Close unless path is empty.
func NewShadowPathExtractor(w io.Writer, path string, log *slog.Logger) *ShadowPathExtractor {
	if w == nil {
		w = os.Stderr
	}
	if log == nil {
		log = slog.Default()
	}
	return &ShadowPathExtractor{w: w, path: path, log: log, dict: make(map[string]string)}
}

// ShadowDictPath is the conventional dictionary location for a test.
func ShadowDictPath(dir, testName string) string {
	return filepath.Join(dir, fileName(testName)+"-shadow-dict.txt")
}

func (s *ShadowPathExtractor) AfterFindElementByDriver(ctx context.Context, rec *event.Record, d webdriver.Driver) {
	s.inspect(ctx, rec, d)
}

func (s *ShadowPathExtractor) AfterFindElementByElement(ctx context.Context, rec *event.Record, d webdriver.Driver) {
	s.inspect(ctx, rec, d)
}

func (s *ShadowPathExtractor) inspect(ctx context.Context, rec *event.Record, d webdriver.Driver) {
	el, ok := rec.ReturnObject.(webdriver.Element)
	if !ok || el == nil {
		return
	}
	res, err := d.ExecuteScript(ctx, shadowPathScript, el)
	if err != nil {
		s.log.DebugContext(ctx, "shadow path script failed", "locator", rec.Param1(), "err", err)
		return
	}
	path, _ := res.(string)
	if !strings.Contains(path, "shadowRoot") {
		return
	}

	locator := rec.Param1()
	s.mu.Lock()
	s.dict[locator] = path
	s.mu.Unlock()
	fmt.Fprintf(s.w, "%s >>> %s\n", locator, path)
}

// Dictionary returns the locator to script mapping found so far.
func (s *ShadowPathExtractor) Dictionary() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.dict))
	for k, v := range s.dict {
		out[k] = v
	}
	return out
}

// Close writes the dictionary file.
func (s *ShadowPathExtractor) Close() error {
	if s.path == "" {
		return nil
	}
	dict := s.Dictionary()
	locators := make([]string, 0, len(dict))
	for k := range dict {
		locators = append(locators, k)
	}
	sort.Strings(locators)

	var b strings.Builder
	fmt.Fprintf(&b, "Number of locators inside shadowRoot found: %d\n\n", len(dict))
	for _, loc := range locators {
		fmt.Fprintf(&b, "%s >>> %s\n", loc, dict[loc])
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create shadow dictionary dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write shadow dictionary: %w", err)
	}
	return nil
}
