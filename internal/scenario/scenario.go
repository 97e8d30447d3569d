// Package scenario runs browser tests described in YAML through an
// instrumented driver.
//
//	name: shop
//	pages:
//	  https://shop.test/login: <form action="/home">...</form>
//	tests:
//	  - name: login works
//	    before:
//	      - do: get
//	        url: https://shop.test/login
//	    steps:
//	      - {do: type, id: user, text: alice}
//	      - {do: click, css: "button[type=submit]"}
//	      - {do: title, want: Home}
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/timvw/webtrace/internal/webdriver"
)

// Scenario is a named group of tests.
type Scenario struct {
	Name string `yaml:"name"`
	// Pages are documents served by the static driver, keyed by URL.
	Pages map[string]string `yaml:"pages,omitempty"`
	Tests []Test            `yaml:"tests"`
}

// Test is one test case. Before steps are recorded as a configuration
// execution on the same browser session.
type Test struct {
	Name   string `yaml:"name"`
	Before []Step `yaml:"before,omitempty"`
	Steps  []Step `yaml:"steps"`
}

// Locator selects an element. Exactly one field is set.
type Locator struct {
	CSS   string `yaml:"css,omitempty"`
	ID    string `yaml:"id,omitempty"`
	Name  string `yaml:"name,omitempty"`
	XPath string `yaml:"xpath,omitempty"`
	Link  string `yaml:"link,omitempty"`
	Tag   string `yaml:"tag,omitempty"`
	Class string `yaml:"class,omitempty"`
}

func (l Locator) set() int {
	n := 0
	for _, v := range []string{l.CSS, l.ID, l.Name, l.XPath, l.Link, l.Tag, l.Class} {
		if v != "" {
			n++
		}
	}
	return n
}

// By converts l to a driver locator.
func (l Locator) By() webdriver.By {
	switch {
	case l.ID != "":
		return webdriver.ByID(l.ID)
	case l.Name != "":
		return webdriver.ByName(l.Name)
	case l.XPath != "":
		return webdriver.ByXPath(l.XPath)
	case l.Link != "":
		return webdriver.ByLinkText(l.Link)
	case l.Tag != "":
		return webdriver.ByTagName(l.Tag)
	case l.Class != "":
		return webdriver.ByClass(l.Class)
	}
	return webdriver.ByCSS(l.CSS)
}

// Step is one browser interaction or check.
type Step struct {
	Do      string `yaml:"do"`
	Locator `yaml:",inline"`

	URL    string            `yaml:"url,omitempty"`
	Text   string            `yaml:"text,omitempty"`
	Attr   string            `yaml:"attr,omitempty"`
	Key    string            `yaml:"key,omitempty"`
	Script string            `yaml:"script,omitempty"`
	Args   []any             `yaml:"args,omitempty"`
	Frame  string            `yaml:"frame,omitempty"`
	Cookie *webdriver.Cookie `yaml:"cookie,omitempty"`
	// Want is the expected value of a check step. Checks without it only
	// record the value.
	Want *string `yaml:"want,omitempty"`
}

type stepKind struct {
	element bool
	needs   func(Step) error
}

func need(field string, get func(Step) string) func(Step) error {
	return func(s Step) error {
		if get(s) == "" {
			return fmt.Errorf("%s requires %s", s.Do, field)
		}
		return nil
	}
}

var (
	needURL    = need("url", func(s Step) string { return s.URL })
	needText   = need("text", func(s Step) string { return s.Text })
	needAttr   = need("attr", func(s Step) string { return s.Attr })
	needKey    = need("key", func(s Step) string { return s.Key })
	needScript = need("script", func(s Step) string { return s.Script })
	needFrame  = need("frame", func(s Step) string { return s.Frame })
	needCookie = func(s Step) error {
		if s.Cookie == nil || s.Cookie.Name == "" {
			return fmt.Errorf("%s requires cookie.name", s.Do)
		}
		return nil
	}
)

var kinds = map[string]stepKind{
	"get":             {needs: needURL},
	"to":              {needs: needURL},
	"back":            {},
	"forward":         {},
	"refresh":         {},
	"title":           {},
	"url":             {},
	"click":           {element: true},
	"submit":          {element: true},
	"type":            {element: true, needs: needText},
	"upload":          {element: true, needs: needText},
	"clear":           {element: true},
	"text":            {element: true},
	"attribute":       {element: true, needs: needAttr},
	"css":             {element: true, needs: needAttr},
	"displayed":       {element: true},
	"enabled":         {element: true},
	"selected":        {element: true},
	"count":           {element: true},
	"script":          {needs: needScript},
	"async_script":    {needs: needScript},
	"keys":            {needs: needText},
	"press":           {needs: needKey},
	"release":         {needs: needKey},
	"add_cookie":      {needs: needCookie},
	"delete_cookie":   {needs: needText},
	"delete_cookies":  {},
	"cookie":          {needs: needText},
	"frame":           {needs: needFrame},
	"parent_frame":    {},
	"default_content": {},
	"alert_text":      {},
	"alert_send":      {needs: needText},
	"accept":          {},
	"dismiss":         {},
	"maximize":        {},
	"screenshot":      {},
	"close":           {},
}

// Validate reports every malformed test and step.
func (s *Scenario) Validate() error {
	var errs []error
	if len(s.Tests) == 0 {
		errs = append(errs, errors.New("no tests"))
	}
	seen := make(map[string]bool, len(s.Tests))
	for i, t := range s.Tests {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("test %d: name is required", i+1))
		} else if seen[name] {
			errs = append(errs, fmt.Errorf("test %q: duplicate name", name))
		}
		seen[name] = true
		for j, st := range append(append([]Step(nil), t.Before...), t.Steps...) {
			if err := st.validate(); err != nil {
				errs = append(errs, fmt.Errorf("test %q step %d: %w", t.Name, j+1, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (s Step) validate() error {
	k, ok := kinds[s.Do]
	if !ok {
		return fmt.Errorf("unknown action %q", s.Do)
	}
	switch n := s.Locator.set(); {
	case k.element && n == 0:
		return fmt.Errorf("%s requires a locator", s.Do)
	case k.element && n > 1:
		return fmt.Errorf("%s: more than one locator", s.Do)
	case !k.element && n > 0:
		return fmt.Errorf("%s does not take a locator", s.Do)
	}
	if k.needs != nil {
		return k.needs(s)
	}
	return nil
}

// Parse decodes and validates a scenario. Unknown keys are errors.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		base := filepath.Base(path)
		s.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return s, nil
}
