// Package webdriver defines the browser capability that instrumented sessions
// are built on. Implementations talk to a real browser (see rodriver) or to an
// in-memory document (see static); the instrumentation layer only ever sees
// the interfaces declared here.
package webdriver

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoSuchElement = errors.New("no such element")
	ErrNoSuchFrame   = errors.New("no such frame")
	ErrNoSuchWindow  = errors.New("no such window")
	ErrNoSuchCookie  = errors.New("no such cookie")
	ErrNoAlert       = errors.New("no alert open")
	ErrStaleElement  = errors.New("stale element reference")
	ErrSessionClosed = errors.New("session closed")
	ErrUnsupported   = errors.New("operation not supported by driver")
)

// Locator strategies.
const (
	StrategyCSS       = "css"
	StrategyXPath     = "xpath"
	StrategyID        = "id"
	StrategyName      = "name"
	StrategyTagName   = "tag"
	StrategyClassName = "class"
	StrategyLinkText  = "link"
)

// By identifies how an element is located.
type By struct {
	Strategy string
	Value    string
}

func ByCSS(sel string) By { return By{Strategy: StrategyCSS, Value: sel} }
func ByXPath(expr string) By { return By{Strategy: StrategyXPath, Value: expr} }
func ByID(id string) By { return By{Strategy: StrategyID, Value: id} }
func ByName(name string) By { return By{Strategy: StrategyName, Value: name} }
func ByTagName(tag string) By { return By{Strategy: StrategyTagName, Value: tag} }
func ByClass(class string) By { return By{Strategy: StrategyClassName, Value: class} }
func ByLinkText(text string) By { return By{Strategy: StrategyLinkText, Value: text} }

// String renders the locator as "strategy=value", e.g. "css=#login".
func (b By) String() string {
	if b.Strategy == "" {
		return b.Value
	}
	return b.Strategy + "=" + b.Value
}

// CSS converts the locator to a CSS selector when the strategy allows it.
func (b By) CSS() (string, bool) {
	switch b.Strategy {
	case StrategyCSS, "":
		return b.Value, true
	case StrategyID:
		return "#" + b.Value, true
	case StrategyName:
		return fmt.Sprintf("[name=%q]", b.Value), true
	case StrategyTagName:
		return b.Value, true
	case StrategyClassName:
		return "." + b.Value, true
	}
	return "", false
}

type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p Point) String() string { return fmt.Sprintf("x:%d,y:%d", p.X, p.Y) }

type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

func (s Size) String() string { return fmt.Sprintf("h:%d,w:%d", s.Height, s.Width) }

type Rect struct {
	Point
	Size
}

func (r Rect) String() string {
	return fmt.Sprintf("x:%d,y:%d,h:%d,w:%d", r.X, r.Y, r.Height, r.Width)
}

// Cookie mirrors the fields browsers expose for a cookie.
type Cookie struct {
	Name     string     `json:"name" yaml:"name"`
	Value    string     `json:"value" yaml:"value"`
	Path     string     `json:"path,omitempty" yaml:"path,omitempty"`
	Domain   string     `json:"domain,omitempty" yaml:"domain,omitempty"`
	Secure   bool       `json:"secure,omitempty" yaml:"secure,omitempty"`
	HTTPOnly bool       `json:"httpOnly,omitempty" yaml:"http_only,omitempty"`
	Expiry   *time.Time `json:"expiry,omitempty" yaml:"expiry,omitempty"`
}

// Key names understood by PressKey/ReleaseKey. Drivers map them onto their own
// key codes; anything else is treated as a literal character sequence.
const (
	KeyEnter     = "Enter"
	KeyTab       = "Tab"
	KeyEscape    = "Escape"
	KeyBackspace = "Backspace"
	KeyShift     = "Shift"
	KeyControl   = "Control"
	KeyAlt       = "Alt"
	KeyMeta      = "Meta"
)
