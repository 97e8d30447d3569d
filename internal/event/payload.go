package event

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/timvw/webtrace/internal/webdriver"
)

// Mask replaces typed text aimed at password fields.
const Mask = "********"

// Payload is the command-specific argument set of a Record. The concrete
// types below are the only implementations.
type Payload interface {
	params() (string, string)
}

// Navigation carries the target of get/to.
type Navigation struct {
	URL string
}

func (n Navigation) params() (string, string) { return n.URL, "" }

// Query carries the arguments of element lookups and property reads.
type Query struct {
	By   string // locator used for lookups
	Name string // attribute or CSS property name
}

func (q Query) params() (string, string) {
	if q.By != "" {
		return q.By, q.Name
	}
	return q.Name, ""
}

// Script carries executed script source and its rendered arguments.
type Script struct {
	Source string
	Args   []string
}

func (s Script) params() (string, string) {
	return s.Source, JoinArgs(s.Args)
}

// CookieRef names a cookie. Values are never recorded.
type CookieRef struct {
	Name string
}

func (c CookieRef) params() (string, string) { return c.Name, "" }

// Keys carries typed text, key names or upload paths.
type Keys struct {
	Text   string
	Masked bool
}

func (k Keys) params() (string, string) {
	if k.Masked {
		return Mask, ""
	}
	return k.Text, ""
}

// Pointer carries mouse coordinates. A nil At means the current pointer
// position, which the driver does not report.
type Pointer struct {
	At     *webdriver.Point
	Offset *webdriver.Point
}

func (p Pointer) params() (string, string) {
	var offset string
	if p.Offset != nil {
		offset = fmt.Sprintf("x:%d,y:%d offset", p.Offset.X, p.Offset.Y)
	}
	return FormatViewport(p.At), offset
}

// Timeout carries a driver timeout setting.
type Timeout struct {
	Duration time.Duration
}

func (t Timeout) params() (string, string) { return t.Duration.String(), "" }

// Window carries window geometry or a window handle.
type Window struct {
	Size     *webdriver.Size
	Position *webdriver.Point
	Handle   string
}

func (w Window) params() (string, string) {
	switch {
	case w.Size != nil:
		return fmt.Sprintf("%dx%d", w.Size.Height, w.Size.Width), ""
	case w.Position != nil:
		return w.Position.String(), ""
	}
	return w.Handle, ""
}

// Frame identifies a frame by index or name.
type Frame struct {
	Index *int
	Name  string
}

func (f Frame) params() (string, string) {
	if f.Index != nil {
		return strconv.Itoa(*f.Index), ""
	}
	return f.Name, ""
}

// Failure describes the error that aborted a command.
type Failure struct {
	Type    string
	Message string
}

func (f Failure) params() (string, string) {
	return fmt.Sprintf("Exception Type: %s, message: %s", f.Type, f.Message), ""
}

// FormatViewport renders a point as used in mouse records.
func FormatViewport(p *webdriver.Point) string {
	if p == nil {
		return "x:<unknown>,y:<unknown> in view port"
	}
	return fmt.Sprintf("x:%d,y:%d in view port", p.X, p.Y)
}

// JoinArgs renders script arguments as a comma-separated list.
func JoinArgs(args []string) string {
	var b strings.Builder
	for _, a := range args {
		b.WriteString(a)
		b.WriteString(",")
	}
	return strings.TrimSuffix(b.String(), ",")
}

// MaskedKeys builds a Keys payload, hiding the text when the target locator
// looks like a password field.
func MaskedKeys(locator, text string) Keys {
	if strings.Contains(strings.ToLower(locator), "password") {
		return Keys{Masked: true}
	}
	return Keys{Text: text}
}
