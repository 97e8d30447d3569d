// Package static is a browserless webdriver.Driver. It parses pages with
// goquery and simulates navigation, forms, cookies, frames and alerts well
// enough to replay recorded scenarios and to exercise listeners in tests.
// Layout and script execution are not available unless a ScriptFunc is
// supplied.
package static

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/timvw/webtrace/internal/webdriver"
)

// ErrUnknownPage is returned when a URL is neither registered nor fetchable.
var ErrUnknownPage = errors.New("unknown page")

// ScriptFunc evaluates a script on behalf of the driver. args holds the
// driver's own elements where the caller passed elements.
type ScriptFunc func(ctx context.Context, script string, args []any) (any, error)

// Option configures a Driver.
type Option func(*Driver)

// WithPages registers in-memory documents keyed by URL.
func WithPages(pages map[string]string) Option {
	return func(d *Driver) {
		for u, src := range pages {
			d.pages[u] = src
		}
	}
}

// WithHTTPClient lets the driver fetch http and https URLs it has no
// registered page for.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Driver) { d.client = c }
}

func WithScript(f ScriptFunc) Option {
	return func(d *Driver) { d.script = f }
}

// WithUserAgent sets the User-Agent header for fetched pages.
func WithUserAgent(ua string) Option {
	return func(d *Driver) { d.userAgent = ua }
}

const (
	screenWidth  = 1920
	screenHeight = 1080
)

type window struct {
	handle  string
	history []string
	pos     int
}

func (w *window) url() string {
	if w.pos < 0 || w.pos >= len(w.history) {
		return "about:blank"
	}
	return w.history[w.pos]
}

// Driver is safe for concurrent use, though a session normally issues one
// command at a time.
type Driver struct {
	pages     map[string]string
	client    *http.Client
	script    ScriptFunc
	userAgent string

	mu      sync.Mutex
	closed  bool
	windows map[string]*window
	order   []string
	cur     *window
	top     *goquery.Document
	frames  []*goquery.Document
	ids     map[*html.Node]string
	active  *element
	cookies []webdriver.Cookie
	alerts  []string
	prompt  string
	pressed map[string]bool
	pointer webdriver.Point

	implicitWait, scriptTimeout, pageLoadTimeout time.Duration

	size     webdriver.Size
	position webdriver.Point
}

var _ webdriver.Driver = (*Driver)(nil)

// New returns a driver with one blank window.
func New(opts ...Option) *Driver {
	d := &Driver{
		pages:     make(map[string]string),
		userAgent: "webtrace-static/1.0",
		windows:   make(map[string]*window),
		ids:       make(map[*html.Node]string),
		pressed:   make(map[string]bool),
		size:      webdriver.Size{Width: 1024, Height: 768},
	}
	for _, opt := range opts {
		opt(d)
	}
	d.openWindowLocked()
	return d
}

// AddPage registers or replaces an in-memory document.
func (d *Driver) AddPage(url, src string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pages[url] = src
}

// Alert queues a dialog, as if the page had called alert(text).
func (d *Driver) Alert(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.alerts = append(d.alerts, text)
}

// PromptValue returns the text last sent to an alert.
func (d *Driver) PromptValue() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.prompt
}

// OpenWindow opens a new blank window and returns its handle without
// switching to it.
func (d *Driver) OpenWindow() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	prev, top, frames := d.cur, d.top, d.frames
	w := d.openWindowLocked()
	d.cur, d.top, d.frames = prev, top, frames
	return w.handle
}

func (d *Driver) openWindowLocked() *window {
	w := &window{handle: uuid.NewString(), pos: -1}
	d.windows[w.handle] = w
	d.order = append(d.order, w.handle)
	d.cur = w
	d.top = blankDocument()
	d.frames = nil
	return w
}

func (d *Driver) lock() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return webdriver.ErrSessionClosed
	}
	return nil
}

// doc is the document commands currently act on: the innermost frame, or
// the window's top document.
func (d *Driver) doc() *goquery.Document {
	if n := len(d.frames); n > 0 {
		return d.frames[n-1]
	}
	return d.top
}

func (d *Driver) idFor(n *html.Node) string {
	id, ok := d.ids[n]
	if !ok {
		id = uuid.NewString()
		d.ids[n] = id
	}
	return id
}

func (d *Driver) navigateLocked(ctx context.Context, rawURL string) error {
	doc, err := d.load(ctx, rawURL)
	if err != nil {
		return err
	}
	w := d.cur
	w.history = append(w.history[:w.pos+1], rawURL)
	w.pos = len(w.history) - 1
	d.show(doc)
	return nil
}

func (d *Driver) show(doc *goquery.Document) {
	d.top = doc
	d.frames = nil
	d.active = nil
	d.ids = make(map[*html.Node]string)
}

func (d *Driver) Get(ctx context.Context, url string) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	return d.navigateLocked(ctx, url)
}

func (d *Driver) Title(context.Context) (string, error) {
	if err := d.lock(); err != nil {
		return "", err
	}
	defer d.mu.Unlock()
	return strings.TrimSpace(d.top.Find("title").First().Text()), nil
}

func (d *Driver) CurrentURL(context.Context) (string, error) {
	if err := d.lock(); err != nil {
		return "", err
	}
	defer d.mu.Unlock()
	return d.cur.url(), nil
}

func (d *Driver) Screenshot(context.Context) ([]byte, error) {
	if err := d.lock(); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	return placeholderPNG(d.size)
}

func (d *Driver) FindElements(_ context.Context, by webdriver.By) ([]webdriver.Element, error) {
	if err := d.lock(); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	return d.findAllLocked(d.doc(), d.doc().Selection, by)
}

func (d *Driver) FindElement(_ context.Context, by webdriver.By) (webdriver.Element, error) {
	if err := d.lock(); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	return d.findLocked(d.doc(), d.doc().Selection, by)
}

func (d *Driver) PageSource(context.Context) (string, error) {
	if err := d.lock(); err != nil {
		return "", err
	}
	defer d.mu.Unlock()
	return goquery.OuterHtml(d.doc().Selection)
}

// Close closes the current window. Closing the last window ends the session.
func (d *Driver) Close(context.Context) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	h := d.cur.handle
	delete(d.windows, h)
	for i, o := range d.order {
		if o == h {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	if len(d.order) == 0 {
		d.closed = true
	}
	return nil
}

func (d *Driver) Quit(context.Context) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	d.closed = true
	d.windows = map[string]*window{}
	d.order = nil
	return nil
}

func (d *Driver) WindowHandles(context.Context) ([]string, error) {
	if err := d.lock(); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	return append([]string(nil), d.order...), nil
}

func (d *Driver) WindowHandle(context.Context) (string, error) {
	if err := d.lock(); err != nil {
		return "", err
	}
	defer d.mu.Unlock()
	if _, ok := d.windows[d.cur.handle]; !ok {
		return "", webdriver.ErrNoSuchWindow
	}
	return d.cur.handle, nil
}

func (d *Driver) ExecuteScript(ctx context.Context, script string, args ...any) (any, error) {
	if err := d.lock(); err != nil {
		return nil, err
	}
	f := d.script
	d.mu.Unlock()
	if f == nil {
		return nil, fmt.Errorf("execute script: %w", webdriver.ErrUnsupported)
	}
	return f(ctx, script, args)
}

func (d *Driver) ExecuteAsyncScript(ctx context.Context, script string, args ...any) (any, error) {
	return d.ExecuteScript(ctx, script, args...)
}

func (d *Driver) AddCookie(_ context.Context, c webdriver.Cookie) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	if c.Name == "" {
		return fmt.Errorf("add cookie: empty name")
	}
	if c.Path == "" {
		c.Path = "/"
	}
	for i, have := range d.cookies {
		if have.Name == c.Name {
			d.cookies[i] = c
			return nil
		}
	}
	d.cookies = append(d.cookies, c)
	return nil
}

func (d *Driver) DeleteCookieNamed(_ context.Context, name string) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	out := d.cookies[:0]
	for _, c := range d.cookies {
		if c.Name != name {
			out = append(out, c)
		}
	}
	d.cookies = out
	return nil
}

func (d *Driver) DeleteCookie(ctx context.Context, c webdriver.Cookie) error {
	return d.DeleteCookieNamed(ctx, c.Name)
}

func (d *Driver) DeleteAllCookies(context.Context) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	d.cookies = nil
	return nil
}

func (d *Driver) Cookies(context.Context) ([]webdriver.Cookie, error) {
	if err := d.lock(); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	return append([]webdriver.Cookie(nil), d.cookies...), nil
}

func (d *Driver) CookieNamed(_ context.Context, name string) (webdriver.Cookie, error) {
	if err := d.lock(); err != nil {
		return webdriver.Cookie{}, err
	}
	defer d.mu.Unlock()
	for _, c := range d.cookies {
		if c.Name == name {
			return c, nil
		}
	}
	return webdriver.Cookie{}, fmt.Errorf("cookie %q: %w", name, webdriver.ErrNoSuchCookie)
}

func (d *Driver) ImplicitlyWait(_ context.Context, t time.Duration) error {
	return d.setTimeout(&d.implicitWait, t)
}

func (d *Driver) SetScriptTimeout(_ context.Context, t time.Duration) error {
	return d.setTimeout(&d.scriptTimeout, t)
}

func (d *Driver) PageLoadTimeout(_ context.Context, t time.Duration) error {
	return d.setTimeout(&d.pageLoadTimeout, t)
}

func (d *Driver) setTimeout(dst *time.Duration, t time.Duration) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	if t < 0 {
		return fmt.Errorf("negative timeout %s", t)
	}
	*dst = t
	return nil
}

func (d *Driver) SetWindowSize(_ context.Context, s webdriver.Size) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("invalid window size %s", s)
	}
	d.size = s
	return nil
}

func (d *Driver) SetWindowPosition(_ context.Context, p webdriver.Point) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	d.position = p
	return nil
}

func (d *Driver) WindowSize(context.Context) (webdriver.Size, error) {
	if err := d.lock(); err != nil {
		return webdriver.Size{}, err
	}
	defer d.mu.Unlock()
	return d.size, nil
}

func (d *Driver) WindowPosition(context.Context) (webdriver.Point, error) {
	if err := d.lock(); err != nil {
		return webdriver.Point{}, err
	}
	defer d.mu.Unlock()
	return d.position, nil
}

func (d *Driver) Maximize(context.Context) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	d.position = webdriver.Point{}
	d.size = webdriver.Size{Width: screenWidth, Height: screenHeight}
	return nil
}

func (d *Driver) Fullscreen(ctx context.Context) error { return d.Maximize(ctx) }

func (d *Driver) Back(ctx context.Context) error { return d.step(ctx, -1) }
func (d *Driver) Forward(ctx context.Context) error { return d.step(ctx, +1) }
func (d *Driver) Refresh(ctx context.Context) error { return d.step(ctx, 0) }

func (d *Driver) To(ctx context.Context, url string) error { return d.Get(ctx, url) }

// step moves through the window's history and reloads the page there.
// Moving past either end is a no-op, as in a browser.
func (d *Driver) step(ctx context.Context, delta int) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	w := d.cur
	pos := w.pos + delta
	if pos < 0 || pos >= len(w.history) {
		return nil
	}
	doc, err := d.load(ctx, w.history[pos])
	if err != nil {
		return err
	}
	w.pos = pos
	d.show(doc)
	return nil
}

func (d *Driver) SwitchToFrameIndex(ctx context.Context, index int) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	frames := d.doc().Find("iframe, frame")
	if index < 0 || index >= frames.Length() {
		return fmt.Errorf("frame %d: %w", index, webdriver.ErrNoSuchFrame)
	}
	return d.enterFrameLocked(ctx, frames.Eq(index))
}

func (d *Driver) SwitchToFrameName(ctx context.Context, nameOrID string) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	frame := d.doc().Find("iframe, frame").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.AttrOr("name", "") == nameOrID || s.AttrOr("id", "") == nameOrID
	}).First()
	if frame.Length() == 0 {
		return fmt.Errorf("frame %q: %w", nameOrID, webdriver.ErrNoSuchFrame)
	}
	return d.enterFrameLocked(ctx, frame)
}

func (d *Driver) SwitchToFrameElement(ctx context.Context, frame webdriver.Element) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	el, err := d.own(frame)
	if err != nil {
		return err
	}
	if tag := goquery.NodeName(el.sel); tag != "iframe" && tag != "frame" {
		return fmt.Errorf("%s is a %s: %w", el.loc, tag, webdriver.ErrNoSuchFrame)
	}
	return d.enterFrameLocked(ctx, el.sel)
}

func (d *Driver) enterFrameLocked(ctx context.Context, frame *goquery.Selection) error {
	var doc *goquery.Document
	if src, ok := frame.Attr("srcdoc"); ok {
		doc = parse(src)
	} else {
		var err error
		if doc, err = d.load(ctx, resolve(d.cur.url(), frame.AttrOr("src", "about:blank"))); err != nil {
			return fmt.Errorf("%w: %w", webdriver.ErrNoSuchFrame, err)
		}
	}
	d.frames = append(d.frames, doc)
	d.active = nil
	return nil
}

func (d *Driver) SwitchToParentFrame(context.Context) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	if n := len(d.frames); n > 0 {
		d.frames = d.frames[:n-1]
	}
	return nil
}

func (d *Driver) SwitchToWindow(ctx context.Context, handle string) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	w, ok := d.windows[handle]
	if !ok {
		return fmt.Errorf("window %q: %w", handle, webdriver.ErrNoSuchWindow)
	}
	if w == d.cur {
		return nil
	}
	d.cur = w
	doc := blankDocument()
	if w.pos >= 0 {
		var err error
		if doc, err = d.load(ctx, w.url()); err != nil {
			return err
		}
	}
	d.show(doc)
	return nil
}

func (d *Driver) SwitchToDefaultContent(context.Context) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	d.frames = nil
	return nil
}

// ActiveElement returns the element last clicked or typed into, or the body.
func (d *Driver) ActiveElement(context.Context) (webdriver.Element, error) {
	if err := d.lock(); err != nil {
		return nil, err
	}
	defer d.mu.Unlock()
	if d.active != nil {
		return d.active, nil
	}
	body := d.doc().Find("body").First()
	if body.Length() == 0 {
		return nil, fmt.Errorf("active element: %w", webdriver.ErrNoSuchElement)
	}
	return d.wrapLocked(d.doc(), body, "tag=body"), nil
}

func (d *Driver) SwitchToAlert(context.Context) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	if len(d.alerts) == 0 {
		return webdriver.ErrNoAlert
	}
	return nil
}

func (d *Driver) DismissAlert(context.Context) error { return d.closeAlert() }
func (d *Driver) AcceptAlert(context.Context) error { return d.closeAlert() }

func (d *Driver) closeAlert() error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	if len(d.alerts) == 0 {
		return webdriver.ErrNoAlert
	}
	d.alerts = d.alerts[1:]
	return nil
}

func (d *Driver) AlertText(context.Context) (string, error) {
	if err := d.lock(); err != nil {
		return "", err
	}
	defer d.mu.Unlock()
	if len(d.alerts) == 0 {
		return "", webdriver.ErrNoAlert
	}
	return d.alerts[0], nil
}

func (d *Driver) SendAlertText(_ context.Context, text string) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	if len(d.alerts) == 0 {
		return webdriver.ErrNoAlert
	}
	d.prompt = text
	return nil
}

// SendKeys types into the active element.
func (d *Driver) SendKeys(ctx context.Context, text string) error {
	if err := d.lock(); err != nil {
		return err
	}
	el := d.active
	d.mu.Unlock()
	if el == nil {
		return fmt.Errorf("send keys: %w", webdriver.ErrNoSuchElement)
	}
	return el.SendKeys(ctx, text)
}

// PressKey holds key down. Enter submits the active element's form.
func (d *Driver) PressKey(ctx context.Context, key string) error {
	if err := d.lock(); err != nil {
		return err
	}
	d.pressed[key] = true
	el := d.active
	d.mu.Unlock()
	if key == webdriver.KeyEnter && el != nil {
		return el.Submit(ctx)
	}
	return nil
}

func (d *Driver) ReleaseKey(_ context.Context, key string) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	delete(d.pressed, key)
	return nil
}

// MouseClick clicks the active element when at is nil. Clicks at page
// coordinates only move the pointer: there is no layout to hit-test.
func (d *Driver) MouseClick(ctx context.Context, at *webdriver.Point) error {
	if err := d.lock(); err != nil {
		return err
	}
	el := d.active
	if at != nil {
		d.pointer = *at
	}
	d.mu.Unlock()
	if at == nil && el != nil {
		return el.Click(ctx)
	}
	return nil
}

func (d *Driver) ContextClick(_ context.Context, at *webdriver.Point) error { return d.movePointer(at) }
func (d *Driver) DoubleClick(ctx context.Context, at *webdriver.Point) error {
	return d.MouseClick(ctx, at)
}
func (d *Driver) MouseDown(_ context.Context, at *webdriver.Point) error { return d.movePointer(at) }
func (d *Driver) MouseUp(_ context.Context, at *webdriver.Point) error { return d.movePointer(at) }
func (d *Driver) MouseMove(_ context.Context, to *webdriver.Point) error { return d.movePointer(to) }

func (d *Driver) MouseMoveBy(_ context.Context, to *webdriver.Point, dx, dy int) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	if to != nil {
		d.pointer = *to
	}
	d.pointer.X += dx
	d.pointer.Y += dy
	return nil
}

func (d *Driver) movePointer(at *webdriver.Point) error {
	if err := d.lock(); err != nil {
		return err
	}
	defer d.mu.Unlock()
	if at != nil {
		d.pointer = *at
	}
	return nil
}

// Pointer returns the last mouse position.
func (d *Driver) Pointer() webdriver.Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pointer
}
