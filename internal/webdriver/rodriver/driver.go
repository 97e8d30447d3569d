// Package rodriver adapts a Chrome DevTools session driven by go-rod to
// webdriver.Driver.
package rodriver

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/timvw/webtrace/internal/webdriver"
)

// Options selects the browser to drive.
type Options struct {
	// ControlURL is the DevTools websocket of a running browser. When empty a
	// local Chrome is launched.
	ControlURL string
	// Bin overrides the browser binary used for launching.
	Bin      string
	Headless bool
}

// Driver is one browser tab plus the frames entered in it.
type Driver struct {
	browser *rod.Browser
	launch  *launcher.Launcher

	mu       sync.Mutex
	page     *rod.Page
	frames   []*rod.Page
	dialog   *proto.PageJavascriptDialogOpening
	prompt   string
	implicit time.Duration
	script   time.Duration
	load     time.Duration
	stop     func()
}

var _ webdriver.Driver = (*Driver)(nil)

// Connect attaches to, or launches, a browser and opens a blank tab.
func Connect(ctx context.Context, opts Options) (*Driver, error) {
	d := &Driver{}
	controlURL := opts.ControlURL
	if controlURL == "" {
		l := launcher.New().Context(ctx).Headless(opts.Headless)
		if opts.Bin != "" {
			l = l.Bin(opts.Bin)
		}
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch browser: %w", err)
		}
		d.launch = l
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		d.kill()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}
	d.browser = browser

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		d.kill()
		return nil, fmt.Errorf("open tab: %w", err)
	}
	d.attach(page)
	return d, nil
}

func (d *Driver) kill() {
	if d.launch != nil {
		d.launch.Kill()
	}
}

// attach makes page the current tab and tracks its dialogs.
func (d *Driver) attach(page *rod.Page) {
	if d.stop != nil {
		d.stop()
	}
	watch, cancel := context.WithCancel(context.Background())
	d.page = page
	d.frames = nil
	d.dialog = nil
	d.stop = cancel
	wait := page.Context(watch).EachEvent(
		func(e *proto.PageJavascriptDialogOpening) {
			d.mu.Lock()
			d.dialog = e
			d.mu.Unlock()
		},
		func(*proto.PageJavascriptDialogClosed) {
			d.mu.Lock()
			d.dialog = nil
			d.mu.Unlock()
		},
	)
	go wait()
}

// target is the page or frame commands act on.
func (d *Driver) target(ctx context.Context) *rod.Page {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.page
	if n := len(d.frames); n > 0 {
		p = d.frames[n-1]
	}
	return p.Context(ctx)
}

func (d *Driver) tab(ctx context.Context) *rod.Page {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.page.Context(ctx)
}

func (d *Driver) timeouts() (implicit, script, load time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.implicit, d.script, d.load
}

func (d *Driver) Get(ctx context.Context, url string) error {
	_, _, load := d.timeouts()
	p := d.tab(ctx)
	if load > 0 {
		p = p.Timeout(load)
	}
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("load %s: %w", url, err)
	}
	d.mu.Lock()
	d.frames = nil
	d.mu.Unlock()
	return nil
}

func (d *Driver) Title(ctx context.Context) (string, error) {
	info, err := d.tab(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.Title, nil
}

func (d *Driver) CurrentURL(ctx context.Context) (string, error) {
	info, err := d.tab(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

func (d *Driver) Screenshot(ctx context.Context) ([]byte, error) {
	return d.tab(ctx).Screenshot(false, nil)
}

func (d *Driver) FindElements(ctx context.Context, by webdriver.By) ([]webdriver.Element, error) {
	els, err := d.query(ctx, d.target(ctx), by)
	if err != nil {
		return nil, err
	}
	return d.wrapAll(els, by), nil
}

func (d *Driver) FindElement(ctx context.Context, by webdriver.By) (webdriver.Element, error) {
	el, err := d.queryOne(ctx, by, func(p *rod.Page) (rod.Elements, error) {
		return d.query(ctx, p, by)
	})
	if err != nil {
		return nil, err
	}
	return d.wrap(el, by.String()), nil
}

// queryOne retries a lookup until it matches or the implicit wait runs out.
func (d *Driver) queryOne(ctx context.Context, by webdriver.By, find func(*rod.Page) (rod.Elements, error)) (*rod.Element, error) {
	implicit, _, _ := d.timeouts()
	deadline := time.Now().Add(implicit)
	for {
		els, err := find(d.target(ctx))
		if err != nil {
			return nil, err
		}
		if len(els) > 0 {
			return els.First(), nil
		}
		if !time.Now().Before(deadline) {
			return nil, fmt.Errorf("%s: %w", by, webdriver.ErrNoSuchElement)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
}

func (d *Driver) query(_ context.Context, p *rod.Page, by webdriver.By) (rod.Elements, error) {
	switch by.Strategy {
	case webdriver.StrategyXPath:
		return p.ElementsX(by.Value)
	case webdriver.StrategyLinkText:
		return p.ElementsX(linkXPath(by.Value))
	}
	css, ok := by.CSS()
	if !ok {
		return nil, fmt.Errorf("locate %s: %w", by, webdriver.ErrUnsupported)
	}
	return p.Elements(css)
}

func linkXPath(text string) string {
	return fmt.Sprintf("//a[normalize-space(.)=%s]", xpathLiteral(text))
}

// xpathLiteral quotes s for XPath 1.0, which has no escape sequences.
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	return "concat('" + strings.Join(parts, `', "'", '`) + "')"
}

func (d *Driver) PageSource(ctx context.Context) (string, error) {
	return d.target(ctx).HTML()
}

func (d *Driver) Close(ctx context.Context) error {
	return d.tab(ctx).Close()
}

func (d *Driver) Quit(context.Context) error {
	d.mu.Lock()
	if d.stop != nil {
		d.stop()
	}
	d.mu.Unlock()
	err := d.browser.Close()
	d.kill()
	return err
}

func (d *Driver) WindowHandles(ctx context.Context) ([]string, error) {
	pages, err := d.browser.Context(ctx).Pages()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = string(p.TargetID)
	}
	return out, nil
}

func (d *Driver) WindowHandle(ctx context.Context) (string, error) {
	return string(d.tab(ctx).TargetID), nil
}

func (d *Driver) ExecuteScript(ctx context.Context, script string, args ...any) (any, error) {
	_, timeout, _ := d.timeouts()
	p := d.target(ctx)
	if timeout > 0 {
		p = p.Timeout(timeout)
	}
	res, err := p.Eval(syncScript(script), jsArgs(args)...)
	if err != nil {
		return nil, err
	}
	return res.Value.Val(), nil
}

func (d *Driver) ExecuteAsyncScript(ctx context.Context, script string, args ...any) (any, error) {
	_, timeout, _ := d.timeouts()
	p := d.target(ctx)
	if timeout > 0 {
		p = p.Timeout(timeout)
	}
	res, err := p.Eval(asyncScript(script), jsArgs(args)...)
	if err != nil {
		return nil, err
	}
	return res.Value.Val(), nil
}

// syncScript turns a WebDriver script body, which reads arguments and uses
// return, into a function definition.
func syncScript(body string) string {
	return "function() {\n" + body + "\n}"
}

// asyncScript passes a completion callback as the last argument and
// resolves with whatever it is called with.
func asyncScript(body string) string {
	return "function() {\nconst args = Array.from(arguments);\n" +
		"return new Promise(resolve => { args.push(resolve); (function() {\n" + body +
		"\n}).apply(this, args); });\n}"
}

// jsArgs replaces elements with their remote objects.
func jsArgs(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		if el, ok := a.(*element); ok {
			out[i] = el.el.Object
			continue
		}
		out[i] = a
	}
	return out
}

func (d *Driver) AddCookie(ctx context.Context, c webdriver.Cookie) error {
	p := d.tab(ctx)
	param := toCookieParam(c)
	if param.Domain == "" {
		info, err := p.Info()
		if err != nil {
			return err
		}
		param.URL = info.URL
	}
	return p.SetCookies([]*proto.NetworkCookieParam{param})
}

func toCookieParam(c webdriver.Cookie) *proto.NetworkCookieParam {
	p := &proto.NetworkCookieParam{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   c.Domain,
		Path:     c.Path,
		Secure:   c.Secure,
		HTTPOnly: c.HTTPOnly,
	}
	if c.Expiry != nil {
		p.Expires = proto.TimeSinceEpoch(c.Expiry.Unix())
	}
	return p
}

func fromCookie(c *proto.NetworkCookie) webdriver.Cookie {
	out := webdriver.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   c.Domain,
		Path:     c.Path,
		Secure:   c.Secure,
		HTTPOnly: c.HTTPOnly,
	}
	if c.Expires > 0 {
		t := c.Expires.Time()
		out.Expiry = &t
	}
	return out
}

func (d *Driver) DeleteCookieNamed(ctx context.Context, name string) error {
	p := d.tab(ctx)
	info, err := p.Info()
	if err != nil {
		return err
	}
	return proto.NetworkDeleteCookies{Name: name, URL: info.URL}.Call(p)
}

func (d *Driver) DeleteCookie(ctx context.Context, c webdriver.Cookie) error {
	return d.DeleteCookieNamed(ctx, c.Name)
}

func (d *Driver) DeleteAllCookies(ctx context.Context) error {
	return d.tab(ctx).SetCookies(nil)
}

func (d *Driver) Cookies(ctx context.Context) ([]webdriver.Cookie, error) {
	cs, err := d.tab(ctx).Cookies(nil)
	if err != nil {
		return nil, err
	}
	out := make([]webdriver.Cookie, len(cs))
	for i, c := range cs {
		out[i] = fromCookie(c)
	}
	return out, nil
}

func (d *Driver) CookieNamed(ctx context.Context, name string) (webdriver.Cookie, error) {
	cs, err := d.Cookies(ctx)
	if err != nil {
		return webdriver.Cookie{}, err
	}
	for _, c := range cs {
		if c.Name == name {
			return c, nil
		}
	}
	return webdriver.Cookie{}, fmt.Errorf("cookie %q: %w", name, webdriver.ErrNoSuchCookie)
}

func (d *Driver) ImplicitlyWait(_ context.Context, t time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.implicit = t
	return nil
}

func (d *Driver) SetScriptTimeout(_ context.Context, t time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.script = t
	return nil
}

func (d *Driver) PageLoadTimeout(_ context.Context, t time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.load = t
	return nil
}

func (d *Driver) SetWindowSize(ctx context.Context, s webdriver.Size) error {
	return d.tab(ctx).SetWindow(&proto.BrowserBounds{
		Width:       intPtr(s.Width),
		Height:      intPtr(s.Height),
		WindowState: proto.BrowserWindowStateNormal,
	})
}

func (d *Driver) SetWindowPosition(ctx context.Context, p webdriver.Point) error {
	return d.tab(ctx).SetWindow(&proto.BrowserBounds{
		Left:        intPtr(p.X),
		Top:         intPtr(p.Y),
		WindowState: proto.BrowserWindowStateNormal,
	})
}

func (d *Driver) WindowSize(ctx context.Context) (webdriver.Size, error) {
	b, err := d.tab(ctx).GetWindow()
	if err != nil {
		return webdriver.Size{}, err
	}
	return webdriver.Size{Width: deref(b.Width), Height: deref(b.Height)}, nil
}

func (d *Driver) WindowPosition(ctx context.Context) (webdriver.Point, error) {
	b, err := d.tab(ctx).GetWindow()
	if err != nil {
		return webdriver.Point{}, err
	}
	return webdriver.Point{X: deref(b.Left), Y: deref(b.Top)}, nil
}

func (d *Driver) Maximize(ctx context.Context) error {
	return d.tab(ctx).SetWindow(&proto.BrowserBounds{WindowState: proto.BrowserWindowStateMaximized})
}

func (d *Driver) Fullscreen(ctx context.Context) error {
	return d.tab(ctx).SetWindow(&proto.BrowserBounds{WindowState: proto.BrowserWindowStateFullscreen})
}

func intPtr(v int) *int { return &v }

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func (d *Driver) Back(ctx context.Context) error {
	return d.afterNavigation(d.tab(ctx).NavigateBack())
}

func (d *Driver) Forward(ctx context.Context) error {
	return d.afterNavigation(d.tab(ctx).NavigateForward())
}

func (d *Driver) To(ctx context.Context, url string) error { return d.Get(ctx, url) }

func (d *Driver) Refresh(ctx context.Context) error {
	return d.afterNavigation(d.tab(ctx).Reload())
}

func (d *Driver) afterNavigation(err error) error {
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.frames = nil
	d.mu.Unlock()
	return nil
}

func (d *Driver) SwitchToFrameIndex(ctx context.Context, index int) error {
	frames, err := d.target(ctx).Elements("iframe, frame")
	if err != nil {
		return err
	}
	if index < 0 || index >= len(frames) {
		return fmt.Errorf("frame %d: %w", index, webdriver.ErrNoSuchFrame)
	}
	return d.enter(frames[index])
}

func (d *Driver) SwitchToFrameName(ctx context.Context, nameOrID string) error {
	sel := fmt.Sprintf("iframe[name=%q], iframe[id=%q], frame[name=%q], frame[id=%q]",
		nameOrID, nameOrID, nameOrID, nameOrID)
	frames, err := d.target(ctx).Elements(sel)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("frame %q: %w", nameOrID, webdriver.ErrNoSuchFrame)
	}
	return d.enter(frames.First())
}

func (d *Driver) SwitchToFrameElement(_ context.Context, frame webdriver.Element) error {
	el, ok := frame.(*element)
	if !ok {
		return fmt.Errorf("foreign element %T: %w", frame, webdriver.ErrNoSuchFrame)
	}
	return d.enter(el.el)
}

func (d *Driver) enter(frame *rod.Element) error {
	p, err := frame.Frame()
	if err != nil {
		return fmt.Errorf("%w: %w", webdriver.ErrNoSuchFrame, err)
	}
	d.mu.Lock()
	d.frames = append(d.frames, p)
	d.mu.Unlock()
	return nil
}

func (d *Driver) SwitchToParentFrame(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n := len(d.frames); n > 0 {
		d.frames = d.frames[:n-1]
	}
	return nil
}

func (d *Driver) SwitchToWindow(ctx context.Context, handle string) error {
	page, err := d.browser.Context(ctx).PageFromTarget(proto.TargetTargetID(handle))
	if err != nil {
		return fmt.Errorf("window %q: %w: %w", handle, webdriver.ErrNoSuchWindow, err)
	}
	if _, err := page.Activate(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.attach(page)
	return nil
}

func (d *Driver) SwitchToDefaultContent(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames = nil
	return nil
}

func (d *Driver) ActiveElement(ctx context.Context) (webdriver.Element, error) {
	el, err := d.target(ctx).ElementByJS(rod.Eval(`() => document.activeElement || document.body`))
	if err != nil {
		return nil, err
	}
	return d.wrap(el, ""), nil
}

func (d *Driver) currentDialog() (*proto.PageJavascriptDialogOpening, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dialog == nil {
		return nil, webdriver.ErrNoAlert
	}
	return d.dialog, nil
}

func (d *Driver) SwitchToAlert(context.Context) error {
	_, err := d.currentDialog()
	return err
}

func (d *Driver) DismissAlert(ctx context.Context) error { return d.answer(ctx, false) }

func (d *Driver) AcceptAlert(ctx context.Context) error { return d.answer(ctx, true) }

func (d *Driver) answer(ctx context.Context, accept bool) error {
	if _, err := d.currentDialog(); err != nil {
		return err
	}
	d.mu.Lock()
	prompt := d.prompt
	d.prompt = ""
	d.mu.Unlock()
	return proto.PageHandleJavaScriptDialog{Accept: accept, PromptText: prompt}.Call(d.tab(ctx))
}

func (d *Driver) AlertText(context.Context) (string, error) {
	dlg, err := d.currentDialog()
	if err != nil {
		return "", err
	}
	return dlg.Message, nil
}

// SendAlertText stores the prompt answer sent with the next accept.
func (d *Driver) SendAlertText(_ context.Context, text string) error {
	if _, err := d.currentDialog(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.prompt = text
	return nil
}

func (d *Driver) SendKeys(ctx context.Context, text string) error {
	return d.tab(ctx).InsertText(text)
}

func (d *Driver) PressKey(ctx context.Context, key string) error {
	k, err := keyFor(key)
	if err != nil {
		return err
	}
	return d.tab(ctx).Keyboard.Press(k)
}

func (d *Driver) ReleaseKey(ctx context.Context, key string) error {
	k, err := keyFor(key)
	if err != nil {
		return err
	}
	return d.tab(ctx).Keyboard.Release(k)
}

var namedKeys = map[string]input.Key{
	webdriver.KeyEnter:     input.Enter,
	webdriver.KeyTab:       input.Tab,
	webdriver.KeyEscape:    input.Escape,
	webdriver.KeyBackspace: input.Backspace,
	webdriver.KeyShift:     input.ShiftLeft,
	webdriver.KeyControl:   input.ControlLeft,
	webdriver.KeyAlt:       input.AltLeft,
	webdriver.KeyMeta:      input.MetaLeft,
}

func keyFor(name string) (input.Key, error) {
	if k, ok := namedKeys[name]; ok {
		return k, nil
	}
	if r := []rune(name); len(r) == 1 {
		return input.Key(r[0]), nil
	}
	return 0, fmt.Errorf("key %q: %w", name, webdriver.ErrUnsupported)
}

func (d *Driver) MouseClick(ctx context.Context, at *webdriver.Point) error {
	return d.click(ctx, at, proto.InputMouseButtonLeft, 1)
}

func (d *Driver) ContextClick(ctx context.Context, at *webdriver.Point) error {
	return d.click(ctx, at, proto.InputMouseButtonRight, 1)
}

func (d *Driver) DoubleClick(ctx context.Context, at *webdriver.Point) error {
	return d.click(ctx, at, proto.InputMouseButtonLeft, 2)
}

func (d *Driver) click(ctx context.Context, at *webdriver.Point, button proto.InputMouseButton, n int) error {
	p := d.tab(ctx)
	if err := moveTo(p, at); err != nil {
		return err
	}
	return p.Mouse.Click(button, n)
}

func (d *Driver) MouseDown(ctx context.Context, at *webdriver.Point) error {
	p := d.tab(ctx)
	if err := moveTo(p, at); err != nil {
		return err
	}
	return p.Mouse.Down(proto.InputMouseButtonLeft, 1)
}

func (d *Driver) MouseUp(ctx context.Context, at *webdriver.Point) error {
	p := d.tab(ctx)
	if err := moveTo(p, at); err != nil {
		return err
	}
	return p.Mouse.Up(proto.InputMouseButtonLeft, 1)
}

func (d *Driver) MouseMove(ctx context.Context, to *webdriver.Point) error {
	return moveTo(d.tab(ctx), to)
}

func (d *Driver) MouseMoveBy(ctx context.Context, to *webdriver.Point, dx, dy int) error {
	p := d.tab(ctx)
	if err := moveTo(p, to); err != nil {
		return err
	}
	pos := p.Mouse.Position()
	return p.Mouse.MoveTo(proto.Point{X: pos.X + float64(dx), Y: pos.Y + float64(dy)})
}

// moveTo leaves the pointer where it is when at is nil.
func moveTo(p *rod.Page, at *webdriver.Point) error {
	if at == nil {
		return nil
	}
	return p.Mouse.MoveTo(proto.Point{X: float64(at.X), Y: float64(at.Y)})
}
