package dispatch

import (
	"context"
	"time"

	"github.com/timvw/webtrace/internal/event"
	"github.com/timvw/webtrace/internal/listener"
	"github.com/timvw/webtrace/internal/webdriver"
)

// Driver is an instrumented webdriver.Driver. Every call is bracketed by the
// dispatcher's hooks; errors from the underlying driver are reported through
// OnException and returned unchanged.
type Driver struct {
	raw  webdriver.Driver
	disp *Dispatcher
}

var _ webdriver.Driver = (*Driver)(nil)

// Wrap instruments raw. Listeners receive raw, never the returned Driver, so a
// listener that issues its own commands does not re-enter the dispatcher.
func Wrap(raw webdriver.Driver, listeners []listener.Listener, opts ...Option) *Driver {
	return &Driver{raw: raw, disp: New(raw, listeners, opts...)}
}

func (d *Driver) Dispatcher() *Dispatcher { return d.disp }

// Unwrap returns the uninstrumented driver.
func (d *Driver) Unwrap() webdriver.Driver { return d.raw }

func (d *Driver) fail(ctx context.Context, cmd event.Command, err error) error {
	d.disp.OnException(ctx, cmd, err)
	return err
}

func (d *Driver) wrap(el webdriver.Element) webdriver.Element {
	if el == nil {
		return nil
	}
	if w, ok := el.(*Element); ok {
		return w
	}
	return &Element{raw: el, drv: d}
}

func (d *Driver) wrapAll(els []webdriver.Element) []webdriver.Element {
	out := make([]webdriver.Element, len(els))
	for i, el := range els {
		out[i] = d.wrap(el)
	}
	return out
}

// unwrap strips instrumentation from an element handed back to the driver.
func unwrap(el webdriver.Element) webdriver.Element {
	if w, ok := el.(*Element); ok {
		return w.raw
	}
	return el
}

func unwrapArgs(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		if w, ok := a.(*Element); ok {
			out[i] = w.raw
			continue
		}
		out[i] = a
	}
	return out
}

func (d *Driver) Get(ctx context.Context, url string) error {
	d.disp.BeforeGet(ctx, url)
	if err := d.raw.Get(ctx, url); err != nil {
		return d.fail(ctx, event.Get, err)
	}
	d.disp.AfterGet(ctx, url)
	return nil
}

func (d *Driver) Title(ctx context.Context) (string, error) {
	d.disp.BeforeGetTitle(ctx)
	title, err := d.raw.Title(ctx)
	if err != nil {
		return "", d.fail(ctx, event.GetTitle, err)
	}
	d.disp.AfterGetTitle(ctx, title)
	return title, nil
}

func (d *Driver) CurrentURL(ctx context.Context) (string, error) {
	d.disp.BeforeGetCurrentURL(ctx)
	url, err := d.raw.CurrentURL(ctx)
	if err != nil {
		return "", d.fail(ctx, event.GetCurrentURL, err)
	}
	d.disp.AfterGetCurrentURL(ctx, url)
	return url, nil
}

func (d *Driver) Screenshot(ctx context.Context) ([]byte, error) {
	d.disp.BeforeGetScreenshotAs(ctx)
	png, err := d.raw.Screenshot(ctx)
	if err != nil {
		return nil, d.fail(ctx, event.GetScreenshotAs, err)
	}
	d.disp.AfterGetScreenshotAs(ctx, png)
	return png, nil
}

func (d *Driver) FindElements(ctx context.Context, by webdriver.By) ([]webdriver.Element, error) {
	d.disp.BeforeFindElementsByDriver(ctx, by)
	found, err := d.raw.FindElements(ctx, by)
	if err != nil {
		return nil, d.fail(ctx, event.FindElementsByDriver, err)
	}
	d.disp.AfterFindElementsByDriver(ctx, by, found)
	return d.wrapAll(found), nil
}

func (d *Driver) FindElement(ctx context.Context, by webdriver.By) (webdriver.Element, error) {
	d.disp.BeforeFindElementByDriver(ctx, by)
	found, err := d.raw.FindElement(ctx, by)
	if err != nil {
		return nil, d.fail(ctx, event.FindElementByDriver, err)
	}
	d.disp.AfterFindElementByDriver(ctx, by, found)
	return d.wrap(found), nil
}

func (d *Driver) PageSource(ctx context.Context) (string, error) {
	d.disp.BeforeGetPageSource(ctx)
	src, err := d.raw.PageSource(ctx)
	if err != nil {
		return "", d.fail(ctx, event.GetPageSource, err)
	}
	d.disp.AfterGetPageSource(ctx, src)
	return src, nil
}

func (d *Driver) Close(ctx context.Context) error {
	d.disp.BeforeClose(ctx)
	if err := d.raw.Close(ctx); err != nil {
		return d.fail(ctx, event.Close, err)
	}
	d.disp.AfterClose(ctx)
	return nil
}

func (d *Driver) Quit(ctx context.Context) error {
	d.disp.BeforeQuit(ctx)
	if err := d.raw.Quit(ctx); err != nil {
		return d.fail(ctx, event.Quit, err)
	}
	d.disp.AfterQuit(ctx)
	return nil
}

func (d *Driver) WindowHandles(ctx context.Context) ([]string, error) {
	d.disp.BeforeGetWindowHandles(ctx)
	hs, err := d.raw.WindowHandles(ctx)
	if err != nil {
		return nil, d.fail(ctx, event.GetWindowHandles, err)
	}
	d.disp.AfterGetWindowHandles(ctx, hs)
	return hs, nil
}

func (d *Driver) WindowHandle(ctx context.Context) (string, error) {
	d.disp.BeforeGetWindowHandle(ctx)
	h, err := d.raw.WindowHandle(ctx)
	if err != nil {
		return "", d.fail(ctx, event.GetWindowHandle, err)
	}
	d.disp.AfterGetWindowHandle(ctx, h)
	return h, nil
}

func (d *Driver) ExecuteScript(ctx context.Context, script string, args ...any) (any, error) {
	raw := unwrapArgs(args)
	d.disp.BeforeExecuteScript(ctx, script, raw)
	res, err := d.raw.ExecuteScript(ctx, script, raw...)
	if err != nil {
		return nil, d.fail(ctx, event.ExecuteScript, err)
	}
	d.disp.AfterExecuteScript(ctx, script, raw, res)
	return res, nil
}

func (d *Driver) ExecuteAsyncScript(ctx context.Context, script string, args ...any) (any, error) {
	raw := unwrapArgs(args)
	d.disp.BeforeExecuteAsyncScript(ctx, script, raw)
	res, err := d.raw.ExecuteAsyncScript(ctx, script, raw...)
	if err != nil {
		return nil, d.fail(ctx, event.ExecuteAsyncScript, err)
	}
	d.disp.AfterExecuteAsyncScript(ctx, script, raw, res)
	return res, nil
}

func (d *Driver) AddCookie(ctx context.Context, c webdriver.Cookie) error {
	d.disp.BeforeAddCookie(ctx, c)
	if err := d.raw.AddCookie(ctx, c); err != nil {
		return d.fail(ctx, event.AddCookie, err)
	}
	d.disp.AfterAddCookie(ctx, c)
	return nil
}

func (d *Driver) DeleteCookieNamed(ctx context.Context, name string) error {
	d.disp.BeforeDeleteCookieNamed(ctx, name)
	if err := d.raw.DeleteCookieNamed(ctx, name); err != nil {
		return d.fail(ctx, event.DeleteCookieNamed, err)
	}
	d.disp.AfterDeleteCookieNamed(ctx, name)
	return nil
}

func (d *Driver) DeleteCookie(ctx context.Context, c webdriver.Cookie) error {
	d.disp.BeforeDeleteCookie(ctx, c)
	if err := d.raw.DeleteCookie(ctx, c); err != nil {
		return d.fail(ctx, event.DeleteCookie, err)
	}
	d.disp.AfterDeleteCookie(ctx, c)
	return nil
}

func (d *Driver) DeleteAllCookies(ctx context.Context) error {
	d.disp.BeforeDeleteAllCookies(ctx)
	if err := d.raw.DeleteAllCookies(ctx); err != nil {
		return d.fail(ctx, event.DeleteAllCookies, err)
	}
	d.disp.AfterDeleteAllCookies(ctx)
	return nil
}

func (d *Driver) Cookies(ctx context.Context) ([]webdriver.Cookie, error) {
	d.disp.BeforeGetCookies(ctx)
	cs, err := d.raw.Cookies(ctx)
	if err != nil {
		return nil, d.fail(ctx, event.GetCookies, err)
	}
	d.disp.AfterGetCookies(ctx, cs)
	return cs, nil
}

func (d *Driver) CookieNamed(ctx context.Context, name string) (webdriver.Cookie, error) {
	d.disp.BeforeGetCookieNamed(ctx, name)
	c, err := d.raw.CookieNamed(ctx, name)
	if err != nil {
		return webdriver.Cookie{}, d.fail(ctx, event.GetCookieNamed, err)
	}
	d.disp.AfterGetCookieNamed(ctx, name, c)
	return c, nil
}

func (d *Driver) ImplicitlyWait(ctx context.Context, t time.Duration) error {
	d.disp.BeforeImplicitlyWait(ctx, t)
	if err := d.raw.ImplicitlyWait(ctx, t); err != nil {
		return d.fail(ctx, event.ImplicitlyWait, err)
	}
	d.disp.AfterImplicitlyWait(ctx, t)
	return nil
}

func (d *Driver) SetScriptTimeout(ctx context.Context, t time.Duration) error {
	d.disp.BeforeSetScriptTimeout(ctx, t)
	if err := d.raw.SetScriptTimeout(ctx, t); err != nil {
		return d.fail(ctx, event.SetScriptTimeout, err)
	}
	d.disp.AfterSetScriptTimeout(ctx, t)
	return nil
}

func (d *Driver) PageLoadTimeout(ctx context.Context, t time.Duration) error {
	d.disp.BeforePageLoadTimeout(ctx, t)
	if err := d.raw.PageLoadTimeout(ctx, t); err != nil {
		return d.fail(ctx, event.PageLoadTimeout, err)
	}
	d.disp.AfterPageLoadTimeout(ctx, t)
	return nil
}

func (d *Driver) SetWindowSize(ctx context.Context, s webdriver.Size) error {
	d.disp.BeforeSetWindowSize(ctx, s)
	if err := d.raw.SetWindowSize(ctx, s); err != nil {
		return d.fail(ctx, event.SetWindowSize, err)
	}
	d.disp.AfterSetWindowSize(ctx, s)
	return nil
}

func (d *Driver) SetWindowPosition(ctx context.Context, p webdriver.Point) error {
	d.disp.BeforeSetWindowPosition(ctx, p)
	if err := d.raw.SetWindowPosition(ctx, p); err != nil {
		return d.fail(ctx, event.SetWindowPosition, err)
	}
	d.disp.AfterSetWindowPosition(ctx, p)
	return nil
}

func (d *Driver) WindowSize(ctx context.Context) (webdriver.Size, error) {
	d.disp.BeforeGetWindowSize(ctx)
	s, err := d.raw.WindowSize(ctx)
	if err != nil {
		return webdriver.Size{}, d.fail(ctx, event.GetWindowSize, err)
	}
	d.disp.AfterGetWindowSize(ctx, s)
	return s, nil
}

func (d *Driver) WindowPosition(ctx context.Context) (webdriver.Point, error) {
	d.disp.BeforeGetWindowPosition(ctx)
	p, err := d.raw.WindowPosition(ctx)
	if err != nil {
		return webdriver.Point{}, d.fail(ctx, event.GetWindowPosition, err)
	}
	d.disp.AfterGetWindowPosition(ctx, p)
	return p, nil
}

func (d *Driver) Maximize(ctx context.Context) error {
	d.disp.BeforeMaximize(ctx)
	if err := d.raw.Maximize(ctx); err != nil {
		return d.fail(ctx, event.Maximize, err)
	}
	d.disp.AfterMaximize(ctx)
	return nil
}

func (d *Driver) Fullscreen(ctx context.Context) error {
	d.disp.BeforeFullscreen(ctx)
	if err := d.raw.Fullscreen(ctx); err != nil {
		return d.fail(ctx, event.Fullscreen, err)
	}
	d.disp.AfterFullscreen(ctx)
	return nil
}

func (d *Driver) Back(ctx context.Context) error {
	d.disp.BeforeBack(ctx)
	if err := d.raw.Back(ctx); err != nil {
		return d.fail(ctx, event.Back, err)
	}
	d.disp.AfterBack(ctx)
	return nil
}

func (d *Driver) Forward(ctx context.Context) error {
	d.disp.BeforeForward(ctx)
	if err := d.raw.Forward(ctx); err != nil {
		return d.fail(ctx, event.Forward, err)
	}
	d.disp.AfterForward(ctx)
	return nil
}

func (d *Driver) To(ctx context.Context, url string) error {
	d.disp.BeforeTo(ctx, url)
	if err := d.raw.To(ctx, url); err != nil {
		return d.fail(ctx, event.To, err)
	}
	d.disp.AfterTo(ctx, url)
	return nil
}

func (d *Driver) Refresh(ctx context.Context) error {
	d.disp.BeforeRefresh(ctx)
	if err := d.raw.Refresh(ctx); err != nil {
		return d.fail(ctx, event.Refresh, err)
	}
	d.disp.AfterRefresh(ctx)
	return nil
}

func (d *Driver) SwitchToFrameIndex(ctx context.Context, index int) error {
	d.disp.BeforeFrameByIndex(ctx, index)
	if err := d.raw.SwitchToFrameIndex(ctx, index); err != nil {
		return d.fail(ctx, event.FrameByIndex, err)
	}
	d.disp.AfterFrameByIndex(ctx, index)
	return nil
}

func (d *Driver) SwitchToFrameName(ctx context.Context, nameOrID string) error {
	d.disp.BeforeFrameByName(ctx, nameOrID)
	if err := d.raw.SwitchToFrameName(ctx, nameOrID); err != nil {
		return d.fail(ctx, event.FrameByName, err)
	}
	d.disp.AfterFrameByName(ctx, nameOrID)
	return nil
}

func (d *Driver) SwitchToFrameElement(ctx context.Context, frame webdriver.Element) error {
	frame = unwrap(frame)
	d.disp.BeforeFrameByElement(ctx, frame)
	if err := d.raw.SwitchToFrameElement(ctx, frame); err != nil {
		return d.fail(ctx, event.FrameByElement, err)
	}
	d.disp.AfterFrameByElement(ctx, frame)
	return nil
}

func (d *Driver) SwitchToParentFrame(ctx context.Context) error {
	d.disp.BeforeParentFrame(ctx)
	if err := d.raw.SwitchToParentFrame(ctx); err != nil {
		return d.fail(ctx, event.ParentFrame, err)
	}
	d.disp.AfterParentFrame(ctx)
	return nil
}

func (d *Driver) SwitchToWindow(ctx context.Context, handle string) error {
	d.disp.BeforeSwitchToWindow(ctx, handle)
	if err := d.raw.SwitchToWindow(ctx, handle); err != nil {
		return d.fail(ctx, event.SwitchToWindow, err)
	}
	d.disp.AfterSwitchToWindow(ctx, handle)
	return nil
}

func (d *Driver) SwitchToDefaultContent(ctx context.Context) error {
	d.disp.BeforeDefaultContent(ctx)
	if err := d.raw.SwitchToDefaultContent(ctx); err != nil {
		return d.fail(ctx, event.DefaultContent, err)
	}
	d.disp.AfterDefaultContent(ctx)
	return nil
}

func (d *Driver) ActiveElement(ctx context.Context) (webdriver.Element, error) {
	d.disp.BeforeActiveElement(ctx)
	el, err := d.raw.ActiveElement(ctx)
	if err != nil {
		return nil, d.fail(ctx, event.ActiveElement, err)
	}
	d.disp.AfterActiveElement(ctx, el)
	return d.wrap(el), nil
}

func (d *Driver) SwitchToAlert(ctx context.Context) error {
	d.disp.BeforeSwitchToAlert(ctx)
	if err := d.raw.SwitchToAlert(ctx); err != nil {
		return d.fail(ctx, event.SwitchToAlert, err)
	}
	d.disp.AfterSwitchToAlert(ctx)
	return nil
}

func (d *Driver) DismissAlert(ctx context.Context) error {
	d.disp.BeforeDismiss(ctx)
	if err := d.raw.DismissAlert(ctx); err != nil {
		return d.fail(ctx, event.Dismiss, err)
	}
	d.disp.AfterDismiss(ctx)
	return nil
}

func (d *Driver) AcceptAlert(ctx context.Context) error {
	d.disp.BeforeAccept(ctx)
	if err := d.raw.AcceptAlert(ctx); err != nil {
		return d.fail(ctx, event.Accept, err)
	}
	d.disp.AfterAccept(ctx)
	return nil
}

func (d *Driver) AlertText(ctx context.Context) (string, error) {
	d.disp.BeforeGetAlertText(ctx)
	text, err := d.raw.AlertText(ctx)
	if err != nil {
		return "", d.fail(ctx, event.GetAlertText, err)
	}
	d.disp.AfterGetAlertText(ctx, text)
	return text, nil
}

func (d *Driver) SendAlertText(ctx context.Context, text string) error {
	d.disp.BeforeSendKeysToAlert(ctx, text)
	if err := d.raw.SendAlertText(ctx, text); err != nil {
		return d.fail(ctx, event.SendKeysToAlert, err)
	}
	d.disp.AfterSendKeysToAlert(ctx, text)
	return nil
}

func (d *Driver) SendKeys(ctx context.Context, text string) error {
	d.disp.BeforeSendKeysByKeyboard(ctx, text)
	if err := d.raw.SendKeys(ctx, text); err != nil {
		return d.fail(ctx, event.SendKeysByKeyboard, err)
	}
	d.disp.AfterSendKeysByKeyboard(ctx, text)
	return nil
}

func (d *Driver) PressKey(ctx context.Context, key string) error {
	d.disp.BeforePressKey(ctx, key)
	if err := d.raw.PressKey(ctx, key); err != nil {
		return d.fail(ctx, event.PressKey, err)
	}
	d.disp.AfterPressKey(ctx, key)
	return nil
}

func (d *Driver) ReleaseKey(ctx context.Context, key string) error {
	d.disp.BeforeReleaseKey(ctx, key)
	if err := d.raw.ReleaseKey(ctx, key); err != nil {
		return d.fail(ctx, event.ReleaseKey, err)
	}
	d.disp.AfterReleaseKey(ctx, key)
	return nil
}

func (d *Driver) MouseClick(ctx context.Context, at *webdriver.Point) error {
	d.disp.BeforeMouseClick(ctx, at)
	if err := d.raw.MouseClick(ctx, at); err != nil {
		return d.fail(ctx, event.MouseClick, err)
	}
	d.disp.AfterMouseClick(ctx, at)
	return nil
}

func (d *Driver) ContextClick(ctx context.Context, at *webdriver.Point) error {
	d.disp.BeforeContextClick(ctx, at)
	if err := d.raw.ContextClick(ctx, at); err != nil {
		return d.fail(ctx, event.ContextClick, err)
	}
	d.disp.AfterContextClick(ctx, at)
	return nil
}

func (d *Driver) DoubleClick(ctx context.Context, at *webdriver.Point) error {
	d.disp.BeforeDoubleClick(ctx, at)
	if err := d.raw.DoubleClick(ctx, at); err != nil {
		return d.fail(ctx, event.DoubleClick, err)
	}
	d.disp.AfterDoubleClick(ctx, at)
	return nil
}

func (d *Driver) MouseDown(ctx context.Context, at *webdriver.Point) error {
	d.disp.BeforeMouseDown(ctx, at)
	if err := d.raw.MouseDown(ctx, at); err != nil {
		return d.fail(ctx, event.MouseDown, err)
	}
	d.disp.AfterMouseDown(ctx, at)
	return nil
}

func (d *Driver) MouseUp(ctx context.Context, at *webdriver.Point) error {
	d.disp.BeforeMouseUp(ctx, at)
	if err := d.raw.MouseUp(ctx, at); err != nil {
		return d.fail(ctx, event.MouseUp, err)
	}
	d.disp.AfterMouseUp(ctx, at)
	return nil
}

func (d *Driver) MouseMove(ctx context.Context, to *webdriver.Point) error {
	d.disp.BeforeMouseMove(ctx, to)
	if err := d.raw.MouseMove(ctx, to); err != nil {
		return d.fail(ctx, event.MouseMove, err)
	}
	d.disp.AfterMouseMove(ctx, to)
	return nil
}

func (d *Driver) MouseMoveBy(ctx context.Context, to *webdriver.Point, dx, dy int) error {
	d.disp.BeforeMouseMoveWithOffset(ctx, to, dx, dy)
	if err := d.raw.MouseMoveBy(ctx, to, dx, dy); err != nil {
		return d.fail(ctx, event.MouseMoveWithOffset, err)
	}
	d.disp.AfterMouseMoveWithOffset(ctx, to, dx, dy)
	return nil
}
