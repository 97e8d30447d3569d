package dispatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/timvw/webtrace/internal/event"
	"github.com/timvw/webtrace/internal/webdriver"
)

func describeResult(v any) string {
	if v == nil {
		return ""
	}
	return event.DescribeArg(v)
}

func describeSource(src string) string { return fmt.Sprintf("<%d chars>", len(src)) }

// Driver commands.

func (d *Dispatcher) BeforeGet(ctx context.Context, url string) {
	d.before(ctx, event.Get, "", event.Navigation{URL: url})
}

func (d *Dispatcher) AfterGet(ctx context.Context, url string) {
	d.after(ctx, event.Get, "", event.Navigation{URL: url}, "", nil)
}

func (d *Dispatcher) BeforeGetTitle(ctx context.Context) {
	d.before(ctx, event.GetTitle, "", nil)
}

func (d *Dispatcher) AfterGetTitle(ctx context.Context, title string) {
	d.after(ctx, event.GetTitle, "", nil, title, title)
}

func (d *Dispatcher) BeforeGetCurrentURL(ctx context.Context) {
	d.before(ctx, event.GetCurrentURL, "", nil)
}

func (d *Dispatcher) AfterGetCurrentURL(ctx context.Context, url string) {
	d.after(ctx, event.GetCurrentURL, "", nil, url, url)
}

func (d *Dispatcher) BeforeGetScreenshotAs(ctx context.Context) {
	d.before(ctx, event.GetScreenshotAs, "", nil)
}

func (d *Dispatcher) AfterGetScreenshotAs(ctx context.Context, png []byte) {
	d.after(ctx, event.GetScreenshotAs, "", nil, event.FormatBytes(png), png)
}

func (d *Dispatcher) BeforeFindElementsByDriver(ctx context.Context, by webdriver.By) {
	d.before(ctx, event.FindElementsByDriver, "", event.Query{By: by.String()})
}

func (d *Dispatcher) AfterFindElementsByDriver(ctx context.Context, by webdriver.By, found []webdriver.Element) {
	d.after(ctx, event.FindElementsByDriver, "", event.Query{By: by.String()}, event.DescribeElements(found), found)
}

func (d *Dispatcher) BeforeFindElementByDriver(ctx context.Context, by webdriver.By) {
	d.before(ctx, event.FindElementByDriver, "", event.Query{By: by.String()})
}

func (d *Dispatcher) AfterFindElementByDriver(ctx context.Context, by webdriver.By, found webdriver.Element) {
	d.after(ctx, event.FindElementByDriver, "", event.Query{By: by.String()}, event.DescribeElement(found), found)
}

func (d *Dispatcher) BeforeGetPageSource(ctx context.Context) {
	d.before(ctx, event.GetPageSource, "", nil)
}

func (d *Dispatcher) AfterGetPageSource(ctx context.Context, src string) {
	d.after(ctx, event.GetPageSource, "", nil, describeSource(src), src)
}

func (d *Dispatcher) BeforeClose(ctx context.Context) { d.before(ctx, event.Close, "", nil) }

func (d *Dispatcher) AfterClose(ctx context.Context) { d.after(ctx, event.Close, "", nil, "", nil) }

func (d *Dispatcher) BeforeQuit(ctx context.Context) { d.before(ctx, event.Quit, "", nil) }

func (d *Dispatcher) AfterQuit(ctx context.Context) { d.after(ctx, event.Quit, "", nil, "", nil) }

func (d *Dispatcher) BeforeGetWindowHandles(ctx context.Context) {
	d.before(ctx, event.GetWindowHandles, "", nil)
}

func (d *Dispatcher) AfterGetWindowHandles(ctx context.Context, handles []string) {
	d.after(ctx, event.GetWindowHandles, "", nil, strings.Join(handles, ","), handles)
}

func (d *Dispatcher) BeforeGetWindowHandle(ctx context.Context) {
	d.before(ctx, event.GetWindowHandle, "", nil)
}

func (d *Dispatcher) AfterGetWindowHandle(ctx context.Context, handle string) {
	d.after(ctx, event.GetWindowHandle, "", nil, handle, handle)
}

func (d *Dispatcher) BeforeExecuteScript(ctx context.Context, script string, args []any) {
	d.before(ctx, event.ExecuteScript, "", event.Script{Source: script, Args: event.DescribeArgs(args)})
}

func (d *Dispatcher) AfterExecuteScript(ctx context.Context, script string, args []any, result any) {
	d.after(ctx, event.ExecuteScript, "", event.Script{Source: script, Args: event.DescribeArgs(args)},
		describeResult(result), result)
}

func (d *Dispatcher) BeforeExecuteAsyncScript(ctx context.Context, script string, args []any) {
	d.before(ctx, event.ExecuteAsyncScript, "", event.Script{Source: script, Args: event.DescribeArgs(args)})
}

func (d *Dispatcher) AfterExecuteAsyncScript(ctx context.Context, script string, args []any, result any) {
	d.after(ctx, event.ExecuteAsyncScript, "", event.Script{Source: script, Args: event.DescribeArgs(args)},
		describeResult(result), result)
}

// Cookie commands.

func (d *Dispatcher) BeforeAddCookie(ctx context.Context, c webdriver.Cookie) {
	d.before(ctx, event.AddCookie, "", event.CookieRef{Name: c.Name})
}

func (d *Dispatcher) AfterAddCookie(ctx context.Context, c webdriver.Cookie) {
	d.after(ctx, event.AddCookie, "", event.CookieRef{Name: c.Name}, "", nil)
}

func (d *Dispatcher) BeforeDeleteCookieNamed(ctx context.Context, name string) {
	d.before(ctx, event.DeleteCookieNamed, "", event.CookieRef{Name: name})
}

func (d *Dispatcher) AfterDeleteCookieNamed(ctx context.Context, name string) {
	d.after(ctx, event.DeleteCookieNamed, "", event.CookieRef{Name: name}, "", nil)
}

func (d *Dispatcher) BeforeDeleteCookie(ctx context.Context, c webdriver.Cookie) {
	d.before(ctx, event.DeleteCookie, "", event.CookieRef{Name: c.Name})
}

func (d *Dispatcher) AfterDeleteCookie(ctx context.Context, c webdriver.Cookie) {
	d.after(ctx, event.DeleteCookie, "", event.CookieRef{Name: c.Name}, "", nil)
}

func (d *Dispatcher) BeforeDeleteAllCookies(ctx context.Context) {
	d.before(ctx, event.DeleteAllCookies, "", nil)
}

func (d *Dispatcher) AfterDeleteAllCookies(ctx context.Context) {
	d.after(ctx, event.DeleteAllCookies, "", nil, "", nil)
}

func (d *Dispatcher) BeforeGetCookies(ctx context.Context) {
	d.before(ctx, event.GetCookies, "", nil)
}

func (d *Dispatcher) AfterGetCookies(ctx context.Context, cs []webdriver.Cookie) {
	d.after(ctx, event.GetCookies, "", nil, event.FormatCookies(cs), cs)
}

func (d *Dispatcher) BeforeGetCookieNamed(ctx context.Context, name string) {
	d.before(ctx, event.GetCookieNamed, "", event.CookieRef{Name: name})
}

func (d *Dispatcher) AfterGetCookieNamed(ctx context.Context, name string, c webdriver.Cookie) {
	d.after(ctx, event.GetCookieNamed, "", event.CookieRef{Name: name}, c.Name, c)
}

// Timeouts.

func (d *Dispatcher) BeforeImplicitlyWait(ctx context.Context, t time.Duration) {
	d.before(ctx, event.ImplicitlyWait, "", event.Timeout{Duration: t})
}

func (d *Dispatcher) AfterImplicitlyWait(ctx context.Context, t time.Duration) {
	d.after(ctx, event.ImplicitlyWait, "", event.Timeout{Duration: t}, "", nil)
}

func (d *Dispatcher) BeforeSetScriptTimeout(ctx context.Context, t time.Duration) {
	d.before(ctx, event.SetScriptTimeout, "", event.Timeout{Duration: t})
}

func (d *Dispatcher) AfterSetScriptTimeout(ctx context.Context, t time.Duration) {
	d.after(ctx, event.SetScriptTimeout, "", event.Timeout{Duration: t}, "", nil)
}

func (d *Dispatcher) BeforePageLoadTimeout(ctx context.Context, t time.Duration) {
	d.before(ctx, event.PageLoadTimeout, "", event.Timeout{Duration: t})
}

func (d *Dispatcher) AfterPageLoadTimeout(ctx context.Context, t time.Duration) {
	d.after(ctx, event.PageLoadTimeout, "", event.Timeout{Duration: t}, "", nil)
}

// Window geometry.

func (d *Dispatcher) BeforeSetWindowSize(ctx context.Context, s webdriver.Size) {
	d.before(ctx, event.SetWindowSize, "", event.Window{Size: &s})
}

func (d *Dispatcher) AfterSetWindowSize(ctx context.Context, s webdriver.Size) {
	d.after(ctx, event.SetWindowSize, "", event.Window{Size: &s}, "", nil)
}

func (d *Dispatcher) BeforeSetWindowPosition(ctx context.Context, p webdriver.Point) {
	d.before(ctx, event.SetWindowPosition, "", event.Window{Position: &p})
}

func (d *Dispatcher) AfterSetWindowPosition(ctx context.Context, p webdriver.Point) {
	d.after(ctx, event.SetWindowPosition, "", event.Window{Position: &p}, "", nil)
}

func (d *Dispatcher) BeforeGetWindowSize(ctx context.Context) {
	d.before(ctx, event.GetWindowSize, "", nil)
}

func (d *Dispatcher) AfterGetWindowSize(ctx context.Context, s webdriver.Size) {
	d.after(ctx, event.GetWindowSize, "", nil, s.String(), s)
}

func (d *Dispatcher) BeforeGetWindowPosition(ctx context.Context) {
	d.before(ctx, event.GetWindowPosition, "", nil)
}

func (d *Dispatcher) AfterGetWindowPosition(ctx context.Context, p webdriver.Point) {
	d.after(ctx, event.GetWindowPosition, "", nil, p.String(), p)
}

func (d *Dispatcher) BeforeMaximize(ctx context.Context) { d.before(ctx, event.Maximize, "", nil) }

func (d *Dispatcher) AfterMaximize(ctx context.Context) { d.after(ctx, event.Maximize, "", nil, "", nil) }

func (d *Dispatcher) BeforeFullscreen(ctx context.Context) { d.before(ctx, event.Fullscreen, "", nil) }

func (d *Dispatcher) AfterFullscreen(ctx context.Context) {
	d.after(ctx, event.Fullscreen, "", nil, "", nil)
}

// Navigation.

func (d *Dispatcher) BeforeBack(ctx context.Context) { d.before(ctx, event.Back, "", nil) }

func (d *Dispatcher) AfterBack(ctx context.Context) { d.after(ctx, event.Back, "", nil, "", nil) }

func (d *Dispatcher) BeforeForward(ctx context.Context) { d.before(ctx, event.Forward, "", nil) }

func (d *Dispatcher) AfterForward(ctx context.Context) { d.after(ctx, event.Forward, "", nil, "", nil) }

func (d *Dispatcher) BeforeTo(ctx context.Context, url string) {
	d.before(ctx, event.To, "", event.Navigation{URL: url})
}

func (d *Dispatcher) AfterTo(ctx context.Context, url string) {
	d.after(ctx, event.To, "", event.Navigation{URL: url}, "", nil)
}

func (d *Dispatcher) BeforeRefresh(ctx context.Context) { d.before(ctx, event.Refresh, "", nil) }

func (d *Dispatcher) AfterRefresh(ctx context.Context) { d.after(ctx, event.Refresh, "", nil, "", nil) }

// Frame, window and alert switching.

func (d *Dispatcher) BeforeFrameByIndex(ctx context.Context, index int) {
	d.before(ctx, event.FrameByIndex, "", event.Frame{Index: &index})
}

func (d *Dispatcher) AfterFrameByIndex(ctx context.Context, index int) {
	d.after(ctx, event.FrameByIndex, "", event.Frame{Index: &index}, "", nil)
}

func (d *Dispatcher) BeforeFrameByName(ctx context.Context, name string) {
	d.before(ctx, event.FrameByName, "", event.Frame{Name: name})
}

func (d *Dispatcher) AfterFrameByName(ctx context.Context, name string) {
	d.after(ctx, event.FrameByName, "", event.Frame{Name: name}, "", nil)
}

func (d *Dispatcher) BeforeFrameByElement(ctx context.Context, frame webdriver.Element) {
	d.before(ctx, event.FrameByElement, event.DescribeElement(frame), nil)
}

func (d *Dispatcher) AfterFrameByElement(ctx context.Context, frame webdriver.Element) {
	d.after(ctx, event.FrameByElement, event.DescribeElement(frame), nil, "", nil)
}

func (d *Dispatcher) BeforeParentFrame(ctx context.Context) { d.before(ctx, event.ParentFrame, "", nil) }

func (d *Dispatcher) AfterParentFrame(ctx context.Context) {
	d.after(ctx, event.ParentFrame, "", nil, "", nil)
}

func (d *Dispatcher) BeforeSwitchToWindow(ctx context.Context, handle string) {
	d.before(ctx, event.SwitchToWindow, "", event.Window{Handle: handle})
}

func (d *Dispatcher) AfterSwitchToWindow(ctx context.Context, handle string) {
	d.after(ctx, event.SwitchToWindow, "", event.Window{Handle: handle}, "", nil)
}

func (d *Dispatcher) BeforeDefaultContent(ctx context.Context) {
	d.before(ctx, event.DefaultContent, "", nil)
}

func (d *Dispatcher) AfterDefaultContent(ctx context.Context) {
	d.after(ctx, event.DefaultContent, "", nil, "", nil)
}

func (d *Dispatcher) BeforeActiveElement(ctx context.Context) {
	d.before(ctx, event.ActiveElement, "", nil)
}

func (d *Dispatcher) AfterActiveElement(ctx context.Context, el webdriver.Element) {
	d.after(ctx, event.ActiveElement, "", nil, event.DescribeElement(el), el)
}

func (d *Dispatcher) BeforeSwitchToAlert(ctx context.Context) {
	d.before(ctx, event.SwitchToAlert, "", nil)
}

func (d *Dispatcher) AfterSwitchToAlert(ctx context.Context) {
	d.after(ctx, event.SwitchToAlert, "", nil, "", nil)
}

// Alerts.

func (d *Dispatcher) BeforeDismiss(ctx context.Context) { d.before(ctx, event.Dismiss, "", nil) }

func (d *Dispatcher) AfterDismiss(ctx context.Context) { d.after(ctx, event.Dismiss, "", nil, "", nil) }

func (d *Dispatcher) BeforeAccept(ctx context.Context) { d.before(ctx, event.Accept, "", nil) }

func (d *Dispatcher) AfterAccept(ctx context.Context) { d.after(ctx, event.Accept, "", nil, "", nil) }

func (d *Dispatcher) BeforeGetAlertText(ctx context.Context) {
	d.before(ctx, event.GetAlertText, "", nil)
}

func (d *Dispatcher) AfterGetAlertText(ctx context.Context, text string) {
	d.after(ctx, event.GetAlertText, "", nil, text, text)
}

func (d *Dispatcher) BeforeSendKeysToAlert(ctx context.Context, text string) {
	d.before(ctx, event.SendKeysToAlert, "", event.Keys{Text: text})
}

func (d *Dispatcher) AfterSendKeysToAlert(ctx context.Context, text string) {
	d.after(ctx, event.SendKeysToAlert, "", event.Keys{Text: text}, "", nil)
}

// Element commands.

func (d *Dispatcher) BeforeClickElement(ctx context.Context, el webdriver.Element) {
	d.before(ctx, event.ClickElement, event.DescribeElement(el), nil)
}

func (d *Dispatcher) AfterClickElement(ctx context.Context, el webdriver.Element) {
	d.after(ctx, event.ClickElement, event.DescribeElement(el), nil, "", nil)
}

func (d *Dispatcher) BeforeSubmit(ctx context.Context, el webdriver.Element) {
	d.before(ctx, event.Submit, event.DescribeElement(el), nil)
}

func (d *Dispatcher) AfterSubmit(ctx context.Context, el webdriver.Element) {
	d.after(ctx, event.Submit, event.DescribeElement(el), nil, "", nil)
}

// BeforeSendKeysToElement masks text typed into password fields before the
// record is built.
func (d *Dispatcher) BeforeSendKeysToElement(ctx context.Context, el webdriver.Element, text string) {
	loc := event.DescribeElement(el)
	d.before(ctx, event.SendKeysToElement, loc, event.MaskedKeys(loc, text))
}

func (d *Dispatcher) AfterSendKeysToElement(ctx context.Context, el webdriver.Element, text string) {
	loc := event.DescribeElement(el)
	d.after(ctx, event.SendKeysToElement, loc, event.MaskedKeys(loc, text), "", nil)
}

func (d *Dispatcher) BeforeUploadFile(ctx context.Context, el webdriver.Element, path string) {
	d.before(ctx, event.UploadFile, event.DescribeElement(el), event.Keys{Text: path})
}

func (d *Dispatcher) AfterUploadFile(ctx context.Context, el webdriver.Element, path string) {
	d.after(ctx, event.UploadFile, event.DescribeElement(el), event.Keys{Text: path}, "", nil)
}

func (d *Dispatcher) BeforeClear(ctx context.Context, el webdriver.Element) {
	d.before(ctx, event.Clear, event.DescribeElement(el), nil)
}

func (d *Dispatcher) AfterClear(ctx context.Context, el webdriver.Element) {
	d.after(ctx, event.Clear, event.DescribeElement(el), nil, "", nil)
}

func (d *Dispatcher) BeforeGetTagName(ctx context.Context, el webdriver.Element) {
	d.before(ctx, event.GetTagName, event.DescribeElement(el), nil)
}

func (d *Dispatcher) AfterGetTagName(ctx context.Context, el webdriver.Element, tag string) {
	d.after(ctx, event.GetTagName, event.DescribeElement(el), nil, tag, tag)
}

func (d *Dispatcher) BeforeGetAttribute(ctx context.Context, el webdriver.Element, name string) {
	d.before(ctx, event.GetAttribute, event.DescribeElement(el), event.Query{Name: name})
}

func (d *Dispatcher) AfterGetAttribute(ctx context.Context, el webdriver.Element, name, value string) {
	d.after(ctx, event.GetAttribute, event.DescribeElement(el), event.Query{Name: name}, value, value)
}

func (d *Dispatcher) BeforeIsSelected(ctx context.Context, el webdriver.Element) {
	d.before(ctx, event.IsSelected, event.DescribeElement(el), nil)
}

func (d *Dispatcher) AfterIsSelected(ctx context.Context, el webdriver.Element, selected bool) {
	d.after(ctx, event.IsSelected, event.DescribeElement(el), nil, event.FormatBool(selected), selected)
}

func (d *Dispatcher) BeforeIsEnabled(ctx context.Context, el webdriver.Element) {
	d.before(ctx, event.IsEnabled, event.DescribeElement(el), nil)
}

func (d *Dispatcher) AfterIsEnabled(ctx context.Context, el webdriver.Element, enabled bool) {
	d.after(ctx, event.IsEnabled, event.DescribeElement(el), nil, event.FormatBool(enabled), enabled)
}

func (d *Dispatcher) BeforeGetText(ctx context.Context, el webdriver.Element) {
	d.before(ctx, event.GetText, event.DescribeElement(el), nil)
}

func (d *Dispatcher) AfterGetText(ctx context.Context, el webdriver.Element, text string) {
	d.after(ctx, event.GetText, event.DescribeElement(el), nil, text, text)
}

func (d *Dispatcher) BeforeGetCSSValue(ctx context.Context, el webdriver.Element, property string) {
	d.before(ctx, event.GetCSSValue, event.DescribeElement(el), event.Query{Name: property})
}

func (d *Dispatcher) AfterGetCSSValue(ctx context.Context, el webdriver.Element, property, value string) {
	d.after(ctx, event.GetCSSValue, event.DescribeElement(el), event.Query{Name: property}, value, value)
}

func (d *Dispatcher) BeforeFindElementsByElement(ctx context.Context, el webdriver.Element, by webdriver.By) {
	d.before(ctx, event.FindElementsByElement, event.DescribeElement(el), event.Query{By: by.String()})
}

func (d *Dispatcher) AfterFindElementsByElement(ctx context.Context, el webdriver.Element, by webdriver.By, found []webdriver.Element) {
	d.after(ctx, event.FindElementsByElement, event.DescribeElement(el), event.Query{By: by.String()},
		event.DescribeElements(found), found)
}

func (d *Dispatcher) BeforeFindElementByElement(ctx context.Context, el webdriver.Element, by webdriver.By) {
	d.before(ctx, event.FindElementByElement, event.DescribeElement(el), event.Query{By: by.String()})
}

func (d *Dispatcher) AfterFindElementByElement(ctx context.Context, el webdriver.Element, by webdriver.By, found webdriver.Element) {
	d.after(ctx, event.FindElementByElement, event.DescribeElement(el), event.Query{By: by.String()},
		event.DescribeElement(found), found)
}

func (d *Dispatcher) BeforeIsDisplayed(ctx context.Context, el webdriver.Element) {
	d.before(ctx, event.IsDisplayed, event.DescribeElement(el), nil)
}

func (d *Dispatcher) AfterIsDisplayed(ctx context.Context, el webdriver.Element, displayed bool) {
	d.after(ctx, event.IsDisplayed, event.DescribeElement(el), nil, event.FormatBool(displayed), displayed)
}

func (d *Dispatcher) BeforeGetLocation(ctx context.Context, el webdriver.Element) {
	d.before(ctx, event.GetLocation, event.DescribeElement(el), nil)
}

func (d *Dispatcher) AfterGetLocation(ctx context.Context, el webdriver.Element, p webdriver.Point) {
	d.after(ctx, event.GetLocation, event.DescribeElement(el), nil, p.String(), p)
}

func (d *Dispatcher) BeforeGetElementSize(ctx context.Context, el webdriver.Element) {
	d.before(ctx, event.GetElementSize, event.DescribeElement(el), nil)
}

func (d *Dispatcher) AfterGetElementSize(ctx context.Context, el webdriver.Element, s webdriver.Size) {
	d.after(ctx, event.GetElementSize, event.DescribeElement(el), nil, s.String(), s)
}

func (d *Dispatcher) BeforeGetRect(ctx context.Context, el webdriver.Element) {
	d.before(ctx, event.GetRect, event.DescribeElement(el), nil)
}

func (d *Dispatcher) AfterGetRect(ctx context.Context, el webdriver.Element, r webdriver.Rect) {
	d.after(ctx, event.GetRect, event.DescribeElement(el), nil, r.String(), r)
}

func (d *Dispatcher) BeforeGetElementScreenshotAs(ctx context.Context, el webdriver.Element) {
	d.before(ctx, event.GetElementScreenshotAs, event.DescribeElement(el), nil)
}

func (d *Dispatcher) AfterGetElementScreenshotAs(ctx context.Context, el webdriver.Element, png []byte) {
	d.after(ctx, event.GetElementScreenshotAs, event.DescribeElement(el), nil, event.FormatBytes(png), png)
}

// Keyboard.

func (d *Dispatcher) BeforeSendKeysByKeyboard(ctx context.Context, text string) {
	d.before(ctx, event.SendKeysByKeyboard, "", event.Keys{Text: text})
}

func (d *Dispatcher) AfterSendKeysByKeyboard(ctx context.Context, text string) {
	d.after(ctx, event.SendKeysByKeyboard, "", event.Keys{Text: text}, "", nil)
}

func (d *Dispatcher) BeforePressKey(ctx context.Context, key string) {
	d.before(ctx, event.PressKey, "", event.Keys{Text: key})
}

func (d *Dispatcher) AfterPressKey(ctx context.Context, key string) {
	d.after(ctx, event.PressKey, "", event.Keys{Text: key}, "", nil)
}

func (d *Dispatcher) BeforeReleaseKey(ctx context.Context, key string) {
	d.before(ctx, event.ReleaseKey, "", event.Keys{Text: key})
}

func (d *Dispatcher) AfterReleaseKey(ctx context.Context, key string) {
	d.after(ctx, event.ReleaseKey, "", event.Keys{Text: key}, "", nil)
}

// Mouse.

func (d *Dispatcher) BeforeMouseClick(ctx context.Context, at *webdriver.Point) {
	d.before(ctx, event.MouseClick, "", event.Pointer{At: at})
}

func (d *Dispatcher) AfterMouseClick(ctx context.Context, at *webdriver.Point) {
	d.after(ctx, event.MouseClick, "", event.Pointer{At: at}, "", nil)
}

func (d *Dispatcher) BeforeContextClick(ctx context.Context, at *webdriver.Point) {
	d.before(ctx, event.ContextClick, "", event.Pointer{At: at})
}

func (d *Dispatcher) AfterContextClick(ctx context.Context, at *webdriver.Point) {
	d.after(ctx, event.ContextClick, "", event.Pointer{At: at}, "", nil)
}

func (d *Dispatcher) BeforeDoubleClick(ctx context.Context, at *webdriver.Point) {
	d.before(ctx, event.DoubleClick, "", event.Pointer{At: at})
}

func (d *Dispatcher) AfterDoubleClick(ctx context.Context, at *webdriver.Point) {
	d.after(ctx, event.DoubleClick, "", event.Pointer{At: at}, "", nil)
}

func (d *Dispatcher) BeforeMouseDown(ctx context.Context, at *webdriver.Point) {
	d.before(ctx, event.MouseDown, "", event.Pointer{At: at})
}

func (d *Dispatcher) AfterMouseDown(ctx context.Context, at *webdriver.Point) {
	d.after(ctx, event.MouseDown, "", event.Pointer{At: at}, "", nil)
}

func (d *Dispatcher) BeforeMouseUp(ctx context.Context, at *webdriver.Point) {
	d.before(ctx, event.MouseUp, "", event.Pointer{At: at})
}

func (d *Dispatcher) AfterMouseUp(ctx context.Context, at *webdriver.Point) {
	d.after(ctx, event.MouseUp, "", event.Pointer{At: at}, "", nil)
}

func (d *Dispatcher) BeforeMouseMove(ctx context.Context, to *webdriver.Point) {
	d.before(ctx, event.MouseMove, "", event.Pointer{At: to})
}

func (d *Dispatcher) AfterMouseMove(ctx context.Context, to *webdriver.Point) {
	d.after(ctx, event.MouseMove, "", event.Pointer{At: to}, "", nil)
}

func (d *Dispatcher) BeforeMouseMoveWithOffset(ctx context.Context, to *webdriver.Point, dx, dy int) {
	d.before(ctx, event.MouseMoveWithOffset, "", event.Pointer{At: to, Offset: &webdriver.Point{X: dx, Y: dy}})
}

func (d *Dispatcher) AfterMouseMoveWithOffset(ctx context.Context, to *webdriver.Point, dx, dy int) {
	d.after(ctx, event.MouseMoveWithOffset, "", event.Pointer{At: to, Offset: &webdriver.Point{X: dx, Y: dy}}, "", nil)
}
