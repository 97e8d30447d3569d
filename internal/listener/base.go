package listener

import (
	"context"

	"github.com/timvw/webtrace/internal/event"
	"github.com/timvw/webtrace/internal/webdriver"
)

// Base implements Listener with no-ops. Embed it and override the callbacks
// you need. When Observe is set every callback not overridden is forwarded to it.
type Base struct {
	Observe func(ctx context.Context, rec *event.Record, d webdriver.Driver)
}

func (b *Base) observe(ctx context.Context, rec *event.Record, d webdriver.Driver) {
	if b != nil && b.Observe != nil {
		b.Observe(ctx, rec, d)
	}
}

func (b *Base) BeforeGet(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterGet(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeGetTitle(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterGetTitle(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeGetCurrentURL(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterGetCurrentURL(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeGetScreenshotAs(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterGetScreenshotAs(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeFindElementsByDriver(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterFindElementsByDriver(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeFindElementByDriver(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterFindElementByDriver(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeGetPageSource(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterGetPageSource(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeClose(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterClose(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeQuit(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterQuit(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeGetWindowHandles(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterGetWindowHandles(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeGetWindowHandle(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterGetWindowHandle(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeExecuteScript(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterExecuteScript(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeExecuteAsyncScript(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterExecuteAsyncScript(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }

func (b *Base) BeforeAddCookie(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterAddCookie(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeDeleteCookieNamed(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterDeleteCookieNamed(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeDeleteCookie(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterDeleteCookie(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeDeleteAllCookies(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterDeleteAllCookies(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeGetCookies(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterGetCookies(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeGetCookieNamed(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterGetCookieNamed(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }

func (b *Base) BeforeImplicitlyWait(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterImplicitlyWait(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeSetScriptTimeout(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterSetScriptTimeout(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforePageLoadTimeout(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterPageLoadTimeout(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }

func (b *Base) BeforeSetWindowSize(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterSetWindowSize(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeSetWindowPosition(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterSetWindowPosition(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeGetWindowSize(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterGetWindowSize(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeGetWindowPosition(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterGetWindowPosition(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeMaximize(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterMaximize(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeFullscreen(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterFullscreen(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }

func (b *Base) BeforeBack(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterBack(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeForward(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterForward(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeTo(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterTo(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeRefresh(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterRefresh(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }

func (b *Base) BeforeFrameByIndex(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterFrameByIndex(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeFrameByName(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterFrameByName(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeFrameByElement(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterFrameByElement(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeParentFrame(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterParentFrame(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeSwitchToWindow(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterSwitchToWindow(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeDefaultContent(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterDefaultContent(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeActiveElement(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterActiveElement(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeSwitchToAlert(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterSwitchToAlert(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }

func (b *Base) BeforeDismiss(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterDismiss(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeAccept(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterAccept(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeGetAlertText(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterGetAlertText(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeSendKeysToAlert(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterSendKeysToAlert(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }

func (b *Base) BeforeClickElement(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterClickElement(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeSubmit(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterSubmit(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeSendKeysToElement(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterSendKeysToElement(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeUploadFile(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterUploadFile(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeClear(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterClear(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeGetTagName(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterGetTagName(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeGetAttribute(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterGetAttribute(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeIsSelected(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterIsSelected(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeIsEnabled(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterIsEnabled(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeGetText(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterGetText(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeGetCSSValue(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterGetCSSValue(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeFindElementsByElement(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterFindElementsByElement(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeFindElementByElement(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterFindElementByElement(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeIsDisplayed(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterIsDisplayed(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeGetLocation(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterGetLocation(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeGetElementSize(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterGetElementSize(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeGetRect(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterGetRect(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeGetElementScreenshotAs(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterGetElementScreenshotAs(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }

func (b *Base) BeforeSendKeysByKeyboard(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterSendKeysByKeyboard(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforePressKey(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterPressKey(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeReleaseKey(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterReleaseKey(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }

func (b *Base) BeforeMouseClick(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterMouseClick(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeContextClick(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterContextClick(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeDoubleClick(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterDoubleClick(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeMouseDown(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterMouseDown(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeMouseUp(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterMouseUp(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeMouseMove(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterMouseMove(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) BeforeMouseMoveWithOffset(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
func (b *Base) AfterMouseMoveWithOffset(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }

func (b *Base) OnException(ctx context.Context, rec *event.Record, d webdriver.Driver) { b.observe(ctx, rec, d) }
