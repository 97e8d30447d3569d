// Package listener defines the observer contract for intercepted browser
// commands and the built-in observers.
//
// The dispatcher calls Before<Command> ahead of every command, After<Command>
// once it succeeded and OnException when it failed, passing the record it
// built and the unwrapped driver. Listener methods must not call back into
// the instrumented driver.
package listener

import (
	"context"

	"github.com/timvw/webtrace/internal/event"
	"github.com/timvw/webtrace/internal/webdriver"
)

// Listener observes every intercepted command.
type Listener interface {
	DriverListener
	CookieListener
	TimeoutListener
	WindowListener
	NavigationListener
	TargetListener
	AlertListener
	ElementListener
	KeyboardListener
	MouseListener

	OnException(ctx context.Context, rec *event.Record, d webdriver.Driver)
}

// DriverListener observes WebDriver commands.
type DriverListener interface {
	BeforeGet(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterGet(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeGetTitle(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterGetTitle(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeGetCurrentURL(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterGetCurrentURL(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeGetScreenshotAs(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterGetScreenshotAs(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeFindElementsByDriver(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterFindElementsByDriver(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeFindElementByDriver(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterFindElementByDriver(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeGetPageSource(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterGetPageSource(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeClose(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterClose(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeQuit(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterQuit(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeGetWindowHandles(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterGetWindowHandles(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeGetWindowHandle(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterGetWindowHandle(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeExecuteScript(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterExecuteScript(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeExecuteAsyncScript(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterExecuteAsyncScript(ctx context.Context, rec *event.Record, d webdriver.Driver)
}

// CookieListener observes cookie management.
type CookieListener interface {
	BeforeAddCookie(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterAddCookie(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeDeleteCookieNamed(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterDeleteCookieNamed(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeDeleteCookie(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterDeleteCookie(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeDeleteAllCookies(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterDeleteAllCookies(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeGetCookies(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterGetCookies(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeGetCookieNamed(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterGetCookieNamed(ctx context.Context, rec *event.Record, d webdriver.Driver)
}

// TimeoutListener observes driver timeouts.
type TimeoutListener interface {
	BeforeImplicitlyWait(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterImplicitlyWait(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeSetScriptTimeout(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterSetScriptTimeout(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforePageLoadTimeout(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterPageLoadTimeout(ctx context.Context, rec *event.Record, d webdriver.Driver)
}

// WindowListener observes window geometry.
type WindowListener interface {
	BeforeSetWindowSize(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterSetWindowSize(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeSetWindowPosition(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterSetWindowPosition(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeGetWindowSize(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterGetWindowSize(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeGetWindowPosition(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterGetWindowPosition(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeMaximize(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterMaximize(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeFullscreen(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterFullscreen(ctx context.Context, rec *event.Record, d webdriver.Driver)
}

// NavigationListener observes history navigation.
type NavigationListener interface {
	BeforeBack(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterBack(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeForward(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterForward(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeTo(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterTo(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeRefresh(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterRefresh(ctx context.Context, rec *event.Record, d webdriver.Driver)
}

// TargetListener observes frame, window and alert switching.
type TargetListener interface {
	BeforeFrameByIndex(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterFrameByIndex(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeFrameByName(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterFrameByName(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeFrameByElement(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterFrameByElement(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeParentFrame(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterParentFrame(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeSwitchToWindow(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterSwitchToWindow(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeDefaultContent(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterDefaultContent(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeActiveElement(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterActiveElement(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeSwitchToAlert(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterSwitchToAlert(ctx context.Context, rec *event.Record, d webdriver.Driver)
}

// AlertListener observes alert dialogs.
type AlertListener interface {
	BeforeDismiss(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterDismiss(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeAccept(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterAccept(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeGetAlertText(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterGetAlertText(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeSendKeysToAlert(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterSendKeysToAlert(ctx context.Context, rec *event.Record, d webdriver.Driver)
}

// ElementListener observes element commands.
type ElementListener interface {
	BeforeClickElement(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterClickElement(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeSubmit(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterSubmit(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeSendKeysToElement(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterSendKeysToElement(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeUploadFile(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterUploadFile(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeClear(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterClear(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeGetTagName(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterGetTagName(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeGetAttribute(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterGetAttribute(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeIsSelected(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterIsSelected(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeIsEnabled(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterIsEnabled(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeGetText(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterGetText(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeGetCSSValue(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterGetCSSValue(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeFindElementsByElement(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterFindElementsByElement(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeFindElementByElement(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterFindElementByElement(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeIsDisplayed(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterIsDisplayed(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeGetLocation(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterGetLocation(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeGetElementSize(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterGetElementSize(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeGetRect(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterGetRect(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeGetElementScreenshotAs(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterGetElementScreenshotAs(ctx context.Context, rec *event.Record, d webdriver.Driver)
}

// KeyboardListener observes keyboard input.
type KeyboardListener interface {
	BeforeSendKeysByKeyboard(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterSendKeysByKeyboard(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforePressKey(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterPressKey(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeReleaseKey(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterReleaseKey(ctx context.Context, rec *event.Record, d webdriver.Driver)
}

// MouseListener observes mouse input.
type MouseListener interface {
	BeforeMouseClick(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterMouseClick(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeContextClick(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterContextClick(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeDoubleClick(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterDoubleClick(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeMouseDown(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterMouseDown(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeMouseUp(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterMouseUp(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeMouseMove(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterMouseMove(ctx context.Context, rec *event.Record, d webdriver.Driver)
	BeforeMouseMoveWithOffset(ctx context.Context, rec *event.Record, d webdriver.Driver)
	AfterMouseMoveWithOffset(ctx context.Context, rec *event.Record, d webdriver.Driver)
}
