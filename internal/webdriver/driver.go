package webdriver

import (
	"context"
	"time"
)

// Element is a handle to a DOM element owned by a Driver.
type Element interface {
	// ID is an opaque handle, unique within the owning driver.
	ID() string
	// Locator describes how the element was found, or "" when unknown.
	Locator() string

	Click(ctx context.Context) error
	Submit(ctx context.Context) error
	SendKeys(ctx context.Context, text string) error
	UploadFile(ctx context.Context, path string) error
	Clear(ctx context.Context) error

	TagName(ctx context.Context) (string, error)
	Attribute(ctx context.Context, name string) (string, error)
	IsSelected(ctx context.Context) (bool, error)
	IsEnabled(ctx context.Context) (bool, error)
	IsDisplayed(ctx context.Context) (bool, error)
	Text(ctx context.Context) (string, error)
	CSSValue(ctx context.Context, property string) (string, error)
	FindElement(ctx context.Context, by By) (Element, error)
	FindElements(ctx context.Context, by By) ([]Element, error)
	Location(ctx context.Context) (Point, error)
	Size(ctx context.Context) (Size, error)
	Rect(ctx context.Context) (Rect, error)
	Screenshot(ctx context.Context) ([]byte, error)
}

// Driver is the full command surface of one browser session. Every method
// blocks until the browser responds or ctx is done.
type Driver interface {
	Get(ctx context.Context, url string) error
	Title(ctx context.Context) (string, error)
	CurrentURL(ctx context.Context) (string, error)
	Screenshot(ctx context.Context) ([]byte, error)
	FindElements(ctx context.Context, by By) ([]Element, error)
	FindElement(ctx context.Context, by By) (Element, error)
	PageSource(ctx context.Context) (string, error)
	Close(ctx context.Context) error
	Quit(ctx context.Context) error
	WindowHandles(ctx context.Context) ([]string, error)
	WindowHandle(ctx context.Context) (string, error)
	ExecuteScript(ctx context.Context, script string, args ...any) (any, error)
	ExecuteAsyncScript(ctx context.Context, script string, args ...any) (any, error)

	AddCookie(ctx context.Context, c Cookie) error
	DeleteCookieNamed(ctx context.Context, name string) error
	DeleteCookie(ctx context.Context, c Cookie) error
	DeleteAllCookies(ctx context.Context) error
	Cookies(ctx context.Context) ([]Cookie, error)
	CookieNamed(ctx context.Context, name string) (Cookie, error)

	ImplicitlyWait(ctx context.Context, d time.Duration) error
	SetScriptTimeout(ctx context.Context, d time.Duration) error
	PageLoadTimeout(ctx context.Context, d time.Duration) error

	SetWindowSize(ctx context.Context, s Size) error
	SetWindowPosition(ctx context.Context, p Point) error
	WindowSize(ctx context.Context) (Size, error)
	WindowPosition(ctx context.Context) (Point, error)
	Maximize(ctx context.Context) error
	Fullscreen(ctx context.Context) error

	Back(ctx context.Context) error
	Forward(ctx context.Context) error
	To(ctx context.Context, url string) error
	Refresh(ctx context.Context) error

	SwitchToFrameIndex(ctx context.Context, index int) error
	SwitchToFrameName(ctx context.Context, nameOrID string) error
	SwitchToFrameElement(ctx context.Context, frame Element) error
	SwitchToParentFrame(ctx context.Context) error
	SwitchToWindow(ctx context.Context, handle string) error
	SwitchToDefaultContent(ctx context.Context) error
	ActiveElement(ctx context.Context) (Element, error)
	SwitchToAlert(ctx context.Context) error

	DismissAlert(ctx context.Context) error
	AcceptAlert(ctx context.Context) error
	AlertText(ctx context.Context) (string, error)
	SendAlertText(ctx context.Context, text string) error

	SendKeys(ctx context.Context, text string) error
	PressKey(ctx context.Context, key string) error
	ReleaseKey(ctx context.Context, key string) error

	MouseClick(ctx context.Context, at *Point) error
	ContextClick(ctx context.Context, at *Point) error
	DoubleClick(ctx context.Context, at *Point) error
	MouseDown(ctx context.Context, at *Point) error
	MouseUp(ctx context.Context, at *Point) error
	MouseMove(ctx context.Context, to *Point) error
	MouseMoveBy(ctx context.Context, to *Point, dx, dy int) error
}
