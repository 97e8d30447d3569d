package event

// Command identifies one intercepted browser operation.
type Command int

// Family groups commands by the receiver they act on.
type Family int

const (
	FamilyDriver Family = iota
	FamilyCookie
	FamilyTimeout
	FamilyWindow
	FamilyNavigation
	FamilyTarget
	FamilyAlert
	FamilyElement
	FamilyKeyboard
	FamilyMouse
)

const (
	Unknown Command = iota

	Get
	GetTitle
	GetCurrentURL
	GetScreenshotAs
	FindElementsByDriver
	FindElementByDriver
	GetPageSource
	Close
	Quit
	GetWindowHandles
	GetWindowHandle
	ExecuteScript
	ExecuteAsyncScript

	AddCookie
	DeleteCookieNamed
	DeleteCookie
	DeleteAllCookies
	GetCookies
	GetCookieNamed

	ImplicitlyWait
	SetScriptTimeout
	PageLoadTimeout

	SetWindowSize
	SetWindowPosition
	GetWindowSize
	GetWindowPosition
	Maximize
	Fullscreen

	Back
	Forward
	To
	Refresh

	FrameByIndex
	FrameByName
	FrameByElement
	ParentFrame
	SwitchToWindow
	DefaultContent
	ActiveElement
	SwitchToAlert

	Dismiss
	Accept
	GetAlertText
	SendKeysToAlert

	ClickElement
	Submit
	SendKeysToElement
	UploadFile
	Clear
	GetTagName
	GetAttribute
	IsSelected
	IsEnabled
	GetText
	GetCSSValue
	FindElementsByElement
	FindElementByElement
	IsDisplayed
	GetLocation
	GetElementSize
	GetRect
	GetElementScreenshotAs

	SendKeysByKeyboard
	PressKey
	ReleaseKey

	MouseClick
	ContextClick
	DoubleClick
	MouseDown
	MouseUp
	MouseMove
	MouseMoveWithOffset

	numCommands
)

type commandInfo struct {
	short  string
	long   string
	family Family
	action bool
}

var commands = [numCommands]commandInfo{
	Unknown: {"unknown", "unknown", FamilyDriver, false},

	Get:                  {"get", "WebDriver.get", FamilyDriver, true},
	GetTitle:             {"getTitle", "WebDriver.getTitle", FamilyDriver, false},
	GetCurrentURL:        {"getCurrentUrl", "WebDriver.getCurrentUrl", FamilyDriver, false},
	GetScreenshotAs:      {"getScreenshotAs", "WebDriver.getScreenshotAs", FamilyDriver, false},
	FindElementsByDriver: {"findElementsByWebDriver", "WebDriver.findElements", FamilyDriver, false},
	FindElementByDriver:  {"findElementByWebDriver", "WebDriver.findElement", FamilyDriver, false},
	GetPageSource:        {"getPageSource", "WebDriver.getPageSource", FamilyDriver, false},
	Close:                {"close", "WebDriver.close", FamilyDriver, true},
	Quit:                 {"quit", "WebDriver.quit", FamilyDriver, true},
	GetWindowHandles:     {"getWindowHandles", "WebDriver.getWindowHandles", FamilyDriver, false},
	GetWindowHandle:      {"getWindowHandle", "WebDriver.getWindowHandle", FamilyDriver, false},
	ExecuteScript:        {"executeScript", "WebDriver.executeScript", FamilyDriver, true},
	ExecuteAsyncScript:   {"executeAsyncScript", "WebDriver.executeAsyncScript", FamilyDriver, true},

	AddCookie:         {"addCookie", "WebDriver.Options.addCookie", FamilyCookie, true},
	DeleteCookieNamed: {"deleteCookieNamed", "WebDriver.Options.deleteCookieNamed", FamilyCookie, true},
	DeleteCookie:      {"deleteCookie", "WebDriver.Options.deleteCookie", FamilyCookie, true},
	DeleteAllCookies:  {"deleteAllCookies", "WebDriver.Options.deleteAllCookies", FamilyCookie, true},
	GetCookies:        {"getCookies", "WebDriver.Options.getCookies", FamilyCookie, false},
	GetCookieNamed:    {"getCookieNamed", "WebDriver.Options.getCookieNamed", FamilyCookie, false},

	ImplicitlyWait:   {"implicitlyWait", "WebDriver.Timeouts.implicitlyWait", FamilyTimeout, true},
	SetScriptTimeout: {"setScriptTimeout", "WebDriver.Timeouts.setScriptTimeout", FamilyTimeout, true},
	PageLoadTimeout:  {"pageLoadTimeout", "WebDriver.Timeouts.pageLoadTimeout", FamilyTimeout, true},

	SetWindowSize:     {"setSizeByWindow", "WebDriver.Window.setSize", FamilyWindow, true},
	SetWindowPosition: {"setPosition", "WebDriver.Window.setPosition", FamilyWindow, true},
	GetWindowSize:     {"getSizeByWindow", "WebDriver.Window.getSize", FamilyWindow, false},
	GetWindowPosition: {"getPosition", "WebDriver.Window.getPosition", FamilyWindow, false},
	Maximize:          {"maximize", "WebDriver.Window.maximize", FamilyWindow, true},
	Fullscreen:        {"fullscreen", "WebDriver.Window.fullscreen", FamilyWindow, true},

	Back:    {"back", "WebDriver.Navigation.back", FamilyNavigation, true},
	Forward: {"forward", "WebDriver.Navigation.forward", FamilyNavigation, true},
	To:      {"to", "WebDriver.Navigation.to", FamilyNavigation, true},
	Refresh: {"refresh", "WebDriver.Navigation.refresh", FamilyNavigation, true},

	FrameByIndex:   {"frameByIndex", "WebDriver.TargetLocator.frame", FamilyTarget, true},
	FrameByName:    {"frameByName", "WebDriver.TargetLocator.frame", FamilyTarget, true},
	FrameByElement: {"frameByElement", "WebDriver.TargetLocator.frame", FamilyTarget, true},
	ParentFrame:    {"parentFrame", "WebDriver.TargetLocator.parentFrame", FamilyTarget, true},
	SwitchToWindow: {"window", "WebDriver.TargetLocator.window", FamilyTarget, true},
	DefaultContent: {"defaultContent", "WebDriver.TargetLocator.defaultContent", FamilyTarget, true},
	ActiveElement:  {"activeElement", "WebDriver.TargetLocator.activeElement", FamilyTarget, false},
	SwitchToAlert:  {"alert", "WebDriver.TargetLocator.alert", FamilyTarget, true},

	Dismiss:         {"dismiss", "Alert.dismiss", FamilyAlert, true},
	Accept:          {"accept", "Alert.accept", FamilyAlert, true},
	GetAlertText:    {"getTextByAlert", "Alert.getText", FamilyAlert, false},
	SendKeysToAlert: {"sendKeysByAlert", "Alert.sendKeys", FamilyAlert, true},

	ClickElement:           {"click", "WebElement.click", FamilyElement, true},
	Submit:                 {"submit", "WebElement.submit", FamilyElement, true},
	SendKeysToElement:      {"sendKeysByElement", "WebElement.sendKeys", FamilyElement, true},
	UploadFile:             {"uploadFile", "WebElement.uploadFile", FamilyElement, true},
	Clear:                  {"clear", "WebElement.clear", FamilyElement, true},
	GetTagName:             {"getTagName", "WebElement.getTagName", FamilyElement, false},
	GetAttribute:           {"getAttribute", "WebElement.getAttribute", FamilyElement, false},
	IsSelected:             {"isSelected", "WebElement.isSelected", FamilyElement, false},
	IsEnabled:              {"isEnabled", "WebElement.isEnabled", FamilyElement, false},
	GetText:                {"getText", "WebElement.getText", FamilyElement, false},
	GetCSSValue:            {"getCssValue", "WebElement.getCssValue", FamilyElement, false},
	FindElementsByElement:  {"findElementsByElement", "WebElement.findElements", FamilyElement, false},
	FindElementByElement:   {"findElementByElement", "WebElement.findElement", FamilyElement, false},
	IsDisplayed:            {"isDisplayed", "WebElement.isDisplayed", FamilyElement, false},
	GetLocation:            {"getLocation", "WebElement.getLocation", FamilyElement, false},
	GetElementSize:         {"getSizeByElement", "WebElement.getSize", FamilyElement, false},
	GetRect:                {"getRect", "WebElement.getRect", FamilyElement, false},
	GetElementScreenshotAs: {"getScreenshotAsByElement", "WebElement.getScreenshotAs", FamilyElement, false},

	SendKeysByKeyboard: {"sendKeysByKeyboard", "Keyboard.sendKeys", FamilyKeyboard, true},
	PressKey:           {"pressKey", "Keyboard.pressKey", FamilyKeyboard, true},
	ReleaseKey:         {"releaseKey", "Keyboard.releaseKey", FamilyKeyboard, true},

	MouseClick:          {"clickByMouse", "Mouse.click", FamilyMouse, true},
	ContextClick:        {"contextClick", "Mouse.contextClick", FamilyMouse, true},
	DoubleClick:         {"doubleClick", "Mouse.doubleClick", FamilyMouse, true},
	MouseDown:           {"mouseDown", "Mouse.mouseDown", FamilyMouse, true},
	MouseUp:             {"mouseUp", "Mouse.mouseUp", FamilyMouse, true},
	MouseMove:           {"mouseMove", "Mouse.mouseMove", FamilyMouse, true},
	MouseMoveWithOffset: {"mouseMoveWithOffset", "Mouse.mouseMove", FamilyMouse, true},
}

func (c Command) info() commandInfo {
	if c <= Unknown || c >= numCommands {
		return commands[Unknown]
	}
	return commands[c]
}

// Short is the bare command name, e.g. "click".
func (c Command) Short() string { return c.info().short }

// Long is the receiver-qualified form, e.g. "WebElement.click".
func (c Command) Long() string { return c.info().long }

func (c Command) Family() Family { return c.info().family }

// IsAction reports whether the command changes browser state. Everything
// else is a read-only gather.
func (c Command) IsAction() bool { return c.info().action }

func (c Command) String() string { return c.Short() }

// Commands returns every known command in declaration order.
func Commands() []Command {
	out := make([]Command, 0, numCommands-1)
	for c := Unknown + 1; c < numCommands; c++ {
		out = append(out, c)
	}
	return out
}

// ParseCommand maps a short form back to its Command.
func ParseCommand(short string) (Command, bool) {
	for c := Unknown + 1; c < numCommands; c++ {
		if commands[c].short == short {
			return c, true
		}
	}
	return Unknown, false
}
