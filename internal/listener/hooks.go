package listener

import (
	"context"

	"github.com/timvw/webtrace/internal/event"
	"github.com/timvw/webtrace/internal/webdriver"
)

// Hook invokes one callback of a listener.
type Hook func(l Listener, ctx context.Context, rec *event.Record, d webdriver.Driver)

type hookPair struct {
	before, after Hook
}

var hooks = map[event.Command]hookPair{
	event.Get:                    {Listener.BeforeGet, Listener.AfterGet},
	event.GetTitle:               {Listener.BeforeGetTitle, Listener.AfterGetTitle},
	event.GetCurrentURL:          {Listener.BeforeGetCurrentURL, Listener.AfterGetCurrentURL},
	event.GetScreenshotAs:        {Listener.BeforeGetScreenshotAs, Listener.AfterGetScreenshotAs},
	event.FindElementsByDriver:   {Listener.BeforeFindElementsByDriver, Listener.AfterFindElementsByDriver},
	event.FindElementByDriver:    {Listener.BeforeFindElementByDriver, Listener.AfterFindElementByDriver},
	event.GetPageSource:          {Listener.BeforeGetPageSource, Listener.AfterGetPageSource},
	event.Close:                  {Listener.BeforeClose, Listener.AfterClose},
	event.Quit:                   {Listener.BeforeQuit, Listener.AfterQuit},
	event.GetWindowHandles:       {Listener.BeforeGetWindowHandles, Listener.AfterGetWindowHandles},
	event.GetWindowHandle:        {Listener.BeforeGetWindowHandle, Listener.AfterGetWindowHandle},
	event.ExecuteScript:          {Listener.BeforeExecuteScript, Listener.AfterExecuteScript},
	event.ExecuteAsyncScript:     {Listener.BeforeExecuteAsyncScript, Listener.AfterExecuteAsyncScript},
	event.AddCookie:              {Listener.BeforeAddCookie, Listener.AfterAddCookie},
	event.DeleteCookieNamed:      {Listener.BeforeDeleteCookieNamed, Listener.AfterDeleteCookieNamed},
	event.DeleteCookie:           {Listener.BeforeDeleteCookie, Listener.AfterDeleteCookie},
	event.DeleteAllCookies:       {Listener.BeforeDeleteAllCookies, Listener.AfterDeleteAllCookies},
	event.GetCookies:             {Listener.BeforeGetCookies, Listener.AfterGetCookies},
	event.GetCookieNamed:         {Listener.BeforeGetCookieNamed, Listener.AfterGetCookieNamed},
	event.ImplicitlyWait:         {Listener.BeforeImplicitlyWait, Listener.AfterImplicitlyWait},
	event.SetScriptTimeout:       {Listener.BeforeSetScriptTimeout, Listener.AfterSetScriptTimeout},
	event.PageLoadTimeout:        {Listener.BeforePageLoadTimeout, Listener.AfterPageLoadTimeout},
	event.SetWindowSize:          {Listener.BeforeSetWindowSize, Listener.AfterSetWindowSize},
	event.SetWindowPosition:      {Listener.BeforeSetWindowPosition, Listener.AfterSetWindowPosition},
	event.GetWindowSize:          {Listener.BeforeGetWindowSize, Listener.AfterGetWindowSize},
	event.GetWindowPosition:      {Listener.BeforeGetWindowPosition, Listener.AfterGetWindowPosition},
	event.Maximize:               {Listener.BeforeMaximize, Listener.AfterMaximize},
	event.Fullscreen:             {Listener.BeforeFullscreen, Listener.AfterFullscreen},
	event.Back:                   {Listener.BeforeBack, Listener.AfterBack},
	event.Forward:                {Listener.BeforeForward, Listener.AfterForward},
	event.To:                     {Listener.BeforeTo, Listener.AfterTo},
	event.Refresh:                {Listener.BeforeRefresh, Listener.AfterRefresh},
	event.FrameByIndex:           {Listener.BeforeFrameByIndex, Listener.AfterFrameByIndex},
	event.FrameByName:            {Listener.BeforeFrameByName, Listener.AfterFrameByName},
	event.FrameByElement:         {Listener.BeforeFrameByElement, Listener.AfterFrameByElement},
	event.ParentFrame:            {Listener.BeforeParentFrame, Listener.AfterParentFrame},
	event.SwitchToWindow:         {Listener.BeforeSwitchToWindow, Listener.AfterSwitchToWindow},
	event.DefaultContent:         {Listener.BeforeDefaultContent, Listener.AfterDefaultContent},
	event.ActiveElement:          {Listener.BeforeActiveElement, Listener.AfterActiveElement},
	event.SwitchToAlert:          {Listener.BeforeSwitchToAlert, Listener.AfterSwitchToAlert},
	event.Dismiss:                {Listener.BeforeDismiss, Listener.AfterDismiss},
	event.Accept:                 {Listener.BeforeAccept, Listener.AfterAccept},
	event.GetAlertText:           {Listener.BeforeGetAlertText, Listener.AfterGetAlertText},
	event.SendKeysToAlert:        {Listener.BeforeSendKeysToAlert, Listener.AfterSendKeysToAlert},
	event.ClickElement:           {Listener.BeforeClickElement, Listener.AfterClickElement},
	event.Submit:                 {Listener.BeforeSubmit, Listener.AfterSubmit},
	event.SendKeysToElement:      {Listener.BeforeSendKeysToElement, Listener.AfterSendKeysToElement},
	event.UploadFile:             {Listener.BeforeUploadFile, Listener.AfterUploadFile},
	event.Clear:                  {Listener.BeforeClear, Listener.AfterClear},
	event.GetTagName:             {Listener.BeforeGetTagName, Listener.AfterGetTagName},
	event.GetAttribute:           {Listener.BeforeGetAttribute, Listener.AfterGetAttribute},
	event.IsSelected:             {Listener.BeforeIsSelected, Listener.AfterIsSelected},
	event.IsEnabled:              {Listener.BeforeIsEnabled, Listener.AfterIsEnabled},
	event.GetText:                {Listener.BeforeGetText, Listener.AfterGetText},
	event.GetCSSValue:            {Listener.BeforeGetCSSValue, Listener.AfterGetCSSValue},
	event.FindElementsByElement:  {Listener.BeforeFindElementsByElement, Listener.AfterFindElementsByElement},
	event.FindElementByElement:   {Listener.BeforeFindElementByElement, Listener.AfterFindElementByElement},
	event.IsDisplayed:            {Listener.BeforeIsDisplayed, Listener.AfterIsDisplayed},
	event.GetLocation:            {Listener.BeforeGetLocation, Listener.AfterGetLocation},
	event.GetElementSize:         {Listener.BeforeGetElementSize, Listener.AfterGetElementSize},
	event.GetRect:                {Listener.BeforeGetRect, Listener.AfterGetRect},
	event.GetElementScreenshotAs: {Listener.BeforeGetElementScreenshotAs, Listener.AfterGetElementScreenshotAs},
	event.SendKeysByKeyboard:     {Listener.BeforeSendKeysByKeyboard, Listener.AfterSendKeysByKeyboard},
	event.PressKey:               {Listener.BeforePressKey, Listener.AfterPressKey},
	event.ReleaseKey:             {Listener.BeforeReleaseKey, Listener.AfterReleaseKey},
	event.MouseClick:             {Listener.BeforeMouseClick, Listener.AfterMouseClick},
	event.ContextClick:           {Listener.BeforeContextClick, Listener.AfterContextClick},
	event.DoubleClick:            {Listener.BeforeDoubleClick, Listener.AfterDoubleClick},
	event.MouseDown:              {Listener.BeforeMouseDown, Listener.AfterMouseDown},
	event.MouseUp:                {Listener.BeforeMouseUp, Listener.AfterMouseUp},
	event.MouseMove:              {Listener.BeforeMouseMove, Listener.AfterMouseMove},
	event.MouseMoveWithOffset:    {Listener.BeforeMouseMoveWithOffset, Listener.AfterMouseMoveWithOffset},
}

// Hooks returns the Before and After callbacks for c. Both are nil for an
// unknown command.
func Hooks(c event.Command) (before, after Hook) {
	p := hooks[c]
	return p.before, p.after
}

// ExceptionHook invokes OnException.
func ExceptionHook(l Listener, ctx context.Context, rec *event.Record, d webdriver.Driver) {
	l.OnException(ctx, rec, d)
}
