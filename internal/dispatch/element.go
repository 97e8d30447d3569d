package dispatch

import (
	"context"

	"github.com/timvw/webtrace/internal/event"
	"github.com/timvw/webtrace/internal/webdriver"
)

// Element is an instrumented element. It reports through the dispatcher of
// the Driver that found it.
type Element struct {
	raw webdriver.Element
	drv *Driver
}

var _ webdriver.Element = (*Element)(nil)

// Unwrap returns the uninstrumented element.
func (e *Element) Unwrap() webdriver.Element { return e.raw }

func (e *Element) ID() string      { return e.raw.ID() }
func (e *Element) Locator() string { return e.raw.Locator() }

func (e *Element) fail(ctx context.Context, cmd event.Command, err error) error {
	return e.drv.fail(ctx, cmd, err)
}

func (e *Element) Click(ctx context.Context) error {
	disp := e.drv.disp
	disp.BeforeClickElement(ctx, e.raw)
	if err := e.raw.Click(ctx); err != nil {
		return e.fail(ctx, event.ClickElement, err)
	}
	disp.AfterClickElement(ctx, e.raw)
	return nil
}

func (e *Element) Submit(ctx context.Context) error {
	disp := e.drv.disp
	disp.BeforeSubmit(ctx, e.raw)
	if err := e.raw.Submit(ctx); err != nil {
		return e.fail(ctx, event.Submit, err)
	}
	disp.AfterSubmit(ctx, e.raw)
	return nil
}

func (e *Element) SendKeys(ctx context.Context, text string) error {
	disp := e.drv.disp
	disp.BeforeSendKeysToElement(ctx, e.raw, text)
	if err := e.raw.SendKeys(ctx, text); err != nil {
		return e.fail(ctx, event.SendKeysToElement, err)
	}
	disp.AfterSendKeysToElement(ctx, e.raw, text)
	return nil
}

func (e *Element) UploadFile(ctx context.Context, path string) error {
	disp := e.drv.disp
	disp.BeforeUploadFile(ctx, e.raw, path)
	if err := e.raw.UploadFile(ctx, path); err != nil {
		return e.fail(ctx, event.UploadFile, err)
	}
	disp.AfterUploadFile(ctx, e.raw, path)
	return nil
}

func (e *Element) Clear(ctx context.Context) error {
	disp := e.drv.disp
	disp.BeforeClear(ctx, e.raw)
	if err := e.raw.Clear(ctx); err != nil {
		return e.fail(ctx, event.Clear, err)
	}
	disp.AfterClear(ctx, e.raw)
	return nil
}

func (e *Element) TagName(ctx context.Context) (string, error) {
	disp := e.drv.disp
	disp.BeforeGetTagName(ctx, e.raw)
	tag, err := e.raw.TagName(ctx)
	if err != nil {
		return "", e.fail(ctx, event.GetTagName, err)
	}
	disp.AfterGetTagName(ctx, e.raw, tag)
	return tag, nil
}

func (e *Element) Attribute(ctx context.Context, name string) (string, error) {
	disp := e.drv.disp
	disp.BeforeGetAttribute(ctx, e.raw, name)
	v, err := e.raw.Attribute(ctx, name)
	if err != nil {
		return "", e.fail(ctx, event.GetAttribute, err)
	}
	disp.AfterGetAttribute(ctx, e.raw, name, v)
	return v, nil
}

func (e *Element) IsSelected(ctx context.Context) (bool, error) {
	disp := e.drv.disp
	disp.BeforeIsSelected(ctx, e.raw)
	ok, err := e.raw.IsSelected(ctx)
	if err != nil {
		return false, e.fail(ctx, event.IsSelected, err)
	}
	disp.AfterIsSelected(ctx, e.raw, ok)
	return ok, nil
}

func (e *Element) IsEnabled(ctx context.Context) (bool, error) {
	disp := e.drv.disp
	disp.BeforeIsEnabled(ctx, e.raw)
	ok, err := e.raw.IsEnabled(ctx)
	if err != nil {
		return false, e.fail(ctx, event.IsEnabled, err)
	}
	disp.AfterIsEnabled(ctx, e.raw, ok)
	return ok, nil
}

func (e *Element) IsDisplayed(ctx context.Context) (bool, error) {
	disp := e.drv.disp
	disp.BeforeIsDisplayed(ctx, e.raw)
	ok, err := e.raw.IsDisplayed(ctx)
	if err != nil {
		return false, e.fail(ctx, event.IsDisplayed, err)
	}
	disp.AfterIsDisplayed(ctx, e.raw, ok)
	return ok, nil
}

func (e *Element) Text(ctx context.Context) (string, error) {
	disp := e.drv.disp
	disp.BeforeGetText(ctx, e.raw)
	text, err := e.raw.Text(ctx)
	if err != nil {
		return "", e.fail(ctx, event.GetText, err)
	}
	disp.AfterGetText(ctx, e.raw, text)
	return text, nil
}

func (e *Element) CSSValue(ctx context.Context, property string) (string, error) {
	disp := e.drv.disp
	disp.BeforeGetCSSValue(ctx, e.raw, property)
	v, err := e.raw.CSSValue(ctx, property)
	if err != nil {
		return "", e.fail(ctx, event.GetCSSValue, err)
	}
	disp.AfterGetCSSValue(ctx, e.raw, property, v)
	return v, nil
}

func (e *Element) FindElement(ctx context.Context, by webdriver.By) (webdriver.Element, error) {
	disp := e.drv.disp
	disp.BeforeFindElementByElement(ctx, e.raw, by)
	found, err := e.raw.FindElement(ctx, by)
	if err != nil {
		return nil, e.fail(ctx, event.FindElementByElement, err)
	}
	disp.AfterFindElementByElement(ctx, e.raw, by, found)
	return e.drv.wrap(found), nil
}

func (e *Element) FindElements(ctx context.Context, by webdriver.By) ([]webdriver.Element, error) {
	disp := e.drv.disp
	disp.BeforeFindElementsByElement(ctx, e.raw, by)
	found, err := e.raw.FindElements(ctx, by)
	if err != nil {
		return nil, e.fail(ctx, event.FindElementsByElement, err)
	}
	disp.AfterFindElementsByElement(ctx, e.raw, by, found)
	return e.drv.wrapAll(found), nil
}

func (e *Element) Location(ctx context.Context) (webdriver.Point, error) {
	disp := e.drv.disp
	disp.BeforeGetLocation(ctx, e.raw)
	p, err := e.raw.Location(ctx)
	if err != nil {
		return webdriver.Point{}, e.fail(ctx, event.GetLocation, err)
	}
	disp.AfterGetLocation(ctx, e.raw, p)
	return p, nil
}

func (e *Element) Size(ctx context.Context) (webdriver.Size, error) {
	disp := e.drv.disp
	disp.BeforeGetElementSize(ctx, e.raw)
	s, err := e.raw.Size(ctx)
	if err != nil {
		return webdriver.Size{}, e.fail(ctx, event.GetElementSize, err)
	}
	disp.AfterGetElementSize(ctx, e.raw, s)
	return s, nil
}

func (e *Element) Rect(ctx context.Context) (webdriver.Rect, error) {
	disp := e.drv.disp
	disp.BeforeGetRect(ctx, e.raw)
	r, err := e.raw.Rect(ctx)
	if err != nil {
		return webdriver.Rect{}, e.fail(ctx, event.GetRect, err)
	}
	disp.AfterGetRect(ctx, e.raw, r)
	return r, nil
}

func (e *Element) Screenshot(ctx context.Context) ([]byte, error) {
	disp := e.drv.disp
	disp.BeforeGetElementScreenshotAs(ctx, e.raw)
	png, err := e.raw.Screenshot(ctx)
	if err != nil {
		return nil, e.fail(ctx, event.GetElementScreenshotAs, err)
	}
	disp.AfterGetElementScreenshotAs(ctx, e.raw, png)
	return png, nil
}
