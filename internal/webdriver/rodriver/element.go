package rodriver

import (
	"context"
	"fmt"
	"math"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/timvw/webtrace/internal/webdriver"
)

type element struct {
	d   *Driver
	el  *rod.Element
	loc string
}

var _ webdriver.Element = (*element)(nil)

func (d *Driver) wrap(el *rod.Element, loc string) *element {
	return &element{d: d, el: el, loc: loc}
}

func (d *Driver) wrapAll(els rod.Elements, by webdriver.By) []webdriver.Element {
	out := make([]webdriver.Element, len(els))
	for i, el := range els {
		out[i] = d.wrap(el, by.String())
	}
	return out
}

func (e *element) ID() string {
	if e.el.Object == nil {
		return ""
	}
	return string(e.el.Object.ObjectID)
}

func (e *element) Locator() string { return e.loc }

func (e *element) on(ctx context.Context) *rod.Element { return e.el.Context(ctx) }

func (e *element) eval(ctx context.Context, js string, args ...any) (*proto.RuntimeRemoteObject, error) {
	return e.on(ctx).Eval(js, args...)
}

func (e *element) Click(ctx context.Context) error {
	return e.on(ctx).Click(proto.InputMouseButtonLeft, 1)
}

func (e *element) Submit(ctx context.Context) error {
	_, err := e.eval(ctx, `() => {
		const form = this.tagName === 'FORM' ? this : this.form || this.closest('form');
		if (!form) throw new Error('element is not inside a form');
		form.requestSubmit ? form.requestSubmit() : form.submit();
	}`)
	return err
}

func (e *element) SendKeys(ctx context.Context, text string) error {
	return e.on(ctx).Input(text)
}

func (e *element) UploadFile(ctx context.Context, path string) error {
	return e.on(ctx).SetFiles([]string{path})
}

func (e *element) Clear(ctx context.Context) error {
	el := e.on(ctx)
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Input("")
}

func (e *element) TagName(ctx context.Context) (string, error) {
	res, err := e.eval(ctx, `() => this.tagName.toLowerCase()`)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (e *element) Attribute(ctx context.Context, name string) (string, error) {
	v, err := e.on(ctx).Attribute(name)
	if err != nil || v == nil {
		return "", err
	}
	return *v, nil
}

func (e *element) IsSelected(ctx context.Context) (bool, error) {
	return e.flag(ctx, `() => !!(this.checked || this.selected)`)
}

func (e *element) IsEnabled(ctx context.Context) (bool, error) {
	return e.flag(ctx, `() => !this.disabled`)
}

func (e *element) IsDisplayed(ctx context.Context) (bool, error) {
	return e.on(ctx).Visible()
}

func (e *element) flag(ctx context.Context, js string) (bool, error) {
	res, err := e.eval(ctx, js)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

func (e *element) Text(ctx context.Context) (string, error) {
	return e.on(ctx).Text()
}

func (e *element) CSSValue(ctx context.Context, property string) (string, error) {
	res, err := e.eval(ctx, `(p) => getComputedStyle(this).getPropertyValue(p)`, property)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (e *element) FindElements(ctx context.Context, by webdriver.By) ([]webdriver.Element, error) {
	els, err := e.query(ctx, by)
	if err != nil {
		return nil, err
	}
	return e.d.wrapAll(els, by), nil
}

func (e *element) FindElement(ctx context.Context, by webdriver.By) (webdriver.Element, error) {
	els, err := e.query(ctx, by)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, fmt.Errorf("%s: %w", by, webdriver.ErrNoSuchElement)
	}
	return e.d.wrap(els.First(), by.String()), nil
}

func (e *element) query(ctx context.Context, by webdriver.By) (rod.Elements, error) {
	el := e.on(ctx)
	switch by.Strategy {
	case webdriver.StrategyXPath:
		return el.ElementsX(by.Value)
	case webdriver.StrategyLinkText:
		return el.ElementsX("." + linkXPath(by.Value))
	}
	css, ok := by.CSS()
	if !ok {
		return nil, fmt.Errorf("locate %s: %w", by, webdriver.ErrUnsupported)
	}
	return el.Elements(css)
}

func (e *element) box(ctx context.Context) (*proto.DOMRect, error) {
	shape, err := e.on(ctx).Shape()
	if err != nil {
		return nil, err
	}
	b := shape.Box()
	if b == nil {
		return nil, fmt.Errorf("%s has no layout box: %w", e.loc, webdriver.ErrNoSuchElement)
	}
	return b, nil
}

func (e *element) Location(ctx context.Context) (webdriver.Point, error) {
	r, err := e.Rect(ctx)
	return r.Point, err
}

func (e *element) Size(ctx context.Context) (webdriver.Size, error) {
	r, err := e.Rect(ctx)
	return r.Size, err
}

func (e *element) Rect(ctx context.Context) (webdriver.Rect, error) {
	b, err := e.box(ctx)
	if err != nil {
		return webdriver.Rect{}, err
	}
	return webdriver.Rect{
		Point: webdriver.Point{X: round(b.X), Y: round(b.Y)},
		Size:  webdriver.Size{Width: round(b.Width), Height: round(b.Height)},
	}, nil
}

func round(f float64) int { return int(math.Round(f)) }

func (e *element) Screenshot(ctx context.Context) ([]byte, error) {
	return e.on(ctx).Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
}
