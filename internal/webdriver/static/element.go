package static

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/timvw/webtrace/internal/webdriver"
)

type element struct {
	d   *Driver
	doc *goquery.Document
	sel *goquery.Selection
	id  string
	loc string
}

var _ webdriver.Element = (*element)(nil)

func (d *Driver) wrapLocked(doc *goquery.Document, sel *goquery.Selection, loc string) *element {
	return &element{d: d, doc: doc, sel: sel, id: d.idFor(sel.Nodes[0]), loc: loc}
}

func (d *Driver) findAllLocked(doc *goquery.Document, scope *goquery.Selection, by webdriver.By) ([]webdriver.Element, error) {
	sel, err := query(scope, by)
	if err != nil {
		return nil, err
	}
	out := make([]webdriver.Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, d.wrapLocked(doc, s, by.String()))
	})
	return out, nil
}

func (d *Driver) findLocked(doc *goquery.Document, scope *goquery.Selection, by webdriver.By) (webdriver.Element, error) {
	sel, err := query(scope, by)
	if err != nil {
		return nil, err
	}
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%s: %w", by, webdriver.ErrNoSuchElement)
	}
	return d.wrapLocked(doc, sel.First(), by.String()), nil
}

func query(scope *goquery.Selection, by webdriver.By) (*goquery.Selection, error) {
	if by.Strategy == webdriver.StrategyLinkText {
		return scope.Find("a").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return normalizeSpace(s.Text()) == by.Value
		}), nil
	}
	css, ok := by.CSS()
	if !ok {
		return nil, fmt.Errorf("locate %s: %w", by, webdriver.ErrUnsupported)
	}
	return scope.Find(css), nil
}

// own checks that el belongs to this driver and to a document still shown.
// The caller holds d.mu.
func (d *Driver) own(el webdriver.Element) (*element, error) {
	e, ok := el.(*element)
	if !ok || e.d != d {
		return nil, fmt.Errorf("foreign element %T: %w", el, webdriver.ErrNoSuchElement)
	}
	return e, e.checkLocked()
}

func (e *element) checkLocked() error {
	if e.doc == e.d.top {
		return nil
	}
	for _, f := range e.d.frames {
		if e.doc == f {
			return nil
		}
	}
	return fmt.Errorf("%s: %w", e.loc, webdriver.ErrStaleElement)
}

// lock takes the driver lock and verifies the element is still attached.
func (e *element) lock() error {
	if err := e.d.lock(); err != nil {
		return err
	}
	if err := e.checkLocked(); err != nil {
		e.d.mu.Unlock()
		return err
	}
	return nil
}

func (e *element) ID() string      { return e.id }
func (e *element) Locator() string { return e.loc }

func (e *element) tag() string { return goquery.NodeName(e.sel) }

func (e *element) inputType() string {
	return strings.ToLower(e.sel.AttrOr("type", "text"))
}

// Click follows links, toggles check boxes and radio buttons, and submits
// the form of a submit button.
func (e *element) Click(ctx context.Context) error {
	if err := e.lock(); err != nil {
		return err
	}
	defer e.d.mu.Unlock()
	if e.isDisabled() {
		return nil
	}
	e.d.active = e

	switch tag := e.tag(); {
	case tag == "a":
		href, ok := e.sel.Attr("href")
		if !ok || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return nil
		}
		return e.d.navigateLocked(ctx, resolve(e.d.cur.url(), href))
	case tag == "input" && e.inputType() == "checkbox":
		toggle(e.sel, "checked")
	case tag == "input" && e.inputType() == "radio":
		if name, ok := e.sel.Attr("name"); ok {
			e.doc.Find(fmt.Sprintf("input[type=radio][name=%q]", name)).RemoveAttr("checked")
		}
		e.sel.SetAttr("checked", "checked")
	case tag == "option":
		e.sel.Closest("select").Find("option").RemoveAttr("selected")
		e.sel.SetAttr("selected", "selected")
	case isSubmitButton(e.sel):
		return e.submitLocked(ctx)
	}
	return nil
}

func isSubmitButton(s *goquery.Selection) bool {
	switch goquery.NodeName(s) {
	case "button":
		return strings.ToLower(s.AttrOr("type", "submit")) == "submit"
	case "input":
		t := strings.ToLower(s.AttrOr("type", ""))
		return t == "submit" || t == "image"
	}
	return false
}

func toggle(s *goquery.Selection, attr string) {
	if _, ok := s.Attr(attr); ok {
		s.RemoveAttr(attr)
		return
	}
	s.SetAttr(attr, attr)
}

func (e *element) Submit(ctx context.Context) error {
	if err := e.lock(); err != nil {
		return err
	}
	defer e.d.mu.Unlock()
	return e.submitLocked(ctx)
}

// submitLocked navigates to the enclosing form's action. GET forms carry
// their field values in the query string.
func (e *element) submitLocked(ctx context.Context) error {
	form := e.sel.Closest("form")
	if goquery.NodeName(e.sel) == "form" {
		form = e.sel
	}
	if form.Length() == 0 {
		return fmt.Errorf("submit %s: not inside a form: %w", e.loc, webdriver.ErrNoSuchElement)
	}
	action := resolve(e.d.cur.url(), form.AttrOr("action", e.d.cur.url()))
	if strings.EqualFold(form.AttrOr("method", "get"), "get") {
		action = withQuery(action, formValues(form))
	}
	return e.d.navigateLocked(ctx, action)
}

func (e *element) SendKeys(_ context.Context, text string) error {
	if err := e.lock(); err != nil {
		return err
	}
	defer e.d.mu.Unlock()
	if e.isDisabled() {
		return fmt.Errorf("send keys to %s: element is disabled", e.loc)
	}
	e.d.active = e
	if e.tag() == "textarea" {
		e.sel.SetText(e.sel.Text() + text)
		return nil
	}
	e.sel.SetAttr("value", e.sel.AttrOr("value", "")+text)
	return nil
}

func (e *element) UploadFile(_ context.Context, path string) error {
	if err := e.lock(); err != nil {
		return err
	}
	defer e.d.mu.Unlock()
	if e.tag() != "input" || e.inputType() != "file" {
		return fmt.Errorf("upload to %s: not a file input", e.loc)
	}
	e.sel.SetAttr("value", filepath.Base(path))
	return nil
}

func (e *element) Clear(context.Context) error {
	if err := e.lock(); err != nil {
		return err
	}
	defer e.d.mu.Unlock()
	if e.tag() == "textarea" {
		e.sel.SetText("")
		return nil
	}
	e.sel.RemoveAttr("value")
	return nil
}

func (e *element) TagName(context.Context) (string, error) {
	if err := e.lock(); err != nil {
		return "", err
	}
	defer e.d.mu.Unlock()
	return e.tag(), nil
}

// Attribute returns "" for attributes the element does not carry.
func (e *element) Attribute(_ context.Context, name string) (string, error) {
	if err := e.lock(); err != nil {
		return "", err
	}
	defer e.d.mu.Unlock()
	if name == "value" && e.tag() == "textarea" {
		return e.sel.Text(), nil
	}
	return e.sel.AttrOr(name, ""), nil
}

func (e *element) IsSelected(context.Context) (bool, error) {
	if err := e.lock(); err != nil {
		return false, err
	}
	defer e.d.mu.Unlock()
	_, checked := e.sel.Attr("checked")
	_, selected := e.sel.Attr("selected")
	return checked || selected, nil
}

func (e *element) IsEnabled(context.Context) (bool, error) {
	if err := e.lock(); err != nil {
		return false, err
	}
	defer e.d.mu.Unlock()
	return !e.isDisabled(), nil
}

func (e *element) isDisabled() bool {
	_, ok := e.sel.Attr("disabled")
	return ok || e.sel.ParentsFiltered("fieldset[disabled]").Length() > 0
}

// IsDisplayed honors the hidden attribute, hidden inputs and inline
// display:none or visibility:hidden on the element and its ancestors.
func (e *element) IsDisplayed(context.Context) (bool, error) {
	if err := e.lock(); err != nil {
		return false, err
	}
	defer e.d.mu.Unlock()
	if e.tag() == "input" && e.inputType() == "hidden" {
		return false, nil
	}
	for s := e.sel; s.Length() > 0; s = s.Parent() {
		if _, ok := s.Attr("hidden"); ok {
			return false, nil
		}
		if inlineStyle(s, "display") == "none" || inlineStyle(s, "visibility") == "hidden" {
			return false, nil
		}
	}
	return true, nil
}

func (e *element) Text(context.Context) (string, error) {
	if err := e.lock(); err != nil {
		return "", err
	}
	defer e.d.mu.Unlock()
	return normalizeSpace(e.sel.Text()), nil
}

// CSSValue reads inline styles only.
func (e *element) CSSValue(_ context.Context, property string) (string, error) {
	if err := e.lock(); err != nil {
		return "", err
	}
	defer e.d.mu.Unlock()
	return inlineStyle(e.sel, property), nil
}

func (e *element) FindElement(_ context.Context, by webdriver.By) (webdriver.Element, error) {
	if err := e.lock(); err != nil {
		return nil, err
	}
	defer e.d.mu.Unlock()
	return e.d.findLocked(e.doc, e.sel, by)
}

func (e *element) FindElements(_ context.Context, by webdriver.By) ([]webdriver.Element, error) {
	if err := e.lock(); err != nil {
		return nil, err
	}
	defer e.d.mu.Unlock()
	return e.d.findAllLocked(e.doc, e.sel, by)
}

func (e *element) Location(context.Context) (webdriver.Point, error) {
	return webdriver.Point{}, fmt.Errorf("element location: %w", webdriver.ErrUnsupported)
}

func (e *element) Size(context.Context) (webdriver.Size, error) {
	return webdriver.Size{}, fmt.Errorf("element size: %w", webdriver.ErrUnsupported)
}

func (e *element) Rect(context.Context) (webdriver.Rect, error) {
	return webdriver.Rect{}, fmt.Errorf("element rect: %w", webdriver.ErrUnsupported)
}

func (e *element) Screenshot(context.Context) ([]byte, error) {
	if err := e.lock(); err != nil {
		return nil, err
	}
	defer e.d.mu.Unlock()
	return placeholderPNG(webdriver.Size{Width: 64, Height: 16})
}

func inlineStyle(s *goquery.Selection, property string) string {
	for _, decl := range strings.Split(s.AttrOr("style", ""), ";") {
		k, v, ok := strings.Cut(decl, ":")
		if ok && strings.EqualFold(strings.TrimSpace(k), property) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func normalizeSpace(s string) string { return strings.Join(strings.Fields(s), " ") }
