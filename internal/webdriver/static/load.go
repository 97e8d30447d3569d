package static

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/timvw/webtrace/internal/webdriver"
)

const dataHTMLPrefix = "data:text/html,"

// load resolves rawURL to a document: registered pages first (with and
// without the query string), then inline data URLs, then the network when a
// client is configured.
func (d *Driver) load(ctx context.Context, rawURL string) (*goquery.Document, error) {
	if src, ok := d.pages[rawURL]; ok {
		return parse(src), nil
	}
	if base, _, ok := strings.Cut(rawURL, "?"); ok {
		if src, ok := d.pages[base]; ok {
			return parse(src), nil
		}
	}
	switch {
	case rawURL == "about:blank":
		return blankDocument(), nil
	case strings.HasPrefix(rawURL, dataHTMLPrefix):
		src, err := url.PathUnescape(strings.TrimPrefix(rawURL, dataHTMLPrefix))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", rawURL, err)
		}
		return parse(src), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil || d.client == nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("load %s: %w", rawURL, ErrUnknownPage)
	}
	return d.fetch(ctx, u.String())
}

func (d *Driver) fetch(ctx context.Context, target string) (*goquery.Document, error) {
	if d.pageLoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.pageLoadTimeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", target, err)
	}
	req.Header.Set("User-Agent", d.userAgent)
	for _, c := range d.cookies {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", target, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("load %s: status %d", target, resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", target, err)
	}
	return doc, nil
}

// parse never fails: the HTML parser recovers from any input.
func parse(src string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return blankDocument()
	}
	return doc
}

func blankDocument() *goquery.Document {
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader("<html><head></head><body></body></html>"))
	return doc
}

// resolve interprets ref relative to base, keeping ref unchanged when either
// does not parse.
func resolve(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil || b.Scheme == "" || b.Scheme == "about" || b.Scheme == "data" {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

func withQuery(target string, v url.Values) string {
	if len(v) == 0 {
		return target
	}
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	u.RawQuery = v.Encode()
	return u.String()
}

// formValues collects the successful controls of a form.
func formValues(form *goquery.Selection) url.Values {
	v := url.Values{}
	form.Find("input[name], textarea[name], select[name]").Each(func(_ int, s *goquery.Selection) {
		if _, disabled := s.Attr("disabled"); disabled {
			return
		}
		name := s.AttrOr("name", "")
		switch goquery.NodeName(s) {
		case "textarea":
			v.Add(name, s.Text())
		case "select":
			opt := s.Find("option[selected]").First()
			if opt.Length() == 0 {
				opt = s.Find("option").First()
			}
			if opt.Length() > 0 {
				v.Add(name, opt.AttrOr("value", normalizeSpace(opt.Text())))
			}
		default:
			switch strings.ToLower(s.AttrOr("type", "text")) {
			case "submit", "button", "reset", "image", "file":
				return
			case "checkbox", "radio":
				if _, checked := s.Attr("checked"); !checked {
					return
				}
				v.Add(name, s.AttrOr("value", "on"))
			default:
				v.Add(name, s.AttrOr("value", ""))
			}
		}
	})
	return v
}

// placeholderPNG renders a blank image of the given size, scaled down so
// screenshots stay small.
func placeholderPNG(s webdriver.Size) ([]byte, error) {
	w, h := max(s.Width/8, 1), max(s.Height/8, 1)
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode screenshot: %w", err)
	}
	return buf.Bytes(), nil
}
