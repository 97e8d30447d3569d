package scenario

import (
	"context"
	"fmt"
	"strconv"

	"github.com/timvw/webtrace/internal/webdriver"
)

// ExpectationError reports a check step whose value differed from its want.
type ExpectationError struct {
	Step string
	Want string
	Got  string
}

func (e *ExpectationError) Error() string {
	return fmt.Sprintf("%s: want %q, got %q", e.Step, e.Want, e.Got)
}

func (s Step) String() string {
	switch {
	case s.Locator.set() > 0:
		return s.Do + " " + s.By().String()
	case s.URL != "":
		return s.Do + " " + s.URL
	case s.Key != "":
		return s.Do + " " + s.Key
	case s.Frame != "":
		return s.Do + " " + s.Frame
	}
	return s.Do
}

// Run performs the step against d.
func (s Step) Run(ctx context.Context, d webdriver.Driver) error {
	got, checked, err := s.run(ctx, d)
	if err != nil {
		return fmt.Errorf("%s: %w", s, err)
	}
	if checked && s.Want != nil && got != *s.Want {
		return &ExpectationError{Step: s.String(), Want: *s.Want, Got: got}
	}
	return nil
}

// run returns the observed value of check steps, with checked set.
func (s Step) run(ctx context.Context, d webdriver.Driver) (got string, checked bool, err error) {
	k := kinds[s.Do]
	var el webdriver.Element
	if k.element && s.Do != "count" {
		if el, err = d.FindElement(ctx, s.By()); err != nil {
			return "", false, err
		}
	}

	switch s.Do {
	case "get":
		return "", false, d.Get(ctx, s.URL)
	case "to":
		return "", false, d.To(ctx, s.URL)
	case "back":
		return "", false, d.Back(ctx)
	case "forward":
		return "", false, d.Forward(ctx)
	case "refresh":
		return "", false, d.Refresh(ctx)
	case "title":
		got, err = d.Title(ctx)
		return got, true, err
	case "url":
		got, err = d.CurrentURL(ctx)
		return got, true, err

	case "click":
		return "", false, el.Click(ctx)
	case "submit":
		return "", false, el.Submit(ctx)
	case "type":
		return "", false, el.SendKeys(ctx, s.Text)
	case "upload":
		return "", false, el.UploadFile(ctx, s.Text)
	case "clear":
		return "", false, el.Clear(ctx)
	case "text":
		got, err = el.Text(ctx)
		return got, true, err
	case "attribute":
		got, err = el.Attribute(ctx, s.Attr)
		return got, true, err
	case "css":
		got, err = el.CSSValue(ctx, s.Attr)
		return got, true, err
	case "displayed":
		return boolCheck(el.IsDisplayed(ctx))
	case "enabled":
		return boolCheck(el.IsEnabled(ctx))
	case "selected":
		return boolCheck(el.IsSelected(ctx))
	case "count":
		els, err := d.FindElements(ctx, s.By())
		return strconv.Itoa(len(els)), true, err

	case "script", "async_script":
		var res any
		if s.Do == "script" {
			res, err = d.ExecuteScript(ctx, s.Script, s.Args...)
		} else {
			res, err = d.ExecuteAsyncScript(ctx, s.Script, s.Args...)
		}
		if res == nil {
			return "", true, err
		}
		return fmt.Sprint(res), true, err
	case "keys":
		return "", false, d.SendKeys(ctx, s.Text)
	case "press":
		return "", false, d.PressKey(ctx, s.Key)
	case "release":
		return "", false, d.ReleaseKey(ctx, s.Key)

	case "add_cookie":
		return "", false, d.AddCookie(ctx, *s.Cookie)
	case "delete_cookie":
		return "", false, d.DeleteCookieNamed(ctx, s.Text)
	case "delete_cookies":
		return "", false, d.DeleteAllCookies(ctx)
	case "cookie":
		c, err := d.CookieNamed(ctx, s.Text)
		return c.Value, true, err

	case "frame":
		if i, convErr := strconv.Atoi(s.Frame); convErr == nil {
			return "", false, d.SwitchToFrameIndex(ctx, i)
		}
		return "", false, d.SwitchToFrameName(ctx, s.Frame)
	case "parent_frame":
		return "", false, d.SwitchToParentFrame(ctx)
	case "default_content":
		return "", false, d.SwitchToDefaultContent(ctx)

	case "alert_text":
		if err := d.SwitchToAlert(ctx); err != nil {
			return "", false, err
		}
		got, err = d.AlertText(ctx)
		return got, true, err
	case "alert_send":
		return "", false, d.SendAlertText(ctx, s.Text)
	case "accept":
		return "", false, d.AcceptAlert(ctx)
	case "dismiss":
		return "", false, d.DismissAlert(ctx)

	case "maximize":
		return "", false, d.Maximize(ctx)
	case "screenshot":
		_, err = d.Screenshot(ctx)
		return "", false, err
	case "close":
		return "", false, d.Close(ctx)
	}
	return "", false, fmt.Errorf("unknown action %q", s.Do)
}

func boolCheck(v bool, err error) (string, bool, error) {
	return strconv.FormatBool(v), true, err
}
