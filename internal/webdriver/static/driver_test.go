package static

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timvw/webtrace/internal/webdriver"
)

const (
	loginURL = "https://shop.test/login"
	homeURL  = "https://shop.test/home"
)

var site = map[string]string{
	loginURL: `<html><head><title>Sign in</title></head><body>
		<form action="/home" method="get">
			<input id="user" name="user">
			<input id="password" name="password" type="password">
			<input id="remember" name="remember" type="checkbox" value="yes">
			<input type="hidden" name="csrf" value="t0k">
			<button id="go" type="submit">Sign in</button>
		</form>
		<a id="help" href="/help">Need help?</a>
		<p class="note" style="display: none">secret</p>
		<iframe name="promo" srcdoc="<p id='deal'>50% off</p>"></iframe>
	</body></html>`,
	homeURL: `<html><head><title>Home</title></head><body><h1>Welcome</h1></body></html>`,
}

func newSite(t *testing.T, opts ...Option) *Driver {
	t.Helper()
	d := New(append([]Option{WithPages(site)}, opts...)...)
	require.NoError(t, d.Get(context.Background(), loginURL))
	return d
}

func TestNavigationAndHistory(t *testing.T) {
	ctx := context.Background()
	d := newSite(t)

	title, err := d.Title(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sign in", title)

	require.NoError(t, d.To(ctx, homeURL))
	require.NoError(t, d.Back(ctx))
	u, _ := d.CurrentURL(ctx)
	assert.Equal(t, loginURL, u)

	require.NoError(t, d.Forward(ctx))
	u, _ = d.CurrentURL(ctx)
	assert.Equal(t, homeURL, u)

	// Moving past the end of history stays put.
	require.NoError(t, d.Forward(ctx))
	u, _ = d.CurrentURL(ctx)
	assert.Equal(t, homeURL, u)

	err = d.Get(ctx, "https://elsewhere.test/")
	assert.ErrorIs(t, err, ErrUnknownPage)
}

func TestFormSubmission(t *testing.T) {
	ctx := context.Background()
	d := newSite(t)

	user, err := d.FindElement(ctx, webdriver.ByID("user"))
	require.NoError(t, err)
	assert.Equal(t, "id=user", user.Locator())
	require.NoError(t, user.SendKeys(ctx, "alice"))

	remember, err := d.FindElement(ctx, webdriver.ByID("remember"))
	require.NoError(t, err)
	require.NoError(t, remember.Click(ctx))
	selected, err := remember.IsSelected(ctx)
	require.NoError(t, err)
	assert.True(t, selected)

	v, err := user.Attribute(ctx, "value")
	require.NoError(t, err)
	assert.Equal(t, "alice", v)

	btn, err := d.FindElement(ctx, webdriver.ByCSS("#go"))
	require.NoError(t, err)
	require.NoError(t, btn.Click(ctx))

	u, _ := d.CurrentURL(ctx)
	assert.Equal(t, "https://shop.test/home?csrf=t0k&password=&remember=yes&user=alice", u)
	title, _ := d.Title(ctx)
	assert.Equal(t, "Home", title)

	_, err = user.Text(ctx)
	assert.ErrorIs(t, err, webdriver.ErrStaleElement)
}

func TestElementQueries(t *testing.T) {
	ctx := context.Background()
	d := newSite(t)

	note, err := d.FindElement(ctx, webdriver.ByClass("note"))
	require.NoError(t, err)
	shown, err := note.IsDisplayed(ctx)
	require.NoError(t, err)
	assert.False(t, shown)
	display, err := note.CSSValue(ctx, "display")
	require.NoError(t, err)
	assert.Equal(t, "none", display)

	help, err := d.FindElement(ctx, webdriver.ByLinkText("Need help?"))
	require.NoError(t, err)
	tag, _ := help.TagName(ctx)
	assert.Equal(t, "a", tag)

	inputs, err := d.FindElements(ctx, webdriver.ByTagName("input"))
	require.NoError(t, err)
	assert.Len(t, inputs, 4)

	again, err := d.FindElement(ctx, webdriver.ByID("user"))
	require.NoError(t, err)
	assert.Equal(t, inputs[0].ID(), again.ID(), "same node keeps its handle")

	_, err = d.FindElement(ctx, webdriver.ByCSS("#nope"))
	assert.ErrorIs(t, err, webdriver.ErrNoSuchElement)
	_, err = d.FindElement(ctx, webdriver.ByXPath("//a"))
	assert.ErrorIs(t, err, webdriver.ErrUnsupported)
	_, err = help.Location(ctx)
	assert.ErrorIs(t, err, webdriver.ErrUnsupported)
}

func TestFrames(t *testing.T) {
	ctx := context.Background()
	d := newSite(t)

	require.NoError(t, d.SwitchToFrameName(ctx, "promo"))
	deal, err := d.FindElement(ctx, webdriver.ByID("deal"))
	require.NoError(t, err)
	text, _ := deal.Text(ctx)
	assert.Equal(t, "50% off", text)

	require.NoError(t, d.SwitchToDefaultContent(ctx))
	_, err = d.FindElement(ctx, webdriver.ByID("deal"))
	assert.ErrorIs(t, err, webdriver.ErrNoSuchElement)

	assert.ErrorIs(t, d.SwitchToFrameIndex(ctx, 3), webdriver.ErrNoSuchFrame)

	user, err := d.FindElement(ctx, webdriver.ByID("user"))
	require.NoError(t, err)
	assert.ErrorIs(t, d.SwitchToFrameElement(ctx, user), webdriver.ErrNoSuchFrame)
}

func TestAlertsCookiesAndWindows(t *testing.T) {
	ctx := context.Background()
	d := newSite(t)

	assert.ErrorIs(t, d.SwitchToAlert(ctx), webdriver.ErrNoAlert)
	d.Alert("Are you sure?")
	require.NoError(t, d.SwitchToAlert(ctx))
	text, err := d.AlertText(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Are you sure?", text)
	require.NoError(t, d.SendAlertText(ctx, "yes"))
	require.NoError(t, d.AcceptAlert(ctx))
	assert.Equal(t, "yes", d.PromptValue())
	assert.ErrorIs(t, d.DismissAlert(ctx), webdriver.ErrNoAlert)

	require.NoError(t, d.AddCookie(ctx, webdriver.Cookie{Name: "sid", Value: "1"}))
	require.NoError(t, d.AddCookie(ctx, webdriver.Cookie{Name: "sid", Value: "2"}))
	c, err := d.CookieNamed(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, "2", c.Value)
	assert.Equal(t, "/", c.Path)
	require.NoError(t, d.DeleteAllCookies(ctx))
	_, err = d.CookieNamed(ctx, "sid")
	assert.ErrorIs(t, err, webdriver.ErrNoSuchCookie)

	second := d.OpenWindow()
	handles, _ := d.WindowHandles(ctx)
	assert.Len(t, handles, 2)
	require.NoError(t, d.SwitchToWindow(ctx, second))
	u, _ := d.CurrentURL(ctx)
	assert.Equal(t, "about:blank", u)
	require.NoError(t, d.Close(ctx))
	assert.ErrorIs(t, d.SwitchToWindow(ctx, second), webdriver.ErrNoSuchWindow)

	require.NoError(t, d.Quit(ctx))
	_, err = d.Title(ctx)
	assert.ErrorIs(t, err, webdriver.ErrSessionClosed)
}

func TestScreenshotIsPNG(t *testing.T) {
	ctx := context.Background()
	d := newSite(t)
	require.NoError(t, d.SetWindowSize(ctx, webdriver.Size{Width: 800, Height: 600}))

	data, err := d.Screenshot(ctx)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 75, img.Bounds().Dy())
}

func TestScriptsNeedScriptFunc(t *testing.T) {
	ctx := context.Background()
	d := newSite(t)
	_, err := d.ExecuteScript(ctx, "return 1")
	assert.ErrorIs(t, err, webdriver.ErrUnsupported)

	var got []any
	d = newSite(t, WithScript(func(_ context.Context, _ string, args []any) (any, error) {
		got = args
		return "done", nil
	}))
	res, err := d.ExecuteScript(ctx, "return arguments[0]", 7)
	require.NoError(t, err)
	assert.Equal(t, "done", res)
	assert.Equal(t, []any{7}, got)
}

func TestFetchesOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("sid"); err == nil {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<title>" + c.Value + "</title>"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	ctx := context.Background()
	d := New(WithHTTPClient(srv.Client()))
	require.NoError(t, d.AddCookie(ctx, webdriver.Cookie{Name: "sid", Value: "fetched"}))
	require.NoError(t, d.Get(ctx, srv.URL+"/page"))
	title, err := d.Title(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fetched", title)

	require.NoError(t, d.DeleteCookieNamed(ctx, "sid"))
	assert.Error(t, d.Refresh(ctx))
}
