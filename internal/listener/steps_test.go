package listener

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timvw/webtrace/internal/event"
	"github.com/timvw/webtrace/internal/webdriver"
)

func feed(l Listener, recs ...*event.Record) {
	ctx := context.Background()
	for _, r := range recs {
		var hook Hook
		switch {
		case r.Phase == event.Exception:
			hook = ExceptionHook
		case r.Phase.IsBefore():
			hook, _ = Hooks(r.Command)
		default:
			_, hook = Hooks(r.Command)
		}
		hook(l, ctx, r, nil)
	}
}

func failure(seq int64, cmd event.Command, msg string) *event.Record {
	r := mkRecord(seq, event.Exception, cmd, 0)
	r.Payload = event.Failure{Type: "error", Message: msg}
	r.Err = errors.New(msg)
	return r
}

func TestStepsDescribeCompletedActions(t *testing.T) {
	get := mkRecord(1, event.AfterAction, event.Get, 0)
	get.Payload = event.Navigation{URL: "https://example.com"}

	beforeClick := mkRecord(2, event.BeforeAction, event.ClickElement, 0)
	beforeClick.Locator = "css=#login"
	click := mkRecord(2, event.AfterAction, event.ClickElement, 0)
	click.Locator = "css=#login"

	title := mkRecord(3, event.AfterGather, event.GetTitle, 0)
	title.ReturnValue = "Home"

	shown := mkRecord(3, event.AfterGather, event.IsDisplayed, 0)
	shown.Locator = "css=.banner"
	shown.ReturnValue = "false"

	size := mkRecord(3, event.AfterAction, event.SetWindowSize, 0)
	size.Payload = event.Window{Size: &webdriver.Size{Height: 600, Width: 800}}

	maximize := mkRecord(4, event.AfterAction, event.Maximize, 0)

	s := NewStepsSummarizer("")
	feed(s, get, beforeClick, click, title, shown, size, maximize)

	assert.Equal(t, []string{
		"Step 1: open page https://example.com",
		"Step 2: click on element css=#login",
		"Step 3: check element css=.banner is not visible",
		"Step 4: WebDriver.Window.setSize(600x800)",
		"Step 5: maximize",
	}, s.Lines())
}

func TestStepsCollapseRepeatedFailures(t *testing.T) {
	s := NewStepsSummarizer("")
	feed(s,
		failure(1, event.FindElementByDriver, "no such element"),
		failure(1, event.FindElementByDriver, "no such element"),
	)
	assert.Equal(t, []string{
		"Step 1: command findElementByWebDriver failed with error no such element",
	}, s.Lines())

	s = NewStepsSummarizer("")
	feed(s,
		failure(1, event.FindElementByDriver, "no such element"),
		failure(1, event.FindElementByDriver, "stale element"),
	)
	assert.Equal(t, []string{
		"Step 1: command findElementByWebDriver failed with error no such element",
		"Step 2: command findElementByWebDriver failed with error stale element",
	}, s.Lines())
}

func TestStepsMaskPasswords(t *testing.T) {
	r := mkRecord(1, event.AfterAction, event.SendKeysToElement, 0)
	r.Locator = "id=password"
	r.Payload = event.MaskedKeys(r.Locator, "hunter2")

	s := NewStepsSummarizer("")
	feed(s, r)
	assert.Equal(t, []string{"Step 1: enter text '********' into input field id=password"}, s.Lines())
}

func TestStepsCloseWritesScript(t *testing.T) {
	dir := t.TempDir()
	path := StepsPath(dir, "Login/works as admin")
	assert.Equal(t, filepath.Join(dir, "Login_works_as_admin.txt"), path)

	r := mkRecord(1, event.AfterAction, event.Refresh, 0)
	s := NewStepsSummarizer(path)
	feed(s, r)
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Step 1: press Refresh button\n", string(data))
}

func TestStepsWithoutPathStayInMemory(t *testing.T) {
	s := NewStepsSummarizer("")
	feed(s, mkRecord(1, event.AfterAction, event.Back, 0))
	assert.NoError(t, s.Close())
	assert.Len(t, s.Lines(), 1)
}
