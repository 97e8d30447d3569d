package event

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/timvw/webtrace/internal/webdriver"
)

func intPtr(i int) *int { return &i }

func TestPayloadParams(t *testing.T) {
	tests := []struct {
		name           string
		payload        Payload
		param1, param2 string
	}{
		{"navigation", Navigation{URL: "https://shop.test/"}, "https://shop.test/", ""},
		{"lookup", Query{By: "css=.item"}, "css=.item", ""},
		{"attribute of located element", Query{By: "id=q", Name: "value"}, "id=q", "value"},
		{"attribute name only", Query{Name: "color"}, "color", ""},
		{"script", Script{Source: "return 1"}, "return 1", ""},
		{"script with args", Script{Source: "f(arguments)", Args: []string{"a", "1", "null"}}, "f(arguments)", "a,1,null"},
		{"cookie", CookieRef{Name: "sid"}, "sid", ""},
		{"keys", Keys{Text: "alice"}, "alice", ""},
		{"masked keys", Keys{Text: "s3cret", Masked: true}, Mask, ""},
		{"pointer", Pointer{At: &webdriver.Point{X: 3, Y: 4}}, "x:3,y:4 in view port", ""},
		{"pointer at unknown position", Pointer{}, "x:<unknown>,y:<unknown> in view port", ""},
		{
			"pointer with offset",
			Pointer{At: &webdriver.Point{X: 10, Y: 20}, Offset: &webdriver.Point{X: -5, Y: 7}},
			"x:10,y:20 in view port", "x:-5,y:7 offset",
		},
		{"timeout", Timeout{Duration: 1500 * time.Millisecond}, "1.5s", ""},
		{"window size", Window{Size: &webdriver.Size{Width: 1024, Height: 768}}, "768x1024", ""},
		{"window position", Window{Position: &webdriver.Point{X: 5, Y: 6}}, "x:5,y:6", ""},
		{"window handle", Window{Handle: "w-2"}, "w-2", ""},
		{"frame index", Frame{Index: intPtr(0)}, "0", ""},
		{"frame name", Frame{Name: "promo"}, "promo", ""},
		{"failure", Failure{Type: "error", Message: "boom"}, "Exception Type: error, message: boom", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Record{Payload: tt.payload}
			assert.Equal(t, tt.param1, r.Param1())
			assert.Equal(t, tt.param2, r.Param2())
		})
	}
}

func TestRecordWithoutPayload(t *testing.T) {
	r := &Record{Seq: 4, Phase: AfterGather, Command: GetTitle, ReturnValue: "Home"}
	assert.Empty(t, r.Param1())
	assert.Empty(t, r.Param2())
	assert.False(t, r.HasParams())
	assert.Equal(t, "#4 AfterGather getTitle -> Home", r.String())
}

func TestRecordString(t *testing.T) {
	r := &Record{
		Seq:     2,
		Phase:   BeforeAction,
		Command: MouseMoveWithOffset,
		Locator: "id=menu",
		Payload: Pointer{At: &webdriver.Point{X: 1, Y: 2}, Offset: &webdriver.Point{X: 3, Y: 4}},
	}
	assert.True(t, r.HasParams())
	assert.Equal(t, "#2 BeforeAction mouseMoveWithOffset [id=menu] (x:1,y:2 in view port, x:3,y:4 offset)", r.String())
}

func TestMaskedKeys(t *testing.T) {
	assert.Equal(t, Keys{Masked: true}, MaskedKeys("id=Password", "hunter2"))
	assert.Equal(t, Keys{Text: "alice"}, MaskedKeys("id=user", "alice"))
}

func TestJoinArgs(t *testing.T) {
	assert.Empty(t, JoinArgs(nil))
	assert.Equal(t, "x", JoinArgs([]string{"x"}))
	assert.Equal(t, "x,,y", JoinArgs([]string{"x", "", "y"}))
}

type namedElement struct {
	webdriver.Element
	id, loc string
}

func (e *namedElement) ID() string      { return e.id }
func (e *namedElement) Locator() string { return e.loc }

func TestDescribeElements(t *testing.T) {
	located := &namedElement{id: "e1", loc: "css=.row"}
	anonymous := &namedElement{id: "e2"}
	var missing *namedElement

	assert.Equal(t, "css=.row", DescribeElement(located))
	assert.Equal(t, "[element e2]", DescribeElement(anonymous))
	assert.Empty(t, DescribeElement(nil))
	assert.Empty(t, DescribeElement(missing), "typed nil pointer")

	assert.Empty(t, DescribeElements(nil))
	assert.Equal(t, "css=.row", DescribeElements([]webdriver.Element{located}))
	assert.Equal(t, "css=.row and 2 more", DescribeElements([]webdriver.Element{located, anonymous, located}))
}

func TestDescribeArgs(t *testing.T) {
	el := &namedElement{id: "e1", loc: "id=go"}
	assert.Nil(t, DescribeArgs(nil))
	assert.Equal(t,
		[]string{"null", "id=go", "text", "x:1,y:2", "42", "true"},
		DescribeArgs([]any{nil, el, "text", webdriver.Point{X: 1, Y: 2}, 42, true}))
}

func TestReturnFormatting(t *testing.T) {
	assert.Equal(t, "false", FormatBool(false))
	assert.Equal(t, "<3 bytes>", FormatBytes([]byte("png")))
	assert.Equal(t, "sid,theme", FormatCookies([]webdriver.Cookie{{Name: "sid"}, {Name: "theme"}}))
	assert.Empty(t, FormatCookies(nil))
}

type staleError struct{ loc string }

func (e *staleError) Error() string { return "stale " + e.loc }

func TestErrorType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), "error"},
		{"wrapped sentinel", fmt.Errorf("click: %w", errors.New("gone")), "error"},
		{"custom type", &staleError{loc: "id=a"}, "event.staleError"},
		{"wrapped custom type", fmt.Errorf("a: %w", fmt.Errorf("b: %w", &staleError{})), "event.staleError"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorType(tt.err))
		})
	}
}

func TestCommandCatalogue(t *testing.T) {
	all := Commands()
	assert.Len(t, all, 72)

	seen := make(map[string]bool, len(all))
	for _, c := range all {
		assert.False(t, seen[c.Short()], "duplicate short name %s", c.Short())
		seen[c.Short()] = true

		got, ok := ParseCommand(c.Short())
		assert.True(t, ok, c.Short())
		assert.Equal(t, c, got)
	}

	_, ok := ParseCommand("hover")
	assert.False(t, ok)
	_, ok = ParseCommand("unknown")
	assert.False(t, ok)

	assert.Equal(t, "WebElement.click", ClickElement.Long())
	assert.Equal(t, "WebDriver.Navigation.back", Back.Long())
	assert.Equal(t, FamilyMouse, DoubleClick.Family())
	assert.Equal(t, "unknown", Command(999).Short())
}

func TestPhaseForCommand(t *testing.T) {
	assert.Equal(t, BeforeAction, BeforePhase(ClickElement))
	assert.Equal(t, AfterAction, AfterPhase(ClickElement))
	assert.Equal(t, BeforeGather, BeforePhase(GetText))
	assert.Equal(t, AfterGather, AfterPhase(GetText))
	assert.True(t, BeforeGather.IsBefore())
	assert.True(t, AfterAction.IsAfter())
	assert.False(t, Exception.IsBefore() || Exception.IsAfter())
}
