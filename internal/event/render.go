package event

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/timvw/webtrace/internal/webdriver"
)

// DescribeElement returns the element's locator, or a synthesized
// description when it was not found through a locator.
func DescribeElement(el webdriver.Element) string {
	if isNil(el) {
		return ""
	}
	if loc := el.Locator(); loc != "" {
		return loc
	}
	return fmt.Sprintf("[element %s]", el.ID())
}

// DescribeElements renders the first element's locator and how many follow.
func DescribeElements(els []webdriver.Element) string {
	switch len(els) {
	case 0:
		return ""
	case 1:
		return DescribeElement(els[0])
	}
	return fmt.Sprintf("%s and %d more", DescribeElement(els[0]), len(els)-1)
}

// DescribeArg renders a script argument.
func DescribeArg(arg any) string {
	switch v := arg.(type) {
	case nil:
		return "null"
	case webdriver.Element:
		return DescribeElement(v)
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(arg)
}

// DescribeArgs renders each script argument.
func DescribeArgs(args []any) []string {
	if len(args) == 0 {
		return nil
	}
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = DescribeArg(a)
	}
	return out
}

func FormatBool(b bool) string { return strconv.FormatBool(b) }

// FormatCookies renders cookie names as a comma-separated list.
func FormatCookies(cs []webdriver.Cookie) string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name
	}
	return strings.Join(names, ",")
}

func FormatBytes(b []byte) string { return fmt.Sprintf("<%d bytes>", len(b)) }

// ErrorType names the most specific error in err's chain.
func ErrorType(err error) string {
	if err == nil {
		return ""
	}
	inner := err
	for {
		next := errors.Unwrap(inner)
		if next == nil {
			break
		}
		inner = next
	}
	name := strings.TrimPrefix(fmt.Sprintf("%T", inner), "*")
	if name == "errors.errorString" {
		return "error"
	}
	return name
}

func isNil(el webdriver.Element) bool {
	if el == nil {
		return true
	}
	v := reflect.ValueOf(el)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
