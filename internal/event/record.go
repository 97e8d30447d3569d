// Package event holds the record produced for every intercepted browser
// command and the catalogue of commands that can be intercepted.
package event

import (
	"fmt"
	"strings"
	"time"
)

// Record is one Before, After or Exception occurrence of a command.
// Records are not modified after the dispatcher hands them to listeners.
type Record struct {
	Seq     int64
	Phase   Phase
	Command Command
	Locator string
	Payload Payload

	ReturnValue string
	// ReturnObject is the live result (an element, a screenshot) for
	// listeners that need it. It is never serialized.
	ReturnObject any
	// Err is set on Exception records.
	Err error

	// Time carries a monotonic clock reading.
	Time time.Time
}

// Param1 renders the first legacy parameter string of the payload.
func (r *Record) Param1() string {
	if r.Payload == nil {
		return ""
	}
	p, _ := r.Payload.params()
	return p
}

// Param2 renders the second legacy parameter string of the payload.
func (r *Record) Param2() string {
	if r.Payload == nil {
		return ""
	}
	_, p := r.Payload.params()
	return p
}

// HasParams reports whether either parameter is non-empty.
func (r *Record) HasParams() bool {
	return r.Param1() != "" || r.Param2() != ""
}

// Since returns the time elapsed between other and r.
func (r *Record) Since(other *Record) time.Duration {
	return r.Time.Sub(other.Time)
}

func (r *Record) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s %s", r.Seq, r.Phase, r.Command.Short())
	if r.Locator != "" {
		fmt.Fprintf(&b, " [%s]", r.Locator)
	}
	if p1, p2 := r.Param1(), r.Param2(); p1 != "" || p2 != "" {
		b.WriteString(" (")
		b.WriteString(p1)
		if p2 != "" {
			b.WriteString(", ")
			b.WriteString(p2)
		}
		b.WriteString(")")
	}
	if r.ReturnValue != "" {
		fmt.Fprintf(&b, " -> %s", r.ReturnValue)
	}
	return b.String()
}
