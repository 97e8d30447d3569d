package event

// Phase is where in a command's lifetime a Record was captured.
type Phase int

const (
	BeforeAction Phase = iota
	AfterAction
	BeforeGather
	AfterGather
	Exception
)

var phaseNames = [...]string{
	BeforeAction: "BeforeAction",
	AfterAction:  "AfterAction",
	BeforeGather: "BeforeGather",
	AfterGather:  "AfterGather",
	Exception:    "Exception",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "Phase(?)"
	}
	return phaseNames[p]
}

func (p Phase) IsBefore() bool { return p == BeforeAction || p == BeforeGather }

func (p Phase) IsAfter() bool { return p == AfterAction || p == AfterGather }

// BeforePhase returns the Before phase matching the command's class.
func BeforePhase(c Command) Phase {
	if c.IsAction() {
		return BeforeAction
	}
	return BeforeGather
}

// AfterPhase returns the After phase matching the command's class.
func AfterPhase(c Command) Phase {
	if c.IsAction() {
		return AfterAction
	}
	return AfterGather
}
