package journey

import (
	"fmt"
	"strings"
)

// Step is a coarse, one-way stage of the journey.
type Step int

const (
	StepUnlock Step = iota
	StepSecret
	StepMilestones
	StepProposal
	StepMemories
	StepTreasure
	StepFinal
)

var stepNames = [...]string{
	StepUnlock:     "UNLOCK",
	StepSecret:     "SECRET",
	StepMilestones: "MILESTONES",
	StepProposal:   "PROPOSAL",
	StepMemories:   "MEMORIES",
	StepTreasure:   "TREASURE",
	StepFinal:      "FINAL",
}

// AllSteps returns every step in journey order.
func AllSteps() []Step {
	steps := make([]Step, len(stepNames))
	for i := range stepNames {
		steps[i] = Step(i)
	}
	return steps
}

// Valid reports whether s is one of the defined steps.
func (s Step) Valid() bool {
	return s >= 0 && int(s) < len(stepNames)
}

func (s Step) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Step) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid step %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Step) UnmarshalText(text []byte) error {
	parsed, err := ParseStep(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStep parses a step name, ignoring case and surrounding space.
func ParseStep(name string) (Step, error) {
	want := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range stepNames {
		if n == want {
			return Step(i), nil
		}
	}
	return 0, fmt.Errorf("unknown step %q", name)
}
