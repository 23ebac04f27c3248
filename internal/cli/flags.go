package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/alexanderramin/aionboard/internal/domain"
	"github.com/alexanderramin/aionboard/internal/planner"
)

const dateLayout = "2006-01-02"

// planInputFlags collects the generator inputs shared by commands that build
// a plan without a stored profile.
type planInputFlags struct {
	persona     string
	workType    string
	frequency   string
	timeWasters []string
	goal        string
}

func (f *planInputFlags) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("plan-input", pflag.ContinueOnError)
	fs.StringVar(&f.persona, "persona", "", "Persona, e.g. practical-adopter")
	fs.StringVar(&f.workType, "work-type", "", "Work type, e.g. technical")
	fs.StringVar(&f.frequency, "frequency", "", "daily, every-other, 3-times, twice or weekly")
	fs.StringSliceVar(&f.timeWasters, "time-waster", nil, "Time wasters to prioritize (repeatable)")
	fs.StringVar(&f.goal, "goal", "", "Success metric")
	return fs
}

func (f *planInputFlags) input() (planner.Input, error) {
	p := domain.Persona(f.persona)
	if !p.Valid() {
		return planner.Input{}, fmt.Errorf("unknown persona %q", f.persona)
	}
	return planner.Input{
		Persona:     p,
		WorkType:    f.workType,
		Frequency:   f.frequency,
		TimeWasters: f.timeWasters,
		Goal:        f.goal,
	}, nil
}

// parseStartFlag parses an optional YYYY-MM-DD date. Empty means zero, which
// services treat as today.
func parseStartFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q: %w", s, err)
	}
	return t, nil
}
