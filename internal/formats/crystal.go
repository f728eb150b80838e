package formats

import (
	"strings"

	"github.com/ginjaninja78/reports-import/internal/args"
	"github.com/ginjaninja78/reports-import/internal/config"
	"github.com/ginjaninja78/reports-import/internal/converter"
	"github.com/ginjaninja78/reports-import/internal/engine"
)

// UnrecognizedFunctionBehavior decides what the Crystal engine does with
// formula functions it cannot translate.
type UnrecognizedFunctionBehavior int

const (
	// InsertWarning places a visible warning control where the function was.
	InsertWarning UnrecognizedFunctionBehavior = iota

	// Ignore drops the function silently.
	Ignore
)

func (b UnrecognizedFunctionBehavior) String() string {
	if b == Ignore {
		return config.BehaviorIgnore
	}
	return config.BehaviorInsertWarning
}

// ParseUnrecognizedFunctionBehavior returns Ignore for "Ignore" in any case
// and InsertWarning for everything else.
func ParseUnrecognizedFunctionBehavior(value string) UnrecognizedFunctionBehavior {
	if strings.EqualFold(value, config.BehaviorIgnore) {
		return Ignore
	}
	return InsertWarning
}

// SubArgUnrecognizedFunctionBehavior is the /crystal sub-argument name.
const SubArgUnrecognizedFunctionBehavior = "UnrecognizedFunctionBehavior"

// PlaceholderUnrecognizedFunctionBehavior is expanded in Crystal engine args.
const PlaceholderUnrecognizedFunctionBehavior = "unrecognized_function_behavior"

// CrystalBehavior reads the behavior from /crystal. The fallback applies only
// when the sub-argument is missing; given without a value it selects
// InsertWarning.
func CrystalBehavior(a *args.Map, fallback UnrecognizedFunctionBehavior) UnrecognizedFunctionBehavior {
	if a == nil {
		return fallback
	}

	sub := a.SubArgs(args.KeyCrystal)
	if !sub.Has(SubArgUnrecognizedFunctionBehavior) {
		return fallback
	}

	value, _ := sub.Lookup(SubArgUnrecognizedFunctionBehavior)
	return ParseUnrecognizedFunctionBehavior(value)
}

// Crystal converts Crystal Reports through an external engine. Subreports the
// engine splits out are passed to the subreport handler.
func Crystal(settings config.EngineSettings, fallback UnrecognizedFunctionBehavior) converter.Format {
	return converter.Format{
		Name:       NameCrystal,
		Extensions: []string{".rpt"},
		Usage:      []string{"*.rpt file matches Crystal Reports."},
		Options:    []string{args.KeyCrystal + ":" + SubArgUnrecognizedFunctionBehavior + "=" + config.BehaviorIgnore},

		EmitsSubreports: true,

		New: func(setup converter.Setup) (converter.Converter, error) {
			behavior := CrystalBehavior(setup.Args, fallback)

			params := outputParams(setup)
			params[PlaceholderUnrecognizedFunctionBehavior] = behavior.String()

			return engine.New(NameCrystal, settings, params, setup.OnSubreport), nil
		},
	}
}
