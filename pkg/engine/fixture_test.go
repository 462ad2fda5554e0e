package engine

import (
	"io"
	"log/slog"
	"testing"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/fuzzy"
)

var quiet = WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

func temperature() *fuzzy.Variable {
	return fuzzy.MustVariable("temp", fuzzy.MustSpan(0, 100, 1),
		fuzzy.Term{Name: "cold", MF: fuzzy.Triangular(0, 0, 50)},
		fuzzy.Term{Name: "warm", MF: fuzzy.Triangular(0, 50, 100)},
		fuzzy.Term{Name: "hot", MF: fuzzy.Triangular(50, 100, 100)},
	)
}

func humidity() *fuzzy.Variable {
	return fuzzy.MustVariable("humidity", fuzzy.MustSpan(0, 100, 1),
		fuzzy.Term{Name: "dry", MF: fuzzy.Triangular(0, 0, 100)},
		fuzzy.Term{Name: "wet", MF: fuzzy.Triangular(0, 100, 100)},
	)
}

func level(t *testing.T, name string) *fuzzy.Variable {
	t.Helper()
	u := fuzzy.MustSpan(0, 100, 1)
	terms, err := fuzzy.EvenTerms(u, "low", "mid", "high")
	if err != nil {
		t.Fatalf("EvenTerms: %v", err)
	}
	return fuzzy.MustVariable(name, u, terms...)
}

func climateRules() []Rule {
	return []Rule{
		NewRule("fan-low", Is("temp", "cold"), Then("fan", "low")),
		NewRule("fan-mid", Is("temp", "warm"), Then("fan", "mid")),
		NewRule("fan-high", Or(Is("temp", "hot"), Is("humidity", "wet")), Then("fan", "high")),
		NewRule("heater-high", Is("temp", "cold"), Then("heater", "high")),
		NewRule("heater-low", Or(Is("temp", "warm"), Is("temp", "hot")), Then("heater", "low")),
	}
}

// climate is a two input, two output rule base small enough to check by hand.
func climate(t *testing.T) *RuleBase {
	t.Helper()
	rb, err := NewRuleBase(
		[]*fuzzy.Variable{temperature(), humidity()},
		[]*fuzzy.Variable{level(t, "fan"), level(t, "heater")},
		climateRules(), quiet)
	if err != nil {
		t.Fatalf("NewRuleBase: %v", err)
	}
	return rb
}
