// Package rules holds the printer and scanner knowledge base: the linguistic
// variables, one rule set per failure category, the device profiles and the
// reference situations used to check the whole.
package rules

import (
	"fmt"

	"github.com/mrhapile/fuzzy-diagnoser/pkg/engine"
	"github.com/mrhapile/fuzzy-diagnoser/pkg/fuzzy"
)

// Outputs lists every risk output in registration order. Equal risks rank in
// this order.
var Outputs = []string{RiskSpooler, RiskNetwork, RiskDriver, RiskHardware, RiskTwain, RiskCable}

// AllRules returns every rule of the knowledge base in a fixed order.
func AllRules() []engine.Rule {
	var all []engine.Rule
	all = append(all, SpoolerRules()...)
	all = append(all, NetworkRules()...)
	all = append(all, DriverRules()...)
	all = append(all, HardwareRules()...)
	all = append(all, TwainRules()...)
	all = append(all, CableRules()...)
	all = append(all, linkHealthyRules()...)
	return all
}

// Build constructs the rule base. It is safe to share the result across
// goroutines.
func Build(opts ...engine.Option) (*engine.RuleBase, error) {
	inputs := []*fuzzy.Variable{timeVariable(), queueVariable(), qualityVariable(), connectionVariable()}

	outputs := make([]*fuzzy.Variable, 0, len(Outputs))
	for _, name := range Outputs {
		v, err := riskVariable(name)
		if err != nil {
			return nil, fmt.Errorf("output %s: %w", name, err)
		}
		outputs = append(outputs, v)
	}

	return engine.NewRuleBase(inputs, outputs, AllRules(), opts...)
}

// MustBuild is Build for program start-up; it panics on error.
func MustBuild(opts ...engine.Option) *engine.RuleBase {
	rb, err := Build(opts...)
	if err != nil {
		panic(err)
	}
	return rb
}
