package rules

import "github.com/mrhapile/fuzzy-diagnoser/pkg/engine"

// CableRules detect a damaged or loose scanner cable.
func CableRules() []engine.Rule {
	return category("cable", RiskCable,
		linkIs("stable"),
		alarm{Critical, linkIs("lost")},
		alarm{High, engine.And(linkIs("unstable"), timeIs("timeout"))},
		alarm{Medium, engine.And(linkIs("unstable"), timeIs("slow"))},
	)
}
