package rules

import "github.com/mrhapile/fuzzy-diagnoser/pkg/engine"

// NetworkRules detect network latency: output comes out fine but late.
func NetworkRules() []engine.Rule {
	return category("network", RiskNetwork,
		engine.Or(timeIs("instant", "fast"), qualityIs("terrible", "bad")),
		alarm{Critical, engine.And(qualityIs("perfect", "good"), timeIs("timeout"))},
		alarm{High, engine.And(qualityIs("perfect", "good"), timeIs("slow"))},
		alarm{Medium, engine.And(qualityIs("avg"), timeIs("slow", "medium"))},
	)
}
