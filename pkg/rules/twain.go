package rules

import "github.com/mrhapile/fuzzy-diagnoser/pkg/engine"

// TwainRules detect a hung TWAIN driver: the link is fine but the scanner
// does not answer.
func TwainRules() []engine.Rule {
	return category("twain", RiskTwain,
		timeIs("instant", "fast"),
		alarm{Critical, engine.And(linkIs("stable"), timeIs("timeout"))},
		alarm{High, engine.And(linkIs("stable"), timeIs("slow"))},
		alarm{Medium, engine.And(linkIs("stable"), timeIs("medium"))},
	)
}
