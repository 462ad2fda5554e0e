package rules

import "github.com/mrhapile/fuzzy-diagnoser/pkg/engine"

// SpoolerRules detect a print queue that is stuck: many jobs waiting while
// each one takes long to complete.
func SpoolerRules() []engine.Rule {
	return category("spooler", RiskSpooler,
		engine.Or(queueIs("empty", "small"), timeIs("instant", "fast")),
		alarm{Critical, engine.And(queueIs("full", "large"), timeIs("timeout", "slow"))},
		alarm{Medium, engine.And(queueIs("medium"), timeIs("timeout", "slow"))},
	)
}
