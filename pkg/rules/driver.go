package rules

import "github.com/mrhapile/fuzzy-diagnoser/pkg/engine"

// DriverRules detect a broken or mismatched driver: the job is accepted
// immediately but the page is garbage.
func DriverRules() []engine.Rule {
	return category("driver", RiskDriver,
		qualityIs("good", "perfect"),
		alarm{Critical, engine.And(timeIs("instant", "fast"), qualityIs("terrible"))},
		alarm{High, engine.And(timeIs("instant", "fast"), qualityIs("bad"))},
		alarm{Medium, qualityIs("avg")},
	)
}
