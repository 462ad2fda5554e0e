package rules

import "github.com/mrhapile/fuzzy-diagnoser/pkg/engine"

// quietWeight scales the "nothing alarming" rule of every category. Together
// with that rule it keeps every output defined for every input combination.
const quietWeight = 0.2

// alarm raises one category to level when its condition holds.
type alarm struct {
	level string
	when  engine.Expression
}

// category assembles the rules of one failure category:
//   - one rule per alarm
//   - a "low" rule for evidence that the category is healthy
//   - a weighted "negligible" rule that fires to the degree no alarm holds
func category(name, output string, healthy engine.Expression, alarms ...alarm) []engine.Rule {
	out := make([]engine.Rule, 0, len(alarms)+2)
	conditions := make([]engine.Expression, 0, len(alarms))
	for _, a := range alarms {
		out = append(out, engine.NewRule(name+"-"+a.level, a.when, engine.Then(output, a.level)))
		conditions = append(conditions, a.when)
	}
	out = append(out,
		engine.NewRule(name+"-"+Low, healthy, engine.Then(output, Low)),
		engine.NewRule(name+"-quiet", engine.Not(engine.AnyOf(conditions...)),
			engine.Then(output, Negligible).Weighted(quietWeight)),
	)
	return out
}

// linkHealthyRules lowers both scanner categories when the link is stable
// and the device answers quickly.
func linkHealthyRules() []engine.Rule {
	return []engine.Rule{
		engine.NewRule("scanner-responsive",
			engine.And(linkIs("stable"), timeIs("instant", "fast")),
			engine.Then(RiskCable, Negligible).Weighted(quietWeight),
			engine.Then(RiskTwain, Negligible).Weighted(quietWeight),
		),
	}
}
