package rules

import "github.com/mrhapile/fuzzy-diagnoser/pkg/engine"

// HardwareRules detect toner, ink or print head problems: the queue is idle
// yet the page is faded or unreadable.
//
// Instant garbage output points at the driver rather than the hardware, so
// the critical rule only fires once the job has taken some time.
func HardwareRules() []engine.Rule {
	return category("hardware", RiskHardware,
		qualityIs("good", "perfect"),
		alarm{Critical, engine.And(queueIs("empty", "small"), qualityIs("terrible"),
			timeIs("fast", "medium", "slow", "timeout"))},
		alarm{High, engine.And(queueIs("empty", "small"), qualityIs("bad"))},
	)
}
