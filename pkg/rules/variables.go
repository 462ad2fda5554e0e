package rules

import (
	"github.com/mrhapile/fuzzy-diagnoser/pkg/engine"
	"github.com/mrhapile/fuzzy-diagnoser/pkg/fuzzy"
)

// Input variables.
const (
	Time       = "time"       // job response time, seconds
	Queue      = "queue"      // jobs waiting in the spooler
	Quality    = "quality"    // print quality, 0 (garbage) to 10
	Connection = "connection" // link quality, percent
)

// Output variables, one risk per failure category on a 0..100 scale.
const (
	RiskSpooler  = "risk_spooler"
	RiskNetwork  = "risk_network"
	RiskDriver   = "risk_driver"
	RiskHardware = "risk_hardware"
	RiskTwain    = "risk_twain"
	RiskCable    = "risk_cable"
)

// Risk levels shared by every output.
const (
	Negligible = "negligible"
	Low        = "low"
	Medium     = "medium"
	High       = "high"
	Critical   = "critical"
)

var riskLevels = []string{Negligible, Low, Medium, High, Critical}

func timeVariable() *fuzzy.Variable {
	return fuzzy.MustVariable(Time, fuzzy.MustSpan(0, 120, 1),
		fuzzy.Term{Name: "instant", MF: fuzzy.Triangular(0, 0, 15)},
		fuzzy.Term{Name: "fast", MF: fuzzy.Triangular(10, 25, 40)},
		fuzzy.Term{Name: "medium", MF: fuzzy.Triangular(30, 50, 70)},
		fuzzy.Term{Name: "slow", MF: fuzzy.Triangular(60, 80, 100)},
		fuzzy.Term{Name: "timeout", MF: fuzzy.Trapezoidal(90, 110, 120, 120)},
	)
}

func queueVariable() *fuzzy.Variable {
	return fuzzy.MustVariable(Queue, fuzzy.MustSpan(0, 50, 1),
		fuzzy.Term{Name: "empty", MF: fuzzy.Triangular(0, 0, 5)},
		fuzzy.Term{Name: "small", MF: fuzzy.Triangular(3, 7, 12)},
		fuzzy.Term{Name: "medium", MF: fuzzy.Triangular(10, 20, 30)},
		fuzzy.Term{Name: "large", MF: fuzzy.Triangular(25, 35, 45)},
		fuzzy.Term{Name: "full", MF: fuzzy.Trapezoidal(40, 48, 50, 50)},
	)
}

func qualityVariable() *fuzzy.Variable {
	return fuzzy.MustVariable(Quality, fuzzy.MustSpan(0, 10, 1),
		fuzzy.Term{Name: "terrible", MF: fuzzy.Trapezoidal(0, 0, 2, 4)},
		fuzzy.Term{Name: "bad", MF: fuzzy.Triangular(2, 4, 6)},
		fuzzy.Term{Name: "avg", MF: fuzzy.Triangular(4, 6, 8)},
		fuzzy.Term{Name: "good", MF: fuzzy.Triangular(6, 8, 9)},
		fuzzy.Term{Name: "perfect", MF: fuzzy.Trapezoidal(8, 9, 10, 10)},
	)
}

func connectionVariable() *fuzzy.Variable {
	return fuzzy.MustVariable(Connection, fuzzy.MustSpan(0, 100, 1),
		fuzzy.Term{Name: "lost", MF: fuzzy.ZShaped(0, 20)},
		fuzzy.Term{Name: "unstable", MF: fuzzy.Triangular(15, 50, 85)},
		fuzzy.Term{Name: "stable", MF: fuzzy.SShaped(80, 100)},
	)
}

func riskVariable(name string) (*fuzzy.Variable, error) {
	u := fuzzy.MustSpan(0, 100, 1)
	terms, err := fuzzy.EvenTerms(u, riskLevels...)
	if err != nil {
		return nil, err
	}
	return fuzzy.NewVariable(name, u, terms...)
}

func timeIs(terms ...string) engine.Expression    { return anyTerm(Time, terms) }
func queueIs(terms ...string) engine.Expression   { return anyTerm(Queue, terms) }
func qualityIs(terms ...string) engine.Expression { return anyTerm(Quality, terms) }
func linkIs(terms ...string) engine.Expression    { return anyTerm(Connection, terms) }

// anyTerm is "variable is terms[0] OR variable is terms[1] ...".
func anyTerm(variable string, terms []string) engine.Expression {
	leaves := make([]engine.Expression, len(terms))
	for i, term := range terms {
		leaves[i] = engine.Is(variable, term)
	}
	return engine.AnyOf(leaves...)
}
