package types

// Hypothesis is one ranked failure category with its crisp risk.
type Hypothesis struct {
	Rank       int      `json:"rank" yaml:"rank"`
	Component  string   `json:"component" yaml:"component"`
	Risk       float64  `json:"risk" yaml:"risk"`
	Level      string   `json:"level" yaml:"level"`           // dominant output term at Risk
	Confidence float64  `json:"confidence" yaml:"confidence"` // degree of Level at Risk
	Band       Band     `json:"band,omitempty" yaml:"band,omitempty"`
	Evidence   []string `json:"evidence,omitempty" yaml:"evidence,omitempty"`
}
