package types

import "time"

type DiagnosisResult struct {
	Hypotheses  []Hypothesis `json:"hypotheses"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Engine      string       `json:"engine"` // "fuzzy-centroid"
}

// Top returns the highest ranked hypothesis, if any.
func (r DiagnosisResult) Top() (Hypothesis, bool) {
	if len(r.Hypotheses) == 0 {
		return Hypothesis{}, false
	}
	return r.Hypotheses[0], true
}
