package types

// Risk thresholds on the 0..100 output scale.
// These are presentation heuristics, not properties of the inference.
const (
	// RiskNormalCeiling is the highest relevant risk still reported as normal.
	RiskNormalCeiling = 35.0

	// RiskWarningFloor is where a single category starts to look suspicious.
	RiskWarningFloor = 40.0

	// RiskAlarmFloor is where a single category is considered failing.
	RiskAlarmFloor = 75.0
)

// Band classifies a single risk value.
type Band string

const (
	BandNormal  Band = "normal"
	BandWarning Band = "warning"
	BandAlarm   Band = "alarm"
)

// Verdict summarizes a whole diagnosis.
type Verdict string

const (
	VerdictNormal Verdict = "normal"
	VerdictFault  Verdict = "fault"
)

// Thresholds groups the risk cut-offs used for bands and verdicts.
type Thresholds struct {
	NormalCeiling float64 `json:"normalCeiling" yaml:"normal_ceiling"`
	WarningFloor  float64 `json:"warningFloor" yaml:"warning_floor"`
	AlarmFloor    float64 `json:"alarmFloor" yaml:"alarm_floor"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		NormalCeiling: RiskNormalCeiling,
		WarningFloor:  RiskWarningFloor,
		AlarmFloor:    RiskAlarmFloor,
	}
}

// Band maps a risk to its band. Both floors are exclusive.
func (t Thresholds) Band(risk float64) Band {
	switch {
	case risk > t.AlarmFloor:
		return BandAlarm
	case risk > t.WarningFloor:
		return BandWarning
	default:
		return BandNormal
	}
}

// Verdict is normal while the highest relevant risk stays below NormalCeiling.
func (t Thresholds) Verdict(maxRisk float64) Verdict {
	if maxRisk < t.NormalCeiling {
		return VerdictNormal
	}
	return VerdictFault
}
