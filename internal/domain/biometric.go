package domain

// Health risk levels reported by a biometric analysis.
const (
	HealthRiskLow      = "low"
	HealthRiskModerate = "moderate"
	HealthRiskHigh     = "high"
)

// BiometricReport is the structured result of a photo-based body analysis,
// modeled after an InBody composition report.
type BiometricReport struct {
	FatPercentage      float64  `json:"fatPercentage"`
	MuscleMass         string   `json:"muscleMass"`
	SkeletalMuscleMass string   `json:"skeletalMuscleMass"`
	BMR                float64  `json:"bmr"`
	VisceralFat        float64  `json:"visceralFat"`
	BMI                float64  `json:"bmi"`
	BodyType           string   `json:"bodyType"`
	PostureAnalysis    string   `json:"postureAnalysis"`
	SymmetryScore      float64  `json:"symmetryScore"`
	HealthRisk         string   `json:"healthRisk"`
	Recommendations    []string `json:"recommendations"`
}
