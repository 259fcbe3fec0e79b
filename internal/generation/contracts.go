package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"server/internal/domain"
)

// Documented fallback defaults for the biometric contract. The model
// occasionally omits these cosmetic fields; instead of failing the whole
// report they are filled with these exact placeholder values and the
// application is reported to the caller so data quality can be monitored.
const (
	FallbackSkeletalMuscleMass = "34.2kg"
	FallbackVisceralFat        = float64(4)
)

// Contract declares the expected shape of a structured result and knows how
// to validate a raw payload into the matching domain type. ResponseSchema is
// the schema document sent with the request so the model constrains its
// output; Validate enforces it again locally because model adherence is not
// guaranteed.
type Contract struct {
	Intent         Intent
	ResponseSchema json.RawMessage
	decode         func(raw []byte) (any, []string, error)
}

// ContractFor returns the contract registered for a structured-output intent.
// Intents with free-text or binary results have no contract.
func ContractFor(intent Intent) (*Contract, bool) {
	c, ok := contracts[intent]
	return c, ok
}

// Validate parses and validates a raw payload against the contract. On
// success it returns the typed domain object plus the names of any fields
// filled from the documented fallback defaults. Any missing required field or
// type mismatch yields a ParseError; unknown extra fields are ignored.
func (c *Contract) Validate(raw []byte) (any, []string, error) {
	cleaned := extractJSONFragment(string(raw))
	if cleaned == "" {
		return nil, nil, &ParseError{Intent: c.Intent, Err: fmt.Errorf("empty payload")}
	}
	return c.decode([]byte(cleaned))
}

var contracts = map[Intent]*Contract{
	IntentPlanGeneration: {
		Intent:         IntentPlanGeneration,
		ResponseSchema: json.RawMessage(trainingPlanSchema),
		decode:         decodeTrainingPlan,
	},
	IntentDayRegeneration: {
		Intent:         IntentDayRegeneration,
		ResponseSchema: json.RawMessage(dailyRoutineSchema),
		decode:         decodeDailyRoutine,
	},
	IntentNutritionPlan: {
		Intent:         IntentNutritionPlan,
		ResponseSchema: json.RawMessage(nutritionPlanSchema),
		decode:         decodeNutritionPlan,
	},
	IntentBiometricAnalysis: {
		Intent:         IntentBiometricAnalysis,
		ResponseSchema: json.RawMessage(biometricReportSchema),
		decode:         decodeBiometricReport,
	},
	IntentExerciseDiscovery: {
		Intent:         IntentExerciseDiscovery,
		ResponseSchema: json.RawMessage(discoveredExerciseSchema),
		decode:         decodeDiscoveredExercise,
	},
}

// Intermediate payload types use pointers for required scalars so absence is
// distinguishable from zero values.

type pillarPayload struct {
	Title       *string  `json:"title"`
	Description string   `json:"description"`
	Exercises   []string `json:"exercises"`
}

type dailyRoutinePayload struct {
	Day           *string        `json:"day"`
	IsRest        *bool          `json:"isRest"`
	Physical      *pillarPayload `json:"physical"`
	Technical     *pillarPayload `json:"technical"`
	Tactical      *pillarPayload `json:"tactical"`
	Mental        *pillarPayload `json:"mental"`
	Reaction      *pillarPayload `json:"reaction"`
	Nutrition     *string        `json:"nutrition"`
	TotalDuration *string        `json:"totalDuration"`
}

type trainingPlanPayload struct {
	Title          *string               `json:"title"`
	WeeklySchedule []dailyRoutinePayload `json:"weeklySchedule"`
	CoachTip       *string               `json:"coachTip"`
}

func decodeTrainingPlan(raw []byte) (any, []string, error) {
	var payload trainingPlanPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, nil, &ParseError{Intent: IntentPlanGeneration, Err: err}
	}
	if payload.Title == nil {
		return nil, nil, missingField(IntentPlanGeneration, "title")
	}
	if payload.CoachTip == nil {
		return nil, nil, missingField(IntentPlanGeneration, "coachTip")
	}
	if len(payload.WeeklySchedule) != domain.WeeklyScheduleDays {
		return nil, nil, &ParseError{
			Intent: IntentPlanGeneration,
			Field:  "weeklySchedule",
			Err:    fmt.Errorf("expected %d days, got %d", domain.WeeklyScheduleDays, len(payload.WeeklySchedule)),
		}
	}
	plan := &domain.TrainingPlan{Title: *payload.Title, CoachTip: *payload.CoachTip}
	for i := range payload.WeeklySchedule {
		day, err := payload.WeeklySchedule[i].toDomain(IntentPlanGeneration, fmt.Sprintf("weeklySchedule[%d]", i))
		if err != nil {
			return nil, nil, err
		}
		plan.WeeklySchedule = append(plan.WeeklySchedule, *day)
	}
	return plan, nil, nil
}

func decodeDailyRoutine(raw []byte) (any, []string, error) {
	var payload dailyRoutinePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, nil, &ParseError{Intent: IntentDayRegeneration, Err: err}
	}
	day, err := payload.toDomain(IntentDayRegeneration, "")
	if err != nil {
		return nil, nil, err
	}
	return day, nil, nil
}

func (p *dailyRoutinePayload) toDomain(intent Intent, path string) (*domain.DailyRoutine, error) {
	prefix := path
	if prefix != "" {
		prefix += "."
	}
	if p.Day == nil {
		return nil, missingField(intent, prefix+"day")
	}
	if p.IsRest == nil {
		return nil, missingField(intent, prefix+"isRest")
	}
	if p.Nutrition == nil {
		return nil, missingField(intent, prefix+"nutrition")
	}
	if p.TotalDuration == nil {
		return nil, missingField(intent, prefix+"totalDuration")
	}
	day := &domain.DailyRoutine{
		Day:           *p.Day,
		IsRest:        *p.IsRest,
		Nutrition:     *p.Nutrition,
		TotalDuration: *p.TotalDuration,
	}
	pillars := []struct {
		name    string
		payload *pillarPayload
		target  *domain.Pillar
	}{
		{"physical", p.Physical, &day.Physical},
		{"technical", p.Technical, &day.Technical},
		{"tactical", p.Tactical, &day.Tactical},
		{"mental", p.Mental, &day.Mental},
		{"reaction", p.Reaction, &day.Reaction},
	}
	for _, pillar := range pillars {
		if pillar.payload == nil {
			return nil, missingField(intent, prefix+pillar.name)
		}
		if pillar.payload.Title == nil {
			return nil, missingField(intent, prefix+pillar.name+".title")
		}
		if pillar.payload.Exercises == nil {
			return nil, missingField(intent, prefix+pillar.name+".exercises")
		}
		*pillar.target = domain.Pillar{
			Title:       *pillar.payload.Title,
			Description: pillar.payload.Description,
			Exercises:   pillar.payload.Exercises,
		}
	}
	return day, nil
}

type macrosPayload struct {
	Protein *float64 `json:"protein"`
	Carbs   *float64 `json:"carbs"`
	Fats    *float64 `json:"fats"`
}

func (m *macrosPayload) toDomain(intent Intent, path string) (domain.Macros, error) {
	if m.Protein == nil {
		return domain.Macros{}, missingField(intent, path+".protein")
	}
	if m.Carbs == nil {
		return domain.Macros{}, missingField(intent, path+".carbs")
	}
	if m.Fats == nil {
		return domain.Macros{}, missingField(intent, path+".fats")
	}
	return domain.Macros{Protein: *m.Protein, Carbs: *m.Carbs, Fats: *m.Fats}, nil
}

type mealPayload struct {
	Time        *string        `json:"time"`
	Name        *string        `json:"name"`
	Calories    *float64       `json:"calories"`
	Macros      *macrosPayload `json:"macros"`
	Ingredients []string       `json:"ingredients"`
}

type nutritionPlanPayload struct {
	DailyCalories *float64       `json:"dailyCalories"`
	Macros        *macrosPayload `json:"macros"`
	WaterIntake   *float64       `json:"waterIntake"`
	Meals         []mealPayload  `json:"meals"`
	Supplements   []string       `json:"supplements"`
}

func decodeNutritionPlan(raw []byte) (any, []string, error) {
	var payload nutritionPlanPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, nil, &ParseError{Intent: IntentNutritionPlan, Err: err}
	}
	if payload.DailyCalories == nil {
		return nil, nil, missingField(IntentNutritionPlan, "dailyCalories")
	}
	if payload.Macros == nil {
		return nil, nil, missingField(IntentNutritionPlan, "macros")
	}
	if payload.WaterIntake == nil {
		return nil, nil, missingField(IntentNutritionPlan, "waterIntake")
	}
	if payload.Meals == nil {
		return nil, nil, missingField(IntentNutritionPlan, "meals")
	}
	if payload.Supplements == nil {
		return nil, nil, missingField(IntentNutritionPlan, "supplements")
	}
	macros, err := payload.Macros.toDomain(IntentNutritionPlan, "macros")
	if err != nil {
		return nil, nil, err
	}
	plan := &domain.NutritionPlan{
		DailyCalories: *payload.DailyCalories,
		Macros:        macros,
		WaterIntake:   *payload.WaterIntake,
		Supplements:   payload.Supplements,
	}
	for i, meal := range payload.Meals {
		path := fmt.Sprintf("meals[%d]", i)
		if meal.Time == nil {
			return nil, nil, missingField(IntentNutritionPlan, path+".time")
		}
		if meal.Name == nil {
			return nil, nil, missingField(IntentNutritionPlan, path+".name")
		}
		if meal.Calories == nil {
			return nil, nil, missingField(IntentNutritionPlan, path+".calories")
		}
		if meal.Macros == nil {
			return nil, nil, missingField(IntentNutritionPlan, path+".macros")
		}
		if meal.Ingredients == nil {
			return nil, nil, missingField(IntentNutritionPlan, path+".ingredients")
		}
		mealMacros, err := meal.Macros.toDomain(IntentNutritionPlan, path+".macros")
		if err != nil {
			return nil, nil, err
		}
		plan.Meals = append(plan.Meals, domain.Meal{
			Time:        *meal.Time,
			Name:        *meal.Name,
			Calories:    *meal.Calories,
			Macros:      mealMacros,
			Ingredients: meal.Ingredients,
		})
	}
	return plan, nil, nil
}

type biometricReportPayload struct {
	FatPercentage      *float64 `json:"fatPercentage"`
	MuscleMass         *string  `json:"muscleMass"`
	SkeletalMuscleMass *string  `json:"skeletalMuscleMass"`
	BMR                *float64 `json:"bmr"`
	VisceralFat        *float64 `json:"visceralFat"`
	BMI                *float64 `json:"bmi"`
	BodyType           *string  `json:"bodyType"`
	PostureAnalysis    *string  `json:"postureAnalysis"`
	SymmetryScore      *float64 `json:"symmetryScore"`
	HealthRisk         *string  `json:"healthRisk"`
	Recommendations    []string `json:"recommendations"`
}

func decodeBiometricReport(raw []byte) (any, []string, error) {
	var payload biometricReportPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, nil, &ParseError{Intent: IntentBiometricAnalysis, Err: err}
	}
	required := []struct {
		name string
		ok   bool
	}{
		{"fatPercentage", payload.FatPercentage != nil},
		{"muscleMass", payload.MuscleMass != nil},
		{"bmr", payload.BMR != nil},
		{"bmi", payload.BMI != nil},
		{"bodyType", payload.BodyType != nil},
		{"postureAnalysis", payload.PostureAnalysis != nil},
		{"symmetryScore", payload.SymmetryScore != nil},
		{"healthRisk", payload.HealthRisk != nil},
		{"recommendations", payload.Recommendations != nil},
	}
	for _, field := range required {
		if !field.ok {
			return nil, nil, missingField(IntentBiometricAnalysis, field.name)
		}
	}
	risk := strings.ToLower(strings.TrimSpace(*payload.HealthRisk))
	switch risk {
	case domain.HealthRiskLow, domain.HealthRiskModerate, domain.HealthRiskHigh:
	default:
		return nil, nil, &ParseError{
			Intent: IntentBiometricAnalysis,
			Field:  "healthRisk",
			Err:    fmt.Errorf("unexpected value %q", *payload.HealthRisk),
		}
	}

	report := &domain.BiometricReport{
		FatPercentage:   *payload.FatPercentage,
		MuscleMass:      *payload.MuscleMass,
		BMR:             *payload.BMR,
		BMI:             *payload.BMI,
		BodyType:        *payload.BodyType,
		PostureAnalysis: *payload.PostureAnalysis,
		SymmetryScore:   *payload.SymmetryScore,
		HealthRisk:      risk,
		Recommendations: payload.Recommendations,
	}

	// Allow-listed cosmetic fields with documented fallback values.
	var applied []string
	if payload.SkeletalMuscleMass != nil && strings.TrimSpace(*payload.SkeletalMuscleMass) != "" {
		report.SkeletalMuscleMass = *payload.SkeletalMuscleMass
	} else {
		report.SkeletalMuscleMass = FallbackSkeletalMuscleMass
		applied = append(applied, "skeletalMuscleMass")
	}
	if payload.VisceralFat != nil {
		report.VisceralFat = *payload.VisceralFat
	} else {
		report.VisceralFat = FallbackVisceralFat
		applied = append(applied, "visceralFat")
	}
	return report, applied, nil
}

type discoveredExercisePayload struct {
	Name         *string  `json:"name"`
	Category     *string  `json:"category"`
	Description  *string  `json:"description"`
	Image        *string  `json:"image"`
	Duration     *string  `json:"duration"`
	AgeGroups    []string `json:"ageGroups"`
	Location     *string  `json:"location"`
	Difficulty   *string  `json:"difficulty"`
	MuscleGroup  *string  `json:"muscleGroup"`
	Instructions []string `json:"instructions"`
}

func decodeDiscoveredExercise(raw []byte) (any, []string, error) {
	var payload discoveredExercisePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, nil, &ParseError{Intent: IntentExerciseDiscovery, Err: err}
	}
	required := []struct {
		name string
		ok   bool
	}{
		{"name", payload.Name != nil},
		{"category", payload.Category != nil},
		{"description", payload.Description != nil},
		{"image", payload.Image != nil},
		{"duration", payload.Duration != nil},
		{"ageGroups", payload.AgeGroups != nil},
		{"location", payload.Location != nil},
		{"difficulty", payload.Difficulty != nil},
		{"muscleGroup", payload.MuscleGroup != nil},
		{"instructions", payload.Instructions != nil},
	}
	for _, field := range required {
		if !field.ok {
			return nil, nil, missingField(IntentExerciseDiscovery, field.name)
		}
	}
	return &domain.Exercise{
		Name:         *payload.Name,
		Category:     *payload.Category,
		Description:  *payload.Description,
		Image:        *payload.Image,
		Duration:     *payload.Duration,
		AgeGroups:    payload.AgeGroups,
		Location:     *payload.Location,
		Difficulty:   *payload.Difficulty,
		MuscleGroup:  *payload.MuscleGroup,
		Instructions: payload.Instructions,
	}, nil, nil
}

func missingField(intent Intent, field string) *ParseError {
	return &ParseError{Intent: intent, Field: field}
}

// extractJSONFragment strips markdown fences and any leading/trailing prose
// around the first JSON object or array in the text.
func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = trimCodeFence(text)
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
