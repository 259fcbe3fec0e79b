package domain

// Macros is a macro-nutrient breakdown in grams.
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fats    float64 `json:"fats"`
}

// Meal is a single scheduled meal within a nutrition plan.
type Meal struct {
	Time        string   `json:"time"`
	Name        string   `json:"name"`
	Calories    float64  `json:"calories"`
	Macros      Macros   `json:"macros"`
	Ingredients []string `json:"ingredients"`
}

// NutritionPlan is the structured result of a nutrition-plan call.
type NutritionPlan struct {
	DailyCalories float64  `json:"dailyCalories"`
	Macros        Macros   `json:"macros"`
	WaterIntake   float64  `json:"waterIntake"`
	Meals         []Meal   `json:"meals"`
	Supplements   []string `json:"supplements"`
}
