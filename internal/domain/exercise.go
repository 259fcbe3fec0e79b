package domain

// Workout categories. The catalog and discovery results both use these keys;
// display names are localized by the client.
const (
	CategoryFitness     = "fitness"
	CategoryFootball    = "football"
	CategoryBasketball  = "basketball"
	CategoryStrength    = "strength"
	CategoryFatLoss     = "fat_loss"
	CategoryRehab       = "rehab"
	CategoryTennis      = "tennis"
	CategoryMartialArts = "martial_arts"
	CategoryYoga        = "yoga"
	CategoryHIIT        = "hiit"
	CategoryGymnastics  = "gymnastics"
	CategoryDeskWorkout = "desk_workout"
	CategoryHomeMinimal = "home_minimal"
)

// Age groups an exercise is suitable for.
const (
	AgeGroupKids     = "kids"
	AgeGroupYouth    = "youth"
	AgeGroupAdult    = "adult"
	AgeGroupSenior   = "senior"
	AgeGroupPregnant = "pregnant"
	AgeGroupRehab    = "post_rehab"
)

// Workout locations.
const (
	LocationField  = "field"
	LocationHome   = "home"
	LocationOffice = "office"
	LocationAny    = "any"
)

// Difficulty levels.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
	DifficultyElite        = "elite"
)

// Muscle groups.
const (
	MuscleLegs      = "legs"
	MuscleArms      = "arms"
	MuscleShoulders = "shoulders"
	MuscleBack      = "back"
	MuscleChest     = "chest"
	MuscleCore      = "core"
	MuscleFullBody  = "full_body"
)

// Exercise describes a single movement, either from the static catalog or
// discovered through a generation call.
type Exercise struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Duration     string   `json:"duration"`
	AgeGroups    []string `json:"ageGroups"`
	Location     string   `json:"location"`
	Difficulty   string   `json:"difficulty"`
	MuscleGroup  string   `json:"muscleGroup"`
	VideoURL     string   `json:"videoUrl,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
}
