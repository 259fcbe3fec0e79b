package domain

import "time"

// Gender values accepted on a profile.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Activity levels accepted on a profile.
const (
	ActivityLow      = "low"
	ActivityModerate = "moderate"
	ActivityHigh     = "high"
	ActivityAthlete  = "athlete"
)

// Equipment describes the training environment available to the user.
const (
	EquipmentNone    = "none"
	EquipmentBasic   = "basic"
	EquipmentFullGym = "full_gym"
)

// UserProfile carries every biometric and preference field the generation
// prompts embed. Numeric-looking fields stay strings because they are
// free-form user input; the model receives them verbatim.
type UserProfile struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Gender            string    `json:"gender"`
	Age               string    `json:"age"`
	Weight            string    `json:"weight"`
	Height            string    `json:"height"`
	TargetWeight      string    `json:"targetWeight"`
	BodyFat           string    `json:"bodyFat,omitempty"`
	BodyType          string    `json:"bodyType,omitempty"`
	ActivityLevel     string    `json:"activityLevel"`
	SleepQuality      string    `json:"sleepQuality"`
	DietPreference    string    `json:"dietPreference"`
	Level             string    `json:"level"`
	Injuries          string    `json:"injuries"`
	Equipment         string    `json:"equipment"`
	DaysPerWeek       string    `json:"daysPerWeek"`
	SessionDuration   string    `json:"sessionDuration"`
	FocusArea         string    `json:"focusArea"`
	Points            int       `json:"points"`
	CompletedWorkouts int       `json:"completedWorkouts"`
	Gems              int       `json:"gems"`
	UpdatedAt         time.Time `json:"-"`
}

// WorkoutLog records a completed exercise session.
type WorkoutLog struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	ExerciseID string    `json:"exerciseId"`
	Date       string    `json:"date"`
	Duration   int       `json:"duration,omitempty"`
	CreatedAt  time.Time `json:"-"`
}
