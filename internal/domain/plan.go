package domain

import "time"

// Pillar is one of the five training dimensions scheduled on every
// non-rest day of a weekly plan.
type Pillar struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Exercises   []string `json:"exercises"`
}

// DailyRoutine is a single day of a weekly training plan.
type DailyRoutine struct {
	Day           string `json:"day"`
	IsRest        bool   `json:"isRest"`
	Physical      Pillar `json:"physical"`
	Technical     Pillar `json:"technical"`
	Tactical      Pillar `json:"tactical"`
	Mental        Pillar `json:"mental"`
	Reaction      Pillar `json:"reaction"`
	Nutrition     string `json:"nutrition"`
	TotalDuration string `json:"totalDuration"`
}

// WeeklyScheduleDays is the fixed length of a generated plan.
const WeeklyScheduleDays = 7

// TrainingPlan is the structured result of a plan-generation call.
type TrainingPlan struct {
	Title          string         `json:"title"`
	WeeklySchedule []DailyRoutine `json:"weeklySchedule"`
	CoachTip       string         `json:"coachTip"`
}

// SavedPlan is a TrainingPlan persisted for a user.
type SavedPlan struct {
	ID        string       `json:"id"`
	UserID    string       `json:"-"`
	Sport     string       `json:"sport"`
	Plan      TrainingPlan `json:"plan"`
	Active    bool         `json:"active"`
	CreatedAt time.Time    `json:"date"`
}
