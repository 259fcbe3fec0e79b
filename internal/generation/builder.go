package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"server/internal/domain"
)

// Input is the intent-specific context handed to Build. Only the fields the
// intent needs are read; Build fails fast with a ValidationError when a
// required one is missing.
type Input struct {
	Profile  *domain.UserProfile
	Sport    string
	Goals    string
	Language string

	// Day regeneration.
	Day *domain.DailyRoutine

	// Exercise regeneration / discovery.
	ExerciseName string
	Query        string
	Filters      map[string]string

	// Chat.
	Message string
	History []domain.ChatMessage

	// Media intents. BiometricAnalysis requires Front and Side; ImageEdit
	// requires Source.
	Front  *MediaBlob
	Side   *MediaBlob
	Source *MediaBlob

	Prompt string
	Config Config
}

// Build converts a domain intent plus its context into an immutable
// GenerationRequest. It is a pure function: deterministic templating, no I/O.
func Build(intent Intent, in Input) (Request, error) {
	lang := in.Language
	if lang == "" {
		lang = "ar"
	}

	switch intent {
	case IntentPlanGeneration:
		if in.Profile == nil {
			return Request{}, &ValidationError{Field: "profile", Reason: "required for plan generation"}
		}
		return Request{Intent: intent, Prompt: planPrompt(in.Profile, in.Sport, in.Goals, lang), Config: in.Config}, nil

	case IntentDayRegeneration:
		if in.Profile == nil {
			return Request{}, &ValidationError{Field: "profile", Reason: "required for day regeneration"}
		}
		if in.Day == nil {
			return Request{}, &ValidationError{Field: "day", Reason: "previous routine is required"}
		}
		return Request{Intent: intent, Prompt: dayRegenPrompt(in.Profile, in.Sport, in.Day, lang), Config: in.Config}, nil

	case IntentExerciseRegeneration:
		if strings.TrimSpace(in.ExerciseName) == "" {
			return Request{}, &ValidationError{Field: "exerciseName", Reason: "required"}
		}
		prompt := fmt.Sprintf(
			"Provide an advanced or varied intensity alternative for the following exercise: %s. Respond in %s.",
			in.ExerciseName, lang)
		return Request{Intent: intent, Prompt: prompt, Config: in.Config}, nil

	case IntentNutritionPlan:
		if in.Profile == nil {
			return Request{}, &ValidationError{Field: "profile", Reason: "required for nutrition plan"}
		}
		return Request{Intent: intent, Prompt: nutritionPrompt(in.Profile, in.Goals, lang), Config: in.Config}, nil

	case IntentBiometricAnalysis:
		if in.Profile == nil {
			return Request{}, &ValidationError{Field: "profile", Reason: "required for biometric analysis"}
		}
		if in.Front == nil || len(in.Front.Data) == 0 {
			return Request{}, &ValidationError{Field: "front", Reason: "front photo is required"}
		}
		if in.Side == nil || len(in.Side.Data) == 0 {
			return Request{}, &ValidationError{Field: "side", Reason: "side photo is required"}
		}
		return Request{
			Intent: intent,
			Prompt: biometricPrompt(in.Profile, lang),
			Media:  []MediaBlob{*in.Front, *in.Side},
			Config: in.Config,
		}, nil

	case IntentExerciseDiscovery:
		if strings.TrimSpace(in.Query) == "" {
			return Request{}, &ValidationError{Field: "query", Reason: "required"}
		}
		return Request{Intent: intent, Prompt: discoveryPrompt(in.Query, in.Filters, lang), Config: in.Config}, nil

	case IntentChat:
		if strings.TrimSpace(in.Message) == "" {
			return Request{}, &ValidationError{Field: "message", Reason: "required"}
		}
		return Request{Intent: intent, Prompt: in.Message, History: in.History, Config: in.Config}, nil

	case IntentImageGeneration:
		if strings.TrimSpace(in.Prompt) == "" {
			return Request{}, &ValidationError{Field: "prompt", Reason: "required"}
		}
		return Request{Intent: intent, Prompt: in.Prompt, Config: in.Config}, nil

	case IntentImageEdit:
		if strings.TrimSpace(in.Prompt) == "" {
			return Request{}, &ValidationError{Field: "prompt", Reason: "required"}
		}
		if in.Source == nil || len(in.Source.Data) == 0 {
			return Request{}, &ValidationError{Field: "source", Reason: "source image is required"}
		}
		return Request{Intent: intent, Prompt: in.Prompt, Media: []MediaBlob{*in.Source}, Config: in.Config}, nil

	case IntentVideoGeneration:
		if strings.TrimSpace(in.Prompt) == "" {
			return Request{}, &ValidationError{Field: "prompt", Reason: "required"}
		}
		return Request{Intent: intent, Prompt: in.Prompt, Config: in.Config}, nil

	default:
		return Request{}, &ValidationError{Field: "intent", Reason: fmt.Sprintf("unsupported intent %q", intent)}
	}
}

func planPrompt(u *domain.UserProfile, sport, goals, lang string) string {
	sb := &strings.Builder{}
	sb.WriteString("Role: Elite Athletic Performance Director.\n")
	fmt.Fprintf(sb, "Task: Create a world-class 7-day development blueprint for %s.\n", sport)
	sb.WriteString("User Profile:\n")
	fmt.Fprintf(sb, "- Gender: %s, Age: %s\n", u.Gender, u.Age)
	fmt.Fprintf(sb, "- Biometrics: %scm, %skg, Body Fat: %s%%\n", u.Height, u.Weight, u.BodyFat)
	fmt.Fprintf(sb, "- Body Type: %s, Activity Level: %s\n", u.BodyType, u.ActivityLevel)
	fmt.Fprintf(sb, "- Level: %s, Training Environment: %s\n", u.Level, equipmentDescription(u.Equipment))
	fmt.Fprintf(sb, "- Commitment: %s days/week, %s mins/session\n", u.DaysPerWeek, u.SessionDuration)
	fmt.Fprintf(sb, "- Focus: %s, Constraints: %s\n", u.FocusArea, u.Injuries)
	fmt.Fprintf(sb, "- Additional Goals: %s\n", goals)
	sb.WriteString("Notes:\n")
	sb.WriteString("1. If the environment is bodyweight only, use no equipment at all.\n")
	fmt.Fprintf(sb, "2. If the sport is rehab, ensure safety for: %s.\n", u.Injuries)
	fmt.Fprintf(sb, "3. Respond in %s.\n", lang)
	return sb.String()
}

func dayRegenPrompt(u *domain.UserProfile, sport string, day *domain.DailyRoutine, lang string) string {
	prevJSON, _ := json.Marshal(day)
	profileJSON, _ := json.Marshal(u)
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Regenerate this specific training day for %s.\n", sport)
	fmt.Fprintf(sb, "Previous routine: %s\n", prevJSON)
	fmt.Fprintf(sb, "Follow the user profile: %s\n", profileJSON)
	fmt.Fprintf(sb, "Return in %s.\n", lang)
	return sb.String()
}

func nutritionPrompt(u *domain.UserProfile, goals, lang string) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Create a precision nutrition plan for %s with goal %s in %s.\n", u.Name, goals, lang)
	fmt.Fprintf(sb, "Profile: gender %s, age %s, weight %skg, height %scm, target weight %skg.\n",
		u.Gender, u.Age, u.Weight, u.Height, u.TargetWeight)
	fmt.Fprintf(sb, "Diet preference: %s, activity level: %s, sleep quality: %s.\n",
		u.DietPreference, u.ActivityLevel, u.SleepQuality)
	sb.WriteString("Focus on macro-nutrient balance and meal timings.\n")
	return sb.String()
}

func biometricPrompt(u *domain.UserProfile, lang string) string {
	profileJSON, _ := json.Marshal(u)
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Perform a detailed biometric visual analysis for this athlete: %s.\n", profileJSON)
	sb.WriteString("Based on the two attached photos (front then side), provide an InBody style report ")
	sb.WriteString("estimating fat percentage, muscle mass, and posture.\n")
	fmt.Fprintf(sb, "Respond in %s.\n", lang)
	return sb.String()
}

func discoveryPrompt(query string, filters map[string]string, lang string) string {
	filterJSON, _ := json.Marshal(filters)
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Research or create an exercise description for: %s.\n", query)
	fmt.Fprintf(sb, "Use these filters: %s.\n", filterJSON)
	fmt.Fprintf(sb, "Provide full technical details in %s.\n", lang)
	return sb.String()
}

func equipmentDescription(equipment string) string {
	switch equipment {
	case domain.EquipmentNone:
		return "none (bodyweight only)"
	case domain.EquipmentBasic:
		return "basic home equipment"
	case domain.EquipmentFullGym:
		return "fully equipped gym"
	default:
		return equipment
	}
}
