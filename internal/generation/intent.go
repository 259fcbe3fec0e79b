package generation

import "server/internal/domain"

// Intent names the domain purpose of a generation call. It selects the model
// tier, the prompt template, and the result contract.
type Intent string

const (
	IntentPlanGeneration       Intent = "plan_generation"
	IntentDayRegeneration      Intent = "day_regeneration"
	IntentExerciseRegeneration Intent = "exercise_regeneration"
	IntentNutritionPlan        Intent = "nutrition_plan"
	IntentBiometricAnalysis    Intent = "biometric_analysis"
	IntentExerciseDiscovery    Intent = "exercise_discovery"
	IntentChat                 Intent = "chat"
	IntentImageGeneration      Intent = "image_generation"
	IntentImageEdit            Intent = "image_edit"
	IntentVideoGeneration      Intent = "video_generation"
)

// MediaBlob is an input image attached to a request.
type MediaBlob struct {
	MIME string
	Data []byte
}

// Config is the per-request tuning bag.
type Config struct {
	AspectRatio string
	ImageSize   string
	Resolution  string
	Temperature *float64
	UseSearch   bool
}

// Request is a fully built, provider-agnostic generation request. Treat it as
// immutable once returned by Build.
type Request struct {
	Intent Intent
	Prompt string
	Media  []MediaBlob
	// History carries prior conversation turns for the Chat intent.
	History []domain.ChatMessage
	Config  Config
	// Seq tags the request so callers can discard results superseded by a
	// newer call for the same UI slot.
	Seq uint64
}

// Result is the discriminated union returned by the synchronous client.
// Exactly one payload field is populated, matching the request intent.
type Result struct {
	Intent    Intent
	Seq       uint64
	Plan      *domain.TrainingPlan
	Day       *domain.DailyRoutine
	Nutrition *domain.NutritionPlan
	Report    *domain.BiometricReport
	Exercise  *domain.Exercise
	Text      string
	// ImageDataURI is a directly displayable data: URI for image intents.
	ImageDataURI string
	// Citations is non-nil for chat results so callers can render it
	// unconditionally; it is empty when the reply used no grounding.
	Citations []domain.Citation
	// AppliedDefaults lists contract fields that were filled from the
	// documented fallback policy rather than the model payload.
	AppliedDefaults []string
}

// VideoResult is the materialized outcome of a long-running video generation.
type VideoResult struct {
	// StorageKey locates the downloaded asset in the local store.
	StorageKey string
	MIMEType   string
	Bytes      int
	// SourceURI is the remote locator the asset was fetched from.
	SourceURI string
}
