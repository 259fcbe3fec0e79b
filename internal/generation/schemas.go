package generation

// Response schema documents sent with structured-output requests. They mirror
// the contracts in contracts.go; validation still happens locally because the
// model is not guaranteed to honor the schema.

const pillarSchemaFragment = `{
	"type": "OBJECT",
	"properties": {
		"title": {"type": "STRING"},
		"exercises": {"type": "ARRAY", "items": {"type": "STRING"}}
	},
	"required": ["title", "exercises"]
}`

const dailyRoutineSchema = `{
	"type": "OBJECT",
	"properties": {
		"day": {"type": "STRING"},
		"isRest": {"type": "BOOLEAN"},
		"physical": ` + pillarSchemaFragment + `,
		"technical": ` + pillarSchemaFragment + `,
		"tactical": ` + pillarSchemaFragment + `,
		"mental": ` + pillarSchemaFragment + `,
		"reaction": ` + pillarSchemaFragment + `,
		"nutrition": {"type": "STRING"},
		"totalDuration": {"type": "STRING"}
	},
	"required": ["day", "isRest", "physical", "technical", "tactical", "mental", "reaction", "nutrition", "totalDuration"]
}`

const trainingPlanSchema = `{
	"type": "OBJECT",
	"properties": {
		"title": {"type": "STRING"},
		"weeklySchedule": {"type": "ARRAY", "items": ` + dailyRoutineSchema + `},
		"coachTip": {"type": "STRING"}
	},
	"required": ["title", "weeklySchedule", "coachTip"]
}`

const macrosSchemaFragment = `{
	"type": "OBJECT",
	"properties": {
		"protein": {"type": "NUMBER"},
		"carbs": {"type": "NUMBER"},
		"fats": {"type": "NUMBER"}
	},
	"required": ["protein", "carbs", "fats"]
}`

const nutritionPlanSchema = `{
	"type": "OBJECT",
	"properties": {
		"dailyCalories": {"type": "NUMBER"},
		"macros": ` + macrosSchemaFragment + `,
		"waterIntake": {"type": "NUMBER"},
		"meals": {
			"type": "ARRAY",
			"items": {
				"type": "OBJECT",
				"properties": {
					"time": {"type": "STRING"},
					"name": {"type": "STRING"},
					"calories": {"type": "NUMBER"},
					"macros": ` + macrosSchemaFragment + `,
					"ingredients": {"type": "ARRAY", "items": {"type": "STRING"}}
				},
				"required": ["time", "name", "calories", "macros", "ingredients"]
			}
		},
		"supplements": {"type": "ARRAY", "items": {"type": "STRING"}}
	},
	"required": ["dailyCalories", "macros", "waterIntake", "meals", "supplements"]
}`

const biometricReportSchema = `{
	"type": "OBJECT",
	"properties": {
		"fatPercentage": {"type": "NUMBER"},
		"muscleMass": {"type": "STRING"},
		"skeletalMuscleMass": {"type": "STRING"},
		"bmr": {"type": "NUMBER"},
		"visceralFat": {"type": "NUMBER"},
		"bmi": {"type": "NUMBER"},
		"bodyType": {"type": "STRING"},
		"postureAnalysis": {"type": "STRING"},
		"symmetryScore": {"type": "NUMBER"},
		"healthRisk": {"type": "STRING"},
		"recommendations": {"type": "ARRAY", "items": {"type": "STRING"}}
	},
	"required": ["fatPercentage", "muscleMass", "bmr", "bmi", "bodyType", "postureAnalysis", "symmetryScore", "healthRisk", "recommendations"]
}`

const discoveredExerciseSchema = `{
	"type": "OBJECT",
	"properties": {
		"name": {"type": "STRING"},
		"category": {"type": "STRING"},
		"description": {"type": "STRING"},
		"image": {"type": "STRING"},
		"duration": {"type": "STRING"},
		"ageGroups": {"type": "ARRAY", "items": {"type": "STRING"}},
		"location": {"type": "STRING"},
		"difficulty": {"type": "STRING"},
		"muscleGroup": {"type": "STRING"},
		"instructions": {"type": "ARRAY", "items": {"type": "STRING"}}
	},
	"required": ["name", "category", "description", "image", "duration", "ageGroups", "location", "difficulty", "muscleGroup", "instructions"]
}`
