package catalog

import (
	"strings"

	"server/internal/domain"
)

// Filter narrows the exercise catalog. Empty fields match everything.
type Filter struct {
	Category    string
	AgeGroup    string
	Location    string
	Difficulty  string
	MuscleGroup string
	Query       string
}

// Exercises returns a copy of the full seeded catalog.
func Exercises() []domain.Exercise {
	out := make([]domain.Exercise, len(exercises))
	copy(out, exercises)
	return out
}

// ByID looks up a seeded exercise.
func ByID(id string) (*domain.Exercise, bool) {
	for i := range exercises {
		if exercises[i].ID == id {
			ex := exercises[i]
			return &ex, true
		}
	}
	return nil, false
}

// Search applies the filter to the seeded catalog.
func Search(f Filter) []domain.Exercise {
	out := []domain.Exercise{}
	for _, ex := range exercises {
		if f.Category != "" && ex.Category != f.Category {
			continue
		}
		if f.Location != "" && ex.Location != f.Location && ex.Location != domain.LocationAny {
			continue
		}
		if f.Difficulty != "" && ex.Difficulty != f.Difficulty {
			continue
		}
		if f.MuscleGroup != "" && ex.MuscleGroup != f.MuscleGroup {
			continue
		}
		if f.AgeGroup != "" && !hasAgeGroup(ex, f.AgeGroup) {
			continue
		}
		if f.Query != "" && !strings.Contains(strings.ToLower(ex.Name), strings.ToLower(f.Query)) {
			continue
		}
		out = append(out, ex)
	}
	return out
}

func hasAgeGroup(ex domain.Exercise, group string) bool {
	for _, g := range ex.AgeGroups {
		if g == group || g == "all" {
			return true
		}
	}
	return false
}

// Products returns the seeded store catalog, used to populate the products
// table on first migration.
func Products() []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out
}

var exercises = []domain.Exercise{
	{
		ID:          "st-1",
		Name:        "ضغط الصدر بالدمبل (Incline)",
		Category:    domain.CategoryStrength,
		AgeGroups:   []string{domain.AgeGroupYouth, domain.AgeGroupAdult},
		Location:    domain.LocationHome,
		Duration:    "12 دقيقة",
		Difficulty:  domain.DifficultyIntermediate,
		MuscleGroup: domain.MuscleChest,
		Description: "استهداف الجزء العلوي من عضلة الصدر لبناء هيكل قوي ومتناسق.",
		Image:       "https://images.unsplash.com/photo-1571019614242-c5c5dee9f50b?q=80&w=800",
		Instructions: []string{
			"اضبط المقعد بزاوية 30-45 درجة.",
			"امسك الدمبلز فوق صدرك.",
			"انزل ببطء وادفع للأعلى بقوة.",
		},
	},
	{
		ID:          "st-2",
		Name:        "القرفصاء البلغارية (Split Squat)",
		Category:    domain.CategoryStrength,
		AgeGroups:   []string{domain.AgeGroupAdult},
		Location:    domain.LocationHome,
		Duration:    "15 دقيقة",
		Difficulty:  domain.DifficultyAdvanced,
		MuscleGroup: domain.MuscleLegs,
		Description: "أقوى تمرين لعزل الأرجل وبناء كتلة عضلية هائلة في الكوادز والجلوتس.",
		Image:       "https://images.unsplash.com/photo-1534438327276-14e5300c3a48?q=80&w=800",
		Instructions: []string{
			"ضع قدماً على مرتفع خلفك.",
			"انزل بركبتك الأخرى للأرض.",
			"ادفع بكعب قدمك الأمامية.",
		},
	},
	{
		ID:          "st-3",
		Name:        "سحب الظهر (Deadlift) روماني",
		Category:    domain.CategoryStrength,
		AgeGroups:   []string{domain.AgeGroupAdult},
		Location:    domain.LocationHome,
		Duration:    "10 دقائق",
		Difficulty:  domain.DifficultyAdvanced,
		MuscleGroup: domain.MuscleBack,
		Description: "تمرين أساسي لتقوية السلسلة الخلفية للجسم (ظهر سفلي وأرجل خلفية).",
		Image:       "https://images.unsplash.com/photo-1517836357463-d25dfeac3438?q=80&w=800",
		Instructions: []string{
			"قف مع مسافة عرض الكتفين.",
			"انحنِ بخصرك مع الحفاظ على استقامة الظهر.",
			"ارفع الوزن بالتركيز على عضلات الأرجل الخلفية.",
		},
	},
	{
		ID:          "hm-1",
		Name:        "ضغط الألماس (Diamond Pushups)",
		Category:    domain.CategoryHomeMinimal,
		AgeGroups:   []string{domain.AgeGroupYouth, domain.AgeGroupAdult},
		Location:    domain.LocationHome,
		Duration:    "8 دقائق",
		Difficulty:  domain.DifficultyIntermediate,
		MuscleGroup: domain.MuscleArms,
		Description: "تمرين منزلي قوي جداً لاستهداف الترايسيبس وعضلات الصدر الداخلية.",
		Image:       "https://images.unsplash.com/photo-1598971639058-aba7c52e9a72?q=80&w=800",
		Instructions: []string{
			"ضع يديك بشكل مثلث تحت صدرك.",
			"انزل حتى يلمس صدرك يديك.",
			"ادفع للأعلى مع عصر الترايسيبس.",
		},
	},
	{
		ID:          "hm-2",
		Name:        "بلانك مع لمس الأكتاف",
		Category:    domain.CategoryHomeMinimal,
		AgeGroups:   []string{"all"},
		Location:    domain.LocationHome,
		Duration:    "5 دقائق",
		Difficulty:  domain.DifficultyBeginner,
		MuscleGroup: domain.MuscleCore,
		Description: "تنشيط عضلات البطن وتحسين الثبات المركزي للجسم.",
		Image:       "https://images.unsplash.com/photo-1566241142559-40e1bfc26cc4?q=80&w=800",
		Instructions: []string{
			"خذ وضعية الضغط العالي.",
			"المس كتفك الأيسر بيدك اليمنى دون تحريك الحوض.",
			"بدل بين الجانبين ببطء.",
		},
	},
	{
		ID:          "off-1",
		Name:        "تمدد الرقبة والكتف الجالس",
		Category:    domain.CategoryDeskWorkout,
		AgeGroups:   []string{domain.AgeGroupAdult, domain.AgeGroupSenior},
		Location:    domain.LocationOffice,
		Duration:    "3 دقائق",
		Difficulty:  domain.DifficultyBeginner,
		MuscleGroup: domain.MuscleShoulders,
		Description: "تخفيف التوتر الناتج عن الجلوس الطويل أمام الكمبيوتر.",
		Image:       "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?q=80&w=800",
		Instructions: []string{
			"اجلس بظهر مستقيم.",
			"أمل رأسك لجانب واحد بلطف.",
			"اسحب كتفك المعاكس للأسفل لزيادة التمدد.",
		},
	},
	{
		ID:          "off-2",
		Name:        "رفع الأرجل تحت المكتب",
		Category:    domain.CategoryDeskWorkout,
		AgeGroups:   []string{domain.AgeGroupAdult},
		Location:    domain.LocationOffice,
		Duration:    "5 دقائق",
		Difficulty:  domain.DifficultyBeginner,
		MuscleGroup: domain.MuscleLegs,
		Description: "تنشيط الدورة الدموية في الأرجل وتقوية عضلات البطن السفلية أثناء العمل.",
		Image:       "https://images.unsplash.com/photo-1599447421416-3414500d18a5?q=80&w=800",
		Instructions: []string{
			"اجلس مستقيماً.",
			"ارفع قدميك حتى تصبح موازية للأرض.",
			"اثبت لمدة 5 ثوانٍ ثم انزل ببطء.",
		},
	},
	{
		ID:          "fb-1",
		Name:        "تحدي المراوغة بين الأقماع",
		Category:    domain.CategoryFootball,
		AgeGroups:   []string{domain.AgeGroupKids, domain.AgeGroupYouth},
		Location:    domain.LocationField,
		Duration:    "20 دقيقة",
		Difficulty:  domain.DifficultyIntermediate,
		MuscleGroup: domain.MuscleLegs,
		Description: "تحسين التحكم السريع بالكرة وتغيير الاتجاه المفاجئ.",
		Image:       "https://images.unsplash.com/photo-1551958219-acbc608c6377?q=80&w=800",
		Instructions: []string{
			"ضع 5 أقماع بمسافة متر واحد.",
			"راوغ بالكرة بين الأقماع باستخدام باطن وخارج القدم.",
			"عد بسرعة البرق للبداية.",
		},
	},
	{
		ID:          "fb-2",
		Name:        "القفز المتفجر (Plyo Jumps)",
		Category:    domain.CategoryFootball,
		AgeGroups:   []string{domain.AgeGroupYouth, domain.AgeGroupAdult},
		Location:    domain.LocationField,
		Duration:    "15 دقيقة",
		Difficulty:  domain.DifficultyAdvanced,
		MuscleGroup: domain.MuscleLegs,
		Description: "زيادة القوة الانفجارية للقفز والانطلاقات السريعة في الملعب.",
		Image:       "https://images.unsplash.com/photo-1526676037777-05a232554f77?q=80&w=800",
		Instructions: []string{
			"قف أمام صندوق ثابت.",
			"اقفز بقوة بكلتا القدمين.",
			"انزل بهدوء وكرر.",
		},
	},
	{
		ID:          "rh-1",
		Name:        "وضعية الطير-الكلب (Bird-Dog)",
		Category:    domain.CategoryRehab,
		AgeGroups:   []string{domain.AgeGroupSenior, domain.AgeGroupRehab},
		Location:    domain.LocationAny,
		Duration:    "6 دقائق",
		Difficulty:  domain.DifficultyBeginner,
		MuscleGroup: domain.MuscleCore,
		Description: "إعادة تأهيل أسفل الظهر وتحسين التوازن العصبي العضلي.",
		Image:       "https://images.unsplash.com/photo-1518611012118-696072aa579a?q=80&w=800",
		Instructions: []string{
			"اتخذ وضعية الزحف.",
			"مد ذراعك اليمنى ورجلك اليسرى معاً.",
			"اثبت ثلاث ثوانٍ وبدل الجانبين.",
		},
	},
	{
		ID:          "yg-1",
		Name:        "تحرير الورك (Pigeon Pose)",
		Category:    domain.CategoryYoga,
		AgeGroups:   []string{domain.AgeGroupAdult, domain.AgeGroupPregnant},
		Location:    domain.LocationHome,
		Duration:    "7 دقائق",
		Difficulty:  domain.DifficultyIntermediate,
		MuscleGroup: domain.MuscleLegs,
		Description: "تمدد عميق لمفصل الورك يخفف التصلب الناتج عن الجلوس الطويل.",
		Image:       "https://images.unsplash.com/photo-1575052814086-f385e2e2ad1b?q=80&w=800",
		Instructions: []string{
			"اثنِ رجلك الأمامية أمام جسمك.",
			"مد رجلك الخلفية بالكامل.",
			"انحنِ للأمام مع تنفس عميق.",
		},
	},
	{
		ID:          "hi-1",
		Name:        "متسلق الجبال السريع",
		Category:    domain.CategoryHIIT,
		AgeGroups:   []string{domain.AgeGroupYouth, domain.AgeGroupAdult},
		Location:    domain.LocationAny,
		Duration:    "4 دقائق",
		Difficulty:  domain.DifficultyAdvanced,
		MuscleGroup: domain.MuscleFullBody,
		Description: "رفع معدل ضربات القلب وحرق أقصى سعرات في أقل وقت.",
		Image:       "https://images.unsplash.com/photo-1434682881908-b43d0467b798?q=80&w=800",
		Instructions: []string{
			"خذ وضعية البلانك العالي.",
			"اسحب ركبتيك نحو صدرك بالتناوب بأقصى سرعة.",
			"حافظ على ثبات الحوض.",
		},
	},
}

var products = []domain.Product{
	{
		ID:          "p1",
		Name:        "طقم تدريب Nova الاحترافي",
		Description: "طقم مكون من تيشيرت وشورت بتقنية طرد العرق، مخصص للأداء العالي.",
		Price:       850,
		Currency:    "EGP",
		Image:       "https://images.unsplash.com/photo-1515444744559-7be63e1600de?q=80&w=800",
		Category:    "Apparel",
		Stock:       50,
	},
	{
		ID:          "p2",
		Name:        "كرة قدم Nova Smart G1",
		Description: "كرة قدم معتمدة من FIFA بتصميم عصري يعزز السيطرة الهوائية.",
		Price:       1200,
		Currency:    "EGP",
		Image:       "https://images.unsplash.com/photo-1551958219-acbc608c6377?q=80&w=800",
		Category:    "Equipments",
		Stock:       20,
	},
}
