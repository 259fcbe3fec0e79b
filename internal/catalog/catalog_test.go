package catalog

import (
	"testing"

	"server/internal/domain"
)

func TestExercisesReturnsCopy(t *testing.T) {
	first := Exercises()
	first[0].Name = "mutated"
	second := Exercises()
	if second[0].Name == "mutated" {
		t.Fatal("Exercises must not expose the backing slice")
	}
}

func TestByID(t *testing.T) {
	ex, ok := ByID("st-1")
	if !ok {
		t.Fatal("st-1 missing from catalog")
	}
	if ex.MuscleGroup != domain.MuscleChest {
		t.Fatalf("muscleGroup = %q, want %q", ex.MuscleGroup, domain.MuscleChest)
	}
	if _, ok := ByID("nope"); ok {
		t.Fatal("unknown id must not resolve")
	}
}

func TestSearchByCategory(t *testing.T) {
	got := Search(Filter{Category: domain.CategoryStrength})
	if len(got) == 0 {
		t.Fatal("no strength exercises found")
	}
	for _, ex := range got {
		if ex.Category != domain.CategoryStrength {
			t.Fatalf("category = %q leaked into strength filter", ex.Category)
		}
	}
}

func TestSearchAnyLocationMatchesEverywhere(t *testing.T) {
	got := Search(Filter{Location: domain.LocationOffice})
	var sawAnyLocation bool
	for _, ex := range got {
		if ex.ID == "rh-1" {
			sawAnyLocation = true
		}
	}
	if !sawAnyLocation {
		t.Fatal("location=any exercises must match every location filter")
	}
}

func TestSearchAgeGroupAllWildcard(t *testing.T) {
	got := Search(Filter{AgeGroup: domain.AgeGroupSenior})
	var sawWildcard bool
	for _, ex := range got {
		if ex.ID == "hm-2" {
			sawWildcard = true
		}
	}
	if !sawWildcard {
		t.Fatal("ageGroups=[all] exercises must match every age filter")
	}
}

func TestSearchCombinedFilters(t *testing.T) {
	got := Search(Filter{Category: domain.CategoryFootball, Difficulty: domain.DifficultyAdvanced})
	if len(got) != 1 || got[0].ID != "fb-2" {
		t.Fatalf("got %v, want only fb-2", got)
	}
}

func TestSearchEmptyResultIsNonNil(t *testing.T) {
	got := Search(Filter{Category: "no_such_category"})
	if got == nil {
		t.Fatal("Search must return an empty slice, not nil")
	}
	if len(got) != 0 {
		t.Fatalf("got %d results, want none", len(got))
	}
}

func TestProductsSeed(t *testing.T) {
	got := Products()
	if len(got) == 0 {
		t.Fatal("product seed is empty")
	}
	for _, p := range got {
		if p.ID == "" || p.Price <= 0 || p.Currency == "" {
			t.Fatalf("malformed seed product: %+v", p)
		}
	}
}
