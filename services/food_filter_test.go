package services

import (
	"reflect"
	"testing"
)

func TestFilterFoodConcepts_DropsLowConfidence(t *testing.T) {
	concepts := []VisualConcept{
		{Name: "pizza", Confidence: 0.4},
		{Name: "burger", Confidence: 0.39},
		{Name: "salad", Confidence: 0.01},
	}
	if got := FilterFoodConcepts(concepts); len(got) != 0 {
		t.Fatalf("expected no labels at or below threshold, got %v", got)
	}
}

func TestFilterFoodConcepts_KeepsOnlyFoodVocabulary(t *testing.T) {
	concepts := []VisualConcept{
		{Name: "car", Confidence: 0.95},
		{Name: "Pizza", Confidence: 0.9},
		{Name: "skyscraper", Confidence: 0.8},
	}
	got := FilterFoodConcepts(concepts)
	want := []string{"pizza"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFilterFoodConcepts_SubstringMatchesBothDirections(t *testing.T) {
	concepts := []VisualConcept{
		{Name: "cheeseburger", Confidence: 0.9}, // name contains keyword
		{Name: "bev", Confidence: 0.9},          // keyword contains name
	}
	got := FilterFoodConcepts(concepts)
	if len(got) != 2 {
		t.Fatalf("expected both directions to match, got %v", got)
	}
}

func TestFilterFoodConcepts_CapsAtThreeAndPreservesOrder(t *testing.T) {
	concepts := []VisualConcept{
		{Name: "pizza", Confidence: 0.99},
		{Name: "salad", Confidence: 0.95},
		{Name: "soup", Confidence: 0.9},
		{Name: "burger", Confidence: 0.85},
	}
	got := FilterFoodConcepts(concepts)
	want := []string{"pizza", "salad", "soup"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFilterFoodConcepts_EmptyInput(t *testing.T) {
	if got := FilterFoodConcepts(nil); len(got) != 0 {
		t.Fatalf("expected empty output, got %v", got)
	}
}
