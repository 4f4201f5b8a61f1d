package services

import "strings"

// VisualConcept is one label returned by the image classifier, with its
// confidence in [0,1]. The classifier returns concepts ordered by descending
// confidence and that order is preserved end to end.
type VisualConcept struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"value"`
}

const minConceptConfidence = 0.4

// maxFoodLabels caps how many labels go into the nutrition query.
const maxFoodLabels = 3

// foodKeywords is the fixed vocabulary used to decide whether a classifier
// concept is food-related. Matching is substring in either direction, so
// "cheeseburger" matches "burger" and "nut" matches "peanut".
var foodKeywords = []string{
	"food", "fruit", "vegetable", "meat", "bread", "pasta", "rice", "pizza", "burger", "sandwich",
	"apple", "banana", "chicken", "beef", "fish", "salad", "soup", "cheese", "egg", "potato",
	"tomato", "lettuce", "carrot", "broccoli", "corn", "bean", "nut", "berry", "cake", "cookie",
	"meal", "dinner", "lunch", "breakfast", "snack", "dish", "cuisine", "beverage", "drink",
}

// FilterFoodConcepts reduces raw classifier concepts to at most three
// lowercase food labels, dropping anything at or below the confidence
// threshold or outside the food vocabulary. Input order is preserved.
func FilterFoodConcepts(concepts []VisualConcept) []string {
	labels := make([]string, 0, maxFoodLabels)
	for _, c := range concepts {
		if c.Confidence <= minConceptConfidence {
			continue
		}
		name := strings.ToLower(c.Name)
		if !matchesFoodKeyword(name) {
			continue
		}
		labels = append(labels, name)
		if len(labels) == maxFoodLabels {
			break
		}
	}
	return labels
}

func matchesFoodKeyword(name string) bool {
	for _, kw := range foodKeywords {
		if strings.Contains(name, kw) || strings.Contains(kw, name) {
			return true
		}
	}
	return false
}
