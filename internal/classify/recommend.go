package classify

var recommendations = map[Label]string{
	NonDemented:      "No signs of dementia detected. Maintain regular check-ups.",
	VeryMildDemented: "Very mild cognitive symptoms observed. Recommend monitoring.",
	MildDemented:     "Mild dementia detected. Clinical evaluation advised.",
	ModerateDemented: "Moderate dementia identified. Consult a neurologist promptly.",
}

// FallbackRecommendation covers labels without a specific advisory line.
const FallbackRecommendation = "Further evaluation advised."

// Recommend returns the advisory line for a label, falling back to a generic
// recommendation for unrecognized labels.
func Recommend(label Label) string {
	if rec, ok := recommendations[label]; ok {
		return rec
	}
	return FallbackRecommendation
}
