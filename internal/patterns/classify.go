package patterns

// ML Classification Hook
//
// The engine does not train or ship a model. It exposes a binary
// classification seam: callers hand over a feature matrix and any model
// satisfying the Predict contract, and get one 0/1 label per sample back.
// With no model supplied the hook returns an all-zero (not-flagged)
// vector of matching length: a deliberate pass-through default so
// pipelines can run identically with and without a model wired in.

// Classifier is the external model contract: one binary label per
// feature row.
type Classifier interface {
	Predict(features [][]float64) []int
}

// Classify runs the supplied model over the feature matrix. A nil model
// yields all zeros.
func Classify(features [][]float64, model Classifier) []int {
	if model == nil {
		return make([]int, len(features))
	}
	return model.Predict(features)
}
