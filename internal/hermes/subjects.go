package hermes

const (
	// SubjectWeightsSet carries a weight configuration from a remote slider UI.
	SubjectWeightsSet = "ccs.weights.set"

	SubjectWeightsUpdated   = "ccs.weights.updated"
	SubjectScoresRecomputed = "ccs.scores.recomputed"

	StreamName   = "CCS_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

// SubjectRecordInvalid is published once per record that fails validation.
func SubjectRecordInvalid(index string) string { return "ccs.record." + index + ".invalid" }
