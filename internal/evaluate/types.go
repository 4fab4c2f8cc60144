package evaluate

// Input carries everything the evaluator needs to judge one explanation.
type Input struct {
	// Topic and Overview summarize the learning material the exercise
	// belongs to.
	Topic    string
	Overview string

	// ExerciseCode is the code snippet the learner was asked to explain.
	ExerciseCode string

	// Explanation is the learner's own description of the code.
	Explanation string

	// HiddenExplanation is the ground-truth explanation, never shown to
	// the learner. May be empty.
	HiddenExplanation string

	// ExpectedConcepts lists concepts a strong answer would mention.
	// May be empty.
	ExpectedConcepts []string
}

// Verdict is the evaluator's judgement of an explanation. It is always
// produced, even from malformed model replies.
type Verdict struct {
	Success         bool     `json:"success"`
	Feedback        string   `json:"feedback"`
	CoveredConcepts []string `json:"covered_concepts"`
	MissingConcepts []string `json:"missing_concepts"`
}
