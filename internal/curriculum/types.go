package curriculum

// Category groups an ordered run of skills under a display name.
type Category struct {
	Name   string  `json:"category"`
	Skills []Skill `json:"skills"`
}

// Skill is a named unit of curriculum content. Its learning material is
// looked up by name through the Index.
type Skill struct {
	Name string `json:"name"`
}

// Material is the learning-material document backing one skill.
type Material struct {
	Topic    string   `json:"topic"`
	Theory   Theory   `json:"theory"`
	Practice Practice `json:"practice_examples"`
}

// Theory holds the explanatory portion of a material.
type Theory struct {
	Overview string `json:"overview"`
}

// Practice holds the ordered exercise list of a material.
type Practice struct {
	Examples []Exercise `json:"examples"`
}

// Exercise is one code-comprehension practice item.
// HiddenExplanation is ground truth for the evaluator and is never
// shown to the learner.
type Exercise struct {
	ID                string   `json:"id"`
	Code              string   `json:"code"`
	Description       string   `json:"description,omitempty"`
	HiddenExplanation string   `json:"hidden_explanation,omitempty"`
	ExpectedConcepts  []string `json:"expected_concepts,omitempty"`
}
