package evaluate

import (
	"fmt"
	"strings"
	"text/template"
)

const evaluationSystemPrompt = `You are an experienced programming tutor in a code-reading practice app. Learners study a programming topic, then describe a piece of code in their own words. Your job is to judge whether the explanation demonstrates real understanding of the code.`

var userMessageTmpl = template.Must(template.New("evaluation").Parse(
	`Learning material:
Topic: {{.Topic}}
Overview: {{.Overview}}

Exercise code:
{{.ExerciseCode}}

Reference explanation (the full picture, not shown to the learner):
{{.HiddenExplanation}}

Key concepts a strong answer is encouraged (but NOT required) to mention:
{{.Concepts}}

Judge whether this explanation demonstrates understanding of the code:
{{.Explanation}}

Respond strictly in JSON:
` + "```json" + `
{
    "result": "SUCCESS" or "FAILURE",
    "feedback": "Your detailed feedback, addressed directly to the learner",
    "recommendations": "Concrete suggestions for improvement (if needed)",
    "covered_concepts": ["Concepts the learner explained well"],
    "missing_concepts": ["Concepts the learner did not cover"]
}
` + "```" + `

Important:
- Address the learner directly ("You correctly understood..." rather than "The learner understood...").
- Follow the JSON format strictly.
- Mentioning the key concepts is a bonus, never a requirement.
- Do not demand anything outside the scope of this skill.
- Grade at a difficulty of 6 out of 10.`))

type promptData struct {
	Topic             string
	Overview          string
	ExerciseCode      string
	HiddenExplanation string
	Concepts          string
	Explanation       string
}

// buildUserMessage renders the evaluation prompt for one submission.
func buildUserMessage(in Input) (string, error) {
	concepts := make([]string, 0, len(in.ExpectedConcepts))
	for _, c := range in.ExpectedConcepts {
		concepts = append(concepts, "- "+c)
	}

	data := promptData{
		Topic:             in.Topic,
		Overview:          in.Overview,
		ExerciseCode:      in.ExerciseCode,
		HiddenExplanation: in.HiddenExplanation,
		Concepts:          strings.Join(concepts, "\n"),
		Explanation:       in.Explanation,
	}

	var b strings.Builder
	if err := userMessageTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render evaluation prompt: %w", err)
	}
	return b.String(), nil
}
