package evaluate

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	braceRe      = regexp.MustCompile(`(?s)(\{.*\})`)
)

// modelVerdict mirrors the JSON shape the prompt demands. Recommendations
// is free text, not a list.
type modelVerdict struct {
	Result          string   `json:"result"`
	Feedback        string   `json:"feedback"`
	Recommendations string   `json:"recommendations"`
	CoveredConcepts []string `json:"covered_concepts"`
	MissingConcepts []string `json:"missing_concepts"`
}

// reconcile turns a raw model reply into a Verdict. It tries a fenced
// ```json block first, then any brace-delimited substring, then the raw
// text. A reply that fails to parse drops to fallback mode: success is
// decided by a case-insensitive "SUCCESS" scan and the raw text becomes
// the feedback verbatim. Parse failures are logged, never returned.
func reconcile(raw string) Verdict {
	payload := raw
	if m := fencedJSONRe.FindStringSubmatch(raw); m != nil {
		payload = m[1]
	} else if m := braceRe.FindStringSubmatch(raw); m != nil {
		payload = m[1]
	}

	var mv modelVerdict
	if err := json.Unmarshal([]byte(payload), &mv); err != nil {
		fmt.Fprintf(os.Stderr, "warning: model reply is not valid JSON (%v), using fallback parsing\n", err)
		return Verdict{
			Success:         strings.Contains(strings.ToUpper(raw), "SUCCESS"),
			Feedback:        raw,
			CoveredConcepts: []string{},
			MissingConcepts: []string{},
		}
	}

	v := Verdict{
		Success:         strings.EqualFold(mv.Result, "SUCCESS"),
		Feedback:        combineFeedback(mv),
		CoveredConcepts: mv.CoveredConcepts,
		MissingConcepts: mv.MissingConcepts,
	}
	if v.CoveredConcepts == nil {
		v.CoveredConcepts = []string{}
	}
	if v.MissingConcepts == nil {
		v.MissingConcepts = []string{}
	}
	return v
}

// combineFeedback folds the recommendations and concept lists into one
// display string, each section introduced by a fixed label and separated
// by a blank line. Empty sections are skipped.
func combineFeedback(mv modelVerdict) string {
	parts := []string{}
	if mv.Feedback != "" {
		parts = append(parts, mv.Feedback)
	}
	if mv.Recommendations != "" {
		parts = append(parts, "Recommendations:\n"+mv.Recommendations)
	}
	if len(mv.CoveredConcepts) > 0 {
		parts = append(parts, "Concepts covered:\n- "+strings.Join(mv.CoveredConcepts, "\n- "))
	}
	if len(mv.MissingConcepts) > 0 {
		parts = append(parts, "Concepts missing:\n- "+strings.Join(mv.MissingConcepts, "\n- "))
	}
	return strings.Join(parts, "\n\n")
}
