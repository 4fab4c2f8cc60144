package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/okrylov/praktik/internal/curriculum"
	"github.com/okrylov/praktik/internal/engine"
	"github.com/okrylov/praktik/internal/evaluate"
	"github.com/okrylov/praktik/internal/practice"
)

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	snap, err := s.engine.Snapshot(r.Context(), identityFrom(r.Context()))
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleSkills(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"skills_tree": s.engine.Index().Categories(),
	})
}

func (s *Server) handleSelectSkill(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Skill string `json:"skill"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload("invalid JSON body"))
		return
	}

	snap, err := s.engine.SelectSkill(r.Context(), identityFrom(r.Context()), req.Skill)
	var unknown *engine.UnknownSkillError
	if errors.As(err, &unknown) {
		writeJSON(w, http.StatusNotFound, errorPayload(unknown.Error()))
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// exerciseView is the client-facing shape of an exercise. The hidden
// explanation and expected concepts stay server-side.
type exerciseView struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

func viewOf(ex curriculum.Exercise) exerciseView {
	return exerciseView{ID: ex.ID, Code: ex.Code, Description: ex.Description}
}

// selectionView wraps an exercise view with its selection state.
type selectionView struct {
	Exercise exerciseView `json:"exercise"`
	State    string       `json:"state"`
}

func viewOfSelection(sel practice.Selection) selectionView {
	return selectionView{Exercise: viewOf(sel.Exercise), State: stateString(sel.State)}
}

// exercisePayload wraps a selection with the skill it was drawn from.
type exercisePayload struct {
	Exercise exerciseView `json:"exercise"`
	State    string       `json:"state"`
	Skill    string       `json:"skill"`
}

func (s *Server) handleExercise(w http.ResponseWriter, r *http.Request) {
	skill := r.URL.Query().Get("skill")

	sel, err := s.engine.NextExercise(r.Context(), identityFrom(r.Context()), skill)
	var unknown *engine.UnknownSkillError
	if errors.As(err, &unknown) {
		writeJSON(w, http.StatusNotFound, errorPayload(unknown.Error()))
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	snap, err := s.engine.Snapshot(r.Context(), identityFrom(r.Context()))
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, exercisePayload{
		Exercise: viewOf(sel.Exercise),
		State:    stateString(sel.State),
		Skill:    snap.CurrentSkill,
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())

	var req struct {
		ExerciseID  string `json:"exercise_id"`
		Explanation string `json:"explanation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload("invalid JSON body"))
		return
	}

	res, err := s.engine.Submit(r.Context(), identity, engine.SubmitInput{
		ExerciseID:  req.ExerciseID,
		Explanation: req.Explanation,
	})
	if err != nil {
		s.submitError(w, r, identity, err)
		return
	}

	payload := submitPayload{
		Success:         res.Success,
		Feedback:        res.Feedback,
		CoveredConcepts: res.CoveredConcepts,
		MissingConcepts: res.MissingConcepts,
		NextSkill:       res.NextSkill,
		SkillCompleted:  res.SkillCompleted,
	}
	if res.NextExercise != nil {
		v := viewOfSelection(*res.NextExercise)
		payload.NextExercise = &v
	}
	writeJSON(w, http.StatusOK, payload)
}

// submitPayload mirrors the engine's submit result with client-safe
// exercise data. Error paths reuse it so the shape never changes.
type submitPayload struct {
	Success         bool           `json:"success"`
	Feedback        string         `json:"feedback"`
	CoveredConcepts []string       `json:"covered_concepts"`
	MissingConcepts []string       `json:"missing_concepts"`
	NextExercise    *selectionView `json:"next_exercise"`
	NextSkill       string         `json:"next_skill"`
	SkillCompleted  bool           `json:"skill_completed"`
}

// submitError renders submission failures with the same shape as a
// successful result, so clients always get a complete payload.
func (s *Server) submitError(w http.ResponseWriter, r *http.Request, identity string, err error) {
	snap, snapErr := s.engine.Snapshot(r.Context(), identity)
	currentSkill := ""
	if snapErr == nil {
		currentSkill = snap.CurrentSkill
	}

	shape := submitPayload{
		CoveredConcepts: []string{},
		MissingConcepts: []string{},
		NextSkill:       currentSkill,
	}

	switch {
	case errors.Is(err, engine.ErrMissingExerciseID):
		shape.Feedback = "Error: exercise identifier missing"
		writeJSON(w, http.StatusBadRequest, shape)

	default:
		var unknown *engine.UnknownExerciseError
		if errors.As(err, &unknown) {
			shape.Feedback = fmt.Sprintf("Error: exercise with identifier %q not found", unknown.ID)
			v := viewOfSelection(unknown.Suggestion)
			shape.NextExercise = &v
			writeJSON(w, http.StatusNotFound, shape)
			return
		}
		if errors.Is(err, evaluate.ErrModelTransport) {
			s.log.Error("evaluation failed", "error", err)
			shape.Feedback = "Error: the evaluation service is unavailable, try again later"
			writeJSON(w, http.StatusBadGateway, shape)
			return
		}
		s.internalError(w, r, err)
	}
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())
	if err := s.engine.Reset(r.Context(), identity); err != nil {
		s.internalError(w, r, err)
		return
	}

	snap, err := s.engine.Snapshot(r.Context(), identity)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorPayload("internal error"))
}

func errorPayload(msg string) map[string]any {
	return map[string]any{"error": msg}
}

func stateString(st practice.State) string {
	switch st {
	case practice.StateAllCompleted:
		return "all_completed"
	case practice.StateNoExercises:
		return "no_exercises"
	default:
		return "picked"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
