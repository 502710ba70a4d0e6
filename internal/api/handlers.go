package api

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rcliao/pm-philosophy/internal/metrics"
	"github.com/rcliao/pm-philosophy/internal/model"
	"github.com/rcliao/pm-philosophy/internal/quiz"
	"github.com/rcliao/pm-philosophy/internal/recommend"
)

// answersRequest is the body of the profile and recommendations endpoints.
type answersRequest struct {
	Answers quiz.Answers `json:"answers" validate:"required,min=1,dive,keys,required,endkeys,required"`
}

// alignmentRequest scores one episode. Existing lists slugs the caller
// already recommends; the score is discounted for overlap with them.
type alignmentRequest struct {
	Answers  quiz.Answers `json:"answers" validate:"required,min=1,dive,keys,required,endkeys,required"`
	Existing []string     `json:"existing" validate:"max=20,dive,required"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Episodes int    `json:"episodes"`
	Curated  int    `json:"curated"`
}

type quizResponse struct {
	MinAnswers int             `json:"min_answers"`
	Questions  []quiz.Question `json:"questions"`
}

type episodeResponse struct {
	Episode    model.Episode            `json:"episode"`
	Curated    bool                     `json:"curated"`
	Enrichment *model.EpisodeEnrichment `json:"enrichment,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	sum := s.library.Summary()
	respondJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Episodes: sum.Episodes,
		Curated:  sum.Curated,
	})
}

func (s *Server) zones(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, model.Zones())
}

func (s *Server) quiz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, quizResponse{
		MinAnswers: s.engine.MinAnswers(),
		Questions:  s.engine.Quiz().Questions(),
	})
}

// checkAnswers writes a 400 and returns false when answers cannot be
// profiled.
func (s *Server) checkAnswers(w http.ResponseWriter, answers quiz.Answers) bool {
	err := s.engine.CheckAnswers(answers)
	switch {
	case err == nil:
		return true
	case errors.Is(err, recommend.ErrTooFewAnswers):
		respondError(w, http.StatusBadRequest, codeTooFewAnswers, err.Error())
	default:
		respondError(w, http.StatusBadRequest, codeInvalidAnswers, err.Error())
	}
	return false
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	var req answersRequest
	if !decodeBody(w, r, &req) || !s.checkAnswers(w, req.Answers) {
		return
	}
	respondJSON(w, http.StatusOK, s.engine.Profile(req.Answers))
}

func (s *Server) recommendations(w http.ResponseWriter, r *http.Request) {
	var req answersRequest
	if !decodeBody(w, r, &req) || !s.checkAnswers(w, req.Answers) {
		return
	}
	respondJSON(w, http.StatusOK, s.recommend(req.Answers))
}

// recommend runs the pipeline, memoizing by answer set. Results are never
// mutated after they are cached.
func (s *Server) recommend(answers quiz.Answers) model.Recommendations {
	key := cacheKey(answers)
	if s.cache != nil {
		if recs, ok := s.cache.Get(key); ok {
			metrics.RecordCache(true)
			return recs
		}
		metrics.RecordCache(false)
	}

	start := time.Now()
	recs := s.engine.Generate(answers)
	metrics.RecordRecommendation(string(recs.UserProfile.PrimaryZone), time.Since(start))

	if s.cache != nil {
		s.cache.Add(key, recs)
	}
	return recs
}

// cacheKey is the canonical form of an answer set: question ids sorted.
func cacheKey(answers quiz.Answers) string {
	v := make(url.Values, len(answers))
	for q, a := range answers {
		v.Set(q, a)
	}
	return v.Encode()
}

func (s *Server) alignment(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	var req alignmentRequest
	if !decodeBody(w, r, &req) || !s.checkAnswers(w, req.Answers) {
		return
	}

	profile := s.engine.Profile(req.Answers)
	existing := make([]model.EpisodeAlignment, 0, len(req.Existing))
	for _, other := range req.Existing {
		a, ok := s.engine.EpisodeAlignment(profile, other, nil)
		if !ok {
			respondError(w, http.StatusNotFound, codeNotFound, "unknown episode in existing: "+other)
			return
		}
		existing = append(existing, a)
	}

	a, ok := s.engine.EpisodeAlignment(profile, slug, existing)
	if !ok {
		respondError(w, http.StatusNotFound, codeNotFound, "no curated episode "+slug)
		return
	}
	respondJSON(w, http.StatusOK, a)
}

func (s *Server) episode(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	ep, ok := s.library.Episode(slug)
	if !ok {
		respondError(w, http.StatusNotFound, codeNotFound, "no episode "+slug)
		return
	}
	resp := episodeResponse{Episode: ep, Curated: s.library.Curated(slug)}
	if e, ok := s.library.Enrichment(slug); ok {
		resp.Enrichment = e
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) quote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	q, ok := s.library.Quote(id)
	if !ok {
		respondError(w, http.StatusNotFound, codeNotFound, "no quote "+id)
		return
	}
	respondJSON(w, http.StatusOK, q)
}
