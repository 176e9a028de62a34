package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"quizforge-service/internal/app"
	"quizforge-service/internal/domain"
)

// Handler maps REST requests onto the quiz use cases and their outcomes onto
// status codes. ValidationError maps to 400, NotFoundError to 404.
type Handler struct {
	service *app.QuizService
}

func NewHandler(service *app.QuizService) *Handler {
	return &Handler{service: service}
}

// NewRouter wires every endpoint, CORS, and the websocket result feed.
func NewRouter(service *app.QuizService, feed *app.ResultFeed, allowedOrigins []string) http.Handler {
	h := NewHandler(service)
	ws := NewWSHandler(feed)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", h.health)
	r.Get("/ws", ws.ServeWS)
	r.Route("/quizzes", func(r chi.Router) {
		r.Post("/", h.createQuiz)
		r.Get("/", h.listQuizzes)
		r.Route("/{quizID}", func(r chi.Router) {
			r.Get("/", h.getQuiz)
			r.Patch("/", h.renameQuiz)
			r.Delete("/", h.deleteQuiz)
			r.Get("/questions", h.listQuestions)
			r.Post("/questions", h.addQuestion)
			r.Delete("/questions/{questionID}", h.removeQuestion)
			r.Post("/submissions", h.submit)
			r.Get("/stats", h.stats)
		})
	})
	return r
}

type createQuizRequest struct {
	Title string `json:"title"`
}

type submitRequest struct {
	Answers []domain.AnswerInput `json:"answers"`
}

// questionMeta is the public shape of a created question: no options, no
// correctness flags.
type questionMeta struct {
	ID          string              `json:"id"`
	Text        string              `json:"text"`
	Type        domain.QuestionType `json:"type"`
	OptionCount int                 `json:"optionCount"`
	CreatedAt   time.Time           `json:"createdAt"`
}

type quizDetail struct {
	domain.QuizSummary
	Statistics domain.QuizStatistics `json:"statistics"`
}

func (h *Handler) createQuiz(w http.ResponseWriter, r *http.Request) {
	var req createQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("Invalid JSON payload"))
		return
	}
	quiz, err := h.service.CreateQuiz(r.Context(), req.Title)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, quiz.Summary())
}

func (h *Handler) listQuizzes(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.ListQuizzes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *Handler) getQuiz(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")
	quiz, err := h.service.GetQuiz(r.Context(), quizID)
	if err != nil {
		writeError(w, err)
		return
	}
	stats, err := h.service.Statistics(r.Context(), quizID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quizDetail{QuizSummary: quiz.Summary(), Statistics: stats})
}

func (h *Handler) renameQuiz(w http.ResponseWriter, r *http.Request) {
	var req createQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("Invalid JSON payload"))
		return
	}
	quiz, err := h.service.RenameQuiz(r.Context(), chi.URLParam(r, "quizID"), req.Title)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz.Summary())
}

func (h *Handler) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteQuiz(r.Context(), chi.URLParam(r, "quizID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addQuestion(w http.ResponseWriter, r *http.Request) {
	var input domain.QuestionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, domain.NewValidationError("Invalid JSON payload"))
		return
	}
	question, err := h.service.AddQuestion(r.Context(), chi.URLParam(r, "quizID"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, questionMeta{
		ID:          question.ID,
		Text:        question.Text,
		Type:        question.Type,
		OptionCount: len(question.Options),
		CreatedAt:   question.CreatedAt,
	})
}

func (h *Handler) removeQuestion(w http.ResponseWriter, r *http.Request) {
	err := h.service.RemoveQuestion(r.Context(), chi.URLParam(r, "quizID"), chi.URLParam(r, "questionID"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListQuestions(r.Context(), chi.URLParam(r, "quizID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("Invalid JSON payload"))
		return
	}
	result, err := h.service.Submit(r.Context(), chi.URLParam(r, "quizID"), req.Answers)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context(), chi.URLParam(r, "quizID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Health(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	var nf *domain.NotFoundError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{Kind: "validation", Message: ve.Message}})
	case errors.As(err, &nf):
		writeJSON(w, http.StatusNotFound, errorBody{Error: errorDetail{Kind: "not_found", Message: nf.Message}})
	default:
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: errorDetail{Kind: "internal", Message: "Internal server error"}})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("write response: %v", err)
	}
}
