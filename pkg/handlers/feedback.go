package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"eventfeedback/pkg/claims"
	"eventfeedback/pkg/store"
)

const (
	typeError   string = "error"
	typeMessage string = "message"
	muxVarFbID  string = "feedback_id"
	minRating   int    = 1
	maxRating   int    = 5
)

type FeedbackHandler struct {
	Repo   store.Repository
	Logger *slog.Logger
}

func NewFeedbackHandler(repo store.Repository, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		Repo:   repo,
		Logger: logger,
	}
}

type feedbackForm struct {
	Event   string `json:"event"`
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

func (f *feedbackForm) validate(requireEvent bool) (string, bool) {
	if requireEvent && strings.TrimSpace(f.Event) == "" {
		return "event is required", false
	}
	if f.Rating < minRating || f.Rating > maxRating {
		return "rating must be between 1 and 5", false
	}
	return "", true
}

func (h *FeedbackHandler) GetFeedbacks(w http.ResponseWriter, r *http.Request) {
	var c claims.Claims
	if ok := getClaimsFromContext(w, r, &c); !ok {
		return
	}

	feedbacks, err := h.Repo.GetByUser(c.User.ID)
	if err != nil {
		h.Logger.Error("list feedbacks", "error", err)
		writeError(w, http.StatusInternalServerError, typeMessage, "failed to load feedbacks")
		return
	}

	writeJSON(w, h.Logger, feedbacks, http.StatusOK)
}

func (h *FeedbackHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var form feedbackForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.Logger.Error("invalid json", "error", err)
		writeError(w, http.StatusBadRequest, typeError, "invalid JSON payload")
		return
	}

	if msg, ok := form.validate(true); !ok {
		writeError(w, http.StatusBadRequest, typeMessage, msg)
		return
	}

	var c claims.Claims
	if ok := getClaimsFromContext(w, r, &c); !ok {
		return
	}

	fb := &store.Feedback{
		UserID:  c.User.ID,
		Event:   strings.TrimSpace(form.Event),
		Comment: form.Comment,
		Rating:  form.Rating,
	}
	if err := h.Repo.Create(fb); err != nil {
		h.Logger.Error("create feedback", "error", err)
		writeError(w, http.StatusInternalServerError, typeMessage, "failed to save feedback")
		return
	}

	if ok := writeJSON(w, h.Logger, fb, http.StatusCreated); ok {
		h.Logger.Info("feedback created", "user", c.User.ID, "id", fb.ID)
	}
}

func (h *FeedbackHandler) UpdateFeedback(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	fbID, ok := mux.Vars(r)[muxVarFbID]
	if !ok {
		writeError(w, http.StatusBadRequest, typeMessage, "invalid feedback id")
		return
	}

	var form feedbackForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.Logger.Error("invalid json", "error", err)
		writeError(w, http.StatusBadRequest, typeError, "invalid JSON payload")
		return
	}

	if msg, ok := form.validate(false); !ok {
		writeError(w, http.StatusBadRequest, typeMessage, msg)
		return
	}

	var c claims.Claims
	if ok := getClaimsFromContext(w, r, &c); !ok {
		return
	}

	fb, err := h.Repo.Update(fbID, c.User.ID, form.Comment, form.Rating)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, typeMessage, err.Error())
			return
		}
		h.Logger.Error("update feedback", "id", fbID, "error", err)
		writeError(w, http.StatusInternalServerError, typeMessage, "failed to update feedback")
		return
	}

	if ok := writeJSON(w, h.Logger, fb, http.StatusOK); ok {
		h.Logger.Info("feedback updated", "user", c.User.ID, "id", fbID)
	}
}

func (h *FeedbackHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	fbID, ok := mux.Vars(r)[muxVarFbID]
	if !ok {
		writeError(w, http.StatusBadRequest, typeMessage, "invalid feedback id")
		return
	}

	var c claims.Claims
	if ok := getClaimsFromContext(w, r, &c); !ok {
		return
	}

	if err := h.Repo.Delete(fbID, c.User.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, typeMessage, err.Error())
			return
		}
		h.Logger.Error("delete feedback", "id", fbID, "error", err)
		writeError(w, http.StatusInternalServerError, typeMessage, "failed to delete feedback")
		return
	}

	w.WriteHeader(http.StatusNoContent)
	h.Logger.Info("feedback deleted", "user", c.User.ID, "id", fbID)
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, data any, status int) bool {
	resp, err := json.Marshal(data)
	if err != nil {
		logger.Error("Failed to serialize JSON response", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "failed json marshal")
		return false
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(resp); err != nil {
		logger.Error("Failed to write response to client", "error", err)
		return false
	}
	return true
}

func getClaimsFromContext(w http.ResponseWriter, r *http.Request, c *claims.Claims) bool {
	val, ok := r.Context().Value(claims.TokenContextKey).(*claims.Claims)
	if !ok || val == nil || val.User.ID == "" {
		writeError(w, http.StatusUnauthorized, typeMessage, "unauthorized")
		return false
	}
	*c = *val
	return true
}

func writeError(w http.ResponseWriter, status int, field, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{field: msg}); err != nil {
		return
	}
}
