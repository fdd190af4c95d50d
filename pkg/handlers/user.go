package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	jwt "github.com/dgrijalva/jwt-go"

	"eventfeedback/pkg/user"
)

type CredentialsForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Handler struct {
	Service user.ServiceInterface
	Logger  *slog.Logger
}

func NewUserHandler(service user.ServiceInterface, logger *slog.Logger) *Handler {
	return &Handler{
		Service: service,
		Logger:  logger,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	_, err := h.Service.Register(req.Email, req.Password)
	if err != nil {
		switch err.Error() {
		case "user already exists":
			writeError(w, http.StatusUnprocessableEntity, typeMessage, "user already exists")
		case "email and password are required":
			writeError(w, http.StatusBadRequest, typeMessage, err.Error())
		default:
			h.Logger.Error("register", "error", err.Error())
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if ok := WriteResp(w, h.Logger, map[string]any{"message": "user created"}, http.StatusCreated); ok {
		h.Logger.Info("register", "email", req.Email)
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	u, err := h.Service.Login(req.Email, req.Password)
	if err != nil {
		var msg string
		if err.Error() == "user not found" {
			msg = "user not found"
		} else {
			msg = "invalid password"
		}
		if ok := WriteResp(w, h.Logger, map[string]any{"message": msg}, http.StatusUnauthorized); ok {
			h.Logger.Error("login", "error", "unauthorized", "email", req.Email)
		}
		return
	}

	GenerateToken(u.Email, u.ID, w, h.Logger)
}

func DecodeJSONBody(w http.ResponseWriter, r *http.Request, req any) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		writeError(w, http.StatusBadRequest, typeError, "invalid Content-Type")
		return false
	}

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, typeError, "bad json")
		return false
	}

	return true
}

func GenerateToken(email, userID string, w http.ResponseWriter, logger *slog.Logger) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user": map[string]string{
			"email": email,
			"id":    userID,
		},
		"iat": time.Now().UTC().Unix(),
		"exp": time.Now().Add(time.Hour * 1).UTC().Unix(),
	})
	tokenString, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		logger.Error("token signing", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if ok := WriteResp(w, logger, map[string]any{"token": tokenString}, http.StatusOK); ok {
		logger.Info("login", "user", userID)
	}
}

func WriteResp(w http.ResponseWriter, logger *slog.Logger, body map[string]any, status int) bool {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to write JSON response", slog.Any("err", err))
		return false
	}
	return true
}
