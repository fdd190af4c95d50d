package routing

import (
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"eventfeedback/pkg/handlers"
	"eventfeedback/pkg/store"
	"eventfeedback/pkg/user"
)

func InitRoutes(api *mux.Router, db *sql.DB, logger *slog.Logger) {

	sessionRepo := user.NewSQLSessionRepo(db)

	userService := user.NewService(user.NewSQLRepo(db), sessionRepo)
	userHandler := handlers.NewUserHandler(userService, logger)

	feedbackHandler := handlers.NewFeedbackHandler(store.NewSQLRepo(db), logger)

	/* -+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+ */

	usersRouter := api.PathPrefix("/users").Subrouter()
	feedbacksRouter := api.PathPrefix("/feedbacks").Subrouter()

	/* auth routers */
	usersRouter.HandleFunc("/register", userHandler.Register).Methods("POST").Name("register")
	usersRouter.HandleFunc("/login", userHandler.Login).Methods("POST").Name("login")

	/* feedback routers */
	feedbacksRouter.HandleFunc("", feedbackHandler.GetFeedbacks).Methods("GET")
	feedbacksRouter.HandleFunc("", feedbackHandler.CreateFeedback).Methods("POST")
	feedbacksRouter.HandleFunc("/{feedback_id}", feedbackHandler.UpdateFeedback).Methods("PUT")
	feedbacksRouter.HandleFunc("/{feedback_id}", feedbackHandler.DeleteFeedback).Methods("DELETE")
}

func StartServer(r *mux.Router, addr string) {
	fmt.Println("\n\033[32m", "feedbackd listening on http://"+addr, "\033[0m")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("Server failed:", err)
	}
}
