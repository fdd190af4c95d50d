package main

import (
	"os"

	"eventfeedback/internal/config"
	"eventfeedback/internal/logger"
	"eventfeedback/internal/routing"
	"eventfeedback/internal/sqlite"
	"eventfeedback/pkg/middleware"
	"eventfeedback/pkg/user"

	"github.com/gorilla/mux"
)

// feedbackd is the development backend for the terminal client: the REST
// surface the real deployment exposes, served from an in-process sqlite
// database so local runs and integration tests need nothing external.
func main() {
	config.Load() // optional .env
	config.MustGet("JWT_SECRET")

	db := sqlite.LoadDB(os.Getenv("FEEDBACKD_DB"))
	defer db.Close()

	logger := logger.Load()

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Panic)
	api.Use(middleware.CheckJWT(user.NewSQLSessionRepo(db)))

	routing.InitRoutes(api, db, logger)
	routing.StartServer(r, config.Get("FEEDBACKD_ADDR", "localhost:3000"))
}
