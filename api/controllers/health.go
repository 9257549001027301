package controllers

import (
	"net/http"

	"github.com/easemart/easemart-backend/api/responses"
	"github.com/easemart/easemart-backend/pkg/config"
	"github.com/easemart/easemart-backend/pkg/db"
	pkgerrors "github.com/easemart/easemart-backend/pkg/errors"
	"github.com/easemart/easemart-backend/pkg/logger"
)

// Welcome is the public landing route.
func Welcome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, "Welcome to Ease Mart API!")
	}
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-EaseMart-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the database answers a ping.
func HealthReady(cfg *config.Config, client *db.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-EaseMart-Env", cfg.App.Env)
		if client != nil {
			if err := client.Ping(r.Context()); err != nil {
				err = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable")
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
