package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ecosenseai/ecosense/config"
	"github.com/ecosenseai/ecosense/db"
	"github.com/ecosenseai/ecosense/mailingservices"
	"github.com/ecosenseai/ecosense/server/response"
	"github.com/ecosenseai/ecosense/services"

	errs "github.com/ecosenseai/ecosense/errors"
)

type Server struct {
	Config            *config.Config
	Mail              *mailingservices.Mailgun
	DB                *db.GormDB
	AuthRepository    db.AuthRepository
	AuthService       services.AuthService
	MediaService      services.MediaService
	ReportRepository  db.WasteReportRepository
	ReportService     services.WasteReportService
	RewardRepository  db.RewardRepository
	RewardService     services.RewardService
	LedgerRepository  db.LedgerRepository
	HotspotRepository db.HotspotRepository
}

// Start runs the HTTP server until SIGINT or SIGTERM, then drains
// in-flight requests before exiting.
func (s *Server) Start() {
	r := s.setupRouter()

	port := s.Config.Port
	if port == 0 {
		port = 5000
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		log.Printf("server started on port %d", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("server exited")
}

// decode binds the JSON request body into v.
func decode(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return errs.New(err.Error(), http.StatusBadRequest)
	}
	return nil
}

// respondError writes a service error using its own status when it
// carries one, and a plain 500 otherwise.
func respondError(c *gin.Context, err error) {
	var e *errs.Error
	if errors.As(err, &e) {
		response.JSON(c, "", e.Status, nil, e)
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.JSON(c, "", errs.ErrNotFound.Status, nil, errs.ErrNotFound)
		return
	}
	log.Printf("unexpected error: %v", err)
	response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
}
