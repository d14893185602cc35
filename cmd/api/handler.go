package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"slices"
	"time"

	authDelivery "taskpro-backend/internal/auth/delivery"
	authUsecase "taskpro-backend/internal/auth/usecase"
	helpDelivery "taskpro-backend/internal/help/delivery"
	kanbanDelivery "taskpro-backend/internal/kanban/delivery"
	"taskpro-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

type Handler struct {
	authUsecase   authUsecase.AuthUsecase
	authHandler   *authDelivery.AuthHandler
	kanbanHandler *kanbanDelivery.KanbanHandler
	helpHandler   *helpDelivery.HelpHandler
	config        *config.Config
}

func NewHandler(authUc authUsecase.AuthUsecase, kanbanHandler *kanbanDelivery.KanbanHandler, helpHandler *helpDelivery.HelpHandler, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase:   authUc,
		authHandler:   authDelivery.NewAuthHandler(authUc, cfg.MaxUploadSize),
		kanbanHandler: kanbanHandler,
		helpHandler:   helpHandler,
		config:        cfg,
	}
}

// Router builds the gin engine with middleware and every route mounted.
func (h *Handler) Router() *gin.Engine {
	if !h.config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(RecoveryMiddleware(h.config.IsDevelopment()))
	r.Use(CORSMiddleware(h.config.ClientURLs))
	r.Use(ErrorMiddleware(h.config.IsDevelopment()))
	r.MaxMultipartMemory = h.config.MaxUploadSize

	SetupRoutes(r, h.authUsecase, h.authHandler, h.kanbanHandler, h.helpHandler)
	r.NoRoute(notFound)

	return r
}

// Start serves on addr until ctx is cancelled, then drains in-flight requests.
func (h *Handler) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// CORSMiddleware allows the configured client origins. With an empty
// allow-list any origin is echoed back.
func CORSMiddleware(allowed []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		switch {
		case origin == "":
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case len(allowed) == 0 || slices.Contains(allowed, origin):
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Add("Vary", "Origin")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, x-auth-token, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
