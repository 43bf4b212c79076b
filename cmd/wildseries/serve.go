package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vnkhanh/wild-series-backend/config"
	"github.com/vnkhanh/wild-series-backend/controllers"
	"github.com/vnkhanh/wild-series-backend/middleware"
	"github.com/vnkhanh/wild-series-backend/repository"
	"github.com/vnkhanh/wild-series-backend/routes"
	"github.com/vnkhanh/wild-series-backend/utils"
	"github.com/vnkhanh/wild-series-backend/ws"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := ctx.ensure()
			if err != nil {
				return err
			}
			db, err := ctx.openDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			if migrate {
				if err := config.Migrate(db); err != nil {
					return err
				}
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			engine := newEngine(runCtx, cfg, log, db)
			srv := &http.Server{
				Addr:              ":" + cfg.Server.Port,
				Handler:           engine,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-runCtx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "Run schema migrations before serving")
	return cmd
}

func newEngine(ctx context.Context, cfg *config.Config, log *zap.Logger, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	//Bật CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Auth-Token", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", "Location", middleware.HeaderRequestID},
		AllowCredentials: true,
	}))

	jwtSvc := utils.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	hub := ws.NewHub(log)

	var mailer utils.Mailer
	if cfg.Mailer.Username != "" {
		mailer = utils.NewSMTPMailer(cfg.Mailer.Host, cfg.Mailer.Port, cfg.Mailer.Username, cfg.Mailer.Password)
	} else {
		log.Warn("SMTP_EMAIL not set, new program notifications are disabled")
	}

	var posters utils.PosterStore
	if cfg.Storage.Enabled() {
		posters = utils.NewSupabasePosterStore(cfg.Storage.SupabaseURL, cfg.Storage.SupabaseKey, cfg.Storage.Bucket)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CommentsPerSecond)
	limiter.Cleanup(ctx, 5*time.Minute)

	ctl := controllers.New(controllers.Options{
		Catalog:        repository.NewCatalog(db),
		JWT:            jwtSvc,
		CSRF:           utils.NewCSRFManager(cfg.JWT.Secret, cfg.JWT.CSRFTTL),
		Mailer:         mailer,
		Posters:        posters,
		Hub:            hub,
		Log:            log,
		BaseURL:        cfg.Server.BaseURL,
		MailFrom:       cfg.Mailer.From,
		MailTo:         cfg.Mailer.To,
		GoogleClientID: cfg.JWT.GoogleClientID,
	})

	return routes.SetupRouter(r, routes.Dependencies{
		DB:             db,
		JWT:            jwtSvc,
		Controller:     ctl,
		WebSocket:      ws.NewHandler(hub, jwtSvc, log, cfg.CORS.AllowedOrigins),
		CommentLimiter: limiter,
	})
}
