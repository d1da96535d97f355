package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joules19/chowmate-web-sub002/app"
	"github.com/joules19/chowmate-web-sub002/cache"
	"github.com/joules19/chowmate-web-sub002/config"
	"github.com/joules19/chowmate-web-sub002/database"
	"github.com/joules19/chowmate-web-sub002/log"
	"github.com/joules19/chowmate-web-sub002/routes"
	"github.com/spf13/cobra"
)

func serveCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the survey HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ValidateServer(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, *cfg)
		},
	}
	config.BindServer(cmd.Flags(), cfg)
	return cmd
}

func openCache(ctx context.Context, cfg config.Config) (cache.Surveys, error) {
	if cfg.RedisURL == "" {
		return cache.NewMemory(cfg.CacheTTL), nil
	}
	return cache.NewRedis(ctx, cfg.RedisURL, cfg.CacheTTL)
}

func serve(ctx context.Context, cfg config.Config) error {
	db, err := database.Open(cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	surveys, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer surveys.Close()

	a := app.App{
		DB:     db,
		Cache:  surveys,
		JWT:    app.NewJWT(cfg.TokenSecret),
		Config: cfg,
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      routes.Wire(a),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.Errorf("server.shutdown: %s", err)
		}
	}()

	log.Info("Listening on " + cfg.Url())
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		log.Info("server stopped")
		return nil
	}
	return err
}
