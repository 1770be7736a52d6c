package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"pmis/billing"
	"pmis/config"
	"pmis/db"
	"pmis/db/mongo"
	"pmis/db/postgres"
	"pmis/db/redis"
	"pmis/document"
	"pmis/handlers"
	"pmis/live"
	"pmis/logger"
	"pmis/repository"
	"pmis/routes"
	"pmis/storage"
)

func main() {
	cfg := config.LoadConfig()
	if err := logger.Setup(cfg.Log); err != nil {
		log.Fatal().Err(err).Msg("logger setup")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		bills repository.RABillRepository
		orgs  repository.OrganizationRepository
		conns []db.DB
	)

	connect := func(c db.DB, name string) {
		dialCtx, dialCancel := context.WithTimeout(ctx, 10*time.Second)
		defer dialCancel()
		if err := c.Connect(dialCtx); err != nil {
			log.Fatal().Err(err).Msg(name + " connect")
		}
		conns = append(conns, c)
	}

	switch db.DBType(cfg.DBType) {
	case db.Postgres:
		if err := db.RunMigrations(cfg.PostgresURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("migrations failed")
		}
		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		connect(pg, "postgres")
		bills = repository.NewPostgresRABillRepo(pg.Conn)
		orgs = repository.NewPostgresOrganizationRepo(pg.Conn)

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL, cfg.MongoDB)
		connect(mg, "mongo")
		bills = repository.NewMongoRABillRepo(mg.Database())
		orgs = repository.NewMongoOrganizationRepo(mg.Database())

	case "memory":
		log.Warn().Msg("DB_TYPE=memory: bills are lost on restart")
		bills = repository.NewMemoryRABillRepo()
		orgs = repository.NewMemoryOrganizationRepo()

	default:
		log.Fatal().Str("db_type", cfg.DBType).Msg("DB_TYPE not supported")
	}

	var drafts repository.DraftStore
	if cfg.RedisAddr != "" {
		rd := redis.NewRedisDB(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		connect(rd, "redis")
		drafts = repository.NewRedisDraftStore(rd.Client, cfg.RedisPrefix, cfg.DraftTTL)
	} else {
		drafts = repository.NewMemoryDraftStore(cfg.DraftTTL)
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("storage init")
	}
	filesDir := ""
	if local, ok := store.(*storage.LocalStore); ok {
		filesDir = local.BaseDir
		go sweepTemp(ctx, local)
	}

	money := billing.NewMoneyFormatter(cfg.CurrencyLocale, cfg.CurrencySymbol)
	renderer, err := document.NewRenderer(money)
	if err != nil {
		log.Fatal().Err(err).Msg("template parse")
	}

	gateway := repository.NewBillGateway(bills)
	hub := live.NewHub(drafts, cfg.AllowedOrigins)
	go hub.Run(ctx)

	router := routes.SetupRoutes(routes.Handlers{
		Drafts: handlers.NewDraftHandler(drafts, gateway),
		Bills: &handlers.RABillHandler{
			Bills:    bills,
			Gateway:  gateway,
			Docs:     repository.NewDocumentRepository(bills, orgs),
			Renderer: renderer,
			Printer:  document.NewChromePrinter(),
			Store:    store,
			Money:    money,
			Now:      time.Now,
		},
		Organization: &handlers.OrganizationHandler{Repo: orgs},
		Live:         hub,
	}, routes.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		FilesDir:       filesDir,
		FilesPrefix:    cfg.Storage.PublicPrefix,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("db_type", cfg.DBType).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
			return
		}
		srvErr <- nil
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-srvErr:
		if err != nil {
			log.Error().Err(err).Msg("http server error")
		}
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http server shutdown")
		}
	}

	// stops the websocket hub and the temp sweeper
	cancel()
	closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCancel()
	for _, c := range conns {
		if err := c.Disconnect(closeCtx); err != nil {
			log.Warn().Err(err).Msg("disconnect")
		}
	}
	log.Info().Msg("shutdown complete")
}

func sweepTemp(ctx context.Context, local *storage.LocalStore) {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := local.CleanupTemp(time.Hour); err != nil {
				log.Warn().Err(err).Msg("storage cleanup")
			}
		}
	}
}
