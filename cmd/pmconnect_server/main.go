package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/lancelot03/pmconnect/internal/auth"
	"github.com/lancelot03/pmconnect/internal/cabs"
	"github.com/lancelot03/pmconnect/internal/cache"
	"github.com/lancelot03/pmconnect/internal/database"
	"github.com/lancelot03/pmconnect/internal/export"
	"github.com/lancelot03/pmconnect/internal/integrity"
	"github.com/lancelot03/pmconnect/internal/model"
	"github.com/lancelot03/pmconnect/internal/repository"
)

var (
	gitRevision = "unknown"
	gitBranch   = "unknown"
)

type AppConfig struct {
	apiAddr    string
	db         string
	adminsFile string

	tokenKey    string
	tokenMaxAge time.Duration

	cabCapacity int
	uploadMerge bool
	statsTTL    time.Duration

	debug bool
}

type App struct {
	logger *slog.Logger
	config *AppConfig

	dbm     *database.DatabaseManager
	auth    *auth.Service
	exports *export.Service
	checker *integrity.Service
	grouper *cabs.Grouper
	admins  *repository.AdminSeedRepository

	stats *cache.Cache[*model.DashboardStatsDTO]

	api *HttpServer
}

func NewApp(config *AppConfig) *App {
	db, err := database.GetDatabase(config.db, config.debug)
	if err != nil {
		slog.Error("db open error", slog.Any("error", err))
		os.Exit(1)
	}

	dbm := database.New(db)

	app := &App{
		logger:  slog.Default(),
		config:  config,
		dbm:     dbm,
		auth:    auth.New(dbm, config.tokenKey, config.tokenMaxAge),
		exports: export.NewService(dbm),
		checker: integrity.New(dbm),
		grouper: cabs.NewGrouper(config.cabCapacity),
	}

	app.stats = cache.NewWithTTL(config.statsTTL, func(_ string) *model.DashboardStatsDTO {
		return app.collectStats()
	})

	app.api = NewHttpServer(app, config.apiAddr)

	return app
}

func (app *App) Run() {
	if err := app.dbm.Migrate(); err != nil {
		app.logger.Error("migrate error", slog.Any("error", err))
		os.Exit(1)
	}

	app.admins = repository.NewAdminSeedRepo(app.dbm, app.config.adminsFile)

	if err := app.admins.Start(); err != nil {
		app.logger.Error("error watching admins file", slog.Any("error", err))
	}

	go func() {
		if err := app.api.Listen(); err != nil {
			panic(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c

	app.logger.Info("exiting...")
	app.admins.Stop()

	if err := app.api.Shutdown(); err != nil {
		app.logger.Error("shutdown error", slog.Any("error", err))
	}
}

func main() {
	fmt.Printf("version %s %s\n", gitRevision, gitBranch)

	debug := flag.Bool("debug", false, "debug mode")
	conf := flag.String("config", "pmconnect.yml", "name of config file")
	flag.Parse()

	_ = godotenv.Load()

	viper.SetConfigFile(*conf)

	viper.SetDefault("api_addr", ":8000")
	viper.SetDefault("db", "pmconnect.db")
	viper.SetDefault("admins_file", "admins.yml")
	viper.SetDefault("token.max_age", time.Hour*24)
	viper.SetDefault("cabs.capacity", 8)
	viper.SetDefault("upload.merge", false)
	viper.SetDefault("dashboard.cache_ttl", time.Second*5)

	_ = viper.BindEnv("token.key", "JWT_SECRET")
	_ = viper.BindEnv("db", "DB_NAME")

	if err := viper.ReadInConfig(); err != nil {
		slog.Info("no config file, using defaults")
	}

	var h slog.Handler
	if *debug {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	slog.SetDefault(slog.New(h))

	config := &AppConfig{
		apiAddr:     viper.GetString("api_addr"),
		db:          viper.GetString("db"),
		adminsFile:  viper.GetString("admins_file"),
		tokenKey:    viper.GetString("token.key"),
		tokenMaxAge: viper.GetDuration("token.max_age"),
		cabCapacity: viper.GetInt("cabs.capacity"),
		uploadMerge: viper.GetBool("upload.merge"),
		statsTTL:    viper.GetDuration("dashboard.cache_ttl"),
		debug:       *debug,
	}

	if config.tokenKey == "" {
		slog.Warn("no token key configured, using a random one")
		config.tokenKey = randomKey()
	}

	NewApp(config).Run()
}
