package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	accountshandler "github.com/lettify/lettify/domains/accounts/be/handler"
	accountsrepo "github.com/lettify/lettify/domains/accounts/be/repo"
	accountsservice "github.com/lettify/lettify/domains/accounts/be/service"
	propertieshandler "github.com/lettify/lettify/domains/properties/be/handler"
	propertiesrepo "github.com/lettify/lettify/domains/properties/be/repo"
	propertiesservice "github.com/lettify/lettify/domains/properties/be/service"
	tenancieshandler "github.com/lettify/lettify/domains/tenancies/be/handler"
	tenanciesrepo "github.com/lettify/lettify/domains/tenancies/be/repo"
	tenanciesservice "github.com/lettify/lettify/domains/tenancies/be/service"
	platformauth "github.com/lettify/lettify/platform/go/auth"
	platformlogging "github.com/lettify/lettify/platform/go/logging"
	"github.com/lettify/lettify/platform/go/persistence"
)

type config struct {
	Port            string        `env:"PORT" envDefault:"9001"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	DatabaseURL     string        `env:"DATABASE_URL,required"`
	JWTSecret       string        `env:"JWT_SECRET,required"`
	TokenTTL        time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	BcryptCost      int           `env:"BCRYPT_COST" envDefault:"10"`
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := platformlogging.NewLogger(platformlogging.Config{
		Component: "api-server",
		Level:     cfg.LogLevel,
	})
	if err != nil {
		log.Fatalf("init zap logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	pool, err := persistence.NewPool(ctx, persistence.PoolConfig{ConnString: cfg.DatabaseURL})
	if err != nil {
		logger.Fatal("init postgres pool", zap.Error(err))
	}
	defer persistence.ClosePool(pool)

	if err := persistence.Bootstrap(ctx, pool); err != nil {
		logger.Fatal("bootstrap schema", zap.Error(err))
	}

	tokenIssuer, err := platformauth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL)
	if err != nil {
		logger.Fatal("init token issuer", zap.Error(err))
	}
	passwordHasher := platformauth.NewPasswordHasher(cfg.BcryptCost)

	accountStore, err := persistence.NewAccountStore(pool)
	if err != nil {
		logger.Fatal("init account store", zap.Error(err))
	}
	propertyStore, err := persistence.NewPropertyStore(pool)
	if err != nil {
		logger.Fatal("init property store", zap.Error(err))
	}
	tenancyStore, err := persistence.NewTenancyStore(pool)
	if err != nil {
		logger.Fatal("init tenancy store", zap.Error(err))
	}

	accountRepo := accountsrepo.NewPostgresRepository(accountStore)
	accountService := accountsservice.New(accountRepo, tokenIssuer, passwordHasher)
	accountHTTPHandler := accountshandler.New(accountService, logger)

	propertyRepo := propertiesrepo.NewPostgresRepository(propertyStore)
	propertyService := propertiesservice.New(propertyRepo)
	propertyHTTPHandler := propertieshandler.New(propertyService, logger)

	tenancyRepo := tenanciesrepo.NewPostgresRepository(tenancyStore, propertyStore)
	tenancyService := tenanciesservice.New(tenancyRepo)
	tenancyHTTPHandler := tenancieshandler.New(tenancyService, logger)

	router := newRouter(routerDeps{
		logger:         logger,
		issuer:         tokenIssuer,
		accounts:       accountHTTPHandler,
		properties:     propertyHTTPHandler,
		tenancies:      tenancyHTTPHandler,
		requestTimeout: cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		logger.Info("starting api server", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server listen failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
