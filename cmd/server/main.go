package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"gorm.io/gorm"

	"github.com/bitechdev/DemoManage/pkg/api"
	"github.com/bitechdev/DemoManage/pkg/common"
	"github.com/bitechdev/DemoManage/pkg/common/adapters/database"
	"github.com/bitechdev/DemoManage/pkg/config"
	"github.com/bitechdev/DemoManage/pkg/logger"
	"github.com/bitechdev/DemoManage/pkg/media"
	"github.com/bitechdev/DemoManage/pkg/models"
	"github.com/bitechdev/DemoManage/pkg/repository"
	"github.com/bitechdev/DemoManage/pkg/service"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment())

	db, err := openDatabase(cfg)
	if err != nil {
		logger.Error("database init failed: %v", err)
		os.Exit(1)
	}

	store, err := media.NewLogoStore(cfg.MediaPath, cfg.LogoSubdir)
	if err != nil {
		logger.Error("media store init failed: %v", err)
		os.Exit(1)
	}

	repo := repository.NewDemoRepository(db)
	svc := service.NewDemoService(repo, store)
	handler := api.NewHandler(svc)
	router := api.NewRouter(handler, cfg.MediaPath)

	server := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		// CORS wraps the router so preflight requests are answered
		// before route matching.
		Handler:           api.CORSMiddleware(cfg.CORSOrigins)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("%s %s listening on :%d (driver=%s)", cfg.AppName, cfg.AppVersion, cfg.Port, cfg.DBDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed: %v", err)
	}
}

// openDatabase opens the configured driver and runs the dev/test
// migration. Production schemas are managed externally.
func openDatabase(cfg config.Config) (common.Database, error) {
	switch cfg.DBDriver {
	case "bun":
		// The glebarez import already registers the "sqlite" driver;
		// opening it directly keeps a single sqlite driver registration
		// in the binary.
		sqldb, err := sql.Open("sqlite", cfg.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("open bun sqlite: %w", err)
		}
		bunDB := bun.NewDB(sqldb, sqlitedialect.New())
		if _, err := bunDB.NewCreateTable().Model((*models.Demo)(nil)).IfNotExists().Exec(context.Background()); err != nil {
			return nil, fmt.Errorf("create demos table: %w", err)
		}
		return database.NewBunAdapter(bunDB), nil

	case "gorm":
		gormDB, err := gorm.Open(sqlite.Open(cfg.DBDSN), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("open gorm sqlite: %w", err)
		}
		if err := gormDB.AutoMigrate(&models.Demo{}); err != nil {
			return nil, fmt.Errorf("migrate demos table: %w", err)
		}
		return database.NewGormAdapter(gormDB), nil
	}
	return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
}
