package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
	"todo-app-go/internal/config"
	"todo-app-go/internal/db"
	todosdomain "todo-app-go/internal/domain/todos"
	"todo-app-go/internal/executor"
	"todo-app-go/internal/repository/local"
	postgrestodos "todo-app-go/internal/repository/postgres/todos"
	"todo-app-go/internal/repository/remote"
	sqlitetodos "todo-app-go/internal/repository/sqlite/todos"
	"todo-app-go/internal/transport/httpserver"
	"todo-app-go/internal/transport/httpserver/handler"
	commonhandler "todo-app-go/internal/transport/httpserver/handler/common"
	todoshandler "todo-app-go/internal/transport/httpserver/handler/todos"
	"todo-app-go/pkg/idling"
	"todo-app-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	log        logger.Logger
	httpServer *http.Server
	lanes      *executor.Lanes
	sqliteDB   *sql.DB
	gormDB     *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: log}

	log.Info("app: initializing local table", "driver", cfg.Local.Driver)
	table, err := a.openTable()
	if err != nil {
		a.Close(context.Background())
		return nil, err
	}

	log.Info("app: initializing lanes", "network_threads", cfg.NetworkThreads)
	a.lanes = executor.New(cfg.NetworkThreads, log)
	idle := idling.New("GLOBAL")

	localStore := local.New(table, a.lanes, log)
	remoteStore := remote.New(a.lanes, cfg.Remote.Latency, log)
	if cfg.Remote.Seed {
		remoteStore.Seed(
			todosdomain.NewItem("Build tower in Pisa", "Ground looks good, no foundation work required."),
			todosdomain.NewItem("Finish bridge in Tacoma", "Found awesome girders at half the cost!"),
		)
	}

	repo := todosdomain.NewRepository(remoteStore, localStore, idle, log)
	tasks := todosdomain.NewService(repo, a.lanes.MainThread)

	log.Info("app: initializing router")
	handlers := handler.New(
		commonhandler.New(idle, log),
		todoshandler.New(tasks, log),
	)
	router := httpserver.NewRouter(cfg, handlers, log)

	log.Info("app: initializing http server")
	a.httpServer = httpserver.New(cfg, router)

	return a, nil
}

func (a *App) openTable() (todosdomain.Table, error) {
	switch a.cfg.Local.Driver {
	case config.DriverPostgres:
		gormDB, err := db.NewPostgres(a.cfg.DB, a.log)
		if err != nil {
			return nil, err
		}
		a.gormDB = gormDB
		if err := db.Migrate(gormDB, a.log); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return postgrestodos.NewPostgres(gormDB), nil
	default:
		conn, err := db.OpenSQLite(a.cfg.Local.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.sqliteDB = conn
		return sqlitetodos.NewSQLite(conn)
	}
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

// Close drains the lanes before releasing the database so queued writes and the local
// refresh that follows a remote read still land. ctx bounds the drain.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.lanes != nil {
		if err := a.lanes.Shutdown(ctx); err != nil {
			a.log.Error("app: lanes did not drain", "err", err)
			errs = append(errs, err)
		}
	}

	if a.sqliteDB != nil {
		errs = append(errs, a.sqliteDB.Close())
	}
	if a.gormDB != nil {
		errs = append(errs, db.Close(a.gormDB))
	}
	return errors.Join(errs...)
}
