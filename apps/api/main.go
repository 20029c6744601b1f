package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/knowledgeflow/backend/core"
	"github.com/knowledgeflow/backend/core/catalog"
	"github.com/knowledgeflow/backend/core/track"
	"github.com/knowledgeflow/backend/core/user"

	echoapi "github.com/knowledgeflow/backend/apps/api/echo"
	emailsvc "github.com/knowledgeflow/backend/services/email"
	logsvc "github.com/knowledgeflow/backend/services/logger"
	"github.com/knowledgeflow/backend/storage/database"
	inmemdb "github.com/knowledgeflow/backend/storage/database/inmem"
	sqlxrepos "github.com/knowledgeflow/backend/storage/database/sqlx"
)

type repositories struct {
	user    user.Repository
	catalog catalog.Repository
	track   track.Repository
	close   func() error
}

func main() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig(core.Getwd())
	if err != nil {
		log.Fatalf("loading config: %+v", err)
	}

	// set up loggers
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.RollbarToken != "" {
		rollbarLogger := logsvc.NewRollbarLogger(std, conf)
		rollbarLogger.Enable(!conf.Debug)
		logger = rollbarLogger
	} else {
		logger = logsvc.NewStdLogger(std)
	}

	// set up storage
	repos, err := setUpRepositories(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up storage: %v", err), err)
	}
	defer func() {
		if err = repos.close(); err != nil {
			logger.Error(fmt.Sprintf("closing storage: %v", err), err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug || conf.SendgridAPIKey == "" {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	usrSvc := user.NewService(repos.user, mailSvc)
	catalogSvc := catalog.NewService(repos.catalog)
	trackSvc := track.NewService(repos.track, repos.catalog)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate, translator := core.NewValidator()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		conf.Server.Address(),
		echoapi.Deps{
			Conf:       conf,
			Logger:     logger,
			UserSvc:    usrSvc,
			CatalogSvc: catalogSvc,
			TrackSvc:   trackSvc,
			Validate:   validate,
			Translator: translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpRepositories(conf *core.Config) (repositories, error) {
	if conf.Database.Engine == "postgres" {
		if err := database.CreateIfNotExist(conf); err != nil {
			return repositories{}, err
		}
		db, err := database.Open(conf)
		if err != nil {
			return repositories{}, err
		}
		if err = database.Migrate(db); err != nil {
			_ = db.Close()
			return repositories{}, err
		}
		return repositories{
			user:    sqlxrepos.NewUserRepository(db),
			catalog: sqlxrepos.NewCatalogRepository(db),
			track:   sqlxrepos.NewTrackRepository(db),
			close:   db.Close,
		}, nil
	}

	db, err := inmemdb.Open()
	if err != nil {
		return repositories{}, err
	}
	return repositories{
		user:    inmemdb.NewUserRepository(db),
		catalog: inmemdb.NewCatalogRepository(db),
		track:   inmemdb.NewTrackRepository(db),
		close:   func() error { return nil },
	}, nil
}
