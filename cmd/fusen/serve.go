package main

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fK470/fusen/internal/config"
	"github.com/fK470/fusen/internal/db"
	"github.com/fK470/fusen/internal/handler"
	"github.com/fK470/fusen/internal/service"
	"github.com/fK470/fusen/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logrus.SetLevel(cfg.Log.Level)
			logrus.SetFormatter(&logrus.JSONFormatter{})

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			bookmarkStore := store.NewBookmarkStore(database)
			tagStore := store.NewTagStore(database)
			bookmarkTagStore := store.NewBookmarkTagStore(database)
			bookmarks := service.NewBookmarkService(database, bookmarkStore, tagStore, bookmarkTagStore)

			router := handler.NewRouter(handler.Deps{Bookmarks: bookmarks})

			logrus.WithFields(logrus.Fields{
				"addr":   cfg.HTTP.Addr,
				"driver": cfg.DB.Driver,
			}).Info("listening")
			return http.ListenAndServe(cfg.HTTP.Addr, router)
		},
	}
}
