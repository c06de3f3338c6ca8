package main

import (
	"strings"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"github.com/docshelf/docshelf/biz/dal/model"
	"github.com/docshelf/docshelf/biz/handler"
	"github.com/docshelf/docshelf/biz/middleware"
	"github.com/docshelf/docshelf/biz/router"
	documentservice "github.com/docshelf/docshelf/biz/service/document"
	"github.com/docshelf/docshelf/pkg/config"
	"github.com/docshelf/docshelf/pkg/database"
	"github.com/docshelf/docshelf/pkg/storage"
	cloudinarystore "github.com/docshelf/docshelf/pkg/storage/cloudinary"
	s3store "github.com/docshelf/docshelf/pkg/storage/s3"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		hlog.Fatalf("load config: %v", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		hlog.Fatalf("open database: %v", err)
	}
	if err := db.AutoMigrate(&model.Document{}); err != nil {
		hlog.Fatalf("migrate database: %v", err)
	}

	store := newObjectStore(cfg)
	svc := documentservice.NewService(db, store, cfg.Upload.Timeout())

	srv := server.New(
		server.WithHostPorts(cfg.Server.Address),
		// Leave headroom above the upload ceiling for the multipart framing.
		server.WithMaxRequestBodySize(int(cfg.Upload.MaxSize)+1<<20),
	)
	srv.Use(middleware.Recovery(), middleware.Logging(), middleware.CORS(&cfg.CORS))
	router.Register(srv, handler.NewDocumentHandler(svc))

	hlog.Infof("catalog listening on %s", cfg.Server.Address)
	srv.Spin()
}

// newObjectStore selects the storage backend. Missing credentials degrade
// to the disabled backend so the catalog stays readable and uploads fail
// with a clear error instead of crashing.
func newObjectStore(cfg *config.Config) storage.ObjectStore {
	switch strings.ToLower(cfg.Storage.Driver) {
	case "s3":
		store, err := s3store.New(cfg.Storage.S3)
		if err != nil {
			hlog.Warnf("s3 storage unavailable (%v); uploads disabled", err)
			return storage.Disabled{}
		}
		return store
	default:
		store, err := cloudinarystore.New(cfg.Storage.Cloudinary)
		if err != nil {
			hlog.Warnf("cloudinary storage unavailable (%v); uploads disabled", err)
			return storage.Disabled{}
		}
		return store
	}
}
