package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/auxgeo/sentinel-tiler/interface/object"
	"github.com/auxgeo/sentinel-tiler/sentinel"
	"github.com/auxgeo/sentinel-tiler/server"
	"github.com/auxgeo/sentinel-tiler/service/log"
	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type config struct {
	AppPort        string
	Hostname       string
	PrefixTemplate string
	MinZoom        int
	MaxZoom        int

	Storage         string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	RequestPayer    bool
	LocalRoot       string
}

func newAppConfig() (*config, error) {
	config := config{}
	flag.StringVar(&config.AppPort, "port", "8080", "port to serve the scene endpoints on")
	flag.StringVar(&config.Hostname, "hostname", sentinel.DefaultHostname, "object storage bucket hosting the scenes")
	flag.StringVar(&config.PrefixTemplate, "prefix-template", sentinel.DefaultPrefixTemplate, "storage prefix template ({field} placeholders are replaced by the scene metadata)")
	flag.IntVar(&config.MinZoom, "minzoom", sentinel.DefaultMinZoom, "min zoom level advertised to the tiling framework")
	flag.IntVar(&config.MaxZoom, "maxzoom", sentinel.DefaultMaxZoom, "max zoom level advertised to the tiling framework")
	flag.StringVar(&config.Storage, "storage", "s3", "object storage backend (s3, gs or file)")
	flag.StringVar(&config.Region, "aws-region", "us-west-2", "region of the s3 bucket")
	flag.StringVar(&config.AccessKeyID, "aws-access-key-id", os.Getenv("AWS_ACCESS_KEY_ID"), "aws access key id (optional, the ambient credentials are used otherwise)")
	flag.StringVar(&config.SecretAccessKey, "aws-secret-access-key", os.Getenv("AWS_SECRET_ACCESS_KEY"), "aws secret access key (optional)")
	flag.BoolVar(&config.RequestPayer, "request-payer", true, "acknowledge transfer costs of requester-pays buckets")
	flag.StringVar(&config.LocalRoot, "local-root", "", "root directory of the file storage backend")
	flag.Parse()

	if config.AppPort == "" {
		return nil, fmt.Errorf("failed to initialize port application flag")
	}
	if config.Storage == "file" && config.LocalRoot == "" {
		return nil, fmt.Errorf("missing local-root flag for the file storage backend")
	}
	return &config, nil
}

func main() {
	ctx := context.Background()
	err := run(ctx)
	if err != nil {
		log.Fatal("error", zap.Error(err))
	}
}

func run(ctx context.Context) error {
	godotenv.Load()

	config, err := newAppConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var getter object.Getter
	switch config.Storage {
	case "s3":
		if getter, err = object.NewS3Getter(ctx,
			object.WithRegion(config.Region),
			object.WithStaticCredentials(config.AccessKeyID, config.SecretAccessKey),
			object.WithRequestPayer(config.RequestPayer)); err != nil {
			return fmt.Errorf("run.%w", err)
		}
	case "gs":
		if getter, err = object.NewGSGetter(ctx); err != nil {
			return fmt.Errorf("run.%w", err)
		}
	case "file":
		getter = &object.FileGetter{Root: config.LocalRoot}
	default:
		return fmt.Errorf("unsupported storage backend: %s", config.Storage)
	}

	handler := server.Handler{
		Getter: getter,
		ReaderOptions: []sentinel.Option{
			sentinel.WithHostname(config.Hostname),
			sentinel.WithPrefixTemplate(config.PrefixTemplate),
			sentinel.WithZoomRange(config.MinZoom, config.MaxZoom),
		},
	}

	srv := &http.Server{
		Addr:    ":" + config.AppPort,
		Handler: handlers.CompressHandler(handlers.LoggingHandler(os.Stdout, handler.NewRouter())),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Logger(ctx).Info("serving scene endpoints",
		zap.String("port", config.AppPort),
		zap.String("storage", getter.Name()),
		zap.String("hostname", config.Hostname))
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("ListenAndServe: %w", err)
	}
	return nil
}
