package main

import (
	"context"
	"log/slog"
	"os"

	"joylist/config"
	"joylist/internal/delivery"
	"joylist/internal/delivery/http"
	"joylist/internal/delivery/http/middleware"
	"joylist/internal/delivery/http/router/handler"
	"joylist/internal/domain/service"
	"joylist/internal/infra/identity"
	logs "joylist/internal/infra/log"
	"joylist/internal/infra/persistence/postgres"
	"joylist/internal/infra/qrcode"
	"joylist/internal/infra/ratelimit"
	"joylist/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewBusinessRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			identity.NewClient,
			newRateLimiter,
			newQRCodeService,
		),
	)
}

// newRateLimiter picks the quota store. Production runs on redis so the
// window survives restarts and is shared across replicas; the in-memory
// store is for development.
func newRateLimiter(params ratelimit.ClientParams, logger *slog.Logger) (service.RateLimiter, error) {
	if params.Config.RateLimit.InMemory {
		return ratelimit.NewMemoryLimiter(params.Config), nil
	}

	client, err := ratelimit.NewRedisClient(params)
	if err != nil {
		return nil, err
	}

	return ratelimit.NewRedisLimiter(client, params.Config, logger), nil
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return qrcode.NewQRCodeService(256, "M", "https://joylist.app")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewBusinessService,
			impl.NewProfileService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewLoggerMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewBusinessHandler,
			handler.NewProfileHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
