// Package app owns the process-wide clients and builds the use cases from
// them. Nothing below it reaches for globals.
package app

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"gmrportal/internal/adapter/api/handler"
	"gmrportal/internal/adapter/api/middleware"
	"gmrportal/internal/adapter/api/router"
	"gmrportal/internal/adapter/repository"
	"gmrportal/internal/domain/service"
	"gmrportal/internal/infrastructure/firebase"
	"gmrportal/internal/infrastructure/ratelimit"
	"gmrportal/internal/infrastructure/realtime"
	"gmrportal/internal/infrastructure/storage"
	"gmrportal/internal/infrastructure/telemetry"
	ws "gmrportal/internal/infrastructure/websocket"
	"gmrportal/internal/usecase"
	"gmrportal/pkg/config"
	"gmrportal/pkg/logger"
)

const (
	serviceName          = "gmrportal-api"
	limiterSweepInterval = 5 * time.Minute
)

type App struct {
	Config  *config.Config
	Routes  router.Deps
	closers []func(context.Context) error
	stop    chan struct{}
	cancel  context.CancelFunc
}

func credentials(cfg *config.Config) []option.ClientOption {
	switch {
	case cfg.FirebaseServiceAccountJSON != "":
		logger.Info("Using Firebase service account from environment variable")
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON))}
	case cfg.FirebaseServiceAccountPath != "":
		logger.Info("Using Firebase service account from file: %s", cfg.FirebaseServiceAccountPath)
		return []option.ClientOption{option.WithCredentialsFile(cfg.FirebaseServiceAccountPath)}
	default:
		logger.Info("Using application default credentials")
		return nil
	}
}

// New dials every backing service and wires the HTTP layer. On error the
// clients opened so far are closed.
func New(ctx context.Context, cfg *config.Config) (_ *App, err error) {
	a := &App{Config: cfg, stop: make(chan struct{})}
	defer func() {
		if err != nil {
			a.Close(context.Background())
		}
	}()

	shutdownTracer, err := telemetry.Setup(ctx, serviceName, cfg.Environment, cfg.OTLPEndpoint)
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}
	a.closers = append(a.closers, shutdownTracer)

	opts := credentials(cfg)

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: %w", err)
	}
	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: %w", err)
	}
	a.closers = append(a.closers, func(context.Context) error { return firestoreClient.Close() })

	bucket := cfg.StorageBucket
	if bucket == "" {
		bucket = cfg.FirebaseProject + ".appspot.com"
	}
	storageClient, err := storage.NewCloudStorageClient(ctx, bucket, cfg.CORSAllowOrigins, opts...)
	if err != nil {
		return nil, fmt.Errorf("cloud storage: %w", err)
	}
	a.closers = append(a.closers, func(context.Context) error { return storageClient.Close() })

	broker := realtime.NewBroker()
	a.closers = append(a.closers, func(context.Context) error { broker.Close(); return nil })

	wsCtx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	wsManager := ws.NewManager(broker)
	wsManager.Start(wsCtx)

	limiter := ratelimit.NewRateLimiter(ratelimit.DefaultPolicies(cfg.ChatRatePerMinute))
	limiter.StartCleanupRoutine(limiterSweepInterval, a.stop)

	identity := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseAPIKey)

	profileRepo := repository.NewFirestoreProfileRepository(firestoreClient)
	requestRepo := repository.NewFirestoreServiceRequestRepository(firestoreClient)
	clientDocRepo := repository.NewFirestoreClientDocumentRepository(firestoreClient)
	serviceDocRepo := repository.NewFirestoreServiceDocumentRepository(firestoreClient)
	paymentRepo := repository.NewFirestorePaymentRepository(firestoreClient)
	conversationRepo := repository.NewFirestoreConversationRepository(firestoreClient)
	contactRepo := repository.NewFirestoreContactRepository(firestoreClient)
	catalogRepo := repository.NewStaticCatalogRepository()

	paymentGateway := service.NewRazorpayPaymentService(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayBaseURL)
	completionGateway := service.NewLLMGatewayClient(cfg.LLMGatewayURL, cfg.LLMAPIKey, cfg.LLMModel)

	authUseCase := usecase.NewAuthUseCase(profileRepo, identity)
	catalogUseCase := usecase.NewCatalogUseCase(catalogRepo, cfg.GSTPercent, cfg.PaymentCurrency)
	requestUseCase := usecase.NewServiceRequestUseCase(requestRepo, profileRepo, catalogUseCase, broker)
	documentUseCase := usecase.NewDocumentUseCase(
		requestUseCase,
		requestRepo,
		clientDocRepo,
		serviceDocRepo,
		storageClient,
		cfg.ClientUploadsPrefix,
		cfg.ServiceDocumentsPrefix,
		cfg.MaxUploadBytes,
	)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, requestRepo, requestUseCase, catalogUseCase, paymentGateway, cfg.PaymentCurrency)
	chatUseCase := usecase.NewChatUseCase(conversationRepo, completionGateway)
	contactUseCase := usecase.NewContactUseCase(contactRepo)

	a.Routes = router.Deps{
		Handlers: handler.New(handler.Dependencies{
			Auth:           authUseCase,
			Catalog:        catalogUseCase,
			Requests:       requestUseCase,
			Documents:      documentUseCase,
			Payments:       paymentUseCase,
			Chat:           chatUseCase,
			Contact:        contactUseCase,
			WSManager:      wsManager,
			AllowedOrigins: cfg.CORSAllowOrigins,
			MaxUploadBytes: cfg.MaxUploadBytes,
		}),
		Auth:    middleware.NewAuthMiddleware(identity),
		Roles:   middleware.NewRoleMiddleware(profileRepo),
		Limiter: limiter,
	}

	return a, nil
}

// Close stops background work and releases clients in reverse order.
func (a *App) Close(ctx context.Context) {
	select {
	case <-a.stop:
	default:
		close(a.stop)
	}
	if a.cancel != nil {
		a.cancel()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			logger.Warn("shutdown: %v", err)
		}
	}
	a.closers = nil
}
