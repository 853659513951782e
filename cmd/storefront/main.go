package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/events"
	"github.com/aaravmahajanofficial/storefront/internal/health"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/telemetry"
	"github.com/aaravmahajanofficial/storefront/internal/worker"
	"github.com/aaravmahajanofficial/storefront/pkg/sendGrid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

const version = "1.0.0"

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.SetupTracing(ctx, &cfg.Telemetry, cfg.Env, version)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := shutdownTracing(flushCtx); err != nil {
			slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	// Database setup
	repos, err := repository.New(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer redisClient.Close()

	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	rateLimiter := repository.NewRateLimitRepo(redisClient, &cfg.RateLimit)

	// Event bus: kafka when brokers are configured, in-process otherwise
	var (
		publisher  events.Publisher
		subscriber events.Subscriber
	)

	if brokers := cfg.Kafka.BrokerList(); len(brokers) > 0 {
		publisher = events.NewKafkaPublisher(brokers, cfg.Kafka.OrderCreatedTopic)
		subscriber = events.NewKafkaSubscriber(brokers, cfg.Kafka.OrderCreatedTopic, cfg.Kafka.ConsumerGroup)
		slog.Info("Using kafka event bus", slog.Any("brokers", brokers), slog.String("topic", cfg.Kafka.OrderCreatedTopic))
	} else {
		bus := events.NewMemoryBus(64)
		publisher, subscriber = bus, bus
		slog.Warn("No kafka brokers configured, using the in-memory event bus")
	}

	defer publisher.Close()
	defer subscriber.Close()

	emailService := sendGrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	inventoryService := service.NewInventoryService(repos.Store, productCache)
	productService := service.NewProductService(repos.Store, productCache, cfg.Cache.DefaultTTL)
	cartService := service.NewCartService(repos.Store)
	customerService := service.NewCustomerService(repos.Store)
	orderService := service.NewOrderService(repos.Store, inventoryService, publisher)
	resolver := service.NewTargetResolver(repos.Store, productService)
	reviewService := service.NewReviewService(repos.Store, resolver)
	reactionService := service.NewReactionService(repos.Store)
	notificationService := service.NewNotificationService(repos.Notifications, emailService)

	cartHandler := handlers.NewCartHandler(cartService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	orderHandler := handlers.NewOrderHandler(orderService)
	productHandler := handlers.NewProductHandler(productService, inventoryService)
	collectionHandler := handlers.NewCollectionHandler(productService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	reactionHandler := handlers.NewReactionHandler(reactionService, resolver)

	healthCheck, err := health.NewHealthHandler(cfg, version)
	if err != nil {
		slog.Error("❌ Error setting up health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	auth := func(h http.Handler) http.HandlerFunc { return authMiddleware.Authenticate(h) }
	admin := func(h http.Handler) http.HandlerFunc { return auth(middleware.RequireAdmin(h)) }
	limited := func(scope string, h http.Handler) http.HandlerFunc {
		return auth(middleware.RateLimit(rateLimiter, scope)(h))
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", version))

	// Setup router
	routerMux := http.NewServeMux()

	routerMux.HandleFunc("POST /api/v1/carts", cartHandler.CreateCart())
	routerMux.HandleFunc("GET /api/v1/carts/{id}", cartHandler.GetCart())
	routerMux.HandleFunc("DELETE /api/v1/carts/{id}", cartHandler.DeleteCart())
	routerMux.HandleFunc("GET /api/v1/carts/{id}/items", cartHandler.ListItems())
	routerMux.HandleFunc("POST /api/v1/carts/{id}/items", cartHandler.AddItem())
	routerMux.HandleFunc("GET /api/v1/carts/{id}/items/{itemId}", cartHandler.GetItem())
	routerMux.HandleFunc("PATCH /api/v1/carts/{id}/items/{itemId}", cartHandler.UpdateItem())
	routerMux.HandleFunc("DELETE /api/v1/carts/{id}/items/{itemId}", cartHandler.RemoveItem())

	routerMux.HandleFunc("GET /api/v1/customers/me", auth(customerHandler.GetProfile()))
	routerMux.HandleFunc("DELETE /api/v1/customers/me", auth(customerHandler.DeleteProfile()))
	routerMux.HandleFunc("GET /api/v1/customers/me/address", auth(customerHandler.GetAddress()))
	routerMux.HandleFunc("POST /api/v1/customers/me/address", auth(customerHandler.CreateAddress()))
	routerMux.HandleFunc("PUT /api/v1/customers/me/address", auth(customerHandler.UpdateAddress()))
	routerMux.HandleFunc("DELETE /api/v1/customers/me/address", auth(customerHandler.DeleteAddress()))

	routerMux.HandleFunc("POST /api/v1/orders", limited("checkout", orderHandler.Checkout()))
	routerMux.HandleFunc("GET /api/v1/orders", auth(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", auth(orderHandler.GetOrder()))
	routerMux.HandleFunc("DELETE /api/v1/orders/{id}", admin(orderHandler.DeleteOrder()))
	routerMux.HandleFunc("PATCH /api/v1/orders/{id}/status", admin(orderHandler.UpdateOrderStatus()))

	routerMux.HandleFunc("GET /api/v1/collections", collectionHandler.ListCollections())
	routerMux.HandleFunc("POST /api/v1/collections", admin(collectionHandler.CreateCollection()))
	routerMux.HandleFunc("GET /api/v1/collections/{id}", collectionHandler.GetCollection())
	routerMux.HandleFunc("DELETE /api/v1/collections/{id}", admin(collectionHandler.DeleteCollection()))

	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("POST /api/v1/products", admin(productHandler.CreateProduct()))
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("PATCH /api/v1/products/{id}", admin(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/products/{id}", admin(productHandler.DeleteProduct()))
	routerMux.HandleFunc("PUT /api/v1/products/{id}/inventory", admin(productHandler.SetInventory()))
	routerMux.HandleFunc("POST /api/v1/products/{id}/inventory/restock", admin(productHandler.Restock()))

	routerMux.HandleFunc("GET /api/v1/products/{id}/reviews", reviewHandler.ListReviews())
	routerMux.HandleFunc("POST /api/v1/products/{id}/reviews", limited("reviews", reviewHandler.CreateReview()))
	routerMux.HandleFunc("GET /api/v1/products/{id}/reviews/{reviewId}", reviewHandler.GetReview())
	routerMux.HandleFunc("DELETE /api/v1/products/{id}/reviews/{reviewId}", auth(reviewHandler.DeleteReview()))

	// Reaction ledgers are literal segments so they never overlap the reviews
	// and inventory routes; the handler reads the ledger from the path value.
	for _, ledger := range []models.ReactionLedger{models.LedgerLikes, models.LedgerVotes} {
		on := func(h http.Handler) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				r.SetPathValue("ledger", string(ledger))
				h.ServeHTTP(w, r)
			}
		}

		for _, prefix := range []string{"/api/v1/products/{id}/", "/api/v1/products/{id}/reviews/{reviewId}/"} {
			route := prefix + string(ledger)

			routerMux.HandleFunc("GET "+route, on(auth(reactionHandler.GetReaction())))
			routerMux.HandleFunc("POST "+route, on(limited("reactions", reactionHandler.CreateReaction())))
			routerMux.HandleFunc("PUT "+route, on(limited("reactions", reactionHandler.ReplaceReaction())))
			routerMux.HandleFunc("DELETE "+route, on(auth(reactionHandler.DeleteReaction())))
			routerMux.HandleFunc("GET "+route+"/summary", on(reactionHandler.Summary()))
		}
	}

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthCheck.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = otelhttp.NewHandler(handler, cfg.Telemetry.ServiceName)
	handler = middleware.Logging(handler)

	// Setup http server
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		return worker.NewOrderConfirmationWorker(subscriber, notificationService).Run(groupCtx)
	})

	group.Go(func() error {
		<-groupCtx.Done()

		slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

		// Graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
			return err
		}

		slog.Info("✅ Server shut down gracefully. All connections closed.")

		return nil
	})

	if err := group.Wait(); err != nil {
		slog.Error("❌ Storefront stopped with an error", slog.String("error", err.Error()))
	}
}
