package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/cache"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/config"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/health"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/metrics"
	repository "github.com/aaravmahajanofficial/pawsome-storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/pawsome-storefront/internal/services"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/telemetry"
	"github.com/aaravmahajanofficial/pawsome-storefront/pkg/stripe"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Load config
	cfg := config.MustLoad()

	// Logger setup
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Tracing setup
	shutdownTracer, err := telemetry.InitTracer(context.Background(), cfg.Otel)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Redis connection closed")
		}
	}()

	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	pricing, err := service.NewPricing(&cfg.Pricing)
	if err != nil {
		slog.Error("❌ Invalid pricing configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Backend API + repositories
	apiClient := repository.NewAPIClient(&cfg.API, nil)
	sessionStore := repository.NewSessionStore(redisClient, &cfg.Session)
	rateLimiter := repository.NewRateLimitRepo(redisClient, &cfg.RateConfig)
	stripeClient := stripe.NewStripeClient(cfg.Stripe.APIKey, cfg.Stripe.ReturnURL)

	// Services
	userService := service.NewUserService(repository.NewUserRepo(apiClient), rateLimiter, sessionStore)
	productService := service.NewProductService(repository.NewProductRepo(apiClient), productCache, &cfg.Cache, cfg.Checkout.MaxConcurrent)
	cartService := service.NewCartService(repository.NewCartRepo(apiClient), productService, userService, sessionStore, pricing)
	orderService := service.NewOrderService(repository.NewOrderRepo(apiClient), userService)
	checkoutService := service.NewCheckoutService(
		cartService,
		productService,
		userService,
		repository.NewPaymentRepo(apiClient),
		repository.NewOrderRepo(apiClient),
		stripeClient,
		sessionStore,
		&cfg.Checkout,
		cfg.Pricing.Currency,
	)

	// a guest cart follows the shopper into their account
	userService.OnLogin(cartService.MergeGuestCart)

	sessionMiddleware := middleware.NewSessionMiddleware(cfg.Session.CookieName, cfg.Session.TTL, cfg.Session.RememberTTL, cfg.Session.Secure).
		WithRememberLookup(userService.IsRemembered)

	// Handlers
	userHandler := handlers.NewUserHandler(userService, sessionMiddleware)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)
	authMiddleware := middleware.NewAuthMiddleware(userService)

	healthChecker, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health checker", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storefront initialized", slog.String("env", cfg.Env), slog.String("version", health.Version), slog.String("backend", cfg.API.BaseURL))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("DELETE /api/v1/cart", cartHandler.ClearCart())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/cart/items", cartHandler.UpdateItem())
	routerMux.HandleFunc("DELETE /api/v1/cart/items", cartHandler.RemoveItem())
	routerMux.HandleFunc("POST /api/v1/cart/promo", cartHandler.ApplyPromo())
	routerMux.HandleFunc("DELETE /api/v1/cart/promo", cartHandler.RemovePromo())
	routerMux.HandleFunc("POST /api/v1/auth/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/auth/login", userHandler.Login())
	routerMux.HandleFunc("POST /api/v1/auth/logout", userHandler.Logout())
	routerMux.HandleFunc("GET /api/v1/auth/me", userHandler.Me())
	routerMux.HandleFunc("GET /api/v1/auth/stream", userHandler.Stream())
	routerMux.HandleFunc("GET /api/v1/auth/profile", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("GET /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.GetState()))
	routerMux.HandleFunc("PUT /api/v1/checkout/address", authMiddleware.Authenticate(checkoutHandler.SetAddress()))
	routerMux.HandleFunc("POST /api/v1/checkout/advance", authMiddleware.Authenticate(checkoutHandler.Advance()))
	routerMux.HandleFunc("POST /api/v1/checkout/back", authMiddleware.Authenticate(checkoutHandler.Back()))
	routerMux.HandleFunc("POST /api/v1/checkout/submit", authMiddleware.Authenticate(checkoutHandler.Submit()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.Handle("GET /health", healthChecker.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining. Metrics sits next to the mux so it sees r.Pattern.
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = sessionMiddleware.Handle(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "storefront",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracer(shutdownCtx); err != nil {
		slog.Error("⚠️ Failed to flush traces", slog.String("error", err.Error()))
	}
}
