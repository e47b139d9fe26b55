package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/conkccc/studio-sub000/docs"
	"github.com/conkccc/studio-sub000/internal/config"
	"github.com/conkccc/studio-sub000/internal/database"
	"github.com/conkccc/studio-sub000/internal/event"
	"github.com/conkccc/studio-sub000/internal/expense"
	expensesplit "github.com/conkccc/studio-sub000/internal/expense/split"
	"github.com/conkccc/studio-sub000/internal/friend"
	"github.com/conkccc/studio-sub000/internal/fund"
	"github.com/conkccc/studio-sub000/internal/meeting"
	"github.com/conkccc/studio-sub000/internal/settlement"
	mw "github.com/conkccc/studio-sub000/pkg/middleware"
)

// @title        studio-sub000 API
// @version      1.0
// @description  Group expense splitting with shared-fund settlement
// @BasePath     /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	// Domain-event worker, drained on shutdown
	eventRepo := event.NewRepository(db)
	eventWorker := event.NewWorker(eventRepo, cfg.EventBufferSize)
	eventWorker.Start()
	defer eventWorker.Shutdown()
	eventHandler := event.NewHandler(eventRepo)

	// Split Strategy Factory (Factory Pattern)
	splitFactory := expensesplit.NewSplitStrategyFactory()

	// Friend feature
	friendRepo := friend.NewRepository(db)
	friendService := friend.NewService(friendRepo)
	friendHandler := friend.NewHandler(friendService)

	// Meeting feature
	meetingRepo := meeting.NewRepository(db)
	meetingService := meeting.NewService(meetingRepo, friendService, eventWorker)
	meetingHandler := meeting.NewHandler(meetingService)

	// Expense feature (with split factory injected)
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, splitFactory, eventWorker)
	expenseHandler := expense.NewHandler(expenseService)

	// Reserve fund feature
	fundRepo := fund.NewRepository(db)
	fundService := fund.NewService(fundRepo, eventWorker)
	fundHandler := fund.NewHandler(fundService)

	// Settlement feature
	settlementService := settlement.NewService(meetingRepo, expenseRepo, fundService, eventWorker)
	settlementHandler := settlement.NewHandler(settlementService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(mw.TestUserMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Mount feature routers
		r.Mount("/friends", friendHandler.Routes())
		r.Mount("/meetings", meetingHandler.Routes())
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/settlements", settlementHandler.Routes())
		r.Mount("/fund", fundHandler.Routes())
		r.Mount("/events", eventHandler.Routes())
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{Addr: ":" + port, Handler: r}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s", port)
		serverErr <- srv.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		log.Printf("Server stopped: %v", err)
	case <-ctx.Done():
		log.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown: %v", err)
		}
	}
}
