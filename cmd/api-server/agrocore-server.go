package main

import (
	"log"
	"net/http"
	"os"

	"agrocore/db"
	"agrocore/db/migrations"
	"agrocore/internal/handlers"
	"agrocore/internal/ws"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func main() {
	connString := os.Getenv("POSTGRES_CONN")
	if connString == "" {
		log.Fatal("POSTGRES_CONN env variable is not set")
	}

	dbConn, err := sqlx.Connect("postgres", connString)
	if err != nil {
		log.Fatalf("Cannot connect to DB: %v", err)
	}
	defer dbConn.Close()
	// Bounded pool: callers queue on acquisition instead of failing.
	dbConn.SetMaxOpenConns(20)

	migrations.Run()

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Fatalf("Cannot create upload dir: %v", err)
	}

	store := db.NewStorage(dbConn)
	hub := ws.NewHub()
	wsServer := ws.NewServer(hub, store)
	h := handlers.NewHandler(store, hub, uploadDir)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.PingHandler)

		// negotiation
		r.Post("/opportunities", h.CreateOpportunityHandler)
		r.Get("/opportunities", h.GetOpportunitiesHandler)
		r.Put("/opportunities/{opportunityId}", h.UpdateOpportunityStatusHandler)
		r.Post("/proposals", h.CreateProposalHandler)
		r.Get("/proposals", h.GetUserProposalsHandler)
		r.Put("/proposals/{proposalId}/status", h.UpdateProposalStatusHandler)
		r.Put("/proposals/{proposalId}/counter", h.CounterProposalHandler)
		r.Get("/contracts", h.GetUserContractsHandler)
		r.Put("/contracts/{contractId}/status", h.UpdateContractStatusHandler)
		r.Get("/market/stats", h.MarketStatsHandler)

		// messaging
		r.Post("/messages", h.SendMessageHandler)
		r.Get("/messages/conversations", h.GetConversationsHandler)
		r.Get("/messages/{contactId}", h.GetConversationMessagesHandler)

		// notifications
		r.Get("/notifications", h.GetNotificationsHandler)
		r.Put("/notifications/read", h.MarkNotificationsReadHandler)
		r.Delete("/notifications", h.DeleteNotificationsHandler)

		// social feed
		r.Post("/posts", h.CreatePostHandler)
		r.Get("/posts", h.GetFeedHandler)
		r.Post("/posts/{postId}/like", h.ToggleLikeHandler)
		r.Post("/posts/{postId}/comments", h.CreateCommentHandler)
		r.Get("/posts/{postId}/comments", h.GetCommentsHandler)
		r.Post("/follow", h.FollowHandler)
		r.Delete("/follow", h.UnfollowHandler)
		r.Post("/users", h.CreateUserHandler)
		r.Get("/users", h.GetUsersHandler)
		r.Get("/buyers", h.GetBuyersHandler)

		// marketplace
		r.Post("/products", h.CreateProductHandler)
		r.Get("/products", h.GetProductsHandler)
		r.Post("/products/{productId}/comments", h.CreateProductCommentHandler)
		r.Get("/products/{productId}/comments", h.GetProductCommentsHandler)
	})

	r.Get("/ws", wsServer.ServeWS)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	serverAddr := os.Getenv("SERVER_ADDRESS")
	if serverAddr == "" {
		serverAddr = "0.0.0.0:8080"
	}

	log.Printf("Starting server on %s", serverAddr)
	log.Fatal(http.ListenAndServe(serverAddr, r))
}
