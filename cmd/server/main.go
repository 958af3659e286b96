package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Adilet2047/Lingua_Connect/internal/chat"
	"github.com/Adilet2047/Lingua_Connect/internal/config"
	"github.com/Adilet2047/Lingua_Connect/internal/database"
	"github.com/Adilet2047/Lingua_Connect/internal/handlers"
	"github.com/Adilet2047/Lingua_Connect/internal/repository"
	"github.com/Adilet2047/Lingua_Connect/internal/services"
	"github.com/Adilet2047/Lingua_Connect/pkg/logger"
	"github.com/Adilet2047/Lingua_Connect/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// Stream Chat client for presence sync and chat tokens
	streamClient, err := chat.NewStreamClient(cfg.StreamAPIKey, cfg.StreamAPISecret)
	if err != nil {
		log.Fatalf("Stream client error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, streamClient)
	friendService := services.NewFriendService(friendRepo, userRepo)
	userService := services.NewUserService(userRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService, friendService)
	chatHandler := handlers.NewChatHandler(streamClient)

	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret, authService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	// Public auth routes
	api.HandleFunc("/auth/signup", authHandler.SignupHandler).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.LoginHandler).Methods("POST")
	api.HandleFunc("/auth/logout", authHandler.LogoutHandler).Methods("POST")

	// Protected auth routes
	protectedAuthRoutes := api.PathPrefix("/auth").Subrouter()
	protectedAuthRoutes.Use(authMiddleware)
	protectedAuthRoutes.HandleFunc("/onboarding", authHandler.OnboardingHandler).Methods("POST")
	protectedAuthRoutes.HandleFunc("/me", authHandler.MeHandler).Methods("GET")

	// User directory and friend-request routes
	userRoutes := api.PathPrefix("/users").Subrouter()
	userRoutes.Use(authMiddleware)
	userRoutes.HandleFunc("", userHandler.GetRecommendedUsersHandler).Methods("GET")
	userRoutes.HandleFunc("/friends", userHandler.GetFriendsHandler).Methods("GET")
	userRoutes.HandleFunc("/friend-request/{userId}", userHandler.SendFriendRequestHandler).Methods("POST")
	userRoutes.HandleFunc("/friend-request/{userId}", userHandler.AcceptFriendRequestHandler).Methods("PUT")
	userRoutes.HandleFunc("/friend-requests", userHandler.GetFriendRequestsHandler).Methods("GET")
	userRoutes.HandleFunc("/outgoing-requests", userHandler.GetOutgoingRequestsHandler).Methods("GET")

	// Chat routes
	chatRoutes := api.PathPrefix("/chats").Subrouter()
	chatRoutes.Use(authMiddleware)
	chatRoutes.HandleFunc("/token", chatHandler.GetStreamTokenHandler).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: c.Handler(router),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Log.Infof("Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("Server shutdown error: %v", err)
	}
	if err := database.Disconnect(shutdownCtx, db); err != nil {
		logger.Log.Errorf("Database disconnect error: %v", err)
	}
}
