package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pulseapp/pulse-api/internal/config"
	"github.com/pulseapp/pulse-api/internal/domain/auth"
	"github.com/pulseapp/pulse-api/internal/domain/moderation"
	"github.com/pulseapp/pulse-api/internal/domain/post"
	"github.com/pulseapp/pulse-api/internal/domain/profile"
	"github.com/pulseapp/pulse-api/internal/domain/relationship"
	"github.com/pulseapp/pulse-api/internal/domain/user"
	"github.com/pulseapp/pulse-api/internal/middleware"
	"github.com/pulseapp/pulse-api/internal/pkg/database"
	"github.com/pulseapp/pulse-api/internal/pkg/jwt"
	"github.com/pulseapp/pulse-api/internal/pkg/logger"
	pkgresponse "github.com/pulseapp/pulse-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
	})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Pulse API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	rdb, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(rdb)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	graph := relationship.NewPostgresGraph(db)
	postRepo := post.NewRepository(db)
	moderationRepo := moderation.NewRepository(db)

	// ---------- Adapters ----------
	identity := &identityAdapter{users: userRepo}

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService, rdb)
	relationshipService := relationship.NewService(graph, identity)
	postService := post.NewService(postRepo, relationshipService)
	moderationService := moderation.NewService(moderationRepo, &postRemoverAdapter{posts: postService})

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	profileHandler := profile.NewHandler(userRepo)
	relationshipHandler := relationship.NewHandler(relationshipService, identity)
	postHandler := post.NewHandler(postService)
	moderationHandler := moderation.NewHandler(moderationService)

	authMiddleware := middleware.Auth(jwtService)
	adminMiddleware := middleware.RequireAdmin()

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := graph.Ping(r.Context()); err != nil {
			pkgresponse.Error(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "database unreachable")
			return
		}
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/profile", profileHandler.Routes(authMiddleware))
		r.Mount("/posts", postHandler.Routes(authMiddleware))
		r.Mount("/feed", postHandler.FeedRoutes(authMiddleware))
		r.Mount("/hashtags", postHandler.HashtagRoutes())
		r.Mount("/comments", postHandler.CommentRoutes(authMiddleware))
		r.Mount("/moderation", moderationHandler.Routes(authMiddleware, adminMiddleware))

		// Follow/unfollow/block live at the API root, same URL shape as
		// the original service.
		r.Mount("/", relationshipHandler.Routes(authMiddleware))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

// Adapter implementations to bridge interface mismatches

// identityAdapter projects the relational user store onto the identity
// lookups the relationship engine needs.
type identityAdapter struct {
	users user.Repository
}

func (a *identityAdapter) Resolve(ctx context.Context, ids []uuid.UUID) ([]relationship.Identity, error) {
	found, err := a.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	identities := make([]relationship.Identity, 0, len(found))
	for _, u := range found {
		identities = append(identities, relationship.Identity{
			ID:        u.ID,
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			AvatarURL: u.Avatar(),
		})
	}
	return identities, nil
}

func (a *identityAdapter) ResolveUsername(ctx context.Context, username string) (*relationship.Identity, error) {
	u, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}

	return &relationship.Identity{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		AvatarURL: u.Avatar(),
	}, nil
}

// postRemoverAdapter lets moderation remove posts with admin authority.
type postRemoverAdapter struct {
	posts *post.Service
}

func (a *postRemoverAdapter) RemovePost(ctx context.Context, postID uuid.UUID) error {
	return a.posts.DeletePost(ctx, uuid.Nil, postID, true)
}
