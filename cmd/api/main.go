package main

import (
	"log"
	"math/rand"
	"net/http"
	"time"

	_ "github.com/anjan1920/movie-recommendation-engine/docs" // swagger docs

	"github.com/anjan1920/movie-recommendation-engine/internal/cache"
	"github.com/anjan1920/movie-recommendation-engine/internal/catalog"
	"github.com/anjan1920/movie-recommendation-engine/internal/config"
	"github.com/anjan1920/movie-recommendation-engine/internal/db"
	"github.com/anjan1920/movie-recommendation-engine/internal/handler"
	"github.com/anjan1920/movie-recommendation-engine/internal/repository"
	"github.com/anjan1920/movie-recommendation-engine/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Movie Recommendation Engine API
// @version 1.0
// @description Recomendador de películas en tres niveles (cold start, género, colaborativo)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	// Mongo y Redis
	db.InitMongo(cfg)
	cache.InitRedis(cfg)

	// catálogo: snapshot inmutable, se carga una sola vez
	cat, err := catalog.Load(cfg.IMDBPath)
	if err != nil {
		log.Fatalf("[catalog] %v", err)
	}

	// matriz user-item según backend configurado
	matrix, err := repository.OpenMatrix(cfg, cat.Len())
	if err != nil {
		log.Fatalf("[matrix] %v", err)
	}
	defer matrix.Close()
	log.Printf("[matrix] backend=%s columnas=%d", cfg.MatrixBackend, cat.Len())

	userRepo := repository.NewUserRepository()

	// services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	movieSvc := service.NewMovieService(cat)
	trailerSvc := service.NewTrailerService(cfg.YTAPIKey)
	interactionSvc := service.NewInteractionService(cat, matrix)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	recSvc := service.NewRecommendService(cat, matrix, cfg, rng)

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	movieH := handler.NewMovieHandler(movieSvc, trailerSvc)
	actionH := handler.NewActionHandler(interactionSvc)
	recH := handler.NewRecommendHandler(recSvc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", handler.Health)

	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)

	// catálogo
	r.Get("/movie", movieH.GetMovie)
	r.Get("/movie/trailer", movieH.GetTrailer)
	r.Get("/genres", movieH.GetGenres)
	r.Get("/get_genre_movies", movieH.GetGenreMovies)
	r.Get("/movies/search", movieH.Search)
	r.Get("/movies/top", movieH.Top)

	// interacción y recomendación (user_id explícito, como el frontend original)
	r.Post("/user/action", actionH.PostAction)
	r.Get("/user/state", actionH.GetState)
	r.Post("/recommend", recH.Recommend)
	r.Post("/recommend/genre", recH.RecommendByGenre)
	r.Get("/users/{id}/neighbors", recH.Neighbors)
	r.Get("/users/{id}/ws/recommendations", recH.RecommendWS)

	// ===========================
	// Rutas protegidas con JWT
	// ===========================
	authMw := handler.JWTAuth(cfg.JWTSecret)

	r.Group(func(r chi.Router) {
		r.Use(authMw)

		r.Route("/me", func(r chi.Router) {
			r.Get("/profile", authH.Profile)
			r.Get("/state", actionH.GetMyState)
			r.Post("/action", actionH.PostMyAction)
			r.Post("/recommend", recH.RecommendMe)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log.Printf("HTTP escuchando en :%s", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}
