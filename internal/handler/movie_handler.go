package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/anjan1920/movie-recommendation-engine/internal/service"
)

type MovieHandler struct {
	svc      *service.MovieService
	trailers *service.TrailerService
}

func NewMovieHandler(s *service.MovieService, t *service.TrailerService) *MovieHandler {
	return &MovieHandler{svc: s, trailers: t}
}

// @Summary Detalle de película por título
// @Tags movies
// @Produce json
// @Param title query string true "título (case/espacios insensible)"
// @Success 200 {object} models.Movie
// @Failure 404 {string} string
// @Router /movie [get]
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	title := r.URL.Query().Get("title")
	if title == "" {
		http.Error(w, "movie title is required", http.StatusBadRequest)
		return
	}

	m, err := h.svc.Details(r.Context(), title)
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			http.Error(w, "Movie not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(m)
}

// @Summary Trailer de una película (proxy a YouTube)
// @Tags movies
// @Produce json
// @Param title query string true "título"
// @Success 200 {object} map[string]string
// @Failure 404 {string} string
// @Failure 502 {string} string
// @Router /movie/trailer [get]
func (h *MovieHandler) GetTrailer(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	title := r.URL.Query().Get("title")
	if title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	videoID, err := h.trailers.FetchVideoID(r.Context(), title)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrailerNotFound):
			http.Error(w, "No results found", http.StatusNotFound)
		case errors.Is(err, service.ErrTrailerUnavailable):
			http.Error(w, "YouTube API failed", http.StatusBadGateway)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"videoId": videoID})
}

// @Summary Géneros del catálogo con imagen representativa
// @Tags movies
// @Produce json
// @Success 200 {array} models.GenreInfo
// @Router /genres [get]
func (h *MovieHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.svc.Genres(r.Context()))
}

// @Summary Películas de un género
// @Tags movies
// @Produce json
// @Param genre query string true "género"
// @Success 200 {array} models.Movie
// @Router /get_genre_movies [get]
func (h *MovieHandler) GetGenreMovies(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	genre := r.URL.Query().Get("genre")
	if genre == "" {
		http.Error(w, "genre is required", http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(h.svc.ByGenre(r.Context(), genre))
}

// @Summary Búsqueda fuzzy por título
// @Tags movies
// @Produce json
// @Param q query string true "búsqueda"
// @Param limit query int false "límite (default 20)"
// @Success 200 {array} models.Movie
// @Router /movies/search [get]
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "q is required", http.StatusBadRequest)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	_ = json.NewEncoder(w).Encode(h.svc.Search(r.Context(), q, limit))
}

// @Summary Top películas por rating
// @Tags movies
// @Produce json
// @Param limit query int false "límite (default 20)"
// @Success 200 {array} models.Movie
// @Router /movies/top [get]
func (h *MovieHandler) Top(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	_ = json.NewEncoder(w).Encode(h.svc.Top(r.Context(), limit))
}
