package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/anjan1920/movie-recommendation-engine/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type RecommendHandler struct {
	svc *service.RecommendService
}

func NewRecommendHandler(s *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{svc: s}
}

type recommendRequest struct {
	UserID      string `json:"user_id"`
	OpenedMovie string `json:"opened_movie"`
	TopN        int    `json:"top_n"`
	Refresh     bool   `json:"refresh"`
}

// @Summary Recomendaciones para un usuario (política completa)
// @Tags recommend
// @Accept json
// @Produce json
// @Param body body recommendRequest true "request"
// @Success 200 {array} models.RecMovie
// @Failure 400 {string} string
// @Router /recommend [post]
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Request must be JSON", http.StatusBadRequest)
		return
	}

	h.recommend(w, r, req)
}

// @Summary Recomendaciones (usuario del token)
// @Tags recommend
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body recommendRequest true "request (user_id se ignora)"
// @Success 200 {array} models.RecMovie
// @Router /me/recommend [post]
func (h *RecommendHandler) RecommendMe(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Request must be JSON", http.StatusBadRequest)
		return
	}
	req.UserID = UserIDFromContext(r.Context())

	h.recommend(w, r, req)
}

func (h *RecommendHandler) recommend(w http.ResponseWriter, r *http.Request, req recommendRequest) {
	movies, _, err := h.svc.Recommend(r.Context(), service.RecRequest{
		UserID:      req.UserID,
		OpenedMovie: req.OpenedMovie,
		N:           req.TopN,
		Refresh:     req.Refresh,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(movies)
}

type genreRecommendRequest struct {
	LikedMovies []string `json:"liked_movies"`
	TopN        int      `json:"top_n"`
}

// @Summary Recomendación por género (entrada directa al scorer)
// @Tags recommend
// @Accept json
// @Produce json
// @Param body body genreRecommendRequest true "títulos que gustaron"
// @Success 200 {array} string
// @Router /recommend/genre [post]
func (h *RecommendHandler) RecommendByGenre(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req genreRecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Request must be JSON", http.StatusBadRequest)
		return
	}

	titles := h.svc.RecommendByGenre(r.Context(), req.LikedMovies, req.TopN)
	_ = json.NewEncoder(w).Encode(titles)
}

// @Summary Vecinos por similitud coseno (entrada directa al motor)
// @Tags recommend
// @Produce json
// @Param id path string true "userId"
// @Param min_sim query number false "score mínimo"
// @Param top_n query int false "cantidad de vecinos"
// @Success 200 {array} models.NeighborScore
// @Router /users/{id}/neighbors [get]
func (h *RecommendHandler) Neighbors(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID := chi.URLParam(r, "id")
	minSim := -1.0
	if v := r.URL.Query().Get("min_sim"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			minSim = f
		}
	}
	topN, _ := strconv.Atoi(r.URL.Query().Get("top_n"))

	neighbors, err := h.svc.Neighbors(r.Context(), userID, minSim, topN)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(neighbors)
}

// upgrader global (no afecta a swagger)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Recomendaciones en tiempo real (WebSocket)
// @Tags recommend
// @Produce json
// @Param id path string true "userId"
// @Param opened_movie query string false "película abierta (cold start)"
// @Param top_n query int false "cantidad"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/ws/recommendations [get]
func (h *RecommendHandler) RecommendWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "No se pudo abrir WebSocket", http.StatusBadRequest)
		return
	}
	defer conn.Close()

	userID := chi.URLParam(r, "id")
	openedMovie := r.URL.Query().Get("opened_movie")
	topN, _ := strconv.Atoi(r.URL.Query().Get("top_n"))

	conn.WriteJSON(map[string]any{
		"type": "start",
		"msg":  "Conexión WS abierta, evaluando política de recomendación…",
	})

	movies, dec, err := h.svc.Recommend(r.Context(), service.RecRequest{
		UserID:      userID,
		OpenedMovie: openedMovie,
		N:           topN,
		Refresh:     true,
	})
	if err != nil {
		conn.WriteJSON(map[string]any{
			"type":  "error",
			"error": err.Error(),
		})
		return
	}

	conn.WriteJSON(map[string]any{
		"type":        "tier",
		"tier":        dec.Tier,
		"liked_count": dec.LikedCount,
		"user_count":  dec.UserCount,
	})

	conn.WriteJSON(map[string]any{
		"type":        "recommendations",
		"userId":      userID,
		"items":       movies,
		"generatedAt": time.Now(),
	})
}
