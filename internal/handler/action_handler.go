package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/anjan1920/movie-recommendation-engine/internal/service"
)

// ActionHandler atiende likes/dislikes y el estado del usuario.
type ActionHandler struct {
	svc *service.InteractionService
}

func NewActionHandler(s *service.InteractionService) *ActionHandler {
	return &ActionHandler{svc: s}
}

type actionRequest struct {
	UserID     string `json:"user_id"`
	MovieTitle string `json:"movie_title"`
	Action     *int   `json:"action"` // 1 = like, 0 = dislike
}

type actionResponse struct {
	Status          string `json:"status"`
	LikedCount      int    `json:"liked_count"`
	ShouldRecommend bool   `json:"should_recommend"`
}

// @Summary Registrar like/dislike
// @Tags user
// @Accept json
// @Produce json
// @Param body body actionRequest true "acción"
// @Success 200 {object} actionResponse
// @Failure 400 {string} string
// @Failure 404 {string} string
// @Router /user/action [post]
func (h *ActionHandler) PostAction(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Request must be JSON", http.StatusBadRequest)
		return
	}
	if req.Action == nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	h.record(w, r, req.UserID, req.MovieTitle, *req.Action)
}

// @Summary Registrar like/dislike (usuario del token)
// @Tags user
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body actionRequest true "acción (user_id se ignora)"
// @Success 200 {object} actionResponse
// @Router /me/action [post]
func (h *ActionHandler) PostMyAction(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Request must be JSON", http.StatusBadRequest)
		return
	}
	if req.Action == nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	h.record(w, r, UserIDFromContext(r.Context()), req.MovieTitle, *req.Action)
}

func (h *ActionHandler) record(w http.ResponseWriter, r *http.Request, userID, title string, action int) {
	likedCount, err := h.svc.RecordAction(r.Context(), userID, title, action)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPayload):
			http.Error(w, "Invalid payload", http.StatusBadRequest)
		case errors.Is(err, service.ErrMovieNotFound):
			http.Error(w, "Movie not found", http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	_ = json.NewEncoder(w).Encode(actionResponse{
		Status:          "success",
		LikedCount:      likedCount,
		ShouldRecommend: true,
	})
}

type stateResponse struct {
	LikedCount           int  `json:"liked_count"`
	HasLikedCurrentMovie bool `json:"has_liked_current_movie"`
}

// @Summary Estado de likes del usuario
// @Tags user
// @Produce json
// @Param user_id query string true "id de usuario"
// @Param movie_title query string true "película abierta"
// @Success 200 {object} stateResponse
// @Failure 400 {string} string
// @Router /user/state [get]
func (h *ActionHandler) GetState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID := r.URL.Query().Get("user_id")
	title := r.URL.Query().Get("movie_title")
	if userID == "" || title == "" {
		http.Error(w, "Missing user_id or movie_title", http.StatusBadRequest)
		return
	}

	h.state(w, r, userID, title)
}

// @Summary Estado de likes (usuario del token)
// @Tags user
// @Security BearerAuth
// @Produce json
// @Param movie_title query string true "película abierta"
// @Success 200 {object} stateResponse
// @Router /me/state [get]
func (h *ActionHandler) GetMyState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	title := r.URL.Query().Get("movie_title")
	if title == "" {
		http.Error(w, "Missing movie_title", http.StatusBadRequest)
		return
	}

	h.state(w, r, UserIDFromContext(r.Context()), title)
}

func (h *ActionHandler) state(w http.ResponseWriter, r *http.Request, userID, title string) {
	likedCount, hasLiked, err := h.svc.UserState(r.Context(), userID, title)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	_ = json.NewEncoder(w).Encode(stateResponse{
		LikedCount:           likedCount,
		HasLikedCurrentMovie: hasLiked,
	})
}
