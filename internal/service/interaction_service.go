package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/anjan1920/movie-recommendation-engine/internal/catalog"
	"github.com/anjan1920/movie-recommendation-engine/internal/repository"
)

const (
	ActionDislike = 0
	ActionLike    = 1
)

// InteractionService registra likes/dislikes sobre la matriz user-item
// y responde el estado del usuario.
type InteractionService struct {
	cat    *catalog.Catalog
	matrix repository.MatrixStore
}

func NewInteractionService(cat *catalog.Catalog, matrix repository.MatrixStore) *InteractionService {
	return &InteractionService{cat: cat, matrix: matrix}
}

// NormalizeUserID fija el tipo de identificador en la frontera: string
// sin espacios sobrantes. Vacío después del trim es payload inválido.
func NormalizeUserID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", fmt.Errorf("%w: user_id requerido", ErrInvalidPayload)
	}
	return id, nil
}

// RecordAction resuelve el título, actualiza la matriz y devuelve el
// liked_count actualizado del usuario.
//
// Like sobre usuario nuevo crea la fila en cero y marca la celda.
// Dislike sobre usuario desconocido es un no-op: no crea fila.
func (s *InteractionService) RecordAction(ctx context.Context, userID, title string, action int) (int, error) {
	userID, err := NormalizeUserID(userID)
	if err != nil {
		return 0, err
	}
	if action != ActionLike && action != ActionDislike {
		return 0, fmt.Errorf("%w: action debe ser 0 o 1", ErrInvalidPayload)
	}

	movie, ok := s.cat.ByTitle(title)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMovieNotFound, title)
	}

	if action == ActionLike {
		if err := s.matrix.UpsertLikes(ctx, userID, []int{movie.ID}); err != nil {
			return 0, err
		}
	} else {
		if err := s.matrix.SetCell(ctx, userID, movie.ID, 0); err != nil {
			return 0, err
		}
	}

	liked, err := s.matrix.LikedItems(ctx, userID)
	if err != nil {
		return 0, err
	}

	log.Printf("[interaction] user=%s movie=%d action=%d liked_count=%d",
		userID, movie.ID, action, len(liked))
	return len(liked), nil
}

// UserState devuelve el liked_count del usuario y si ya marcó la
// película abierta. Usuario desconocido = cero likes, no es error.
// Título que no resuelve tampoco es error acá: has_liked queda en false.
func (s *InteractionService) UserState(ctx context.Context, userID, title string) (likedCount int, hasLiked bool, err error) {
	userID, err = NormalizeUserID(userID)
	if err != nil {
		return 0, false, err
	}

	liked, err := s.matrix.LikedItems(ctx, userID)
	if err != nil {
		return 0, false, err
	}

	if movie, ok := s.cat.ByTitle(title); ok {
		for _, id := range liked {
			if id == movie.ID {
				hasLiked = true
				break
			}
		}
	}
	return len(liked), hasLiked, nil
}

// LikedTitles resuelve los likes del usuario a títulos del catálogo.
func (s *InteractionService) LikedTitles(ctx context.Context, userID string) ([]string, error) {
	liked, err := s.matrix.LikedItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(liked))
	for _, id := range liked {
		if m, ok := s.cat.ByID(id); ok {
			titles = append(titles, m.Title)
		}
	}
	return titles, nil
}
