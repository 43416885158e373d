package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"sync"

	"github.com/anjan1920/movie-recommendation-engine/internal/cache"
	"github.com/anjan1920/movie-recommendation-engine/internal/catalog"
	"github.com/anjan1920/movie-recommendation-engine/internal/config"
	"github.com/anjan1920/movie-recommendation-engine/internal/models"
	"github.com/anjan1920/movie-recommendation-engine/internal/recommender"
	"github.com/anjan1920/movie-recommendation-engine/internal/repository"
)

// Tiers de la política de recomendación.
const (
	TierCold          = "cold_start"
	TierLow           = "genre_based"
	TierCollaborative = "collaborative"
	TierCached        = "cached"
)

// RecommendService implementa la política en tres niveles: cold start
// (sin likes), basado en género (pocos likes o poca población) y
// filtrado colaborativo (usuario maduro). El estado de la decisión se
// deriva en cada request desde la matriz, nunca se persiste.
type RecommendService struct {
	cat    *catalog.Catalog
	matrix repository.MatrixStore
	cfg    *config.Config

	// fuente de aleatoriedad inyectable para que los tests puedan
	// fijar la semilla del shuffle de cold start
	mu  sync.Mutex
	rng *rand.Rand
}

type RecRequest struct {
	UserID      string
	OpenedMovie string
	N           int
	Refresh     bool // si true, ignora el cache Redis
}

// Decision documenta qué tier atendió el request (lo consume el WS).
type Decision struct {
	Tier       string `json:"tier"`
	LikedCount int    `json:"liked_count"`
	UserCount  int    `json:"user_count"`
}

func NewRecommendService(
	cat *catalog.Catalog,
	matrix repository.MatrixStore,
	cfg *config.Config,
	rng *rand.Rand,
) *RecommendService {
	return &RecommendService{cat: cat, matrix: matrix, cfg: cfg, rng: rng}
}

func cacheKey(req RecRequest) string {
	// la película abierta entra en la clave: en cold start decide el
	// pool de género, dos películas distintas no comparten cache
	return fmt.Sprintf("rec:user:%s:n:%d:opened:%s",
		req.UserID, req.N, catalog.NormalizeTitle(req.OpenedMovie))
}

// Recommend corre la política completa y resuelve los ids resultantes
// contra el catálogo. Ids que no resuelven se saltan en silencio; la
// lista vacía es un resultado válido, no un error.
func (s *RecommendService) Recommend(ctx context.Context, req RecRequest) ([]models.RecMovie, Decision, error) {
	userID, err := NormalizeUserID(req.UserID)
	if err != nil {
		return nil, Decision{}, err
	}
	req.UserID = userID
	if req.N <= 0 {
		req.N = s.cfg.RecommendLimit
	}

	var cached []models.RecMovie
	if !req.Refresh {
		if ok, err := cache.GetJSON(ctx, cacheKey(req), &cached); err == nil && ok {
			return cached, Decision{Tier: TierCached}, nil
		}
	}

	liked, err := s.matrix.LikedItems(ctx, userID)
	if err != nil {
		return nil, Decision{}, err
	}
	userCount, err := s.matrix.RowCount(ctx)
	if err != nil {
		return nil, Decision{}, err
	}

	dec := Decision{LikedCount: len(liked), UserCount: userCount}

	var out []models.RecMovie
	switch {
	case len(liked) == 0:
		dec.Tier = TierCold
		out = s.coldStart(req.OpenedMovie, req.N)

	case len(liked) < s.cfg.LowLikeThreshold || userCount < s.cfg.LowUserThreshold:
		dec.Tier = TierLow
		titles, err := s.likedTitles(liked)
		if err != nil {
			return nil, dec, err
		}
		out = toRecMovies(recommender.ScoreByGenre(s.cat, titles, req.N))

	default:
		dec.Tier = TierCollaborative
		rows, err := s.matrix.Rows(ctx)
		if err != nil {
			return nil, dec, err
		}
		neighbors := recommender.Neighbors(rows, userID, s.cfg.MinSimilarity, s.cfg.MaxNeighbors)
		ids := recommender.Rank(rows, userID, neighbors, req.N)
		out = s.resolveIDs(ids)
	}

	log.Printf("[recommend] user=%s tier=%s liked=%d users=%d resultados=%d",
		userID, dec.Tier, dec.LikedCount, dec.UserCount, len(out))

	if err := cache.SetJSON(ctx, cacheKey(req), out, s.cfg.CacheTTLSeconds); err != nil {
		log.Printf("[recommend] error cacheando en Redis: %v", err)
	}
	return out, dec, nil
}

// coldStart: sin señal del usuario. Con película abierta que resuelve,
// toma su género primario, junta el pool de mejores puntuadas de ese
// género y sortea el subconjunto final, así la presentación varía sin
// salir del pool de calidad. Si no resuelve, top global por rating.
func (s *RecommendService) coldStart(openedMovie string, n int) []models.RecMovie {
	opened, ok := s.cat.ByTitle(openedMovie)
	if !ok || len(opened.Genres) == 0 {
		log.Printf("[recommend] cold start sin película abierta resuelta, top global")
		return toRecMovies(s.cat.TopRated(n))
	}

	primary := opened.Genres[0]
	pool := s.cat.ByGenre(primary)

	filtered := pool[:0:0]
	for _, m := range pool {
		if m.ID != opened.ID {
			filtered = append(filtered, m)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Rating > filtered[j].Rating })
	if len(filtered) > s.cfg.ColdPoolSize {
		filtered = filtered[:s.cfg.ColdPoolSize]
	}

	s.mu.Lock()
	s.rng.Shuffle(len(filtered), func(i, j int) {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	})
	s.mu.Unlock()

	if len(filtered) > n {
		filtered = filtered[:n]
	}
	return toRecMovies(filtered)
}

// RecommendByGenre es la entrada directa al scorer de contenido.
func (s *RecommendService) RecommendByGenre(_ context.Context, likedTitles []string, n int) []string {
	if n <= 0 {
		n = s.cfg.RecommendLimit
	}
	movies := recommender.ScoreByGenre(s.cat, likedTitles, n)
	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}
	return titles
}

// Neighbors es la entrada directa al motor de similitud.
func (s *RecommendService) Neighbors(ctx context.Context, userID string, minSim float64, topN int) ([]models.NeighborScore, error) {
	userID, err := NormalizeUserID(userID)
	if err != nil {
		return nil, err
	}
	if minSim < 0 {
		minSim = s.cfg.MinSimilarity
	}
	if topN <= 0 {
		topN = s.cfg.MaxNeighbors
	}

	rows, err := s.matrix.Rows(ctx)
	if err != nil {
		return nil, err
	}

	neighbors := recommender.Neighbors(rows, userID, minSim, topN)
	out := make([]models.NeighborScore, len(neighbors))
	for i, n := range neighbors {
		out[i] = models.NeighborScore{UserID: n.UserID, Score: n.Score}
	}
	return out, nil
}

func (s *RecommendService) likedTitles(likedIDs []int) ([]string, error) {
	titles := make([]string, 0, len(likedIDs))
	for _, id := range likedIDs {
		if m, ok := s.cat.ByID(id); ok {
			titles = append(titles, m.Title)
		}
	}
	return titles, nil
}

func (s *RecommendService) resolveIDs(ids []int) []models.RecMovie {
	out := make([]models.RecMovie, 0, len(ids))
	for _, id := range ids {
		m, ok := s.cat.ByID(id)
		if !ok {
			// id que ya no resuelve: se salta, nunca rompe el request
			continue
		}
		out = append(out, models.RecMovie{Title: m.Title, Rating: m.Rating, Poster: m.Poster})
	}
	return out
}

func toRecMovies(movies []models.Movie) []models.RecMovie {
	out := make([]models.RecMovie, len(movies))
	for i, m := range movies {
		out[i] = models.RecMovie{Title: m.Title, Rating: m.Rating, Poster: m.Poster}
	}
	return out
}
