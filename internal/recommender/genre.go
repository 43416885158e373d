package recommender

import (
	"sort"

	"github.com/anjan1920/movie-recommendation-engine/internal/catalog"
	"github.com/anjan1920/movie-recommendation-engine/internal/models"
)

// ScoreByGenre es el scorer basado en contenido: pesa cada género por
// la cantidad de veces que aparece entre las películas que le gustaron
// al usuario (una película aporta una vez por cada género que lleva) y
// puntúa el resto del catálogo sumando los pesos de sus géneros.
//
// Candidatos sin ningún género en común se descartan, no entran con 0.
// El orden es (score de género desc, rating desc). Sin likes, sin
// títulos resueltos o sin candidatos con overlap se cae al top global
// por rating: el default de cold start.
func ScoreByGenre(cat *catalog.Catalog, likedTitles []string, topN int) []models.Movie {
	if len(likedTitles) == 0 {
		return cat.TopRated(topN)
	}

	weights := map[string]int{}
	liked := map[int]bool{}
	for _, title := range likedTitles {
		m, ok := cat.ByTitle(title)
		if !ok {
			continue
		}
		liked[m.ID] = true
		for _, g := range m.Genres {
			weights[g]++
		}
	}
	if len(weights) == 0 {
		return cat.TopRated(topN)
	}

	type scored struct {
		movie models.Movie
		score int
	}
	var candidates []scored

	for _, m := range cat.Movies() {
		if liked[m.ID] {
			continue
		}
		score := 0
		for _, g := range m.Genres {
			score += weights[g]
		}
		if score > 0 {
			candidates = append(candidates, scored{movie: m, score: score})
		}
	}
	if len(candidates) == 0 {
		return cat.TopRated(topN)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].movie.Rating > candidates[j].movie.Rating
	})

	if topN >= 0 && len(candidates) > topN {
		candidates = candidates[:topN]
	}

	out := make([]models.Movie, len(candidates))
	for i, c := range candidates {
		out[i] = c.movie
	}
	return out
}
