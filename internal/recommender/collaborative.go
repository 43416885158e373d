package recommender

import (
	"sort"

	"github.com/anjan1920/movie-recommendation-engine/internal/models"
)

// Rank convierte la lista de vecinos en ids de película rankeados:
// cada película que le gustó a un vecino y que el objetivo todavía no
// marcó suma el score del vecino. Una película apoyada por dos vecinos
// débiles puede superar a la de un vecino fuerte; la popularidad entre
// casi-vecinos se acumula a propósito.
//
// Devuelve lista vacía si el objetivo es desconocido o ningún vecino
// aporta una película no vista.
func Rank(rows []models.UserRow, targetID string, neighbors []Neighbor, topN int) []int {
	var seen map[int]bool
	byUser := make(map[string][]int, len(rows))
	for _, row := range rows {
		byUser[row.UserID] = row.Cells
		if row.UserID == targetID {
			seen = map[int]bool{}
			for _, id := range row.LikedItems() {
				seen[id] = true
			}
		}
	}
	if seen == nil {
		return nil
	}

	scores := map[int]float64{}
	for _, n := range neighbors {
		cells, ok := byUser[n.UserID]
		if !ok {
			continue
		}
		for itemID, v := range cells {
			if v == 1 && !seen[itemID] {
				scores[itemID] += n.Score
			}
		}
	}
	if len(scores) == 0 {
		return nil
	}

	ids := make([]int, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if scores[ids[i]] != scores[ids[j]] {
			return scores[ids[i]] > scores[ids[j]]
		}
		return ids[i] < ids[j]
	})

	if topN >= 0 && len(ids) > topN {
		ids = ids[:topN]
	}
	return ids
}
