package recommender

import (
	"math"
	"sort"

	"github.com/anjan1920/movie-recommendation-engine/internal/models"
)

// Neighbor es otro usuario con su similitud coseno respecto al objetivo.
type Neighbor struct {
	UserID string
	Score  float64
}

// Neighbors calcula la similitud coseno entre el vector del usuario
// objetivo y el resto de filas del snapshot, y devuelve los vecinos
// ordenados por score descendente.
//
// Usuario desconocido o con vector todo-cero -> lista vacía: sin likes
// no hay señal de similitud. Se descartan los vecinos con score menor
// estricto a minSim y se trunca a topN después de ordenar. Los empates
// quedan en el orden original de las filas (sort estable); eso es una
// decisión de implementación, no un contrato.
func Neighbors(rows []models.UserRow, targetID string, minSim float64, topN int) []Neighbor {
	var target []int
	for _, row := range rows {
		if row.UserID == targetID {
			target = row.Cells
			break
		}
	}
	if target == nil || isZero(target) {
		return nil
	}

	var out []Neighbor
	for _, row := range rows {
		if row.UserID == targetID {
			continue
		}
		score := Cosine(target, row.Cells)
		if score < minSim {
			continue
		}
		out = append(out, Neighbor{UserID: row.UserID, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if topN >= 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// Cosine es dot(a,b) / (|a|*|b|) sobre vectores binarios. Con cualquier
// vector todo-cero devuelve 0 en vez de propagar un NaN.
func Cosine(a, b []int) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, na, nb int
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float64(dot) / (math.Sqrt(float64(na)) * math.Sqrt(float64(nb)))
}

func isZero(cells []int) bool {
	for _, v := range cells {
		if v != 0 {
			return false
		}
	}
	return true
}
