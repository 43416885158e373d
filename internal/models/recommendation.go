package models

// RecMovie es lo que devolvemos por API al recomendar (mismo shape
// que consume el frontend: título, rating y poster).
type RecMovie struct {
	Title  string  `json:"title"`
	Rating float64 `json:"rating"`
	Poster string  `json:"poster"`
}

// NeighborScore es un vecino del usuario objetivo con su similitud coseno.
type NeighborScore struct {
	UserID string  `json:"user_id"`
	Score  float64 `json:"score"`
}
