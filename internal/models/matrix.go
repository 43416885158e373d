package models

// UserRow es una fila de la matriz user-item: una celda binaria por
// película del catálogo. Celda en 1 = "al usuario le gustó".
// La ausencia de fila significa usuario desconocido, no "cero likes".
type UserRow struct {
	UserID string `json:"userId" bson:"userId"`
	Cells  []int  `json:"cells" bson:"cells"`
}

// LikedItems devuelve los ids de película con celda en 1.
func (r UserRow) LikedItems() []int {
	var out []int
	for i, v := range r.Cells {
		if v == 1 {
			out = append(out, i)
		}
	}
	return out
}

// LikedCount cuenta las celdas en 1 sin materializar la lista.
func (r UserRow) LikedCount() int {
	n := 0
	for _, v := range r.Cells {
		if v == 1 {
			n++
		}
	}
	return n
}
