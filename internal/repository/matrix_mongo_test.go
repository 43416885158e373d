package repository

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

// Los documentos de update se arman en funciones puras para poder
// verificar su forma sin un mongod de por medio.

func TestEnsureRowUpdate(t *testing.T) {
	doc := ensureRowUpdate(4)

	if _, ok := doc["$set"]; ok {
		t.Fatal("el upsert de fila no debe llevar $set (Mongo rechaza un $set vacío)")
	}
	onInsert, ok := doc["$setOnInsert"].(bson.M)
	if !ok {
		t.Fatalf("falta $setOnInsert: %v", doc)
	}
	cells, ok := onInsert["cells"].([]int)
	if !ok || len(cells) != 4 {
		t.Fatalf("cells = %v, want fila en cero de 4 celdas", onInsert["cells"])
	}
	for i, v := range cells {
		if v != 0 {
			t.Errorf("celda %d = %d, want 0", i, v)
		}
	}
}

func TestLikeSets(t *testing.T) {
	t.Run("una clave por celda likeada", func(t *testing.T) {
		set := likeSets([]int{0, 3})
		if len(set) != 2 {
			t.Fatalf("set = %v, want 2 claves", set)
		}
		for _, key := range []string{"cells.0", "cells.3"} {
			if v, ok := set[key]; !ok || v != 1 {
				t.Errorf("set[%q] = %v, want 1", key, set[key])
			}
		}
	})

	t.Run("sin likes queda vacío y no se manda", func(t *testing.T) {
		// UpsertLikes corta antes del $set cuando no hay items; la fila
		// igual se crea vía el upsert (migraciones de usuarios sin likes)
		if set := likeSets(nil); len(set) != 0 {
			t.Errorf("set = %v, want vacío", set)
		}
	})
}
