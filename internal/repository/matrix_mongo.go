package repository

import (
	"context"
	"fmt"

	"github.com/anjan1920/movie-recommendation-engine/internal/db"
	"github.com/anjan1920/movie-recommendation-engine/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMatrixStore guarda una fila por documento {userId, cells}. Los
// updates van con $set por celda sobre un upsert con índice único en
// userId, así el read-modify-write es atómico por usuario y desaparece
// la carrera del formato tabla-plana.
type MongoMatrixStore struct {
	col   *mongo.Collection
	meta  *mongo.Collection
	items int
}

type matrixMeta struct {
	ID    string `bson:"_id"`
	Items int    `bson:"items"`
}

func NewMongoMatrixStore(ctx context.Context, items int) (*MongoMatrixStore, error) {
	s := &MongoMatrixStore{
		col:   db.DB().Collection("user_matrix"),
		meta:  db.DB().Collection("matrix_meta"),
		items: items,
	}

	// una fila por usuario: dos upserts concurrentes del mismo userId
	// no pueden dejar documentos duplicados
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}

	// verificación de consistencia contra el catálogo actual
	var meta matrixMeta
	err = s.meta.FindOne(ctx, bson.M{"_id": "matrix"}).Decode(&meta)
	switch {
	case err == mongo.ErrNoDocuments:
		_, err = s.meta.UpdateOne(ctx,
			bson.M{"_id": "matrix"},
			bson.M{"$set": bson.M{"items": items}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	case meta.Items != items:
		return nil, fmt.Errorf("%w: %d columnas persistidas, catálogo de %d",
			ErrMatrixInconsistent, meta.Items, items)
	}

	return s, nil
}

func (s *MongoMatrixStore) Close() error { return nil }

func (s *MongoMatrixStore) GetRow(ctx context.Context, userID string) (models.UserRow, bool, error) {
	var row models.UserRow
	err := s.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&row)
	if err == mongo.ErrNoDocuments {
		return models.UserRow{}, false, nil
	}
	if err != nil {
		return models.UserRow{}, false, err
	}
	if len(row.Cells) != s.items {
		return models.UserRow{}, false, fmt.Errorf("%w: fila %q con %d celdas",
			ErrMatrixInconsistent, userID, len(row.Cells))
	}
	return row, true, nil
}

// ensureRowUpdate arma el upsert que crea la fila en cero si no existe.
// $setOnInsert solo, nunca un $set vacío (Mongo lo rechaza).
func ensureRowUpdate(items int) bson.M {
	return bson.M{"$setOnInsert": bson.M{"cells": make([]int, items)}}
}

// likeSets arma los $set por celda de un lote de likes.
func likeSets(itemIDs []int) bson.M {
	set := bson.M{}
	for _, id := range itemIDs {
		set[fmt.Sprintf("cells.%d", id)] = 1
	}
	return set
}

func (s *MongoMatrixStore) UpsertLikes(ctx context.Context, userID string, itemIDs []int) error {
	for _, id := range itemIDs {
		if err := validCell(s.items, id, 1); err != nil {
			return err
		}
	}

	// paso 1: garantizar la fila, también con cero likes. Un duplicado
	// por upserts concurrentes significa que la fila ya existe.
	_, err := s.col.UpdateOne(ctx,
		bson.M{"userId": userID},
		ensureRowUpdate(s.items),
		options.Update().SetUpsert(true),
	)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return err
	}

	// paso 2: marcar las celdas pedidas sin tocar el resto
	if len(itemIDs) == 0 {
		return nil
	}
	_, err = s.col.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$set": likeSets(itemIDs)})
	return err
}

func (s *MongoMatrixStore) SetCell(ctx context.Context, userID string, itemID, value int) error {
	if err := validCell(s.items, itemID, value); err != nil {
		return err
	}
	// sin upsert: usuario desconocido = no-op
	_, err := s.col.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{fmt.Sprintf("cells.%d", itemID): value}},
	)
	return err
}

func (s *MongoMatrixStore) RowCount(ctx context.Context) (int, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{})
	return int(n), err
}

func (s *MongoMatrixStore) LikedItems(ctx context.Context, userID string) ([]int, error) {
	row, found, err := s.GetRow(ctx, userID)
	if err != nil || !found {
		return nil, err
	}
	return row.LikedItems(), nil
}

func (s *MongoMatrixStore) Rows(ctx context.Context) ([]models.UserRow, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.UserRow
	for cur.Next(ctx) {
		var row models.UserRow
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		if len(row.Cells) != s.items {
			return nil, fmt.Errorf("%w: fila %q con %d celdas",
				ErrMatrixInconsistent, row.UserID, len(row.Cells))
		}
		out = append(out, row)
	}
	return out, cur.Err()
}
