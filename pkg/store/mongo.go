package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lmarten/coursemap/pkg/catalog"
)

const (
	mongoDatabase   = "coursemap"
	mongoCollection = "snapshots"
)

// MongoStore implements a MongoDB-backed snapshot store.
// Snapshots live in the coursemap.snapshots collection, keyed by name.
// The catalog is stored as its JSON encoding rather than a BSON document:
// BSON maps do not preserve key order, and subject order is part of the
// catalog contract.
type MongoStore struct {
	coll *mongo.Collection
}

// mongoSnapshot is the document shape for a stored snapshot.
type mongoSnapshot struct {
	ID        string    `bson:"id"`
	Name      string    `bson:"name"`
	Catalog   string    `bson:"catalog_json"`
	CreatedAt time.Time `bson:"created_at"`
}

// NewMongoStore creates a Mongo-backed store from a connected client.
// The caller owns the client and its lifecycle.
func NewMongoStore(client *mongo.Client) *MongoStore {
	return &MongoStore{coll: client.Database(mongoDatabase).Collection(mongoCollection)}
}

// DialMongoStore connects to the given MongoDB URI and returns a store
// plus a disconnect function.
func DialMongoStore(ctx context.Context, uri string) (*MongoStore, func(context.Context) error, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	return NewMongoStore(client), client.Disconnect, nil
}

// Save upserts the snapshot document keyed by name.
func (s *MongoStore) Save(ctx context.Context, snap *Snapshot) error {
	doc, err := toMongoSnapshot(snap)
	if err != nil {
		return err
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"name": snap.Name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo save: %w", err)
	}
	return nil
}

// Get retrieves the snapshot saved under name.
func (s *MongoStore) Get(ctx context.Context, name string) (*Snapshot, error) {
	var doc mongoSnapshot
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo get: %w", err)
	}
	return fromMongoSnapshot(&doc)
}

// List returns all snapshots ordered by creation time.
func (s *MongoStore) List(ctx context.Context) ([]*Snapshot, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo list: %w", err)
	}
	defer cur.Close(ctx)

	var snaps []*Snapshot
	for cur.Next(ctx) {
		var doc mongoSnapshot
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongo decode: %w", err)
		}
		snap, err := fromMongoSnapshot(&doc)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, cur.Err()
}

// Delete removes the snapshot saved under name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// toMongoSnapshot converts a snapshot into its document form.
func toMongoSnapshot(snap *Snapshot) (*mongoSnapshot, error) {
	data, err := json.Marshal(snap.Catalog)
	if err != nil {
		return nil, err
	}
	return &mongoSnapshot{
		ID:        snap.ID,
		Name:      snap.Name,
		Catalog:   string(data),
		CreatedAt: snap.CreatedAt,
	}, nil
}

// fromMongoSnapshot converts a document back into a snapshot.
func fromMongoSnapshot(doc *mongoSnapshot) (*Snapshot, error) {
	c := catalog.New()
	if err := json.Unmarshal([]byte(doc.Catalog), c); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", doc.Name, err)
	}
	return &Snapshot{
		ID:        doc.ID,
		Name:      doc.Name,
		Catalog:   c,
		CreatedAt: doc.CreatedAt,
	}, nil
}
