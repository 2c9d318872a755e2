// Package mongo provides a MongoDB-backed implementation of storage.KV.
// Every key is one document in the kv collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mmynk/gameochtend/internal/storage"
)

var _ storage.KV = (*Store)(nil)

const collectionName = "kv"

type document struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Store implements storage.KV on a MongoDB collection.
//
// Update is serialized within the process but is not transactional across
// processes; concurrent writers resolve by last write wins.
type Store struct {
	client *mongo.Client
	c      *mongo.Collection
	mu     sync.Mutex
}

// Connect dials uri and returns a Store on database db.
func Connect(ctx context.Context, uri, db string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return &Store{client: client, c: client.Database(db).Collection(collectionName)}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc document
	err := s.c.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return doc.Value, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	doc := document{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, key string, fn storage.UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, found, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	next, err := fn(current, found)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, next)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
