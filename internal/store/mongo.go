package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoRecord is the stored shape: the JSON document is kept verbatim in
// body so key order and number formatting survive the round trip.
type mongoRecord struct {
	ID        string    `bson:"_id"`
	Body      string    `bson:"body"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoBackend stores the document as one record of a collection,
// replaced with upsert on every write.
type MongoBackend struct {
	col *mongo.Collection
	id  string
}

var _ Backend = (*MongoBackend)(nil)

func NewMongoBackend(col *mongo.Collection, id string) *MongoBackend {
	return &MongoBackend{col: col, id: id}
}

func (m *MongoBackend) Location() string {
	return "mongo:" + m.col.Database().Name() + "." + m.col.Name() + "/" + m.id
}

func (m *MongoBackend) Read(ctx context.Context) ([]byte, error) {
	var rec mongoRecord
	if err := m.col.FindOne(ctx, bson.M{"_id": m.id}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("%w: mongo find %s: %w", ErrIO, m.id, err)
	}
	return []byte(rec.Body), nil
}

func (m *MongoBackend) Write(ctx context.Context, data []byte) error {
	rec := mongoRecord{ID: m.id, Body: string(data), UpdatedAt: time.Now().UTC()}
	opts := options.Replace().SetUpsert(true)
	if _, err := m.col.ReplaceOne(ctx, bson.M{"_id": m.id}, rec, opts); err != nil {
		return fmt.Errorf("%w: mongo replace %s: %w", ErrIO, m.id, err)
	}
	return nil
}

func (m *MongoBackend) Ping(ctx context.Context) error {
	if err := m.col.Database().Client().Ping(ctx, nil); err != nil {
		return fmt.Errorf("%w: mongo ping: %w", ErrIO, err)
	}
	return nil
}

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}
