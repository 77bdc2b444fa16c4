package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	graphio "github.com/matzehuels/netgraph/pkg/io"
	"github.com/matzehuels/netgraph/pkg/netgraph"
)

// MongoOptions configures a MongoBackend.
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
}

// MongoBackend stores each graph as one document keyed by name. The document
// holds the serialized graph as a string, so its layout never drifts from
// the file format.
type MongoBackend struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type graphDocument struct {
	Name      string    `bson:"_id"`
	Version   int       `bson:"version"`
	Data      string    `bson:"data"`
	Nodes     int       `bson:"nodes"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoBackend connects to MongoDB and verifies the connection.
func NewMongoBackend(ctx context.Context, opts MongoOptions) (*MongoBackend, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoBackend{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

func (b *MongoBackend) Load(ctx context.Context, name string) (*netgraph.Store, error) {
	var doc graphDocument
	err := b.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, fmt.Errorf("load graph %s: %w", name, err)
	}
	return graphio.Unmarshal([]byte(doc.Data))
}

func (b *MongoBackend) Save(ctx context.Context, name string, s *netgraph.Store) error {
	data, err := graphio.Marshal(s)
	if err != nil {
		return err
	}
	doc := graphDocument{
		Name:      name,
		Version:   graphio.Version,
		Data:      string(data),
		Nodes:     s.Len(),
		UpdatedAt: time.Now().UTC(),
	}
	_, err = b.coll.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save graph %s: %w", name, err)
	}
	return nil
}

func (b *MongoBackend) Delete(ctx context.Context, name string) error {
	if _, err := b.coll.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return fmt.Errorf("delete graph %s: %w", name, err)
	}
	return nil
}

func (b *MongoBackend) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.M{"_id": 1})
	cur, err := b.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list graphs: %w", err)
	}
	var docs []struct {
		Name string `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list graphs: %w", err)
	}
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return names, nil
}

// Close disconnects the client.
func (b *MongoBackend) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return b.client.Disconnect(ctx)
}

var _ Backend = (*MongoBackend)(nil)
