package database

import (
	"context"
	"errors"
	"fmt"
	"lotbook/models"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// MongoStore keeps projects as documents in a single collection.
type MongoStore struct {
	Client     *mongo.Client
	Collection *mongo.Collection
	logger     *zap.Logger
}

// mongoProject is the stored document. The _id is omitted on insert so the
// server generates it.
type mongoProject struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	models.Project `bson:",inline"`
}

func (d mongoProject) toModel() models.Project {
	p := d.Project
	p.ID = d.ID.Hex()
	return p
}

func ConnectMongo(ctx context.Context, uri, database, collection string, logger *zap.Logger) (*MongoStore, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(25).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(30 * time.Minute)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info("mongo connection established",
		zap.String("database", database),
		zap.String("collection", collection))

	return &MongoStore{
		Client:     client,
		Collection: client.Database(database).Collection(collection),
		logger:     logger,
	}, nil
}

func (s *MongoStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	cursor, err := s.Collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	var docs []mongoProject
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}

	projects := make([]models.Project, 0, len(docs))
	for _, doc := range docs {
		projects = append(projects, doc.toModel())
	}
	return projects, nil
}

func (s *MongoStore) GetProject(ctx context.Context, id string) (*models.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, invalidID(id)
	}

	var doc mongoProject
	err = s.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	p := doc.toModel()
	return &p, nil
}

func (s *MongoStore) InsertProject(ctx context.Context, p models.Project) (*models.InsertResult, error) {
	res, err := s.Collection.InsertOne(ctx, mongoProject{Project: p})
	if err != nil {
		return nil, fmt.Errorf("failed to insert project: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	s.logger.Info("created project", zap.String("id", oid.Hex()), zap.String("name", p.Name))
	return &models.InsertResult{Acknowledged: true, InsertedID: oid.Hex()}, nil
}

func (s *MongoStore) UpdateProject(ctx context.Context, id string, p models.Project) (*models.UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, invalidID(id)
	}

	res, err := s.Collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": mongoProject{Project: p}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	result := &models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if upserted, ok := res.UpsertedID.(primitive.ObjectID); ok {
		hex := upserted.Hex()
		result.UpsertedID = &hex
	}

	s.logger.Info("updated project", zap.String("id", id), zap.Int64("matched", res.MatchedCount))
	return result, nil
}

func (s *MongoStore) DeleteProject(ctx context.Context, id string) (*models.DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, invalidID(id)
	}

	res, err := s.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}

	s.logger.Info("deleted project", zap.String("id", id), zap.Int64("deleted", res.DeletedCount))
	return &models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// EnsureIndexes creates the lookup index on company_id and project_id.
// The index is not unique: project ids are caller supplied.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "company_id", Value: 1}, {Key: "project_id", Value: 1}},
		Options: options.Index().SetName("company_project"),
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect mongo: %w", err)
	}
	s.logger.Info("mongo connection closed")
	return nil
}
