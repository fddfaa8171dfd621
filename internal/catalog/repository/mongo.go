package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/equza-living-co/go-services/internal/catalog"
)

// mongoCollection is the shared query plumbing for all catalog collections.
// Documents carry an "id" string field (unique-indexed) plus a "slug" field;
// raw document maps are handed to the transformer unmodified.
type mongoCollection struct {
	col *mongo.Collection
}

func newMongoCollection(col *mongo.Collection) mongoCollection {
	idIdx := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	slugIdx := mongo.IndexModel{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{idIdx, slugIdx})
	return mongoCollection{col: col}
}

func (m mongoCollection) find(ctx context.Context, filter bson.M, sort bson.D, limit int64) ([]catalog.RawDocument, error) {
	opts := options.Find().SetSort(sort)
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []catalog.RawDocument{}
	for cur.Next(ctx) {
		var fields bson.M
		if err := cur.Decode(&fields); err != nil {
			return nil, err
		}
		out = append(out, rawDocument(fields))
	}
	return out, cur.Err()
}

func (m mongoCollection) findBySlug(ctx context.Context, slug string) (catalog.RawDocument, error) {
	var fields bson.M
	if err := m.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&fields); err != nil {
		if err == mongo.ErrNoDocuments {
			return catalog.RawDocument{}, catalog.ErrNotFound
		}
		return catalog.RawDocument{}, err
	}
	return rawDocument(fields), nil
}

func (m mongoCollection) create(ctx context.Context, id string, fields map[string]interface{}) error {
	doc := bson.M(fields)
	doc["id"] = id
	now := time.Now().UTC()
	doc["createdAt"] = now
	doc["updatedAt"] = now
	_, err := m.col.InsertOne(ctx, doc)
	return err
}

func (m mongoCollection) update(ctx context.Context, id string, fields map[string]interface{}) error {
	set := bson.M(fields)
	set["updatedAt"] = time.Now().UTC()
	res, err := m.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (m mongoCollection) delete(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (m mongoCollection) upsertBySlug(ctx context.Context, slug string, fields map[string]interface{}) error {
	set := bson.M(fields)
	set["slug"] = slug
	set["updatedAt"] = time.Now().UTC()
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"createdAt": time.Now().UTC()},
	}
	opts := options.Update().SetUpsert(true)
	_, err := m.col.UpdateOne(ctx, bson.M{"slug": slug}, update, opts)
	return err
}

// rawDocument extracts the application-level id and drops the Mongo-internal
// object id from the field map.
func rawDocument(fields bson.M) catalog.RawDocument {
	id, _ := fields["id"].(string)
	if id == "" {
		if oid, ok := fields["_id"]; ok {
			if s, ok := oid.(interface{ Hex() string }); ok {
				id = s.Hex()
			}
		}
	}
	delete(fields, "_id")
	return catalog.RawDocument{ID: id, Fields: fields}
}

func activeFilter(f bson.M, active *bool) {
	if active != nil {
		f["isActive"] = *active
	}
}

var defaultSort = bson.D{{Key: "sortOrder", Value: 1}, {Key: "name", Value: 1}}

// MongoProductRepository implements ProductRepository on a Mongo collection.
type MongoProductRepository struct {
	mongoCollection
}

func NewMongoProductRepository(col *mongo.Collection) *MongoProductRepository {
	return &MongoProductRepository{newMongoCollection(col)}
}

func (r *MongoProductRepository) Find(ctx context.Context, f catalog.ProductFilter) ([]catalog.RawDocument, error) {
	filter := bson.M{}
	activeFilter(filter, f.Active)
	if f.Featured != nil {
		filter["isFeatured"] = *f.Featured
	}
	if f.Collection != "" {
		filter["collections"] = f.Collection
	}
	if f.Search != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(f.Search), "$options": "i"}
	}
	return r.find(ctx, filter, defaultSort, f.Limit)
}

func (r *MongoProductRepository) FindBySlug(ctx context.Context, slug string) (catalog.RawDocument, error) {
	return r.findBySlug(ctx, slug)
}

func (r *MongoProductRepository) Create(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.create(ctx, id, fields)
}

func (r *MongoProductRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.update(ctx, id, fields)
}

func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func (r *MongoProductRepository) UpsertBySlug(ctx context.Context, slug string, fields map[string]interface{}) error {
	return r.upsertBySlug(ctx, slug, fields)
}

// MongoCollectionRepository implements CollectionRepository.
type MongoCollectionRepository struct {
	mongoCollection
}

func NewMongoCollectionRepository(col *mongo.Collection) *MongoCollectionRepository {
	return &MongoCollectionRepository{newMongoCollection(col)}
}

func (r *MongoCollectionRepository) Find(ctx context.Context, f catalog.CollectionFilter) ([]catalog.RawDocument, error) {
	filter := bson.M{}
	activeFilter(filter, f.Active)
	if f.Type != "" {
		filter["type"] = f.Type
	}
	return r.find(ctx, filter, defaultSort, f.Limit)
}

func (r *MongoCollectionRepository) FindBySlug(ctx context.Context, slug string) (catalog.RawDocument, error) {
	return r.findBySlug(ctx, slug)
}

func (r *MongoCollectionRepository) Create(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.create(ctx, id, fields)
}

func (r *MongoCollectionRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.update(ctx, id, fields)
}

func (r *MongoCollectionRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func (r *MongoCollectionRepository) UpsertBySlug(ctx context.Context, slug string, fields map[string]interface{}) error {
	return r.upsertBySlug(ctx, slug, fields)
}

// MongoWeaveTypeRepository implements WeaveTypeRepository.
type MongoWeaveTypeRepository struct {
	mongoCollection
}

func NewMongoWeaveTypeRepository(col *mongo.Collection) *MongoWeaveTypeRepository {
	return &MongoWeaveTypeRepository{newMongoCollection(col)}
}

func (r *MongoWeaveTypeRepository) Find(ctx context.Context, f catalog.WeaveTypeFilter) ([]catalog.RawDocument, error) {
	filter := bson.M{}
	activeFilter(filter, f.Active)
	return r.find(ctx, filter, defaultSort, f.Limit)
}

func (r *MongoWeaveTypeRepository) Create(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.create(ctx, id, fields)
}

func (r *MongoWeaveTypeRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.update(ctx, id, fields)
}

func (r *MongoWeaveTypeRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func (r *MongoWeaveTypeRepository) UpsertBySlug(ctx context.Context, slug string, fields map[string]interface{}) error {
	return r.upsertBySlug(ctx, slug, fields)
}
