package repository

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/powerise/corporate-site/internal/content"
)

// Mongo-backed repositories for the three content collections. Documents
// are keyed by an opaque string id assigned at creation. Timestamps are
// normalized to UTC at the read boundary so callers never see the
// server's local offset.

func listFindOptions(opts ListOptions) *options.FindOptions {
	fo := options.Find()
	orderBy := opts.OrderBy
	if orderBy == "" {
		orderBy = "updatedAt"
	}
	fo.SetSort(bson.D{{Key: orderBy, Value: -1}})
	if opts.Limit > 0 {
		fo.SetLimit(opts.Limit)
	}
	return fo
}

func listFilter(opts ListOptions) bson.M {
	if opts.filtersStatus() {
		return bson.M{"status": opts.Status}
	}
	return bson.M{}
}

// MongoPostRepo implements PostRepository on a Mongo collection.
type MongoPostRepo struct {
	col *mongo.Collection
}

func NewMongoPostRepo(col *mongo.Collection) *MongoPostRepo {
	return &MongoPostRepo{col: col}
}

func (r *MongoPostRepo) List(ctx context.Context, opts ListOptions) ([]*content.Post, error) {
	cur, err := r.col.Find(ctx, listFilter(opts), listFindOptions(opts))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*content.Post{}
	for cur.Next(ctx) {
		var p content.Post
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		normalizePost(&p)
		out = append(out, &p)
	}
	return out, cur.Err()
}

func (r *MongoPostRepo) Get(ctx context.Context, id string) (*content.Post, error) {
	var p content.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	normalizePost(&p)
	return &p, nil
}

func (r *MongoPostRepo) Create(ctx context.Context, p *content.Post) (string, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return "", err
	}
	return p.ID, nil
}

func (r *MongoPostRepo) Update(ctx context.Context, id string, set map[string]interface{}) error {
	return updateByID(ctx, r.col, id, set)
}

func (r *MongoPostRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id)
}

// MongoWorkRepo implements WorkRepository on a Mongo collection.
type MongoWorkRepo struct {
	col *mongo.Collection
}

func NewMongoWorkRepo(col *mongo.Collection) *MongoWorkRepo {
	return &MongoWorkRepo{col: col}
}

func (r *MongoWorkRepo) List(ctx context.Context, opts ListOptions) ([]*content.Work, error) {
	cur, err := r.col.Find(ctx, listFilter(opts), listFindOptions(opts))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*content.Work{}
	for cur.Next(ctx) {
		var w content.Work
		if err := cur.Decode(&w); err != nil {
			return nil, err
		}
		normalizeWork(&w)
		out = append(out, &w)
	}
	return out, cur.Err()
}

func (r *MongoWorkRepo) Get(ctx context.Context, id string) (*content.Work, error) {
	var w content.Work
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&w); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	normalizeWork(&w)
	return &w, nil
}

func (r *MongoWorkRepo) Create(ctx context.Context, w *content.Work) (string, error) {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if _, err := r.col.InsertOne(ctx, w); err != nil {
		return "", err
	}
	return w.ID, nil
}

func (r *MongoWorkRepo) Update(ctx context.Context, id string, set map[string]interface{}) error {
	return updateByID(ctx, r.col, id, set)
}

func (r *MongoWorkRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id)
}

// MongoContactRepo implements ContactRepository on a Mongo collection.
type MongoContactRepo struct {
	col *mongo.Collection
}

func NewMongoContactRepo(col *mongo.Collection) *MongoContactRepo {
	return &MongoContactRepo{col: col}
}

func (r *MongoContactRepo) List(ctx context.Context, opts ListOptions) ([]*content.Contact, error) {
	if opts.OrderBy == "" {
		opts.OrderBy = "submittedAt"
	}
	cur, err := r.col.Find(ctx, listFilter(opts), listFindOptions(opts))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*content.Contact{}
	for cur.Next(ctx) {
		var c content.Contact
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		normalizeContact(&c)
		out = append(out, &c)
	}
	return out, cur.Err()
}

func (r *MongoContactRepo) Get(ctx context.Context, id string) (*content.Contact, error) {
	var c content.Contact
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	normalizeContact(&c)
	return &c, nil
}

func (r *MongoContactRepo) Create(ctx context.Context, c *content.Contact) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return "", err
	}
	return c.ID, nil
}

func (r *MongoContactRepo) Update(ctx context.Context, id string, set map[string]interface{}) error {
	return updateByID(ctx, r.col, id, set)
}

func (r *MongoContactRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id)
}

func updateByID(ctx context.Context, col *mongo.Collection, id string, set map[string]interface{}) error {
	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(set)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func deleteByID(ctx context.Context, col *mongo.Collection, id string) error {
	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func normalizePost(p *content.Post) {
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	if p.PublishedAt != nil {
		t := p.PublishedAt.UTC()
		p.PublishedAt = &t
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
}

func normalizeWork(w *content.Work) {
	w.UpdatedAt = w.UpdatedAt.UTC()
	if w.PublishedAt != nil {
		t := w.PublishedAt.UTC()
		w.PublishedAt = &t
	}
	if w.Tags == nil {
		w.Tags = []string{}
	}
	if w.Images == nil {
		w.Images = []string{}
	}
	if w.Technologies == nil {
		w.Technologies = []string{}
	}
}

func normalizeContact(c *content.Contact) {
	c.SubmittedAt = c.SubmittedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
}
