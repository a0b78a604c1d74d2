package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/authslice/authd/internal/core/domain"
)

// RoleRepository stores the role registry, one document per unique name.
type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(rolesCollection)}
}

type mongoRole struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	CreatedAt int64              `bson:"created_at"`
}

// Ensure upserts with $setOnInsert only, so an existing role is never
// rewritten. A duplicate-key error from a concurrent upsert of the same name
// means another caller created it first.
func (r *RoleRepository) Ensure(ctx context.Context, name domain.Role) (*domain.RoleRecord, bool, error) {
	filter := bson.M{"name": string(name)}
	update := bson.M{"$setOnInsert": bson.M{
		"name":       string(name),
		"created_at": time.Now().UTC().Unix(),
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	created := err == nil && res.UpsertedCount > 0
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return nil, false, fmt.Errorf("upsert role: %w", err)
	}

	var mr mongoRole
	if err := r.coll.FindOne(ctx, filter).Decode(&mr); err != nil {
		return nil, false, fmt.Errorf("find role: %w", err)
	}
	return mr.toDomain(), created, nil
}

func (r *RoleRepository) List(ctx context.Context) ([]*domain.RoleRecord, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoRole
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}

	out := make([]*domain.RoleRecord, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (mr *mongoRole) toDomain() *domain.RoleRecord {
	return &domain.RoleRecord{
		ID:        mr.ID.Hex(),
		Name:      domain.Role(mr.Name),
		CreatedAt: unixToTime(mr.CreatedAt),
	}
}
