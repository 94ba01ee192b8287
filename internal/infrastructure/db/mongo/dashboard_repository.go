package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/monsite/console-api/internal/core/domain"
)

const dashboardCollection = "dashboards"

type MongoDashboardRepository struct {
	coll *mongo.Collection
}

func NewDashboardRepository(db *mongo.Database) *MongoDashboardRepository {
	return &MongoDashboardRepository{coll: db.Collection(dashboardCollection)}
}

type mongoDashboard struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Category    string             `bson:"category"`
	Active      bool               `bson:"active"`
	URL         string             `bson:"url,omitempty"`
	EmbedURL    string             `bson:"embed_url,omitempty"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (r *MongoDashboardRepository) Create(ctx context.Context, d *domain.Dashboard) (*domain.Dashboard, error) {
	doc := toMongoDashboard(d)

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert dashboard: %w", err)
	}

	created := *d
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoDashboardRepository) FindByID(ctx context.Context, id string) (*domain.Dashboard, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDashboardNotFound
	}

	var md mongoDashboard
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&md); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrDashboardNotFound
		}
		return nil, fmt.Errorf("find dashboard: %w", err)
	}
	return md.toDomain(), nil
}

func (r *MongoDashboardRepository) List(ctx context.Context, onlyActive bool) ([]domain.Dashboard, error) {
	filter := bson.M{}
	if onlyActive {
		filter["active"] = true
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list dashboards: %w", err)
	}
	defer cursor.Close(ctx)

	var dashboards []domain.Dashboard
	for cursor.Next(ctx) {
		var md mongoDashboard
		if err := cursor.Decode(&md); err != nil {
			return nil, fmt.Errorf("decode dashboard: %w", err)
		}
		dashboards = append(dashboards, *md.toDomain())
	}
	return dashboards, cursor.Err()
}

func (r *MongoDashboardRepository) Update(ctx context.Context, d *domain.Dashboard) error {
	oid, err := primitive.ObjectIDFromHex(d.ID)
	if err != nil {
		return domain.ErrDashboardNotFound
	}

	doc := toMongoDashboard(d)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update dashboard: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrDashboardNotFound
	}
	return nil
}

func (r *MongoDashboardRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrDashboardNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete dashboard: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrDashboardNotFound
	}
	return nil
}

func toMongoDashboard(d *domain.Dashboard) mongoDashboard {
	return mongoDashboard{
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Active:      d.Active,
		URL:         d.URL,
		EmbedURL:    d.EmbedURL,
		CreatedAt:   d.CreatedAt.Unix(),
		UpdatedAt:   d.UpdatedAt.Unix(),
	}
}

func (md *mongoDashboard) toDomain() *domain.Dashboard {
	return &domain.Dashboard{
		ID:          md.ID.Hex(),
		Name:        md.Name,
		Description: md.Description,
		Category:    md.Category,
		Active:      md.Active,
		URL:         md.URL,
		EmbedURL:    md.EmbedURL,
		CreatedAt:   unixToTime(md.CreatedAt),
		UpdatedAt:   unixToTime(md.UpdatedAt),
	}
}
