package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storefront/dashboard-api/internal/core/domain"
	"github.com/storefront/dashboard-api/internal/core/ports"
)

const collectionOrders = "orders"

// OrderRepository needs a replica set: order creation runs in a transaction.
type OrderRepository struct {
	client   *mongo.Client
	coll     *mongo.Collection
	products *mongo.Collection
	users    *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{
		client:   db.Client(),
		coll:     db.Collection(collectionOrders),
		products: db.Collection(collectionProducts),
		users:    db.Collection(collectionUsers),
	}
}

type mongoOrder struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ProductID  primitive.ObjectID `bson:"product_id"`
	UserID     primitive.ObjectID `bson:"user_id"`
	Amount     int                `bson:"amount"`
	Status     string             `bson:"status"`
	PriceCents int64              `bson:"price_cents"`
	CustomerID string             `bson:"customer_id"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (m mongoOrder) toDomain() *domain.Order {
	return &domain.Order{
		ID:         m.ID.Hex(),
		ProductID:  m.ProductID.Hex(),
		UserID:     m.UserID.Hex(),
		Amount:     m.Amount,
		Status:     domain.OrderStatus(m.Status),
		Price:      domain.Money(m.PriceCents),
		CustomerID: m.CustomerID,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

// CreateForProduct reads the product and inserts the order inside one
// multi-document transaction.
func (r *OrderRepository) CreateForProduct(ctx context.Context, productID string, build ports.OrderBuilder) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sess, err := r.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	res, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		product, err := findProduct(sc, r.products, productID)
		if err != nil {
			return nil, err
		}
		order, err := build(product)
		if err != nil {
			return nil, err
		}

		productOID, _ := objectID(product.ID)
		userID, ok := objectID(order.UserID)
		if !ok {
			return nil, domain.ErrUserNotFound
		}
		doc := mongoOrder{
			ProductID:  productOID,
			UserID:     userID,
			Amount:     order.Amount,
			Status:     string(order.Status),
			PriceCents: order.Price.Cents(),
			CustomerID: order.CustomerID,
			CreatedAt:  order.CreatedAt,
		}
		ins, err := r.coll.InsertOne(sc, doc)
		if err != nil {
			return nil, fmt.Errorf("insert order: %w", err)
		}
		doc.ID = ins.InsertedID.(primitive.ObjectID)
		return doc.toDomain(), nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.Order), nil
}

type orderViewDoc struct {
	Order       mongoOrder `bson:",inline"`
	ProductName string     `bson:"product_name"`
	Username    string     `bson:"username"`
}

// ListViews joins orders with product name and username, newest first.
func (r *OrderRepository) ListViews(ctx context.Context, limit int) ([]*domain.OrderView, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	pipeline = append(pipeline,
		lookup(collectionProducts, "product_id", "product"),
		lookup(collectionUsers, "user_id", "user"),
		bson.D{{Key: "$addFields", Value: bson.M{
			"product_name": bson.M{"$arrayElemAt": bson.A{"$product.name", 0}},
			"username":     bson.M{"$arrayElemAt": bson.A{"$user.username", 0}},
		}}},
	)

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate orders: %w", err)
	}
	var docs []orderViewDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	views := make([]*domain.OrderView, 0, len(docs))
	for _, d := range docs {
		views = append(views, &domain.OrderView{
			Order:       *d.Order.toDomain(),
			ProductName: d.ProductName,
			Username:    d.Username,
		})
	}
	return views, nil
}

type topProductDoc struct {
	TotalSold int          `bson:"total_sold"`
	Product   mongoProduct `bson:"product"`
}

// TopProducts sums ordered amounts per product. Ties keep a stable order by id.
func (r *OrderRepository) TopProducts(ctx context.Context, limit int) ([]*domain.TopProduct, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$product_id"},
			{Key: "total_sold", Value: bson.M{"$sum": "$amount"}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total_sold", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	pipeline = append(pipeline,
		lookup(collectionProducts, "_id", "product"),
		bson.D{{Key: "$unwind", Value: "$product"}},
	)

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate top products: %w", err)
	}
	var docs []topProductDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode top products: %w", err)
	}

	top := make([]*domain.TopProduct, 0, len(docs))
	for _, d := range docs {
		top = append(top, &domain.TopProduct{Product: *d.Product.toDomain(), TotalSold: d.TotalSold})
	}
	return top, nil
}

// EnsureIndexes creates the customer_id uniqueness and the listing indexes.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "customer_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "product_id", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func lookup(from, localField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from":         from,
		"localField":   localField,
		"foreignField": "_id",
		"as":           as,
	}}}
}
