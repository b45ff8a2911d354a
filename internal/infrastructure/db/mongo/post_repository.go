package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/foodshare/foodshare-api/internal/core/domain"
	"github.com/foodshare/foodshare-api/internal/core/ports"
)

const postsCollection = "food_posts"

// PostRepository implements ports.PostRepository on MongoDB. Status
// transitions are conditional writes: the update filter pins the expected
// prior status, so concurrent transitions on the same post cannot both apply.
type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(postsCollection)}
}

type postDoc struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty"`
	Title              string              `bson:"title"`
	Description        string              `bson:"description"`
	Quantity           string              `bson:"quantity"`
	ImageURL           string              `bson:"image_url,omitempty"`
	Location           string              `bson:"location"`
	BestBefore         time.Time           `bson:"best_before"`
	Status             string              `bson:"status"`
	PostedBy           primitive.ObjectID  `bson:"posted_by"`
	RequestedBy        *primitive.ObjectID `bson:"requested_by,omitempty"`
	AssignedVolunteer  *primitive.ObjectID `bson:"assigned_volunteer,omitempty"`
	PickupDate         *time.Time          `bson:"pickup_date,omitempty"`
	DeliveryDate       *time.Time          `bson:"delivery_date,omitempty"`
	DonorCannotDeliver bool                `bson:"donor_cannot_deliver"`
	CreatedAt          time.Time           `bson:"created_at"`
	UpdatedAt          time.Time           `bson:"updated_at"`
}

func (d postDoc) toDomain() *domain.FoodPost {
	post := &domain.FoodPost{
		ID:                 d.ID.Hex(),
		Title:              d.Title,
		Description:        d.Description,
		Quantity:           d.Quantity,
		ImageURL:           d.ImageURL,
		Location:           d.Location,
		BestBefore:         d.BestBefore,
		Status:             domain.PostStatus(d.Status),
		PostedBy:           d.PostedBy.Hex(),
		PickupDate:         d.PickupDate,
		DeliveryDate:       d.DeliveryDate,
		DonorCannotDeliver: d.DonorCannotDeliver,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
	if d.RequestedBy != nil {
		post.RequestedBy = d.RequestedBy.Hex()
	}
	if d.AssignedVolunteer != nil {
		post.AssignedVolunteer = d.AssignedVolunteer.Hex()
	}
	return post
}

func (r *PostRepository) Create(ctx context.Context, post *domain.FoodPost) (*domain.FoodPost, error) {
	donorID, err := primitive.ObjectIDFromHex(post.PostedBy)
	if err != nil {
		return nil, fmt.Errorf("invalid donor id: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := postDoc{
		Title:              post.Title,
		Description:        post.Description,
		Quantity:           post.Quantity,
		ImageURL:           post.ImageURL,
		Location:           post.Location,
		BestBefore:         post.BestBefore,
		Status:             string(post.Status),
		PostedBy:           donorID,
		DonorCannotDeliver: post.DonorCannotDeliver,
		CreatedAt:          post.CreatedAt,
		UpdatedAt:          post.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert food post: %w", err)
	}

	created := *post
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.FoodPost, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc postDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find food post: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) List(ctx context.Context, filter ports.PostFilter) ([]*domain.FoodPost, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.PostedBy != "" {
		oid, err := primitive.ObjectIDFromHex(filter.PostedBy)
		if err != nil {
			return nil, domain.ErrPostNotFound
		}
		query["posted_by"] = oid
	}
	if filter.RequestedBy != "" {
		oid, err := primitive.ObjectIDFromHex(filter.RequestedBy)
		if err != nil {
			return nil, domain.ErrPostNotFound
		}
		query["requested_by"] = oid
	}
	if filter.AssignedVolunteer != "" {
		oid, err := primitive.ObjectIDFromHex(filter.AssignedVolunteer)
		if err != nil {
			return nil, domain.ErrPostNotFound
		}
		query["assigned_volunteer"] = oid
	}

	opts := options.Find()
	if filter.SortByCreatedDesc {
		opts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list food posts: %w", err)
	}
	defer cur.Close(ctx)

	var posts []*domain.FoodPost
	for cur.Next(ctx) {
		var doc postDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode food post: %w", err)
		}
		posts = append(posts, doc.toDomain())
	}
	return posts, cur.Err()
}

// Transition applies a compare-and-set status update: the filter requires the
// stored status to still equal `from`. When no document matches, a follow-up
// lookup distinguishes "post gone" from "post moved on".
func (r *PostRepository) Transition(ctx context.Context, id string, from, to domain.PostStatus, fields ports.TransitionFields) (*domain.FoodPost, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	set := bson.M{
		"status":     string(to),
		"updated_at": time.Now().UTC(),
	}
	if fields.RequestedBy != "" {
		rid, err := primitive.ObjectIDFromHex(fields.RequestedBy)
		if err != nil {
			return nil, fmt.Errorf("invalid receiver id: %w", err)
		}
		set["requested_by"] = rid
	}
	if fields.AssignedVolunteer != "" {
		vid, err := primitive.ObjectIDFromHex(fields.AssignedVolunteer)
		if err != nil {
			return nil, fmt.Errorf("invalid volunteer id: %w", err)
		}
		set["assigned_volunteer"] = vid
	}
	if fields.PickupDate != nil {
		set["pickup_date"] = fields.PickupDate.UTC()
	}
	if fields.DeliveryDate != nil {
		set["delivery_date"] = fields.DeliveryDate.UTC()
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc postDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "status": string(from)},
		bson.M{"$set": set},
		opts,
	).Decode(&doc)
	if err == nil {
		return doc.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("transition food post: %w", err)
	}

	// No match: either the post does not exist or its status changed.
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("transition food post: %w", err)
	}
	return nil, domain.ErrPostStatusConflict
}

func (r *PostRepository) AssignVolunteer(ctx context.Context, postID, volunteerID string) (*domain.FoodPost, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}
	vid, err := primitive.ObjectIDFromHex(volunteerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc postDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"assigned_volunteer": vid, "updated_at": time.Now().UTC()}},
		opts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("assign volunteer: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete food post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) CountByVolunteerAndStatuses(ctx context.Context, volunteerID string, statuses []domain.PostStatus) (int64, error) {
	vid, err := primitive.ObjectIDFromHex(volunteerID)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}

	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{
		"assigned_volunteer": vid,
		"status":             bson.M{"$in": values},
	})
	if err != nil {
		return 0, fmt.Errorf("count food posts: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the query indexes for the food_posts collection.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "posted_by", Value: 1}}},
		{Keys: bson.D{{Key: "requested_by", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_volunteer", Value: 1}, {Key: "status", Value: 1}}},
	})
	return err
}
