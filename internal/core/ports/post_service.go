package ports

import (
	"context"
	"time"

	"github.com/foodshare/foodshare-api/internal/core/domain"
)

// CreatePostInput carries the data needed to create a food post. ImageURL is
// set by the transport layer after the upload is stored.
type CreatePostInput struct {
	Title              string
	Description        string
	Quantity           string
	ImageURL           string
	Location           string
	BestBefore         time.Time
	DonorCannotDeliver bool
	PostedBy           string
}

// UserRef is the display projection of a referenced user embedded in views.
type UserRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
}

// PostView is the read-side projection of a food post with counterpart
// identities expanded. The stored record keeps ids only; this view is built
// per query and never written back.
type PostView struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Quantity           string     `json:"quantity"`
	ImageURL           string     `json:"image_url,omitempty"`
	Location           string     `json:"location"`
	BestBefore         time.Time  `json:"best_before"`
	Status             string     `json:"status"`
	PostedBy           *UserRef   `json:"posted_by,omitempty"`
	RequestedBy        *UserRef   `json:"requested_by,omitempty"`
	AssignedVolunteer  *UserRef   `json:"assigned_volunteer,omitempty"`
	PickupDate         *time.Time `json:"pickup_date,omitempty"`
	DeliveryDate       *time.Time `json:"delivery_date,omitempty"`
	DonorCannotDeliver bool       `json:"donor_cannot_deliver"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// DeletedPost echoes the identifying fields of a removed post.
type DeletedPost struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// VolunteerStats are the dashboard counters for a volunteer.
type VolunteerStats struct {
	PickedCount    int64 `json:"picked_count"`
	DeliveredCount int64 `json:"delivered_count"`
}

// PostService defines the food post lifecycle use cases. Role gating happens
// at the transport layer; ListMine additionally branches on the actor's role.
type PostService interface {
	CreatePost(ctx context.Context, input CreatePostInput) (*domain.FoodPost, error)

	// ListAvailable returns every post with status=available, expanded.
	ListAvailable(ctx context.Context) ([]PostView, error)

	// ListMine branches by role: donors see posts they created, receivers
	// posts they requested, volunteers posts assigned to them. Any other role
	// gets domain.ErrForbidden.
	ListMine(ctx context.Context, actor *domain.User) ([]PostView, error)

	// ListAll returns every post regardless of status, expanded.
	ListAll(ctx context.Context) ([]PostView, error)

	// Request claims an available post for the receiver, auto-assigning a
	// volunteer by location when the donor cannot deliver.
	Request(ctx context.Context, postID, receiverID string) (*domain.FoodPost, error)

	// MarkPicked moves a requested post to picked and records the volunteer.
	MarkPicked(ctx context.Context, postID, volunteerID string) (*domain.FoodPost, error)

	// MarkDelivered moves a picked post to delivered.
	MarkDelivered(ctx context.Context, postID string) (*domain.FoodPost, error)

	// AssignVolunteer sets the assigned volunteer without changing status.
	// The target must exist and hold the volunteer role.
	AssignVolunteer(ctx context.Context, postID, volunteerID string) (*domain.FoodPost, error)

	// Delete removes a post permanently from any status.
	Delete(ctx context.Context, postID string) (*DeletedPost, error)

	// Stats returns the picked/delivered counters for a volunteer.
	Stats(ctx context.Context, volunteerID string) (*VolunteerStats, error)
}
