package ports

import (
	"context"
	"time"

	"github.com/foodshare/foodshare-api/internal/core/domain"
)

// PostFilter carries the query parameters for listing food posts. Zero values
// mean "no filter" for the corresponding field.
type PostFilter struct {
	Status            domain.PostStatus
	PostedBy          string
	RequestedBy       string
	AssignedVolunteer string
	// SortByCreatedDesc orders results newest first when set.
	SortByCreatedDesc bool
}

// TransitionFields are the record fields written alongside a status change.
// Only non-zero fields are applied.
type TransitionFields struct {
	RequestedBy       string
	AssignedVolunteer string
	PickupDate        *time.Time
	DeliveryDate      *time.Time
}

// PostRepository defines persistence operations for food posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.FoodPost) (*domain.FoodPost, error)

	FindByID(ctx context.Context, id string) (*domain.FoodPost, error)

	List(ctx context.Context, filter PostFilter) ([]*domain.FoodPost, error)

	// Transition atomically moves the post from status `from` to `to`,
	// applying fields and bumping updated_at, only if the stored status still
	// equals `from`. Returns domain.ErrPostNotFound when the id does not
	// exist and domain.ErrPostStatusConflict when the post exists but is no
	// longer in the expected status.
	Transition(ctx context.Context, id string, from, to domain.PostStatus, fields TransitionFields) (*domain.FoodPost, error)

	// AssignVolunteer sets assigned_volunteer and updated_at without touching
	// status. Returns domain.ErrPostNotFound when the post does not exist.
	AssignVolunteer(ctx context.Context, postID, volunteerID string) (*domain.FoodPost, error)

	// Delete removes the post permanently, regardless of status.
	Delete(ctx context.Context, id string) error

	// CountByVolunteerAndStatuses counts posts assigned to the volunteer whose
	// status is one of the given set.
	CountByVolunteerAndStatuses(ctx context.Context, volunteerID string, statuses []domain.PostStatus) (int64, error)
}
