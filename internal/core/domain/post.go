package domain

import (
	"errors"
	"time"
)

// PostStatus represents the lifecycle state of a food post.
type PostStatus string

const (
	StatusAvailable PostStatus = "available"
	StatusRequested PostStatus = "requested"
	StatusPicked    PostStatus = "picked"
	StatusDelivered PostStatus = "delivered"
)

// nextStatus defines the forward-only state machine. Each status has at most
// one successor; delivered is terminal.
var nextStatus = map[PostStatus]PostStatus{
	StatusAvailable: StatusRequested,
	StatusRequested: StatusPicked,
	StatusPicked:    StatusDelivered,
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("food post not found")
	ErrPostStatusConflict = errors.New("food post is not in the required status")
	ErrNotAVolunteer      = errors.New("user is not a volunteer")
	ErrForbidden          = errors.New("access forbidden")
)

// CanTransitionTo reports whether the single allowed forward step from s is next.
func (s PostStatus) CanTransitionTo(next PostStatus) bool {
	return nextStatus[s] == next
}

// ParsePostStatus validates a free-form status string against the enumeration.
func ParsePostStatus(v string) (PostStatus, bool) {
	switch PostStatus(v) {
	case StatusAvailable, StatusRequested, StatusPicked, StatusDelivered:
		return PostStatus(v), true
	}
	return "", false
}

// FoodPost is the core aggregate: one donation tracked through the lifecycle.
// Referenced users are stored as ids only; expanded display views are built by
// a read-side projection in the service layer.
type FoodPost struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Quantity           string     `json:"quantity"`
	ImageURL           string     `json:"image_url,omitempty"`
	Location           string     `json:"location"`
	BestBefore         time.Time  `json:"best_before"`
	Status             PostStatus `json:"status"`
	PostedBy           string     `json:"posted_by"`
	RequestedBy        string     `json:"requested_by,omitempty"`
	AssignedVolunteer  string     `json:"assigned_volunteer,omitempty"`
	PickupDate         *time.Time `json:"pickup_date,omitempty"`
	DeliveryDate       *time.Time `json:"delivery_date,omitempty"`
	DonorCannotDeliver bool       `json:"donor_cannot_deliver"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
