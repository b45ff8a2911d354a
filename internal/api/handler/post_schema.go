package handler

import (
	"time"

	"github.com/foodshare/foodshare-api/internal/core/ports"
)

// errorResponse is the standard envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// createPostRequest binds the multipart form for post creation. The image
// file is read separately from the multipart payload.
type createPostRequest struct {
	Title              string `form:"title"                validate:"required"`
	Description        string `form:"description"          validate:"required"`
	Quantity           string `form:"quantity"             validate:"required"`
	Location           string `form:"location"             validate:"required"`
	BestBefore         string `form:"best_before"          validate:"required"`
	DonorCannotDeliver string `form:"donor_cannot_deliver"`
}

type assignVolunteerRequest struct {
	PostID      string `json:"post_id"      validate:"required"`
	VolunteerID string `json:"volunteer_id" validate:"required"`
}

// Response-only types owned by the transport layer. Read-side projections
// (ports.PostView, ports.DeletedPost, ports.VolunteerStats) already are
// display contracts and serialize as produced.

// postResponse is the raw post record, ids only.
type postResponse struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Quantity           string     `json:"quantity"`
	ImageURL           string     `json:"image_url,omitempty"`
	Location           string     `json:"location"`
	BestBefore         time.Time  `json:"best_before"`
	Status             string     `json:"status"`
	PostedBy           string     `json:"posted_by"`
	RequestedBy        string     `json:"requested_by,omitempty"`
	AssignedVolunteer  string     `json:"assigned_volunteer,omitempty"`
	PickupDate         *time.Time `json:"pickup_date,omitempty"`
	DeliveryDate       *time.Time `json:"delivery_date,omitempty"`
	DonorCannotDeliver bool       `json:"donor_cannot_deliver"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type postEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Post    postResponse `json:"post"`
}

// postListResponse carries expanded views (counterpart identities embedded).
type postListResponse struct {
	Success bool             `json:"success"`
	Posts   []ports.PostView `json:"posts"`
}

type deletePostResponse struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message"`
	DeletedPost ports.DeletedPost `json:"deleted_post"`
}

type volunteerStatsResponse struct {
	Success bool                 `json:"success"`
	Stats   ports.VolunteerStats `json:"stats"`
}
