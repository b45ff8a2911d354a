package handler

import (
	"github.com/foodshare/foodshare-api/internal/core/domain"
)

func toPostResponse(p *domain.FoodPost) postResponse {
	return postResponse{
		ID:                 p.ID,
		Title:              p.Title,
		Description:        p.Description,
		Quantity:           p.Quantity,
		ImageURL:           p.ImageURL,
		Location:           p.Location,
		BestBefore:         p.BestBefore.UTC(),
		Status:             string(p.Status),
		PostedBy:           p.PostedBy,
		RequestedBy:        p.RequestedBy,
		AssignedVolunteer:  p.AssignedVolunteer,
		PickupDate:         p.PickupDate,
		DeliveryDate:       p.DeliveryDate,
		DonorCannotDeliver: p.DonorCannotDeliver,
		CreatedAt:          p.CreatedAt.UTC(),
		UpdatedAt:          p.UpdatedAt.UTC(),
	}
}
