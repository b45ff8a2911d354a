package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodshare/foodshare-api/internal/api/metrics"
	"github.com/foodshare/foodshare-api/internal/core/domain"
	"github.com/foodshare/foodshare-api/internal/core/ports"
)

// ListingCache abstracts the read-side cache for the public available-posts
// listing (Redis). All operations are best effort: a cache failure never
// fails the request.
type ListingCache interface {
	Get(ctx context.Context) ([]ports.PostView, bool, error)
	Set(ctx context.Context, views []ports.PostView) error
	Invalidate(ctx context.Context) error
}

type PostService struct {
	posts ports.PostRepository
	users ports.UserRepository
	cache ListingCache
	log   zerolog.Logger
}

func NewPostService(posts ports.PostRepository, users ports.UserRepository, cache ListingCache, log zerolog.Logger) *PostService {
	return &PostService{posts: posts, users: users, cache: cache, log: log}
}

func (s *PostService) CreatePost(ctx context.Context, input ports.CreatePostInput) (*domain.FoodPost, error) {
	now := time.Now().UTC()
	post := &domain.FoodPost{
		Title:              input.Title,
		Description:        input.Description,
		Quantity:           input.Quantity,
		ImageURL:           input.ImageURL,
		Location:           input.Location,
		BestBefore:         input.BestBefore,
		Status:             domain.StatusAvailable,
		PostedBy:           input.PostedBy,
		DonorCannotDeliver: input.DonorCannotDeliver,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create food post")
		return nil, err
	}

	s.invalidateListing(ctx)
	metrics.PostsCreatedTotal.Inc()
	s.log.Info().Str("post_id", created.ID).Str("donor_id", input.PostedBy).Msg("food post created")
	return created, nil
}

func (s *PostService) ListAvailable(ctx context.Context) ([]ports.PostView, error) {
	if views, ok, err := s.cache.Get(ctx); err != nil {
		s.log.Warn().Err(err).Msg("listing cache read failed, querying store")
	} else if ok {
		metrics.ListingCacheTotal.WithLabelValues("hit").Inc()
		return views, nil
	} else {
		metrics.ListingCacheTotal.WithLabelValues("miss").Inc()
	}

	posts, err := s.posts.List(ctx, ports.PostFilter{Status: domain.StatusAvailable})
	if err != nil {
		return nil, err
	}
	views, err := s.project(ctx, posts)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, views); err != nil {
		s.log.Warn().Err(err).Msg("listing cache write failed")
	}
	return views, nil
}

func (s *PostService) ListMine(ctx context.Context, actor *domain.User) ([]ports.PostView, error) {
	filter := ports.PostFilter{SortByCreatedDesc: true}
	switch actor.Role {
	case domain.RoleDonor:
		filter.PostedBy = actor.ID
	case domain.RoleReceiver:
		filter.RequestedBy = actor.ID
	case domain.RoleVolunteer:
		filter.AssignedVolunteer = actor.ID
	default:
		return nil, domain.ErrForbidden
	}

	posts, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, posts)
}

func (s *PostService) ListAll(ctx context.Context) ([]ports.PostView, error) {
	posts, err := s.posts.List(ctx, ports.PostFilter{SortByCreatedDesc: true})
	if err != nil {
		return nil, err
	}
	return s.project(ctx, posts)
}

// Request claims an available post for a receiver. When the donor cannot
// deliver, a volunteer is auto-assigned by location match; no match is not an
// error. The status change itself is a conditional write, so a concurrent
// double-request loses with ErrPostStatusConflict.
func (s *PostService) Request(ctx context.Context, postID, receiverID string) (*domain.FoodPost, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	fields := ports.TransitionFields{RequestedBy: receiverID}
	if post.DonorCannotDeliver {
		volunteer, err := s.users.FindVolunteerByLocation(ctx, post.Location)
		switch {
		case err == nil:
			fields.AssignedVolunteer = volunteer.ID
			metrics.AutoAssignTotal.WithLabelValues("matched").Inc()
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.AutoAssignTotal.WithLabelValues("unmatched").Inc()
			s.log.Debug().Str("post_id", postID).Str("location", post.Location).Msg("no volunteer matched for auto-assignment")
		default:
			return nil, err
		}
	}

	updated, err := s.posts.Transition(ctx, postID, domain.StatusAvailable, domain.StatusRequested, fields)
	if err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	metrics.TransitionsTotal.WithLabelValues(string(domain.StatusRequested)).Inc()
	s.log.Info().Str("post_id", postID).Str("receiver_id", receiverID).Msg("food post requested")
	return updated, nil
}

// MarkPicked records the acting volunteer as the assignee, overwriting any
// prior auto-assignment.
func (s *PostService) MarkPicked(ctx context.Context, postID, volunteerID string) (*domain.FoodPost, error) {
	now := time.Now().UTC()
	updated, err := s.posts.Transition(ctx, postID, domain.StatusRequested, domain.StatusPicked, ports.TransitionFields{
		AssignedVolunteer: volunteerID,
		PickupDate:        &now,
	})
	if err != nil {
		return nil, err
	}

	metrics.TransitionsTotal.WithLabelValues(string(domain.StatusPicked)).Inc()
	s.log.Info().Str("post_id", postID).Str("volunteer_id", volunteerID).Msg("food post picked up")
	return updated, nil
}

func (s *PostService) MarkDelivered(ctx context.Context, postID string) (*domain.FoodPost, error) {
	now := time.Now().UTC()
	updated, err := s.posts.Transition(ctx, postID, domain.StatusPicked, domain.StatusDelivered, ports.TransitionFields{
		DeliveryDate: &now,
	})
	if err != nil {
		return nil, err
	}

	metrics.TransitionsTotal.WithLabelValues(string(domain.StatusDelivered)).Inc()
	s.log.Info().Str("post_id", postID).Msg("food post delivered")
	return updated, nil
}

func (s *PostService) AssignVolunteer(ctx context.Context, postID, volunteerID string) (*domain.FoodPost, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	volunteer, err := s.users.FindByID(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	if volunteer.Role != domain.RoleVolunteer {
		return nil, domain.ErrNotAVolunteer
	}

	updated, err := s.posts.AssignVolunteer(ctx, postID, volunteerID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("post_id", postID).Str("volunteer_id", volunteerID).Msg("volunteer assigned")
	return updated, nil
}

func (s *PostService) Delete(ctx context.Context, postID string) (*ports.DeletedPost, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	s.log.Info().Str("post_id", postID).Str("status", string(post.Status)).Msg("food post deleted")
	return &ports.DeletedPost{ID: post.ID, Title: post.Title, Status: string(post.Status)}, nil
}

func (s *PostService) Stats(ctx context.Context, volunteerID string) (*ports.VolunteerStats, error) {
	picked, err := s.posts.CountByVolunteerAndStatuses(ctx, volunteerID, []domain.PostStatus{domain.StatusPicked, domain.StatusDelivered})
	if err != nil {
		return nil, err
	}
	delivered, err := s.posts.CountByVolunteerAndStatuses(ctx, volunteerID, []domain.PostStatus{domain.StatusDelivered})
	if err != nil {
		return nil, err
	}
	return &ports.VolunteerStats{PickedCount: picked, DeliveredCount: delivered}, nil
}

// project builds the expanded display views for a page of posts. Referenced
// users are fetched in a single batched lookup; a dangling reference leaves
// the corresponding field nil rather than failing the listing.
func (s *PostService) project(ctx context.Context, posts []*domain.FoodPost) ([]ports.PostView, error) {
	idSet := make(map[string]struct{})
	for _, p := range posts {
		for _, id := range []string{p.PostedBy, p.RequestedBy, p.AssignedVolunteer} {
			if id != "" {
				idSet[id] = struct{}{}
			}
		}
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	var usersByID map[string]*domain.User
	if len(ids) > 0 {
		var err error
		usersByID, err = s.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	ref := func(id string) *ports.UserRef {
		u, ok := usersByID[id]
		if !ok {
			return nil
		}
		return &ports.UserRef{ID: u.ID, Name: u.Name, Location: u.Location, Phone: u.Phone}
	}

	views := make([]ports.PostView, len(posts))
	for i, p := range posts {
		views[i] = ports.PostView{
			ID:                 p.ID,
			Title:              p.Title,
			Description:        p.Description,
			Quantity:           p.Quantity,
			ImageURL:           p.ImageURL,
			Location:           p.Location,
			BestBefore:         p.BestBefore,
			Status:             string(p.Status),
			PickupDate:         p.PickupDate,
			DeliveryDate:       p.DeliveryDate,
			DonorCannotDeliver: p.DonorCannotDeliver,
			CreatedAt:          p.CreatedAt,
			UpdatedAt:          p.UpdatedAt,
		}
		if p.PostedBy != "" {
			views[i].PostedBy = ref(p.PostedBy)
		}
		if p.RequestedBy != "" {
			views[i].RequestedBy = ref(p.RequestedBy)
		}
		if p.AssignedVolunteer != "" {
			views[i].AssignedVolunteer = ref(p.AssignedVolunteer)
		}
	}
	return views, nil
}

// invalidateListing drops the cached available-posts view. Only create,
// request, and delete change the available set.
func (s *PostService) invalidateListing(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("listing cache invalidation failed")
	}
}
