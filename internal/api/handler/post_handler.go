package handler

import (
	"mime/multipart"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/foodshare/foodshare-api/internal/core/ports"
)

// ImageStore abstracts where uploaded post images end up.
type ImageStore interface {
	Save(file *multipart.FileHeader) (string, error)
}

// PostHandler handles HTTP requests for the food post lifecycle.
type PostHandler struct {
	service ports.PostService
	images  ImageStore
}

func NewPostHandler(service ports.PostService, images ImageStore) *PostHandler {
	return &PostHandler{service: service, images: images}
}

// Create handles POST /api/foodposts. Donor only (gated by RBAC middleware).
//
// @Summary      Create a food post
// @Tags         foodposts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title                 formData  string  true   "Title"
// @Param        description           formData  string  true   "Description"
// @Param        quantity              formData  string  true   "Quantity (free text)"
// @Param        location              formData  string  true   "Pickup location"
// @Param        best_before           formData  string  true   "Best-before timestamp (RFC 3339)"
// @Param        donor_cannot_deliver  formData  string  false  "Set to true when the donor cannot deliver"
// @Param        image                 formData  file    false  "Optional image"
// @Success      201  {object}  postEnvelope
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/foodposts [post]
func (h *PostHandler) Create(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bestBefore, err := time.Parse(time.RFC3339, req.BestBefore)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "best_before must be an RFC 3339 timestamp")
	}

	imageURL := ""
	if file, err := c.FormFile("image"); err == nil && file != nil {
		imageURL, err = h.images.Save(file)
		if err != nil {
			return err
		}
	}

	post, err := h.service.CreatePost(c.Request().Context(), ports.CreatePostInput{
		Title:              req.Title,
		Description:        req.Description,
		Quantity:           req.Quantity,
		ImageURL:           imageURL,
		Location:           req.Location,
		BestBefore:         bestBefore,
		DonorCannotDeliver: req.DonorCannotDeliver == "true",
		PostedBy:           actor.ID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, postEnvelope{Success: true, Message: "food post created", Post: toPostResponse(post)})
}

// Available handles GET /api/foodposts/available. Public.
//
// @Summary      List available food posts
// @Tags         foodposts
// @Produce      json
// @Success      200  {object}  postListResponse
// @Router       /api/foodposts/available [get]
func (h *PostHandler) Available(c echo.Context) error {
	views, err := h.service.ListAvailable(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postListResponse{Success: true, Posts: views})
}

// Mine handles GET /api/foodposts/mine. Branches by the caller's role.
//
// @Summary      List the caller's posts
// @Tags         foodposts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  postListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/foodposts/mine [get]
func (h *PostHandler) Mine(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	views, err := h.service.ListMine(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postListResponse{Success: true, Posts: views})
}

// AdminAll handles GET /api/foodposts/admin/all. Admin only.
//
// @Summary      List every food post
// @Tags         foodposts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  postListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/foodposts/admin/all [get]
func (h *PostHandler) AdminAll(c echo.Context) error {
	views, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postListResponse{Success: true, Posts: views})
}

// Request handles PATCH /api/foodposts/:id/request. Receiver only.
//
// @Summary      Request an available food post
// @Tags         foodposts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Post id"
// @Success      200  {object}  postEnvelope
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/foodposts/{id}/request [patch]
func (h *PostHandler) Request(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	post, err := h.service.Request(c.Request().Context(), c.Param("id"), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postEnvelope{Success: true, Message: "food post requested", Post: toPostResponse(post)})
}

// Picked handles PATCH /api/foodposts/:id/picked. Volunteer only.
//
// @Summary      Mark a requested post as picked up
// @Tags         foodposts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Post id"
// @Success      200  {object}  postEnvelope
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/foodposts/{id}/picked [patch]
func (h *PostHandler) Picked(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	post, err := h.service.MarkPicked(c.Request().Context(), c.Param("id"), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postEnvelope{Success: true, Message: "food post marked as picked", Post: toPostResponse(post)})
}

// Delivered handles PATCH /api/foodposts/:id/delivered. Volunteer only.
//
// @Summary      Mark a picked post as delivered
// @Tags         foodposts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Post id"
// @Success      200  {object}  postEnvelope
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/foodposts/{id}/delivered [patch]
func (h *PostHandler) Delivered(c echo.Context) error {
	post, err := h.service.MarkDelivered(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postEnvelope{Success: true, Message: "food post marked as delivered", Post: toPostResponse(post)})
}

// Stats handles GET /api/foodposts/volunteer-stats. Volunteer only.
//
// @Summary      Volunteer dashboard counters
// @Tags         foodposts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  volunteerStatsResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/foodposts/volunteer-stats [get]
func (h *PostHandler) Stats(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, volunteerStatsResponse{Success: true, Stats: *stats})
}

// Assign handles POST /api/foodposts/assign. Admin only.
//
// @Summary      Assign a volunteer to a post
// @Tags         foodposts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  assignVolunteerRequest  true  "Assignment"
// @Success      200  {object}  postEnvelope
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/foodposts/assign [post]
func (h *PostHandler) Assign(c echo.Context) error {
	var req assignVolunteerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.service.AssignVolunteer(c.Request().Context(), req.PostID, req.VolunteerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postEnvelope{Success: true, Message: "volunteer assigned", Post: toPostResponse(post)})
}

// Delete handles DELETE /api/foodposts/:id. Admin only; no status restriction.
//
// @Summary      Delete a food post
// @Tags         foodposts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Post id"
// @Success      200  {object}  deletePostResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/foodposts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	deleted, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deletePostResponse{Success: true, Message: "food post deleted", DeletedPost: *deleted})
}
