package server

import (
	"yatube/internal/forms"
	"yatube/internal/models"
	"yatube/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /<username>/<post_id>/comment — creates a
// comment linked to the post and the current actor, then redirects back
// to the post view. An invalid submission is silently dropped: the
// redirect happens either way.
func (s *Server) AddComment(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	username := c.Params("username")

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewNotFoundError("User", username)
	}

	postID, err := c.ParamsInt("postID")
	if err != nil {
		return models.NewNotFoundError("Post", c.Params("postID"))
	}

	post, err := s.postRepo.GetByID(ctx, uint(postID))
	if err != nil {
		return err
	}

	form := forms.ParseCommentForm(c)
	if form.Validate() {
		comment := &models.Comment{
			Text:     form.Text,
			AuthorID: userID,
			PostID:   post.ID,
		}
		if err := s.commentRepo.Create(ctx, comment); err != nil {
			return err
		}
		observability.CommentsCreated.Inc()
	}

	return c.Redirect("/"+username+"/"+c.Params("postID")+"/", fiber.StatusFound)
}
