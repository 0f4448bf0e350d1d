package server

import (
	"yatube/internal/feed"
	"yatube/internal/models"
	"yatube/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// FollowIndex handles GET /follow/ — posts authored by anyone the
// current user follows, newest first.
func (s *Server) FollowIndex(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	count, err := s.postRepo.CountFollowing(ctx, userID)
	if err != nil {
		return err
	}
	page := feed.Paginate(c.Query("page"), count, feed.PerPage)
	posts, err := s.postRepo.ListFollowing(ctx, userID, page.PerPage, page.Offset())
	if err != nil {
		return err
	}

	return c.Render("follow", fiber.Map{
		"User":  currentUsername(c),
		"Posts": posts,
		"Page":  page,
	})
}

// ProfileFollow handles GET /<username>/follow/ — an idempotent
// get-or-create of the follow pair, then a redirect to the profile.
func (s *Server) ProfileFollow(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	username := c.Params("username")

	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if author == nil {
		return models.NewNotFoundError("User", username)
	}

	_, created, err := s.followRepo.GetOrCreate(ctx, userID, author.ID)
	if err != nil {
		return err
	}
	if created {
		observability.FollowsCreated.Inc()
	}

	return c.Redirect("/"+username+"/", fiber.StatusFound)
}

// ProfileUnfollow handles GET /<username>/unfollow/ — removes the
// follow row. The relationship is assumed to exist; a missing row
// surfaces as a server error.
func (s *Server) ProfileUnfollow(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	username := c.Params("username")

	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if author == nil {
		return models.NewNotFoundError("User", username)
	}

	if err := s.followRepo.Delete(ctx, userID, author.ID); err != nil {
		return err
	}

	return c.Redirect("/"+username+"/", fiber.StatusFound)
}
