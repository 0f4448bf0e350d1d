package server

import (
	"yatube/internal/feed"
	"yatube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Profile handles GET /<username>/ — the author's page with counters
// and their posts ordered by descending id.
func (s *Server) Profile(c *fiber.Ctx) error {
	ctx := c.Context()
	username := c.Params("username")

	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if author == nil {
		return models.NewNotFoundError("User", username)
	}

	overall, err := s.postRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return err
	}

	followers, err := s.followRepo.CountFollowers(ctx, author.ID)
	if err != nil {
		return err
	}
	followingCount, err := s.followRepo.CountFollowing(ctx, author.ID)
	if err != nil {
		return err
	}

	// The viewer's relationship to the author: nil when anonymous or
	// not following.
	var following *models.Follow
	viewerID, viewerKnown := c.Locals("userID").(uint)
	if viewerKnown {
		following, err = s.followRepo.Get(ctx, viewerID, author.ID)
		if err != nil {
			return err
		}
	}

	page := feed.Paginate(c.Query("page"), overall, feed.PerPage)
	posts, err := s.postRepo.ListByAuthor(ctx, author.ID, page.PerPage, page.Offset())
	if err != nil {
		return err
	}

	return c.Render("profile", fiber.Map{
		"User":           currentUsername(c),
		"Author":         author,
		"IsAuthor":       viewerKnown && viewerID == author.ID,
		"Following":      following,
		"Overall":        overall,
		"Followers":      followers,
		"FollowingCount": followingCount,
		"Posts":          posts,
		"Page":           page,
	})
}
