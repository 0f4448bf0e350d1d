package server

import (
	"fmt"

	"yatube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// HelloGet handles GET /api/hello/
func (s *Server) HelloGet(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Привет, мир!"})
}

// HelloPost handles POST /api/hello/ — greets the submitted name.
func (s *Server) HelloPost(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	name := req.Name
	if name == "" {
		name = "мир"
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("Привет, %s!", name)})
}

// APIListPosts handles GET /api/v1/posts/ — every post as JSON, newest
// first.
func (s *Server) APIListPosts(c *fiber.Ctx) error {
	posts, err := s.postRepo.List(c.Context(), -1, 0)
	if err != nil {
		return err
	}
	return c.JSON(posts)
}

// APIGetPost handles GET /api/v1/posts/:id
func (s *Server) APIGetPost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return models.NewNotFoundError("Post", c.Params("id"))
	}

	post, err := s.postRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		return err
	}
	return c.JSON(post)
}
