package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile returns the authenticated user's profile
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, ok := c.Locals("currentUser").(*models.User)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// GetUserPosts returns one author's posts, newest first
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	limit, offset := parsePagination(c)

	posts, err := s.postService.GetUserPosts(c.Context(), id, limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}
