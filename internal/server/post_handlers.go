package server

import (
	"log/slog"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Image    string `json:"image"`
	Category string `json:"category"`
}

// updatePostRequest distinguishes absent fields from empty ones; only fields
// present in the body are overwritten.
type updatePostRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Image    *string `json:"image"`
	Category *string `json:"category"`
}

type commentRequest struct {
	Comment string `json:"comment"`
}

// CreatePost handles creating a new post authored by the caller
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID: currentUserID(c),
		Title:    req.Title,
		Content:  req.Content,
		Image:    req.Image,
		Category: req.Category,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "post created",
		slog.Uint64("post_id", uint64(post.ID)))

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts returns all posts, newest first
func (s *Server) GetPosts(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	posts, err := s.postService.ListPosts(c.Context(), limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

// GetPost returns a single post with author, likes and comments
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

// GetPostComments returns a post's comments in insertion order
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	comments, err := s.postService.GetPostComments(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(comments)
}

// SearchPosts returns posts whose title or content matches the query
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	posts, err := s.postService.SearchPosts(c.Context(), c.Query("q"), limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

// UpdatePost overwrites the fields present in the body on an existing post
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	var req updatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		PostID:   id,
		Title:    req.Title,
		Content:  req.Content,
		Image:    req.Image,
		Category: req.Category,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

// DeletePost removes a post; deleting an already-deleted post succeeds
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "post deleted",
		slog.Uint64("post_id", uint64(id)))

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}

// LikePost toggles the caller's like on a post and reports the new count
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	result, err := s.postService.ToggleLike(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	message := "Post unliked"
	if result.Liked {
		message = "Post liked"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": message,
		"likes":   result.Likes,
	})
}

// CommentPost appends a comment to a post
func (s *Server) CommentPost(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.postService.AddComment(c.Context(), currentUserID(c), id, req.Comment); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Comment added",
	})
}
