// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"gorm.io/gorm"
)

const (
	maxTitleLen    = 300
	maxContentLen  = 50000
	maxCategoryLen = 100
	maxCommentLen  = 5000
)

// PostService implements post CRUD plus the two social mutations,
// toggle-like and append-comment.
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

// CreatePostInput carries the author-editable fields for a new post.
// All four fields are optional strings.
type CreatePostInput struct {
	AuthorID uint
	Title    string
	Content  string
	Image    string
	Category string
}

// UpdatePostInput patches the author-editable fields of an existing post.
// Nil fields are left unchanged; a present-but-empty string does overwrite.
type UpdatePostInput struct {
	PostID   uint
	Title    *string
	Content  *string
	Image    *string
	Category *string
}

// LikeResult reports the state of a post's like set after a toggle.
type LikeResult struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

// NewPostService creates a new post service
func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// CreatePost inserts a new post authored by the authenticated identity,
// with empty likes and comments.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}
	if len(in.Category) > maxCategoryLen {
		return nil, models.NewValidationError("Category too long (max 100 characters)")
	}

	post := &models.Post{
		Title:    validation.SanitizeText(in.Title),
		Content:  validation.SanitizeContent(in.Content),
		Image:    strings.TrimSpace(in.Image),
		Category: validation.SanitizeText(in.Category),
		AuthorID: in.AuthorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.GetPost(ctx, post.ID)
}

// ListPosts returns posts newest-first with authors resolved. A non-positive
// limit returns every post. Only the full unpaginated read is served through
// the cache; limited or offset reads always hit the store so a truncated
// payload can never be replayed for a different window.
func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	var err error

	if limit <= 0 && offset == 0 {
		err = cache.Aside(ctx, cache.PostsListKey, &posts, cache.ListTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.postRepo.List(ctx, limit, offset)
			return fetchErr
		})
	} else {
		posts, err = s.postRepo.List(ctx, limit, offset)
	}

	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// GetPost returns one post with its author, likes and comments resolved.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// GetUserPosts returns one author's posts newest-first.
func (s *PostService) GetUserPosts(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	posts, err := s.postRepo.GetByAuthorID(ctx, authorID, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// SearchPosts returns posts whose title or content contains the query,
// newest-first. No ranking is applied.
func (s *PostService) SearchPosts(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	posts, err := s.postRepo.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// UpdatePost overwrites the provided fields on an existing post. The author,
// likes and comments are never touched; any authenticated caller may update
// any post (no ownership check, see DESIGN.md).
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.GetPost(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if len(*in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		post.Title = validation.SanitizeText(*in.Title)
	}
	if in.Content != nil {
		if len(*in.Content) > maxContentLen {
			return nil, models.NewValidationError("Content too long (max 50000 characters)")
		}
		post.Content = validation.SanitizeContent(*in.Content)
	}
	if in.Image != nil {
		post.Image = strings.TrimSpace(*in.Image)
	}
	if in.Category != nil {
		if len(*in.Category) > maxCategoryLen {
			return nil, models.NewValidationError("Category too long (max 100 characters)")
		}
		post.Category = validation.SanitizeText(*in.Category)
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.GetPost(ctx, in.PostID)
}

// DeletePost removes the post unconditionally. Deleting a post that does not
// exist succeeds (idempotent delete).
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ToggleLike adds the user to the post's like set if absent, removes them if
// present, and reports the resulting count. Calling it twice in sequence for
// the same user returns the set to its original state.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*LikeResult, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !exists {
		return nil, models.NewNotFoundError("Post", postID)
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if liked {
		err = s.postRepo.Unlike(ctx, userID, postID)
	} else {
		err = s.postRepo.Like(ctx, userID, postID)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	count, err := s.postRepo.CountLikes(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &LikeResult{Liked: !liked, Likes: count}, nil
}

// GetPostComments returns the post's comments in insertion order.
func (s *PostService) GetPostComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !exists {
		return nil, models.NewNotFoundError("Post", postID)
	}

	comments, err := s.commentRepo.ListByPostID(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// AddComment appends one comment to the post. Existing comments are never
// reordered or removed.
func (s *PostService) AddComment(ctx context.Context, userID, postID uint, text string) error {
	text = strings.TrimSpace(validation.SanitizeText(text))
	if text == "" {
		return models.NewValidationError("Comment text is required")
	}
	if len(text) > maxCommentLen {
		return models.NewValidationError("Comment too long (max 5000 characters)")
	}

	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !exists {
		return models.NewNotFoundError("Post", postID)
	}

	comment := &models.Comment{
		Text:     text,
		AuthorID: userID,
		PostID:   postID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
