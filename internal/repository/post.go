package repository

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	GetByAuthorID(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
	CountLikes(ctx context.Context, postID uint) (int64, error)
	LikerIDs(ctx context.Context, postID uint) ([]uint, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidatePostsList(ctx)
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		if err := r.applyPostDetails(r.db.WithContext(ctx)).
			First(&post, id).Error; err != nil {
			return err
		}
		return r.loadLikers(ctx, &post)
	})
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// applyPaging constrains a list query. A non-positive limit leaves the
// result unbounded.
func applyPaging(db *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		db = db.Limit(limit)
	}
	if offset > 0 {
		db = db.Offset(offset)
	}
	return db
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := applyPaging(r.applyPostDetails(r.db.WithContext(ctx)).
		Order("posts.created_at DESC, posts.id DESC"), limit, offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if err := r.loadLikers(ctx, p); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

func (r *postRepository) GetByAuthorID(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := applyPaging(r.applyPostDetails(r.db.WithContext(ctx)).
		Where("posts.author_id = ?", authorID).
		Order("posts.created_at DESC, posts.id DESC"), limit, offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if err := r.loadLikers(ctx, p); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

func (r *postRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	like := "%" + query + "%"
	err := applyPaging(r.applyPostDetails(r.db.WithContext(ctx)).
		Where("LOWER(posts.title) LIKE LOWER(?) OR LOWER(posts.content) LIKE LOWER(?)", like, like).
		Order("posts.created_at DESC, posts.id DESC"), limit, offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if err := r.loadLikers(ctx, p); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// applyPostDetails adds the likes-count subquery and the author/comment
// preloads used by every post read.
func (r *postRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.
		Select("posts.*, (SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count").
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			// Insertion order; comments are never reordered.
			return db.Order("comments.created_at ASC, comments.id ASC")
		}).
		Preload("Comments.Author")
}

// loadLikers fills the in-memory set of user IDs that liked the post.
func (r *postRepository) loadLikers(ctx context.Context, post *models.Post) error {
	ids, err := r.LikerIDs(ctx, post.ID)
	if err != nil {
		return err
	}
	post.Likes = ids
	return nil
}

// Update persists only the author-editable columns. AuthorID, likes and
// comments are never written by update.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"title":    post.Title,
			"content":  post.Content,
			"image":    post.Image,
			"category": post.Category,
		}).Error
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

// Delete removes the post unconditionally; deleting a missing post is a no-op.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Like inserts the (user, post) row, doing nothing if it already exists.
// The ON CONFLICT clause makes concurrent toggles from distinct users safe
// without a read-modify-write of the post.
func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).
		Create(&models.Like{UserID: userID, PostID: postID}).Error
	if err == nil {
		cache.InvalidatePost(ctx, postID)
	}
	return err
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
	if err == nil {
		cache.InvalidatePost(ctx, postID)
	}
	return err
}

func (r *postRepository) CountLikes(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *postRepository) LikerIDs(ctx context.Context, postID uint) ([]uint, error) {
	ids := make([]uint, 0)
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}
