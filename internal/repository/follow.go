package repository

import (
	"context"
	"errors"

	"yatube/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	Get(ctx context.Context, userID, authorID uint) (*models.Follow, error)
	GetOrCreate(ctx context.Context, userID, authorID uint) (*models.Follow, bool, error)
	Delete(ctx context.Context, userID, authorID uint) error
	CountFollowers(ctx context.Context, authorID uint) (int64, error)
	CountFollowing(ctx context.Context, userID uint) (int64, error)
}

// followRepository implements FollowRepository
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Get returns (nil, nil) when no follow relationship exists.
func (r *followRepository) Get(ctx context.Context, userID, authorID uint) (*models.Follow, error) {
	var follow models.Follow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		First(&follow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &follow, nil
}

// GetOrCreate makes the follow action idempotent: following an already
// followed author returns the existing row. The bool reports whether a
// new row was created.
func (r *followRepository) GetOrCreate(ctx context.Context, userID, authorID uint) (*models.Follow, bool, error) {
	existing, err := r.Get(ctx, userID, authorID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	follow := &models.Follow{UserID: userID, AuthorID: authorID}
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		return nil, false, models.NewInternalError(err)
	}
	return follow, true, nil
}

// Delete removes the follow row for (userID, authorID). A missing row
// is an internal error: the unfollow action assumes the relationship
// exists.
func (r *followRepository) Delete(ctx context.Context, userID, authorID uint) error {
	var follow models.Follow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		First(&follow).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Delete(&follow).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) CountFollowers(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
