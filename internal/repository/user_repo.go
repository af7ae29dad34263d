package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/devmatch/devmatch/internal/db"
)

// publicColumns is the projection used whenever one member's record is shown
// to another. Email and password hash are never selected.
var publicColumns = []string{
	"id", "first_name", "last_name", "photo_url", "age", "gender", "about", "skills", "created_at",
}

// UserRepository provides data access methods for the User model.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository bound to the given DB connection.
func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

// Create inserts a new user. A uniqueness violation on the email index
// surfaces as gorm.ErrDuplicatedKey for the error mapper.
func (r *UserRepository) Create(ctx context.Context, u *db.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// FindByID returns the user or nil when no row exists.
func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*db.User, error) {
	var u db.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail returns the user or nil. Callers lowercase the email first;
// uniqueness is case-insensitive by that convention.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*db.User, error) {
	var u db.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Save persists the full user record (profile edits, password changes).
func (r *UserRepository) Save(ctx context.Context, u *db.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// Feed returns one page of candidate profiles for a viewer.
//
// Behavior:
//   - Excludes the viewer and every counterpart of any connection request
//     involving the viewer, in either direction and across all statuses. Once
//     a pair has a record, the counterpart never reappears in the feed.
//   - genderFilter restricts candidates case-insensitively; empty means none.
//   - Projects public-safe columns only.
//   - Ordered by id DESC, an identity-creation surrogate, so pagination is
//     deterministic across calls with no intervening writes.
//
// Example:
//
//	repo.Feed(ctx, 42, "female", 0, 10) // first page for user 42
func (r *UserRepository) Feed(
	ctx context.Context,
	viewerID uint64,
	genderFilter string,
	offset, limit int,
) ([]db.User, error) {
	var users []db.User

	query := r.db.WithContext(ctx).
		Model(&db.User{}).
		Select(publicColumns).
		Where("id <> ?", viewerID).
		Where("id NOT IN (SELECT to_user_id FROM connection_requests WHERE from_user_id = ?)", viewerID).
		Where("id NOT IN (SELECT from_user_id FROM connection_requests WHERE to_user_id = ?)", viewerID).
		Order("id DESC").
		Offset(offset).
		Limit(limit)

	if genderFilter != "" {
		query = query.Where("LOWER(gender) = LOWER(?)", genderFilter)
	}

	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
