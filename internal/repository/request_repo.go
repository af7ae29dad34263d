package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/devmatch/devmatch/internal/db"
)

// RequestRepository provides data access methods for the ConnectionRequest
// model. It encapsulates all queries on the pairwise relationship records.
type RequestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new repository bound to the given DB connection.
func NewRequestRepository(database *gorm.DB) *RequestRepository {
	return &RequestRepository{db: database}
}

// Create inserts a new relationship record.
//
// Behavior:
//   - The unique index on (from_user_id, to_user_id) rejects a second record
//     for the same ordered pair; of two concurrent sends only one insert wins
//     and the loser sees gorm.ErrDuplicatedKey. That constraint, not a lock,
//     is the concurrency-safety mechanism.
//
// Example:
//
//	repo.Create(ctx, &db.ConnectionRequest{FromUserID: 1, ToUserID: 2, Status: db.StatusInterested})
func (r *RequestRepository) Create(ctx context.Context, req *db.ConnectionRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// ExistsForPair reports whether any record exists between two users,
// regardless of direction or status. A pair only ever gets one record across
// its entire lifetime, even after rejection.
func (r *RequestRepository) ExistsForPair(ctx context.Context, a, b uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.ConnectionRequest{}).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
			a, b, b, a).
		Count(&count).Error
	return count > 0, err
}

// FindByID returns the record or nil when no row exists.
func (r *RequestRepository) FindByID(ctx context.Context, id uint64) (*db.ConnectionRequest, error) {
	var req db.ConnectionRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateStatus transitions a record's status (review path).
func (r *RequestRepository) UpdateStatus(ctx context.Context, id uint64, status string) error {
	return r.db.WithContext(ctx).
		Model(&db.ConnectionRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// PendingReceived returns all pending requests addressed to the recipient,
// sender profile preloaded with public columns only.
//
// Behavior:
//   - Filters on db.StatusInterested, the same constant the send path writes.
//   - Newest first.
//
// Example:
//
//	repo.PendingReceived(ctx, 42) // everyone waiting on user 42's review
func (r *RequestRepository) PendingReceived(ctx context.Context, recipientID uint64) ([]db.ConnectionRequest, error) {
	var reqs []db.ConnectionRequest
	err := r.db.WithContext(ctx).
		Preload("FromUser", func(tx *gorm.DB) *gorm.DB { return tx.Select(publicColumns) }).
		Where("to_user_id = ? AND status = ?", recipientID, db.StatusInterested).
		Order("id DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// CountPendingReceived returns how many pending requests await the recipient.
// Used together with the Redis counter cache (DB is the fallback).
func (r *RequestRepository) CountPendingReceived(ctx context.Context, recipientID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.ConnectionRequest{}).
		Where("to_user_id = ? AND status = ?", recipientID, db.StatusInterested).
		Count(&count).Error
	return count, err
}

// AcceptedForUser returns all accepted records with the user on either side,
// both parties preloaded with public columns only.
//
// Example:
//
//	repo.AcceptedForUser(ctx, 42) // user 42's connections
func (r *RequestRepository) AcceptedForUser(ctx context.Context, userID uint64) ([]db.ConnectionRequest, error) {
	var reqs []db.ConnectionRequest
	err := r.db.WithContext(ctx).
		Preload("FromUser", func(tx *gorm.DB) *gorm.DB { return tx.Select(publicColumns) }).
		Preload("ToUser", func(tx *gorm.DB) *gorm.DB { return tx.Select(publicColumns) }).
		Where("(from_user_id = ? OR to_user_id = ?) AND status = ?", userID, userID, db.StatusAccepted).
		Order("id DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}
