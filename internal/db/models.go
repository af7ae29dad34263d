package db

import (
	"time"
)

// Connection request statuses.
//
// StatusInterested is the single pending marker: the send path writes it and the
// received-requests path queries it. Keep it defined in exactly one place; a
// mismatch between the two literals silently hides every pending request.
const (
	StatusInterested = "interested"
	StatusIgnored    = "ignored"
	StatusAccepted   = "accepted"
	StatusRejected   = "rejected"
)

// IsSendStatus reports whether a sender may create a request with this status.
func IsSendStatus(s string) bool {
	return s == StatusInterested || s == StatusIgnored
}

// IsReviewStatus reports whether a recipient may transition a request to this status.
func IsReviewStatus(s string) bool {
	return s == StatusAccepted || s == StatusRejected
}

// User table. Email is unique case-insensitively: callers lowercase it before
// every write and lookup, so the plain unique index is enough.
type User struct {
	ID           uint64   `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName    string   `gorm:"size:50;not null" json:"firstName"`
	LastName     string   `gorm:"size:50;not null" json:"lastName"`
	Email        string   `gorm:"uniqueIndex;size:128;not null" json:"email"`
	PasswordHash string   `gorm:"size:255;not null" json:"-"`
	Age          *int     `json:"age,omitempty"`
	Gender       string   `gorm:"size:16" json:"gender,omitempty"`
	InterestedIn string   `gorm:"size:16;not null" json:"interestedIn"`
	About        string   `gorm:"size:512" json:"about"`
	PhotoURL     string   `gorm:"size:512" json:"photoUrl"`
	Skills       []string `gorm:"serializer:json;type:text" json:"skills"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// PublicUser is the client-safe projection of a User: what other members are
// allowed to see. Never carries email or password hash.
type PublicUser struct {
	ID        uint64   `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	PhotoURL  string   `json:"photoUrl"`
	Age       *int     `json:"age,omitempty"`
	Gender    string   `json:"gender,omitempty"`
	About     string   `json:"about"`
	Skills    []string `json:"skills"`
}

// Public returns the client-safe projection of u.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		PhotoURL:  u.PhotoURL,
		Age:       u.Age,
		Gender:    u.Gender,
		About:     u.About,
		Skills:    u.Skills,
	}
}

// ConnectionRequest represents the single relationship record between two users.
//
// Unique index: idx_request_pair(from_user_id, to_user_id)
//   - One row per ordered pair. Combined with the both-orderings pre-check in the
//     repository, at most one record ever exists for an unordered pair. The index
//     is also the concurrency safety net: of two racing sends only one insert
//     succeeds, the loser gets a uniqueness violation.
//
// Fields:
//   - FromUserID: the sender, fixed at creation.
//   - ToUserID: the recipient, the only user allowed to review.
//   - Status: interested/ignored at creation, accepted/rejected after review.
type ConnectionRequest struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	FromUserID uint64 `gorm:"not null;uniqueIndex:idx_request_pair,priority:1" json:"fromUserId"`
	ToUserID   uint64 `gorm:"not null;uniqueIndex:idx_request_pair,priority:2;index" json:"toUserId"`
	Status     string `gorm:"size:16;not null" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	FromUser *User `gorm:"foreignKey:FromUserID" json:"fromUser,omitempty"`
	ToUser   *User `gorm:"foreignKey:ToUserID" json:"toUser,omitempty"`
}

func (ConnectionRequest) TableName() string { return "connection_requests" }
