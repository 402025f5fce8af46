// Package entities contains main entities of service.
package entities

import (
	"time"
)

// CommentStatus is a state of a comment's soft-delete machine.
type CommentStatus string

const (
	// CommentStatusActive means the comment is visible and editable.
	CommentStatusActive CommentStatus = "active"
	// CommentStatusTombstoned means the comment was deleted but kept as a
	// placeholder because it has replies. Terminal state.
	CommentStatusTombstoned CommentStatus = "tombstoned"
)

// User ...
type User struct {
	ID             string
	UserName       string // immutable after creation
	Email          string
	Password       string // opaque credential, hashing is the caller's concern
	ProfilePicture string
	LastLogin      *time.Time
	CreatedAt      time.Time
	ModifiedAt     time.Time
}

// Post ...
type Post struct {
	ID         string
	Owner      string
	Title      string
	Content    string
	Image      string
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// Comment is a node of a post's reply tree. ParentID is nil for root
// comments. Replies and likes are derived views, never fields.
type Comment struct {
	ID         string
	PostID     string
	Owner      string
	ParentID   *string
	Status     CommentStatus
	Content    string
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// IsReply reports whether the comment is a reply to another comment.
func (c Comment) IsReply() bool {
	return c.ParentID != nil
}

// Like targets exactly one of a post or a comment.
type Like struct {
	ID        string
	Owner     string
	PostID    *string
	CommentID *string
	CreatedAt time.Time
}

// FollowEdge records that Follower follows Followee.
type FollowEdge struct {
	Follower  string
	Followee  string
	CreatedAt time.Time
}
