// Package service contains interfaces for service business-logic.
package service

import (
	"context"
	"errors"

	"github.com/communiverse/communiverse/internal/entities"
)

// ErrNotFound is returned when a referenced entity id does not exist. The
// wrapping message carries the entity kind and id.
var ErrNotFound = errors.New("not found")

// ErrInvalidOperation is returned when a call violates an invariant:
// self-follow, duplicate like, a reply pointing at a foreign post.
var ErrInvalidOperation = errors.New("invalid operation")

// ErrConflict is returned when concurrent modification keeps failing the
// read-modify-write unit after retries.
var ErrConflict = errors.New("conflict")

// CreateUserParams ...
type CreateUserParams struct {
	UserName       string
	Email          string
	Password       string
	ProfilePicture string
}

// CreatePostParams ...
type CreatePostParams struct {
	Owner   string
	Title   string
	Content string
	Image   string
}

// CreateCommentParams describes a new comment. ParentID nil means a root
// comment attached directly to the post.
type CreateCommentParams struct {
	PostID   string
	Owner    string
	ParentID *string
	Content  string
}

// UserService owns the user lifecycle and the follow edge set.
//
// Follow direction contract: Follow(userID, targetID) records that userID
// follows targetID. ListFollowers(u) returns the users following u,
// ListFollowing(u) returns the users u follows.
type UserService interface {
	Create(ctx context.Context, p CreateUserParams) (*entities.User, error)
	Get(ctx context.Context, id string) (*entities.User, error)
	List(ctx context.Context) ([]*entities.User, error)
	Update(ctx context.Context, id string, patch entities.UserPatch) (*entities.User, error)
	Delete(ctx context.Context, id string) error

	Follow(ctx context.Context, userID, targetID string) error
	Unfollow(ctx context.Context, userID, targetID string) error
	ListFollowers(ctx context.Context, userID string) ([]*entities.User, error)
	ListFollowing(ctx context.Context, userID string) ([]*entities.User, error)
}

// PostService owns the post lifecycle. Delete does not cascade, the caller
// detaches or deletes dependents first.
type PostService interface {
	Create(ctx context.Context, p CreatePostParams) (*entities.Post, error)
	Get(ctx context.Context, id string) (*entities.Post, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.Post, error)
	Update(ctx context.Context, id string, patch entities.PostPatch) (*entities.Post, error)
	Delete(ctx context.Context, id string) error
}

// CommentService owns the comment lifecycle including the soft-delete state
// machine: deleting a comment with replies tombstones it instead of removing
// it, so the reply tree keeps its shape.
type CommentService interface {
	Create(ctx context.Context, p CreateCommentParams) (*entities.Comment, error)
	Get(ctx context.Context, id string) (*entities.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]*entities.Comment, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.Comment, error)
	ListReplies(ctx context.Context, parentID string) ([]*entities.Comment, error)

	// Update merges patch into an active comment. Updating a tombstoned
	// comment is a no-op success returning the unchanged record.
	Update(ctx context.Context, id string, patch entities.CommentPatch) (*entities.Comment, error)
	Delete(ctx context.Context, id string) error
}

// LikeService owns likes on posts and comments. At most one like per
// (user, target) pair; unliking an absent like is a no-op success.
type LikeService interface {
	LikePost(ctx context.Context, userID, postID string) (*entities.Like, error)
	LikeComment(ctx context.Context, userID, commentID string) (*entities.Like, error)
	UnlikePost(ctx context.Context, userID, postID string) error
	UnlikeComment(ctx context.Context, userID, commentID string) error

	ListByPost(ctx context.Context, postID string) ([]*entities.Like, error)
	ListByComment(ctx context.Context, commentID string) ([]*entities.Like, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.Like, error)
}
