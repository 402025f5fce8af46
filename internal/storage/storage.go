// Package storage contains a storage interface.
package storage

import (
	"context"
	"fmt"

	"github.com/communiverse/communiverse/internal/entities"
)

//go:generate mockgen -destination=./mock/storage.go -package=mock -source=storage.go

// ErrNotFound ...
var ErrNotFound = fmt.Errorf("not found")

// ErrUniqueViolation is returned when an insert breaks a unique index.
var ErrUniqueViolation = fmt.Errorf("unique violation")

// ErrForeignKeyViolation is returned when a write references a missing row
// or removes a row that other rows still depend on.
var ErrForeignKeyViolation = fmt.Errorf("foreign key violation")

// ErrConflict is returned when concurrent transactions collide, the caller
// may retry the whole unit.
var ErrConflict = fmt.Errorf("conflict")

// Storage provides methods for interacting with database.
//
// Relationship collections (a post's comments, a comment's replies, a user's
// likes) are served by the List* foreign-key lookups, they are never stored
// on the entities themselves.
type Storage interface {
	InTx(ctx context.Context, f func(s Storage) error) error

	CreateUser(ctx context.Context, u *entities.User) error
	GetUser(ctx context.Context, id string) (*entities.User, error)
	ListUsers(ctx context.Context) ([]*entities.User, error)
	UpdateUser(ctx context.Context, u *entities.User) error
	DeleteUser(ctx context.Context, id string) error

	Follow(ctx context.Context, follower, followee string) error
	Unfollow(ctx context.Context, follower, followee string) error
	ListFollowers(ctx context.Context, followee string) ([]*entities.User, error)
	ListFollowing(ctx context.Context, follower string) ([]*entities.User, error)

	CreatePost(ctx context.Context, p *entities.Post) error
	GetPost(ctx context.Context, id string) (*entities.Post, error)
	ListPostsByOwner(ctx context.Context, owner string) ([]*entities.Post, error)
	UpdatePost(ctx context.Context, p *entities.Post) error
	DeletePost(ctx context.Context, id string) error

	CreateComment(ctx context.Context, c *entities.Comment) error
	GetComment(ctx context.Context, id string) (*entities.Comment, error)
	ListCommentsByPost(ctx context.Context, postID string) ([]*entities.Comment, error)
	ListCommentsByOwner(ctx context.Context, owner string) ([]*entities.Comment, error)
	ListReplies(ctx context.Context, parentID string) ([]*entities.Comment, error)
	CountReplies(ctx context.Context, parentID string) (int, error)
	UpdateComment(ctx context.Context, c *entities.Comment) error
	DeleteComment(ctx context.Context, id string) error

	CreateLike(ctx context.Context, l *entities.Like) error
	GetPostLike(ctx context.Context, postID, owner string) (*entities.Like, error)
	GetCommentLike(ctx context.Context, commentID, owner string) (*entities.Like, error)
	ListLikesByPost(ctx context.Context, postID string) ([]*entities.Like, error)
	ListLikesByComment(ctx context.Context, commentID string) ([]*entities.Like, error)
	ListLikesByOwner(ctx context.Context, owner string) ([]*entities.Like, error)
	DeleteLike(ctx context.Context, id string) error
}
