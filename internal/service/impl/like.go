package impl

import (
	"context"
	"errors"
	"fmt"

	"github.com/communiverse/communiverse/internal/entities"
	"github.com/communiverse/communiverse/internal/service"
	"github.com/communiverse/communiverse/internal/storage"
)

type likeSrv struct {
	base
}

// NewLikeService creates new instance of like service.
func NewLikeService(s storage.Storage) service.LikeService {
	return likeSrv{newBase(s)}
}

func (s likeSrv) LikePost(ctx context.Context, userID, postID string) (*entities.Like, error) {
	var out *entities.Like

	if err := s.inTx(ctx, func(st storage.Storage) error {
		if _, err := st.GetUser(ctx, userID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return errNotFound("user", userID)
			}

			return fmt.Errorf("failed to get user: %w", err)
		}

		if _, err := st.GetPost(ctx, postID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return errNotFound("post", postID)
			}

			return fmt.Errorf("failed to get post: %w", err)
		}

		// the check runs in the same tx as the insert, the partial unique
		// index on (post_id, liked_by) backs it up against racing writers
		switch _, err := st.GetPostLike(ctx, postID, userID); {
		case err == nil:
			return errInvalidOperation("post", postID, "already liked")
		case !errors.Is(err, storage.ErrNotFound):
			return fmt.Errorf("failed to get like: %w", err)
		}

		l := &entities.Like{
			ID:        s.id(),
			Owner:     userID,
			PostID:    &postID,
			CreatedAt: s.now(),
		}

		if err := st.CreateLike(ctx, l); err != nil {
			if errors.Is(err, storage.ErrUniqueViolation) {
				return errInvalidOperation("post", postID, "already liked")
			}

			return fmt.Errorf("failed to create like: %w", err)
		}

		out = l

		return nil
	}); err != nil {
		return nil, err
	}

	return out, nil
}

func (s likeSrv) LikeComment(ctx context.Context, userID, commentID string) (*entities.Like, error) {
	var out *entities.Like

	if err := s.inTx(ctx, func(st storage.Storage) error {
		if _, err := st.GetUser(ctx, userID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return errNotFound("user", userID)
			}

			return fmt.Errorf("failed to get user: %w", err)
		}

		if _, err := st.GetComment(ctx, commentID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return errNotFound("comment", commentID)
			}

			return fmt.Errorf("failed to get comment: %w", err)
		}

		switch _, err := st.GetCommentLike(ctx, commentID, userID); {
		case err == nil:
			return errInvalidOperation("comment", commentID, "already liked")
		case !errors.Is(err, storage.ErrNotFound):
			return fmt.Errorf("failed to get like: %w", err)
		}

		l := &entities.Like{
			ID:        s.id(),
			Owner:     userID,
			CommentID: &commentID,
			CreatedAt: s.now(),
		}

		if err := st.CreateLike(ctx, l); err != nil {
			if errors.Is(err, storage.ErrUniqueViolation) {
				return errInvalidOperation("comment", commentID, "already liked")
			}

			return fmt.Errorf("failed to create like: %w", err)
		}

		out = l

		return nil
	}); err != nil {
		return nil, err
	}

	return out, nil
}

func (s likeSrv) UnlikePost(ctx context.Context, userID, postID string) error {
	return s.inTx(ctx, func(st storage.Storage) error {
		l, err := st.GetPostLike(ctx, postID, userID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// idempotent unlike
				return nil
			}

			return fmt.Errorf("failed to get like: %w", err)
		}

		if err := st.DeleteLike(ctx, l.ID); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to delete like: %w", err)
		}

		return nil
	})
}

func (s likeSrv) UnlikeComment(ctx context.Context, userID, commentID string) error {
	return s.inTx(ctx, func(st storage.Storage) error {
		l, err := st.GetCommentLike(ctx, commentID, userID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// idempotent unlike
				return nil
			}

			return fmt.Errorf("failed to get like: %w", err)
		}

		if err := st.DeleteLike(ctx, l.ID); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to delete like: %w", err)
		}

		return nil
	})
}

func (s likeSrv) ListByPost(ctx context.Context, postID string) ([]*entities.Like, error) {
	ll, err := s.s.ListLikesByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}

	return ll, nil
}

func (s likeSrv) ListByComment(ctx context.Context, commentID string) ([]*entities.Like, error) {
	ll, err := s.s.ListLikesByComment(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}

	return ll, nil
}

func (s likeSrv) ListByUser(ctx context.Context, userID string) ([]*entities.Like, error) {
	ll, err := s.s.ListLikesByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}

	return ll, nil
}
