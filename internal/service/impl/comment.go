package impl

import (
	"context"
	"errors"
	"fmt"

	"github.com/communiverse/communiverse/internal/entities"
	"github.com/communiverse/communiverse/internal/service"
	"github.com/communiverse/communiverse/internal/storage"
)

type commentSrv struct {
	base
}

// NewCommentService creates new instance of comment service.
func NewCommentService(s storage.Storage) service.CommentService {
	return commentSrv{newBase(s)}
}

func (s commentSrv) Create(ctx context.Context, p service.CreateCommentParams) (*entities.Comment, error) {
	var out *entities.Comment

	if err := s.inTx(ctx, func(st storage.Storage) error {
		if _, err := st.GetUser(ctx, p.Owner); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return errNotFound("user", p.Owner)
			}

			return fmt.Errorf("failed to get user: %w", err)
		}

		if _, err := st.GetPost(ctx, p.PostID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return errNotFound("post", p.PostID)
			}

			return fmt.Errorf("failed to get post: %w", err)
		}

		if p.ParentID != nil {
			parent, err := st.GetComment(ctx, *p.ParentID)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return errNotFound("comment", *p.ParentID)
				}

				return fmt.Errorf("failed to get parent comment: %w", err)
			}

			// replies inherit the root thread's post
			if parent.PostID != p.PostID {
				return errInvalidOperation("comment", *p.ParentID, "parent belongs to another post")
			}
		}

		now := s.now()
		c := &entities.Comment{
			ID:         s.id(),
			PostID:     p.PostID,
			Owner:      p.Owner,
			ParentID:   p.ParentID,
			Status:     entities.CommentStatusActive,
			Content:    p.Content,
			CreatedAt:  now,
			ModifiedAt: now,
		}

		if err := st.CreateComment(ctx, c); err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}

		out = c

		return nil
	}); err != nil {
		return nil, err
	}

	return out, nil
}

func (s commentSrv) Get(ctx context.Context, id string) (*entities.Comment, error) {
	c, err := s.s.GetComment(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errNotFound("comment", id)
		}

		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return c, nil
}

func (s commentSrv) ListByPost(ctx context.Context, postID string) ([]*entities.Comment, error) {
	cc, err := s.s.ListCommentsByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return cc, nil
}

func (s commentSrv) ListByUser(ctx context.Context, userID string) ([]*entities.Comment, error) {
	cc, err := s.s.ListCommentsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return cc, nil
}

func (s commentSrv) ListReplies(ctx context.Context, parentID string) ([]*entities.Comment, error) {
	cc, err := s.s.ListReplies(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}

	return cc, nil
}

func (s commentSrv) Update(ctx context.Context, id string, patch entities.CommentPatch) (*entities.Comment, error) {
	var out *entities.Comment

	if err := s.inTx(ctx, func(st storage.Storage) error {
		c, err := st.GetComment(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return errNotFound("comment", id)
			}

			return fmt.Errorf("failed to get comment: %w", err)
		}

		if c.Status == entities.CommentStatusTombstoned {
			// no-op success, thread history is preserved from edits after deletion
			log.WithField("comment", id).Warn("update of tombstoned comment ignored")
			out = c

			return nil
		}

		merged, changed := entities.MergeComment(*c, patch)
		if changed {
			merged.ModifiedAt = s.now()
			if err := st.UpdateComment(ctx, &merged); err != nil {
				return fmt.Errorf("failed to update comment: %w", err)
			}
		}

		out = &merged

		return nil
	}); err != nil {
		return nil, err
	}

	return out, nil
}

// Delete removes a comment without replies physically. A comment with
// replies is tombstoned instead: the node keeps its id and position in the
// reply tree so descendants stay addressable. Tombstoned is terminal, a
// reply set emptied later does not reverse it.
func (s commentSrv) Delete(ctx context.Context, id string) error {
	return s.inTx(ctx, func(st storage.Storage) error {
		c, err := st.GetComment(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return errNotFound("comment", id)
			}

			return fmt.Errorf("failed to get comment: %w", err)
		}

		replies, err := st.CountReplies(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to count replies: %w", err)
		}

		if replies == 0 {
			// likes on the comment go with it, the reverse lookups
			// (post's and author's comment views) need no touch-up
			if err := st.DeleteComment(ctx, id); err != nil {
				return fmt.Errorf("failed to delete comment: %w", err)
			}

			return nil
		}

		if c.Status == entities.CommentStatusTombstoned {
			return nil
		}

		c.Status = entities.CommentStatusTombstoned
		c.Content = ""
		c.ModifiedAt = s.now()

		if err := st.UpdateComment(ctx, c); err != nil {
			return fmt.Errorf("failed to tombstone comment: %w", err)
		}

		return nil
	})
}
