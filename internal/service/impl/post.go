package impl

import (
	"context"
	"errors"
	"fmt"

	"github.com/communiverse/communiverse/internal/entities"
	"github.com/communiverse/communiverse/internal/service"
	"github.com/communiverse/communiverse/internal/storage"
)

type postSrv struct {
	base
}

// NewPostService creates new instance of post service.
func NewPostService(s storage.Storage) service.PostService {
	return postSrv{newBase(s)}
}

func (s postSrv) Create(ctx context.Context, p service.CreatePostParams) (*entities.Post, error) {
	var out *entities.Post

	if err := s.inTx(ctx, func(st storage.Storage) error {
		if _, err := st.GetUser(ctx, p.Owner); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return errNotFound("user", p.Owner)
			}

			return fmt.Errorf("failed to get user: %w", err)
		}

		now := s.now()
		post := &entities.Post{
			ID:         s.id(),
			Owner:      p.Owner,
			Title:      p.Title,
			Content:    p.Content,
			Image:      p.Image,
			CreatedAt:  now,
			ModifiedAt: now,
		}

		if err := st.CreatePost(ctx, post); err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}

		out = post

		return nil
	}); err != nil {
		return nil, err
	}

	return out, nil
}

func (s postSrv) Get(ctx context.Context, id string) (*entities.Post, error) {
	p, err := s.s.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errNotFound("post", id)
		}

		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return p, nil
}

func (s postSrv) ListByUser(ctx context.Context, userID string) ([]*entities.Post, error) {
	pp, err := s.s.ListPostsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return pp, nil
}

func (s postSrv) Update(ctx context.Context, id string, patch entities.PostPatch) (*entities.Post, error) {
	var out *entities.Post

	if err := s.inTx(ctx, func(st storage.Storage) error {
		p, err := st.GetPost(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return errNotFound("post", id)
			}

			return fmt.Errorf("failed to get post: %w", err)
		}

		merged, changed := entities.MergePost(*p, patch)
		if changed {
			merged.ModifiedAt = s.now()
			if err := st.UpdatePost(ctx, &merged); err != nil {
				return fmt.Errorf("failed to update post: %w", err)
			}
		}

		out = &merged

		return nil
	}); err != nil {
		return nil, err
	}

	return out, nil
}

func (s postSrv) Delete(ctx context.Context, id string) error {
	if err := s.s.DeletePost(ctx, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return errNotFound("post", id)
		case errors.Is(err, storage.ErrForeignKeyViolation):
			// no cascade, dependents are the caller's responsibility
			return errInvalidOperation("post", id, "has dependent comments or likes")
		}

		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}
