package impl

import (
	"context"
	"errors"
	"fmt"

	"github.com/communiverse/communiverse/internal/entities"
	"github.com/communiverse/communiverse/internal/service"
	"github.com/communiverse/communiverse/internal/storage"
)

type userSrv struct {
	base
}

// NewUserService creates new instance of user service.
func NewUserService(s storage.Storage) service.UserService {
	return userSrv{newBase(s)}
}

func (s userSrv) Create(ctx context.Context, p service.CreateUserParams) (*entities.User, error) {
	now := s.now()
	u := &entities.User{
		ID:             s.id(),
		UserName:       p.UserName,
		Email:          p.Email,
		Password:       p.Password,
		ProfilePicture: p.ProfilePicture,
		CreatedAt:      now,
		ModifiedAt:     now,
	}

	if err := s.s.CreateUser(ctx, u); err != nil {
		if errors.Is(err, storage.ErrUniqueViolation) {
			return nil, errInvalidOperation("user", p.UserName, "username already taken")
		}

		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

func (s userSrv) Get(ctx context.Context, id string) (*entities.User, error) {
	u, err := s.s.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errNotFound("user", id)
		}

		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (s userSrv) List(ctx context.Context) ([]*entities.User, error) {
	uu, err := s.s.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return uu, nil
}

func (s userSrv) Update(ctx context.Context, id string, patch entities.UserPatch) (*entities.User, error) {
	var out *entities.User

	if err := s.inTx(ctx, func(st storage.Storage) error {
		u, err := st.GetUser(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return errNotFound("user", id)
			}

			return fmt.Errorf("failed to get user: %w", err)
		}

		merged, changed := entities.MergeUser(*u, patch)
		if changed {
			merged.ModifiedAt = s.now()
			if err := st.UpdateUser(ctx, &merged); err != nil {
				return fmt.Errorf("failed to update user: %w", err)
			}
		}

		out = &merged

		return nil
	}); err != nil {
		return nil, err
	}

	return out, nil
}

func (s userSrv) Delete(ctx context.Context, id string) error {
	if err := s.s.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errNotFound("user", id)
		}

		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

func (s userSrv) Follow(ctx context.Context, userID, targetID string) error {
	if userID == targetID {
		return errInvalidOperation("user", userID, "self-follow")
	}

	return s.inTx(ctx, func(st storage.Storage) error {
		for _, id := range []string{userID, targetID} {
			if _, err := st.GetUser(ctx, id); err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return errNotFound("user", id)
				}

				return fmt.Errorf("failed to get user: %w", err)
			}
		}

		// idempotent, the edge is inserted with ON CONFLICT DO NOTHING
		if err := st.Follow(ctx, userID, targetID); err != nil {
			return fmt.Errorf("failed to follow: %w", err)
		}

		return nil
	})
}

func (s userSrv) Unfollow(ctx context.Context, userID, targetID string) error {
	// absent edge is a no-op success
	if err := s.s.Unfollow(ctx, userID, targetID); err != nil {
		return fmt.Errorf("failed to unfollow: %w", err)
	}

	return nil
}

func (s userSrv) ListFollowers(ctx context.Context, userID string) ([]*entities.User, error) {
	uu, err := s.s.ListFollowers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}

	return uu, nil
}

func (s userSrv) ListFollowing(ctx context.Context, userID string) ([]*entities.User, error) {
	uu, err := s.s.ListFollowing(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}

	return uu, nil
}
