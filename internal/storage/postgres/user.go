package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/communiverse/communiverse/internal/entities"
	"github.com/communiverse/communiverse/internal/storage"
)

type userDTO struct {
	ID             string     `db:"id"`
	UserName       string     `db:"username"`
	Email          string     `db:"email"`
	Password       string     `db:"password"`
	ProfilePicture string     `db:"profile_picture"`
	LastLogin      *time.Time `db:"last_login"`
	CreatedAt      time.Time  `db:"created_at"`
	ModifiedAt     time.Time  `db:"modified_at"`
}

func (d userDTO) toEntity() *entities.User {
	return &entities.User{
		ID:             d.ID,
		UserName:       d.UserName,
		Email:          d.Email,
		Password:       d.Password,
		ProfilePicture: d.ProfilePicture,
		LastLogin:      d.LastLogin,
		CreatedAt:      d.CreatedAt,
		ModifiedAt:     d.ModifiedAt,
	}
}

func toUserDTO(u *entities.User) userDTO {
	return userDTO{
		ID:             u.ID,
		UserName:       u.UserName,
		Email:          u.Email,
		Password:       u.Password,
		ProfilePicture: u.ProfilePicture,
		LastLogin:      u.LastLogin,
		CreatedAt:      u.CreatedAt.UTC(),
		ModifiedAt:     u.ModifiedAt.UTC(),
	}
}

func usersToEntities(dd []*userDTO) []*entities.User {
	out := make([]*entities.User, len(dd))
	for i, v := range dd {
		out[i] = v.toEntity()
	}

	return out
}

func (s pg) CreateUser(ctx context.Context, u *entities.User) error {
	if _, err := sqlx.NamedExecContext(ctx, s.ext,
		`
			INSERT INTO "user"(id, username, email, password, profile_picture, last_login, created_at, modified_at)
			VALUES(:id, :username, :email, :password, :profile_picture, :last_login, :created_at, :modified_at)
		`, toUserDTO(u),
	); err != nil {
		return fmt.Errorf("failed to exec: %w", mapError(err))
	}

	return nil
}

func (s pg) GetUser(ctx context.Context, id string) (*entities.User, error) {
	var u userDTO

	if err := sqlx.GetContext(ctx, s.ext, &u, `
			SELECT id, username, email, password, profile_picture, last_login, created_at, modified_at
			FROM "user"
			WHERE id = $1
		`, id,
	); err != nil {
		return nil, mapError(err)
	}

	return u.toEntity(), nil
}

func (s pg) ListUsers(ctx context.Context) ([]*entities.User, error) {
	var uu []*userDTO

	if err := sqlx.SelectContext(ctx, s.ext, &uu, `
			SELECT id, username, email, password, profile_picture, last_login, created_at, modified_at
			FROM "user"
			ORDER BY created_at
		`,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return usersToEntities(uu), nil
}

func (s pg) UpdateUser(ctx context.Context, u *entities.User) error {
	res, err := sqlx.NamedExecContext(ctx, s.ext,
		`
			UPDATE "user" SET
				email=:email, password=:password, profile_picture=:profile_picture,
				last_login=:last_login, modified_at=:modified_at
			WHERE id=:id
		`, toUserDTO(u),
	)

	if err != nil {
		return fmt.Errorf("failed to exec: %w", mapError(err))
	}

	if c, _ := res.RowsAffected(); c == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s pg) DeleteUser(ctx context.Context, id string) error {
	res, err := s.ext.ExecContext(ctx, `DELETE FROM "user" WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", mapError(err))
	}

	if c, _ := res.RowsAffected(); c == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s pg) Follow(ctx context.Context, follower, followee string) error {
	if _, err := s.ext.ExecContext(ctx,
		`
			INSERT INTO follow(follower, followee) VALUES($1, $2) ON CONFLICT DO NOTHING
		`, follower, followee,
	); err != nil {
		return fmt.Errorf("failed to exec: %w", mapError(err))
	}

	return nil
}

func (s pg) Unfollow(ctx context.Context, follower, followee string) error {
	if _, err := s.ext.ExecContext(ctx,
		`
			DELETE FROM follow WHERE follower=$1 AND followee=$2
		`, follower, followee,
	); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) ListFollowers(ctx context.Context, followee string) ([]*entities.User, error) {
	var uu []*userDTO

	if err := sqlx.SelectContext(ctx, s.ext, &uu, `
			SELECT u.id, u.username, u.email, u.password, u.profile_picture, u.last_login, u.created_at, u.modified_at
			FROM "user" u
			JOIN follow f ON f.follower = u.id
			WHERE f.followee = $1
			ORDER BY u.created_at
		`, followee,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return usersToEntities(uu), nil
}

func (s pg) ListFollowing(ctx context.Context, follower string) ([]*entities.User, error) {
	var uu []*userDTO

	if err := sqlx.SelectContext(ctx, s.ext, &uu, `
			SELECT u.id, u.username, u.email, u.password, u.profile_picture, u.last_login, u.created_at, u.modified_at
			FROM "user" u
			JOIN follow f ON f.followee = u.id
			WHERE f.follower = $1
			ORDER BY u.created_at
		`, follower,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return usersToEntities(uu), nil
}
