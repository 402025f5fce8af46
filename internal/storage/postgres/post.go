package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/communiverse/communiverse/internal/entities"
	"github.com/communiverse/communiverse/internal/storage"
)

type postDTO struct {
	ID         string    `db:"id"`
	Owner      string    `db:"owner"`
	Title      string    `db:"title"`
	Content    string    `db:"content"`
	Image      string    `db:"image"`
	CreatedAt  time.Time `db:"created_at"`
	ModifiedAt time.Time `db:"modified_at"`
}

func (d postDTO) toEntity() *entities.Post {
	return &entities.Post{
		ID:         d.ID,
		Owner:      d.Owner,
		Title:      d.Title,
		Content:    d.Content,
		Image:      d.Image,
		CreatedAt:  d.CreatedAt,
		ModifiedAt: d.ModifiedAt,
	}
}

func toPostDTO(p *entities.Post) postDTO {
	return postDTO{
		ID:         p.ID,
		Owner:      p.Owner,
		Title:      p.Title,
		Content:    p.Content,
		Image:      p.Image,
		CreatedAt:  p.CreatedAt.UTC(),
		ModifiedAt: p.ModifiedAt.UTC(),
	}
}

func (s pg) CreatePost(ctx context.Context, p *entities.Post) error {
	if _, err := sqlx.NamedExecContext(ctx, s.ext,
		`
			INSERT INTO post(id, owner, title, content, image, created_at, modified_at)
			VALUES(:id, :owner, :title, :content, :image, :created_at, :modified_at)
		`, toPostDTO(p),
	); err != nil {
		return fmt.Errorf("failed to exec: %w", mapError(err))
	}

	return nil
}

func (s pg) GetPost(ctx context.Context, id string) (*entities.Post, error) {
	var p postDTO

	if err := sqlx.GetContext(ctx, s.ext, &p, `
			SELECT id, owner, title, content, image, created_at, modified_at
			FROM post
			WHERE id = $1
		`, id,
	); err != nil {
		return nil, mapError(err)
	}

	return p.toEntity(), nil
}

func (s pg) ListPostsByOwner(ctx context.Context, owner string) ([]*entities.Post, error) {
	var pp []*postDTO

	if err := sqlx.SelectContext(ctx, s.ext, &pp, `
			SELECT id, owner, title, content, image, created_at, modified_at
			FROM post
			WHERE owner = $1
			ORDER BY created_at
		`, owner,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.Post, len(pp))
	for i, v := range pp {
		out[i] = v.toEntity()
	}

	return out, nil
}

func (s pg) UpdatePost(ctx context.Context, p *entities.Post) error {
	res, err := sqlx.NamedExecContext(ctx, s.ext,
		`
			UPDATE post SET
				title=:title, content=:content, image=:image, modified_at=:modified_at
			WHERE id=:id
		`, toPostDTO(p),
	)

	if err != nil {
		return fmt.Errorf("failed to exec: %w", mapError(err))
	}

	if c, _ := res.RowsAffected(); c == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s pg) DeletePost(ctx context.Context, id string) error {
	res, err := s.ext.ExecContext(ctx, `DELETE FROM post WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", mapError(err))
	}

	if c, _ := res.RowsAffected(); c == 0 {
		return storage.ErrNotFound
	}

	return nil
}
