package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/communiverse/communiverse/internal/entities"
	"github.com/communiverse/communiverse/internal/storage"
)

type commentDTO struct {
	ID         string    `db:"id"`
	PostID     string    `db:"post_id"`
	Owner      string    `db:"owner"`
	ParentID   *string   `db:"parent_id"`
	Status     string    `db:"status"`
	Content    string    `db:"content"`
	CreatedAt  time.Time `db:"created_at"`
	ModifiedAt time.Time `db:"modified_at"`
}

func (d commentDTO) toEntity() *entities.Comment {
	return &entities.Comment{
		ID:         d.ID,
		PostID:     d.PostID,
		Owner:      d.Owner,
		ParentID:   d.ParentID,
		Status:     entities.CommentStatus(d.Status),
		Content:    d.Content,
		CreatedAt:  d.CreatedAt,
		ModifiedAt: d.ModifiedAt,
	}
}

func toCommentDTO(c *entities.Comment) commentDTO {
	return commentDTO{
		ID:         c.ID,
		PostID:     c.PostID,
		Owner:      c.Owner,
		ParentID:   c.ParentID,
		Status:     string(c.Status),
		Content:    c.Content,
		CreatedAt:  c.CreatedAt.UTC(),
		ModifiedAt: c.ModifiedAt.UTC(),
	}
}

func commentsToEntities(dd []*commentDTO) []*entities.Comment {
	out := make([]*entities.Comment, len(dd))
	for i, v := range dd {
		out[i] = v.toEntity()
	}

	return out
}

func (s pg) CreateComment(ctx context.Context, c *entities.Comment) error {
	if _, err := sqlx.NamedExecContext(ctx, s.ext,
		`
			INSERT INTO comment(id, post_id, owner, parent_id, status, content, created_at, modified_at)
			VALUES(:id, :post_id, :owner, :parent_id, :status, :content, :created_at, :modified_at)
		`, toCommentDTO(c),
	); err != nil {
		return fmt.Errorf("failed to exec: %w", mapError(err))
	}

	return nil
}

func (s pg) GetComment(ctx context.Context, id string) (*entities.Comment, error) {
	var c commentDTO

	if err := sqlx.GetContext(ctx, s.ext, &c, `
			SELECT id, post_id, owner, parent_id, status, content, created_at, modified_at
			FROM comment
			WHERE id = $1
		`, id,
	); err != nil {
		return nil, mapError(err)
	}

	return c.toEntity(), nil
}

func (s pg) ListCommentsByPost(ctx context.Context, postID string) ([]*entities.Comment, error) {
	var cc []*commentDTO

	if err := sqlx.SelectContext(ctx, s.ext, &cc, `
			SELECT id, post_id, owner, parent_id, status, content, created_at, modified_at
			FROM comment
			WHERE post_id = $1
			ORDER BY created_at
		`, postID,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return commentsToEntities(cc), nil
}

func (s pg) ListCommentsByOwner(ctx context.Context, owner string) ([]*entities.Comment, error) {
	var cc []*commentDTO

	if err := sqlx.SelectContext(ctx, s.ext, &cc, `
			SELECT id, post_id, owner, parent_id, status, content, created_at, modified_at
			FROM comment
			WHERE owner = $1
			ORDER BY created_at
		`, owner,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return commentsToEntities(cc), nil
}

func (s pg) ListReplies(ctx context.Context, parentID string) ([]*entities.Comment, error) {
	var cc []*commentDTO

	if err := sqlx.SelectContext(ctx, s.ext, &cc, `
			SELECT id, post_id, owner, parent_id, status, content, created_at, modified_at
			FROM comment
			WHERE parent_id = $1
			ORDER BY created_at
		`, parentID,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return commentsToEntities(cc), nil
}

func (s pg) CountReplies(ctx context.Context, parentID string) (int, error) {
	var c int

	if err := sqlx.GetContext(ctx, s.ext, &c,
		`SELECT count(*) FROM comment WHERE parent_id = $1`, parentID,
	); err != nil {
		return 0, fmt.Errorf("failed to query: %w", err)
	}

	return c, nil
}

func (s pg) UpdateComment(ctx context.Context, c *entities.Comment) error {
	res, err := sqlx.NamedExecContext(ctx, s.ext,
		`
			UPDATE comment SET
				status=:status, content=:content, modified_at=:modified_at
			WHERE id=:id
		`, toCommentDTO(c),
	)

	if err != nil {
		return fmt.Errorf("failed to exec: %w", mapError(err))
	}

	if c, _ := res.RowsAffected(); c == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s pg) DeleteComment(ctx context.Context, id string) error {
	res, err := s.ext.ExecContext(ctx, `DELETE FROM comment WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", mapError(err))
	}

	if c, _ := res.RowsAffected(); c == 0 {
		return storage.ErrNotFound
	}

	return nil
}
