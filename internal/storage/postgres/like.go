package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/communiverse/communiverse/internal/entities"
	"github.com/communiverse/communiverse/internal/storage"
)

type likeDTO struct {
	ID        string    `db:"id"`
	LikedBy   string    `db:"liked_by"`
	PostID    *string   `db:"post_id"`
	CommentID *string   `db:"comment_id"`
	CreatedAt time.Time `db:"created_at"`
}

func (d likeDTO) toEntity() *entities.Like {
	return &entities.Like{
		ID:        d.ID,
		Owner:     d.LikedBy,
		PostID:    d.PostID,
		CommentID: d.CommentID,
		CreatedAt: d.CreatedAt,
	}
}

func toLikeDTO(l *entities.Like) likeDTO {
	return likeDTO{
		ID:        l.ID,
		LikedBy:   l.Owner,
		PostID:    l.PostID,
		CommentID: l.CommentID,
		CreatedAt: l.CreatedAt.UTC(),
	}
}

func likesToEntities(dd []*likeDTO) []*entities.Like {
	out := make([]*entities.Like, len(dd))
	for i, v := range dd {
		out[i] = v.toEntity()
	}

	return out
}

func (s pg) CreateLike(ctx context.Context, l *entities.Like) error {
	if _, err := sqlx.NamedExecContext(ctx, s.ext,
		`
			INSERT INTO "like"(id, liked_by, post_id, comment_id, created_at)
			VALUES(:id, :liked_by, :post_id, :comment_id, :created_at)
		`, toLikeDTO(l),
	); err != nil {
		return fmt.Errorf("failed to exec: %w", mapError(err))
	}

	return nil
}

func (s pg) GetPostLike(ctx context.Context, postID, owner string) (*entities.Like, error) {
	var l likeDTO

	if err := sqlx.GetContext(ctx, s.ext, &l, `
			SELECT id, liked_by, post_id, comment_id, created_at
			FROM "like"
			WHERE post_id = $1 AND liked_by = $2
		`, postID, owner,
	); err != nil {
		return nil, mapError(err)
	}

	return l.toEntity(), nil
}

func (s pg) GetCommentLike(ctx context.Context, commentID, owner string) (*entities.Like, error) {
	var l likeDTO

	if err := sqlx.GetContext(ctx, s.ext, &l, `
			SELECT id, liked_by, post_id, comment_id, created_at
			FROM "like"
			WHERE comment_id = $1 AND liked_by = $2
		`, commentID, owner,
	); err != nil {
		return nil, mapError(err)
	}

	return l.toEntity(), nil
}

func (s pg) ListLikesByPost(ctx context.Context, postID string) ([]*entities.Like, error) {
	var ll []*likeDTO

	if err := sqlx.SelectContext(ctx, s.ext, &ll, `
			SELECT id, liked_by, post_id, comment_id, created_at
			FROM "like"
			WHERE post_id = $1
			ORDER BY created_at
		`, postID,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return likesToEntities(ll), nil
}

func (s pg) ListLikesByComment(ctx context.Context, commentID string) ([]*entities.Like, error) {
	var ll []*likeDTO

	if err := sqlx.SelectContext(ctx, s.ext, &ll, `
			SELECT id, liked_by, post_id, comment_id, created_at
			FROM "like"
			WHERE comment_id = $1
			ORDER BY created_at
		`, commentID,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return likesToEntities(ll), nil
}

func (s pg) ListLikesByOwner(ctx context.Context, owner string) ([]*entities.Like, error) {
	var ll []*likeDTO

	if err := sqlx.SelectContext(ctx, s.ext, &ll, `
			SELECT id, liked_by, post_id, comment_id, created_at
			FROM "like"
			WHERE liked_by = $1
			ORDER BY created_at
		`, owner,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return likesToEntities(ll), nil
}

func (s pg) DeleteLike(ctx context.Context, id string) error {
	res, err := s.ext.ExecContext(ctx, `DELETE FROM "like" WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("failed to exec: %w", mapError(err))
	}

	if c, _ := res.RowsAffected(); c == 0 {
		return storage.ErrNotFound
	}

	return nil
}
