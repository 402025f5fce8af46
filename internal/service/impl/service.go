// Package impl is implementation of service interfaces.
package impl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/communiverse/communiverse/internal/service"
	"github.com/communiverse/communiverse/internal/storage"
)

var log = logrus.WithField("layer", "service")

// txRetries bounds retries of a read-modify-write unit on storage conflicts.
const txRetries = 3

type base struct {
	s   storage.Storage
	now func() time.Time
	id  func() string
}

func newBase(s storage.Storage) base {
	return base{
		s:   s,
		now: func() time.Time { return time.Now().UTC() },
		id:  uuid.NewString,
	}
}

// inTx runs f as one transactional unit, retrying the whole unit when
// concurrent writers collide. After txRetries attempts the error surfaces
// as service.ErrConflict.
func (b base) inTx(ctx context.Context, f func(s storage.Storage) error) error {
	var err error

	for i := 0; i < txRetries; i++ {
		if err = b.s.InTx(ctx, f); !errors.Is(err, storage.ErrConflict) {
			return err
		}

		log.WithError(err).Warn("storage conflict, retrying tx")
	}

	return fmt.Errorf("%v: %w", err, service.ErrConflict)
}

func errNotFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, service.ErrNotFound)
}

func errInvalidOperation(kind, id, reason string) error {
	return fmt.Errorf("%s %s: %s: %w", kind, id, reason, service.ErrInvalidOperation)
}

// Services bundles the per-entity services over one storage.
type Services struct {
	User    service.UserService
	Post    service.PostService
	Comment service.CommentService
	Like    service.LikeService
}

// New creates all services over s.
func New(s storage.Storage) Services {
	return Services{
		User:    NewUserService(s),
		Post:    NewPostService(s),
		Comment: NewCommentService(s),
		Like:    NewLikeService(s),
	}
}
