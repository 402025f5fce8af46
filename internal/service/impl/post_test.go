package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communiverse/communiverse/internal/entities"
	"github.com/communiverse/communiverse/internal/service"
	"github.com/communiverse/communiverse/internal/storage"
	"github.com/communiverse/communiverse/internal/storage/mock"
)

func TestPostSrv_Create(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := postSrv{newTestBase(s)}
	passTx(s)

	s.EXPECT().GetUser(gomock.Any(), "owner").Return(&entities.User{ID: "owner"}, nil)
	s.EXPECT().CreatePost(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p *entities.Post) error {
			assert.Equal(t, testID, p.ID)
			assert.Equal(t, "owner", p.Owner)
			assert.Equal(t, "title", p.Title)
			assert.Equal(t, testTime, p.CreatedAt)
			assert.Equal(t, testTime, p.ModifiedAt)
			return nil
		},
	)

	p, err := srv.Create(context.Background(), service.CreatePostParams{
		Owner:   "owner",
		Title:   "title",
		Content: "content",
	})
	require.NoError(t, err)
	require.Equal(t, testID, p.ID)
}

func TestPostSrv_Create_OwnerMissing(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := postSrv{newTestBase(s)}
	passTx(s)

	s.EXPECT().GetUser(gomock.Any(), "owner").Return(nil, storage.ErrNotFound)

	_, err := srv.Create(context.Background(), service.CreatePostParams{Owner: "owner"})
	require.True(t, errors.Is(err, service.ErrNotFound))
}

func TestPostSrv_Get(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := postSrv{newTestBase(s)}

	p := &entities.Post{ID: "1"}

	s.EXPECT().GetPost(gomock.Any(), "1").Return(p, nil)
	out, err := srv.Get(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, p, out)

	s.EXPECT().GetPost(gomock.Any(), "2").Return(nil, storage.ErrNotFound)
	_, err = srv.Get(context.Background(), "2")
	require.True(t, errors.Is(err, service.ErrNotFound))
}

func TestPostSrv_ListByUser_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := postSrv{newTestBase(s)}

	s.EXPECT().ListPostsByOwner(gomock.Any(), "nobody").Return([]*entities.Post{}, nil)

	pp, err := srv.ListByUser(context.Background(), "nobody")
	require.NoError(t, err)
	require.Empty(t, pp)
}

func TestPostSrv_Update(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := postSrv{newTestBase(s)}
	passTx(s)

	existing := &entities.Post{
		ID:         "1",
		Title:      "old",
		ModifiedAt: testTime.Add(-time.Hour),
	}

	s.EXPECT().GetPost(gomock.Any(), "1").Return(existing, nil)
	s.EXPECT().UpdatePost(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p *entities.Post) error {
			assert.Equal(t, "new", p.Title)
			assert.Equal(t, testTime, p.ModifiedAt)
			return nil
		},
	)

	out, err := srv.Update(context.Background(), "1", entities.PostPatch{Title: strPtr("new")})
	require.NoError(t, err)
	require.Equal(t, "new", out.Title)
}

func TestPostSrv_Update_NoOp(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := postSrv{newTestBase(s)}
	passTx(s)

	modified := testTime.Add(-time.Hour)
	existing := &entities.Post{ID: "1", Title: "old", ModifiedAt: modified}

	// no UpdatePost expected
	s.EXPECT().GetPost(gomock.Any(), "1").Return(existing, nil)

	out, err := srv.Update(context.Background(), "1", entities.PostPatch{Title: strPtr("old")})
	require.NoError(t, err)
	require.Equal(t, modified, out.ModifiedAt)
}

func TestPostSrv_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := postSrv{newTestBase(s)}

	s.EXPECT().DeletePost(gomock.Any(), "1").Return(nil)
	require.NoError(t, srv.Delete(context.Background(), "1"))

	s.EXPECT().DeletePost(gomock.Any(), "2").Return(storage.ErrNotFound)
	require.True(t, errors.Is(srv.Delete(context.Background(), "2"), service.ErrNotFound))

	s.EXPECT().DeletePost(gomock.Any(), "3").Return(storage.ErrForeignKeyViolation)
	require.True(t, errors.Is(srv.Delete(context.Background(), "3"), service.ErrInvalidOperation))
}
