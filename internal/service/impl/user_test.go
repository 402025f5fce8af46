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

func strPtr(s string) *string { return &s }

func TestUserSrv_Create(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := userSrv{newTestBase(s)}

	s.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u *entities.User) error {
			assert.Equal(t, testID, u.ID)
			assert.Equal(t, "alice", u.UserName)
			assert.Equal(t, "alice@example.com", u.Email)
			assert.Equal(t, testTime, u.CreatedAt)
			assert.Equal(t, testTime, u.ModifiedAt)
			return nil
		},
	)

	u, err := srv.Create(context.Background(), service.CreateUserParams{
		UserName: "alice",
		Email:    "alice@example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	require.Equal(t, testID, u.ID)
}

func TestUserSrv_Create_DuplicateUserName(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := userSrv{newTestBase(s)}

	s.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(storage.ErrUniqueViolation)

	_, err := srv.Create(context.Background(), service.CreateUserParams{UserName: "alice"})
	require.True(t, errors.Is(err, service.ErrInvalidOperation))
}

func TestUserSrv_Get(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := userSrv{newTestBase(s)}

	u := &entities.User{ID: "1", UserName: "alice"}

	s.EXPECT().GetUser(gomock.Any(), "1").Return(u, nil)
	out, err := srv.Get(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, u, out)

	s.EXPECT().GetUser(gomock.Any(), "2").Return(nil, storage.ErrNotFound)
	_, err = srv.Get(context.Background(), "2")
	require.True(t, errors.Is(err, service.ErrNotFound))
}

func TestUserSrv_Update(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := userSrv{newTestBase(s)}
	passTx(s)

	existing := &entities.User{
		ID:         "1",
		UserName:   "alice",
		Email:      "old@example.com",
		ModifiedAt: testTime.Add(-time.Hour),
	}

	s.EXPECT().GetUser(gomock.Any(), "1").Return(existing, nil)
	s.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u *entities.User) error {
			assert.Equal(t, "new@example.com", u.Email)
			assert.Equal(t, testTime, u.ModifiedAt)
			return nil
		},
	)

	out, err := srv.Update(context.Background(), "1", entities.UserPatch{Email: strPtr("new@example.com")})
	require.NoError(t, err)
	require.Equal(t, "new@example.com", out.Email)
	require.Equal(t, testTime, out.ModifiedAt)
}

func TestUserSrv_Update_NoOp(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := userSrv{newTestBase(s)}
	passTx(s)

	modified := testTime.Add(-time.Hour)
	existing := &entities.User{
		ID:         "1",
		UserName:   "alice",
		Email:      "old@example.com",
		ModifiedAt: modified,
	}

	// no UpdateUser call expected, the patch changes nothing
	s.EXPECT().GetUser(gomock.Any(), "1").Return(existing, nil)

	out, err := srv.Update(context.Background(), "1", entities.UserPatch{Email: strPtr("old@example.com")})
	require.NoError(t, err)
	require.Equal(t, modified, out.ModifiedAt)
}

func TestUserSrv_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := userSrv{newTestBase(s)}
	passTx(s)

	s.EXPECT().GetUser(gomock.Any(), "1").Return(nil, storage.ErrNotFound)

	_, err := srv.Update(context.Background(), "1", entities.UserPatch{Email: strPtr("x@y.z")})
	require.True(t, errors.Is(err, service.ErrNotFound))
}

func TestUserSrv_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := userSrv{newTestBase(s)}

	s.EXPECT().DeleteUser(gomock.Any(), "1").Return(nil)
	require.NoError(t, srv.Delete(context.Background(), "1"))

	s.EXPECT().DeleteUser(gomock.Any(), "2").Return(storage.ErrNotFound)
	require.True(t, errors.Is(srv.Delete(context.Background(), "2"), service.ErrNotFound))
}

func TestUserSrv_Follow(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := userSrv{newTestBase(s)}
	passTx(s)

	s.EXPECT().GetUser(gomock.Any(), "1").Return(&entities.User{ID: "1"}, nil)
	s.EXPECT().GetUser(gomock.Any(), "2").Return(&entities.User{ID: "2"}, nil)
	s.EXPECT().Follow(gomock.Any(), "1", "2").Return(nil)

	require.NoError(t, srv.Follow(context.Background(), "1", "2"))
}

func TestUserSrv_Follow_Self(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := userSrv{newTestBase(s)}

	err := srv.Follow(context.Background(), "1", "1")
	require.True(t, errors.Is(err, service.ErrInvalidOperation))
}

func TestUserSrv_Follow_TargetMissing(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := userSrv{newTestBase(s)}
	passTx(s)

	s.EXPECT().GetUser(gomock.Any(), "1").Return(&entities.User{ID: "1"}, nil)
	s.EXPECT().GetUser(gomock.Any(), "2").Return(nil, storage.ErrNotFound)

	err := srv.Follow(context.Background(), "1", "2")
	require.True(t, errors.Is(err, service.ErrNotFound))
}

func TestUserSrv_Unfollow(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := userSrv{newTestBase(s)}

	// absent edge is still a success
	s.EXPECT().Unfollow(gomock.Any(), "1", "2").Return(nil).Times(2)

	require.NoError(t, srv.Unfollow(context.Background(), "1", "2"))
	require.NoError(t, srv.Unfollow(context.Background(), "1", "2"))
}

func TestUserSrv_ListFollowers(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := userSrv{newTestBase(s)}

	uu := []*entities.User{{ID: "2"}, {ID: "3"}}

	s.EXPECT().ListFollowers(gomock.Any(), "1").Return(uu, nil)

	out, err := srv.ListFollowers(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, uu, out)
}
