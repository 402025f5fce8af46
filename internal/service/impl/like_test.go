package impl

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communiverse/communiverse/internal/entities"
	"github.com/communiverse/communiverse/internal/service"
	"github.com/communiverse/communiverse/internal/storage"
	"github.com/communiverse/communiverse/internal/storage/mock"
)

func TestLikeSrv_LikePost(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := likeSrv{newTestBase(s)}
	passTx(s)

	s.EXPECT().GetUser(gomock.Any(), "user").Return(&entities.User{ID: "user"}, nil)
	s.EXPECT().GetPost(gomock.Any(), "post").Return(&entities.Post{ID: "post"}, nil)
	s.EXPECT().GetPostLike(gomock.Any(), "post", "user").Return(nil, storage.ErrNotFound)
	s.EXPECT().CreateLike(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, l *entities.Like) error {
			assert.Equal(t, testID, l.ID)
			assert.Equal(t, "user", l.Owner)
			require.NotNil(t, l.PostID)
			assert.Equal(t, "post", *l.PostID)
			assert.Nil(t, l.CommentID)
			return nil
		},
	)

	l, err := srv.LikePost(context.Background(), "user", "post")
	require.NoError(t, err)
	require.Equal(t, testID, l.ID)
}

func TestLikeSrv_LikePost_AlreadyLiked(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := likeSrv{newTestBase(s)}
	passTx(s)

	postID := "post"

	s.EXPECT().GetUser(gomock.Any(), "user").Return(&entities.User{ID: "user"}, nil)
	s.EXPECT().GetPost(gomock.Any(), "post").Return(&entities.Post{ID: "post"}, nil)
	s.EXPECT().GetPostLike(gomock.Any(), "post", "user").Return(&entities.Like{ID: "like", Owner: "user", PostID: &postID}, nil)

	_, err := srv.LikePost(context.Background(), "user", "post")
	require.True(t, errors.Is(err, service.ErrInvalidOperation))
}

func TestLikeSrv_LikePost_RacingWriter(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := likeSrv{newTestBase(s)}
	passTx(s)

	// the check saw nothing but the unique index caught the race
	s.EXPECT().GetUser(gomock.Any(), "user").Return(&entities.User{ID: "user"}, nil)
	s.EXPECT().GetPost(gomock.Any(), "post").Return(&entities.Post{ID: "post"}, nil)
	s.EXPECT().GetPostLike(gomock.Any(), "post", "user").Return(nil, storage.ErrNotFound)
	s.EXPECT().CreateLike(gomock.Any(), gomock.Any()).Return(storage.ErrUniqueViolation)

	_, err := srv.LikePost(context.Background(), "user", "post")
	require.True(t, errors.Is(err, service.ErrInvalidOperation))
}

func TestLikeSrv_LikePost_TargetMissing(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := likeSrv{newTestBase(s)}
	passTx(s)

	s.EXPECT().GetUser(gomock.Any(), "user").Return(&entities.User{ID: "user"}, nil)
	s.EXPECT().GetPost(gomock.Any(), "post").Return(nil, storage.ErrNotFound)

	_, err := srv.LikePost(context.Background(), "user", "post")
	require.True(t, errors.Is(err, service.ErrNotFound))
}

func TestLikeSrv_LikeComment(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := likeSrv{newTestBase(s)}
	passTx(s)

	s.EXPECT().GetUser(gomock.Any(), "user").Return(&entities.User{ID: "user"}, nil)
	s.EXPECT().GetComment(gomock.Any(), "comment").Return(&entities.Comment{ID: "comment"}, nil)
	s.EXPECT().GetCommentLike(gomock.Any(), "comment", "user").Return(nil, storage.ErrNotFound)
	s.EXPECT().CreateLike(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, l *entities.Like) error {
			require.NotNil(t, l.CommentID)
			assert.Equal(t, "comment", *l.CommentID)
			assert.Nil(t, l.PostID)
			return nil
		},
	)

	_, err := srv.LikeComment(context.Background(), "user", "comment")
	require.NoError(t, err)
}

func TestLikeSrv_UnlikePost(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := likeSrv{newTestBase(s)}
	passTx(s)

	postID := "post"

	s.EXPECT().GetPostLike(gomock.Any(), "post", "user").Return(&entities.Like{ID: "like", Owner: "user", PostID: &postID}, nil)
	s.EXPECT().DeleteLike(gomock.Any(), "like").Return(nil)

	require.NoError(t, srv.UnlikePost(context.Background(), "user", "post"))
}

func TestLikeSrv_UnlikePost_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := likeSrv{newTestBase(s)}
	passTx(s)

	s.EXPECT().GetPostLike(gomock.Any(), "post", "user").Return(nil, storage.ErrNotFound).Times(2)

	require.NoError(t, srv.UnlikePost(context.Background(), "user", "post"))
	require.NoError(t, srv.UnlikePost(context.Background(), "user", "post"))
}

func TestLikeSrv_UnlikeComment_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := likeSrv{newTestBase(s)}
	passTx(s)

	s.EXPECT().GetCommentLike(gomock.Any(), "comment", "user").Return(nil, storage.ErrNotFound)

	require.NoError(t, srv.UnlikeComment(context.Background(), "user", "comment"))
}

func TestLikeSrv_ListByPost(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	srv := likeSrv{newTestBase(s)}

	postID := "post"
	ll := []*entities.Like{{ID: "1", Owner: "u1", PostID: &postID}}

	s.EXPECT().ListLikesByPost(gomock.Any(), "post").Return(ll, nil)

	out, err := srv.ListByPost(context.Background(), "post")
	require.NoError(t, err)
	require.Equal(t, ll, out)
}
