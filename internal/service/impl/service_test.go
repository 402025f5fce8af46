package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/communiverse/communiverse/internal/service"
	"github.com/communiverse/communiverse/internal/storage"
	"github.com/communiverse/communiverse/internal/storage/mock"
)

var (
	testTime = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	testID   = "00000000-0000-0000-0000-000000000001"
)

func newTestBase(s storage.Storage) base {
	return base{
		s:   s,
		now: func() time.Time { return testTime },
		id:  func() string { return testID },
	}
}

// passTx makes InTx run its unit against the mock itself.
func passTx(s *mock.MockStorage) {
	s.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, f func(s storage.Storage) error) error {
			return f(s)
		},
	).AnyTimes()
}

func TestBase_InTxRetriesConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	b := newTestBase(s)

	s.EXPECT().InTx(gomock.Any(), gomock.Any()).Return(storage.ErrConflict).Times(txRetries)

	err := b.inTx(context.Background(), func(s storage.Storage) error { return nil })
	require.True(t, errors.Is(err, service.ErrConflict))
}

func TestBase_InTxRetrySucceeds(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	b := newTestBase(s)

	gomock.InOrder(
		s.EXPECT().InTx(gomock.Any(), gomock.Any()).Return(storage.ErrConflict),
		s.EXPECT().InTx(gomock.Any(), gomock.Any()).Return(nil),
	)

	require.NoError(t, b.inTx(context.Background(), func(s storage.Storage) error { return nil }))
}

func TestBase_InTxDoesNotRetryOtherErrors(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := mock.NewMockStorage(ctrl)
	b := newTestBase(s)

	s.EXPECT().InTx(gomock.Any(), gomock.Any()).Return(context.Canceled)

	err := b.inTx(context.Background(), func(s storage.Storage) error { return nil })
	require.True(t, errors.Is(err, context.Canceled))
}
