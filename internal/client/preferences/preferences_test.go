package preferences

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	data   map[string][]byte
	GetErr error
	SetErr error
}

func (f *fakeRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	return f.data[key], nil
}

func (f *fakeRepo) Set(ctx context.Context, key string, value []byte) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	f.data[key] = value
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func TestOnboardedFlag(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{data: map[string][]byte{}}
	s := New(repo)

	ok, err := s.HasOnboarded(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.SetOnboarded(ctx))
	ok, err = s.HasOnboarded(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("true"), repo.data[keyHasOnboarded])
}

func TestOnboardedFlag_Errors(t *testing.T) {
	boom := errors.New("disk gone")
	s := New(&fakeRepo{data: map[string][]byte{}, GetErr: boom, SetErr: boom})

	_, err := s.HasOnboarded(context.Background())
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, s.SetOnboarded(context.Background()), boom)
}
