package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	values map[string]bool
	getErr error
	setErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: make(map[string]bool)}
}

func (s *fakeStore) Get(_ context.Context, key string) (bool, bool, error) {
	if s.getErr != nil {
		return false, false, s.getErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *fakeStore) Set(_ context.Context, key string, value bool) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

func TestDetectPreferenceToggle(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantValue bool
		wantOK    bool
	}{
		{"不要用名字", "Please don't use my name", false, true},
		{"弯引号", "don’t use my name", false, true},
		{"停止使用名字", "stop using my name thanks", false, true},
		{"无名字", "no name please", false, true},
		{"通用问候", "just a generic greeting", false, true},
		{"可以使用名字", "you can use my name", true, true},
		{"可以使用名字2", "It's ok to use my name again", true, true},
		{"使用名字", "use my name", true, true},
		{"个性化问候", "personalize greeting", true, true},
		{"无关消息", "how do I price my data?", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := DetectPreferenceToggle(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantValue, v)
		})
	}
}

func TestPreference_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("未保存时默认开启", func(t *testing.T) {
		p := NewPreference(newFakeStore(), "user-1")
		v, err := p.Load(ctx)
		require.NoError(t, err)
		assert.True(t, v)
	})

	t.Run("读取已保存的值", func(t *testing.T) {
		store := newFakeStore()
		store.values["user-1"] = false
		v, err := NewPreference(store, "user-1").Load(ctx)
		require.NoError(t, err)
		assert.False(t, v)
	})

	t.Run("读取失败时默认开启", func(t *testing.T) {
		store := newFakeStore()
		store.getErr = errors.New("unavailable")
		v, err := NewPreference(store, "user-1").Load(ctx)
		assert.Error(t, err)
		assert.True(t, v)
	})

	t.Run("无存储", func(t *testing.T) {
		v, err := NewPreference(nil, "user-1").Load(ctx)
		require.NoError(t, err)
		assert.True(t, v)
	})
}

func TestPreference_Save(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	p := NewPreference(store, "user-1")

	require.NoError(t, p.Save(ctx, false))
	assert.False(t, store.values["user-1"])

	store.setErr = errors.New("read only")
	assert.Error(t, p.Save(ctx, true))
	assert.Equal(t, "user-1", p.Key())
}
