package theme

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// memStore mimics go-app's local storage, which keeps JSON values.
type memStore struct {
	values map[string][]byte
	setErr error
}

func (m *memStore) Get(key string, v interface{}) error {
	data, ok := m.values[key]
	if !ok {
		return nil
	}
	return json.Unmarshal(data, v)
}

func (m *memStore) Set(key string, v interface{}) error {
	if m.setErr != nil {
		return m.setErr
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if m.values == nil {
		m.values = map[string][]byte{}
	}
	m.values[key] = data
	return nil
}

func TestLoadDefaultsToLight(t *testing.T) {
	require.Equal(t, Light, Load(&memStore{}))
	require.Equal(t, Light, Load(&memStore{values: map[string][]byte{Key: []byte(`"sepia"`)}}))
	require.Equal(t, Light, Load(&memStore{values: map[string][]byte{Key: []byte(`{broken`)}}))
}

func TestToggleRoundTrip(t *testing.T) {
	store := &memStore{}

	next, err := Toggle(store, Load(store))
	require.NoError(t, err)
	require.Equal(t, Dark, next)
	require.Equal(t, Dark, Load(store))

	next, err = Toggle(store, next)
	require.NoError(t, err)
	require.Equal(t, Light, next)
	require.Equal(t, Light, Load(store))
}

func TestToggleKeepsCurrentOnStoreError(t *testing.T) {
	store := &memStore{setErr: errors.New("quota exceeded")}

	got, err := Toggle(store, Light)
	require.Error(t, err)
	require.Equal(t, Light, got)
}

func TestIcon(t *testing.T) {
	require.Equal(t, "dark_mode", Light.Icon())
	require.Equal(t, "light_mode", Dark.Icon())
}
