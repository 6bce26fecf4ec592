// Package theme persists the light/dark preference of the client.
package theme

import "fmt"

// Key is the storage key holding the preference.
const Key = "theme"

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Store is a key-value store such as the browser's local storage.
// go-app's app.BrowserStorage satisfies it.
type Store interface {
	Get(key string, v interface{}) error
	Set(key string, v interface{}) error
}

// Load reads the stored preference. Anything missing or unknown is Light.
func Load(s Store) Theme {
	var raw string
	if err := s.Get(Key, &raw); err != nil {
		return Light
	}
	if t := Theme(raw); t == Dark {
		return t
	}
	return Light
}

// Next returns the opposite theme.
func (t Theme) Next() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Icon is the material symbol shown on the toggle button.
func (t Theme) Icon() string {
	if t == Dark {
		return "light_mode"
	}
	return "dark_mode"
}

// Toggle flips current and stores the result.
func Toggle(s Store, current Theme) (Theme, error) {
	next := current.Next()
	if err := s.Set(Key, string(next)); err != nil {
		return current, fmt.Errorf("store theme: %w", err)
	}
	return next, nil
}
