package session

import (
	"fmt"
	"strings"
)

// View identifies one of the mutually exclusive screens.
type View int

const (
	Home View = iota
	FreeFall
	LinearMotion
	ProjectileMotion
	viewCount
)

var viewNames = [viewCount]string{
	"home", "freefall", "linear", "projectile",
}

// Views lists every screen in selector order.
func Views() []View {
	return []View{Home, FreeFall, LinearMotion, ProjectileMotion}
}

// Valid reports whether v is one of the four screens.
func (v View) Valid() bool {
	return v >= Home && v < viewCount
}

func (v View) String() string {
	if !v.Valid() {
		return fmt.Sprintf("view(%d)", int(v))
	}
	return viewNames[v]
}

// ParseView maps a view name to its View. Matching ignores case and
// surrounding whitespace; a few long forms are accepted as aliases.
func ParseView(name string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "home", "about":
		return Home, nil
	case "freefall", "free-fall", "free_fall":
		return FreeFall, nil
	case "linear", "linear-motion", "uniform":
		return LinearMotion, nil
	case "projectile", "projectile-motion":
		return ProjectileMotion, nil
	}
	return Home, fmt.Errorf("%w: %q", ErrUnknownView, name)
}

// MarshalText encodes the view by name so it can appear in YAML config.
func (v View) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownView, int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText decodes a view name.
func (v *View) UnmarshalText(text []byte) error {
	parsed, err := ParseView(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
