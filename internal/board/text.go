package board

import (
	"fmt"
	"strings"
)

// Text forms used by Setup's JSON encoding: "white", "KQkq", "e3" or "-".

func (c Color) MarshalText() ([]byte, error) {
	switch c {
	case White:
		return []byte("white"), nil
	case Black:
		return []byte("black"), nil
	}
	return nil, fmt.Errorf("%w: color %d", ErrInvalidSetup, c)
}

func (c *Color) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "white", "w":
		*c = White
	case "black", "b":
		*c = Black
	default:
		return fmt.Errorf("%w: color %q", ErrInvalidSetup, b)
	}
	return nil
}

func (cr CastlingRights) MarshalText() ([]byte, error) {
	return []byte(cr.String()), nil
}

func (cr *CastlingRights) UnmarshalText(b []byte) error {
	v, err := ParseCastlingRights(string(b))
	if err != nil {
		return err
	}
	*cr = v
	return nil
}

func (s Square) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Square) UnmarshalText(b []byte) error {
	if str := string(b); str == "-" || str == "" {
		*s = NoSquare
		return nil
	}
	v, err := ParseSquare(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
