package relay

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// ErrEmptyPlayerName is returned when a display name yields no player name
var ErrEmptyPlayerName = errors.New("display name contains no player name")

// ExtractPlayerName recovers the in-game player name from a bridge message
// author's display name. The bridge formats authors as "Name (Server)", so
// everything from the character before the first parenthesis onward is
// dropped. Names without a parenthesis pass through trimmed.
func ExtractPlayerName(displayName string) (string, error) {
	name := displayName
	if idx := strings.Index(name, "("); idx >= 0 {
		cut := idx - 1
		if cut < 0 {
			cut = 0
		}
		name = name[:cut]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyPlayerName
	}
	return name, nil
}

// isNetworkError reports whether the error came from the transport layer or
// a deadline rather than from the remote API itself
func isNetworkError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
