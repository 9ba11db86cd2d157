package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLocked is returned for moves on a lost board under LossPolicyLock.
var ErrLocked = errors.New("game: board is lost, reset to continue")

// LossPolicy decides what happens to a session once its board is lost.
type LossPolicy string

const (
	// LossPolicyLock rejects further moves with ErrLocked until Reset.
	LossPolicyLock LossPolicy = "lock"
	// LossPolicyDisplay only reports the loss; moves keep failing as illegal.
	LossPolicyDisplay LossPolicy = "display"
)

// ParseLossPolicy converts a config or flag value into a LossPolicy.
// An empty string selects LossPolicyLock.
func ParseLossPolicy(s string) (LossPolicy, error) {
	switch LossPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", LossPolicyLock:
		return LossPolicyLock, nil
	case LossPolicyDisplay:
		return LossPolicyDisplay, nil
	}
	return "", fmt.Errorf("game: unknown loss policy %q (expected lock or display)", s)
}
