// Package options provides shared utilities for option validation across packages.
package options

import "github.com/erraggy/oaslimbs/oaserrors"

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources reports, in any order, whether each possible source is set.
// The returned error is an *oaserrors.ConfigError for option carrying
// noSourceMsg or multiSourceMsg.
func ValidateSingleInputSource(option, noSourceMsg, multiSourceMsg string, sources ...bool) error {
	count := 0
	for _, set := range sources {
		if set {
			count++
		}
	}

	switch {
	case count == 0:
		return &oaserrors.ConfigError{Option: option, Message: noSourceMsg}
	case count > 1:
		return &oaserrors.ConfigError{Option: option, Message: multiSourceMsg}
	default:
		return nil
	}
}
