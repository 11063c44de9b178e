package utils

import (
	"errors"
	"syscall"
)

func isIgnorableSyncError(syncError error) bool {
	return errors.Is(syncError, syscall.ENOTSUP) || errors.Is(syncError, syscall.EINVAL) || errors.Is(syncError, syscall.ENOTTY)
}
