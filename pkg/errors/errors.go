package errors

import "errors"

// ErrOptimisticLock means the row was modified by another operation since it was read.
var ErrOptimisticLock = errors.New("record was modified by another operation, refresh and retry")
