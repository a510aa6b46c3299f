package errors

import "errors"

// ErrOptimisticLock signals that a versioned row was modified by a concurrent
// operation between read and write.
var ErrOptimisticLock = errors.New("record was modified by another operation, please retry")
