package domain

import "errors"

// ErrInvalidProjectName is returned when the project name is empty or would escape the source directory.
var ErrInvalidProjectName = errors.New("invalid project name")

// ErrChainTooShort is returned by the strict policy when the chain has no modules.
var ErrChainTooShort = errors.New("chain length must be at least 1")

// ErrChainTooLong is returned by the strict policy when module names would lose their fixed width.
var ErrChainTooLong = errors.New("chain length exceeds zero-padded naming range")

// ErrInvalidRecursionLimit is returned by the strict policy when the recursion limit is not positive.
var ErrInvalidRecursionLimit = errors.New("recursion limit must be positive")
