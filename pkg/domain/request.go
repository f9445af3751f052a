package domain

import (
	"fmt"
	"strings"
)

// Request describes a package to generate.
// The three fields fully determine every byte written to disk.
type Request struct {
	ProjectName    string `json:"project_name" mapstructure:"project_name"`
	ChainLength    int    `json:"chain_length" mapstructure:"chain_length"`
	RecursionLimit int    `json:"recursion_limit" mapstructure:"recursion_limit"`
}

// DefaultRequest returns the request used when no option is given.
func DefaultRequest() Request {
	return Request{
		ProjectName:    DefaultProjectName,
		ChainLength:    DefaultChainLength,
		RecursionLimit: DefaultRecursionLimit,
	}
}

// Policy selects how requests outside the well-formed range are treated.
type Policy string

const (
	// PolicyLenient accepts empty chains, over-long chains and any recursion limit.
	// An empty chain yields a package whose entry point fails when executed.
	PolicyLenient Policy = "lenient"
	// PolicyStrict rejects those requests before anything touches the filesystem.
	PolicyStrict Policy = "strict"
)

// ParsePolicy maps a configuration string to a Policy. Empty means lenient.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyLenient:
		return PolicyLenient, nil
	case PolicyStrict:
		return PolicyStrict, nil
	default:
		return "", fmt.Errorf("unknown policy %q (want %q or %q)", s, PolicyLenient, PolicyStrict)
	}
}

// Validate checks the request against the policy.
// The project name is always checked since it is joined onto the source directory
// and that path is removed recursively.
func (r Request) Validate(p Policy) error {
	if err := validateProjectName(r.ProjectName); err != nil {
		return err
	}
	if p != PolicyStrict {
		return nil
	}
	if r.ChainLength < 1 {
		return fmt.Errorf("%w: got %d", ErrChainTooShort, r.ChainLength)
	}
	if r.ChainLength > MaxAlignedChainLength {
		return fmt.Errorf("%w: got %d, max %d", ErrChainTooLong, r.ChainLength, MaxAlignedChainLength)
	}
	if r.RecursionLimit < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidRecursionLimit, r.RecursionLimit)
	}
	return nil
}

func validateProjectName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: empty", ErrInvalidProjectName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidProjectName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidProjectName, name)
	}
	return nil
}
