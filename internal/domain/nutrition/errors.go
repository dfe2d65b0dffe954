package nutrition

import "errors"

var (
	// ErrInvalidDistribution is returned for a custom meal distribution whose
	// weights are negative, not finite, or sum to zero or less.
	ErrInvalidDistribution = errors.New("meal distribution weights must be non-negative and sum to more than zero")

	// ErrUnknownPolicy is returned when a policy name cannot be resolved.
	ErrUnknownPolicy = errors.New("unknown meal distribution policy")
)
