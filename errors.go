package mdp

import "github.com/pkg/errors"

// Validation errors returned by the checked construction and mutation paths.
// They are usually returned wrapped with the offending indices and values;
// use errors.Cause to discriminate.
var (
	// ErrInvalidDimensions indicates a state or action count smaller than 1.
	ErrInvalidDimensions = errors.New("mdp: state and action counts must be positive")

	// ErrInvalidDiscount indicates a discount factor outside [0, 1].
	ErrInvalidDiscount = errors.New("mdp: discount factor must be in [0, 1]")

	// ErrInvalidProbability indicates a transition probability outside [0, 1].
	ErrInvalidProbability = errors.New("mdp: transition probability must be in [0, 1]")

	// ErrInvalidRowSum indicates a transition row whose probabilities do not
	// sum to 1 within tolerance.
	ErrInvalidRowSum = errors.New("mdp: transition probabilities must sum to 1")

	// ErrDimensionMismatch indicates dense input whose shape does not match
	// the model's dimensions.
	ErrDimensionMismatch = errors.New("mdp: input dimensions do not match the model")
)
