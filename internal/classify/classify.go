// Package classify defines the classifier collaborator contract: a side
// effect free function from normalized image tensor to diagnostic label.
package classify

import (
	"context"
	"errors"

	"braincheck/internal/imaging"
)

// ErrUnavailable indicates the classifier could not produce a result.
// Failure is always an error, never a label.
var ErrUnavailable = errors.New("classifier unavailable")

// Classifier maps a normalized tensor to one diagnostic label. Preprocessing
// declares the input contract tensors must satisfy; implementations must be
// idempotent from the caller's perspective.
type Classifier interface {
	Preprocessing() imaging.Preprocessing
	Classify(ctx context.Context, t *imaging.Tensor) (Label, error)
}
