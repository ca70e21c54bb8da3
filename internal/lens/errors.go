package lens

import "errors"

// Domain errors for model construction and grid geometry.
var (
	// ErrPixelizationPair indicates a galaxy was built with a pixelization
	// and no regularization, or the reverse.
	ErrPixelizationPair = errors.New("lens: pixelization and regularization must be set together")

	// ErrRedshift indicates a non-positive galaxy redshift.
	ErrRedshift = errors.New("lens: redshift must be positive")

	// ErrGridShape indicates a grid shape or sub-sampling factor that is
	// not positive.
	ErrGridShape = errors.New("lens: grid shape and sub size must be positive")

	// ErrPixelScale indicates a non-positive pixel scale.
	ErrPixelScale = errors.New("lens: pixel scale must be positive")

	// ErrFieldLength indicates an array whose length does not match the
	// grid or operator it is used with.
	ErrFieldLength = errors.New("lens: field length does not match grid")
)
