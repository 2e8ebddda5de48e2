package exa

import (
	"errors"
	"fmt"
)

// ErrFallback wraps every rejection of an acceleration hook. The host
// should perform the operation in software.
var ErrFallback = errors.New("exa: operation not accelerated")

// Rejection reasons. Each is returned wrapped together with ErrFallback.
var (
	ErrUnsupportedOperator          = errors.New("exa: unsupported operator")
	ErrUnsupportedFormat            = errors.New("exa: unsupported pixel format")
	ErrUnsupportedAlphaCombination  = errors.New("exa: unsupported alpha combination")
	ErrUnsupportedMask              = errors.New("exa: unsupported mask")
	ErrUnsupportedTransformOrFilter = errors.New("exa: unsupported transform or filter")
)

// ErrNilPicture is returned when a required picture or pixmap is nil.
var ErrNilPicture = errors.New("exa: nil picture or pixmap")

// ErrShortBuffer is returned by UploadToScreen when the host buffer does not
// cover the rectangle.
var ErrShortBuffer = errors.New("exa: source buffer too short")

// reject builds a fallback error and logs it.
func reject(reason error, format string, args ...any) error {
	err := fmt.Errorf("%w: %w: %s", ErrFallback, reason, fmt.Sprintf(format, args...))
	Logger().Debug("exa: not accelerated", "reason", err)
	return err
}
