package converter

import (
	"errors"

	"github.com/hightemp/cconv/internal/config"
)

// Sentinel errors returned by the converter. Check them with errors.Is.
var (
	// ErrConfig indicates an unknown scheme, a malformed data file or extra
	// records that do not fit the bundled table.
	ErrConfig = config.ErrInvalid

	// ErrTypeArgument indicates names that are neither a string, a number
	// nor a list of those.
	ErrTypeArgument = errors.New("names must be a string, a number or a list of those")

	// ErrConflictingArguments indicates that Src and From were both given
	// with different values.
	ErrConflictingArguments = errors.New("only one of src or from can be used")
)
