package imaging

import "errors"

// Error kinds returned by the engine. Concrete failures wrap one of these,
// so callers should test with errors.Is.
var (
	// ErrDecode reports unreadable or corrupt image bytes, or CSV text that
	// does not form a rectangular numeric matrix.
	ErrDecode = errors.New("decode error")

	// ErrEncode reports that a codec could not produce output for the
	// requested format. No file is written when this is returned.
	ErrEncode = errors.New("encode error")

	// ErrInvalidParameter reports a kernel size, threshold or operation
	// name the engine cannot honor.
	ErrInvalidParameter = errors.New("invalid parameter")
)
