package imageutil

import "errors"

var (
	// ErrInvalidDimensions is returned when a width, height, channel count or
	// kernel size is zero or negative.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrBufferTooLarge is returned when a buffer would exceed MaxSamples.
	ErrBufferTooLarge = errors.New("buffer too large")

	// ErrUnsupportedChannels is returned for channel counts other than 1, 3 or 4.
	ErrUnsupportedChannels = errors.New("unsupported channel count")
)
