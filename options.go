package webmblock

type contentConfig struct {
	limits Limits
}

// ContentOption customizes content-encoding operations.
type ContentOption func(*contentConfig)

// WithContentLimits sets custom size limits for DecompressFrame.
func WithContentLimits(l Limits) ContentOption {
	return func(c *contentConfig) { c.limits = l }
}
