package webmblock

import "errors"

var (
	ErrVintDecode        = errors.New("webmblock: invalid vint")
	ErrBlockDecode       = errors.New("webmblock: invalid block")
	ErrSimpleBlockDecode = errors.New("webmblock: invalid simple block")
	ErrEncode            = errors.New("webmblock: invalid block contents")
	ErrContentEncoding   = errors.New("webmblock: invalid content encoding")
	ErrLimitExceeded     = errors.New("webmblock: limit exceeded")
)
