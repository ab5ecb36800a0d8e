package tradejournal

import "errors"

// rejected converts a failed mutation into its result. Rejections carry the
// reason; storage failures carry a generic message and are logged at Error.
func (c *Core) rejected(op string, err error, attrs ...any) MutationResult {
	code := CodeOf(err)
	message := err.Error()
	var e *Error
	if errors.As(err, &e) {
		message = e.Message
	}

	if isRejection(code) {
		c.logger.Warn(op+" rejected", append(attrs, "error_code", code, "reason", message)...)
		return MutationResult{
			Code:      CodeRejected,
			Success:   false,
			Message:   message,
			ErrorCode: code,
		}
	}

	c.logger.Error(op+" failed", append(attrs, "error_code", code, "err", err)...)
	return MutationResult{
		Code:      CodeFailed,
		Success:   false,
		Message:   MsgStorageFailure,
		ErrorCode: code,
	}
}
