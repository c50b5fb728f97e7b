package transfer

// PublishResult is the only thing a platform adapter hands back. Every
// failure mode (timeout, auth rejection, platform error payload) is folded
// into it; adapters never let an error escape to the caller.
type PublishResult struct {
	OK             bool
	PlatformPostID string
	ErrorMessage   string
	ErrorCode      int
}

func PublishSuccess(platformPostID string) PublishResult {
	return PublishResult{OK: true, PlatformPostID: platformPostID}
}

func PublishFailure(message string) PublishResult {
	return PublishResult{ErrorMessage: message}
}

func PublishFailureCode(message string, code int) PublishResult {
	return PublishResult{ErrorMessage: message, ErrorCode: code}
}
