package domain

// DefaultHashtagCount is used when a request asks for zero or a negative number
// of hashtags.
const DefaultHashtagCount = 10

// NormalizeCount applies the count policy to a requested hashtag count. The
// result is always in [1, maxCount] when maxCount is at least 1.
//
// A requested count of zero or less becomes defaultCount. Any count above
// maxCount, the default included, is clamped to maxCount and the second return
// value reports that the clamp happened, so callers can log it. Any other
// count is returned unchanged.
func NormalizeCount(requested, defaultCount, maxCount int) (int, bool) {
	if requested <= 0 {
		requested = defaultCount
	}
	if requested > maxCount {
		return maxCount, true
	}
	return requested, false
}
