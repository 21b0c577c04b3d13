package ports

import "time"

// ExtractedDatetime is a date or time found in an utterance plus the words
// left over once it was removed.
type ExtractedDatetime struct {
	When      time.Time
	Remainder string
}

// DatetimeExtractor finds a date/time expression in an utterance relative to
// anchor. It returns nil when the utterance names no date or time.
type DatetimeExtractor interface {
	Extract(utterance string, anchor time.Time, language string) (*ExtractedDatetime, error)
}
