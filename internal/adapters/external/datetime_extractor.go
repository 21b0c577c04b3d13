package external

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"weatherdialog.app/internal/ports"
	"weatherdialog.app/pkg/errors"
)

// WhenDatetimeExtractor implements DatetimeExtractor with the when rule parser.
// The English rule set serves every language.
type WhenDatetimeExtractor struct {
	parser *when.Parser
}

// NewWhenDatetimeExtractor creates an extractor with the English and common rules
func NewWhenDatetimeExtractor() *WhenDatetimeExtractor {
	parser := when.New(nil)
	parser.Add(en.All...)
	parser.Add(common.All...)
	return &WhenDatetimeExtractor{parser: parser}
}

// Extract finds a date or time expression in the utterance relative to anchor.
// An expression naming only a day ("tomorrow", "on friday") comes back at
// midnight of that day in the anchor's timezone.
func (e *WhenDatetimeExtractor) Extract(utterance string, anchor time.Time, language string) (*ports.ExtractedDatetime, error) {
	if strings.TrimSpace(utterance) == "" {
		return nil, nil
	}

	result, err := e.parser.Parse(utterance, anchor)
	if err != nil {
		return nil, errors.Wrap(errors.ValidationError, "failed to parse a date from the utterance", err)
	}
	if result == nil {
		return nil, nil
	}

	extracted := result.Time.In(anchor.Location())
	if sameClock(extracted, anchor) && !sameDay(extracted, anchor) {
		extracted = time.Date(extracted.Year(), extracted.Month(), extracted.Day(), 0, 0, 0, 0, anchor.Location())
	}

	remainder := utterance
	if end := result.Index + len(result.Text); result.Index >= 0 && end <= len(utterance) {
		remainder = utterance[:result.Index] + utterance[end:]
	}
	return &ports.ExtractedDatetime{
		When:      extracted,
		Remainder: strings.Join(strings.Fields(remainder), " "),
	}, nil
}

func sameClock(a, b time.Time) bool {
	return a.Hour() == b.Hour() && a.Minute() == b.Minute() && a.Second() == b.Second()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

var _ ports.DatetimeExtractor = (*WhenDatetimeExtractor)(nil)
