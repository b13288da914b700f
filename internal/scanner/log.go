package scanner

import (
	"context"

	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/labels"
	"github.com/jonathan/job-autofill/internal/types"
)

// FillLog is the payload of an autofill log entry.
type FillLog struct {
	Field        FillLogField `json:"field"`
	NearestLabel *labels.Info `json:"nearestLabel"`
	Meta         FillLogMeta  `json:"meta"`
	Value        types.Value  `json:"value"`
}

// FillLogField identifies the filled control.
type FillLogField struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}

// FillLogMeta records how the value was chosen.
type FillLogMeta struct {
	Source       string `json:"source"`
	SiteFieldKey string `json:"siteFieldKey"`
	CanonicalKey string `json:"canonicalKey,omitempty"`
}

func (s *Scanner) logFill(ctx context.Context, el *dom.Element, f *FormField, value types.Value) {
	entry := FillLog{
		Field: FillLogField{
			ID:   el.ID(),
			Name: el.Name(),
			Type: el.Type(),
		},
		NearestLabel: labels.Nearest(el),
		Meta: FillLogMeta{
			Source:       string(f.Source),
			SiteFieldKey: f.SiteKey,
			CanonicalKey: string(f.Key),
		},
		Value: value,
	}
	if _, err := s.backend.AppendLog(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Msg("autofill log append failed")
	}
}
