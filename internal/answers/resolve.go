package answers

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jonathan/job-autofill/internal/fieldmatch"
	"github.com/jonathan/job-autofill/internal/store"
	"github.com/jonathan/job-autofill/internal/types"
)

// Source names the tier that produced a value.
type Source string

// Resolution sources.
const (
	SourceSiteSaved    Source = "site-saved"
	SourceGenericSaved Source = "generic-saved"
	SourceCanonical    Source = "canonical"
	SourceBasicProfile Source = "basic-profile"
	SourceAI           Source = "ai"
	SourceUser         Source = "user"
)

// Memory is the answer storage the resolver reads and writes.
type Memory interface {
	SiteAnswer(ctx context.Context, siteKey string) (types.Value, bool, error)
	GenericAnswer(ctx context.Context, key string) (types.Value, bool, error)
	GenericKeyFor(ctx context.Context, siteKey string) (string, bool, error)
	SaveAnswer(ctx context.Context, req store.SaveRequest) error
}

// Resolution is a fill decision.
type Resolution struct {
	Value  types.Value
	Source Source
	// Selected holds the choices to pick for selects and radio groups and
	// the choices to check for checkbox groups.
	Selected []Choice
	// Checked is the target state of a single checkbox.
	Checked bool
}

// Resolver applies the fill-decision policy.
type Resolver struct {
	memory Memory
	logger zerolog.Logger
}

// NewResolver returns a resolver over memory.
func NewResolver(memory Memory, logger zerolog.Logger) *Resolver {
	return &Resolver{memory: memory, logger: logger}
}

// Resolve returns the first value that passes validation for the field's
// canonical key, trying site memory, generic memory, the canonical profile
// and the basic profile in that order. A nil resolution with a nil error
// means nothing applies. Choice controls consult memory only.
func (r *Resolver) Resolve(ctx context.Context, f Field, profile *types.Profile, canonical *types.CanonicalProfile) (*Resolution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.Kind.IsChoice() {
		return r.resolveChoice(ctx, f), nil
	}

	if v, ok := r.siteAnswer(ctx, f.SiteKey); ok && fieldmatch.IsValid(v.String(), f.Key) {
		return &Resolution{Value: v, Source: SourceSiteSaved}, nil
	}

	if v, ok := r.genericAnswer(ctx, f); ok && fieldmatch.IsValid(v.String(), f.Key) {
		return &Resolution{Value: v, Source: SourceGenericSaved}, nil
	}

	if f.Key != "" {
		if s := CanonicalValue(canonical, f.Key); fieldmatch.IsValid(s, f.Key) {
			return r.promote(ctx, f, types.Text(s), SourceCanonical), nil
		}
	}

	if s := BasicValue(f.Label, profile); fieldmatch.IsValid(s, f.Key) {
		return r.promote(ctx, f, types.Text(s), SourceBasicProfile), nil
	}

	return nil, nil
}

// Save writes value under the site key and, when key is set, under the
// generic key with the site mapping, in one storage write.
func (r *Resolver) Save(ctx context.Context, siteKey string, key fieldmatch.Key, value types.Value, related *types.ExperienceRef) error {
	return r.memory.SaveAnswer(ctx, store.SaveRequest{
		SiteKey:    siteKey,
		GenericKey: string(key),
		Value:      value,
		Related:    related,
	})
}

// promote writes a profile-derived value back into memory. A failed write
// still fills the field.
func (r *Resolver) promote(ctx context.Context, f Field, v types.Value, source Source) *Resolution {
	if err := r.Save(ctx, f.SiteKey, f.Key, v, nil); err != nil {
		r.logger.Warn().Err(err).Str("site_key", f.SiteKey).Msg("answer write-back failed")
	}
	return &Resolution{Value: v, Source: source}
}

// siteAnswer reads tier 1. Storage errors read as a miss.
func (r *Resolver) siteAnswer(ctx context.Context, siteKey string) (types.Value, bool) {
	v, ok, err := r.memory.SiteAnswer(ctx, siteKey)
	if err != nil {
		r.logger.Warn().Err(err).Str("site_key", siteKey).Msg("site answer lookup failed")
		return types.Value{}, false
	}
	return v, ok && !v.IsZero()
}

// genericAnswer reads tier 2 under the matched key, or the key the site
// field was last saved with when no key matched.
func (r *Resolver) genericAnswer(ctx context.Context, f Field) (types.Value, bool) {
	key := string(f.Key)
	if key == "" {
		mapped, ok, err := r.memory.GenericKeyFor(ctx, f.SiteKey)
		if err != nil {
			r.logger.Warn().Err(err).Str("site_key", f.SiteKey).Msg("site mapping lookup failed")
			return types.Value{}, false
		}
		if !ok {
			return types.Value{}, false
		}
		key = mapped
	}

	v, ok, err := r.memory.GenericAnswer(ctx, key)
	if err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("generic answer lookup failed")
		return types.Value{}, false
	}
	return v, ok && !v.IsZero()
}

func (r *Resolver) resolveChoice(ctx context.Context, f Field) *Resolution {
	if v, ok := r.siteAnswer(ctx, f.SiteKey); ok {
		if res := restore(f, v); res != nil {
			res.Source = SourceSiteSaved
			return res
		}
	}
	if v, ok := r.genericAnswer(ctx, f); ok {
		if res := restore(f, v); res != nil {
			res.Source = SourceGenericSaved
			return res
		}
	}
	return nil
}
