package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/job-autofill/internal/types"
)

// Storage keys.
const (
	KeyProfile             = "profile"
	KeyCanonicalProfile    = "canonicalProfile"
	KeyResumeText          = "resumeText"
	KeyWhitelist           = "whitelist"
	KeyFieldAnswers        = "fieldAnswers"
	KeyGenericFieldAnswers = "genericFieldAnswers"
	KeySiteToGeneric       = "siteToGeneric"
	KeyExperiences         = "experiences"
	KeyAutofillLogs        = "autofillLogs"
	KeyAutofillLogging     = "autofillLogging"
	KeyOpenAIKey           = "openaiApiKey"
	KeyGeminiKey           = "geminiApiKey"
	KeyActiveAIProvider    = "activeAiProvider"
	KeyUseLocalStructuring = "useLocalStructuring"
)

// Store is the typed view of a KV. Read-modify-write operations are
// serialized within the process; concurrent writers in other processes
// race and the last Set wins.
type Store struct {
	kv KV
	mu sync.Mutex
}

// New wraps kv.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Close closes the underlying KV.
func (s *Store) Close() error {
	return s.kv.Close()
}

// get decodes the listed keys into the matching destinations; missing keys
// leave their destination untouched.
func (s *Store) get(ctx context.Context, dests map[string]any) error {
	keys := make([]string, 0, len(dests))
	for k := range dests {
		keys = append(keys, k)
	}

	raw, err := s.kv.Get(ctx, keys)
	if err != nil {
		return err
	}
	for key, doc := range raw {
		if err := json.Unmarshal(doc, dests[key]); err != nil {
			return &Error{Op: "decode", Key: key, Cause: err}
		}
	}
	return nil
}

func (s *Store) getOne(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := s.kv.Get(ctx, []string{key})
	if err != nil {
		return false, err
	}
	doc, ok := raw[key]
	if !ok || string(doc) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(doc, dest); err != nil {
		return false, &Error{Op: "decode", Key: key, Cause: err}
	}
	return true, nil
}

// Profile returns the stored profile, or nil when none was uploaded.
func (s *Store) Profile(ctx context.Context) (*types.Profile, error) {
	var p types.Profile
	ok, err := s.getOne(ctx, KeyProfile, &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

// CanonicalProfile returns the stored canonical profile, or nil.
func (s *Store) CanonicalProfile(ctx context.Context) (*types.CanonicalProfile, error) {
	var c types.CanonicalProfile
	ok, err := s.getOne(ctx, KeyCanonicalProfile, &c)
	if err != nil || !ok {
		return nil, err
	}
	return &c, nil
}

// SaveProfile persists both profile shapes and the resume text together.
func (s *Store) SaveProfile(ctx context.Context, p *types.Profile, c *types.CanonicalProfile, resumeText string) error {
	values := map[string]any{
		KeyProfile:          p,
		KeyCanonicalProfile: c,
	}
	if resumeText != "" {
		values[KeyResumeText] = resumeText
	}
	return s.kv.Set(ctx, values)
}

// Whitelist returns the approved domains.
func (s *Store) Whitelist(ctx context.Context) ([]string, error) {
	var list []string
	if _, err := s.getOne(ctx, KeyWhitelist, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// AddToWhitelist appends domains that are not already present.
func (s *Store) AddToWhitelist(ctx context.Context, domains ...string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.Whitelist(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(list))
	for _, d := range list {
		seen[d] = true
	}
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" && !seen[d] {
			list = append(list, d)
			seen[d] = true
		}
	}
	if err := s.kv.Set(ctx, map[string]any{KeyWhitelist: list}); err != nil {
		return nil, err
	}
	return list, nil
}

// SiteAnswer returns fieldAnswers[siteKey].
func (s *Store) SiteAnswer(ctx context.Context, siteKey string) (types.Value, bool, error) {
	var answers map[string]types.Value
	if _, err := s.getOne(ctx, KeyFieldAnswers, &answers); err != nil {
		return types.Value{}, false, err
	}
	v, ok := answers[siteKey]
	return v, ok, nil
}

// GenericAnswer returns genericFieldAnswers[key].
func (s *Store) GenericAnswer(ctx context.Context, key string) (types.Value, bool, error) {
	var answers map[string]types.Value
	if _, err := s.getOne(ctx, KeyGenericFieldAnswers, &answers); err != nil {
		return types.Value{}, false, err
	}
	v, ok := answers[key]
	return v, ok, nil
}

// GenericKeyFor returns siteToGeneric[siteKey].
func (s *Store) GenericKeyFor(ctx context.Context, siteKey string) (string, bool, error) {
	var mapping map[string]string
	if _, err := s.getOne(ctx, KeySiteToGeneric, &mapping); err != nil {
		return "", false, err
	}
	k, ok := mapping[siteKey]
	return k, ok && k != "", nil
}

// SaveRequest is one answer write.
type SaveRequest struct {
	SiteKey    string
	GenericKey string
	Value      types.Value
	Related    *types.ExperienceRef
}

// SaveAnswer writes fieldAnswers and, when a generic key is given, the
// generic answer and site mapping, plus the experiences upsert, in one Set.
func (s *Store) SaveAnswer(ctx context.Context, req SaveRequest) error {
	if req.SiteKey == "" {
		return fmt.Errorf("site key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fieldAnswers := map[string]types.Value{}
	genericAnswers := map[string]types.Value{}
	siteToGeneric := map[string]string{}
	var experiences []types.ExperienceRef

	err := s.get(ctx, map[string]any{
		KeyFieldAnswers:        &fieldAnswers,
		KeyGenericFieldAnswers: &genericAnswers,
		KeySiteToGeneric:       &siteToGeneric,
		KeyExperiences:         &experiences,
	})
	if err != nil {
		return err
	}
	// A stored null decodes to a nil map.
	if fieldAnswers == nil {
		fieldAnswers = map[string]types.Value{}
	}
	if genericAnswers == nil {
		genericAnswers = map[string]types.Value{}
	}
	if siteToGeneric == nil {
		siteToGeneric = map[string]string{}
	}

	fieldAnswers[req.SiteKey] = req.Value
	values := map[string]any{KeyFieldAnswers: fieldAnswers}

	if req.GenericKey != "" {
		genericAnswers[req.GenericKey] = req.Value
		siteToGeneric[req.SiteKey] = req.GenericKey
		values[KeyGenericFieldAnswers] = genericAnswers
		values[KeySiteToGeneric] = siteToGeneric
	}

	if req.Related != nil && (req.Related.Company != "" || req.Related.Role != "") {
		values[KeyExperiences] = upsertExperience(experiences, *req.Related)
	}

	return s.kv.Set(ctx, values)
}

// upsertExperience replaces the first entry sharing the company or role,
// keeping whichever side the update leaves blank, or appends a new one.
func upsertExperience(list []types.ExperienceRef, ref types.ExperienceRef) []types.ExperienceRef {
	for i, e := range list {
		if (ref.Company != "" && e.Company == ref.Company) || (ref.Role != "" && e.Role == ref.Role) {
			merged := ref
			if merged.Company == "" {
				merged.Company = e.Company
			}
			if merged.Role == "" {
				merged.Role = e.Role
			}
			list[i] = merged
			return list
		}
	}
	return append(list, ref)
}

// Mappings is the exportable answer memory.
type Mappings struct {
	FieldAnswers        map[string]types.Value `json:"fieldAnswers"`
	GenericFieldAnswers map[string]types.Value `json:"genericFieldAnswers"`
	Experiences         []types.ExperienceRef  `json:"experiences"`
	SiteToGeneric       map[string]string      `json:"siteToGeneric"`
	AutofillLogging     bool                   `json:"autofillLogging"`
}

// MappingsUpdate replaces only the parts that are set.
type MappingsUpdate struct {
	FieldAnswers        map[string]types.Value `json:"fieldAnswers,omitempty"`
	GenericFieldAnswers map[string]types.Value `json:"genericFieldAnswers,omitempty"`
	Experiences         []types.ExperienceRef  `json:"experiences,omitempty"`
	SiteToGeneric       map[string]string      `json:"siteToGeneric,omitempty"`
	AutofillLogging     *bool                  `json:"autofillLogging,omitempty"`
}

// Mappings reads the answer memory, with empty collections for absent keys.
func (s *Store) Mappings(ctx context.Context) (*Mappings, error) {
	m := &Mappings{}
	err := s.get(ctx, map[string]any{
		KeyFieldAnswers:        &m.FieldAnswers,
		KeyGenericFieldAnswers: &m.GenericFieldAnswers,
		KeyExperiences:         &m.Experiences,
		KeySiteToGeneric:       &m.SiteToGeneric,
		KeyAutofillLogging:     &m.AutofillLogging,
	})
	if err != nil {
		return nil, err
	}
	if m.FieldAnswers == nil {
		m.FieldAnswers = map[string]types.Value{}
	}
	if m.GenericFieldAnswers == nil {
		m.GenericFieldAnswers = map[string]types.Value{}
	}
	if m.Experiences == nil {
		m.Experiences = []types.ExperienceRef{}
	}
	if m.SiteToGeneric == nil {
		m.SiteToGeneric = map[string]string{}
	}
	return m, nil
}

// SetMappings writes the set parts of u in one Set.
func (s *Store) SetMappings(ctx context.Context, u *MappingsUpdate) error {
	values := map[string]any{}
	if u.FieldAnswers != nil {
		values[KeyFieldAnswers] = u.FieldAnswers
	}
	if u.GenericFieldAnswers != nil {
		values[KeyGenericFieldAnswers] = u.GenericFieldAnswers
	}
	if u.Experiences != nil {
		values[KeyExperiences] = u.Experiences
	}
	if u.SiteToGeneric != nil {
		values[KeySiteToGeneric] = u.SiteToGeneric
	}
	if u.AutofillLogging != nil {
		values[KeyAutofillLogging] = *u.AutofillLogging
	}
	if len(values) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Set(ctx, values)
}

// AIKeys is the stored provider configuration.
type AIKeys struct {
	OpenAIKey           string
	GeminiKey           string
	ActiveProvider      string
	UseLocalStructuring bool
}

// AIKeys reads the provider keys and preference.
func (s *Store) AIKeys(ctx context.Context) (AIKeys, error) {
	var k AIKeys
	err := s.get(ctx, map[string]any{
		KeyOpenAIKey:           &k.OpenAIKey,
		KeyGeminiKey:           &k.GeminiKey,
		KeyActiveAIProvider:    &k.ActiveProvider,
		KeyUseLocalStructuring: &k.UseLocalStructuring,
	})
	return k, err
}

// SetAIKeys writes the non-empty keys and the provider preference.
func (s *Store) SetAIKeys(ctx context.Context, k AIKeys) error {
	values := map[string]any{KeyUseLocalStructuring: k.UseLocalStructuring}
	if k.OpenAIKey != "" {
		values[KeyOpenAIKey] = k.OpenAIKey
	}
	if k.GeminiKey != "" {
		values[KeyGeminiKey] = k.GeminiKey
	}
	if k.ActiveProvider != "" {
		values[KeyActiveAIProvider] = k.ActiveProvider
	}
	return s.kv.Set(ctx, values)
}
