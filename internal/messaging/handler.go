// Package messaging dispatches extension-style action messages to storage,
// resume structuring and answer generation. Every reply is a Response with a
// success flag; handler errors never escape as Go errors.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/jonathan/job-autofill/internal/fieldmatch"
	"github.com/jonathan/job-autofill/internal/resume"
	"github.com/jonathan/job-autofill/internal/schemas"
	"github.com/jonathan/job-autofill/internal/store"
	"github.com/jonathan/job-autofill/internal/types"
)

// Store is the answer memory behind the storage actions. *store.Store
// satisfies it.
type Store interface {
	SiteAnswer(ctx context.Context, siteKey string) (types.Value, bool, error)
	GenericAnswer(ctx context.Context, key string) (types.Value, bool, error)
	GenericKeyFor(ctx context.Context, siteKey string) (string, bool, error)
	SaveAnswer(ctx context.Context, req store.SaveRequest) error
	AppendLog(ctx context.Context, payload any) (*store.LogEntry, error)
	Logs(ctx context.Context) ([]store.LogEntry, error)
	ClearLogs(ctx context.Context) error
	Mappings(ctx context.Context) (*store.Mappings, error)
	SetMappings(ctx context.Context, u *store.MappingsUpdate) error
}

// Generator drafts AI answers.
type Generator interface {
	GenerateAnswer(ctx context.Context, label, company, role string) (string, error)
}

// Structurer structures and saves resumes.
type Structurer interface {
	Structure(ctx context.Context, resumeText string) (*resume.Result, error)
}

// ErrUnknownAction is returned for actions outside the supported set.
var ErrUnknownAction = errors.New("unknown action")

// Handler dispatches messages.
type Handler struct {
	store      Store
	generator  Generator
	structurer Structurer
	validate   *validator.Validate
	logger     zerolog.Logger
}

// NewHandler returns a Handler.
func NewHandler(s Store, g Generator, st Structurer, logger zerolog.Logger) *Handler {
	v := validator.New()
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("canonical_key", func(fl validator.FieldLevel) bool {
		return fieldmatch.IsKnown(fieldmatch.Key(fl.Field().String()))
	})
	return &Handler{store: s, generator: g, structurer: st, validate: v, logger: logger}
}

// Action returns the action name of a raw message, or "" when it has none.
func Action(raw []byte) string {
	var env envelope
	if json.Unmarshal(raw, &env) != nil {
		return ""
	}
	return env.Action
}

// Handle decodes and dispatches one raw message.
func (h *Handler) Handle(ctx context.Context, raw []byte) Response {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fail(fmt.Errorf("invalid message: %w", err))
	}
	if err := h.validate.Struct(env); err != nil {
		return fail(fmt.Errorf("invalid message: %w", err))
	}

	resp, err := h.dispatch(ctx, env.Action, raw)
	if err != nil {
		h.logger.Warn().Err(err).Str("action", env.Action).Msg("message failed")
		return fail(err)
	}
	return resp
}

func (h *Handler) dispatch(ctx context.Context, action string, raw []byte) (Response, error) {
	switch action {
	case ActionStructureResume:
		var req StructureResumeRequest
		if err := h.decode(raw, &req); err != nil {
			return nil, err
		}
		return h.structureResume(ctx, req)
	case ActionGenerateAnswer:
		var req GenerateAnswerRequest
		if err := h.decode(raw, &req); err != nil {
			return nil, err
		}
		return h.generateAnswer(ctx, req)
	case ActionSaveFieldAnswer:
		var req SaveFieldAnswerRequest
		if err := h.decode(raw, &req); err != nil {
			return nil, err
		}
		return h.saveFieldAnswer(ctx, req)
	case ActionGetFieldAnswer:
		var req GetFieldAnswerRequest
		if err := h.decode(raw, &req); err != nil {
			return nil, err
		}
		return h.getFieldAnswer(ctx, req)
	case ActionLogAutofill:
		if _, err := h.store.AppendLog(ctx, json.RawMessage(raw)); err != nil {
			return nil, err
		}
		return ok(), nil
	case ActionGetMappings:
		m, err := h.store.Mappings(ctx)
		if err != nil {
			return nil, err
		}
		return ok("mappings", m), nil
	case ActionSetMappings:
		var req SetMappingsRequest
		if err := h.decode(raw, &req); err != nil {
			return nil, err
		}
		return h.setMappings(ctx, req)
	case ActionGetLogs:
		logs, err := h.store.Logs(ctx)
		if err != nil {
			return nil, err
		}
		return ok("logs", logs), nil
	case ActionClearLogs:
		if err := h.store.ClearLogs(ctx); err != nil {
			return nil, err
		}
		return ok(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
}

func (h *Handler) decode(raw []byte, dest any) error {
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	if err := h.validate.Struct(dest); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

func (h *Handler) structureResume(ctx context.Context, req StructureResumeRequest) (Response, error) {
	res, err := h.structurer.Structure(ctx, req.ResumeText)
	if err != nil {
		return nil, err
	}
	return ok("profile", res.Profile, "canonicalProfile", res.Canonical), nil
}

func (h *Handler) generateAnswer(ctx context.Context, req GenerateAnswerRequest) (Response, error) {
	answer, err := h.generator.GenerateAnswer(ctx, req.FieldLabel, req.Company, req.Role)
	if err != nil {
		return nil, err
	}
	return ok("answer", answer), nil
}

func (h *Handler) saveFieldAnswer(ctx context.Context, req SaveFieldAnswerRequest) (Response, error) {
	err := h.store.SaveAnswer(ctx, store.SaveRequest{
		SiteKey:    req.FieldKey,
		GenericKey: req.GenericKey,
		Value:      req.Answer,
		Related:    req.RelatedExperience,
	})
	if err != nil {
		return nil, err
	}
	return ok(), nil
}

// getFieldAnswer looks up the site answer, then the generic answer the site
// key was mapped to, then the generic answer for the supplied key. A miss is
// a successful reply with a null answer.
func (h *Handler) getFieldAnswer(ctx context.Context, req GetFieldAnswerRequest) (Response, error) {
	if v, found, err := h.store.SiteAnswer(ctx, req.FieldKey); err != nil {
		return nil, err
	} else if found && !v.IsZero() {
		return ok("answer", v), nil
	}

	if mapped, found, err := h.store.GenericKeyFor(ctx, req.FieldKey); err != nil {
		return nil, err
	} else if found {
		if v, found, err := h.store.GenericAnswer(ctx, mapped); err != nil {
			return nil, err
		} else if found && !v.IsZero() {
			return ok("answer", v), nil
		}
	}

	if req.GenericKey != "" {
		if v, found, err := h.store.GenericAnswer(ctx, req.GenericKey); err != nil {
			return nil, err
		} else if found && !v.IsZero() {
			return ok("answer", v), nil
		}
	}
	return ok("answer", nil), nil
}

func (h *Handler) setMappings(ctx context.Context, req SetMappingsRequest) (Response, error) {
	if len(req.Mappings) == 0 || string(req.Mappings) == "null" {
		return ok(), nil
	}
	if err := schemas.Validate(schemas.Mappings, req.Mappings); err != nil {
		return nil, err
	}

	var u store.MappingsUpdate
	if err := json.Unmarshal(req.Mappings, &u); err != nil {
		return nil, fmt.Errorf("invalid mappings: %w", err)
	}
	if err := h.store.SetMappings(ctx, &u); err != nil {
		return nil, err
	}
	return ok(), nil
}
