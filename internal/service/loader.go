package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"questionnaire/internal/domain"
	"questionnaire/internal/editor"
)

var (
	// ErrMissingID is returned when Load is called without a questionnaire id.
	ErrMissingID = errors.New("missing questionnaire id")
	// ErrLoadInProgress is returned when the same questionnaire is already loading.
	ErrLoadInProgress = errors.New("questionnaire load already in progress")
	// ErrNoID is returned when no component id could be generated.
	ErrNoID = errors.New("could not generate component id")
)

// ─────────────────────────────────────────────────────────────
// Questionnaire Loader: bootstraps the editor from a fetched document
// ─────────────────────────────────────────────────────────────

// QuestionnaireLoader fetches a persisted questionnaire, validates its shape
// and resets the editor with it. A failed load leaves the document untouched.
type QuestionnaireLoader struct {
	source   domain.QuestionnaireSource
	editor   *EditorService
	emitter  EventEmitter
	inflight inflightGuard
}

// NewQuestionnaireLoader creates a QuestionnaireLoader.
func NewQuestionnaireLoader(source domain.QuestionnaireSource, ed *EditorService, emitter EventEmitter) *QuestionnaireLoader {
	if emitter == nil {
		emitter = NoopEmitter{}
	}
	return &QuestionnaireLoader{source: source, editor: ed, emitter: emitter}
}

// Load fetches questionnaire id and resets the editor with its components.
func (l *QuestionnaireLoader) Load(ctx context.Context, id string) (*domain.Questionnaire, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	if !l.inflight.TryLock(id) {
		return nil, fmt.Errorf("load %s: %w", id, ErrLoadInProgress)
	}
	defer l.inflight.Unlock(id)

	q, err := l.source.GetQuestionnaire(ctx, id)
	if err != nil {
		l.fail(ctx, id, err)
		return nil, fmt.Errorf("load %s: %w", id, err)
	}
	if err := ValidateQuestionnaire(q, l.editor.Registry()); err != nil {
		l.fail(ctx, id, err)
		return nil, fmt.Errorf("load %s: %w", id, err)
	}

	l.editor.Dispatch(ctx, editor.Reset{State: BootstrapState(q)})
	log.Printf("loader: questionnaire %s loaded with %d component(s)", id, len(q.ComponentList))
	l.emitter.Emit(ctx, EventQuestionnaireLoaded, q.Summary())
	return q, nil
}

// WaitIdle blocks until in-flight loads finish or ctx is cancelled.
func (l *QuestionnaireLoader) WaitIdle(ctx context.Context) {
	l.inflight.WaitAll(ctx)
}

func (l *QuestionnaireLoader) fail(ctx context.Context, id string, err error) {
	log.Printf("loader: questionnaire %s: %v", id, err)
	l.emitter.Emit(ctx, EventQuestionnaireFailed, map[string]string{"id": id, "error": err.Error()})
}

// BootstrapState builds the initial document: the fetched components, the
// first one selected, and an empty clipboard.
func BootstrapState(q *domain.Questionnaire) domain.DocumentState {
	list := make([]domain.ComponentInstance, len(q.ComponentList))
	for i, c := range q.ComponentList {
		list[i] = c.Clone()
	}
	selected := ""
	if len(list) > 0 {
		selected = list[0].ID
	}
	return domain.DocumentState{SelectedID: selected, ComponentList: list}
}

// TypeRegistry is the registry view ValidateQuestionnaire needs.
type TypeRegistry interface {
	Known(t domain.ComponentType) bool
}

// ValidateQuestionnaire rejects documents the editor cannot safely hold:
// missing or duplicate component ids, and types the registry does not know.
func ValidateQuestionnaire(q *domain.Questionnaire, types TypeRegistry) error {
	if q == nil {
		return fmt.Errorf("%w: empty response", domain.ErrInvalidDocument)
	}
	seen := make(map[string]struct{}, len(q.ComponentList))
	for i, c := range q.ComponentList {
		if c.ID == "" {
			return fmt.Errorf("%w: component %d has no fe_id", domain.ErrInvalidDocument, i)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w: duplicate fe_id %q", domain.ErrInvalidDocument, c.ID)
		}
		seen[c.ID] = struct{}{}
		if c.Type == "" {
			return fmt.Errorf("%w: component %q has no type", domain.ErrInvalidDocument, c.ID)
		}
		if types != nil && !types.Known(c.Type) {
			return fmt.Errorf("%w: component %q has unknown type %q", domain.ErrInvalidDocument, c.ID, c.Type)
		}
	}
	return nil
}
