package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"questionnaire/internal/config"
	"questionnaire/internal/domain"
	"questionnaire/internal/editor"
	"questionnaire/internal/idgen"
	"questionnaire/internal/registry"
	"questionnaire/internal/secret"
	"questionnaire/internal/service"
	"questionnaire/internal/source"
)

// questionnaireSource is what the app needs from a questionnaire backend.
type questionnaireSource interface {
	domain.QuestionnaireSource
	domain.QuestionnaireLister
}

// App owns the document store and the services around it.
type App struct {
	ctx context.Context
	cfg config.Config

	Editor *service.EditorService
	Loader *service.QuestionnaireLoader
	List   *service.ListLoader
	Keymap *service.Keymap

	dir     *source.Dir
	watcher *source.Watcher

	mu      sync.Mutex
	current string // id of the questionnaire in the editor
}

// New builds the registry, store and services described by cfg. A missing
// API token is looked up in the macOS Keychain.
func New(cfg config.Config) (*App, error) {
	return NewWithSecrets(cfg, secret.NewKeychainStore())
}

// NewWithSecrets is New with an explicit credential store.
func NewWithSecrets(cfg config.Config, secrets secret.Store) (*App, error) {
	reg := registry.Default()
	if cfg.RegistryFile != "" {
		r, err := registry.LoadFile(cfg.RegistryFile)
		if err != nil {
			return nil, fmt.Errorf("load registry: %w", err)
		}
		reg = r
	}

	a := &App{cfg: cfg}

	var src questionnaireSource
	if cfg.UseAPI() {
		token := cfg.Token
		if token == "" && secrets != nil {
			t, err := secrets.Get(secret.APITokenKey(cfg.APIURL))
			if err != nil {
				log.Printf("app: token lookup: %v", err)
			}
			token = t
		}
		src = source.NewHTTPClient(cfg.APIURL, token)
	} else {
		a.dir = source.NewDir(cfg.DataDir)
		src = a.dir
	}

	store := editor.NewStore(editor.NewReducer(
		editor.WithIDFunc(idgen.New),
		editor.WithTypeChecker(reg),
	))
	a.Editor = service.NewEditorService(store, reg, idgen.New, a)
	a.Loader = service.NewQuestionnaireLoader(src, a.Editor, a)
	a.List = service.NewListLoader(src, a)
	a.Keymap = service.NewKeymap(a.Editor)
	return a, nil
}

// Emit records which questionnaire is open and logs every event.
func (a *App) Emit(ctx context.Context, event string, data any) {
	if event == service.EventQuestionnaireLoaded {
		if q, ok := data.(domain.QuestionnaireSummary); ok {
			a.mu.Lock()
			a.current = q.ID
			a.mu.Unlock()
		}
	}
	service.LogEmitter{}.Emit(ctx, event, data)
}

// Current returns the id of the questionnaire loaded last, if any.
func (a *App) Current() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Startup loads the initial questionnaire and starts the file watcher.
func (a *App) Startup(ctx context.Context) error {
	a.ctx = ctx

	if a.cfg.InitialID != "" {
		if _, err := a.Loader.Load(ctx, a.cfg.InitialID); err != nil {
			return fmt.Errorf("initial load: %w", err)
		}
	}

	if a.cfg.Watch && a.dir != nil {
		w, err := source.NewWatcher(a.dir, 0, a.onFileChanged)
		if err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		a.watcher = w
	}
	return nil
}

// Shutdown stops the watcher and waits for loads in flight.
func (a *App) Shutdown(ctx context.Context) {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.Printf("app: close watcher: %v", err)
		}
	}
	a.Loader.WaitIdle(ctx)
	a.Editor.Close()
}

// onFileChanged reloads the open questionnaire when its file is saved.
func (a *App) onFileChanged(id string) {
	if id != a.Current() {
		return
	}
	ctx := a.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := a.Loader.Load(ctx, id); err != nil && !errors.Is(err, service.ErrLoadInProgress) {
		log.Printf("app: reload %s: %v", id, err)
	}
}
