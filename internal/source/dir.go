package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"questionnaire/internal/domain"
)

// extensions are tried in order when resolving an id to a file.
var extensions = []string{".json", ".yaml", ".yml"}

// Dir serves questionnaires from <root>/<id>.json, .yaml or .yml. It never
// writes to disk.
type Dir struct {
	root string
}

// NewDir creates a directory source rooted at root.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Root returns the directory being served.
func (d *Dir) Root() string {
	return d.root
}

// Path resolves id to the file holding it.
func (d *Dir) Path(id string) (string, error) {
	if !validID(id) {
		return "", fmt.Errorf("%w: invalid id %q", domain.ErrNotFound, id)
	}
	for _, ext := range extensions {
		p := filepath.Join(d.root, id+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrNotFound, id)
}

// IDFromPath returns the questionnaire id a file in the directory stands for.
func (d *Dir) IDFromPath(path string) (string, bool) {
	ext := filepath.Ext(path)
	if !isQuestionnaireExt(ext) {
		return "", false
	}
	if filepath.Clean(filepath.Dir(path)) != filepath.Clean(d.root) {
		return "", false
	}
	return strings.TrimSuffix(filepath.Base(path), ext), true
}

// GetQuestionnaire reads and decodes the file for id.
func (d *Dir) GetQuestionnaire(_ context.Context, id string) (*domain.Questionnaire, error) {
	p, err := d.Path(id)
	if err != nil {
		return nil, err
	}
	q, err := readQuestionnaire(p)
	if err != nil {
		return nil, err
	}
	if q.ID == "" {
		q.ID = id
	}
	return q, nil
}

// ListQuestionnaires lists the directory, filtered and paged like the API.
// Questionnaires are matched on IsDeleted exactly, on IsStar only when the
// query asks for starred ones, and on a case-insensitive title keyword.
func (d *Dir) ListQuestionnaires(_ context.Context, q domain.ListQuery) (*domain.ListResult, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &domain.ListResult{List: []domain.QuestionnaireSummary{}}, nil
		}
		return nil, fmt.Errorf("read questionnaire dir: %w", err)
	}

	keyword := strings.ToLower(q.Keyword)
	var matched []domain.QuestionnaireSummary
	for _, e := range entries {
		if e.IsDir() || !isQuestionnaireExt(filepath.Ext(e.Name())) {
			continue
		}
		p := filepath.Join(d.root, e.Name())
		doc, err := readQuestionnaire(p)
		if err != nil {
			log.Printf("source: skipping %s: %v", p, err)
			continue
		}
		if doc.ID == "" {
			doc.ID = strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		}
		if doc.IsDeleted != q.IsDeleted {
			continue
		}
		if q.IsStar && !doc.IsStar {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(doc.Title), keyword) {
			continue
		}
		matched = append(matched, doc.Summary())
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	res := &domain.ListResult{Total: len(matched), List: []domain.QuestionnaireSummary{}}
	page, size := q.Page, q.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = len(matched)
	}
	start := (page - 1) * size
	if start >= len(matched) {
		return res, nil
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	res.List = append(res.List, matched[start:end]...)
	return res, nil
}

func readQuestionnaire(path string) (*domain.Questionnaire, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var q domain.Questionnaire
	switch filepath.Ext(path) {
	case ".json":
		err = json.Unmarshal(data, &q)
	default:
		err = yaml.Unmarshal(data, &q)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrInvalidDocument, path, err)
	}
	return &q, nil
}

func isQuestionnaireExt(ext string) bool {
	for _, e := range extensions {
		if e == ext {
			return true
		}
	}
	return false
}

func validID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}
