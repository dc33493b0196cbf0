package domain

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by sources when no questionnaire has the requested id.
	ErrNotFound = errors.New("questionnaire not found")
	// ErrInvalidDocument is returned when a fetched questionnaire fails shape validation.
	ErrInvalidDocument = errors.New("invalid questionnaire document")
)

// Questionnaire is the persisted representation returned by the fetch service.
type Questionnaire struct {
	ID            string              `json:"id" yaml:"id"`
	Title         string              `json:"title" yaml:"title"`
	Desc          string              `json:"desc,omitempty" yaml:"desc,omitempty"`
	JS            string              `json:"js,omitempty" yaml:"js,omitempty"`
	CSS           string              `json:"css,omitempty" yaml:"css,omitempty"`
	IsPublished   bool                `json:"isPublished" yaml:"isPublished"`
	IsStar        bool                `json:"isStar" yaml:"isStar"`
	IsDeleted     bool                `json:"isDeleted" yaml:"isDeleted"`
	AnswerCount   int                 `json:"answerCount" yaml:"answerCount"`
	CreatedAt     string              `json:"createdAt" yaml:"createdAt"`
	ComponentList []ComponentInstance `json:"componentList" yaml:"componentList"`
}

// Summary drops the component list, leaving the list-card fields.
func (q Questionnaire) Summary() QuestionnaireSummary {
	return QuestionnaireSummary{
		ID:          q.ID,
		Title:       q.Title,
		IsPublished: q.IsPublished,
		IsStar:      q.IsStar,
		IsDeleted:   q.IsDeleted,
		AnswerCount: q.AnswerCount,
		CreatedAt:   q.CreatedAt,
	}
}

// QuestionnaireSummary is one entry of the "my questionnaires" list.
type QuestionnaireSummary struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	IsPublished bool   `json:"isPublished"`
	IsStar      bool   `json:"isStar"`
	IsDeleted   bool   `json:"isDeleted"`
	AnswerCount int    `json:"answerCount"`
	CreatedAt   string `json:"createdAt"`
}

// ListQuery filters and pages the questionnaire list.
type ListQuery struct {
	Keyword   string
	IsStar    bool
	IsDeleted bool
	Page      int
	PageSize  int
}

// ListResult is one page of the questionnaire list.
type ListResult struct {
	List  []QuestionnaireSummary `json:"list"`
	Total int                    `json:"total"`
}

// QuestionnaireSource fetches a persisted questionnaire by id.
type QuestionnaireSource interface {
	GetQuestionnaire(ctx context.Context, id string) (*Questionnaire, error)
}

// QuestionnaireLister pages through saved questionnaires.
type QuestionnaireLister interface {
	ListQuestionnaires(ctx context.Context, q ListQuery) (*ListResult, error)
}
