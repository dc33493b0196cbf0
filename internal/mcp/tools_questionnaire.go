package mcpserver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"questionnaire/internal/domain"
	"questionnaire/internal/service"

	"github.com/dustin/go-humanize"
	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerQuestionnaireTools() {
	// ── load_questionnaire ─────────────────────────────
	s.mcp.AddTool(mcp.NewTool("load_questionnaire",
		mcp.WithDescription("Load a saved questionnaire into the editor, replacing the current document. The first component is selected."),
		mcp.WithString("id", mcp.Description("Questionnaire id"), mcp.Required()),
	), s.handleLoadQuestionnaire)

	// ── list_questionnaires ────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_questionnaires",
		mcp.WithDescription("List saved questionnaires, 10 per page. Call again with more=true to append the next page."),
		mcp.WithString("keyword", mcp.Description("Title keyword filter (optional)")),
		mcp.WithBoolean("isStar", mcp.Description("Only starred questionnaires (optional)")),
		mcp.WithBoolean("isDeleted", mcp.Description("List the trash instead (optional)")),
		mcp.WithBoolean("more", mcp.Description("Append the next page to the previous listing instead of starting over")),
	), s.handleListQuestionnaires)
}

func (s *Server) handleLoadQuestionnaire(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.loader == nil {
		return nil, fmt.Errorf("no questionnaire source configured")
	}
	id, err := requireString(req.GetArguments(), "id")
	if err != nil {
		return nil, err
	}
	q, err := s.loader.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return jsonResult(map[string]any{
		"questionnaire": q.Summary(),
		"document":      service.ViewOf(service.BootstrapState(q)),
	})
}

func (s *Server) handleListQuestionnaires(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.list == nil {
		return nil, fmt.Errorf("no questionnaire source configured")
	}
	args := req.GetArguments()
	if !getBool(args, "more", false) {
		s.list.SetFilter(service.ListFilter{
			Keyword:   getString(args, "keyword", ""),
			IsStar:    getBool(args, "isStar", false),
			IsDeleted: getBool(args, "isDeleted", false),
		})
	}
	st, err := s.list.LoadMore(ctx)
	if err != nil {
		return nil, err
	}
	return textResult(formatList(st, time.Now())), nil
}

// formatList renders the accumulated list one questionnaire per line.
func formatList(st service.ListState, now time.Time) string {
	if len(st.Items) == 0 {
		return "No questionnaires found"
	}
	var b strings.Builder
	for _, q := range st.Items {
		fmt.Fprintf(&b, "- %s  %q", q.ID, q.Title)
		var tags []string
		if q.IsStar {
			tags = append(tags, "starred")
		}
		if q.IsPublished {
			tags = append(tags, "published")
		} else {
			tags = append(tags, "draft")
		}
		if q.IsDeleted {
			tags = append(tags, "deleted")
		}
		tags = append(tags, fmt.Sprintf("%s answer(s)", humanize.Comma(int64(q.AnswerCount))))
		if created := createdLabel(q, now); created != "" {
			tags = append(tags, "created "+created)
		}
		fmt.Fprintf(&b, "  [%s]\n", strings.Join(tags, ", "))
	}
	fmt.Fprintf(&b, "\nShowing %d of %d", len(st.Items), st.Total)
	if st.HasMore {
		b.WriteString(" (more available, call again with more=true)")
	}
	return b.String()
}

func createdLabel(q domain.QuestionnaireSummary, now time.Time) string {
	if q.CreatedAt == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, q.CreatedAt)
	if err != nil {
		return q.CreatedAt
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
