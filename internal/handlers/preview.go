package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghhtml "github.com/yuin/goldmark/renderer/html"

	"inkwell/internal/contextutil"
	"inkwell/internal/journal"
)

// PreviewHandler renders an entry's markdown content as an HTML page.
type PreviewHandler struct {
	store    *journal.Store
	parser   goldmark.Markdown
	template *template.Template
}

// previewPageData holds template data for rendered entry pages.
type previewPageData struct {
	Title     string
	CreatedAt string
	Tags      []string
	Content   template.HTML
}

// NewPreviewHandler creates a new handler for rendering entry previews.
func NewPreviewHandler(store *journal.Store) *PreviewHandler {
	tmpl := template.Must(template.New("entry").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 760px;
      line-height: 1.7;
      color: #1e293b;
    }
    header {
      margin-bottom: 2rem;
      border-bottom: 1px solid #e2e8f0;
      padding-bottom: 1rem;
    }
    h1 {
      margin-top: 0;
      font-size: 1.8rem;
    }
    .meta {
      color: #64748b;
      font-size: 0.9rem;
    }
    .tag {
      display: inline-block;
      background: #eff6ff;
      color: #1d4ed8;
      border-radius: 9999px;
      padding: 1px 10px;
      font-size: 0.8rem;
      margin-right: 4px;
    }
    pre {
      background: #f1f5f9;
      padding: 1rem;
      overflow-x: auto;
      border-radius: 8px;
    }
    blockquote {
      border-left: 4px solid #93c5fd;
      padding-left: 1rem;
      margin-left: 0;
      color: #475569;
    }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <p class="meta">{{.CreatedAt}}</p>
    {{range .Tags}}<span class="tag">{{.}}</span>{{end}}
  </header>
  <article>{{.Content}}</article>
</body>
</html>`))

	return &PreviewHandler{
		store: store,
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Table,
				extension.TaskList,
				extension.Strikethrough,
				extension.Linkify,
				extension.Typographer,
			),
			goldmark.WithRendererOptions(
				ghhtml.WithUnsafe(),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		template: tmpl,
	}
}

// ServeHTTP renders the requested entry as HTML.
func (h *PreviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id := chi.URLParam(r, "id")
	entry, ok := h.store.Entry(id)
	if !ok {
		writeError(w, http.StatusNotFound, "entry not found")
		return
	}

	htmlContent, err := h.renderMarkdown([]byte(entry.Content))
	if err != nil {
		logger.ErrorContext(ctx, "failed to render entry markdown", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render entry")
		return
	}

	title := entry.Title
	if title == "" {
		title = "Untitled"
	}

	pageData := previewPageData{
		Title:     title,
		CreatedAt: entry.CreatedAt.Format("January 2, 2006"),
		Tags:      entry.Tags,
		Content:   template.HTML(htmlContent),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, pageData); err != nil {
		logger.ErrorContext(ctx, "failed to execute preview template", "id", id, "error", err)
	}
}

func (h *PreviewHandler) renderMarkdown(content []byte) (string, error) {
	var buf bytes.Buffer
	if err := h.parser.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
