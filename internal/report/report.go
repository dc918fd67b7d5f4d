// Package report renders the static HTML findings report served by the
// review server's export endpoint and written by the report command.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"fieldlens/internal/naming"
)

// Item is one approved finding to render.
type Item struct {
	Folder      string
	Filename    string
	ImagePath   string
	Task        string
	Description string
	Importance  string
}

// Options control the rendered document.
type Options struct {
	// Title is the report heading. Empty falls back to "Inspection Report".
	Title string
	// Brand is the navbar wordmark. Empty falls back to the title.
	Brand string
	// GeneratedAt stamps the navbar. Zero uses the current time.
	GeneratedAt time.Time
}

type section struct {
	Name  string
	Items []item
}

type item struct {
	ImageURL    string
	Filename    string
	Task        string
	Description string
	Importance  string
	PillLabel   string
}

type document struct {
	Title    string
	Brand    string
	Date     string
	Sections []section
}

// Render produces the full HTML document. Items are grouped into sections by
// folder in the order given; unnamed folders render as "Uncategorized".
func Render(items []Item, opts Options) ([]byte, error) {
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "Inspection Report"
	}
	brand := strings.TrimSpace(opts.Brand)
	if brand == "" {
		brand = title
	}
	generated := opts.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	doc := document{
		Title: title,
		Brand: strings.ToUpper(brand),
		Date:  generated.Format("January 2, 2006"),
	}
	index := make(map[string]int)
	for _, it := range items {
		folder := it.Folder
		if folder == "" {
			folder = "Uncategorized"
		}
		importance := strings.ToLower(strings.TrimSpace(it.Importance))
		switch importance {
		case "high", "medium", "low":
		default:
			importance = "low"
		}
		card := item{
			ImageURL:    "/files/" + strings.TrimPrefix(it.ImagePath, "/"),
			Filename:    it.Filename,
			Task:        it.Task,
			Description: it.Description,
			Importance:  importance,
			PillLabel:   naming.DisplayTitle(importance) + " importance",
		}
		pos, ok := index[folder]
		if !ok {
			pos = len(doc.Sections)
			index[folder] = pos
			doc.Sections = append(doc.Sections, section{Name: folder})
		}
		doc.Sections[pos].Items = append(doc.Sections[pos].Items, card)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

var pageTemplate = template.Must(template.New("report").Parse(pageHTML))

const pageHTML = `<!doctype html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}}</title>
    <link href="https://fonts.googleapis.com/css2?family=Space+Grotesk:wght@400;500;600&display=swap" rel="stylesheet">
    <style>
        :root {
            --bg: #0b0d10;
            --panel: #12151b;
            --ink: #e8ecf2;
            --muted: #95a1b5;
            --accent: #d6ff7f;
            --border: #1f2633;
            --high: #f05d6c;
            --medium: #f0c35d;
            --low: #53c7a1;
        }
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body { font-family: 'Space Grotesk', system-ui, sans-serif; background: var(--bg); color: var(--ink); line-height: 1.6; }
        .navbar { display: flex; justify-content: space-between; align-items: center; padding: 24px 40px; border-bottom: 1px solid var(--border); position: sticky; top: 0; background: rgba(11, 13, 16, 0.96); backdrop-filter: blur(8px); z-index: 10; }
        .brand { letter-spacing: 6px; font-weight: 600; font-size: 1rem; }
        .meta { color: var(--muted); border: 1px solid var(--border); padding: 8px 14px; border-radius: 30px; font-size: 0.9rem; }
        .container { max-width: 1200px; margin: 0 auto; padding: 60px 24px 120px; }
        h1 { font-weight: 600; font-size: 2.8rem; margin-bottom: 14px; }
        p.lede { color: var(--muted); margin-bottom: 40px; }
        .section { margin-top: 60px; }
        .section h2 { font-size: 1.4rem; font-weight: 600; margin-bottom: 18px; }
        .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(320px, 1fr)); gap: 26px; }
        .card { background: var(--panel); border: 1px solid var(--border); border-radius: 14px; overflow: hidden; display: flex; flex-direction: column; min-height: 100%; }
        .card img { width: 100%; aspect-ratio: 3/2; object-fit: cover; background: #0f1218; }
        .card-body { padding: 18px; display: flex; flex-direction: column; gap: 12px; }
        .pill { display: inline-flex; align-items: center; gap: 8px; padding: 8px 12px; border-radius: 999px; font-size: 0.85rem; font-weight: 600; background: rgba(255,255,255,0.05); border: 1px solid var(--border); }
        .pill.high { color: var(--high); border-color: rgba(240,93,108,0.5); }
        .pill.medium { color: var(--medium); border-color: rgba(240,195,93,0.4); }
        .pill.low { color: var(--low); border-color: rgba(83,199,161,0.4); }
        .desc { color: var(--ink); opacity: 0.9; }
        .task-box { background: rgba(255,255,255,0.04); border: 1px dashed var(--border); border-radius: 10px; padding: 12px; }
        .task-label { font-size: 0.8rem; color: var(--muted); letter-spacing: 1px; text-transform: uppercase; margin-bottom: 6px; display: block; }
        .task-text { font-weight: 600; }
    </style>
</head>
<body>
    <div class="navbar">
        <div class="brand">{{.Brand}}</div>
        <div class="meta">{{.Date}}</div>
    </div>
    <div class="container">
        <h1>{{.Title}}</h1>
        <p class="lede">Curated findings from the latest walkthrough. Items shown here reflect the current approved set in the dashboard.</p>
{{- range .Sections}}
        <section class="section">
            <h2>{{.Name}}</h2>
            <div class="grid">
{{- range .Items}}
                <article class="card">
                    <img src="{{.ImageURL}}" alt="{{.Filename}}">
                    <div class="card-body">
                        <span class="pill {{.Importance}}">{{.PillLabel}}</span>
                        <div class="desc">{{.Description}}</div>
{{- if .Task}}
                        <div class="task-box"><span class="task-label">Recommended Action</span><div class="task-text">{{.Task}}</div></div>
{{- end}}
                    </div>
                </article>
{{- end}}
            </div>
        </section>
{{- end}}
    </div>
</body>
</html>
`
