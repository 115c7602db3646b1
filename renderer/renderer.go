// Package renderer renders fundsim reports as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// RenderMetrics renders the metrics table of an analysis.
func RenderMetrics(r *MetricsReport) string {
	partials := map[string]string{
		"metrics_table":    "metrics_table.md",
		"metrics_excluded": "metrics_excluded.md",
	}
	return renderTemplate("metrics", "metrics.md", partials, r)
}

// RenderAllocation renders the funds and weights of an allocation.
func RenderAllocation(r *AllocationReport) string {
	partials := map[string]string{
		"allocation_title":   "allocation_title.md",
		"allocation_weights": "allocation_weights.md",
	}
	return renderTemplate("allocation", "allocation.md", partials, r)
}

// RenderProjection renders the year by year value of an investment.
func RenderProjection(r *ProjectionReport) string {
	partials := map[string]string{
		"projection_title": "projection_title.md",
		"projection_table": "projection_table.md",
	}
	return renderTemplate("projection", "projection.md", partials, r)
}

// RenderProfile renders a questionnaire outcome.
func RenderProfile(r *ProfileReport) string {
	partials := map[string]string{
		"profile_answers": "profile_answers.md",
	}
	return renderTemplate("profile", "profile.md", partials, r)
}

// RenderCatalog renders the list of funds.
func RenderCatalog(r *CatalogReport) string {
	return renderTemplate("catalog", "catalog.md", nil, r)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

var funcs = template.FuncMap{
	// cell escapes the pipes of a markdown table cell.
	"cell": func(s string) string { return strings.ReplaceAll(s, "|", `\|`) },
	"add":  func(a, b int) int { return a + b },
}
