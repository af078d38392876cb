package template

import "io"

// TemplateRenderer is the seam the HTML renderer relies on so template
// engines stay swappable. Render dispatches on its argument, treating
// inline template content and template paths uniformly.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}
