package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"eventpay/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// Each email is three files under templates/: <name>_subject.txt, <name>.txt and <name>.html.
const (
	subjectSuffix = "_subject.txt"
	textSuffix    = ".txt"
	htmlSuffix    = ".html"
)

var templateFuncs = map[string]any{
	// money renders an amount in major units with two decimals.
	"money": func(amount float64) string { return fmt.Sprintf("%.2f", amount) },
}

// templateRenderer implements domain.EmailTemplateRenderer over templates parsed once at startup.
type templateRenderer struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

// NewTemplateRenderer parses every embedded template. It panics if one does not parse, which
// can only happen when the binary was built with a broken template.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{
		text: texttemplate.Must(texttemplate.New("text").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.txt")),
		html: htmltemplate.Must(htmltemplate.New("html").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")),
	}
}

// Render executes the named email (e.g. "payment_confirmed") with data and returns subject, html, and text bodies.
func (r *templateRenderer) Render(name string, data any) (subject, htmlBody, textBody string, err error) {
	if r.text.Lookup(name+subjectSuffix) == nil || r.text.Lookup(name+textSuffix) == nil || r.html.Lookup(name+htmlSuffix) == nil {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}

	var buf bytes.Buffer
	if err := r.text.ExecuteTemplate(&buf, name+subjectSuffix, data); err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	// Subjects are a single header line.
	subject = strings.Join(strings.Fields(buf.String()), " ")

	buf.Reset()
	if err := r.html.ExecuteTemplate(&buf, name+htmlSuffix, data); err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	htmlBody = buf.String()

	buf.Reset()
	if err := r.text.ExecuteTemplate(&buf, name+textSuffix, data); err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	textBody = buf.String()

	return subject, htmlBody, textBody, nil
}
