package web

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"stars": func(n int) string { return strings.Repeat("★", n) },
}

// Templates parses the embedded page set for gin's SetHTMLTemplate.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
}

type Highlight struct {
	Title       string
	Description string
	Price       string
}

type Testimonial struct {
	Name   string
	Rating int
	Text   string
}

var SignatureServices = []Highlight{
	{"Precision Cuts", "Expert haircuts tailored to your face shape and lifestyle", "From $65"},
	{"Color Services", "Professional coloring, highlights, and color correction", "From $120"},
	{"Styling & Treatments", "Special occasion styling and nourishing hair treatments", "From $45"},
}

var Testimonials = []Testimonial{
	{"Sarah Johnson", 5, "Julio transformed my hair completely! The attention to detail and expertise is unmatched."},
	{"Maria Rodriguez", 5, "Best salon experience ever. The team is professional and the results are always perfect."},
	{"Emily Chen", 5, "I've been coming here for years. Consistently excellent service and beautiful results."},
}
