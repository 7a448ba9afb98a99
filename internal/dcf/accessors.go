package dcf

import "strings"

// Required fields for a publishable package.
var RequiredFields = []string{"Package", "Version", "Title", "Description", "License"}

func (r *Record) Package() string     { return r.Value("Package") }
func (r *Record) Version() string     { return r.Value("Version") }
func (r *Record) Title() string       { return r.Value("Title") }
func (r *Record) Description() string { return r.Value("Description") }
func (r *Record) License() string     { return r.Value("License") }

// MissingRequired returns the names of required fields that are absent or
// empty, in catalog order.
func (r *Record) MissingRequired() []string {
	var missing []string
	for _, name := range RequiredFields {
		if strings.TrimSpace(r.Value(name)) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// URLs returns the declared project URLs from the URL and BugReports fields.
// The URL field may carry several comma- or whitespace-separated entries.
func (r *Record) URLs() []string {
	var urls []string
	for _, field := range []string{"URL", "BugReports"} {
		value := r.Value(field)
		if value == "" {
			continue
		}
		for _, part := range strings.FieldsFunc(value, func(c rune) bool {
			return c == ',' || c == ' ' || c == '\n' || c == '\t'
		}) {
			part = strings.TrimSpace(part)
			if strings.HasPrefix(part, "http://") || strings.HasPrefix(part, "https://") {
				urls = append(urls, part)
			}
		}
	}
	return urls
}
