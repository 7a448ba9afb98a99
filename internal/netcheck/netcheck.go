// Package netcheck implements the opt-in network-backed checks: reachability
// of the URLs a package declares in its metadata. Checks are failure
// tolerant by contract: a timeout or transport error downgrades the check to
// a skipped note finding and never fails the run.
package netcheck

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/packlint/packlint/internal/dcf"
	"github.com/packlint/packlint/internal/findings"
	"github.com/packlint/packlint/internal/parse"
	"github.com/packlint/packlint/internal/rules"
)

// Checker probes declared URLs. The rule supplies id, severity, and prose
// from the catalog.
type Checker struct {
	client *resty.Client
	logger hclog.Logger
	rule   rules.Rule
}

// New creates a Checker using the shared resty client.
func New(client *resty.Client, logger hclog.Logger, rule rules.Rule) *Checker {
	return &Checker{client: client, logger: logger, rule: rule}
}

// Check probes every URL declared in the file's metadata. The passed context
// bounds the whole batch; once it expires the remaining URLs are reported as
// skipped without touching the network again.
func (c *Checker) Check(ctx context.Context, f *parse.File) []findings.Finding {
	if f.Metadata == nil {
		return nil
	}

	var out []findings.Finding
	for _, url := range f.Metadata.URLs() {
		line, offset := c.locate(f.Metadata, url)

		if ctx.Err() != nil {
			out = append(out, findings.New(c.rule.ID, findings.SeverityNote, f.RelPath, line, offset,
				fmt.Sprintf("check skipped for %s: %v", url, ctx.Err())))
			continue
		}

		resp, err := c.client.R().SetContext(ctx).Head(url)
		switch {
		case err != nil:
			c.logger.Debug("url check failed", "url", url, "error", err)
			out = append(out, findings.New(c.rule.ID, findings.SeverityNote, f.RelPath, line, offset,
				fmt.Sprintf("check skipped for %s: %v", url, err)))
		case resp.StatusCode() >= http.StatusBadRequest:
			out = append(out, findings.New(c.rule.ID, c.rule.Severity, f.RelPath, line, offset,
				fmt.Sprintf("%s answered %d", url, resp.StatusCode())))
		}
	}
	return out
}

// locate finds the metadata field that declared the URL, for line reporting.
func (c *Checker) locate(record *dcf.Record, url string) (line, offset int) {
	for _, name := range []string{"URL", "BugReports"} {
		if field, ok := record.Get(name); ok && strings.Contains(field.Value, url) {
			return field.Line, field.Offset
		}
	}
	return 1, 0
}
