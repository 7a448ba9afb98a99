package netcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packlint/packlint/internal/findings"
	"github.com/packlint/packlint/internal/parse"
	"github.com/packlint/packlint/internal/rules"
	"github.com/packlint/packlint/internal/walker"
)

func urlRule() rules.Rule {
	return rules.Rule{ID: "PL-NET001", Severity: findings.SeverityWarning}
}

func metadataWithURL(url string) *parse.File {
	raw := "Package: widgets\nURL: " + url + "\n"
	return parse.FromBytes("DESCRIPTION", walker.RoleMetadata, []byte(raw))
}

func TestCheckReachableURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	checker := New(resty.New(), hclog.NewNullLogger(), urlRule())
	out := checker.Check(context.Background(), metadataWithURL(server.URL))
	assert.Empty(t, out)
}

func TestCheckDeadURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	checker := New(resty.New(), hclog.NewNullLogger(), urlRule())
	out := checker.Check(context.Background(), metadataWithURL(server.URL))

	require.Len(t, out, 1)
	assert.Equal(t, findings.SeverityWarning, out[0].Severity)
	assert.Contains(t, out[0].Message, "404")
	assert.Equal(t, 2, out[0].Line)
}

func TestCheckTransportFailureIsSkipped(t *testing.T) {
	checker := New(resty.New(), hclog.NewNullLogger(), urlRule())
	out := checker.Check(context.Background(), metadataWithURL("http://127.0.0.1:1/nothing"))

	require.Len(t, out, 1)
	assert.Equal(t, findings.SeverityNote, out[0].Severity)
	assert.Contains(t, out[0].Message, "skipped")
}

func TestCheckExpiredContextSkipsAll(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	raw := "Package: widgets\nURL: https://example.org/a, https://example.org/b\n"
	f := parse.FromBytes("DESCRIPTION", walker.RoleMetadata, []byte(raw))

	checker := New(resty.New(), hclog.NewNullLogger(), urlRule())
	out := checker.Check(ctx, f)

	require.Len(t, out, 2)
	for _, finding := range out {
		assert.Equal(t, findings.SeverityNote, finding.Severity)
		assert.Contains(t, finding.Message, "skipped")
	}
}

func TestCheckNoMetadata(t *testing.T) {
	f := parse.FromBytes("R/a.R", walker.RoleSource, []byte("x <- 1\n"))
	checker := New(resty.New(), hclog.NewNullLogger(), urlRule())
	assert.Empty(t, checker.Check(context.Background(), f))
}
