package check

import (
	stderrors "errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packlint/packlint/internal/findings"
	"github.com/packlint/packlint/internal/report"
	"github.com/packlint/packlint/pkg/shared/config"
	apperrors "github.com/packlint/packlint/pkg/shared/errors"
)

func TestValidateCheckArgsDefaults(t *testing.T) {
	root := t.TempDir()
	opts := RunOptionsCheck{Format: "text"}

	settings, err := validateCheckArgs(&opts, []string{root}, nil)
	require.NoError(t, err)

	assert.Equal(t, root, settings.Root)
	assert.Equal(t, findings.SeverityNote, settings.MinSeverity)
	assert.Equal(t, findings.SeverityError, settings.FailSeverity)
	assert.Equal(t, report.FormatText, settings.Format)
	assert.Equal(t, 0, settings.Workers)
	assert.False(t, settings.Network)
}

func TestValidateCheckArgsFlagBeatsConfig(t *testing.T) {
	root := t.TempDir()
	cfg := &config.Config{Checker: config.Checker{
		MinSeverity:  "warning",
		FailSeverity: "note",
		Workers:      4,
		Exclude:      []string{"data/**"},
	}}
	opts := RunOptionsCheck{
		MinSeverity: "error",
		Format:      "json",
		Exclude:     []string{"inst/**"},
	}

	settings, err := validateCheckArgs(&opts, []string{root}, cfg)
	require.NoError(t, err)

	// Flag wins; config fills what the flags left empty.
	assert.Equal(t, findings.SeverityError, settings.MinSeverity)
	assert.Equal(t, findings.SeverityNote, settings.FailSeverity)
	assert.Equal(t, 4, settings.Workers)
	assert.Equal(t, []string{"data/**", "inst/**"}, settings.Excludes)
}

func TestValidateCheckArgsMissingRoot(t *testing.T) {
	opts := RunOptionsCheck{Format: "text"}
	_, err := validateCheckArgs(&opts, []string{filepath.Join(t.TempDir(), "absent")}, nil)

	var usageErr *apperrors.UsageError
	require.True(t, stderrors.As(err, &usageErr))
	assert.Equal(t, 2, usageErr.ExitCode)
}

func TestValidateCheckArgsRejectsBadInput(t *testing.T) {
	root := t.TempDir()

	for name, opts := range map[string]RunOptionsCheck{
		"unknown format":   {Format: "xml"},
		"unknown severity": {Format: "text", MinSeverity: "fatal"},
		"negative threads": {Format: "text", Threads: -1},
	} {
		opts := opts
		_, err := validateCheckArgs(&opts, []string{root}, nil)
		var usageErr *apperrors.UsageError
		assert.True(t, stderrors.As(err, &usageErr), name)
	}

	_, err := validateCheckArgs(&RunOptionsCheck{Format: "text"}, []string{root, root}, nil)
	var usageErr *apperrors.UsageError
	assert.True(t, stderrors.As(err, &usageErr))
}
