package rules

// builtinChecks joins catalog ids to predicates. Load verifies the two stay
// in sync in both directions.
var builtinChecks = map[string]CheckFunc{
	"PL-META001": checkRequiredFields,
	"PL-META002": checkTitleFormat,
	"PL-META003": checkDescriptionQuality,
	"PL-META004": checkDuplicateFields,
	"PL-META005": checkMetadataStructure,
	"PL-NS001":   checkExportPattern,
	"PL-NS002":   checkWholeImports,
	"PL-NS003":   checkRawDirectives,
	"PL-NS004":   checkDynLibRegistration,
	"PL-SRC001":  checkConsoleOutput,
	"PL-SRC002":  checkGlobalAssignment,
	"PL-SRC003":  checkLibraryCalls,
	"PL-SRC004":  checkAttach,
	"PL-SRC005":  checkDebugLeftovers,
	"PL-RD001":   checkItemPlacement,
	"PL-RD002":   checkBraceBalance,
	"PL-RD003":   checkValueSection,
	"PL-RD004":   checkExamples,
	"PL-RD005":   checkDocTitle,
	"PL-MAN001":  checkVersionMonotonicity,
	"PL-MAN002":  checkTestContinuity,
}
