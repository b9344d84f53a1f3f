package core

import "testing"

func TestResultStatus(t *testing.T) {
	tests := []struct {
		name     string
		findings []Finding
		want     Status
	}{
		{"empty", nil, StatusPass},
		{"info only", []Finding{{Severity: SeverityInfo}}, StatusPass},
		{"medium", []Finding{{Severity: SeverityMedium}}, StatusWarn},
		{"high", []Finding{{Severity: SeverityHigh}}, StatusWarn},
		{"high and medium", []Finding{{Severity: SeverityHigh}, {Severity: SeverityMedium}}, StatusWarn},
		{"critical", []Finding{{Severity: SeverityCritical}}, StatusFail},
		{"critical beats warn", []Finding{{Severity: SeverityHigh}, {Severity: SeverityCritical}}, StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Result{Path: "x.md", Findings: tt.findings}
			if got := r.Status(); got != tt.want {
				t.Errorf("Status() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResultCounts(t *testing.T) {
	r := Result{Findings: []Finding{
		{Severity: SeverityCritical},
		{Severity: SeverityCritical},
		{Severity: SeverityHigh},
		{Severity: SeverityMedium},
		{Severity: SeverityInfo},
	}}

	c := r.Counts()
	if c.Critical != 2 || c.High != 1 || c.Medium != 1 || c.Info != 1 {
		t.Errorf("unexpected counts: %+v", c)
	}
	if c.Total() != 5 {
		t.Errorf("Total() = %d, want 5", c.Total())
	}
}

func TestSummarizeSortsAndPartitions(t *testing.T) {
	results := []Result{
		{Path: "c.md", Findings: []Finding{{Severity: SeverityCritical}}},
		{Path: "a.md"},
		{Path: "b.md", Findings: []Finding{{Severity: SeverityMedium}}},
	}

	s := Summarize(results)

	if s.TotalFiles != 3 || s.Clean != 1 || s.WarningsOnly != 1 || s.Failed != 1 {
		t.Errorf("unexpected summary: %+v", s)
	}
	// Aggregation law: partitions cover the batch exactly.
	if s.Clean+s.WarningsOnly+s.Failed != s.TotalFiles {
		t.Errorf("partition law violated: %+v", s)
	}
	for i, want := range []string{"a.md", "b.md", "c.md"} {
		if s.Results[i].Path != want {
			t.Errorf("Results[%d].Path = %q, want %q", i, s.Results[i].Path, want)
		}
	}
	if s.Status() != StatusFail {
		t.Errorf("Status() = %v, want FAIL", s.Status())
	}
}

func TestParseSeverity(t *testing.T) {
	for in, want := range map[string]Severity{
		"critical": SeverityCritical,
		"HIGH":     SeverityHigh,
		" medium ": SeverityMedium,
		"Info":     SeverityInfo,
	} {
		got, ok := ParseSeverity(in)
		if !ok || got != want {
			t.Errorf("ParseSeverity(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := ParseSeverity("fatal"); ok {
		t.Error("expected ParseSeverity to reject unknown severity")
	}
}
