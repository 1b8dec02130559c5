package report

import (
	"strings"
	"testing"

	"auditdesk/internal/testutil"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"pass", StatusPass},
		{"Pass", StatusPass},
		{"OK", StatusPass},
		{"yes", StatusPass},
		{"fail", StatusFail},
		{"FAIL", StatusFail},
		{"no", StatusFail},
		{"na", StatusNA},
		{"N-A", StatusNA},
		{"n/a", StatusNA},
		{"", StatusUnknown},
		{"   ", StatusUnknown},
		{"partial", "PARTIAL"},
		{"Deferred", "DEFERRED"},
	}
	for _, tc := range cases {
		if got := NormalizeStatus(tc.in); got != tc.want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseCSV(t *testing.T) {
	t.Run("maps_rows_to_items", func(t *testing.T) {
		data, err := ParseCSV(strings.NewReader(
			"Item,Status,Comment\nRack-1,Pass,ok\nRack-2,fail,loose cable\nRack-3,,\n"))
		testutil.AssertNoError(t, err)

		if len(data.Items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(data.Items))
		}

		first := data.Items[0]
		if first.Idx != 1 || first.ID != "Rack-1" || first.Status != StatusPass || first.Comment != "ok" {
			t.Errorf("unexpected first item: %+v", first)
		}
		if data.Items[1].Status != StatusFail {
			t.Errorf("expected FAIL, got %s", data.Items[1].Status)
		}
		if data.Items[2].Status != StatusUnknown {
			t.Errorf("expected empty status to normalize to UNKNOWN, got %s", data.Items[2].Status)
		}
	})

	t.Run("id_column_case_variants", func(t *testing.T) {
		for _, header := range []string{"Item", "item", "ITEM", "Id", "id", "ID"} {
			data, err := ParseCSV(strings.NewReader(header + ",Status\nX-1,pass\n"))
			testutil.AssertNoError(t, err)
			if data.Items[0].ID != "X-1" {
				t.Errorf("header %q: expected id X-1, got %q", header, data.Items[0].ID)
			}
		}
	})

	t.Run("missing_id_column_falls_back_to_row_index", func(t *testing.T) {
		data, err := ParseCSV(strings.NewReader("Status,Comment\npass,\nfail,\n"))
		testutil.AssertNoError(t, err)

		if data.Items[0].ID != "Row1" || data.Items[1].ID != "Row2" {
			t.Errorf("expected Row1/Row2 fallback, got %q/%q", data.Items[0].ID, data.Items[1].ID)
		}
	})

	t.Run("quoted_fields", func(t *testing.T) {
		data, err := ParseCSV(strings.NewReader(
			"Item,Status,Comment\n\"Rack, left\",pass,\"said \"\"fine\"\"\"\n"))
		testutil.AssertNoError(t, err)

		if data.Items[0].ID != "Rack, left" {
			t.Errorf("expected quoted id preserved, got %q", data.Items[0].ID)
		}
		if data.Items[0].Comment != `said "fine"` {
			t.Errorf("expected escaped quotes unwrapped, got %q", data.Items[0].Comment)
		}
	})

	t.Run("summary_counts", func(t *testing.T) {
		data, err := ParseCSV(strings.NewReader(
			"Item,Status\nA,pass\nB,pass\nC,fail\nD,na\nE,\nF,weird\n"))
		testutil.AssertNoError(t, err)

		s := data.Summary
		if s.Total != 6 || s.Pass != 2 || s.Fail != 1 || s.NA != 1 || s.Unknown != 2 {
			t.Errorf("unexpected summary: %+v", s)
		}
		if s.Pass+s.Fail+s.NA+s.Unknown != s.Total {
			t.Errorf("summary counts do not sum to total: %+v", s)
		}
	})

	t.Run("header_only_rejected", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader("Item,Status\n"))
		testutil.AssertAppError(t, err, "EMPTY_REPORT_CSV")
	})

	t.Run("empty_input_rejected", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader(""))
		testutil.AssertAppError(t, err, "EMPTY_REPORT_CSV")
	})
}

func TestSummarize(t *testing.T) {
	items := []Item{
		{Status: StatusPass}, {Status: StatusPass}, {Status: StatusFail},
		{Status: StatusNA}, {Status: StatusUnknown}, {Status: "PARTIAL"},
	}
	s := Summarize(items)
	// Passthrough statuses count as unknown.
	if s.Total != 6 || s.Pass != 2 || s.Fail != 1 || s.NA != 1 || s.Unknown != 2 {
		t.Errorf("unexpected summary: %+v", s)
	}
}
