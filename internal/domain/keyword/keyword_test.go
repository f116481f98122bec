package keyword

import (
	"strings"
	"testing"
	"time"
)

func TestNewSet_DropsBlanksKeepsDuplicates(t *testing.T) {
	s := NewSet("cv-1", []string{" Data Analyst ", "", "  ", "data analyst"}, time.Unix(0, 0))

	got := s.Keywords()
	if len(got) != 2 {
		t.Fatalf("expected 2 keywords, got %v", got)
	}
	if got[0] != "Data Analyst" || got[1] != "data analyst" {
		t.Errorf("unexpected keywords: %v", got)
	}
	if s.CVID() != "cv-1" {
		t.Errorf("CVID = %q", s.CVID())
	}
	if s.IsEmpty() {
		t.Error("IsEmpty = true")
	}
}

func TestSet_KeywordsReturnsCopy(t *testing.T) {
	s := NewSet("cv-1", []string{"Go Developer"}, time.Time{})
	got := s.Keywords()
	got[0] = "mutated"

	if s.Keywords()[0] != "Go Developer" {
		t.Error("Keywords() leaked internal slice")
	}
}

func TestSet_Empty(t *testing.T) {
	if !NewSet("cv", nil, time.Time{}).IsEmpty() {
		t.Error("nil keywords should be empty")
	}
	if !NewSet("cv", []string{" "}, time.Time{}).IsEmpty() {
		t.Error("blank keywords should be empty")
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  software   engineer ", "Software Engineer"},
		{"DATA ANALYST", "Data Analyst"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range tests {
		if got := CleanTitle(tc.in); got != tc.want {
			t.Errorf("CleanTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCleanTitle_Truncates(t *testing.T) {
	long := strings.Repeat("word ", 15) // 74 runes before trimming
	got := CleanTitle(long)

	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if n := len([]rune(got)); n != 50 {
		t.Errorf("length = %d, want 50", n)
	}
}

func TestDisplay_Dedupes(t *testing.T) {
	got := Display([]string{"data analyst", "Data  Analyst", "", "BI Developer"})
	want := []string{"Data Analyst", "Bi Developer"}

	if len(got) != len(want) {
		t.Fatalf("Display = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Display[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
