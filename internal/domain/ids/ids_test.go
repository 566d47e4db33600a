package ids

import (
	"testing"
)

func TestIsEmployeeID(t *testing.T) {
	valid := []string{"EMP001", "EMP-001", "QA1234", "ABCDE-99999"}
	invalid := []string{"", "EMP", "EMP01", "emp001", "E001", "EMP_001", "EMP-ABC", " EMP001"}
	for _, s := range valid {
		if !IsEmployeeID(s) {
			t.Errorf("IsEmployeeID(%q) = false, want true", s)
		}
		got, ok := CreateEmployeeID(s)
		if !ok || string(got) != s {
			t.Errorf("CreateEmployeeID(%q) = (%q, %v), want (%q, true)", s, got, ok, s)
		}
	}
	for _, s := range invalid {
		if IsEmployeeID(s) {
			t.Errorf("IsEmployeeID(%q) = true, want false", s)
		}
		if got, ok := CreateEmployeeID(s); ok || got != "" {
			t.Errorf("CreateEmployeeID(%q) = (%q, %v), want (\"\", false)", s, got, ok)
		}
	}
}

func TestIsProgramCode(t *testing.T) {
	valid := []string{"SAFE-101", "QA-001", "PROC-A1B", "LEADER-999"}
	invalid := []string{"", "P1", "SAFE-10", "SAFE101", "safe-101", "S-101", "SAFE-", "SAFE-1-1"}
	for _, s := range valid {
		if !IsProgramCode(s) {
			t.Errorf("IsProgramCode(%q) = false, want true", s)
		}
		if got, ok := CreateProgramCode(s); !ok || string(got) != s {
			t.Errorf("CreateProgramCode(%q) = (%q, %v)", s, got, ok)
		}
	}
	for _, s := range invalid {
		if IsProgramCode(s) {
			t.Errorf("IsProgramCode(%q) = true, want false", s)
		}
		if _, ok := CreateProgramCode(s); ok {
			t.Errorf("CreateProgramCode(%q) ok = true, want false", s)
		}
	}
}

func TestSessionAndResultIDs(t *testing.T) {
	cases := []struct {
		input   string
		session bool
		result  bool
	}{
		{"SES-001", true, false},
		{"SES-2024-01-15-A", true, false},
		{"RES-001", false, true},
		{"RES-01", false, false},
		{"SES-", false, false},
		{"res-001", false, false},
		{"", false, false},
	}
	for _, c := range cases {
		if got := IsSessionID(c.input); got != c.session {
			t.Errorf("IsSessionID(%q) = %v, want %v", c.input, got, c.session)
		}
		if got := IsResultID(c.input); got != c.result {
			t.Errorf("IsResultID(%q) = %v, want %v", c.input, got, c.result)
		}
	}
}

func TestNonStringInputsNeverMatch(t *testing.T) {
	inputs := []any{nil, 42, 3.14, true, []string{"EMP001"}, struct{}{}, new(string)}
	for _, in := range inputs {
		if IsEmployeeID(in) || IsProgramCode(in) || IsSessionID(in) || IsResultID(in) {
			t.Errorf("non-string input %#v matched an identifier pattern", in)
		}
	}
}

func TestBrandedValuesAreAccepted(t *testing.T) {
	if !IsEmployeeID(EmployeeID("EMP001")) {
		t.Error("IsEmployeeID should accept an EmployeeID value")
	}
	if !IsResultID(UnsafeResultID("RES-001")) {
		t.Error("IsResultID should accept a ResultID value")
	}
}

func TestGeneratedIDsValidate(t *testing.T) {
	for i := 0; i < 10; i++ {
		if id := NewSessionID(); !IsSessionID(id) {
			t.Fatalf("NewSessionID() = %q does not validate", id)
		}
		if id := NewResultID(); !IsResultID(id) {
			t.Fatalf("NewResultID() = %q does not validate", id)
		}
		if id := NewTeamID(); !IsTeamID(id) {
			t.Fatalf("NewTeamID() = %q does not validate", id)
		}
		if id := NewTraineeID(); !IsTraineeID(id) {
			t.Fatalf("NewTraineeID() = %q does not validate", id)
		}
		if id := NewMeetingID(); !IsMeetingID(id) {
			t.Fatalf("NewMeetingID() = %q does not validate", id)
		}
	}
	if NewResultID() == NewResultID() {
		t.Fatal("generated result ids collide")
	}
}
