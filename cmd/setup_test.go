package cmd

import "testing"

func TestValidateMonths(t *testing.T) {
	for _, s := range []string{"", "1", " 36 ", "1200"} {
		if err := validateMonths(s); err != nil {
			t.Errorf("validateMonths(%q) = %v, want nil", s, err)
		}
	}
	for _, s := range []string{"0", "-1", "1201", "abc", "1.5"} {
		if err := validateMonths(s); err == nil {
			t.Errorf("validateMonths(%q) = nil, want error", s)
		}
	}
}
