package theme

import "testing"

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("tokyo-night").Name; got != "tokyo-night" {
		t.Fatalf("ByName(tokyo-night) = %q", got)
	}
	if got := ByName("nope").Name; got != FlexokiDark.Name {
		t.Fatalf("ByName(nope) = %q, want %q", got, FlexokiDark.Name)
	}
}

func TestSetActive(t *testing.T) {
	defer SetActive(FlexokiDark.Name)

	SetActive("terminal")
	if Active.Name != "terminal" {
		t.Fatalf("Active = %q, want terminal", Active.Name)
	}
}

func TestNamesAndValid(t *testing.T) {
	names := Names()
	if len(names) != len(All) {
		t.Fatalf("len(Names) = %d, want %d", len(names), len(All))
	}
	for _, n := range names {
		if !Valid(n) {
			t.Errorf("Valid(%q) = false", n)
		}
	}
	if Valid("solarized") {
		t.Error("Valid(solarized) = true")
	}
}

func TestBucketColorsDistinct(t *testing.T) {
	for _, th := range All {
		if th.Spend == th.Save || th.Save == th.Invest || th.Spend == th.Invest {
			t.Errorf("%s: spend/save/invest colors overlap: %s %s %s", th.Name, th.Spend, th.Save, th.Invest)
		}
		if th.Invest == th.Growth {
			t.Errorf("%s: growth color matches invest", th.Name)
		}
	}
}
