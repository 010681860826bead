package extract

import "testing"

func TestVisibleText_StripsMarkup(t *testing.T) {
	fragment := `<div><p>GME to the moon</p><p>buying <strong>AMC</strong> today</p></div>`

	got := VisibleText(fragment)
	want := "GME to the moon buying AMC today"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestVisibleText_SkipsScriptAndStyle(t *testing.T) {
	fragment := `<div><script>var TSLA = 1;</script><style>.AMC{}</style><p>only GME</p></div>`

	got := VisibleText(fragment)
	want := "only GME"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestVisibleText_PlainTextPassesThrough(t *testing.T) {
	got := VisibleText("no markup here, just GME")
	want := "no markup here, just GME"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
