package diag

import (
	"strings"
	"testing"

	"src.esval.dev/pkg/testutil"
)

func setCulpritMarkers(t *testing.T, start, end string) {
	testutil.Set(t, &culpritStart, start)
	testutil.Set(t, &culpritEnd, end)
}

var contextTests = []struct {
	name    string
	context *Context
	indent  string

	wantShow        string
	wantShowCompact string
}{
	{
		name: "single-line culprit",
		//                              0123456789
		context: NewContext("[test]", "a + (b * c)", Ranging{4, 11}),
		indent:  "_",

		wantShow:        lines("[test], line 1:", "_a + <(b * c)>"),
		wantShowCompact: "[test], line 1: a + <(b * c)>",
	},
	{
		name:    "multi-line culprit",
		context: NewContext("[test]", "f(a,\nb)\nmore", Ranging{0, 7}),
		indent:  "_",

		wantShow: lines("[test], line 1-2:", "_<f(a,>", "_<b)>"),
		wantShowCompact: lines(
			"[test], line 1-2: <f(a,>",
			"_                  <b)>"),
	},
	{
		name:    "trailing newline in culprit is removed",
		context: NewContext("[test]", "x = y\n", Ranging{4, 6}),
		indent:  "_",

		wantShow:        lines("[test], line 1:", "_x = <y>"),
		wantShowCompact: "[test], line 1: x = <y>",
	},
	{
		name:    "empty culprit",
		context: NewContext("[test]", "a.b", Ranging{1, 1}),

		wantShow:        lines("[test], line 1:", "a<^>.b"),
		wantShowCompact: "[test], line 1: a<^>.b",
	},
	{
		name:            "unknown position",
		context:         NewContext("[test]", "a", NoRanging),
		wantShow:        "[test], unknown position",
		wantShowCompact: "[test], unknown position",
	},
	{
		name:            "no source text",
		context:         NewContext("[expr]", "", Ranging{3, 5}),
		wantShow:        "[expr], bytes 3-5",
		wantShowCompact: "[expr], bytes 3-5",
	},
	{
		name:            "invalid position",
		context:         NewContext("[test]", "abc", Ranging{2, 1}),
		wantShow:        "[test], invalid position 2-1",
		wantShowCompact: "[test], invalid position 2-1",
	},
}

func TestContext(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	for _, test := range contextTests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.context.Show(test.indent); got != test.wantShow {
				t.Errorf("Show() -> %q, want %q", got, test.wantShow)
			}
			if got := test.context.ShowCompact(test.indent); got != test.wantShowCompact {
				t.Errorf("ShowCompact() -> %q, want %q", got, test.wantShowCompact)
			}
		})
	}
}

func TestContext_Culprit(t *testing.T) {
	c := NewContext("[test]", "a + b", Ranging{4, 5})
	if got := c.Culprit(); got != "b" {
		t.Errorf("Culprit() -> %q, want %q", got, "b")
	}
	c = NewContext("[test]", "", Ranging{4, 5})
	if got := c.Culprit(); got != "" {
		t.Errorf("Culprit() -> %q, want empty", got)
	}
}

func TestError(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	UseColor(false)
	t.Cleanup(func() { UseColor(true) })

	err := &Error{
		Type:    "decode error",
		Message: "unknown node type",
		Context: *NewContext("[test]", "{}", Ranging{0, 2}),
	}
	if got, want := err.Error(), "decode error: 0-2 in [test]: unknown node type"; got != want {
		t.Errorf("Error() -> %q, want %q", got, want)
	}
	wantShow := "Decode error: unknown node type\n  [test], line 1: {}"
	if got := err.Show(""); !strings.HasPrefix(got, "Decode error: unknown node type\n") {
		t.Errorf("Show() -> %q, want %q", got, wantShow)
	}
	if got := err.Range(); got != (Ranging{0, 2}) {
		t.Errorf("Range() -> %v", got)
	}
}

func TestShowError(t *testing.T) {
	UseColor(false)
	t.Cleanup(func() { UseColor(true) })
	var sb strings.Builder
	ShowError(&sb, errString("boom"))
	if got := sb.String(); got != "boom\n" {
		t.Errorf("ShowError wrote %q", got)
	}
}

type errString string

func (e errString) Error() string { return string(e) }

func lines(ls ...string) string { return strings.Join(ls, "\n") }
