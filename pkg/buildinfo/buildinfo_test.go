package buildinfo

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "src.esval.dev/pkg/prog/progtest"
	"src.esval.dev/pkg/tt"
)

func TestProgram(t *testing.T) {
	Test(t, &Program{},
		ThatEsval("-version").WritesStdout(Value.Version+"\n"),
		ThatEsval("-version", "-json").WritesStdout(fmt.Sprintf("%q\n", Value.Version)),

		ThatEsval("-buildinfo").WritesStdout(
			fmt.Sprintf("Version: %v\nGo version: %v\n", Value.Version, Value.GoVersion)),
		// -buildinfo wins over -version.
		ThatEsval("-buildinfo", "-version").WritesStdoutContaining("Go version: "),

		// Documents are left to the evaluation subprogram.
		ThatEsval("a.json").ExitsWith(2).WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestProgram_BuildInfoJSON(t *testing.T) {
	_, stdout, _ := Run(&Program{}, []string{"esval", "-buildinfo", "-json"}, "")
	var got map[string]string
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("-buildinfo -json output %q is not a JSON object: %v", stdout, err)
	}
	want := map[string]string{"version": Value.Version, "goversion": runtime.Version()}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("-buildinfo -json (-want +got):\n%s", diff)
	}
}

func TestValue(t *testing.T) {
	if !strings.HasPrefix(Value.Version, VersionBase) {
		t.Errorf("Value.Version = %q, want it to start with %q", Value.Version, VersionBase)
	}
	if Value.GoVersion != runtime.Version() {
		t.Errorf("Value.GoVersion = %q, want %q", Value.GoVersion, runtime.Version())
	}
}

func buildInfo(main string, settings ...string) func() (*debug.BuildInfo, bool) {
	return func() (*debug.BuildInfo, bool) {
		bi := &debug.BuildInfo{Main: debug.Module{Version: main}}
		for i := 0; i+1 < len(settings); i += 2 {
			bi.Settings = append(bi.Settings, debug.BuildSetting{Key: settings[i], Value: settings[i+1]})
		}
		return bi, true
	}
}

func noBuildInfo() (*debug.BuildInfo, bool) { return nil, false }

func TestDevVersion(t *testing.T) {
	const rev = "1234567890123456"
	const at = "2026-04-01T23:59:58Z"
	tt.Test(t, tt.Fn("devVersion", devVersion).ArgsFmt("(%q, %q, %p)"), tt.Table{
		tt.Args(VersionBase, "", noBuildInfo).Rets(VersionBase + "-dev.unknown"),
		tt.Args("1.0.0", "", buildInfo("(devel)")).Rets("1.0.0-dev.unknown"),
		// Installed as a module: the module version is used as is.
		tt.Args("1.0.0", "", buildInfo("v0.9.1")).Rets("0.9.1"),
		tt.Args("1.0.0", "", buildInfo("", "vcs.revision", rev, "vcs.time", at, "vcs.modified", "false")).
			Rets("1.0.0-dev.0.20260401235958-123456789012"),
		tt.Args("1.0.0", "", buildInfo("", "vcs.revision", rev, "vcs.time", at, "vcs.modified", "true")).
			Rets("1.0.0-dev.0.20260401235958-123456789012-dirty"),
		tt.Args("1.0.0", "", buildInfo("", "vcs.revision", rev, "vcs.time", "yesterday")).
			Rets("1.0.0-dev.unknown"),
		tt.Args("1.0.0", "", buildInfo("", "vcs.revision", "abc", "vcs.time", at)).
			Rets("1.0.0-dev.unknown"),
		tt.Args("1.0.0", "20260401235958-123456789012", noBuildInfo).
			Rets("1.0.0-dev.0.20260401235958-123456789012"),
	})
}
