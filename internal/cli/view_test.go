package cli

import (
	"reflect"
	"runtime"
	"testing"
)

func TestViewerCommandOverride(t *testing.T) {
	name, args, err := viewerCommand("out.pdf", "zathura --fork")
	if err != nil {
		t.Fatal(err)
	}
	if name != "zathura" || !reflect.DeepEqual(args, []string{"--fork", "out.pdf"}) {
		t.Errorf("viewerCommand() = %q %q", name, args)
	}
}

func TestViewerCommandPlatform(t *testing.T) {
	want := map[string]string{"darwin": "open", "linux": "xdg-open", "windows": "cmd"}[runtime.GOOS]
	if want == "" {
		t.Skipf("no default viewer on %s", runtime.GOOS)
	}
	name, args, err := viewerCommand("out.svg", "  ")
	if err != nil {
		t.Fatal(err)
	}
	if name != want || args[len(args)-1] != "out.svg" {
		t.Errorf("viewerCommand() = %q %q", name, args)
	}
}
