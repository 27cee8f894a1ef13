// ./internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

var outer = []string{
	"detprod/internal/appcore", "detprod/internal/appshell",
	"detprod/internal/productsapp", "detprod/internal/screenapp",
	"detprod/internal/productscli", "detprod/internal/screencli",
	"detprod/internal/clibase", "detprod/internal/cmdutil",
	"detprod/cmd/",
}

func with(extra ...string) []string { return append(append([]string(nil), outer...), extra...) }

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	// Keys match a package path exactly; bans match as prefixes.
	bans := map[string][]string{
		"detprod/internal/catalog": {"detprod/"},
		"detprod/internal/config":  {"detprod/"},
		"detprod/internal/screen": with(
			"detprod/internal/report", "detprod/internal/writers", "detprod/internal/store",
		),
		"detprod/internal/report":  with("detprod/internal/writers", "detprod/internal/store"),
		"detprod/internal/writers": with("detprod/internal/store"),
		"detprod/internal/store":   with("detprod/internal/writers", "detprod/internal/report"),
		"detprod/pkg/api":          {"detprod/"},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		forbidden, ok := bans[p.ImportPath]
		if !ok {
			continue
		}
		for _, dep := range p.Imports {
			for _, ban := range forbidden {
				if strings.HasPrefix(dep, ban) {
					violations = append(violations, p.ImportPath+" → "+dep)
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
