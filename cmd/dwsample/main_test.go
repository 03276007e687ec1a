package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/proligent-labs/proligent-go/datawarehouse"
)

func sequentialIDs() datawarehouse.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
	}
}

func TestSampleStylesAgree(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cfg := datawarehouse.Config{DestinationDir: t.TempDir(), Timezone: "Europe/Paris"}

	eager, err := buildEager(ts, datawarehouse.WithConfig(cfg), datawarehouse.WithIDGenerator(sequentialIDs()))
	if err != nil {
		t.Fatalf("buildEager() err=%v", err)
	}
	incremental, err := buildIncremental(ts, datawarehouse.WithConfig(cfg), datawarehouse.WithIDGenerator(sequentialIDs()))
	if err != nil {
		t.Fatalf("buildIncremental() err=%v", err)
	}
	a, err := eager.Marshal()
	if err != nil {
		t.Fatalf("Marshal() err=%v", err)
	}
	b, err := incremental.Marshal()
	if err != nil {
		t.Fatalf("Marshal() err=%v", err)
	}
	if diff := cmp.Diff(string(a), string(b)); diff != "" {
		t.Fatalf("styles differ (-eager +incremental):\n%s", diff)
	}
	if !bytes.Contains(a, []byte(`LimitExpression="10 &lt;= X &lt;= 25"`)) {
		t.Fatalf("sample limit missing:\n%s", a)
	}
}

func TestRun_WritesToDestination(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROLIGENT_DESTINATION_DIR", dir)
	t.Setenv("PROLIGENT_TIMEZONE", "UTC")
	t.Setenv("PROLIGENT_SCHEMA_PATH", "")
	prev := datawarehouse.CurrentConfig()
	t.Cleanup(func() { _ = datawarehouse.SetDefaultConfig(prev) })

	for _, style := range []string{"eager", "incremental"} {
		var stdout, stderr bytes.Buffer
		if code := run([]string{"--style", style}, &stdout, &stderr); code != 0 {
			t.Fatalf("run(%s) exit=%d stderr=%s", style, code, stderr.String())
		}
		path := strings.TrimSpace(stdout.String())
		if filepath.Dir(path) != dir || !strings.HasPrefix(filepath.Base(path), "Proligent_") {
			t.Fatalf("run(%s) wrote %q, want Proligent_*.xml in %s", style, path, dir)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("Stat() err=%v", err)
		}
	}
}

func TestRun_ExplicitOutputAndValidate(t *testing.T) {
	t.Setenv("PROLIGENT_DESTINATION_DIR", t.TempDir())
	t.Setenv("PROLIGENT_TIMEZONE", "")
	t.Setenv("PROLIGENT_SCHEMA_PATH", filepath.Join("..", "..", "xmlvalidate", "testdata", "Datawarehouse.xsd"))
	prev := datawarehouse.CurrentConfig()
	t.Cleanup(func() { _ = datawarehouse.SetDefaultConfig(prev) })

	out := filepath.Join(t.TempDir(), "sample.xml")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-o", out, "--validate"}, &stdout, &stderr); code != 0 {
		t.Fatalf("run() exit=%d stderr=%s", code, stderr.String())
	}
	if strings.TrimSpace(stdout.String()) != out {
		t.Fatalf("run() printed %q, want %q", stdout.String(), out)
	}
	if !strings.Contains(stderr.String(), `"msg":"document valid"`) {
		t.Fatalf("missing validation log: %s", stderr.String())
	}
}

func TestRun_UsageErrors(t *testing.T) {
	t.Setenv("PROLIGENT_DESTINATION_DIR", t.TempDir())
	prev := datawarehouse.CurrentConfig()
	t.Cleanup(func() { _ = datawarehouse.SetDefaultConfig(prev) })

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown style", args: []string{"--style", "lazy"}},
		{name: "unknown flag", args: []string{"--nope"}},
		{name: "missing config file", args: []string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != 2 {
				t.Fatalf("run(%v) exit=%d, want 2", tt.args, code)
			}
		})
	}
}
