package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// run executes essencectl with args against a temp database and tiers file.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{
		"--db", filepath.Join(dir, "essence.sqlite"),
		"--tiers", filepath.Join(dir, "tiers.json"),
	}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestProgressCommand(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		points string
		want   []string
	}{
		{"375", []string{"Heritage Seeker (heritage)", "50% to Cultural Nomad, 125 points to go"}},
		{"0", []string{"Explorer (explorer)", "0% to Pathfinder, 100 points to go"}},
		{"1500", []string{"Kuriftu Ambassador (ambassador)", "100% (highest tier)"}},
	}

	for _, tt := range tests {
		t.Run(tt.points, func(t *testing.T) {
			out, err := run(t, dir, "progress", tt.points)
			if err != nil {
				t.Fatalf("progress %s error = %v", tt.points, err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestProgressCommand_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := run(t, dir, "progress", "--", "-5"); err == nil {
		t.Error("expected error for negative total")
	}
	if _, err := run(t, dir, "progress", "lots"); err == nil {
		t.Error("expected error for non-integer total")
	}
}

func TestTiersCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "tiers", "init")
	if err != nil {
		t.Fatalf("tiers init error = %v", err)
	}
	if !strings.Contains(out, "wrote 5 default tiers") {
		t.Errorf("init output = %q", out)
	}

	if _, err := run(t, dir, "tiers", "init"); err == nil {
		t.Error("second init should refuse to overwrite")
	}

	out, err = run(t, dir, "tiers", "validate")
	if err != nil {
		t.Fatalf("tiers validate error = %v", err)
	}
	if !strings.Contains(out, "5 tiers OK") {
		t.Errorf("validate output = %q", out)
	}

	out, err = run(t, dir, "tiers", "list")
	if err != nil {
		t.Fatalf("tiers list error = %v", err)
	}
	for _, id := range []string{"explorer", "pathfinder", "heritage", "nomad", "ambassador"} {
		if !strings.Contains(out, id) {
			t.Errorf("list output missing %q", id)
		}
	}

	if _, err := run(t, dir, "tiers", "validate", filepath.Join(dir, "missing.json")); err == nil {
		t.Error("validate of a missing file should fail")
	}
}

func TestMemberCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "member", "seed-demo")
	if err != nil {
		t.Fatalf("seed-demo error = %v", err)
	}
	if !strings.Contains(out, "seeded demo") {
		t.Errorf("seed-demo output = %q", out)
	}

	out, err = run(t, dir, "member", "seed-demo")
	if err != nil {
		t.Fatalf("second seed-demo error = %v", err)
	}
	if !strings.Contains(out, "already exists") {
		t.Errorf("second seed-demo output = %q", out)
	}

	out, err = run(t, dir, "member", "show", "demo")
	if err != nil {
		t.Fatalf("member show error = %v", err)
	}
	for _, w := range []string{"Points:   375", "Stamps:   5", "Heritage Seeker"} {
		if !strings.Contains(out, w) {
			t.Errorf("show output missing %q:\n%s", w, out)
		}
	}

	out, err = run(t, dir, "member", "ledger", "demo", "--page-size", "2")
	if err != nil {
		t.Fatalf("member ledger error = %v", err)
	}
	if !strings.Contains(out, "page 1, 2 of 5 entries") {
		t.Errorf("ledger output = %q", out)
	}
	if !strings.Contains(out, "SEED") {
		t.Errorf("ledger output should list SEED entries:\n%s", out)
	}

	if _, err := run(t, dir, "member", "show", "not valid"); err == nil {
		t.Error("expected error for invalid member id")
	}
}

func TestMigrateCommand(t *testing.T) {
	dir := t.TempDir()

	for i := 0; i < 2; i++ {
		out, err := run(t, dir, "migrate")
		if err != nil {
			t.Fatalf("migrate run %d error = %v", i, err)
		}
		if !strings.Contains(out, "up to date") {
			t.Errorf("migrate output = %q", out)
		}
	}
}
