package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"coevo/internal/config"
	"coevo/internal/model"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunPrintsTableAndSummary(t *testing.T) {
	out, err := execute(t, "run", "--profile", "fig2", "--generations", "3", "--every", "2")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "GEN") || !strings.Contains(out, "MEAN_A") {
		t.Fatalf("missing table header:\n%s", out)
	}
	// generations 0, 2 and the final one.
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header, 3 rows and summary, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(out, "seed=1 generations=3 samples=3,000") {
		t.Fatalf("unexpected summary line:\n%s", out)
	}
}

func TestRunJSONAndElites(t *testing.T) {
	out, err := execute(t, "run", "--seed", "5", "--generations", "2", "--json")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var record model.RunRecord
	if err := json.Unmarshal([]byte(out), &record); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if record.Seed != 5 || record.Generations != 2 || len(record.SummaryA) != 3 {
		t.Fatalf("unexpected record: seed=%d generations=%d summaries=%d", record.Seed, record.Generations, len(record.SummaryA))
	}

	out, err = execute(t, "run", "--generations", "1", "--elites", "--hof")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "elites a:") || !strings.Contains(out, "elites b:") || !strings.Contains(out, "hall of fame:") {
		t.Fatalf("missing elites or hall of fame output:\n%s", out)
	}
}

func TestRunFromConfigFile(t *testing.T) {
	exp := config.Default()
	exp.Generations = 2
	exp.Population.Size = 4
	exp.Population.TraitBits = 8
	exp.Selector.Kind = "tournament"
	exp.Selector.TournamentSize = 2
	data, err := yaml.Marshal(exp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "exp.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := execute(t, "run", "--config", path, "--json")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var record model.RunRecord
	if err := json.Unmarshal([]byte(out), &record); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if record.Selector != "tournament" {
		t.Fatalf("unexpected selector: %s", record.Selector)
	}
	if record.PopulationSize != 4 || record.TraitBits != 8 {
		t.Fatalf("unexpected record shape: %+v", record)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	if _, err := execute(t, "run", "--profile", "fig9"); err == nil {
		t.Fatal("expected unknown profile error")
	}
	if _, err := execute(t, "run", "--generations", "0"); err == nil {
		t.Fatal("expected invalid generations error")
	}
	if _, err := execute(t, "run", "--profile", "fig1", "--config", "x.yaml"); err == nil {
		t.Fatal("expected mutually exclusive flag error")
	}
}

func TestProfilesCommand(t *testing.T) {
	out, err := execute(t, "profiles")
	if err != nil {
		t.Fatalf("profiles: %v", err)
	}
	if !strings.HasPrefix(out, "fig1\t") || !strings.Contains(out, "fig5\t") {
		t.Fatalf("unexpected profiles output:\n%s", out)
	}

	out, err = execute(t, "profiles", "--yaml")
	if err != nil {
		t.Fatalf("profiles --yaml: %v", err)
	}
	var resolved map[string]config.Experiment
	if err := yaml.Unmarshal([]byte(out), &resolved); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if len(resolved) != 5 || resolved["fig4"].Population.TraitCount != 10 {
		t.Fatalf("unexpected resolved profiles: %+v", resolved)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, version) {
		t.Fatalf("unexpected version output: %q", out)
	}
}
