//go:build integration

package itest

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const cliTimeout = 60 * time.Second

type robustCase struct {
	name         string
	args         []string
	env          map[string]string
	wantContains []string
}

func buildCLI(t *testing.T, repoRoot string) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "speechsplit")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	cmd.Dir = repoRoot
	if b, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build cli: %v\n%s", err, string(b))
	}
	return bin
}

func runCLI(t *testing.T, bin string, tc robustCase) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), cliTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, tc.args...)
	cmd.Env = append(os.Environ(), "OPENAI_API_KEY=")
	for k, v := range tc.env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	_ = cmd.Run()
	return out.String()
}

func TestRobustness_CLI(t *testing.T) {
	repoRoot := mustRepoRoot(t)
	bin := buildCLI(t, repoRoot)

	textFile := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(textFile, []byte("plain text"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cases := []robustCase{
		{
			name:         "no args",
			args:         nil,
			wantContains: []string{"accepts 1 arg(s), received 0"},
		},
		{
			name:         "too many args",
			args:         []string{"a.mp3", "extra"},
			wantContains: []string{"accepts 1 arg(s), received 2"},
		},
		{
			name:         "unknown flag",
			args:         []string{"a.mp3", "--wat"},
			wantContains: []string{"unknown flag: --wat"},
		},
		{
			name:         "missing engine config",
			args:         []string{textFile},
			wantContains: []string{"config:", "OPENAI_API_KEY"},
		},
		{
			name:         "nonexistent input",
			args:         []string{filepath.Join(t.TempDir(), "gone.mp3")},
			env:          map[string]string{"OPENAI_API_KEY": "dummy"},
			wantContains: []string{"config:", "stat input"},
		},
		{
			name:         "invalid media type",
			args:         []string{textFile},
			env:          map[string]string{"OPENAI_API_KEY": "dummy"},
			wantContains: []string{"not a valid audio or video file"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := runCLI(t, bin, tc)
			for _, want := range tc.wantContains {
				if !strings.Contains(out, want) {
					t.Fatalf("expected output to contain %q, got:\n%s", want, out)
				}
			}
		})
	}
}
