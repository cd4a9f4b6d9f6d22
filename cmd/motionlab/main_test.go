package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/san-kum/motionlab/internal/config"
	"github.com/san-kum/motionlab/internal/export"
	"github.com/san-kum/motionlab/internal/session"
	"github.com/san-kum/motionlab/internal/storage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestFreeFallCommand(t *testing.T) {
	out, err := execute(t, "freefall", "1", "2", "--data", t.TempDir())
	if err != nil {
		t.Fatalf("freefall failed: %v\n%s", err, out)
	}
	for _, want := range []string{"Free Fall Simulator", "velocity after fall: 19.620 m/s", "9.810", "4.905"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestFreeFallCommand_Clamps(t *testing.T) {
	out, err := execute(t, "freefall", "25", "--data", t.TempDir())
	if err != nil {
		t.Fatalf("freefall failed: %v", err)
	}
	if !strings.Contains(out, "velocity after fall: 98.100 m/s") {
		t.Errorf("expected clamped fall time of 10 s:\n%s", out)
	}
}

func TestFreeFallCommand_BadArg(t *testing.T) {
	if _, err := execute(t, "freefall", "soon", "--data", t.TempDir()); err == nil {
		t.Error("expected error for non-numeric fall time")
	}
}

func TestExportRunsShow(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "freefall", "1", "3", "--export", "--data", dir)
	if err != nil {
		t.Fatalf("freefall failed: %v", err)
	}
	id := regexp.MustCompile(`trials_\d+_[0-9a-f]{8}`).FindString(out)
	if id == "" {
		t.Fatalf("no run id in output:\n%s", out)
	}

	out, err = execute(t, "runs", "--data", dir)
	if err != nil {
		t.Fatalf("runs failed: %v", err)
	}
	if !strings.Contains(out, id) {
		t.Errorf("run %s not listed:\n%s", id, out)
	}

	out, err = execute(t, "show", id, "--data", dir)
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "29.430") {
		t.Errorf("expected trial row in:\n%s", out)
	}

	out, err = execute(t, "show", id, "--json", "--data", dir)
	if err != nil {
		t.Fatalf("show --json failed: %v", err)
	}
	if !strings.Contains(out, `"records"`) {
		t.Errorf("expected json records:\n%s", out)
	}
}

func TestShowMissingRun(t *testing.T) {
	_, err := execute(t, "show", "nope", "--data", t.TempDir())
	if !errors.Is(err, storage.ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestRunsEmpty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "none")
	out, err := execute(t, "runs", "--data", dir)
	if err != nil {
		t.Fatalf("runs failed: %v", err)
	}
	if !strings.Contains(out, "no runs found in "+dir) {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestLinearCommand(t *testing.T) {
	out, err := execute(t, "linear", "--x0", "5", "--v", "2", "--t", "3")
	if err != nil {
		t.Fatalf("linear failed: %v", err)
	}
	if !strings.Contains(out, "final position: 11.000 m") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestLinearCommand_Preset(t *testing.T) {
	out, err := execute(t, "linear", "--preset", "reverse")
	if err != nil {
		t.Fatalf("linear failed: %v", err)
	}
	if !strings.Contains(out, "final position: 4.000 m") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if _, err := execute(t, "linear", "--preset", "sprint"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestProjectileCommand(t *testing.T) {
	dir := t.TempDir()
	svg := filepath.Join(dir, "p.svg")
	png := filepath.Join(dir, "p.png")

	out, err := execute(t, "projectile", "--v0", "20", "--angle", "30", "--svg", svg, "--png", png)
	if err != nil {
		t.Fatalf("projectile failed: %v", err)
	}
	if !strings.Contains(out, "range: 35.312 m") {
		t.Errorf("unexpected output:\n%s", out)
	}
	for _, p := range []string{svg, png} {
		if info, err := os.Stat(p); err != nil || info.Size() == 0 {
			t.Errorf("expected non-empty %s", p)
		}
	}
}

func TestProjectileCommand_FlatLaunch(t *testing.T) {
	out, err := execute(t, "projectile", "--angle", "0", "--svg", filepath.Join(t.TempDir(), "flat.svg"))
	if err != nil {
		t.Fatalf("projectile failed: %v", err)
	}
	if !strings.Contains(out, "max height: 0.000 m") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestAboutKorean(t *testing.T) {
	out, err := execute(t, "about", "--lang", "ko-KR")
	if err != nil {
		t.Fatalf("about failed: %v", err)
	}
	if !strings.Contains(out, "운동 시뮬레이터 앱에 오신 것을 환영합니다!") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets", "projectile")
	if err != nil {
		t.Fatalf("presets failed: %v", err)
	}
	if !strings.Contains(out, "max-range") || strings.Contains(out, "walk") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if _, err := execute(t, "presets", "orbit"); !errors.Is(err, session.ErrUnknownView) {
		t.Errorf("expected ErrUnknownView, got %v", err)
	}
}

func TestConfigCommand(t *testing.T) {
	t.Setenv("MOTIONLAB_THEME", "chalk")
	out, err := execute(t, "config", "--lang", "ko-KR")
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if !strings.Contains(out, "locale: ko-KR") || !strings.Contains(out, "theme: chalk") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestConfigCommand_Output(t *testing.T) {
	path := filepath.Join(t.TempDir(), "motionlab.yaml")
	out, err := execute(t, "config", "--lang", "ko-KR", "--theme", "sunset", "-o", path)
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("expected path in output:\n%s", out)
	}

	saved, err := config.Load(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if saved.Locale != "ko-KR" || saved.Theme != "sunset" {
		t.Errorf("unexpected saved config: locale=%s theme=%s", saved.Locale, saved.Theme)
	}
}

func TestWritePNG_RemovesFileOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	err := writePNG(path, nil, export.DefaultLabels)
	if !errors.Is(err, export.ErrEmptyTrajectory) {
		t.Fatalf("expected ErrEmptyTrajectory, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected %s to be removed, stat err=%v", path, err)
	}
}
