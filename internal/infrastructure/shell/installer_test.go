package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInstallWritesHookAndRCLine(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	installer := NewInstaller(nil)

	result, err := installer.Install("bash", false)
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if !result.HookChanged || !result.RCChanged {
		t.Fatalf("first install result = %+v, want hook and rc changed", result)
	}

	script, err := os.ReadFile(result.HookPath)
	if err != nil {
		t.Fatalf("hook script not written: %v", err)
	}
	if !strings.Contains(string(script), "opsagent completion bash") {
		t.Errorf("hook script does not source completion:\n%s", script)
	}

	rc, err := os.ReadFile(filepath.Join(home, ".bashrc"))
	if err != nil {
		t.Fatalf("rc file not written: %v", err)
	}
	if !strings.Contains(string(rc), result.HookPath) {
		t.Errorf("rc file does not reference the hook:\n%s", rc)
	}
}

func TestInstallIsIdempotent(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	installer := NewInstaller(nil)

	if _, err := installer.Install("zsh", false); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	again, err := installer.Install("zsh", false)
	if err != nil {
		t.Fatalf("second Install() error = %v", err)
	}
	if again.RCChanged {
		t.Error("second install rewrote the rc file")
	}

	rc, _ := os.ReadFile(filepath.Join(home, ".zshrc"))
	if got := strings.Count(string(rc), "# opsagent completion"); got != 1 {
		t.Errorf("rc file has %d hook lines, want 1:\n%s", got, rc)
	}

	forced, err := installer.Install("zsh", true)
	if err != nil {
		t.Fatalf("forced Install() error = %v", err)
	}
	if !forced.RCChanged {
		t.Error("forced install did not rewrite the rc line")
	}
	rc, _ = os.ReadFile(filepath.Join(home, ".zshrc"))
	if got := strings.Count(string(rc), "# opsagent completion"); got != 1 {
		t.Errorf("forced install duplicated the hook line:\n%s", rc)
	}
}

func TestInstallPreservesExistingRCContent(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	rcFile := filepath.Join(home, ".bashrc")
	if err := os.WriteFile(rcFile, []byte("export PATH=$PATH:/opt/bin\nalias ga='git add'\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewInstaller(nil).Install("bash", false); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	rc, _ := os.ReadFile(rcFile)
	if !strings.Contains(string(rc), "alias ga='git add'") {
		t.Errorf("existing rc content lost:\n%s", rc)
	}
}

func TestUninstallRemovesHook(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	installer := NewInstaller(nil)

	installed, err := installer.Install("bash", false)
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	removed, err := installer.Uninstall("bash")
	if err != nil {
		t.Fatalf("Uninstall() error = %v", err)
	}
	if !removed.RCChanged || !removed.HookChanged {
		t.Errorf("uninstall result = %+v, want hook and rc changed", removed)
	}

	rc, _ := os.ReadFile(filepath.Join(home, ".bashrc"))
	if strings.Contains(string(rc), "opsagent") {
		t.Errorf("rc file still references opsagent:\n%s", rc)
	}
	if _, err := os.Stat(installed.HookPath); !os.IsNotExist(err) {
		t.Error("hook script still present after uninstall")
	}

	second, err := installer.Uninstall("bash")
	if err != nil {
		t.Fatalf("second Uninstall() error = %v", err)
	}
	if second.RCChanged {
		t.Error("second uninstall claimed to change the rc file")
	}
}

func TestStatusReflectsInstallation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	installer := NewInstaller(nil)

	before := installer.Status("bash")
	if before.HookPresent || before.RCLinked {
		t.Errorf("fresh home reports installed state: %+v", before)
	}

	if _, err := installer.Install("bash", false); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	after := installer.Status("bash")
	if !after.HookPresent || !after.RCLinked {
		t.Errorf("installed state not detected: %+v", after)
	}
}

func TestUnsupportedShellRejected(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if _, err := NewInstaller(nil).Install("fish", false); err == nil {
		t.Fatal("expected an error for an unsupported shell")
	}
	status := NewInstaller(nil).Status("fish")
	if status.Error == "" {
		t.Error("status for an unsupported shell reports no error")
	}
}

func TestDetectShell(t *testing.T) {
	t.Setenv("SHELL", "/usr/bin/zsh")
	if got := NewInstaller(nil).DetectShell(); got != "zsh" {
		t.Errorf("DetectShell() = %q, want zsh", got)
	}

	t.Setenv("SHELL", "")
	if got := NewInstaller(nil).DetectShell(); got != "" {
		t.Errorf("DetectShell() with empty SHELL = %q, want empty", got)
	}
}
