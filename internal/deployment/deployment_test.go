package deployment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pressplay21/katello-installer-legacy/internal/status"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "katello-configure.conf")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDetect_OverrideWins(t *testing.T) {
	// The config path does not even exist; the override short-circuits.
	dep, err := Detect("headpin", "/nonexistent/path")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if dep != "headpin" {
		t.Fatalf("expected headpin, got %q", dep)
	}
}

func TestDetect_HeadpinAssignment(t *testing.T) {
	for _, variant := range []string{"headpin", "sam"} {
		path := writeConfig(t, "# generated\ndeployment = "+variant+"\n")
		dep, err := Detect("", path)
		if err != nil {
			t.Fatalf("Detect(%s): %v", variant, err)
		}
		if dep != Headpin {
			t.Fatalf("deployment = %s should classify as headpin, got %q", variant, dep)
		}
	}
}

func TestDetect_DefaultsToKatello(t *testing.T) {
	path := writeConfig(t, "ssl = true\ndeployment = katello\n")
	dep, err := Detect("", path)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if dep != Katello {
		t.Fatalf("expected katello, got %q", dep)
	}
}

func TestDetect_IgnoresNonAssignmentMentions(t *testing.T) {
	path := writeConfig(t, "# deployment = headpin is a choice\nsetting = headpin-adjacent\n")
	dep, err := Detect("", path)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if dep != Katello {
		t.Fatalf("commented or partial mentions must not match, got %q", dep)
	}
}

func TestDetect_UnreadableConfigIsFatal(t *testing.T) {
	_, err := Detect("", filepath.Join(t.TempDir(), "missing.conf"))
	if err == nil {
		t.Fatalf("expected error for unreadable config")
	}
	if status.CodeOf(err) != status.DeploymentError {
		t.Fatalf("expected deployment-detection exit code, got %d", status.CodeOf(err))
	}
}
