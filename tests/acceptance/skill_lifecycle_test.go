package acceptance

import (
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestSkillLifecycle(t *testing.T) {
	bin := requireBinary(t)
	skillsDir := t.TempDir()

	newCmd := exec.Command(bin, "new", "demo-skill", "--dir", skillsDir, "--description", "A demo skill for acceptance tests")
	if output, err := newCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to scaffold skill: %v\n%s", err, output)
	}

	listCmd := exec.Command(bin, "list", "--skill-dirs", skillsDir)
	output, err := listCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Failed to list skills: %v\n%s", err, output)
	}
	if !strings.Contains(string(output), "demo-skill") {
		t.Errorf("List output should contain demo-skill. Got: %s", output)
	}

	validateCmd := exec.Command(bin, "validate", filepath.Join(skillsDir, "demo-skill"))
	output, err = validateCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Failed to validate skill: %v\n%s", err, output)
	}
	if !strings.Contains(string(output), "valid") {
		t.Errorf("Validate output should report the skill as valid. Got: %s", output)
	}

	infoCmd := exec.Command(bin, "info", "demo-skill", "--json", "--skill-dirs", skillsDir)
	output, err = infoCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Failed to show skill info: %v\n%s", err, output)
	}
	if !strings.Contains(string(output), `"name": "demo-skill"`) {
		t.Errorf("Info output should contain the skill name. Got: %s", output)
	}
	if !strings.Contains(string(output), `"example"`) {
		t.Errorf("Info output should list the scaffolded example tool. Got: %s", output)
	}

	execCmd := exec.Command(bin, "exec", "demo-skill", "example", "--input", `{"ping": "pong"}`, "--skill-dirs", skillsDir)
	output, err = execCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Failed to execute tool: %v\n%s", err, output)
	}
	if !strings.Contains(string(output), "pong") {
		t.Errorf("Exec output should echo the input back. Got: %s", output)
	}
}

func TestSkillPrompt(t *testing.T) {
	bin := requireBinary(t)
	skillsDir := t.TempDir()

	newCmd := exec.Command(bin, "new", "prompt-skill", "--dir", skillsDir, "--description", "A skill rendered as a prompt")
	if output, err := newCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to scaffold skill: %v\n%s", err, output)
	}

	promptCmd := exec.Command(bin, "prompt", "prompt-skill", "--skill-dirs", skillsDir)
	output, err := promptCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Failed to render prompt: %v\n%s", err, output)
	}

	outputStr := string(output)
	if !strings.Contains(outputStr, `<skill name="prompt-skill">`) {
		t.Errorf("Prompt output should open a skill element. Got: %s", outputStr)
	}
	if !strings.Contains(outputStr, "<instructions>") || !strings.Contains(outputStr, "</skill>") {
		t.Errorf("Prompt output should contain instructions and close the skill element. Got: %s", outputStr)
	}
}
