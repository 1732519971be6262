package branding

import "testing"

func TestIdentity(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"CLIName", CLIName(), "stamp"},
		{"DisplayName", DisplayName(), "Stamp"},
		{"HomeDir", HomeDir(), ".stamp"},
		{"EnvPrefix", EnvPrefix(), "STAMP"},
		{"GoModule", GoModule(), "github.com/agentx-labs/stamp"},
		{"TemplatesDir", TemplatesDir(), "templates"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s() = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
	if Description() == "" {
		t.Error("Description() is empty")
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("templates_dir"); got != "STAMP_TEMPLATES_DIR" {
		t.Errorf("EnvVar(templates_dir) = %q, want %q", got, "STAMP_TEMPLATES_DIR")
	}
}
