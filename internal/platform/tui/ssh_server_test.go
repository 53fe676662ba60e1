package tui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveHostKeyPathCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "keys", "host_key")

	got, err := resolveHostKeyPath(path)
	if err != nil {
		t.Fatalf("resolveHostKeyPath() error = %v", err)
	}
	if got != path {
		t.Errorf("resolveHostKeyPath() = %q, expected %q", got, path)
	}
	if info, err := os.Stat(filepath.Dir(path)); err != nil || !info.IsDir() {
		t.Errorf("key directory not created: %v", err)
	}
}

func TestNewSSHServer(t *testing.T) {
	env := testEnv()
	env.Tilt = &TiltRelay{}
	env.TiltURL = "http://192.168.1.5:8088"

	srv, err := NewSSHServer(SSHServerConfig{
		Address:     "127.0.0.1:0",
		HostKeyPath: filepath.Join(t.TempDir(), "host_key"),
	}, env)
	if err != nil {
		t.Fatalf("NewSSHServer() error = %v", err)
	}

	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q", srv.Addr())
	}
	if srv.Online() != 0 {
		t.Errorf("Online() = %d, expected 0", srv.Online())
	}
	if srv.env.Tilt != nil || srv.env.TiltURL != "" {
		t.Error("remote sessions should not get the local tilt feed")
	}
	if srv.logger == nil {
		t.Error("server should default to a stderr logger")
	}
}
