package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestSeedCmd_Help(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"seed", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("seed --help failed: %v", err)
	}
	if !strings.Contains(buf.String(), "admin") {
		t.Errorf("expected help to list 'admin' subcommand, got: %s", buf.String())
	}
}

func TestSeedAdminCmd_RequiresEmail(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"seed", "admin"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error when --email is missing")
	}
}

func TestSeedAdminCmd_WithPasswordFlag(t *testing.T) {
	cfgPath := writeSQLiteConfig(t)

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{
		"seed", "admin",
		"--config", cfgPath,
		"--email", "tpo@campus.test",
		"--password", "secret123",
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("seed admin failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "tpo@campus.test") {
		t.Errorf("expected output to mention the email, got: %s", out)
	}
	if !strings.Contains(out, "TPO_ADMIN") {
		t.Errorf("expected output to mention the role, got: %s", out)
	}
}

func TestSeedAdminCmd_PromptsForPassword(t *testing.T) {
	cfgPath := writeSQLiteConfig(t)

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader("secret123\n"))
	cmd.SetArgs([]string{
		"seed", "admin",
		"--config", cfgPath,
		"--email", "tpo@campus.test",
	})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("seed admin failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Password:") {
		t.Errorf("expected password prompt, got: %s", out)
	}
	if !strings.Contains(out, "Admin account ready") {
		t.Errorf("expected success message, got: %s", out)
	}
}

func TestSeedAdminCmd_ShortPassword(t *testing.T) {
	cfgPath := writeSQLiteConfig(t)

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{
		"seed", "admin",
		"--config", cfgPath,
		"--email", "tpo@campus.test",
		"--password", "abc",
	})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for short password")
	}
	if !strings.Contains(err.Error(), "at least 6 characters") {
		t.Errorf("error = %q, want to mention minimum length", err.Error())
	}
}
