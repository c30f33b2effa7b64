package vtcore

import "testing"

func TestWorkingDirectory_Basic(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b]7;file://localhost/home/user\x07")

	if got, want := term.WorkingDirectory(), "file://localhost/home/user"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestWorkingDirectory_STTerminator(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b]7;file://myhost/var/log\x1b\\")

	if got, want := term.WorkingDirectory(), "file://myhost/var/log"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestWorkingDirectory_Multiple(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b]7;file://localhost/home/user\x07")
	if got, want := term.WorkingDirectory(), "file://localhost/home/user"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	term.WriteString("\x1b]7;file://localhost/tmp\x07")
	if got, want := term.WorkingDirectory(), "file://localhost/tmp"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestWorkingDirectory_NotSet(t *testing.T) {
	term := New(WithSize(24, 80))
	if got := term.WorkingDirectory(); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestWorkingDirectoryPath_Basic(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("\x1b]7;file://localhost/home/user\x07")

	if got, want := term.WorkingDirectoryPath(), "/home/user"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestWorkingDirectoryPath_WithHostname(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("\x1b]7;file://mycomputer.local/var/log/system\x07")

	if got, want := term.WorkingDirectoryPath(), "/var/log/system"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestWorkingDirectoryPath_EmptyHostname(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("\x1b]7;file:///home/user\x07")

	if got, want := term.WorkingDirectoryPath(), "/home/user"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestWorkingDirectoryPath_NotSet(t *testing.T) {
	term := New(WithSize(24, 80))
	if got := term.WorkingDirectoryPath(); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
