package bfio_test

import (
	"bufio"
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tripwire/bf/bf/config"
	"github.com/tripwire/bf/bf/interp"
	"github.com/tripwire/bf/bf/program"
	"github.com/tripwire/bf/bf/tape"
	"github.com/tripwire/bf/internal/bfio"
)

func TestLoadSourceStripsShebang(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.bf")
	if err := os.WriteFile(path, []byte("#!/usr/bin/env bf\n+++."), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	data, err := bfio.LoadSource(path)
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	if string(data) != "+++." {
		t.Errorf("LoadSource() = %q, want %q", data, "+++.")
	}
}

func TestLoadSourceNoShebang(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.bf")
	if err := os.WriteFile(path, []byte("+++."), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	data, err := bfio.LoadSource(path)
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	if string(data) != "+++." {
		t.Errorf("LoadSource() = %q, want %q", data, "+++.")
	}
}

func TestBareHashBangMidProgramIsNotStripped(t *testing.T) {
	// Only a leading shebang is special-cased; '#!' elsewhere is left for
	// the loader, which reads '#' as Debug and '!' as the start of the
	// embedded input.
	path := filepath.Join(t.TempDir(), "prog.bf")
	src := "+#!+"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	data, err := bfio.LoadSource(path)
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	if string(data) != src {
		t.Errorf("LoadSource() = %q, want unmodified %q", data, src)
	}
}

func TestDefaultHandlersEndToEnd(t *testing.T) {
	p := program.New()
	if err := p.Load(bfio.BytesToBuffer([]byte(",."))); err != nil {
		t.Fatalf("Load: %v", err)
	}
	it := interp.New(config.New(), p, tape.New())

	in := bufio.NewReader(bytes.NewBufferString("Z"))
	it.SetInputHandler(bfio.DefaultInputHandler, in)

	var out bytes.Buffer
	it.SetOutputHandler(bfio.DefaultOutputHandler, &out)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	it.SetDebugHandler(bfio.DefaultDebugHandler, logger)

	if err := it.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "Z" {
		t.Errorf("output = %q, want %q", out.String(), "Z")
	}
}

func TestDefaultDebugHandlerLogsPositionAndValue(t *testing.T) {
	p := program.New()
	if err := p.Load(bfio.BytesToBuffer([]byte(">>+#"))); err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg := config.New()
	cfg.DebugEnabled = true
	it := interp.New(cfg, p, tape.New())

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	it.SetDebugHandler(bfio.DefaultDebugHandler, logger)

	withCapturedStderr(t, func() {
		if err := it.Run(); err != nil {
			t.Fatalf("Run: %v", err)
		}
	})

	if got := logs.String(); !strings.Contains(got, "position=2") || !strings.Contains(got, "value=1") {
		t.Errorf("debug log = %q, want it to contain position=2 and value=1", got)
	}
}

func TestDefaultDebugHandlerDumpsWholeTape(t *testing.T) {
	p := program.New()
	if err := p.Load(bfio.BytesToBuffer([]byte(">+>++#"))); err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg := config.New()
	cfg.DebugEnabled = true
	it := interp.New(cfg, p, tape.New())
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	it.SetDebugHandler(bfio.DefaultDebugHandler, logger)

	dump := withCapturedStderr(t, func() {
		if err := it.Run(); err != nil {
			t.Fatalf("Run: %v", err)
		}
	})

	// Three visited cells: 0, 1, 2 (values 0, 1, 2); cursor sits on cell 2.
	want := "[0x0 0x1 <0x2>]\n"
	if dump != want {
		t.Errorf("stderr dump = %q, want %q", dump, want)
	}
}

// withCapturedStderr redirects os.Stderr for the duration of fn and
// returns everything written to it.
func withCapturedStderr(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	orig := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = orig }()

	fn()

	w.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("read captured stderr: %v", err)
	}
	return buf.String()
}
