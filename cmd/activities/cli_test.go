package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mergington-hs/activities/internal/api"
	"github.com/mergington-hs/activities/internal/config"
	"github.com/mergington-hs/activities/internal/events"
	"github.com/mergington-hs/activities/internal/registry"
)

func stubServe(t *testing.T, code int) *int {
	t.Helper()
	calls := 0
	original := serveFn
	serveFn = func() int {
		calls++
		return code
	}
	t.Cleanup(func() { serveFn = original })
	return &calls
}

func stubVersion(t *testing.T, version string) {
	t.Helper()
	original := currentVersionFn
	currentVersionFn = func() string { return version }
	t.Cleanup(func() { currentVersionFn = original })
}

func runForTest(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = runCLI(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestNoArgsStartsServer(t *testing.T) {
	calls := stubServe(t, 0)
	code, _, _ := runForTest(t)
	if code != 0 || *calls != 1 {
		t.Fatalf("code = %d, serve calls = %d; want 0 and 1", code, *calls)
	}
}

func TestRootFlagsFallThroughToServe(t *testing.T) {
	calls := stubServe(t, 0)
	code, _, stderr := runForTest(t, "-help")
	if code != 0 {
		t.Fatalf("code = %d, stderr = %q", code, stderr)
	}
	if *calls != 0 {
		t.Fatalf("serve called %d times for -help", *calls)
	}
}

func TestServeCommandRejectsArguments(t *testing.T) {
	calls := stubServe(t, 0)
	code, _, stderr := runForTest(t, "serve", "extra")
	if code != 2 {
		t.Fatalf("code = %d, want 2", code)
	}
	if *calls != 0 {
		t.Fatal("serve ran despite invalid arguments")
	}
	if !strings.Contains(stderr, "unexpected argument") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestVersionCommand(t *testing.T) {
	stubVersion(t, "1.2.3")
	for _, arg := range []string{"version", "-v", "--version"} {
		code, stdout, _ := runForTest(t, arg)
		if code != 0 {
			t.Fatalf("%s: code = %d, want 0", arg, code)
		}
		if want := "activities version 1.2.3\n"; stdout != want {
			t.Fatalf("%s: stdout = %q, want %q", arg, stdout, want)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	code, _, stderr := runForTest(t, "bogus")
	if code != 2 {
		t.Fatalf("code = %d, want 2", code)
	}
	if !strings.Contains(stderr, "unknown command: bogus") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestHelpCommand(t *testing.T) {
	for _, arg := range []string{"help", "-h", "--help"} {
		code, stdout, _ := runForTest(t, arg)
		if code != 0 {
			t.Fatalf("%s: code = %d, want 0", arg, code)
		}
		if !strings.Contains(stdout, "Usage:") {
			t.Fatalf("%s: stdout = %q", arg, stdout)
		}
	}
}

func TestSignupCommandRequiresFlags(t *testing.T) {
	code, _, stderr := runForTest(t, "signup", "-email", "a@x.edu")
	if code != 2 {
		t.Fatalf("code = %d, want 2", code)
	}
	if !strings.Contains(stderr, "-activity and -email are required") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	reg, err := registry.New(registry.Seed())
	if err != nil {
		t.Fatalf("registry.New error: %v", err)
	}
	mux := http.NewServeMux()
	api.Register(mux, reg, events.NewHub())
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestListCommand(t *testing.T) {
	srv := newTestServer(t)

	code, stdout, stderr := runForTest(t, "list", "-server", srv.URL)
	if code != 0 {
		t.Fatalf("code = %d, stderr = %q", code, stderr)
	}
	if !strings.Contains(stdout, "Chess Club: 2/12 enrolled, Fridays, 3:30 PM - 5:00 PM") {
		t.Fatalf("stdout = %q", stdout)
	}
	if !strings.Contains(stdout, "Art Studio") {
		t.Fatalf("stdout missing Art Studio: %q", stdout)
	}
}

func TestListCommandServerDown(t *testing.T) {
	srv := newTestServer(t)
	srv.Close()

	code, _, stderr := runForTest(t, "list", "-server", srv.URL)
	if code != 1 {
		t.Fatalf("code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "failed to list activities") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestSignupCommand(t *testing.T) {
	srv := newTestServer(t)

	code, stdout, stderr := runForTest(t,
		"signup", "-activity", "Chess Club", "-email", "newstudent@mergington.edu", "-server", srv.URL)
	if code != 0 {
		t.Fatalf("code = %d, stderr = %q", code, stderr)
	}
	if !strings.Contains(stdout, "newstudent@mergington.edu signed up for Chess Club") {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestSignupCommandReportsServerDetail(t *testing.T) {
	srv := newTestServer(t)

	code, _, stderr := runForTest(t,
		"signup", "-activity", "Chess Club", "-email", "michael@mergington.edu", "-server", srv.URL)
	if code != 1 {
		t.Fatalf("code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "already signed up") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestSignupCommandUnknownActivity(t *testing.T) {
	srv := newTestServer(t)

	code, _, stderr := runForTest(t,
		"signup", "-activity", "Fake Activity", "-email", "a@x.edu", "-server", srv.URL)
	if code != 1 {
		t.Fatalf("code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "Activity not found") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestResolveServerURLPrefersOverride(t *testing.T) {
	original := loadConfigFn
	loadConfigFn = func() config.Config { return config.Config{ListenAddr: "127.0.0.1:8000"} }
	t.Cleanup(func() { loadConfigFn = original })

	if got := resolveServerURL("http://example.test:9000"); got != "http://example.test:9000" {
		t.Fatalf("resolveServerURL = %q", got)
	}
	if got := resolveServerURL("  "); got != "http://127.0.0.1:8000" {
		t.Fatalf("resolveServerURL = %q, want configured default", got)
	}
}
