package main

import (
	"flag"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/mergington-hs/activities/internal/config"
)

var (
	serveFn          = serve
	loadConfigFn     = config.Load
	currentVersionFn = currentVersion
)

const (
	cmdHelp       = "help"
	flagHelpShort = "-h"
	flagHelpLong  = "--help"
)

func writef(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

func writeln(w io.Writer, args ...any) {
	_, _ = fmt.Fprintln(w, args...)
}

func runCLI(args []string, stdout, stderr io.Writer) int {
	ctx := commandContext{stdout: stdout, stderr: stderr}

	if len(args) == 0 {
		return serveFn()
	}

	switch args[0] {
	case "-v", "--version", "version":
		writef(stdout, "activities version %s\n", currentVersionFn())
		return 0
	case "serve":
		return runServeCommand(ctx, args[1:])
	case "list":
		return runListCommand(ctx, args[1:])
	case "signup":
		return runSignupCommand(ctx, args[1:])
	case cmdHelp, flagHelpShort, flagHelpLong:
		printRootHelp(stdout)
		return 0
	default:
		// Preserve backward compatibility for future root flags.
		if strings.HasPrefix(args[0], "-") {
			return runServeCommand(ctx, args)
		}
		writef(stderr, "unknown command: %s\n\n", args[0])
		printRootHelp(stderr)
		return 2
	}
}

func runServeCommand(ctx commandContext, args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(ctx.stderr)
	help := fs.Bool("help", false, "show help")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *help {
		printServeHelp(ctx.stdout)
		return 0
	}
	if fs.NArg() > 0 {
		writef(ctx.stderr, "unexpected argument(s): %s\n", strings.Join(fs.Args(), " "))
		printServeHelp(ctx.stderr)
		return 2
	}
	return serveFn()
}

func runListCommand(ctx commandContext, args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(ctx.stderr)
	server := fs.String("server", "", "base URL of a running activities server (defaults to the configured listen address)")
	help := fs.Bool("help", false, "show help")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *help {
		printListHelp(ctx.stdout)
		return 0
	}
	if fs.NArg() > 0 {
		writef(ctx.stderr, "unexpected argument(s): %s\n", strings.Join(fs.Args(), " "))
		printListHelp(ctx.stderr)
		return 2
	}

	catalog, err := fetchActivities(newAPIClient(resolveServerURL(*server)))
	if err != nil {
		writef(ctx.stderr, "failed to list activities: %v\n", err)
		return 1
	}
	printCatalog(ctx.stdout, catalog)
	return 0
}

func runSignupCommand(ctx commandContext, args []string) int {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	fs.SetOutput(ctx.stderr)
	activity := fs.String("activity", "", "activity name, exactly as listed")
	email := fs.String("email", "", "student email to enroll")
	server := fs.String("server", "", "base URL of a running activities server (defaults to the configured listen address)")
	help := fs.Bool("help", false, "show help")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *help {
		printSignupHelp(ctx.stdout)
		return 0
	}
	if fs.NArg() > 0 {
		writef(ctx.stderr, "unexpected argument(s): %s\n", strings.Join(fs.Args(), " "))
		printSignupHelp(ctx.stderr)
		return 2
	}
	if *activity == "" || *email == "" {
		writeln(ctx.stderr, "-activity and -email are required")
		printSignupHelp(ctx.stderr)
		return 2
	}

	message, err := submitSignup(newAPIClient(resolveServerURL(*server)), *activity, *email)
	if err != nil {
		writef(ctx.stderr, "signup failed: %v\n", err)
		return 1
	}
	printNotice(ctx.stdout, message)
	return 0
}

// resolveServerURL falls back to the configured listen address so the
// client commands talk to a locally running server by default.
func resolveServerURL(override string) string {
	if v := strings.TrimSpace(override); v != "" {
		return v
	}
	return "http://" + loadConfigFn().ListenAddr
}

func printRootHelp(w io.Writer) {
	writeln(w, "Mergington High School activities service")
	writeln(w, "")
	writeln(w, "Usage:")
	writeln(w, "  activities [serve]")
	writeln(w, "  activities list [-server URL]")
	writeln(w, "  activities signup -activity NAME -email ADDR [-server URL]")
	writeln(w, "")
	writeln(w, "Commands:")
	writeln(w, "  serve      Start the HTTP server (default)")
	writeln(w, "  list       Show the activity catalog of a running server")
	writeln(w, "  signup     Enroll a student in an activity")
	writeln(w, "  version    Print the build version")
}

func printServeHelp(w io.Writer) {
	writeln(w, "Usage:")
	writeln(w, "  activities serve")
	writeln(w, "")
	writeln(w, "Starts the server using config file/env defaults.")
}

func printListHelp(w io.Writer) {
	writeln(w, "Usage:")
	writeln(w, "  activities list [-server URL]")
}

func printSignupHelp(w io.Writer) {
	writeln(w, "Usage:")
	writeln(w, "  activities signup -activity NAME -email ADDR [-server URL]")
}

func currentVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		if strings.TrimSpace(bi.Main.Version) != "" && bi.Main.Version != "(devel)" {
			return bi.Main.Version
		}
	}
	return "dev"
}
