package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

var ansiEnabled = computeAnsiEnabled()

func computeAnsiEnabled() bool {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv("TERM")), "dumb") {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func ansi(codes ...string) string {
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func colorize(s string, codes ...string) string {
	if !ansiEnabled || s == "" {
		return s
	}
	return ansi(codes...) + s + ansi("0")
}

func styleHeading(s string) string { return colorize(s, "1", "36") }
func styleCmd(s string) string     { return colorize(s, "1", "32") }
func styleDim(s string) string     { return colorize(s, "90") }
func styleSuccess(s string) string { return colorize(s, "32") }
func styleError(s string) string   { return colorize(s, "31") }
func styleUsage(s string) string   { return colorize(s, "1", "33") }

func styleStatus(s string) string {
	switch strings.ToLower(s) {
	case "succeeded", "skipped":
		return styleSuccess(s)
	case "uploading", "building", "processing", "pending":
		return colorize(s, "33")
	default:
		return styleError(s)
	}
}

func envOr(key, def string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	return val
}

func splitCSV(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printUsage(line string) {
	raw := strings.TrimSpace(line)
	if strings.HasPrefix(raw, "usage:") {
		rest := strings.TrimSpace(strings.TrimPrefix(raw, "usage:"))
		fmt.Printf("%s %s\n", styleUsage("usage:"), rest)
		return
	}
	fmt.Println(styleUsage(raw))
}

func printUnknown(kind, cmd string) {
	kind = strings.TrimSpace(kind)
	if kind != "" {
		kind = kind + " "
	}
	fmt.Fprintf(os.Stderr, "%s %s%s\n", styleError("unknown"), kind+"command:", styleCmd(cmd))
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", styleError("error:"), fmt.Sprintf(format, args...))
	os.Exit(1)
}

func usage() {
	fmt.Println(styleHeading("publisherctl [family] [subcommand] [args]"))
	fmt.Print(`
Drives the Steam / Web / Mobile publish pipelines from the command line.

Usage:
  publisherctl <family> <subcommand> [args...]
  publisherctl help | -h | --help

Families:
  steam   Steam depot builds via steamcmd
  web     static site hosting deploys (netlify, vercel, gh-pages, s3, cloudflare-pages)
  mobile  app store submissions (google-play, app-store)

Each family supports:
  init --project-id <id> [--project-path <path>]
  execute [--dry-run] [--targets a,b,c]
  status
  history [--limit n]
  cancel
`)
}
