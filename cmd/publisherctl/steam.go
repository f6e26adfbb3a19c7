package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
	"github.com/forgeworks/publisher-pipeline/internal/steampublisher"
)

func cmdSteam(args []string) {
	if len(args) == 0 {
		printUsage("usage: publisherctl steam <init|execute|status|history|cancel>")
		return
	}
	switch args[0] {
	case "init":
		cmdSteamInit(args[1:])
	case "execute":
		cmdSteamExecute(args[1:])
	case "status":
		cmdSteamStatus(args[1:])
	case "history":
		cmdSteamHistory(args[1:])
	case "cancel":
		cmdSteamCancel(args[1:])
	default:
		printUnknown("steam", args[0])
	}
}

func cmdSteamInit(args []string) {
	fs := flag.NewFlagSet("steam init", flag.ExitOnError)
	projectID := fs.String("project-id", "", "project id")
	projectPath := fs.String("project-path", ".", "project root directory")
	appID := fs.String("app-id", "", "Steam app id")
	fs.Parse(args)

	if *projectID == "" {
		fatalf("--project-id is required")
	}
	cfg := steampublisher.DefaultConfig(*projectID, *projectPath)
	cfg.AppID = *appID

	p := steampublisher.New(*projectPath, nil, nil)
	created, err := p.Init(cfg)
	if err != nil {
		fatalf("init: %v", err)
	}
	if !created {
		fmt.Println(styleDim("namespace already initialized"))
		return
	}
	fmt.Println(styleSuccess("initialized .steam-publisher"))
}

func cmdSteamExecute(args []string) {
	fs := flag.NewFlagSet("steam execute", flag.ExitOnError)
	projectPath := fs.String("project-path", ".", "project root directory")
	dryRun := fs.Bool("dry-run", false, "build argv without invoking steamcmd")
	targets := fs.String("targets", "", "comma-separated depot keys to run")
	branch := fs.String("branch", "", "override configured branch")
	description := fs.String("description", "", "override build description")
	fs.Parse(args)

	p := steampublisher.New(*projectPath, nil, nil)
	opts := publisher.ExecOptions{
		DryRun: *dryRun, Targets: splitCSV(*targets),
		Branch: *branch, BuildDescription: *description,
	}

	var exec publisher.Executor
	if !*dryRun {
		exec = publisher.NewProcessExecutor()
	}

	run, err := p.Coordinator.Execute(context.Background(), opts, exec, func(targetKey, message string) {
		if ansiEnabled {
			fmt.Printf("%s %s\n", styleDim("["+targetKey+"]"), message)
		}
	})
	if err != nil {
		fatalf("execute: %v", err)
	}
	fmt.Println(steampublisher.Full(run))
	if !steampublisher.IsSuccessful(run) {
		os.Exit(1)
	}
}

func cmdSteamStatus(args []string) {
	fs := flag.NewFlagSet("steam status", flag.ExitOnError)
	projectPath := fs.String("project-path", ".", "project root directory")
	fs.Parse(args)

	p := steampublisher.New(*projectPath, nil, nil)
	state, ok, err := p.Store.Read()
	if err != nil {
		fatalf("status: %v", err)
	}
	if !ok {
		fmt.Println(styleDim("not initialized"))
		return
	}
	fmt.Printf("project: %s\n", state.Config.ProjectID)
	fmt.Printf("running: %s\n", boolLabel(state.IsRunning))
	fmt.Printf("totalRuns: %d\n", state.TotalRuns)
	if state.LastRunID != nil {
		fmt.Printf("lastRun: %s\n", *state.LastRunID)
	}
}

func cmdSteamHistory(args []string) {
	fs := flag.NewFlagSet("steam history", flag.ExitOnError)
	projectPath := fs.String("project-path", ".", "project root directory")
	limit := fs.Int("limit", 10, "max runs to show")
	fs.Parse(args)

	p := steampublisher.New(*projectPath, nil, nil)
	result, err := p.History.List(publisher.Query{Limit: *limit})
	if err != nil {
		fatalf("history: %v", err)
	}
	for _, run := range result.Runs {
		fmt.Println(steampublisher.OneLine(run))
	}
	fmt.Println(styleDim(fmt.Sprintf("%d of %d total", len(result.Runs), result.TotalCount)))
}

func cmdSteamCancel(args []string) {
	fs := flag.NewFlagSet("steam cancel", flag.ExitOnError)
	projectPath := fs.String("project-path", ".", "project root directory")
	fs.Parse(args)

	p := steampublisher.New(*projectPath, nil, nil)
	cancelled, err := p.Coordinator.Cancel()
	if err != nil {
		fatalf("cancel: %v", err)
	}
	if cancelled {
		fmt.Println(styleSuccess("cancelled"))
	} else {
		fmt.Println(styleDim("no run in progress"))
	}
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
