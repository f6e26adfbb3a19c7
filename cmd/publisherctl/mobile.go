package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/forgeworks/publisher-pipeline/internal/mobilepublisher"
	"github.com/forgeworks/publisher-pipeline/internal/publisher"
)

func cmdMobile(args []string) {
	if len(args) == 0 {
		printUsage("usage: publisherctl mobile <init|execute|status|history|cancel>")
		return
	}
	switch args[0] {
	case "init":
		cmdMobileInit(args[1:])
	case "execute":
		cmdMobileExecute(args[1:])
	case "status":
		cmdMobileStatus(args[1:])
	case "history":
		cmdMobileHistory(args[1:])
	case "cancel":
		cmdMobileCancel(args[1:])
	default:
		printUnknown("mobile", args[0])
	}
}

func cmdMobileInit(args []string) {
	fs := flag.NewFlagSet("mobile init", flag.ExitOnError)
	projectID := fs.String("project-id", "", "project id")
	projectPath := fs.String("project-path", ".", "project root directory")
	appVersion := fs.String("app-version", "", "app version header")
	fs.Parse(args)

	if *projectID == "" {
		fatalf("--project-id is required")
	}
	cfg := mobilepublisher.DefaultConfig(*projectID, *projectPath)
	cfg.AppVersion = *appVersion

	p := mobilepublisher.New(*projectPath, nil, nil)
	created, err := p.Init(cfg)
	if err != nil {
		fatalf("init: %v", err)
	}
	if !created {
		fmt.Println(styleDim("namespace already initialized"))
		return
	}
	fmt.Println(styleSuccess("initialized .mobile-publisher"))
}

func cmdMobileExecute(args []string) {
	fs := flag.NewFlagSet("mobile execute", flag.ExitOnError)
	projectPath := fs.String("project-path", ".", "project root directory")
	dryRun := fs.Bool("dry-run", false, "build argv without invoking the store CLI")
	targets := fs.String("targets", "", "comma-separated target keys to run")
	appVersion := fs.String("app-version", "", "override configured app version")
	fs.Parse(args)

	p := mobilepublisher.New(*projectPath, nil, nil)
	opts := publisher.ExecOptions{DryRun: *dryRun, Targets: splitCSV(*targets), AppVersion: *appVersion}

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
	fmt.Println(mobilepublisher.Full(run))
	if !mobilepublisher.IsSuccessful(run) {
		os.Exit(1)
	}
}

func cmdMobileStatus(args []string) {
	fs := flag.NewFlagSet("mobile status", flag.ExitOnError)
	projectPath := fs.String("project-path", ".", "project root directory")
	fs.Parse(args)

	p := mobilepublisher.New(*projectPath, nil, nil)
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

func cmdMobileHistory(args []string) {
	fs := flag.NewFlagSet("mobile history", flag.ExitOnError)
	projectPath := fs.String("project-path", ".", "project root directory")
	limit := fs.Int("limit", 10, "max runs to show")
	fs.Parse(args)

	p := mobilepublisher.New(*projectPath, nil, nil)
	result, err := p.History.List(publisher.Query{Limit: *limit})
	if err != nil {
		fatalf("history: %v", err)
	}
	for _, run := range result.Runs {
		fmt.Println(mobilepublisher.OneLine(run))
	}
	fmt.Println(styleDim(fmt.Sprintf("%d of %d total", len(result.Runs), result.TotalCount)))
}

func cmdMobileCancel(args []string) {
	fs := flag.NewFlagSet("mobile cancel", flag.ExitOnError)
	projectPath := fs.String("project-path", ".", "project root directory")
	fs.Parse(args)

	p := mobilepublisher.New(*projectPath, nil, nil)
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
