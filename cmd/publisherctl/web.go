package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/forgeworks/publisher-pipeline/internal/publisher"
	"github.com/forgeworks/publisher-pipeline/internal/webpublisher"
)

func cmdWeb(args []string) {
	if len(args) == 0 {
		printUsage("usage: publisherctl web <init|execute|status|history|cancel>")
		return
	}
	switch args[0] {
	case "init":
		cmdWebInit(args[1:])
	case "execute":
		cmdWebExecute(args[1:])
	case "status":
		cmdWebStatus(args[1:])
	case "history":
		cmdWebHistory(args[1:])
	case "cancel":
		cmdWebCancel(args[1:])
	default:
		printUnknown("web", args[0])
	}
}

func cmdWebInit(args []string) {
	fs := flag.NewFlagSet("web init", flag.ExitOnError)
	projectID := fs.String("project-id", "", "project id")
	projectPath := fs.String("project-path", ".", "project root directory")
	fs.Parse(args)

	if *projectID == "" {
		fatalf("--project-id is required")
	}
	cfg := webpublisher.DefaultConfig(*projectID, *projectPath)

	p := webpublisher.New(*projectPath, nil, nil)
	created, err := p.Init(cfg)
	if err != nil {
		fatalf("init: %v", err)
	}
	if !created {
		fmt.Println(styleDim("namespace already initialized"))
		return
	}
	fmt.Println(styleSuccess("initialized .web-publisher"))
}

func cmdWebExecute(args []string) {
	fs := flag.NewFlagSet("web execute", flag.ExitOnError)
	projectPath := fs.String("project-path", ".", "project root directory")
	dryRun := fs.Bool("dry-run", false, "build argv without invoking the hosting CLI")
	targets := fs.String("targets", "", "comma-separated target keys to run")
	fs.Parse(args)

	p := webpublisher.New(*projectPath, nil, nil)
	opts := publisher.ExecOptions{DryRun: *dryRun, Targets: splitCSV(*targets)}

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
	fmt.Println(webpublisher.Full(run))
	if !webpublisher.IsSuccessful(run) {
		os.Exit(1)
	}
}

func cmdWebStatus(args []string) {
	fs := flag.NewFlagSet("web status", flag.ExitOnError)
	projectPath := fs.String("project-path", ".", "project root directory")
	fs.Parse(args)

	p := webpublisher.New(*projectPath, nil, nil)
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

func cmdWebHistory(args []string) {
	fs := flag.NewFlagSet("web history", flag.ExitOnError)
	projectPath := fs.String("project-path", ".", "project root directory")
	limit := fs.Int("limit", 10, "max runs to show")
	fs.Parse(args)

	p := webpublisher.New(*projectPath, nil, nil)
	result, err := p.History.List(publisher.Query{Limit: *limit})
	if err != nil {
		fatalf("history: %v", err)
	}
	for _, run := range result.Runs {
		fmt.Println(webpublisher.OneLine(run))
	}
	fmt.Println(styleDim(fmt.Sprintf("%d of %d total", len(result.Runs), result.TotalCount)))
}

func cmdWebCancel(args []string) {
	fs := flag.NewFlagSet("web cancel", flag.ExitOnError)
	projectPath := fs.String("project-path", ".", "project root directory")
	fs.Parse(args)

	p := webpublisher.New(*projectPath, nil, nil)
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
