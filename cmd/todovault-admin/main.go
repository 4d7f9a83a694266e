// Package main is the entry point for the todovault admin CLI.
// This tool provides read-only inspection and task purging against the same
// store the server uses.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/okovalenko/todovault/internal/config"
	"github.com/okovalenko/todovault/internal/kv"
	"github.com/okovalenko/todovault/internal/kv/backends"
	"github.com/okovalenko/todovault/internal/service"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	yes := flag.Bool("yes", false, "confirm destructive operations")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]

	switch command {
	case "version":
		fmt.Printf("todovault admin CLI\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "users":
		withServices(*configPath, func(ctx context.Context, accounts *service.AccountService, _ *service.SessionService, _ *service.TaskService) error {
			users, err := accounts.List(ctx)
			if err != nil {
				return err
			}
			if len(users) == 0 {
				fmt.Println("no registered users")
				return nil
			}
			for _, u := range users {
				fmt.Println(u.Username)
			}
			return nil
		})

	case "history":
		withServices(*configPath, func(ctx context.Context, _ *service.AccountService, sessions *service.SessionService, _ *service.TaskService) error {
			history, err := sessions.History(ctx)
			if err != nil {
				return err
			}
			if len(history) == 0 {
				fmt.Println("no login history")
				return nil
			}
			for _, ts := range history {
				fmt.Println(ts)
			}
			return nil
		})

	case "tasks":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: todovault-admin tasks <username>")
			os.Exit(1)
		}
		withServices(*configPath, func(ctx context.Context, _ *service.AccountService, _ *service.SessionService, tasks *service.TaskService) error {
			list, err := tasks.List(ctx, args[1])
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Println("no tasks")
				return nil
			}
			for _, t := range list {
				status := " "
				if t.Completed {
					status = "x"
				}
				fmt.Printf("[%s] %s  %s\n", status, t.ID, t.Text)
			}
			return nil
		})

	case "purge-tasks":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: todovault-admin -yes purge-tasks <username>")
			os.Exit(1)
		}
		withServices(*configPath, func(ctx context.Context, _ *service.AccountService, _ *service.SessionService, tasks *service.TaskService) error {
			if err := tasks.ClearAll(ctx, args[1], *yes); err != nil {
				return err
			}
			fmt.Printf("tasks purged for %s\n", args[1])
			return nil
		})

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// withServices opens the configured store, builds the services and runs fn.
func withServices(configPath string, fn func(context.Context, *service.AccountService, *service.SessionService, *service.TaskService) error) {
	cfg := config.MustLoad(configPath)
	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	factory := kv.NewFactory(cfg.Store, logger, backends.All())
	store, err := factory.Open(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	accounts := service.NewAccountService(store, logger)
	sessions := service.NewSessionService(store, logger)
	tasks := service.NewTaskService(store, logger)

	if err := fn(ctx, accounts, sessions, tasks); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`todovault admin CLI

Usage:
  todovault-admin [flags] <command> [arguments]

Commands:
  users                List registered usernames
  history              Show the recent login history
  tasks <username>     List a user's tasks
  purge-tasks <user>   Remove all tasks for a user (requires -yes)
  version              Print version information
  help                 Show this help message

Flags:
  -config <path>       Path to config file
  -yes                 Confirm destructive operations

Examples:
  todovault-admin users
  todovault-admin tasks alice
  todovault-admin -yes purge-tasks alice`)
}
