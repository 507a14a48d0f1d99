// ABOUTME: Entry point for the hearth property MCP server and CLI
// ABOUTME: Routes to MCP, HTTP, and lead/listing commands based on arguments
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/oakfield/hearth/cli"
	"github.com/oakfield/hearth/config"
	"github.com/oakfield/hearth/store"
)

const version = "0.2.0"

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	listingsPath := flag.String("listings", "", "Listings JSONL path (default: XDG data dir)")
	clientsPath := flag.String("clients", "", "Clients JSONL path (default: XDG data dir)")
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("hearth version %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *listingsPath != "" {
		cfg.ListingsPath = *listingsPath
	}
	if *clientsPath != "" {
		cfg.ClientsPath = *clientsPath
	}

	setupLogging(cfg)

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	st, err := store.Open(cfg.ListingsPath, cfg.ClientsPath)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to open datasets")
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "mcp":
		if err := cli.MCPCommand(st); err != nil {
			zlog.Fatal().Err(err).Msg("MCP server failed")
		}

	case "serve":
		if err := cli.ServeCommand(st, cfg.HTTPAddr, commandArgs); err != nil {
			zlog.Fatal().Err(err).Msg("HTTP server failed")
		}

	case "leads":
		if len(commandArgs) == 0 {
			fmt.Println("Error: leads requires a subcommand (list, add)")
			printUsage()
			os.Exit(1)
		}
		var err error
		switch commandArgs[0] {
		case "list":
			err = cli.ListLeadsCommand(st, commandArgs[1:])
		case "add":
			err = cli.AddLeadCommand(st, commandArgs[1:])
		default:
			fmt.Printf("Unknown leads command: %s\n\n", commandArgs[0])
			printUsage()
			os.Exit(1)
		}
		if err != nil {
			zlog.Fatal().Err(err).Msg("command failed")
		}

	case "listings":
		if len(commandArgs) == 0 {
			fmt.Println("Error: listings requires a subcommand (search, avg)")
			printUsage()
			os.Exit(1)
		}
		var err error
		switch commandArgs[0] {
		case "search":
			err = cli.SearchListingsCommand(st, commandArgs[1:])
		case "avg":
			err = cli.AveragePriceCommand(st, commandArgs[1:])
		default:
			fmt.Printf("Unknown listings command: %s\n\n", commandArgs[0])
			printUsage()
			os.Exit(1)
		}
		if err != nil {
			zlog.Fatal().Err(err).Msg("command failed")
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// setupLogging writes to stderr so the stdio MCP transport stays clean.
func setupLogging(cfg *config.Config) {
	zlog.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if cfg.Debug {
		zlog.Logger = zlog.Logger.Level(zerolog.DebugLevel)
	} else {
		zlog.Logger = zlog.Logger.Level(zerolog.InfoLevel)
	}
}

func printUsage() {
	fmt.Println(`hearth - UK property listing MCP server

Usage:
  hearth [flags] <command>

Commands:
  mcp                       Start MCP server on stdio (for assistant integration)
  serve [-addr :8000]       Start MCP over streamable HTTP with widget endpoints
  leads list|add            Manage the lead book
  listings search|avg       Query the listing dataset

Flags:
  -version                  Show version and exit
  -listings <path>          Listings JSONL file
  -clients <path>           Clients JSONL file

Environment:
  HEARTH_LISTINGS_PATH, HEARTH_CLIENTS_PATH, HEARTH_HTTP_ADDR, HEARTH_DEBUG
  (an optional .env file is loaded first)`)
}
