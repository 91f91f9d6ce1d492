// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

// The driftline command is a small CLI over the Driftline API: inspect
// the session user, post to a thread, and run batch request files.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/driftline-chat/driftline-go/api"
	"github.com/driftline-chat/driftline-go/batch"
	"github.com/driftline-chat/driftline-go/lib/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		printUsage()
		return fmt.Errorf("subcommand required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	subcommand := os.Args[1]
	switch subcommand {
	case "whoami":
		return runWhoami(ctx, os.Args[2:])
	case "send":
		return runSend(ctx, os.Args[2:])
	case "batch":
		return runBatch(ctx, os.Args[2:])
	case "-h", "--help", "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown subcommand: %q", subcommand)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: driftline <subcommand> [flags]

Subcommands:
  whoami   Print the session user
  send     Post a comment to a thread
  batch    Run a JSONC batch request file

Configuration is read from the file named by DRIFTLINE_CONFIG (or
--config). DRIFTLINE_TOKEN overrides the configured token.

Run 'driftline <subcommand> --help' for subcommand flags.
`)
}

// newClient builds an API client from the configuration file.
func newClient(configPath string) (*api.Client, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	clientConfig := api.ClientConfig{
		Token:             cfg.Token,
		BaseURL:           cfg.BaseURL,
		RequestsPerSecond: cfg.RequestsPerSecond,
		MaxRetries:        cfg.MaxRetries,
	}
	if cfg.TimeoutSeconds > 0 {
		clientConfig.HTTPClient = &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		}
	}
	return api.NewClient(clientConfig)
}

func runWhoami(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("whoami", pflag.ContinueOnError)
	configPath := flags.String("config", "", "path to the config file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*configPath)
	if err != nil {
		return err
	}

	user, err := client.Users.Current(ctx)
	if err != nil {
		return err
	}
	return writeJSON(user)
}

func runSend(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("send", pflag.ContinueOnError)
	configPath := flags.String("config", "", "path to the config file")
	threadID := flags.Int64("thread", 0, "thread to post to")
	message := flags.String("message", "", "comment content")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *threadID == 0 {
		return fmt.Errorf("--thread is required")
	}
	if *message == "" {
		return fmt.Errorf("--message is required")
	}

	client, err := newClient(*configPath)
	if err != nil {
		return err
	}

	comment, err := client.Comments.Add(ctx, api.AddCommentRequest{
		ThreadID: *threadID,
		Content:  *message,
	})
	if err != nil {
		return err
	}
	return writeJSON(comment)
}

// batchFileEntry is one request in a JSONC batch file.
type batchFileEntry struct {
	Method string         `json:"method"`
	Path   string         `json:"path"`
	Params map[string]any `json:"params"`
}

// batchResult is the printable form of one batch outcome.
type batchResult struct {
	Code  int    `json:"code"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

func runBatch(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("batch", pflag.ContinueOnError)
	configPath := flags.String("config", "", "path to the config file")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("usage: driftline batch <file.jsonc>")
	}

	requests, err := parseBatchFile(flags.Arg(0))
	if err != nil {
		return err
	}

	client, err := newClient(*configPath)
	if err != nil {
		return err
	}

	results := client.Batch().Execute(ctx, requests...)

	printable := make([]batchResult, len(results))
	for i, result := range results {
		printable[i] = batchResult{Code: result.Code, Data: result.Data}
		if result.Err != nil {
			printable[i].Error = result.Err.Error()
		}
	}
	return writeJSON(printable)
}

// parseBatchFile reads a JSONC file holding an array of requests and
// converts each entry into a batch descriptor.
func parseBatchFile(path string) ([]batch.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []batchFileEntry
	if err := json.Unmarshal(jsonc.ToJSON(data), &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s contains no requests", path)
	}

	requests := make([]batch.Request, len(entries))
	for i, entry := range entries {
		switch entry.Method {
		case http.MethodGet, "":
			requests[i] = batch.Get(entry.Path, entry.Params)
		case http.MethodPost:
			requests[i] = batch.Post(entry.Path, entry.Params)
		default:
			return nil, fmt.Errorf("entry %d: unsupported method %q", i, entry.Method)
		}
	}
	return requests, nil
}

func writeJSON(value any) error {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
