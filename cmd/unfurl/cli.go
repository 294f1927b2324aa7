package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/unfurl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Previewer unfurl.Previewer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Debug     bool          `help:"Log fetches and extractions to stderr"`
	Timeout   time.Duration `short:"t" default:"10s" help:"Fetch timeout per URL"`
	Retries   int           `default:"0" help:"Retry dropped connections up to N times with backoff"`
	UserAgent string        `name:"user-agent" help:"User-Agent header to send instead of the default"`

	Get   GetCmd   `cmd:"" help:"Preview one or more URLs"`
	Watch WatchCmd `cmd:"" help:"Preview URLs read line by line from stdin; a new line supersedes the one in flight"`
}

// OutputFlags are shared by commands that print previews.
type OutputFlags struct {
	JSON           bool   `help:"Print one JSON object per preview"`
	ImagesProperty string `name:"images-property" help:"Metadata namespace for images, e.g. og or twitter (disables image fallbacks)"`
}

// ExtractOptions converts flags into extraction options.
func (f OutputFlags) ExtractOptions() unfurl.ExtractOptions {
	return unfurl.ExtractOptions{ImagesPropertyType: f.ImagesProperty}
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	URLs        []string `arg:"" name:"url" help:"URLs to preview"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`
	OutputFlags `embed:""`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	OutputFlags `embed:""`
}
