// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 30 // Base width for source and target names
	statusWidth = 12 // Width for status text
)

// 🎯 FileOperation represents one converted (or failed) file for logging
type FileOperation struct {
	Source   string // Source path
	Target   string // Target path
	Status   string // Operation status
	Size     int    // Bytes written
	Checksum string // Content hash
	DryRun   bool   // Whether the write was skipped
	Err      error  // Failure cause, nil on success
}

// 📦 BatchOperation represents one invocation over a match set
type BatchOperation struct {
	Pattern         string // Glob pattern
	OutputExtension string // Extension given to targets
	Dir             string // Directory the pattern was resolved in
	Matched         int    // Number of matched files
}

// 🎯 Logger prints conversion progress to the console and mirrors each
// line to the zerolog logger carried by ctx at debug level
type Logger struct {
	console    io.Writer
	mu         sync.Mutex
	currentOp  *BatchOperation
	operations []FileOperation
}

// 🏭 New creates a new logger
func New(console io.Writer) *Logger {
	return &Logger{
		console: console,
		mu:      sync.Mutex{},
	}
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.Err != nil:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.DryRun:
		symbol = '○'
		symbolColor = color.FgYellow
	case op.Status == "overwritten":
		symbol = '⟳'
		symbolColor = color.FgBlue
	case op.Status == "unchanged":
		symbol = '•'
		symbolColor = color.FgCyan
	default:
		symbol = '✓'
		symbolColor = color.FgGreen
	}

	return fmt.Sprintf("%s%s %s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Source),
		color.New(color.Faint).Sprint("->"),
		fmt.Sprintf("%-*s", nameWidth, op.Target),
		fmt.Sprintf("%-*s", statusWidth, op.Status))
}

// 📝 LogFileOperation logs a successful conversion
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	zerolog.Ctx(ctx).Debug().
		Str("source", op.Source).
		Str("target", op.Target).
		Str("status", op.Status).
		Int("size", op.Size).
		Str("checksum", op.Checksum).
		Bool("dry_run", op.DryRun).
		Msg("file converted")
}

// 📝 LogFileFailure logs a file that could not be converted
func (l *Logger) LogFileFailure(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprintf("failed to convert '%s': %v", op.Source, op.Err))

	zerolog.Ctx(ctx).Debug().
		Err(op.Err).
		Str("source", op.Source).
		Str("target", op.Target).
		Msg("file conversion failed")
}

// 📝 StartBatchOperation starts a new batch and prints the match count
func (l *Logger) StartBatchOperation(ctx context.Context, op BatchOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.operations = nil

	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprintf(
		"found %d file(s) matching '%s', converting to %s", op.Matched, op.Pattern, op.OutputExtension))

	zerolog.Ctx(ctx).Debug().
		Str("pattern", op.Pattern).
		Str("output_extension", op.OutputExtension).
		Str("dir", op.Dir).
		Int("matched", op.Matched).
		Msg("starting batch")
}

// 📝 EndBatchOperation ends the current batch
func (l *Logger) EndBatchOperation(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	failed := 0
	for _, op := range l.operations {
		if op.Err != nil {
			failed++
		}
	}

	// structured log only, the console has no aggregate summary
	zerolog.Ctx(ctx).Debug().
		Str("pattern", l.currentOp.Pattern).
		Int("files", len(l.operations)).
		Int("failed", failed).
		Msg("batch complete")

	l.currentOp = nil
	l.operations = nil
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(ctx context.Context, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	zerolog.Ctx(ctx).Debug().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(ctx context.Context, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	zerolog.Ctx(ctx).Debug().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(ctx context.Context, format string, args ...interface{}) {
	l.Info(ctx, fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(ctx context.Context, format string, args ...interface{}) {
	l.Warning(ctx, fmt.Sprintf(format, args...))
}
