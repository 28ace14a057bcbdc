package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	syntree "github.com/alnah/go-syntree"
)

// ErrInvalidLine is returned when --line is outside the file.
var ErrInvalidLine = errors.New("invalid line")

// runNewBlock inserts an empty syntax block template into a Markdown file
// at the given line, the way the editor command does at the cursor.
func runNewBlock(_ context.Context, args []string, flags *newBlockFlags, env *Environment) error {
	if len(args) == 0 {
		return ErrNoInput
	}
	path := args[0]

	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	buf := syntree.NewLineBuffer(string(content))

	line := buf.LineCount() - 1
	if flags.line != 0 {
		if flags.line < 1 || flags.line > buf.LineCount() {
			return fmt.Errorf("%w: %d (file has %d lines)", ErrInvalidLine, flags.line, buf.LineCount())
		}
		line = flags.line - 1
	}

	buf.SetCursor(syntree.Position{Line: line})
	syntree.InsertBlockTemplate(buf)
	body := buf.Cursor().Line + 1

	if flags.stdout {
		_, err := fmt.Fprintln(env.Stdout, buf.String())
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	if err := os.WriteFile(path, []byte(buf.String()), info.Mode().Perm()); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	env.Logger.Debug("inserted syntax block", "file", path, "line", line+1)
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Inserted %s block in %s; write the tree on line %d\n", syntree.BlockLanguage, path, body)
	}
	return nil
}
