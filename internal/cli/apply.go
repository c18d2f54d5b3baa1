package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/Songmu/prompter"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// stdin is where apply reads the incoming preset.
var stdin io.Reader = os.Stdin

var cmdApply = &command{
	Name:        "apply",
	Description: "validate a preset from stdin, show the diff and write it to a file",
	Run: func(ctx context.Context, argv []string, outStream, errStream io.Writer) error {
		fs := flag.NewFlagSet("fxchain apply", flag.ContinueOnError)
		fs.SetOutput(errStream)
		yes := fs.Bool("y", false, "skip confirmation prompts")

		if err := fs.Parse(argv); err != nil {
			return err
		}

		if fs.NArg() < 1 {
			return fmt.Errorf("no preset file specified")
		}

		return applyPreset(fs.Arg(0), stdin, outStream, *yes)
	},
}

func applyPreset(path string, input io.Reader, out io.Writer, yes bool) error {
	incoming, err := io.ReadAll(input)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	newYAML, err := normalizeState(incoming)
	if err != nil {
		return fmt.Errorf("invalid preset: %w", err)
	}

	current, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	currentYAML, err := normalizeState(current)
	if err != nil {
		return fmt.Errorf("current preset %s is invalid: %w", path, err)
	}

	if string(currentYAML) == string(newYAML) {
		fmt.Fprintln(out, "No changes to apply.")
		return nil
	}

	fmt.Fprintf(out, "The following changes will be applied:\n%s\n", generateDiff(string(currentYAML), string(newYAML)))

	if !yes {
		restore, err := attachTerminal(input)
		if err != nil {
			return err
		}
		defer restore()

		if !prompter.YN("Apply these changes?", true) {
			fmt.Fprintln(out, "Changes not applied.")
			return nil
		}
	}

	if err := os.WriteFile(path, newYAML, 0o644); err != nil {
		return fmt.Errorf("failed to write preset: %w", err)
	}

	fmt.Fprintln(out, "Preset updated successfully.")

	return nil
}

// attachTerminal points os.Stdin at the controlling terminal while the
// preset itself arrives through a pipe or redirect.
func attachTerminal(input io.Reader) (func(), error) {
	file, ok := input.(*os.File)
	if !ok || file != os.Stdin {
		return func() {}, nil
	}

	consoleDevice := "/dev/tty"
	if runtime.GOOS == "windows" {
		consoleDevice = "CON"
	}

	tty, err := os.OpenFile(consoleDevice, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", consoleDevice, err)
	}

	oldStdin := os.Stdin
	os.Stdin = tty

	return func() {
		os.Stdin = oldStdin
		tty.Close()
	}, nil
}

func generateDiff(oldYAML, newYAML string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldYAML, newYAML, false)

	return dmp.DiffPrettyText(diffs)
}
