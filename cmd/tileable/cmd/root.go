/*
Copyright © 2024 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	clihander "github.com/apex/log/handlers/cli"
	"github.com/blacktop/go-tileable"
	"github.com/blacktop/go-tileable/internal/config"
	"github.com/blacktop/go-tileable/internal/tui"
	"github.com/blacktop/go-tileable/pkg/termview"
	"github.com/spf13/cobra"
)

// Exit codes
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// usageError marks argument problems so Execute can exit with ExitUsage
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

type options struct {
	output      string
	method      tileable.Method
	showPreview bool
	display     bool
	protocol    termview.Protocol
	interactive bool
	configPath  string
	verbose     bool
}

func init() {
	log.SetHandler(clihander.Default)
}

// NewRootCmd builds the tileable command
func NewRootCmd() *cobra.Command {
	opts := &options{
		method:   tileable.Blend,
		protocol: termview.Auto,
	}

	cmd := &cobra.Command{
		Use:   "tileable <input>",
		Short: "Make images seamlessly tileable",
		Long: `Make an image seamlessly tileable using one of four methods:

  offset   shift by half the image and average with the original
  mirror   2x2 canvas of mirrored copies (doubles the size)
  blend    cross-fade opposite edges over 1/8 of the image (default)
  patch    copy interior bands over the opposite edges`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return &usageError{err: err}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0])
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "Output image file (default: <input>_tileable.<ext>)")
	flags.VarP(&opts.method, "method", "m", "Tiling method: offset, mirror, blend or patch")
	flags.BoolVarP(&opts.showPreview, "show-preview", "s", false, "Also write a 2x2 tiled preview, named by inserting _preview before the first '.' of the output file name (directories are left alone)")
	flags.BoolVarP(&opts.display, "display", "d", false, "Print the result (or preview) in the terminal")
	flags.Var(&opts.protocol, "protocol", "Terminal image protocol: auto, kitty, sixel, iterm2 or halfblocks")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "Pick the method interactively")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file (default: $XDG_CONFIG_HOME/tileable/config.yaml)")
	flags.BoolVarP(&opts.verbose, "verbose", "V", false, "Enable verbose logging")

	return cmd
}

// loadConfig reads the config file and merges flags that were not set on
// the command line.
func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	path := opts.configPath
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return config.Config{}, fmt.Errorf("config file: %w", err)
		}
	} else {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if !flags.Changed("method") {
		opts.method = cfg.MethodValue()
	}
	if !flags.Changed("show-preview") {
		opts.showPreview = cfg.ShowPreview
	}
	if !flags.Changed("display") {
		opts.display = cfg.Display
	}
	if !flags.Changed("protocol") {
		opts.protocol = cfg.ProtocolValue()
	}
	return cfg, nil
}

func run(cmd *cobra.Command, opts *options, input string) error {
	if opts.verbose {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log.Infof("Loading image: %s", input)
	src, err := tileable.Load(input)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"width":    src.Width,
		"height":   src.Height,
		"channels": src.Channels,
	}).Info("Image size")

	output := opts.output
	if output == "" {
		output = tileable.OutputPath(input)
	}
	// fail on an unknown extension before doing any work
	if _, err := tileable.FormatFor(output); err != nil {
		return err
	}

	var result *tileable.Buffer
	if opts.interactive {
		opts.method, result, err = tui.Run(filepath.Base(input), src, opts.method)
		if errors.Is(err, tui.ErrAborted) {
			log.Warn("Aborted, nothing written")
			return nil
		}
		if err != nil {
			return err
		}
	} else {
		log.Infof("Applying %s method...", opts.method)
		result, err = tileable.Apply(opts.method, src)
		if err != nil {
			return err
		}
	}

	log.Infof("Saving result: %s", output)
	saveOpts := tileable.SaveOptions{JPEGQuality: cfg.JPEGQuality}
	if err := tileable.SaveWithOptions(result, output, saveOpts); err != nil {
		return err
	}

	shown := result
	if opts.showPreview {
		log.Info("Creating 2x2 tiled preview...")
		preview := tileable.Preview(result)
		previewPath := tileable.PreviewPath(output)
		if err := tileable.SaveWithOptions(preview, previewPath, saveOpts); err != nil {
			return err
		}
		log.Infof("Preview saved: %s", previewPath)
		shown = preview
	}

	if opts.display {
		log.Debugf("Displaying with protocol %s", opts.protocol)
		if err := termview.Print(cmd.OutOrStdout(), shown.Image(), opts.protocol, termview.Options{}); err != nil {
			return fmt.Errorf("failed to display image: %w", err)
		}
	}

	log.Info("Done!")
	return nil
}

// ExitCode maps an error returned by the root command to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue *usageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	return ExitFailure
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		log.Error(err.Error())
		if code := ExitCode(err); code == ExitUsage {
			fmt.Fprint(os.Stderr, root.UsageString())
			os.Exit(code)
		}
		os.Exit(ExitFailure)
	}
}
