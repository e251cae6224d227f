package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/Mroik/render-3d/pkg/core"
	"github.com/Mroik/render-3d/pkg/renderer"
	"github.com/Mroik/render-3d/pkg/scene"
	"github.com/Mroik/render-3d/pkg/terminal"
)

// options holds the parsed command line
type options struct {
	scene    string
	sceneDir string
	list     bool
	frames   int
	delay    time.Duration
	fit      bool
	out      string
	logLevel string
	help     bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	if opts.help {
		printHelp(os.Stdout, opts.sceneDir)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newFlagSet(opts *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("render-3d", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.scene, "scene", "cube", "Scene to render: built-in name, scene file name, or path to a .yaml/.toml file")
	fs.StringVar(&opts.sceneDir, "scene-dir", scene.DefaultDir, "Directory searched for scene files by name")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.IntVar(&opts.frames, "frames", -1, "Frames to render, 0 animates until interrupted (default: 1, or 0 on a terminal)")
	fs.DurationVar(&opts.delay, "delay", 50*time.Millisecond, "Pause between animation frames")
	fs.BoolVar(&opts.fit, "fit", false, "Size the frame to the terminal")
	fs.StringVar(&opts.out, "out", "", "Write each frame as frame_NNNN.png and frame_NNNN.txt into this directory")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	fs.BoolVar(&opts.help, "help", false, "Show help information")
	return fs
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := newFlagSet(&opts, stderr)
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected arguments: %v", fs.Args())
		fmt.Fprintln(stderr, err)
		return opts, err
	}
	return opts, nil
}

func printHelp(w io.Writer, sceneDir string) {
	fmt.Fprintln(w, "ASCII 3D Renderer")
	fmt.Fprintln(w, "Usage: render-3d [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	var opts options
	fs := newFlagSet(&opts, w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	if err := listScenes(w, sceneDir); err != nil {
		fmt.Fprintf(w, "  (%v)\n", err)
	}
}

// run executes the command described by opts
func run(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	level, err := parseLogLevel(opts.logLevel)
	if err != nil {
		return err
	}
	core.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	if opts.list {
		return listScenes(stdout, opts.sceneDir)
	}

	selectedScene, err := createScene(opts.scene, opts.sceneDir)
	if err != nil {
		return err
	}

	stdoutFile, _ := stdout.(*os.File)
	interactive := stdoutFile != nil && terminal.IsTerminal(stdoutFile)

	if opts.fit {
		if stdoutFile == nil {
			return errors.New("-fit needs standard output to be a terminal")
		}
		width, height, err := terminal.Size(stdoutFile)
		if err != nil {
			return err
		}
		selectedScene.Config = terminal.Fit(selectedScene.Config, width, height)
	}

	frames := opts.frames
	if frames < 0 {
		frames = 1
		if interactive && opts.out == "" {
			frames = 0
		}
	}

	if opts.out != "" {
		return exportFrames(ctx, selectedScene, opts.out, frames, stderr)
	}

	display := terminal.NewDisplay(stdout, interactive)
	err = terminal.Animate(ctx, display, selectedScene, terminal.Options{
		Frames: frames,
		Delay:  opts.delay,
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// createScene resolves a scene name for the CLI
func createScene(name, dir string) (*scene.Scene, error) {
	if name == "" {
		return nil, errors.New("no scene given")
	}
	return scene.Create(name, dir)
}

func listScenes(w io.Writer, dir string) error {
	scenes, err := scene.ListScenes(dir)
	if err != nil {
		return err
	}
	for _, s := range scenes {
		fmt.Fprintf(w, "  %-16s %s", s.ID, s.DisplayName)
		if s.Description != "" {
			fmt.Fprintf(w, " - %s", s.Description)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// exportFrames renders frames into dir as PNG images and text files
func exportFrames(ctx context.Context, s *scene.Scene, dir string, frames int, stderr io.Writer) error {
	if frames <= 0 {
		return errors.New("-out needs a positive -frames count")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	bar := progressbar.NewOptions(frames,
		progressbar.OptionSetWriter(stderr),
		progressbar.OptionSetDescription("exporting "+s.Name),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	err := terminal.Animate(ctx, nil, s, terminal.Options{
		Frames: frames,
		OnFrame: func(index int, frame *renderer.Frame, stats renderer.RenderStats) error {
			if err := writeFrame(dir, index, frame); err != nil {
				return err
			}
			return bar.Add(1)
		},
	})
	if err != nil {
		return err
	}
	if err := bar.Finish(); err != nil {
		return err
	}

	fmt.Fprintf(stderr, "Wrote %d frames to %s\n", frames, dir)
	return nil
}

func writeFrame(dir string, index int, frame *renderer.Frame) error {
	base := filepath.Join(dir, fmt.Sprintf("frame_%04d", index))

	if err := os.WriteFile(base+".txt", []byte(frame.String()), 0644); err != nil {
		return fmt.Errorf("error saving frame text: %w", err)
	}

	file, err := os.Create(base + ".png")
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if err := frame.EncodePNG(file); err != nil {
		return fmt.Errorf("error saving PNG: %w", err)
	}
	return file.Close()
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("invalid -log-level %q: %w", s, err)
	}
	return level, nil
}
