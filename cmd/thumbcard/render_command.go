package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"thumbcard/internal/logging"
	"thumbcard/internal/media"
	"thumbcard/internal/render"
	"thumbcard/internal/workers"
)

type renderOptions struct {
	outDir  string
	workers int
	stdout  bool
}

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render ID...",
		Short: "Render cards for one or more videos",
		Long: "Render a 1280x720 card for each video ID or URL. Cards land in --out\n" +
			"(default: the configured cache directory) as {id}_v4.png; existing cards are reused.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, ctx, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Directory to write cards to")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Parallel renders (default: 1.5 per CPU, max 8)")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "Write the PNG to standard output (single ID only)")

	return cmd
}

func runRender(cmd *cobra.Command, ctx *commandContext, opts renderOptions, args []string) error {
	ids, err := parseVideoIDs(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.stdout {
		if len(ids) != 1 {
			return errors.New("--stdout renders exactly one video")
		}
		if ctx.isTerminal(out) {
			return errors.New("refusing to write PNG data to a terminal; redirect stdout or use --out")
		}
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	provider, err := ctx.provider(cmd.Context())
	if err != nil {
		return err
	}

	assets, err := render.LoadAssets(cfg.TitleFont, cfg.MetaFont, cfg.ControlsImage)
	if err != nil {
		return fmt.Errorf("load render assets: %w", err)
	}

	if err := media.InitVips(); err != nil {
		logging.Debug("libvips unavailable: %v", err)
	}
	defer media.ShutdownVips()

	outDir := opts.outDir
	if outDir == "" {
		outDir = cfg.CacheDir
	}
	if opts.stdout && opts.outDir == "" {
		tmp, err := os.MkdirTemp("", "thumbcard-")
		if err != nil {
			return err
		}
		defer os.RemoveAll(tmp)
		outDir = tmp
	}

	gen, err := media.NewGenerator(media.Options{
		CacheDir:   outDir,
		Provider:   provider,
		Downloader: media.NewDownloader(cfg.FetchTimeout),
		Assets:     assets,
	})
	if err != nil {
		return err
	}

	n := opts.workers
	if n <= 0 {
		n = workers.ForMixed(8)
	}

	// Each index is written by exactly one worker.
	paths := make([]string, len(ids))
	errs := workers.Run(cmd.Context(), n, indexes(len(ids)), func(runCtx context.Context, i int) error {
		path, err := gen.GetThumb(runCtx, ids[i])
		paths[i] = path
		return err
	})

	if opts.stdout {
		if errs[0] != nil {
			return fmt.Errorf("%s: %w", ids[0], errs[0])
		}
		return copyFile(out, paths[0])
	}

	failed := 0
	for i, id := range ids {
		if errs[i] != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", id, errs[i])
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", id, paths[i])
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d cards failed", failed, len(ids))
	}
	return nil
}

func indexes(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func copyFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}
