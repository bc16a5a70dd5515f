package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/allofart/internal/artist"
	"github.com/handiism/allofart/internal/config"
	"github.com/handiism/allofart/internal/detail"
	"github.com/handiism/allofart/internal/errmsg"
	"github.com/handiism/allofart/internal/gallery"
	apphttp "github.com/handiism/allofart/internal/http"
	"github.com/handiism/allofart/internal/model"
	"github.com/handiism/allofart/internal/share"
	"github.com/handiism/allofart/internal/viewport"
)

func (a *app) httpClient() *apphttp.Client {
	return apphttp.NewClient(
		apphttp.WithTimeout(a.settings.HTTPTimeout()),
		apphttp.WithUserAgent(a.settings.UserAgent),
	)
}

func (a *app) newArtistCmd() *cobra.Command {
	var (
		columns int
		tabName string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "artist <id>",
		Short: "Print an artist record and how the page lays it out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, ok := model.ParseTab(tabName)
			if !ok {
				return fmt.Errorf("unknown tab %q (want about, life or paintings)", tabName)
			}

			ctx, cancel := signalContext(cmd)
			defer cancel()

			window := viewport.NewWindow(a.settings.CellWidth)
			window.Resize(columns)

			ctrl := detail.NewController(
				artist.NewClient(a.httpClient(), a.settings.APIURL),
				a.settings.DetailBreakpoint(),
				a.logger,
			)
			ctrl.Mount(window, nil)
			defer ctrl.Unmount()

			if err := ctrl.Load(ctx, args[0]); err != nil {
				return errors.New(errmsg.FormatWith(errmsg.OpArtistLoad, args[0], err))
			}
			ctrl.SelectTab(tab)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(ctrl.Record())
			}
			printDecision(out, ctrl.Decision(), window, a.settings)
			return nil
		},
	}

	cmd.Flags().IntVar(&columns, "columns", 120, "Terminal width in columns used for the layout")
	cmd.Flags().StringVar(&tabName, "tab", "about", "Selected tab: about, life or paintings")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw record as JSON")
	return cmd
}

func printDecision(w io.Writer, d detail.Decision, window *viewport.Window, settings *config.Settings) {
	a := d.Record
	fmt.Fprintf(w, "%s\n", a.Name)
	fmt.Fprintln(w, strings.Repeat("━", 40))
	if a.Year != "" {
		fmt.Fprintf(w, "Years:       %s\n", a.Year)
	}
	if a.Genre != "" {
		fmt.Fprintf(w, "Genre:       %s\n", a.Genre)
	}
	if a.Nation != "" {
		fmt.Fprintf(w, "Nationality: %s\n", a.Nation)
	}
	if p := a.Portrait(); p != "" {
		fmt.Fprintf(w, "Portrait:    %s\n", model.ImageURL(settings.AssetBase(), p))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Layout:      %s (%d columns, %d units, breakpoint %d)\n",
		d.Kind, window.Columns(), window.Width(), settings.DetailBreakpoint())
	if d.ShowTabs {
		fmt.Fprintf(w, "Tab:         %s (%.0f%%)\n", d.Tab, d.Progress*100)
	}
	names := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		names[i] = s.String()
	}
	fmt.Fprintf(w, "Sections:    %s\n", strings.Join(names, ", "))

	for _, s := range d.Sections {
		switch s {
		case model.TabAbout:
			if a.ShortDescription != "" {
				fmt.Fprintf(w, "\n%s\n", a.ShortDescription)
			}
		case model.TabLife:
			if a.LongDescription != "" {
				fmt.Fprintf(w, "\n%s\n", a.LongDescription)
			}
		case model.TabPaintings:
			fmt.Fprintf(w, "\nPaintings (%d):\n", len(d.Gallery))
			for i, img := range d.Gallery {
				fmt.Fprintf(w, "  %d. %s\n", i+1, model.ImageURL(settings.AssetBase(), img))
			}
		}
	}
}

func (a *app) newGalleryCmd() *cobra.Command {
	var (
		dir     string
		maxSize int
	)

	cmd := &cobra.Command{
		Use:   "gallery <id>",
		Short: "Save the portrait and paintings of an artist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir != "" {
				a.settings.GalleryDir = dir
			}
			if cmd.Flags().Changed("max-size") {
				a.settings.GalleryMaxSize = maxSize
			}

			ctx, cancel := signalContext(cmd)
			defer cancel()

			client := a.httpClient()
			record, err := artist.NewClient(client, a.settings.APIURL).Fetch(ctx, args[0])
			if err != nil {
				return errors.New(errmsg.FormatWith(errmsg.OpArtistLoad, args[0], err))
			}

			out := cmd.OutOrStdout()
			saver := gallery.NewSaver(a.settings, client, func(e gallery.ProgressEvent) {
				if e.Level == gallery.LevelVerbose && !a.verbose {
					return
				}
				fmt.Fprintln(out, progressPrefix(e.Level)+e.Message)
			})

			fmt.Fprintf(out, "Saving %s...\n", record.Name)
			summary, err := saver.Save(ctx, record)
			if err != nil {
				if ctx.Err() != nil {
					return errors.New("gallery export cancelled")
				}
				return errors.New(errmsg.Format(errmsg.OpGallerySave, err))
			}
			if summary.Files == 0 {
				return nil
			}
			fmt.Fprintf(out, "Done: %d/%d images, %s\n",
				summary.Files, summary.Files+summary.Failed, humanize.Bytes(uint64(summary.Bytes)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "o", "", "Output directory (overrides config)")
	cmd.Flags().IntVar(&maxSize, "max-size", 0, "Resize images to fit this many pixels (0 keeps originals)")
	return cmd
}

func progressPrefix(level gallery.ProgressLevel) string {
	switch level {
	case gallery.LevelError:
		return "✗ "
	case gallery.LevelWarning:
		return "! "
	case gallery.LevelSuccess:
		return "✓ "
	default:
		return "  "
	}
}

func (a *app) newShareCmd() *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "share <result-id>",
		Short: "Share an analysis result link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			feed := share.NewFeed(a.settings.ShareURL, args[0])
			out := cmd.OutOrStdout()

			if printOnly {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(feed)
			}

			if err := share.Share(share.NewClipboardSDK(), feed); err != nil {
				a.logger.Warn("share failed", zap.Error(err))
				return errors.New(share.Notice(err))
			}
			fmt.Fprintf(out, "Link copied: %s\n", feed.Content.Link.WebURL)
			return nil
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the feed payload instead of sharing it")
	return cmd
}

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the default config file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.DefaultPath())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the current settings to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if err := a.settings.Save(path); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	})

	return cmd
}
