package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bdragon300/tusclient"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <location>",
	Short: "Show upload progress and metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cl, err := cfg.NewClient()
		if err != nil {
			return err
		}
		info, err := cl.GetInfo(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printInfo(cmd.OutOrStdout(), info)
		return nil
	},
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Show server capabilities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cl, err := cfg.NewClient()
		if err != nil {
			return err
		}
		info, err := cl.GetServerInfo(cmd.Context(), "")
		if err != nil {
			return err
		}
		printServerInfo(cmd.OutOrStdout(), info)
		return nil
	},
}

var createCmd = &cobra.Command{
	Use:   "create <file>",
	Short: "Create an upload for a local file and print its location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		finfo, err := os.Stat(args[0])
		if err != nil {
			return err
		}
		pairs, err := cmd.Flags().GetStringToString("meta")
		if err != nil {
			return err
		}
		md := map[string]string{"filename": filepath.Base(args[0])}
		for k, v := range pairs {
			md[k] = v
		}

		cl, err := cfg.NewClient()
		if err != nil {
			return err
		}
		loc, err := cl.CreateWithMetadata(cmd.Context(), "", finfo.Size(), md)
		if err != nil {
			return err
		}
		slog.Debug("upload created", "location", loc, "size", finfo.Size())
		fmt.Fprintln(cmd.OutOrStdout(), loc)
		return nil
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload <location> <file>",
	Short: "Upload a local file, resuming from the offset the server has",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()

		cl, err := cfg.NewClient()
		if err != nil {
			return err
		}
		var uploaded int64
		cl.OnProgress = func(offset, size int64) {
			uploaded = offset
			slog.Info("progress",
				"uploaded", humanize.IBytes(uint64(offset)),
				"total", humanize.IBytes(uint64(size)),
				"percent", fmt.Sprintf("%.1f", float64(offset)/float64(size)*100),
			)
		}
		if err = cl.Upload(cmd.Context(), args[0], f); err != nil {
			return fmt.Errorf("server acknowledged %s, resume by running the same command: %w", humanize.IBytes(uint64(uploaded)), err)
		}
		slog.Info("upload complete", "location", args[0])
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <location>",
	Short: "Terminate an upload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cl, err := cfg.NewClient()
		if err != nil {
			return err
		}
		return cl.Delete(cmd.Context(), args[0])
	},
}

func init() {
	createCmd.Flags().StringToString("meta", nil, "extra metadata key=value pairs")
}

func printInfo(w io.Writer, info tusclient.UploadInfo) {
	total := "unknown"
	if info.TotalSize != tusclient.SizeUnknown {
		total = humanize.IBytes(uint64(info.TotalSize))
	}
	fmt.Fprintf(w, "uploaded: %s\n", humanize.IBytes(uint64(info.BytesUploaded)))
	fmt.Fprintf(w, "total:    %s\n", total)
	if info.Expires != nil {
		fmt.Fprintf(w, "expires:  %s\n", humanize.Time(*info.Expires))
	}
	keys := make([]string, 0, len(info.Metadata))
	for k := range info.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "meta %s: %s\n", k, info.Metadata[k])
	}
}

func printServerInfo(w io.Writer, info tusclient.ServerInfo) {
	exts := make([]string, len(info.Extensions))
	for i, e := range info.Extensions {
		exts[i] = e.String()
	}
	maxSize := "unlimited"
	if info.MaxUploadSize != tusclient.SizeUnknown {
		maxSize = humanize.IBytes(uint64(info.MaxUploadSize))
	}
	fmt.Fprintf(w, "versions:   %s\n", strings.Join(info.SupportedVersions, ", "))
	fmt.Fprintf(w, "extensions: %s\n", strings.Join(exts, ", "))
	fmt.Fprintf(w, "max size:   %s\n", maxSize)
}
