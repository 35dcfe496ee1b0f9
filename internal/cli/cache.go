package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tintstack/tintstack/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
	}
	cmd.PersistentFlags().StringVar(&dir, "cache-dir", "", "render cache directory (default ~/.cache/tintstack)")

	cmd.AddCommand(cacheClearCommand(&dir))
	cmd.AddCommand(cacheInfoCommand(&dir))

	return cmd
}

// resolveCacheDir returns the flag value or the XDG default.
func resolveCacheDir(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	return cacheDir()
}

// cacheClearCommand creates the "cache clear" subcommand.
func cacheClearCommand(dirFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached render outputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveCacheDir(*dirFlag)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			if err := fc.Clear(); err != nil {
				return err
			}

			printSuccess("Cleared render cache")
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cacheInfoCommand creates the "cache info" subcommand.
func cacheInfoCommand(dirFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache location and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveCacheDir(*dirFlag)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			entries, bytes := cacheUsage(dir)
			printKeyValue("Directory", dir)
			printKeyValue("Entries", fmt.Sprintf("%d", entries))
			printKeyValue("Size", fmt.Sprintf("%d bytes", bytes))
			return nil
		},
	}
}

// cacheUsage walks the cache directory counting entries and bytes.
// A missing directory counts as empty.
func cacheUsage(dir string) (entries int, bytes int64) {
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		entries++
		bytes += info.Size()
		return nil
	})
	return entries, bytes
}
