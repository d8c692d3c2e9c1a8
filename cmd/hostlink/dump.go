package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hostlink/internal/snapshot"
)

var (
	dumpOutput string
	dumpCached string
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write a msgpack snapshot of the namespace tree",
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpOutput, "output", "o", "", "write the snapshot to a file instead of the cache")
	dumpCmd.Flags().StringVar(&dumpCached, "name", "demo", "snapshot name inside the disk cache")
}

func runDump(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	top := newTop(cfg)
	// Materialize the tree before capturing it.
	top.Root().TryGetPackageAny("")
	payload := snapshot.Capture(top)

	if dumpOutput != "" {
		f, err := os.Create(dumpOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := payload.Write(f); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d packages to %s\n", len(payload.Packages), dumpOutput)
		return nil
	}

	cache, err := snapshot.OpenCache("hostlink")
	if err != nil {
		return err
	}
	if err := cache.Put(dumpCached, payload); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "cached %d packages as %q\n", len(payload.Packages), dumpCached)
	return nil
}
