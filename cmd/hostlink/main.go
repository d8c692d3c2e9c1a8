package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hostlink/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "hostlink",
	Short: "Host interop binder and namespace inspector",
	Long:  `hostlink binds scripting member accesses against introspectable host types and tracks their namespaces`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(namespacesCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(browseCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().String("config", "hostlink.toml", "path to the hostlink configuration file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	flag, _ := cmd.Root().PersistentFlags().GetString("color")
	return flag == "on" || (flag == "auto" && isTerminal(f))
}
