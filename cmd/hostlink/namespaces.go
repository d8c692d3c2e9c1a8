package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"hostlink/internal/namespace"
)

var namespacesCmd = &cobra.Command{
	Use:   "namespaces [path]",
	Short: "Print the materialized namespace tree",
	Long:  `Namespaces registers the demo and built-in modules, triggers a scan, and prints the resulting tree (optionally from a dotted path)`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runNamespaces,
}

func runNamespaces(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	top := newTop(cfg)
	node := top.Root()
	if len(args) == 1 {
		for _, seg := range strings.Split(args[0], ".") {
			next, ok := node.TryGetPackage(seg)
			if !ok {
				return fmt.Errorf("no such namespace: %s", args[0])
			}
			node = next
		}
	} else {
		// Trigger the scan the same way a dotted lookup would.
		node.TryGetPackageAny("")
	}

	pkgColor := color.New(color.FgBlue, color.Bold)
	typeColor := color.New(color.FgGreen)
	if !useColor(cmd, os.Stdout) {
		color.NoColor = true
	}
	printNode(cmd, node, 0, pkgColor, typeColor)
	return nil
}

func printNode(cmd *cobra.Command, node *namespace.Tracker, depth int, pkgColor, typeColor *color.Color) {
	indent := strings.Repeat("  ", depth)
	types := node.TypeNames()
	width := 0
	for _, name := range types {
		if w := runewidth.StringWidth(name); w > width {
			width = w
		}
	}
	for _, name := range types {
		pad := strings.Repeat(" ", width-runewidth.StringWidth(name))
		fmt.Fprintf(cmd.OutOrStdout(), "%s%s%s  type\n", indent, typeColor.Sprint(name), pad)
	}
	for _, seg := range node.Children() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", indent, pkgColor.Sprint(seg+"/"))
		if child, ok := node.TryGetPackage(seg); ok {
			printNode(cmd, child, depth+1, pkgColor, typeColor)
		}
	}
}
