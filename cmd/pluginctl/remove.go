package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/GoCodeAlone/pluginhub/pluginctlconfig"
)

func runRemove(args []string) error {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	root := fs.String("root", "", "Install root (defaults to the configured install_root)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: pluginctl remove [options] <name>\n\nRemove an installed plugin.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("plugin name is required")
	}

	cfg, err := pluginctlconfig.Load(pluginctlconfig.FileName)
	if err != nil {
		return err
	}
	installRoot := *root
	if installRoot == "" {
		installRoot = cfg.InstallRoot
	}

	name := fs.Arg(0)
	pluginDir := filepath.Join(installRoot, name)
	if _, err := os.Stat(pluginDir); os.IsNotExist(err) {
		return fmt.Errorf("plugin %q is not installed", name)
	}
	if err := os.RemoveAll(pluginDir); err != nil {
		return fmt.Errorf("remove plugin %q: %w", name, err)
	}

	fmt.Printf("removed plugin %q\n", name)
	return nil
}
