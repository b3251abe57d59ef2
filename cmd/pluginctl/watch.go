package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/GoCodeAlone/pluginhub/pluginctlconfig"
	"github.com/GoCodeAlone/pluginhub/validate"
	"github.com/GoCodeAlone/pluginhub/watch"
)

func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	root := fs.String("root", "", "Install root (defaults to the configured install_root)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: pluginctl watch [options]\n\nWatch the install root and re-validate on change, until interrupted.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := pluginctlconfig.Load(pluginctlconfig.FileName)
	if err != nil {
		return err
	}
	installRoot := *root
	if installRoot == "" {
		installRoot = cfg.InstallRoot
	}

	w := watch.New(installRoot, watch.WithOnChange(func(r *validate.Report) {
		if r.IsValid() {
			fmt.Printf("ok: no validation errors\n")
			return
		}
		for _, e := range r.Errors {
			fmt.Fprintf(os.Stderr, "error: %v\n", e)
		}
	}))
	if err := w.Start(); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	return w.Stop()
}
