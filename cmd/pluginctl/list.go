package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/GoCodeAlone/pluginhub/discovery"
	"github.com/GoCodeAlone/pluginhub/pluginctlconfig"
	"github.com/GoCodeAlone/pluginhub/validate"
)

// validationExitError marks an error as a validation failure for exit-code
// classification; it does not change the message surfaced to the user.
type validationExitError struct {
	err error
}

func (e *validationExitError) Error() string { return e.err.Error() }
func (e *validationExitError) Unwrap() error { return e.err }

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	root := fs.String("root", "", "Install root (defaults to the configured install_root)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: pluginctl list [options]\n\nDiscover plugins under the install root and report validation issues.\n\nOptions:\n")
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

	plugins, discErr := discovery.Discover(installRoot)
	if discErr != nil {
		fmt.Fprintf(os.Stderr, "%s discovery reported errors: %v\n", color.YellowString("warning:"), discErr)
	}

	if len(plugins) == 0 {
		fmt.Println("No plugins found.")
		return nil
	}

	fmt.Printf("%-24s %-10s %s\n", "NAME", "VERSION", "PATH")
	fmt.Printf("%-24s %-10s %s\n", "----", "-------", "----")
	for _, p := range plugins {
		fmt.Printf("%-24s %-10s %s\n", p.Manifest.Name, p.Manifest.Version, p.Path)
	}

	report := validate.Validate(plugins)
	for _, derr := range report.Errors {
		fmt.Println(color.RedString("error: ") + derr.Error())
	}
	for _, w := range report.DanglingWarns {
		fmt.Println(color.YellowString("warning: ") + w.String())
	}
	for _, w := range report.SemverWarns {
		fmt.Println(color.YellowString("warning: ") + w.String())
	}

	if !report.IsValid() {
		return &validationExitError{err: fmt.Errorf("%d validation error(s)", len(report.Errors))}
	}
	return nil
}
