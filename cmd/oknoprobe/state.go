// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"okno.org/installer"
)

var (
	flagHive           string
	flagSystem         bool
	flagProduct        string
	flagClientsKey     string
	flagClientStateKey string
	flagWatch          bool
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print a product's install state from a hive file",
	RunE:  runState,
}

func init() {
	stateCmd.Flags().StringVar(&flagHive, "hive", "", "path to the YAML hive file (required)")
	stateCmd.Flags().BoolVar(&flagSystem, "system", false, "read the per machine scope instead of per user")
	stateCmd.Flags().StringVar(&flagProduct, "product", "product", "product name")
	stateCmd.Flags().StringVar(&flagClientsKey, "clients-key", "", "hive key holding version state (required)")
	stateCmd.Flags().StringVar(&flagClientStateKey, "client-state-key", "", "hive key holding install configuration (required)")
	stateCmd.Flags().BoolVar(&flagWatch, "watch", false, "keep running and re-print on hive changes")
	stateCmd.MarkFlagRequired("hive")
	stateCmd.MarkFlagRequired("clients-key")
	stateCmd.MarkFlagRequired("client-state-key")
	rootCmd.AddCommand(stateCmd)
}

func runState(cmd *cobra.Command, args []string) error {
	log := newLogger()

	hive, err := installer.OpenFileHive(flagHive)
	if err != nil {
		return err
	}
	product := installer.Product{
		Name:           flagProduct,
		ClientsKey:     flagClientsKey,
		ClientStateKey: flagClientStateKey,
	}
	printState(hive, product)

	if !flagWatch {
		return nil
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	err = hive.Watch(ctx,
		func() { printState(hive, product) },
		func(err error) { log.Warn("hive reload failed", "err", err) },
	)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func printState(hive installer.Hive, product installer.Product) {
	var state installer.ProductState
	if !state.Initialize(hive, flagSystem, product) {
		fmt.Printf("%s: not installed\n", product.Name)
		return
	}
	fmt.Printf("%s: version %s\n", product.Name, state.Version())
	if old := state.OldVersion(); old != nil {
		fmt.Printf("  previous version: %s\n", old)
	}
	if cmdline := state.RenameCmd(); cmdline != "" {
		fmt.Printf("  pending rename: %s\n", cmdline)
	}
	if ch := state.Channel(); ch != "" {
		fmt.Printf("  channel: %s\n", ch)
	}
	if u := state.UninstallCommand(); u != "" {
		fmt.Printf("  uninstall: %s\n", u)
	}
	fmt.Printf("  msi: %v  multi-install: %v\n", state.IsMsi(), state.IsMultiInstall())
}
