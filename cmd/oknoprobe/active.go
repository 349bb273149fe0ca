// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"okno.org/app"
	"okno.org/app/headless"
	"okno.org/app/x11"
)

var flagX11 bool

var activeCmd = &cobra.Command{
	Use:   "active",
	Short: "Run an activation scenario and report transitions",
	Long: `active creates two windows, shows them in order, requests activation
back on the first, and prints every keyboard focus transition the
backend reports. With --x11 it runs against the X display named by
DISPLAY; the default backend is in process.`,
	RunE: runActive,
}

func init() {
	activeCmd.Flags().BoolVar(&flagX11, "x11", false, "drive a real X display instead of the in process backend")
	rootCmd.AddCommand(activeCmd)
}

func runActive(cmd *cobra.Command, args []string) error {
	log := newLogger()

	var bridge app.Bridge
	var hb *headless.Bridge
	if flagX11 {
		xb, err := x11.New()
		if err != nil {
			return err
		}
		defer xb.Close()
		bridge = xb
	} else {
		hb = headless.New()
		bridge = hb
	}

	env := app.NewEnv(bridge, log)
	env.AddFocusObserver(func(old, new app.NativeID) {
		fmt.Printf("focus: %q -> %q\n", old, new)
	})

	a, err := env.NewWindow(app.Bounds(image.Rect(0, 0, 400, 300)))
	if err != nil {
		return err
	}
	b, err := env.NewWindow(app.Bounds(image.Rect(100, 100, 500, 400)))
	if err != nil {
		return err
	}
	report := func(w *app.Window, name string) {
		w.OnActivation(func(active bool) {
			fmt.Printf("window %s active=%v\n", name, active)
		})
	}
	report(a, "A")
	report(b, "B")

	a.Show()
	b.Show()
	a.Activate()
	env.Pump()

	if hb != nil {
		// A caption flash must not move activation.
		hb.FlashCaption(b.NativeID())
		env.Pump()
	}

	switch {
	case env.Active() == a:
		fmt.Println("active: A")
	case env.Active() == b:
		fmt.Println("active: B")
	default:
		fmt.Println("active: none")
	}
	a.Close()
	b.Close()
	return nil
}
