package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/faiface/pixel/pixelgl"
	"github.com/spf13/cobra"

	"github.com/joshfalk/chippy8/internal/chip8"
	"github.com/joshfalk/chippy8/internal/display"
)

// beepAssetPath is where the run command looks for the beep sound played on
// the sound timer's 1 -> 0 transition. Missing the file is not fatal; it
// just means the run is silent.
const beepAssetPath = "assets/beep.mp3"

var (
	clockSpeed int
	debug      bool
)

// runCmd runs the chippy8 virtual machine against a ROM file.
var runCmd = &cobra.Command{
	Use:   "run `path/to/rom`",
	Short: "run the chippy8 emulator",
	Args:  cobra.ExactArgs(1),
	Run:   runChippy,
}

func init() {
	runCmd.Flags().IntVar(&clockSpeed, "clock-speed", chip8.DefaultClockHz, "CPU clock speed in Hz")
	runCmd.Flags().BoolVar(&debug, "debug", false, "run under the breakpoint/step debugger")
}

func runChippy(cmd *cobra.Command, args []string) {
	pathToROM := args[0]
	rng := chip8.NewMathRand(time.Now().UnixNano())

	// pixelgl owns the main OS thread, so the window and VM loop both run
	// from inside this callback.
	pixelgl.Run(func() {
		win, err := display.NewWindow()
		if err != nil {
			fmt.Printf("\nerror creating new window: %v\n", err)
			os.Exit(1)
		}

		audioEvents := make(chan struct{}, 1)
		go func() {
			if err := display.PlayBeeps(beepAssetPath, audioEvents); err != nil {
				fmt.Printf("\naudio disabled: %v\n", err)
			}
		}()
		defer close(audioEvents)

		var runErr error
		if debug {
			vm, err := chip8.NewDebuggedVM(pathToROM, rng)
			if err != nil {
				fmt.Printf("\nerror creating a new chip-8 VM: %v\n", err)
				os.Exit(1)
			}
			runErr = vm.Run(win, clockSpeed, audioEvents)
		} else {
			vm, err := chip8.NewVM(pathToROM, rng)
			if err != nil {
				fmt.Printf("\nerror creating a new chip-8 VM: %v\n", err)
				os.Exit(1)
			}
			runErr = vm.Run(win, clockSpeed, audioEvents)
		}

		if runErr != nil {
			fmt.Printf("\nchip-8 VM stopped: %v\n", runErr)
			os.Exit(1)
		}
	})
}
