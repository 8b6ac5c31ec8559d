// Command vm boots a register-machine image and runs it.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/dominikoetiker/virtual-cpu-go/pkg/vm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.SetFlags(0)
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vm",
		Short: "Run or disassemble register-machine boot images",
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		imagePath string
		address   uint32
		ramSize   int
		verbose   bool
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load an image into Ram and execute it",
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(imagePath)
			if err != nil {
				return fmt.Errorf("reading image: %w", err)
			}

			logger := log.New(os.Stderr, "", 0)
			if verbose {
				logger.SetPrefix("vm: ")
			}

			cpu := vm.NewCPU(ramSize, os.Stdin, os.Stdout, logger)
			if err := cpu.LoadProgram(address, image); err != nil {
				return fmt.Errorf("loading image: %w", err)
			}

			if dryRun {
				return disassembleImage(cpu, address, uint32(len(image)))
			}

			logger.Printf("listening for interrupts on %s", vm.InterruptListenAddr)
			return cpu.Start(address)
		},
	}

	cmd.Flags().StringVarP(&imagePath, "file", "f", "", "path to the boot image (required)")
	cmd.Flags().Uint32VarP(&address, "address", "a", 0x00, "boot address to load and start at")
	cmd.Flags().IntVarP(&ramSize, "ram", "r", vm.DefaultRamSize, "Ram size in bytes")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "prefix log output for readability")
	cmd.Flags().BoolVarP(&dryRun, "disassemble", "d", false, "disassemble the image instead of running it")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// disassembleImage is a thin driver over vm.DisassembleAt, used by
// the -d flag: it walks the freshly-loaded image instruction by
// instruction and prints each one, without starting the run loop or
// the interrupt listener.
func disassembleImage(cpu *vm.CentralProcessingUnit, start, length uint32) error {
	end := start + length
	for addr := start; addr < end; {
		text, next, err := cpu.DisassembleAt(addr)
		if err != nil {
			return fmt.Errorf("disassembling at 0x%04x: %w", addr, err)
		}
		fmt.Printf("0x%04x  %s\n", addr, text)
		if next <= addr {
			return fmt.Errorf("disassembling at 0x%04x: decoder made no forward progress", addr)
		}
		addr = next
	}
	return nil
}
