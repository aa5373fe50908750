// main.go - riscv-vm command-line front end

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.design/x/clipboard"
	"golang.org/x/sync/errgroup"
)

var (
	flagDRAMSize uint64
	flagEntryPC  uint64
	flagDisk     string
	flagNoTTY    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "riscv-vm",
		Short: "A small RV64IMAC emulator core: CPU, bus, UART, and VirtIO-BLK",
	}

	runCmd := &cobra.Command{
		Use:   "run [image]",
		Short: "Load an image (ELF or flat binary) and run it to completion or halt",
		Args:  cobra.ExactArgs(1),
		RunE:  runMachine,
	}
	runCmd.Flags().Uint64Var(&flagDRAMSize, "dram-size", DefaultDRAMSize, "DRAM size in bytes")
	runCmd.Flags().Uint64Var(&flagEntryPC, "entry", DRAMBase, "Reset PC for a flat (non-ELF) image")
	runCmd.Flags().StringVar(&flagDisk, "disk", "", "VirtIO-BLK backing image path")
	runCmd.Flags().BoolVar(&flagNoTTY, "no-tty", false, "Don't put the terminal in raw mode (useful when stdin isn't a tty)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the core's supported ISA string",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("riscv-vm: rv64imac_zicsr")
		},
	}

	rootCmd.AddCommand(runCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMachine(cmd *cobra.Command, args []string) error {
	image, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("riscv-vm: reading image %q: %w", args[0], err)
	}

	m, err := New(image, flagEntryPC, flagDRAMSize)
	if err != nil {
		return err
	}

	if flagDisk != "" {
		disk, err := os.ReadFile(flagDisk)
		if err != nil {
			return fmt.Errorf("riscv-vm: reading disk image %q: %w", flagDisk, err)
		}
		m.LoadDisk(disk)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	host := NewTerminalHost(m)
	if !flagNoTTY {
		if err := host.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "riscv-vm: %v (continuing without raw terminal input)\n", err)
			flagNoTTY = true
		}
		defer host.Stop()
	}

	if clipboardOK := clipboard.Init() == nil; clipboardOK {
		go watchPasteHotkey(ctx, m)
	}

	group, gctx := errgroup.WithContext(ctx)
	if !flagNoTTY {
		group.Go(func() error { return host.PumpInput(gctx) })
	}
	group.Go(func() error {
		for !m.Halted() {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			m.Step()
			host.DrainOutput()
		}
		host.DrainOutput()
		fmt.Fprintf(os.Stderr, "\nriscv-vm: halted at pc=0x%x\n", m.PC())
		cancel()
		return nil
	})

	if err := group.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// watchPasteHotkey polls the system clipboard and feeds its contents to the
// UART whenever it changes, giving a headless terminal a paste gesture.
func watchPasteHotkey(ctx context.Context, m *Machine) {
	ch := clipboard.Watch(ctx, clipboard.FmtText)
	for data := range ch {
		for _, b := range data {
			m.InputByte(b)
		}
	}
}
