//go:build !bl602

// bl602-diag is an interactive GPIO diagnostics shell for the BL602.
//
// Without -device it runs the shell against the in-memory register block,
// which makes it a dry-run workbench for pin configurations. With -device
// it bridges stdin/stdout to a board's UART console instead.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"bl602hal/host/console"
	"bl602hal/host/serial"
)

var (
	device = flag.String("device", "", "Serial device path (empty = offline simulation)")
	baud   = flag.Int("baud", 115200, "Baud rate for the board console")
)

func main() {
	flag.Parse()

	if *device != "" {
		if err := bridge(*device, *baud); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println("BL602 GPIO Diagnostics (offline simulation)")
	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")

	c := console.New(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" || line == "q" {
			return
		}
		if err := c.Execute(line); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

// bridge connects the terminal to a board's UART console.
func bridge(device string, baud int) error {
	cfg := serial.DefaultConfig(device)
	cfg.Baud = baud

	port, err := serial.Open(cfg)
	if err != nil {
		return err
	}
	defer port.Close()

	fmt.Printf("Connected to %s at %d baud (Ctrl-D to exit)\n", device, baud)

	done := make(chan error, 2)
	go func() {
		_, err := io.Copy(port, os.Stdin)
		done <- err
	}()
	go func() {
		_, err := io.Copy(os.Stdout, port)
		done <- err
	}()
	return <-done
}
