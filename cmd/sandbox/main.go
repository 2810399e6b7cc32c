package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/tomz197/roundbox/internal/config"
	"github.com/tomz197/roundbox/internal/sandbox"
	"golang.org/x/term"
)

func main() {
	configPath := flag.String("config", config.GetEnv("ROUNDBOX_CONFIG", ""), "path to yaml config")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	if err := sandbox.Run(reader, os.Stdout, cfg, sandbox.Options{}); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "sandbox error: %v\n", err)
		os.Exit(1)
	}
}
