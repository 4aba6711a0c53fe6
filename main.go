// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"anicursor/cursorlib"
)

func main() {
	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cursorlib.Main(ctx, flag.Args()); err != nil {
		log.Printf("%v", err)
		stop()
		os.Exit(1)
	}
}
