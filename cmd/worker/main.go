// Command worker connects to a frakt dispatcher, computes fractal tiles on
// request, and loops forever, reconnecting fresh for every request and
// every result.
package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/frakt-go/frakt/internal/log"
	"github.com/frakt-go/frakt/internal/worker"
)

var (
	ip        string
	port      uint16
	saveTiles bool
)

var rootCmd = &cobra.Command{
	Use:   "worker [host]",
	Short: "Compute fractal tiles for a dispatcher",
	Long: `worker requests tiles from a dispatcher, computes each in parallel
across all available cores, and sends the result back, reconnecting fresh
for every request and every result.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&ip, "ip", "localhost", "dispatcher address (overridden by the positional host argument)")
	rootCmd.Flags().Uint16Var(&port, "port", 8787, "dispatcher port")
	rootCmd.Flags().BoolVar(&saveTiles, "save-tiles", false, "also save each computed tile as a standalone PNG under images/worker/")
}

func run(cmd *cobra.Command, args []string) error {
	log.Init(log.DefaultConfig())

	host := ip
	if len(args) == 1 {
		host = args[0]
	}

	stop := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		close(stop)
	}()

	cfg := worker.Config{
		Addr:      net.JoinHostPort(host, fmt.Sprint(port)),
		Name:      "frakt-worker",
		SaveTiles: saveTiles,
	}
	return worker.Run(cfg, stop)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
