// Command dispatcher partitions a chosen fractal into 16 tiles and serves
// them to connecting workers over the frakt wire protocol, composing and
// saving the full image every time the last tile lands.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/frakt-go/frakt/internal/dispatcher"
	"github.com/frakt-go/frakt/internal/fractal"
	"github.com/frakt-go/frakt/internal/log"
)

var (
	fractalName string
	host        string
	port        uint16
)

var rootCmd = &cobra.Command{
	Use:   "dispatcher",
	Short: "Serve fractal render tiles to workers",
	Long: `dispatcher partitions a 1200x1200 image of a chosen fractal into 16
tiles, hands them to connecting workers, and assembles the results into a
PNG under images/server/.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&fractalName, "fractal", string(fractal.Julia), "fractal to render: one of the seven supported kernels")
	rootCmd.Flags().StringVar(&host, "host", "localhost", "address to bind")
	rootCmd.Flags().Uint16Var(&port, "port", 8787, "port to bind")
}

func run(cmd *cobra.Command, args []string) error {
	log.Init(log.DefaultConfig())
	logger := log.GetLogger()

	kind, err := fractal.ParseKind(fractalName)
	if err != nil {
		return fmt.Errorf("invalid --fractal: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	state := dispatcher.New(kind)
	server := dispatcher.NewServer(net.JoinHostPort(host, fmt.Sprint(port)), state)

	logger.Infof("dispatcher: rendering %s", kind)
	return server.Run(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
