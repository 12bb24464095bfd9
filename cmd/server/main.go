// Command server runs the authoritative shoot-'em-up game server: a TCP
// handshake/lobby listener, a UDP game-state socket, and the fixed-step
// tick loop that ties them to the entity registry. One flag per
// tunable, no subcommands, and a signal.Notify-driven graceful shutdown.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/starwake/server/internal/ecs"
	"github.com/starwake/server/internal/game"
	"github.com/starwake/server/internal/session"
	"github.com/starwake/server/internal/transport"
)

func main() {
	udpPort := flag.Uint("udp-port", 4242, "datagram port; the stream port is udp-port+1")
	seed := flag.Int64("seed", 1, "PRNG seed for formation/boss/enemy-fire non-determinism")
	logLevel := flag.String("log-level", "info", "off, info, or debug")
	tickLogEvery := flag.Int("tick-log-every", 0, "log one tick-timing line every N ticks (0 disables)")
	flag.Parse()

	switch *logLevel {
	case "off":
		devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if err != nil {
			log.Fatalf("opening %s: %v", os.DevNull, err)
		}
		log.SetOutput(devNull)
	case "debug":
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	case "info":
		// default log.Flags() is fine for info level.
	default:
		log.Fatalf("unknown --log-level %q (want off, info, or debug)", *logLevel)
	}

	reg := ecs.NewRegistry()
	store := session.NewStore()

	streamAddr := fmt.Sprintf(":%d", *udpPort+1)
	stream, err := transport.ListenStream(streamAddr)
	if err != nil {
		log.Fatalf("listening on stream %s: %v", streamAddr, err)
	}
	defer stream.Close()

	dgramAddr := fmt.Sprintf(":%d", *udpPort)
	dgram, err := transport.ListenDatagram(dgramAddr)
	if err != nil {
		log.Fatalf("listening on datagram %s: %v", dgramAddr, err)
	}
	defer dgram.Close()

	loop := game.NewLoop(reg, store, stream, dgram, uint16(*udpPort), *seed, *tickLogEvery)

	go func() {
		if err := stream.Serve(loop.HandleStream); err != nil {
			log.Printf("stream server stopped: %v", err)
		}
	}()
	go func() {
		if err := dgram.ReadLoop(loop.HandleDatagram); err != nil {
			log.Printf("datagram server stopped: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutting down server...")
		loop.Stop()
		stream.Close()
		dgram.Close()
		os.Exit(0)
	}()

	log.Printf("server listening: udp=%s tcp=%s", dgram.Addr(), stream.Addr())
	loop.Run()
}
