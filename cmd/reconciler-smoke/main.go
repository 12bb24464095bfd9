// Command reconciler-smoke is a headless driver that exercises
// internal/reconciler end to end against a live server: it runs the
// handshake, asks to start the match once at least two players are
// visible (or immediately if --host is set), holds a synthetic
// right+shoot input, and logs the HUD snapshot periodically. It has no
// rendering, audio, or real input of its own — those remain out of
// scope per the module's non-goals — it exists purely to prove the
// reconciler package's wire-level behavior against a real server.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/starwake/server/internal/reconciler"
)

func main() {
	host := flag.String("host", "127.0.0.1", "server host")
	udpPort := flag.Int("udp-port", 4242, "server datagram port; stream port is udp-port+1")
	name := flag.String("name", "smoke", "username to join as")
	asHost := flag.Bool("host-start", false, "send StartMatch as soon as the lobby allows it")
	duration := flag.Duration("duration", 30*time.Second, "how long to run before disconnecting")
	logEvery := flag.Duration("log-every", 1*time.Second, "HUD snapshot log interval")
	flag.Parse()

	conn, err := reconciler.Dial(*host, *udpPort, *name)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	r := reconciler.New(*name)
	go func() {
		if err := conn.ReadLoop(r); err != nil {
			log.Printf("read loop stopped: %v", err)
		}
	}()

	sender := reconciler.NewInputSender(conn)
	held := reconciler.Held{Right: true, Shoot: true}

	deadline := time.Now().Add(*duration)
	lastLog := time.Time{}
	startSent := false

	for time.Now().Before(deadline) {
		now := time.Now()

		if *asHost && !startSent && r.Snapshot().HostID != 0 {
			if err := conn.SendStartMatch(); err != nil {
				log.Printf("SendStartMatch: %v", err)
			}
			startSent = true
		}

		if err := sender.Maybe(now, held, r); err != nil {
			log.Printf("SendInput: %v", err)
		}

		if now.Sub(lastLog) >= *logEvery {
			lastLog = now
			hud := r.Snapshot()
			log.Printf("hud: self=%d lives=%d score=%d gameOver=%v started=%v others=%d entities=%d",
				hud.SelfID, hud.Lives, hud.Score, hud.GameOver, hud.LobbyStarted, len(hud.Others), len(r.RenderEntities()))
			if hud.ReturnToMenu {
				log.Println("server returned lobby to menu, stopping")
				return
			}
		}

		time.Sleep(10 * time.Millisecond)
	}
}
