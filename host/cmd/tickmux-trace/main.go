// tickmux-trace connects to a device running the tickmux scheduler and
// prints its trace stream: hello/arm/expire/idle events, with ticks
// converted to wall time once the device announces its tick rate.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"tickmux/host/serial"
	"tickmux/protocol"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	verbose = flag.Bool("verbose", false, "Print raw frame payloads")
)

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	fmt.Printf("tickmux-trace %s: listening on %s\n", protocol.Version, *device)

	if err := run(port); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run reads the port until EOF or a hard read error, printing every
// decoded event.
func run(port serial.Port) error {
	dec := protocol.NewDecoder()
	var tickRate uint32

	buf := make([]byte, 256)
	for {
		n, err := port.Read(buf)
		if n > 0 {
			for _, payload := range dec.Feed(buf[:n]) {
				if *verbose {
					fmt.Printf("frame seq=%d payload=% x\n", dec.LastSeq, payload)
				}
				ev, decErr := protocol.DecodeEvent(payload)
				if decErr != nil {
					fmt.Fprintf(os.Stderr, "bad frame payload: %v\n", decErr)
					continue
				}
				if ev.Kind == protocol.EventHello {
					tickRate = ev.Ticks
				}
				printEvent(ev, tickRate)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				// A read timeout surfaces as EOF; keep polling.
				continue
			}
			return err
		}
	}
}

func printEvent(ev protocol.Event, tickRate uint32) {
	if tickRate != 0 && ev.Kind == protocol.EventExpire {
		us := uint64(ev.Ticks) * 1000000 / uint64(tickRate)
		fmt.Printf("%s (%d us)\n", ev, us)
		return
	}
	fmt.Println(ev)
}
