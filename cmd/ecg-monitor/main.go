// Command ecg-monitor follows a sampler's serial stream and reports
// heart rate and signal quality once per second.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/RouterInfoMan/ecg-pm/internal/hrm"
	"github.com/RouterInfoMan/ecg-pm/internal/stream"
)

func main() {
	port := flag.String("port", "", "Serial port of the sampler (empty to auto-detect)")
	useStdin := flag.Bool("stdin", false, "Read the sample stream from stdin instead of a serial port")
	rate := flag.Int("rate", hrm.DefaultSampleRate, "Stream sample rate in Hz")

	flag.Parse()

	if err := run(*port, *useStdin, *rate); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(port string, useStdin bool, rate int) error {
	var src io.ReadCloser
	if useStdin {
		src = os.Stdin
	} else {
		name := port
		if name == "" {
			found, err := stream.FindSamplerPort()
			if err != nil {
				if names, listErr := stream.Ports(); listErr == nil && len(names) > 0 {
					return fmt.Errorf("%w (available ports: %s)", err, strings.Join(names, ", "))
				}
				return err
			}
			log.Printf("found sampler on %s", found)
			name = found
		}

		opened, err := stream.OpenPort(name)
		if err != nil {
			return err
		}
		src = opened
	}
	defer src.Close()

	// Closing the source unblocks the scanner; done marks the close as
	// deliberate so the read error it causes is not reported.
	done := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigCh
		log.Printf("received %v, shutting down", s)
		close(done)
		src.Close()
	}()

	err := follow(src, hrm.New(rate), func(e hrm.Estimate) {
		if e.BPM == 0 {
			log.Printf("signal=%s bpm=--", e.Quality)
			return
		}
		log.Printf("signal=%s bpm=%d", e.Quality, e.BPM)
	})

	select {
	case <-done:
		return nil
	default:
		return err
	}
}

// follow feeds the stream through the estimator, reporting each
// per-second estimate.
func follow(r io.Reader, est *hrm.Estimator, report func(hrm.Estimate)) error {
	sc := stream.NewScanner(r)
	for sc.Scan() {
		if e, ok := est.Add(sc.Sample()); ok {
			report(e)
		}
	}
	if n := sc.Skipped(); n > 0 {
		log.Printf("skipped %d garbled lines", n)
	}
	return sc.Err()
}
