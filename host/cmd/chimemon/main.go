// chimemon watches the trace stream of a board running the alarm scheduler
// and reports per-alarm firing statistics: fire counts and the minimum and
// maximum tick gap between consecutive firings. Gaps wider or narrower than
// the alarm's period point at tick-source jitter or a saturated main loop.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"chime/host/serial"
	"chime/trace"
)

var (
	device = flag.String("device", "/dev/ttyACM0", "serial device path")
	baud   = flag.Int("baud", 115200, "baud rate (ignored for USB CDC)")
	report = flag.Duration("report", 5*time.Second, "interval between stats reports")
)

type alarmStats struct {
	fires    uint64
	lastTick uint16
	minGap   uint16
	maxGap   uint16
}

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

	fmt.Printf("Monitoring %s, reporting every %s\n", *device, *report)

	stats := make(map[uint32]*alarmStats)
	var dec trace.Decoder
	buf := make([]byte, 256)
	nextReport := time.Now().Add(*report)

	for {
		n, err := port.Read(buf)
		if err != nil && err != io.EOF {
			fmt.Fprintf(os.Stderr, "Error: read: %v\n", err)
			os.Exit(1)
		}
		if n > 0 {
			dec.Feed(buf[:n])
			for {
				e, ok := dec.Next()
				if !ok {
					break
				}
				record(stats, e)
			}
		}

		if time.Now().After(nextReport) {
			printReport(stats)
			nextReport = time.Now().Add(*report)
		}
	}
}

func record(stats map[uint32]*alarmStats, e trace.Event) {
	st := stats[e.ID]
	if st == nil {
		st = &alarmStats{}
		stats[e.ID] = st
	}
	if st.fires > 0 {
		// Tick gap under the 15-bit wrap.
		gap := (e.Tick - st.lastTick) & 0x7FFF
		if st.fires == 1 || gap < st.minGap {
			st.minGap = gap
		}
		if gap > st.maxGap {
			st.maxGap = gap
		}
	}
	st.lastTick = e.Tick
	st.fires++
}

func printReport(stats map[uint32]*alarmStats) {
	if len(stats) == 0 {
		fmt.Println("no events yet")
		return
	}

	ids := make([]uint32, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	fmt.Printf("%-10s %-10s %-10s %-10s %-10s\n", "alarm", "fires", "last tick", "min gap", "max gap")
	for _, id := range ids {
		st := stats[id]
		fmt.Printf("%-10d %-10d %-10d %-10d %-10d\n", id, st.fires, st.lastTick, st.minGap, st.maxGap)
	}
}
