package main

import (
	"flag"
	"log"
	"time"

	"github.com/wchocian/max30003"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func main() {
	bus := flag.String("bus", "", "Name of the SPI port")
	profilePath := flag.String("profile", "", "YAML register profile (default: built-in ECG profile)")
	intPin := flag.String("int", "", "Name of the GPIO pin wired to INTB (default: poll)")
	interval := flag.Duration("interval", 50*time.Millisecond, "Polling interval without -int")
	flag.Parse()

	_, err := host.Init()
	if err != nil {
		log.Fatal(err)
	}

	sb, err := spireg.Open(*bus)
	if err != nil {
		log.Fatal(err)
	}

	opts := max30003.DefaultOptions()
	if *profilePath != "" {
		opts.Profile, err = max30003.LoadProfile(*profilePath)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		opts.Profile = max30003.ECGProfile()
	}

	dev, err := max30003.New(sb, opts)
	if err != nil {
		log.Fatal(err)
	}

	dev.HandleSamples(func(samples []max30003.Sample) {
		for _, s := range samples {
			if s.Tag.Valid() {
				log.Printf("ecg: %d", s.Voltage())
			}
		}
	})
	dev.Handle(max30003.IntRtoR, func(max30003.Interrupt) {
		rr, err := dev.ReadRTOR()
		if err != nil {
			log.Print(err)
			return
		}
		log.Printf("r-to-r: %dms", uint32(rr)*8)
	})
	dev.Handle(max30003.IntDCLeadOff, func(i max30003.Interrupt) {
		log.Printf("interrupt: %s", i)
	})
	dev.Handle(max30003.IntPLLUnlocked, func(i max30003.Interrupt) {
		log.Printf("interrupt: %s", i)
	})

	if *intPin != "" {
		pin := gpioreg.ByName(*intPin)
		if pin == nil {
			log.Fatalf("no GPIO pin named %q", *intPin)
		}
		// INTB is active low.
		if err := pin.In(gpio.PullUp, gpio.FallingEdge); err != nil {
			log.Fatal(err)
		}
		for {
			pin.WaitForEdge(-1)
			if _, err := dev.ServiceInterrupts(); err != nil {
				log.Print(err)
			}
		}
	}

	ticker := time.NewTicker(*interval)
	for range ticker.C {
		if _, err := dev.ServiceInterrupts(); err != nil {
			log.Print(err)
		}
	}
}
