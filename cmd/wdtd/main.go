// wdtd pets the external watchdog on a fixed schedule. It arms the device on
// startup and disarms it on clean shutdown so a deliberate stop does not end
// in a power cycle.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bkuschak/attiny-watchdog/host/config"
	"github.com/bkuschak/attiny-watchdog/host/i2cbridge"
	"github.com/bkuschak/attiny-watchdog/host/wdt"
)

var configPath = flag.String("config", "/etc/wdtd.yaml", "Path to the daemon config file")

func main() {
	flag.Parse()
	log.SetPrefix("wdtd: ")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	bridge, err := i2cbridge.Open(cfg.Device, cfg.Baud, cfg.SlaveAddress)
	if err != nil {
		log.Fatalf("bridge open failed: %v", err)
	}
	defer bridge.Close()

	client := wdt.NewClient(bridge)
	if err := client.Probe(); err != nil {
		log.Fatalf("watchdog probe failed: %v", err)
	}

	if err := client.Start(cfg.Flags()); err != nil {
		log.Fatalf("watchdog start failed: %v", err)
	}
	log.Printf("armed watchdog at %#02x on %s, petting every %v",
		cfg.SlaveAddress, cfg.Device, cfg.PetInterval())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.PetInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := client.Pet(cfg.Reload); err != nil {
				// Keep running: a transient bus error must not turn
				// into a missed deadline on the next round too.
				log.Printf("pet failed: %v", err)
				continue
			}
			if cfg.Verbose {
				log.Printf("pet ok, reload=%d", cfg.Reload)
			}

		case sig := <-sigs:
			log.Printf("received %v, stopping watchdog", sig)
			if err := client.Stop(); err != nil {
				log.Fatalf("watchdog stop failed: %v", err)
			}
			return
		}
	}
}
