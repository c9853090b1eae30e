// wdtctl issues one-shot operations against the external watchdog through a
// serial I2C bridge.
//
// Usage:
//
//	wdtctl [flags] start|stop|pet|status|version|dump
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bkuschak/attiny-watchdog/core"
	"github.com/bkuschak/attiny-watchdog/host/i2cbridge"
	"github.com/bkuschak/attiny-watchdog/host/wdt"
)

var (
	device = flag.String("device", "/dev/ttyACM0", "Serial device of the I2C bridge")
	baud   = flag.Int("baud", 115200, "Baud rate")
	addr   = flag.Uint("addr", core.SlaveAddress, "7-bit watchdog slave address")
	reload = flag.Uint("reload", wdt.Reload, "Countdown value for pet")
	flags  = flag.Uint("flags", uint(core.CtrlEnablePowerCycle|core.CtrlEnableAlert),
		"CONTROL flags for start (bit0 reset, bit1 powercycle, bit2 alert)")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: wdtctl [flags] start|stop|pet|status|version|dump")
		os.Exit(2)
	}

	bridge, err := i2cbridge.Open(*device, *baud, uint8(*addr))
	if err != nil {
		fatal(err)
	}
	defer bridge.Close()
	client := wdt.NewClient(bridge)

	switch cmd := flag.Arg(0); cmd {
	case "start":
		err = client.Start(uint8(*flags))
	case "stop":
		err = client.Stop()
	case "pet":
		err = client.Pet(uint8(*reload))
	case "status":
		err = printStatus(client)
	case "version":
		err = printVersion(client)
	case "dump":
		err = dumpRegisters(bridge)
	default:
		fmt.Fprintf(os.Stderr, "wdtctl: unknown command %q\n", cmd)
		os.Exit(2)
	}
	if err != nil {
		fatal(err)
	}
}

func printVersion(c *wdt.Client) error {
	major, minor, err := c.Version()
	if err != nil {
		return err
	}
	fmt.Printf("firmware %d.%d\n", major, minor)
	return nil
}

func printStatus(c *wdt.Client) error {
	status, err := c.Status()
	if err != nil {
		return err
	}
	fmt.Printf("status 0x%02x (alert=%t expirations=%d)\n",
		status, status&core.StatusAlertLatched != 0, status>>4)
	return nil
}

// dumpRegisters prints every register the way the kernel driver's sysfs
// attributes did.
func dumpRegisters(bus wdt.RegisterBus) error {
	regs := []struct {
		name string
		reg  uint8
	}{
		{"version", core.RegVersion},
		{"control", core.RegControl},
		{"timer", core.RegTimer},
		{"status", core.RegStatus},
	}
	for _, r := range regs {
		v, err := bus.ReadReg(r.reg)
		if err != nil {
			return fmt.Errorf("read %s: %w", r.name, err)
		}
		fmt.Printf("%-8s 0x%02x\n", r.name, v)
	}
	return nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "wdtctl: %v\n", err)
	os.Exit(1)
}
