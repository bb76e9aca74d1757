// Command confbus runs a scripted demo on a register-mapped configuration
// bus: a driver walks the register range, provokes an out-of-range error,
// resets the slave, and the register contents are resampled into a separate
// observer clock domain.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/openesl/confbus/busdriver"
	"github.com/openesl/confbus/regfile"
	"github.com/openesl/confbus/sim"
	"github.com/openesl/confbus/simulation"
	"github.com/openesl/confbus/syncwrap"
)

var (
	numRegisters    int
	dataWidth       int
	addrWidth       int
	baseAddress     uint64
	busFreqMHz      float64
	observerFreqMHz float64
	traceFileName   string
	monitorOn       bool
	monitorPort     int
	logEvents       bool
)

var rootCmd = &cobra.Command{
	Use:   "confbus",
	Short: "Run a scripted configuration bus demo",
	Run: func(_ *cobra.Command, _ []string) {
		run()
	},
}

func init() {
	rootCmd.Flags().IntVar(&numRegisters, "registers", 16,
		"number of configuration registers")
	rootCmd.Flags().IntVar(&dataWidth, "data-width", 32,
		"register width in bits")
	rootCmd.Flags().IntVar(&addrWidth, "addr-width", 32,
		"bus address width in bits")
	rootCmd.Flags().Uint64Var(&baseAddress, "base-addr", 0,
		"base address of the register file")
	rootCmd.Flags().Float64Var(&busFreqMHz, "bus-freq", 1000,
		"bus clock frequency in MHz")
	rootCmd.Flags().Float64Var(&observerFreqMHz, "observer-freq", 100,
		"observer clock frequency in MHz")
	rootCmd.Flags().StringVar(&traceFileName, "trace", "",
		"file name of the access trace database")
	rootCmd.Flags().BoolVar(&monitorOn, "monitor", false,
		"start the monitoring server")
	rootCmd.Flags().IntVar(&monitorPort, "monitor-port", 0,
		"port of the monitoring server, random if 0")
	rootCmd.Flags().BoolVar(&logEvents, "log-events", false,
		"log every event to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func run() {
	builder := simulation.MakeBuilder().
		WithOutputFileName(traceFileName)
	if monitorOn {
		if monitorPort > 0 {
			builder = builder.WithMonitorPort(monitorPort)
		}
	} else {
		builder = builder.WithoutMonitoring()
	}

	s := builder.Build()
	defer s.Terminate()

	engine := s.GetEngine()
	if logEvents {
		engine.AcceptHook(sim.NewEventLogger(log.New(os.Stderr, "", 0)))
	}

	busFreq := sim.Freq(busFreqMHz) * sim.MHz

	cfg := regfile.Config{
		DataWidth:    dataWidth,
		AddrWidth:    addrWidth,
		NumRegisters: numRegisters,
		BaseAddress:  baseAddress,
	}

	wrapper := syncwrap.MakeBuilder().
		WithEngine(engine).
		WithBusFreq(busFreq).
		WithObserverFreq(sim.Freq(observerFreqMHz) * sim.MHz).
		WithConfig(cfg).
		Build("Wrapper")

	driver := busdriver.MakeBuilder().
		WithEngine(engine).
		WithFreq(busFreq).
		WithSlaveBusPort(wrapper.GetPortByName("Top").AsRemote()).
		WithSlaveCtrlPort(wrapper.GetPortByName("Ctrl").AsRemote()).
		Build("Driver")

	conn := sim.NewDirectConnection("Conn", engine, busFreq)
	conn.PlugIn(wrapper.GetPortByName("Top"))
	conn.PlugIn(wrapper.GetPortByName("Ctrl"))
	conn.PlugIn(driver.GetPortByName("Bus"))
	conn.PlugIn(driver.GetPortByName("Ctrl"))

	s.RegisterComponent(wrapper)
	s.RegisterSlave(wrapper.Slave())
	s.RegisterComponent(driver)
	s.RegisterComponent(conn)

	script(driver, cfg)

	if err := engine.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	report(driver, wrapper)
}

func script(driver *busdriver.Comp, cfg regfile.Config) {
	wordSize := cfg.WordSize()

	for i := 0; i < cfg.NumRegisters; i++ {
		driver.EnqueueWrite(
			cfg.BaseAddress+uint64(i)*wordSize, uint64(0x1000+i))
	}
	for i := 0; i < cfg.NumRegisters; i++ {
		driver.EnqueueRead(cfg.BaseAddress + uint64(i)*wordSize)
	}

	// One access beyond the last register to provoke an error response.
	driver.EnqueueRead(
		cfg.BaseAddress + uint64(cfg.NumRegisters)*wordSize)

	driver.EnqueueWrite(cfg.BaseAddress, 0xDEADBEEF)
	driver.EnqueueRead(cfg.BaseAddress)

	driver.TriggerReset()
	driver.EnqueueRead(cfg.BaseAddress)
}

func report(driver *busdriver.Comp, wrapper *syncwrap.Comp) {
	fmt.Println("Completed accesses:")
	for _, r := range driver.Results() {
		op := "read"
		if r.IsWrite {
			op = "write"
		}

		status := "ok"
		if r.Err {
			status = "ERR"
		}

		fmt.Printf("  %12.2f ns  %-5s 0x%04X  0x%08X  %s\n",
			float64(r.DoneTime)*1e9, op, r.Address, r.Data, status)
	}

	fmt.Printf("Resets completed: %d\n", driver.ResetsDone())

	fmt.Printf("Observer-domain snapshot at %.2f ns:\n",
		float64(wrapper.LastResampleTime())*1e9)
	for i, e := range wrapper.Snapshot() {
		fmt.Printf("  reg[%2d] = 0x%08X  written=%v\n", i, e.Value, e.Written)
	}
}
