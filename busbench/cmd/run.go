package cmd

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/sarchlab/busbench/config"
	"github.com/sarchlab/busbench/datarecording"
	"github.com/sarchlab/busbench/dut"
	"github.com/sarchlab/busbench/harness"
	"github.com/sarchlab/busbench/mem"
	"github.com/sarchlab/busbench/monitoring"
	"github.com/sarchlab/busbench/sim"
	"github.com/sarchlab/busbench/tracing"
	"github.com/sarchlab/busbench/verdict"
)

// benchRun is one invocation of the bench.
type benchRun struct {
	cfg config.Config

	verbose   bool
	logEvents bool
	stats     bool

	out    io.Writer
	errOut io.Writer
}

func (r *benchRun) execute() verdict.Code {
	c := r.cfg

	fmt.Fprintf(r.out, "Seed: %d\n", c.Seed)

	storage := mem.NewStorage(c.Variant.Capacity)

	n, err := storage.Load(c.ImagePath)
	if err != nil {
		fmt.Fprintf(r.errOut, "Error: %s\n", err)
		return verdict.CodeUnreadableImage
	}

	fmt.Fprintf(r.out, "Loaded %d bytes into %s memory\n", n, c.Variant.Name)

	device, err := dut.New(c.DUTModel, c.Variant.Capacity)
	if err != nil {
		fmt.Fprintf(r.errOut, "Error: %s\n", err)
		return verdict.CodeGeneric
	}

	engine := sim.NewSerialEngine()
	h := harness.MakeBuilder().
		WithConfig(c).
		WithEngine(engine).
		WithDUT(device).
		WithStorage(storage).
		WithConsole(r.out).
		Build("Bench")

	finish, err := r.attachTracers(h)
	if err != nil {
		fmt.Fprintf(r.errOut, "Error: %s\n", err)
		return verdict.CodeGeneric
	}

	if c.Monitor {
		r.startMonitor(engine, h)
	}

	v, err := h.Run()
	if err != nil {
		fmt.Fprintf(r.errOut, "Error: %s\n", err)
		return verdict.CodeGeneric
	}

	finish(v)

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, v)

	return v.Code
}

// attachTracers hooks the requested tracers to the harness and returns what
// to do once the verdict is known.
func (r *benchRun) attachTracers(
	h *harness.Harness,
) (func(verdict.Verdict), error) {
	c := r.cfg
	var finishers []func(verdict.Verdict)

	if r.verbose {
		tracing.CollectHarness(h, tracing.NewLogTracer(log.New(r.errOut, "", 0)))
	}

	if r.logEvents {
		h.Engine.AcceptHook(sim.NewEventLogger(log.New(r.errOut, "", 0)))
	}

	if r.stats {
		counter := tracing.NewCountTracer()
		tracing.CollectHarness(h, counter)
		finishers = append(finishers, func(verdict.Verdict) {
			counter.Report(r.out)
		})
	}

	if c.TracePath != "" {
		backend, err := openBackend(c.TracePath)
		if err != nil {
			return nil, err
		}

		exec := datarecording.NewExecRecorder(backend)
		exec.Start()
		exec.Set("Image", c.ImagePath)
		exec.Set("Profile", c.Profile.Name)
		exec.Set("Seed", strconv.FormatInt(c.Seed, 10))
		exec.Set("Variant", c.Variant.Name)
		exec.Set("Device", c.DUTModel)

		tracing.CollectHarness(h, tracing.NewDBTracer(backend))

		finishers = append(finishers, func(v verdict.Verdict) {
			exec.Set("Verdict", v.String())
			exec.End()

			if err := backend.Close(); err != nil {
				fmt.Fprintf(r.errOut, "Error: %s\n", err)
			}
		})
	}

	return func(v verdict.Verdict) {
		for _, f := range finishers {
			f(v)
		}
	}, nil
}

func openBackend(path string) (datarecording.DataRecorder, error) {
	if strings.HasPrefix(path, "clickhouse://") {
		return datarecording.NewClickHouse(path)
	}

	return datarecording.New(path), nil
}

func (r *benchRun) startMonitor(engine sim.Engine, h *harness.Harness) {
	c := r.cfg

	m := monitoring.NewMonitor().
		WithPortNumber(c.MonitorPort).
		WithBrowser(c.OpenBrowser)
	m.RegisterEngine(engine)
	m.RegisterVerdictSource(h)

	for _, comp := range h.Components() {
		m.RegisterComponent(comp)
	}

	bar := m.CreateProgressBar("Cycles", c.MaxCycles)
	engine.AcceptHook(monitoring.CycleProgress(bar, engine))

	m.StartServer()
}
