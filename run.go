package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"golang.org/x/sync/errgroup"

	"plu/emu"
	"plu/emu/log"
	"plu/emu/remote"
	"plu/rom"
)

// runMain runs the emulator with the terminal host until the user quits.
func runMain(args Run, cfg emu.Config, logFile *outfile) {
	img, err := rom.ReadImage(args.RomPath)
	checkf(err, "failed to open rom")

	var disk []byte
	if args.DiskPath != "" {
		disk, err = rom.ReadDisk(args.DiskPath)
		checkf(err, "failed to open disk")
	}

	if args.Speed >= 0 {
		cfg.Emulation.Speed = args.Speed
	}
	if args.LogLevel >= 0 {
		cfg.Emulation.LogLevel = args.LogLevel
	}
	if args.Remote != "" {
		cfg.Host.RemoteAddr = args.Remote
	}
	if args.Trace != nil {
		cfg.TraceOut = args.Trace
		defer args.Trace.Close()
	}

	emulator, err := emu.Launch(img, disk, cfg)
	checkf(err, "failed to start emulator")

	if args.CPUProfile != "" {
		f, err := os.Create(args.CPUProfile)
		checkf(err, "failed to create cpu profile file")
		checkf(pprof.StartCPUProfile(f), "failed to start cpu profile")
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
			fmt.Println("CPU profile written to", args.CPUProfile)
		}()
	}

	restore, err := rawTerminal(os.Stdin)
	checkf(err, "failed to setup terminal")

	var logw io.Writer = os.Stderr
	if logFile != nil {
		logw = logFile
	}

	err = runHost(emulator, cfg, logw)
	restore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}

	// The emulation loop has exited, the machine can be accessed.
	if args.DumpState != "" {
		checkf(dumpState(emulator.Machine, args.DumpState), "failed to dump state")
	}
	if args.SaveDisk && args.DiskPath != "" {
		checkf(saveDisk(emulator.Machine, args.DiskPath), "failed to save disk")
	}
}

// runHost runs the emulation loop, the terminal host and the optional remote
// server. It returns when the user quits, on SIGINT/SIGTERM or if the remote
// server fails.
func runHost(e *emu.Emulator, cfg emu.Config, logw io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, quit := context.WithCancel(ctx)
	defer quit()

	h := newHost(e, os.Stdout, logw, cfg.Emulation.LogLevel, quit)

	g, ctx := errgroup.WithContext(ctx)

	var forward func(emu.Event)
	if addr := cfg.Host.RemoteAddr; addr != "" {
		srv := remote.NewServer(e)
		forward = srv.Broadcast
		g.Go(func() error { return srv.ListenAndServe(ctx, addr) })
	}

	g.Go(func() error {
		e.Run(ctx)
		return nil
	})
	g.Go(func() error { return h.pumpEvents(ctx, e, forward) })
	g.Go(func() error { return h.statusMeter(ctx, cfg.Host.StatusInterval) })

	// Reads on stdin can't be interrupted, this goroutine is left behind
	// when the host quits.
	go h.readInput(os.Stdin)

	return g.Wait()
}

func dumpState(m *emu.Machine, path string) error {
	snap := m.Snapshot()
	buf, err := snap.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

func saveDisk(m *emu.Machine, path string) error {
	if m.Disk == nil || !m.Disk.Dirty() {
		log.ModHost.InfoZ("disk unmodified").String("path", path).End()
		return nil
	}
	return rom.WriteDisk(path, m.Disk.Image())
}
