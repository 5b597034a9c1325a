package main

import "os"
import "os/signal"
import "runtime/pprof"
import "sync"
import "syscall"

// startProfile writes a cpu profile to default.pgo. The returned function
// stops it; an interrupt stops it too and exits.
func startProfile() (stop func(), err error) {
	f, err := os.Create("default.pgo")
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}
	sigChan := make(chan os.Signal, 1)
	done := make(chan struct{})
	var once sync.Once
	stop = func() {
		once.Do(func() {
			signal.Stop(sigChan)
			close(done)
			pprof.StopCPUProfile()
			f.Close()
		})
	}

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			stop()
			os.Exit(130)
		case <-done:
		}
	}()
	return stop, nil
}
