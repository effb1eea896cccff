// Command refworker is a minimal reference implementation of the worker
// side of the protocol internal/worker.Handle drives, useful for manually
// exercising a real spawned process instead of only the in-process pipe
// fakes internal/worker's tests use. It is not part of the simulator core;
// the worker binary is an external collaborator, used here only through
// its documented stdin/stdout/signal interface.
package main

import (
	"encoding/hex"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/blake2b"
)

func main() {
	name := "unknown"
	if len(os.Args) > 1 {
		name = os.Args[1]
	}

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGTSTP)
	contCh := make(chan os.Signal, 1)
	signal.Notify(contCh, syscall.SIGCONT)
	termCh := make(chan os.Signal, 1)
	signal.Notify(termCh, syscall.SIGTERM)

	for {
		var hdr [4]byte
		if _, err := io.ReadFull(os.Stdin, hdr[:]); err != nil {
			return
		}

		switch awaitSignal(stopCh, termCh) {
		case sigTerm:
			os.Stdout.Write(digest(name, hdr))
			return
		case sigStop:
			// signal.Notify on SIGTSTP replaces its default stop action,
			// so the process stops itself with SIGSTOP and, once resumed,
			// waits for the SIGCONT notification.
			_ = syscall.Kill(os.Getpid(), syscall.SIGSTOP)
			<-contCh
		default:
			os.Stdout.Write([]byte{hdr[3]})
		}
	}
}

type signalKind int

const (
	sigNone signalKind = iota
	sigStop
	sigTerm
)

// awaitSignal gives the OS a brief window to deliver a signal the parent
// sent immediately after its write, which arrives asynchronously relative
// to this process's read returning. A purely synchronous disambiguation
// is not possible from the wire bytes alone: start/suspend/continue all
// write an identical 4-byte payload, and only the accompanying signal
// distinguishes them.
func awaitSignal(stopCh, termCh <-chan os.Signal) signalKind {
	deadline := time.After(50 * time.Millisecond)
	for {
		select {
		case <-termCh:
			return sigTerm
		case <-stopCh:
			return sigStop
		case <-deadline:
			return sigNone
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

func digest(name string, hdr [4]byte) []byte {
	sum := blake2b.Sum256(append([]byte(name), hdr[:]...))
	hexDigest := make([]byte, 64)
	hex.Encode(hexDigest, sum[:32])
	return hexDigest
}
