// Package supervisor implements the process-lifecycle state machine:
// configure phase, run phase, monitoring, and draining.
package supervisor

import (
	"math"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"baron.dev/internal/config"
	"baron.dev/internal/proc"
)

// escalationTimeout bounds the draining phase: once it elapses the
// supervisor exits with the recorded code even if some descendant ignored
// or survived the termination broadcast.
const escalationTimeout = 10 * time.Second

// echildBackoff paces the reaper while no child processes exist, so it
// reports the condition without spinning.
const echildBackoff = 500 * time.Millisecond

// exitEvent is one reaped child, or the observation that none remain.
type exitEvent struct {
	pid        int
	status     unix.WaitStatus
	noChildren bool
}

// Supervisor owns all lifecycle state. The signal goroutine writes only the
// running flag and reads only the recorded final code; every other field is
// touched exclusively by the main control flow.
type Supervisor struct {
	cmds  config.CommandSet
	watch []*config.Command
	opts  config.Options
	log   *zap.SugaredLogger

	running   atomic.Bool
	finalCode atomic.Int32

	shutdown     chan struct{}
	shutdownOnce sync.Once
	events       chan exitEvent
}

// New builds a supervisor for cmds. watch is the derived watch set, in
// declaration order; it references entries of cmds and is never mutated.
func New(cmds config.CommandSet, watch []*config.Command, opts config.Options, log *zap.SugaredLogger) *Supervisor {
	s := &Supervisor{
		cmds:     cmds,
		watch:    watch,
		opts:     opts,
		log:      log,
		shutdown: make(chan struct{}),
		events:   make(chan exitEvent),
	}
	s.running.Store(true)
	return s
}

// Run drives the supervisor through its phases and returns the final exit
// code: 0 if every watched command exited 0, otherwise the status of the
// first watched command, by declaration order, to have exited nonzero.
func (s *Supervisor) Run() int {
	s.installSignalHandlers()

	// pid 1 is already its namespace's reaper; anywhere else the subreaper
	// attribute is what makes orphaned grandchildren reparent to us.
	if os.Getpid() != 1 {
		if err := proc.EnableChildSubreaper(); err != nil {
			s.log.Debugw("could not become child subreaper", "error", err)
		}
	}

	s.runConfigurePhase()
	if !s.running.Load() {
		// Shut down before anything was watched: vacuously clean.
		return 0
	}

	s.runRunPhase()
	go s.reap()

	code := s.monitor()
	s.finalCode.Store(int32(code))

	// The broadcast below must not re-trigger our own shutdown handling.
	signal.Ignore(syscall.SIGINT, syscall.SIGTERM)
	time.AfterFunc(escalationTimeout, s.escalate)

	if err := proc.Broadcast(unix.SIGTERM, s.opts.SignalEverything); err != nil {
		s.log.Debugw("termination broadcast failed", "error", err)
	}
	s.drain()

	s.log.Debug("all processes exited cleanly")
	return code
}

// installSignalHandlers wires the two asynchronous paths: interrupt and
// terminate flip the running flag (irrecoverably), and the alarm signal
// force-exits with the recorded code. The goroutine below is the only
// writer of the flag.
func (s *Supervisor) installSignalHandlers() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGALRM)

	go func() {
		for sig := range sigs {
			switch sig {
			case syscall.SIGALRM:
				s.escalate()
			default:
				s.log.Debugw("got signal", "signal", sig)
				s.running.Store(false)
				s.shutdownOnce.Do(func() { close(s.shutdown) })
			}
		}
	}()
}

// escalate is the deadman's switch bounding shutdown latency: exit
// immediately with whatever code the monitor recorded.
func (s *Supervisor) escalate() {
	s.log.Debug("timeout waiting for child processes to die")
	os.Exit(int(s.finalCode.Load()))
}

// runConfigurePhase launches every configure command in declaration order,
// then blocks until no child processes remain. Exit statuses are ignored.
// No-op if nothing is flagged configure.
func (s *Supervisor) runConfigurePhase() {
	launched := 0
	for _, c := range s.cmds {
		if !c.Configure {
			continue
		}
		if err := proc.Launch(c); err == nil {
			launched++
		}
	}
	if launched == 0 {
		return
	}

	s.log.Debug("waiting for configuration commands to exit")
	for {
		if _, _, err := proc.WaitAny(); err == unix.ECHILD {
			break
		}
	}
	s.log.Debug("all configuration commands have exited")
}

// runRunPhase launches every non-configure command in declaration order
// without waiting for any of them. Launch failures surface later through
// the aggregation path.
func (s *Supervisor) runRunPhase() {
	for _, c := range s.cmds {
		if !c.Configure {
			_ = proc.Launch(c)
		}
	}
}

// reap turns the blocking wait primitive into events for the monitor and
// drain loops. It runs for the rest of the process lifetime; once no
// children remain it reports that and backs off instead of spinning.
func (s *Supervisor) reap() {
	for {
		pid, status, err := proc.WaitAny()
		if err == unix.ECHILD {
			s.events <- exitEvent{noChildren: true}
			time.Sleep(echildBackoff)
			continue
		}
		if err != nil {
			s.log.Debugw("wait returned unhandled error state", "error", err)
			continue
		}
		s.events <- exitEvent{pid: pid, status: status}
	}
}

// monitor implements the MONITORING state: consume child exits until every
// watched command is accounted for or a shutdown request arrives, folding
// the first nonzero exit status by declaration order into the candidate
// final code.
func (s *Supervisor) monitor() int {
	code := 0
	codeIdx := math.MaxInt
	remaining := len(s.watch)

	// A watched command that never launched counts as status 1 at its
	// declaration index, the same path any other failure takes.
	for i, c := range s.watch {
		if c.PID == 0 {
			remaining--
			if i < codeIdx {
				code, codeIdx = 1, i
			}
		}
	}

	for remaining > 0 {
		select {
		case <-s.shutdown:
			return code
		case ev := <-s.events:
			if ev.noChildren {
				// Watched pids were reaped out from under the watch
				// set; benign, keep waiting for a shutdown request.
				s.log.Debugw("no children left but watched commands outstanding", "outstanding", remaining)
				continue
			}

			idx := s.watchIndex(ev.pid)
			if idx < 0 {
				s.log.Debugw("process exit not in watched commands list", "pid", ev.pid)
				continue
			}
			if ev.status.Exited() {
				if st := ev.status.ExitStatus(); st != 0 && idx < codeIdx {
					code, codeIdx = st, idx
				}
				s.log.Debugw("watched process exit", "pid", ev.pid, "status", ev.status.ExitStatus(), "left", remaining-1)
			} else {
				s.log.Debugw("watched process terminated by signal", "pid", ev.pid, "left", remaining-1)
			}
			remaining--
		}
	}
	return code
}

// watchIndex maps a reaped pid to its watch-set index, or -1. A linear scan
// is fine at the supervisor's scale of single-digit command counts.
func (s *Supervisor) watchIndex(pid int) int {
	for i, c := range s.watch {
		if c.PID == pid {
			return i
		}
	}
	return -1
}

// drain implements the DRAINING state: consume reaper events until no child
// processes remain. The escalation timer armed by Run bounds this phase.
func (s *Supervisor) drain() {
	for ev := range s.events {
		if ev.noChildren {
			return
		}
		s.log.Debugw("reaped during drain", "pid", ev.pid)
	}
}
