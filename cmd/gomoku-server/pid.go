package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// pidFile is a PID file held for the lifetime of the server
type pidFile struct {
	path   string
	file   *os.File
	locked bool
}

// managePIDFile writes the current PID to path, optionally holding an
// exclusive flock. The returned cleanup must run on exit.
func managePIDFile(path string, lock bool) (func(), error) {
	p := &pidFile{path: path}
	if err := p.open(lock); err != nil {
		return nil, err
	}
	if lock {
		if err := p.lock(); err != nil {
			p.file.Close()
			return nil, err
		}
	}
	if err := p.write(os.Getpid()); err != nil {
		p.release()
		return nil, err
	}
	return p.release, nil
}

func (p *pidFile) open(lock bool) error {
	f, err := os.OpenFile(p.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err == nil {
		p.file = f
		return nil
	}
	if !os.IsExist(err) {
		return fmt.Errorf("cannot create PID file: %w", err)
	}

	// An existing file under -pid-lock must belong to a dead process
	if lock {
		if err := checkStalePID(p.path); err != nil {
			return err
		}
	}

	f, err = os.OpenFile(p.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("cannot open PID file: %w", err)
	}
	p.file = f
	return nil
}

func (p *pidFile) lock() error {
	err := syscall.Flock(int(p.file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	if err == nil {
		p.locked = true
		return nil
	}
	if errors.Is(err, syscall.EWOULDBLOCK) {
		return fmt.Errorf("cannot acquire lock: another instance is running")
	}
	return fmt.Errorf("lock failed: %w", err)
}

func (p *pidFile) write(pid int) error {
	if _, err := fmt.Fprintf(p.file, "%d\n", pid); err != nil {
		return fmt.Errorf("cannot write PID: %w", err)
	}
	if err := p.file.Sync(); err != nil {
		return fmt.Errorf("cannot sync PID file: %w", err)
	}
	return nil
}

func (p *pidFile) release() {
	if p.locked {
		syscall.Flock(int(p.file.Fd()), syscall.LOCK_UN)
	}
	p.file.Close()
	os.Remove(p.path)
}

// checkStalePID returns nil only when the recorded process is gone
func checkStalePID(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read existing PID file: %w", err)
	}

	raw := strings.TrimSpace(string(data))
	pid, err := strconv.Atoi(raw)
	if err != nil || pid <= 0 {
		return fmt.Errorf("corrupted PID file (contains: %q)", raw)
	}

	// FindProcess always succeeds on Unix; signal 0 probes for existence
	proc, _ := os.FindProcess(pid)
	err = proc.Signal(syscall.Signal(0))
	switch {
	case err == nil:
		return fmt.Errorf("PID file %s belongs to running process %d", path, pid)
	case errors.Is(err, os.ErrProcessDone), errors.Is(err, syscall.ESRCH):
		return nil
	default:
		return fmt.Errorf("process %d exists but cannot verify ownership: %v", pid, err)
	}
}
