package ipc

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/chess10kp/xpdesk/internal/winstate"
)

const (
	BusName       = "com.github.chess10kp.xpdesk"
	BusInterface  = "com.github.chess10kp.xpdesk.Desktop"
	BusObjectPath = dbus.ObjectPath("/com/github/chess10kp/xpdesk")
)

// BusService publishes the desktop commands on the session bus.
type BusService struct {
	methods *busMethods
	conn    *dbus.Conn
	running bool
	mu      sync.Mutex
}

func NewBusService(handler Handler, run Runner) *BusService {
	if run == nil {
		run = func(fn func()) { fn() }
	}
	return &BusService{
		methods: &busMethods{handler: handler, run: run, timeout: 5 * time.Second},
	}
}

func (b *BusService) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		return ErrAlreadyRunning
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	if err := conn.Export(b.methods, BusObjectPath, BusInterface); err != nil {
		conn.Close()
		return fmt.Errorf("failed to export interface: %w", err)
	}

	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to request name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return fmt.Errorf("name %s already owned by another process", BusName)
	}

	b.conn = conn
	b.running = true
	log.Printf("[DBUS] serving %s on %s", BusInterface, BusName)
	return nil
}

func (b *BusService) Stop() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.running {
		return nil
	}
	b.running = false

	if b.conn != nil {
		b.conn.ReleaseName(BusName)
		b.conn.Close()
		b.conn = nil
	}
	log.Println("[DBUS] service stopped")
	return nil
}

// busMethods holds exactly the exported bus methods.
type busMethods struct {
	handler Handler
	run     Runner
	timeout time.Duration
}

func (m *busMethods) call(name, arg string) (string, *dbus.Error) {
	reply, err := dispatch(m.run, m.handler, m.timeout, Command{Name: name, Arg: arg})
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	return reply, nil
}

func (m *busMethods) States() ([]string, []string, []string, *dbus.Error) {
	reply, derr := m.call(CmdStates, "")
	if derr != nil {
		return nil, nil, nil, derr
	}
	var s winstate.Snapshot
	if err := json.Unmarshal([]byte(reply), &s); err != nil {
		return nil, nil, nil, dbus.MakeFailedError(err)
	}
	return s.Open, s.Minimized, s.Closed, nil
}

func (m *busMethods) RestoreAll() *dbus.Error {
	_, err := m.call(CmdRestoreAll, "")
	return err
}

func (m *busMethods) Start() *dbus.Error {
	_, err := m.call(CmdStart, "")
	return err
}

func (m *busMethods) Restore(query string) (string, *dbus.Error) {
	return m.call(CmdRestore, query)
}

func (m *busMethods) Minimize(title string) *dbus.Error {
	_, err := m.call(CmdMinimize, title)
	return err
}

func (m *busMethods) Maximize(title string) *dbus.Error {
	_, err := m.call(CmdMaximize, title)
	return err
}

func (m *busMethods) Close(title string) *dbus.Error {
	_, err := m.call(CmdClose, title)
	return err
}
