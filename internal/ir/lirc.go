package ir

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"time"
)

// DefaultSocket is the lircd control socket on Raspberry Pi OS.
const DefaultSocket = "/var/run/lirc/lircd"

// lirc key names for each logical command, as configured in lircd.conf for
// the air conditioner remote.
var lircKeys = map[Command]string{
	CmdOff:    "KEY_POWER_OFF",
	CmdOn:     "KEY_POWER_ON",
	CmdCool20: "KEY_COOL_20",
	CmdFan1:   "KEY_FAN_1",
	CmdFan2:   "KEY_FAN_2",
}

// LircSender transmits commands through a lircd daemon.
type LircSender struct {
	conn   net.Conn
	reader *bufio.Reader
	remote string
}

// NewLircSender connects to the lircd socket. The remote name must match a
// remote block in lircd.conf.
func NewLircSender(socket, remote string) (*LircSender, error) {
	conn, err := net.DialTimeout("unix", socket, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("connect to lircd: %w", err)
	}
	return &LircSender{
		conn:   conn,
		reader: bufio.NewReader(conn),
		remote: remote,
	}, nil
}

// Send issues SEND_ONCE for the command and waits for lircd's reply block.
func (s *LircSender) Send(cmd Command) error {
	key, ok := lircKeys[cmd]
	if !ok {
		return fmt.Errorf("no lirc key for command %q", cmd)
	}

	s.conn.SetDeadline(time.Now().Add(5 * time.Second))
	if _, err := fmt.Fprintf(s.conn, "SEND_ONCE %s %s\n", s.remote, key); err != nil {
		return fmt.Errorf("send %s: %w", key, err)
	}

	// lircd answers with a BEGIN..END block echoing the command and a
	// SUCCESS or ERROR status line.
	var success bool
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read lircd reply: %w", err)
		}
		switch strings.TrimSpace(line) {
		case "SUCCESS":
			success = true
		case "END":
			if !success {
				return fmt.Errorf("lircd rejected %s", key)
			}
			return nil
		}
	}
}

// Close disconnects from lircd.
func (s *LircSender) Close() error {
	return s.conn.Close()
}
