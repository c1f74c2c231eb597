// SPDX-License-Identifier: Apache-2.0

package executor

import (
	"bytes"
	"context"
	"errors"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joomcode/errorx"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

const (
	DefaultSSHPort        = 22
	DefaultSSHUser        = "root"
	DefaultSSHDialTimeout = 30 * time.Second
)

// SSHConfig describes how to reach the system under test.
type SSHConfig struct {
	// Host is a hostname or address, optionally with a port.
	Host string
	// Port is used when Host carries no port. Defaults to 22.
	Port     int
	User     string
	Password string
	// KeyFile is a path to an unencrypted private key.
	KeyFile string
	// KnownHostsFile enables host key verification. When empty any host key is accepted.
	KnownHostsFile string
	DialTimeout    time.Duration
}

// Address returns the host:port pair to dial.
func (c SSHConfig) Address() string {
	if _, _, err := net.SplitHostPort(c.Host); err == nil {
		return c.Host
	}

	port := c.Port
	if port <= 0 {
		port = DefaultSSHPort
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

// SSHExecutor runs each command in a fresh SSH session on a remote host.
type SSHExecutor struct {
	options
	addr         string
	clientConfig *ssh.ClientConfig
}

// NewSSH validates cfg and prepares the client configuration. No connection is
// made until the first command runs.
func NewSSH(cfg SSHConfig, opts ...Option) (*SSHExecutor, error) {
	if cfg.Host == "" {
		return nil, errorx.IllegalArgument.New("ssh host must not be empty")
	}

	user := cfg.User
	if user == "" {
		user = DefaultSSHUser
	}

	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = DefaultSSHDialTimeout
	}

	var auth []ssh.AuthMethod
	if cfg.KeyFile != "" {
		key, err := os.ReadFile(cfg.KeyFile)
		if err != nil {
			return nil, errorx.IllegalArgument.Wrap(err, "failed to read ssh key file").
				WithProperty(errorx.PropertyPayload(), cfg.KeyFile)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, errorx.IllegalFormat.Wrap(err, "failed to parse ssh key file").
				WithProperty(errorx.PropertyPayload(), cfg.KeyFile)
		}
		auth = append(auth, ssh.PublicKeys(signer))
	}
	if cfg.Password != "" {
		auth = append(auth, ssh.Password(cfg.Password))
	}
	if len(auth) == 0 {
		return nil, errorx.IllegalArgument.New("ssh requires a password or a key file")
	}

	hostKeyCallback := ssh.InsecureIgnoreHostKey()
	if cfg.KnownHostsFile != "" {
		cb, err := knownhosts.New(cfg.KnownHostsFile)
		if err != nil {
			return nil, errorx.IllegalArgument.Wrap(err, "failed to load known hosts").
				WithProperty(errorx.PropertyPayload(), cfg.KnownHostsFile)
		}
		hostKeyCallback = cb
	}

	return &SSHExecutor{
		options: newOptions(opts),
		addr:    cfg.Address(),
		clientConfig: &ssh.ClientConfig{
			User:            user,
			Auth:            auth,
			HostKeyCallback: hostKeyCallback,
			Timeout:         dialTimeout,
		},
	}, nil
}

func (e *SSHExecutor) Name() string {
	return ModeSSH
}

func (e *SSHExecutor) Run(ctx context.Context, command string) (*Result, error) {
	if command == "" {
		return nil, errorx.IllegalArgument.New("command must not be empty")
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	e.logger.Debug().
		Str(logFields.executor, e.Name()).
		Str(logFields.host, e.addr).
		Str(logFields.command, command).
		Msg("Executing remote command")

	client, err := e.dial(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, timeoutError(ctx.Err(), e.Name(), command)
		}
		return nil, ErrConnection.Wrap(err, "failed to connect to %s", e.addr).
			WithProperty(PropertyHost, e.addr)
	}
	defer func() { _ = client.Close() }()

	session, err := client.NewSession()
	if err != nil {
		return nil, ErrConnection.Wrap(err, "failed to open ssh session").
			WithProperty(PropertyHost, e.addr)
	}
	defer func() { _ = session.Close() }()

	var out bytes.Buffer
	session.Stdout = &out
	session.Stderr = &out

	done := make(chan error, 1)
	go func() {
		done <- session.Run(command)
	}()

	select {
	case err = <-done:
	case <-ctx.Done():
		_ = client.Close()
		<-done
		return nil, timeoutError(ctx.Err(), e.Name(), command)
	}

	code := 0
	if err != nil {
		var exitErr *ssh.ExitError
		if !errors.As(err, &exitErr) {
			return nil, ErrConnection.Wrap(err, "remote command did not report an exit status").
				WithProperty(PropertyHost, e.addr).
				WithProperty(PropertyCommand, command)
		}
		code = exitErr.ExitStatus()
	}

	e.logger.Debug().
		Str(logFields.host, e.addr).
		Str(logFields.command, command).
		Int(logFields.exitCode, code).
		Dur(logFields.duration, time.Since(start)).
		Msg("Remote command finished")

	return &Result{ExitCode: code, Output: out.String()}, nil
}

// dial connects with a deadline covering the handshake, then clears it so
// long running commands are bounded only by the context.
func (e *SSHExecutor) dial(ctx context.Context) (*ssh.Client, error) {
	dialer := net.Dialer{Timeout: e.clientConfig.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", e.addr)
	if err != nil {
		return nil, err
	}

	_ = conn.SetDeadline(time.Now().Add(e.clientConfig.Timeout))
	c, chans, reqs, err := ssh.NewClientConn(conn, e.addr, e.clientConfig)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	_ = conn.SetDeadline(time.Time{})

	return ssh.NewClient(c, chans, reqs), nil
}
