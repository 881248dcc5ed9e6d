// Package snoozecli is the client side of the daemon's socket transport.
// CLI commands use it to schedule and inspect snoozed tabs, and to stream
// wake updates as due tabs are reopened.
package snoozecli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/niteowll/SnoozeTabs/common"
)

type Client struct {
	mu   *sync.RWMutex
	d    *Dispatcher
	conn net.Conn
}

// NewClient connects to the daemon over the unix socket, falling back to
// TCP when the socket is unavailable.
func NewClient() (*Client, error) {
	conn, err := dial()
	if err != nil {
		return nil, err
	}
	return &Client{
		conn: conn,
		mu:   &sync.RWMutex{},
		d:    &Dispatcher{},
	}, nil
}

func dial() (net.Conn, error) {
	debugLog("attempting connection via unix socket at %s", socketPath())
	conn, unixErr := net.Dial("unix", socketPath())
	if unixErr != nil {
		debugLog("unix socket connection failed: %v, falling back to tcp", unixErr)
		conn, err := net.Dial("tcp", tcpAddress())
		if err != nil {
			return nil, fmt.Errorf("failed to connect: unix socket error: %v; tcp error: %w", unixErr, err)
		}
		return conn, nil
	}
	return conn, nil
}

// Listen consumes pushed frames until the connection drops or a handler
// returns ErrDisconnect. Use it after Watch to stream wake updates.
func (c *Client) Listen() (err error) {
	defer c.conn.Close()
	for {
		c.mu.RLock()
		var buf []byte
		buf, err = read(c.conn)
		if err != nil {
			c.mu.RUnlock()
			err = fmt.Errorf("error reading: %s", err.Error())
			return
		}
		err = c.d.process(buf)
		if err != nil {
			c.mu.RUnlock()
			if err == ErrDisconnect {
				break
			}
			err = fmt.Errorf("error processing: %s", err.Error())
			return
		}
		c.mu.RUnlock()
	}
	return
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) invoke(op common.OpType, message any) (json.RawMessage, error) {
	// block the updates listener while invoking so the reply frame is
	// consumed here rather than by Listen
	c.mu.Lock()
	defer c.mu.Unlock()
	buf, err := json.Marshal(&Request{
		Op:      op,
		Message: message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %s", op, err.Error())
	}
	err = write(c.conn, buf)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %s", op, err.Error())
	}
	buf, err = read(c.conn)
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %s", op, err.Error())
	}
	var res Response
	err = json.Unmarshal(buf, &res)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %s", op, err.Error())
	}
	if !res.Ok {
		return nil, errors.New(res.Error)
	}
	if res.Update == nil {
		return nil, nil
	}
	return res.Update.Message, nil
}
