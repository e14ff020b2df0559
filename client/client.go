// Package client speaks the bridge's line-delimited JSON protocol.
package client

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// Client is one open connection to a bridge server. It is not safe
// for concurrent use; the protocol is strictly request/response.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
}

// Dial connects to a bridge server.
func Dial(addr string) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &Client{conn: conn, reader: bufio.NewReader(conn)}, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

type request struct {
	Type   string         `json:"type"`
	Params map[string]any `json:"params,omitempty"`
}

// Response is the decoded outer envelope of a reply.
type Response struct {
	Status string          `json:"status"`
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

// Call sends one command and reads its reply. A reply with an error
// status is returned as a non-nil error; the connection stays usable
// either way.
func (c *Client) Call(command string, params map[string]any) (json.RawMessage, error) {
	resp, err := c.CallRaw(command, params)
	if err != nil {
		return nil, err
	}
	if resp.Status != "success" {
		return nil, fmt.Errorf("%s: %s", command, resp.Error)
	}
	return resp.Result, nil
}

// CallRaw sends one command and returns the undissected envelope.
func (c *Client) CallRaw(command string, params map[string]any) (*Response, error) {
	data, err := json.Marshal(request{Type: command, Params: params})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	if _, err := c.conn.Write(append(data, '\n')); err != nil {
		return nil, fmt.Errorf("write request: %w", err)
	}
	return c.readResponse()
}

// SendRaw writes an arbitrary line and reads the reply envelope. Used
// to exercise the server's handling of malformed input.
func (c *Client) SendRaw(line string) (*Response, error) {
	if _, err := c.conn.Write([]byte(line + "\n")); err != nil {
		return nil, fmt.Errorf("write raw line: %w", err)
	}
	return c.readResponse()
}

func (c *Client) readResponse() (*Response, error) {
	line, err := c.reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	var resp Response
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &resp, nil
}

// CallInto sends a command and decodes its result into out.
func (c *Client) CallInto(command string, params map[string]any, out any) error {
	result, err := c.Call(command, params)
	if err != nil {
		return err
	}
	if out == nil || len(result) == 0 {
		return nil
	}
	if err := json.Unmarshal(result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", command, err)
	}
	return nil
}
