package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/russellwmy/near-api-go/cli/app"
	"github.com/russellwmy/near-api-go/pkg/nearrpc"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

// executor represents context for a test instance.
// It can be safely used in multiple tests, but not in parallel.
type executor struct {
	// CLI is a cli application to test.
	CLI *cli.App
	// Node is a fake RPC node answering with canned responses.
	Node *fakeNode
	// Out contains command output.
	Out *bytes.Buffer
	// Err contains command errors.
	Err *bytes.Buffer
}

// fakeNode answers every method with the configured response body (either
// a "result" or an "error" member) and records received requests.
type fakeNode struct {
	*httptest.Server

	lock      sync.Mutex
	responses map[string]string
	requests  []nearrpc.Request
}

func newFakeNode(t *testing.T) *fakeNode {
	n := &fakeNode{responses: make(map[string]string)}
	n.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("Cannot read request body: %s", err)
			return
		}
		var req nearrpc.Request
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("Cannot decode request body: %s", body)
			return
		}
		n.lock.Lock()
		n.requests = append(n.requests, req)
		resp, ok := n.responses[req.Method]
		n.lock.Unlock()
		if !ok {
			resp = `"error":{"name":"REQUEST_VALIDATION_ERROR","cause":{"name":"METHOD_NOT_FOUND","info":{"method_name":"` + req.Method + `"}},"code":-32601,"message":"Method not found","data":"` + req.Method + `"}`
		}
		id, _ := json.Marshal(req.ID)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(id) + `,` + resp + `}`))
	}))
	t.Cleanup(n.Close)
	return n
}

// setResult makes the node answer the method with the given result.
func (n *fakeNode) setResult(method, result string) {
	n.lock.Lock()
	defer n.lock.Unlock()
	n.responses[method] = `"result":` + result
}

// setError makes the node answer the method with the given error.
func (n *fakeNode) setError(method, rpcErr string) {
	n.lock.Lock()
	defer n.lock.Unlock()
	n.responses[method] = `"error":` + rpcErr
}

// lastRequest returns the last request received by the node.
func (n *fakeNode) lastRequest(t *testing.T) nearrpc.Request {
	n.lock.Lock()
	defer n.lock.Unlock()
	require.NotEmpty(t, n.requests, "no requests received")
	return n.requests[len(n.requests)-1]
}

func (n *fakeNode) requestCount() int {
	n.lock.Lock()
	defer n.lock.Unlock()
	return len(n.requests)
}

func newExecutor(t *testing.T) *executor {
	e := &executor{
		CLI:  app.New(),
		Node: newFakeNode(t),
		Out:  bytes.NewBuffer(nil),
		Err:  bytes.NewBuffer(nil),
	}
	e.CLI.Writer = e.Out
	e.CLI.ErrWriter = e.Err
	return e
}

func (e *executor) getNextLine(t *testing.T) string {
	line, err := e.Out.ReadString('\n')
	require.NoError(t, err)
	return strings.TrimSuffix(line, "\n")
}

func (e *executor) checkNextLine(t *testing.T, expected string) {
	line := e.getNextLine(t)
	e.checkLine(t, line, expected)
}

func (e *executor) checkLine(t *testing.T, line, expected string) {
	require.Regexp(t, expected, line)
}

func (e *executor) checkEOF(t *testing.T) {
	_, err := e.Out.ReadString('\n')
	require.True(t, errors.Is(err, io.EOF))
}

// checkJSON decodes the whole command output into v.
func (e *executor) checkJSON(t *testing.T, v any) {
	require.NoError(t, json.Unmarshal(e.Out.Bytes(), v), "invalid output: %s", e.Out.String())
	e.Out.Reset()
}

// checkParams compares the parameters of the last request with the
// expected JSON.
func (e *executor) checkParams(t *testing.T, method string, params string) {
	req := e.Node.lastRequest(t)
	require.Equal(t, method, req.Method)
	require.JSONEq(t, params, string(req.Params))
}

func setExitFunc() <-chan int {
	ch := make(chan int, 1)
	cli.OsExiter = func(code int) {
		ch <- code
	}
	return ch
}

func checkExit(t *testing.T, ch <-chan int, code int) {
	select {
	case c := <-ch:
		require.Equal(t, code, c)
	default:
		if code != 0 {
			require.Fail(t, "no exit was called")
		}
	}
}

// RunWithError runs command and checks that is exits with error.
func (e *executor) RunWithError(t *testing.T, args ...string) {
	ch := setExitFunc()
	require.Error(t, e.run(args...))
	checkExit(t, ch, 1)
}

// Run runs command and checks that there were no errors.
func (e *executor) Run(t *testing.T, args ...string) {
	ch := setExitFunc()
	require.NoError(t, e.run(args...))
	checkExit(t, ch, 0)
}

func (e *executor) run(args ...string) error {
	e.Out.Reset()
	e.Err.Reset()
	return e.CLI.Run(args)
}
