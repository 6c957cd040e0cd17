package lsp

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulelint-dev/rulelint/internal/testutil"
)

// readFrames decodes every Content-Length framed message written to buf.
func readFrames(t *testing.T, buf *bytes.Buffer) []JSONRPCMessage {
	t.Helper()

	var msgs []JSONRPCMessage
	data := buf.String()
	for len(data) > 0 {
		const marker = "\r\n\r\n"
		idx := strings.Index(data, marker)
		require.NotEqual(t, -1, idx, "missing header terminator in %q", data)

		header := data[:idx]
		require.True(t, strings.HasPrefix(header, "Content-Length: "), "unexpected header %q", header)
		length, err := strconv.Atoi(strings.TrimPrefix(header, "Content-Length: "))
		require.NoError(t, err)

		body := data[idx+len(marker) : idx+len(marker)+length]
		var msg JSONRPCMessage
		require.NoError(t, json.Unmarshal([]byte(body), &msg))
		msgs = append(msgs, msg)

		data = data[idx+len(marker)+length:]
	}
	return msgs
}

func newTestServer(t *testing.T) (*Server, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	server := NewServerWithLogger(strings.NewReader(""), out, testutil.NewTestLogger(t))
	return server, out
}

func frameMessage(body string) string {
	return "Content-Length: " + strconv.Itoa(len(body)) + "\r\n\r\n" + body
}

func TestServer_ReadMessage(t *testing.T) {
	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`
	server := NewServerWithLogger(strings.NewReader(frameMessage(body)), &bytes.Buffer{}, testutil.NewTestLogger(t))

	msg, err := server.readMessage()
	require.NoError(t, err)
	assert.Equal(t, "initialize", msg.Method)
	require.NotNil(t, msg.ID)
}

func TestServer_ReadMessage_MissingContentLength(t *testing.T) {
	server := NewServerWithLogger(strings.NewReader("\r\n"), &bytes.Buffer{}, testutil.NewTestLogger(t))

	_, err := server.readMessage()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing Content-Length")
}

func TestServer_WriteMessage_Framing(t *testing.T) {
	server, out := newTestServer(t)

	server.sendNotification("window/showMessage", &ShowMessageParams{
		Type:    MessageTypeInfo,
		Message: "hello",
	})

	frames := readFrames(t, out)
	require.Len(t, frames, 1)
	assert.Equal(t, "2.0", frames[0].JSONRPC)
	assert.Equal(t, "window/showMessage", frames[0].Method)
	assert.Nil(t, frames[0].ID)
}

func TestServer_InitializeHandshake(t *testing.T) {
	server, out := newTestServer(t)
	root := t.TempDir()

	id := json.RawMessage("1")
	params, err := json.Marshal(InitializeParams{RootURI: PathToURI(root)})
	require.NoError(t, err)

	require.NoError(t, server.handleMessage(&JSONRPCMessage{
		JSONRPC: "2.0", ID: &id, Method: "initialize", Params: params,
	}))

	frames := readFrames(t, out)
	require.Len(t, frames, 1)
	require.Nil(t, frames[0].Error)

	var result InitializeResult
	require.NoError(t, json.Unmarshal(frames[0].Result, &result))
	require.NotNil(t, result.Capabilities.TextDocumentSync)
	assert.True(t, result.Capabilities.TextDocumentSync.OpenClose)
	assert.Equal(t, TextDocumentSyncKindFull, result.Capabilities.TextDocumentSync.Change)

	assert.Equal(t, root, server.projectRoot)
	require.NotNil(t, server.analyzer)
}

func TestServer_DidOpenPublishesDiagnostics(t *testing.T) {
	server, out := newTestServer(t)

	params, err := json.Marshal(DidOpenTextDocumentParams{TextDocument: TextDocumentItem{
		URI:        "file:///rules/no-meta.js",
		LanguageID: "javascript",
		Version:    1,
		Text:       ruleMissingMeta,
	}})
	require.NoError(t, err)

	require.NoError(t, server.handleMessage(&JSONRPCMessage{
		JSONRPC: "2.0", Method: "textDocument/didOpen", Params: params,
	}))

	frames := readFrames(t, out)
	require.Len(t, frames, 1)
	assert.Equal(t, "textDocument/publishDiagnostics", frames[0].Method)

	var published PublishDiagnosticsParams
	require.NoError(t, json.Unmarshal(frames[0].Params, &published))
	assert.Equal(t, "file:///rules/no-meta.js", published.URI)
	assert.Equal(t, 1, published.Version)
	require.Len(t, published.Diagnostics, 1)
	assert.Equal(t, "MT01", published.Diagnostics[0].Code)
}

func TestServer_DidChangeRelints(t *testing.T) {
	server, out := newTestServer(t)
	uri := "file:///rules/test.js"

	openParams, err := json.Marshal(DidOpenTextDocumentParams{TextDocument: TextDocumentItem{
		URI: uri, LanguageID: "javascript", Version: 1, Text: ruleComplete,
	}})
	require.NoError(t, err)
	require.NoError(t, server.handleMessage(&JSONRPCMessage{
		JSONRPC: "2.0", Method: "textDocument/didOpen", Params: openParams,
	}))

	changeParams, err := json.Marshal(DidChangeTextDocumentParams{
		TextDocument: VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []TextDocumentContentChangeEvent{{Text: ruleMissingMeta}},
	})
	require.NoError(t, err)
	require.NoError(t, server.handleMessage(&JSONRPCMessage{
		JSONRPC: "2.0", Method: "textDocument/didChange", Params: changeParams,
	}))

	frames := readFrames(t, out)
	require.Len(t, frames, 2)

	var first PublishDiagnosticsParams
	require.NoError(t, json.Unmarshal(frames[0].Params, &first))
	assert.Equal(t, 1, first.Version)
	assert.Empty(t, first.Diagnostics)

	var second PublishDiagnosticsParams
	require.NoError(t, json.Unmarshal(frames[1].Params, &second))
	assert.Equal(t, 2, second.Version)
	require.Len(t, second.Diagnostics, 1)
	assert.Equal(t, "MT01", second.Diagnostics[0].Code)
}

func TestServer_DidCloseClearsDiagnostics(t *testing.T) {
	server, out := newTestServer(t)
	uri := "file:///rules/no-meta.js"

	openParams, err := json.Marshal(DidOpenTextDocumentParams{TextDocument: TextDocumentItem{
		URI: uri, LanguageID: "javascript", Version: 1, Text: ruleMissingMeta,
	}})
	require.NoError(t, err)
	require.NoError(t, server.handleMessage(&JSONRPCMessage{
		JSONRPC: "2.0", Method: "textDocument/didOpen", Params: openParams,
	}))

	closeParams, err := json.Marshal(DidCloseTextDocumentParams{
		TextDocument: TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	require.NoError(t, server.handleMessage(&JSONRPCMessage{
		JSONRPC: "2.0", Method: "textDocument/didClose", Params: closeParams,
	}))

	frames := readFrames(t, out)
	require.Len(t, frames, 2)

	var cleared PublishDiagnosticsParams
	require.NoError(t, json.Unmarshal(frames[1].Params, &cleared))
	assert.Equal(t, uri, cleared.URI)
	assert.Empty(t, cleared.Diagnostics)

	assert.Nil(t, server.documents.Get(uri))
}

func TestServer_NonRuleFileGetsNoDiagnostics(t *testing.T) {
	server, out := newTestServer(t)

	params, err := json.Marshal(DidOpenTextDocumentParams{TextDocument: TextDocumentItem{
		URI: "file:///project/README.md", LanguageID: "markdown", Version: 1, Text: "# readme",
	}})
	require.NoError(t, err)
	require.NoError(t, server.handleMessage(&JSONRPCMessage{
		JSONRPC: "2.0", Method: "textDocument/didOpen", Params: params,
	}))

	frames := readFrames(t, out)
	require.Len(t, frames, 1)

	var published PublishDiagnosticsParams
	require.NoError(t, json.Unmarshal(frames[0].Params, &published))
	assert.Empty(t, published.Diagnostics)
}

func TestServer_ConfigSaveReloadsAnalyzer(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, "rulelint.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("lint:\n  disabled:\n    - MT01\n"), 0600))

	server, out := newTestServer(t)

	id := json.RawMessage("1")
	initParams, err := json.Marshal(InitializeParams{RootURI: PathToURI(root)})
	require.NoError(t, err)
	require.NoError(t, server.handleMessage(&JSONRPCMessage{
		JSONRPC: "2.0", ID: &id, Method: "initialize", Params: initParams,
	}))

	// MT01 is disabled in the workspace config, so the broken rule is clean
	uri := PathToURI(filepath.Join(root, "rules", "no-meta.js"))
	openParams, err := json.Marshal(DidOpenTextDocumentParams{TextDocument: TextDocumentItem{
		URI: uri, LanguageID: "javascript", Version: 1, Text: ruleMissingMeta,
	}})
	require.NoError(t, err)
	require.NoError(t, server.handleMessage(&JSONRPCMessage{
		JSONRPC: "2.0", Method: "textDocument/didOpen", Params: openParams,
	}))

	// Re-enable the rule, then save the config file in the editor
	require.NoError(t, os.WriteFile(configPath, []byte("rules_dir: rules\n"), 0600))
	saveParams, err := json.Marshal(DidSaveTextDocumentParams{
		TextDocument: TextDocumentIdentifier{URI: PathToURI(configPath)},
	})
	require.NoError(t, err)
	require.NoError(t, server.handleMessage(&JSONRPCMessage{
		JSONRPC: "2.0", Method: "textDocument/didSave", Params: saveParams,
	}))

	frames := readFrames(t, out)
	require.Len(t, frames, 3) // initialize response + two publishes

	var before PublishDiagnosticsParams
	require.NoError(t, json.Unmarshal(frames[1].Params, &before))
	assert.Empty(t, before.Diagnostics)

	var after PublishDiagnosticsParams
	require.NoError(t, json.Unmarshal(frames[2].Params, &after))
	require.Len(t, after.Diagnostics, 1)
	assert.Equal(t, "MT01", after.Diagnostics[0].Code)
}

func TestServer_UnknownMethod(t *testing.T) {
	t.Run("request gets method not found", func(t *testing.T) {
		server, out := newTestServer(t)

		id := json.RawMessage("7")
		require.NoError(t, server.handleMessage(&JSONRPCMessage{
			JSONRPC: "2.0", ID: &id, Method: "workspace/symbol",
		}))

		frames := readFrames(t, out)
		require.Len(t, frames, 1)
		require.NotNil(t, frames[0].Error)
		assert.Equal(t, -32601, frames[0].Error.Code)
	})

	t.Run("notification is ignored", func(t *testing.T) {
		server, out := newTestServer(t)

		require.NoError(t, server.handleMessage(&JSONRPCMessage{
			JSONRPC: "2.0", Method: "$/cancelRequest",
		}))

		assert.Empty(t, readFrames(t, out))
	})
}

func TestServer_Shutdown(t *testing.T) {
	server, out := newTestServer(t)

	id := json.RawMessage("2")
	require.NoError(t, server.handleMessage(&JSONRPCMessage{
		JSONRPC: "2.0", ID: &id, Method: "shutdown",
	}))

	frames := readFrames(t, out)
	require.Len(t, frames, 1)
	assert.Nil(t, frames[0].Error)
	assert.True(t, server.shutdown)
}

func TestServer_RunStopsOnEOF(t *testing.T) {
	server := NewServerWithLogger(strings.NewReader(""), &bytes.Buffer{}, testutil.NewTestLogger(t))
	require.NoError(t, server.Run())
}

func TestIsConfigFileName(t *testing.T) {
	assert.True(t, isConfigFileName("rulelint.yaml"))
	assert.True(t, isConfigFileName("rulelint.yml"))
	assert.False(t, isConfigFileName("package.json"))
	assert.False(t, isConfigFileName("rule.js"))
}
