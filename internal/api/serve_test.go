package api

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveLines(t *testing.T, d *Dispatcher, input string) []Response {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, Serve(context.Background(), d, strings.NewReader(input), &out))

	var responses []Response
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		var resp Response
		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestServe_RequestPerLine(t *testing.T) {
	d := newDispatcher(t)

	input := `{"op":"create-note","payload":{"title":"Groceries"}}
{"op":"list-notes"}
`
	responses := serveLines(t, d, input)
	require.Len(t, responses, 2)
	assert.True(t, responses[0].OK, responses[0].Error)
	require.True(t, responses[1].OK)
	assert.Len(t, responses[1].Notes, 1)
}

func TestServe_MalformedRequestDoesNotStopTheLoop(t *testing.T) {
	d := newDispatcher(t)

	input := `not json
{"op":"list-tags"}
`
	responses := serveLines(t, d, input)
	require.Len(t, responses, 2)
	assert.False(t, responses[0].OK)
	assert.Contains(t, responses[0].Error, "malformed request")
	assert.True(t, responses[1].OK)
}

func TestServe_SkipsBlankLines(t *testing.T) {
	d := newDispatcher(t)

	input := "\n\n{\"op\":\"list-notes\"}\n\n"
	responses := serveLines(t, d, input)
	require.Len(t, responses, 1)
	assert.True(t, responses[0].OK)
}
