package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCmd_Use(t *testing.T) {
	assert.Equal(t, "chat", chatCmd.Use)
}

func TestChatCmd_AnswersAndExits(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("how much annual leave do I get?\nexit\n"))
	rootCmd.SetArgs([]string{"chat"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Annual leave is 25 days per year.")
	assert.Contains(t, buf.String(), "Bye.")

	mock := queryService.(*mockQueryService)
	assert.Equal(t, 1, mock.calls)
	assert.Empty(t, mock.lastReq.Context, "first question carries no prior turns")
}

func TestChatCmd_CarriesConversationContext(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("how much annual leave do I get?\nand how do I request it?\nexit\n"))
	rootCmd.SetArgs([]string{"chat"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	mock := queryService.(*mockQueryService)
	assert.Equal(t, 2, mock.calls)
	require.Len(t, mock.lastReq.Context, 1)
	assert.Equal(t, "how much annual leave do I get?", mock.lastReq.Context[0].Question)
	assert.Equal(t, "Annual leave is 25 days per year.", mock.lastReq.Context[0].Answer)
}

func TestChatCmd_SkipsBlankLines(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("\n   \nexit\n"))
	rootCmd.SetArgs([]string{"chat"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	mock := queryService.(*mockQueryService)
	assert.Zero(t, mock.calls)
}

func TestChatCmd_EOFEndsSession(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(strings.NewReader("how much annual leave do I get?\n"))
	rootCmd.SetArgs([]string{"chat"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Bye.")
}

func TestChatCmd_QueryErrorKeepsSessionAlive(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	queryService = &mockQueryService{err: errors.New("backend down")}

	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)
	rootCmd.SetOut(outBuf)
	rootCmd.SetErr(errBuf)
	rootCmd.SetIn(strings.NewReader("first question\nsecond question\nexit\n"))
	rootCmd.SetArgs([]string{"chat"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	mock := queryService.(*mockQueryService)
	assert.Equal(t, 2, mock.calls, "the session continues after a failed question")
	assert.Contains(t, errBuf.String(), "backend down")
	assert.Contains(t, outBuf.String(), "Bye.")
}

func TestChatCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	queryService = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"chat"})

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "query service not configured")
}
