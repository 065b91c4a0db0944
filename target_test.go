package llmstxt_test

import (
	"net/url"
	"testing"

	"github.com/fwojciec/llmstxt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRemoteTarget_LowercasesHostname(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("HTTP://Example.COM:8080/Docs")
	require.NoError(t, err)

	target := llmstxt.NewRemoteTarget("HTTP://Example.COM:8080/Docs", u)

	assert.Equal(t, llmstxt.TargetRemote, target.Kind)
	assert.Equal(t, "example.com", target.Hostname)
	assert.False(t, target.IsLocal())
}

func TestTarget_Location(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("https://a.com/llms.txt")
	require.NoError(t, err)

	assert.Equal(t, "https://a.com/llms.txt", llmstxt.NewRemoteTarget("https://a.com/llms.txt", u).Location())
	assert.Equal(t, "/abs/x.md", llmstxt.NewLocalPathTarget("x.md", "/abs/x.md").Location())
	assert.Equal(t, "gopher://x", llmstxt.NewUnsupportedTarget("gopher://x", "scheme").Location())
}

func TestTargetKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "remote", llmstxt.TargetRemote.String())
	assert.Equal(t, "file_url", llmstxt.TargetFileURL.String())
	assert.Equal(t, "local_path", llmstxt.TargetLocalPath.String())
	assert.Equal(t, "unsupported", llmstxt.TargetUnsupported.String())
}
