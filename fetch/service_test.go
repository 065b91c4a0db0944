package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/llmstxt"
	"github.com/fwojciec/llmstxt/fetch"
	"github.com/fwojciec/llmstxt/fs"
	llmshttp "github.com/fwojciec/llmstxt/http"
	"github.com/fwojciec/llmstxt/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// remoteResolver resolves every input as a remote URL.
func remoteResolver() *mock.Resolver {
	return &mock.Resolver{ResolveFn: func(input string) *llmstxt.Target {
		u, err := url.Parse(input)
		if err != nil {
			return llmstxt.NewUnsupportedTarget(input, err.Error())
		}
		return llmstxt.NewRemoteTarget(input, u)
	}}
}

func allowAll() *mock.Guard {
	return &mock.Guard{CheckAccessFn: func(*llmstxt.Target) error { return nil }}
}

// echoFetcher returns the target URL as content text.
func echoFetcher() *mock.Fetcher {
	return &mock.Fetcher{FetchFn: func(_ context.Context, target *llmstxt.Target) (*llmstxt.Content, error) {
		return &llmstxt.Content{Location: target.Location(), Text: "content of " + target.Input}, nil
	}}
}

func texts(contents []*llmstxt.Content) []string {
	out := make([]string, len(contents))
	for i, c := range contents {
		out[i] = c.Text
	}
	return out
}

func TestService_FetchAll(t *testing.T) {
	t.Parallel()

	t.Run("returns content in input order", func(t *testing.T) {
		t.Parallel()

		svc := &fetch.Service{Resolver: remoteResolver(), Guard: allowAll(), Fetcher: echoFetcher()}

		got, err := svc.FetchAll(context.Background(), []string{"https://b.dev/llms.txt", "https://a.dev/llms.txt"})

		require.NoError(t, err)
		assert.Equal(t, []string{"content of https://b.dev/llms.txt", "content of https://a.dev/llms.txt"}, texts(got))
	})

	t.Run("requires at least one input", func(t *testing.T) {
		t.Parallel()

		svc := &fetch.Service{}

		_, err := svc.FetchAll(context.Background(), nil)

		assert.Equal(t, llmstxt.EINVALID, llmstxt.ErrorCode(err))
	})

	t.Run("unsupported input aborts with its reason", func(t *testing.T) {
		t.Parallel()

		var fetched int
		svc := &fetch.Service{
			Resolver: &mock.Resolver{ResolveFn: func(input string) *llmstxt.Target {
				return llmstxt.NewUnsupportedTarget(input, "unsupported URL scheme: ftp:")
			}},
			Guard: &mock.Guard{CheckAccessFn: func(*llmstxt.Target) error {
				t.Fatal("guard must not see unsupported targets")
				return nil
			}},
			Fetcher: &mock.Fetcher{FetchFn: func(context.Context, *llmstxt.Target) (*llmstxt.Content, error) {
				fetched++
				return nil, nil
			}},
		}

		_, err := svc.FetchAll(context.Background(), []string{"ftp://x/llms.txt"})

		require.Error(t, err)
		assert.Equal(t, llmstxt.EUNSUPPORTED, llmstxt.ErrorCode(err))
		assert.Equal(t, "for URL ftp://x/llms.txt: unsupported URL scheme: ftp:", err.Error())
		assert.Zero(t, fetched)
	})

	t.Run("access denial aborts before fetching", func(t *testing.T) {
		t.Parallel()

		svc := &fetch.Service{
			Resolver: remoteResolver(),
			Guard:    &llmstxt.AccessPolicy{Allowlist: llmstxt.NewAllowlist("example.com")},
			Fetcher: &mock.Fetcher{FetchFn: func(context.Context, *llmstxt.Target) (*llmstxt.Content, error) {
				t.Fatal("denied target must not be fetched")
				return nil, nil
			}},
		}

		_, err := svc.FetchAll(context.Background(), []string{"https://sub.example.com/llms.txt"})

		require.Error(t, err)
		assert.Equal(t, llmstxt.EFORBIDDEN, llmstxt.ErrorCode(err))
		assert.Contains(t, err.Error(), "for URL https://sub.example.com/llms.txt")
		assert.Contains(t, err.Error(), "sub.example.com")
	})

	t.Run("first failure aborts the rest of the batch", func(t *testing.T) {
		t.Parallel()

		var attempted []string
		svc := &fetch.Service{
			Resolver: remoteResolver(),
			Guard:    allowAll(),
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, target *llmstxt.Target) (*llmstxt.Content, error) {
				attempted = append(attempted, target.Input)
				if target.Hostname == "bad.example" {
					return nil, &llmstxt.Error{Code: llmstxt.EHTTP, Message: "HTTP error 404 Not Found", Status: 404}
				}
				return &llmstxt.Content{Text: "ok"}, nil
			}},
		}

		got, err := svc.FetchAll(context.Background(), []string{
			"https://good.example/ok",
			"https://bad.example/missing",
			"https://never.example/x",
		})

		require.Error(t, err)
		assert.Nil(t, got)
		assert.Equal(t, llmstxt.EHTTP, llmstxt.ErrorCode(err))
		assert.Equal(t, 404, llmstxt.ErrorStatus(err))
		assert.Contains(t, err.Error(), "https://bad.example/missing")
		assert.Equal(t, []string{"https://good.example/ok", "https://bad.example/missing"}, attempted)
	})

	t.Run("concurrent batch keeps input order", func(t *testing.T) {
		t.Parallel()

		delays := map[string]time.Duration{
			"https://slow.dev/": 40 * time.Millisecond,
			"https://mid.dev/":  20 * time.Millisecond,
			"https://fast.dev/": 0,
		}
		var inFlight, maxInFlight atomic.Int32
		svc := &fetch.Service{
			Resolver: remoteResolver(),
			Guard:    allowAll(),
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, target *llmstxt.Target) (*llmstxt.Content, error) {
				n := inFlight.Add(1)
				defer inFlight.Add(-1)
				for {
					m := maxInFlight.Load()
					if n <= m || maxInFlight.CompareAndSwap(m, n) {
						break
					}
				}
				time.Sleep(delays[target.Input])
				return &llmstxt.Content{Text: target.Input}, nil
			}},
			Concurrency: 2,
		}

		got, err := svc.FetchAll(context.Background(), []string{"https://slow.dev/", "https://mid.dev/", "https://fast.dev/"})

		require.NoError(t, err)
		assert.Equal(t, []string{"https://slow.dev/", "https://mid.dev/", "https://fast.dev/"}, texts(got))
		assert.LessOrEqual(t, maxInFlight.Load(), int32(2))
	})

	t.Run("concurrent batch fails whole call and cancels siblings", func(t *testing.T) {
		t.Parallel()

		svc := &fetch.Service{
			Resolver: remoteResolver(),
			Guard:    allowAll(),
			Fetcher: &mock.Fetcher{FetchFn: func(ctx context.Context, target *llmstxt.Target) (*llmstxt.Content, error) {
				if target.Hostname == "bad.dev" {
					return nil, errors.New("connection reset")
				}
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return &llmstxt.Content{Text: "late"}, nil
				}
			}},
			Concurrency: 4,
		}

		start := time.Now()
		got, err := svc.FetchAll(context.Background(), []string{"https://slow.dev/", "https://bad.dev/"})

		require.Error(t, err)
		assert.Nil(t, got)
		assert.Contains(t, err.Error(), "connection reset")
		assert.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("canceled context fails a sequential batch", func(t *testing.T) {
		t.Parallel()

		svc := &fetch.Service{Resolver: remoteResolver(), Guard: allowAll(), Fetcher: echoFetcher()}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		got, err := svc.FetchAll(ctx, []string{"https://a.dev/", "https://b.dev/"})

		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, got)
	})

	t.Run("canceled context fails a concurrent batch", func(t *testing.T) {
		t.Parallel()

		svc := &fetch.Service{Resolver: remoteResolver(), Guard: allowAll(), Fetcher: echoFetcher(), Concurrency: 4}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		got, err := svc.FetchAll(ctx, []string{"https://a.dev/", "https://b.dev/", "https://c.dev/"})

		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, got)
	})

	t.Run("cancel after some fetches succeed fails a concurrent batch", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		var calls atomic.Int32
		svc := &fetch.Service{
			Resolver: remoteResolver(),
			Guard:    allowAll(),
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, target *llmstxt.Target) (*llmstxt.Content, error) {
				if calls.Add(1) == 1 {
					cancel()
				}
				return &llmstxt.Content{Text: target.Input}, nil
			}},
			Concurrency: 4,
		}

		got, err := svc.FetchAll(ctx, []string{"https://a.dev/", "https://b.dev/", "https://c.dev/"})

		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, got)
	})

	t.Run("converts HTML to markdown when configured", func(t *testing.T) {
		t.Parallel()

		var extracted, converted string
		svc := &fetch.Service{
			Resolver: remoteResolver(),
			Guard:    allowAll(),
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, target *llmstxt.Target) (*llmstxt.Content, error) {
				return &llmstxt.Content{Location: target.Input, Text: "<html><nav>menu</nav><main><h1>Hi</h1></main></html>", ContentType: "text/html; charset=utf-8"}, nil
			}},
			Extractor: &mock.Extractor{ExtractFn: func(html string) (*llmstxt.ExtractResult, error) {
				extracted = html
				return &llmstxt.ExtractResult{ContentHTML: "<h1>Hi</h1>"}, nil
			}},
			Converter: &mock.Converter{ConvertFn: func(html string) (string, error) {
				converted = html
				return "# Hi", nil
			}},
		}

		got, err := svc.FetchAll(context.Background(), []string{"https://a.dev/page"})

		require.NoError(t, err)
		assert.Contains(t, extracted, "<nav>menu</nav>")
		assert.Equal(t, "<h1>Hi</h1>", converted)
		assert.Equal(t, "# Hi", got[0].Text)
		assert.Equal(t, "text/markdown", got[0].ContentType)
		assert.Equal(t, "https://a.dev/page", got[0].Location)
	})

	t.Run("leaves non-HTML content untouched", func(t *testing.T) {
		t.Parallel()

		svc := &fetch.Service{
			Resolver: remoteResolver(),
			Guard:    allowAll(),
			Fetcher: &mock.Fetcher{FetchFn: func(context.Context, *llmstxt.Target) (*llmstxt.Content, error) {
				return &llmstxt.Content{Text: "# llms.txt", ContentType: "text/plain"}, nil
			}},
			Converter: &mock.Converter{ConvertFn: func(string) (string, error) {
				t.Fatal("converter must not run for text/plain")
				return "", nil
			}},
		}

		got, err := svc.FetchAll(context.Background(), []string{"https://a.dev/llms.txt"})

		require.NoError(t, err)
		assert.Equal(t, "# llms.txt", got[0].Text)
	})

	t.Run("conversion failure fails the fetch", func(t *testing.T) {
		t.Parallel()

		svc := &fetch.Service{
			Resolver: remoteResolver(),
			Guard:    allowAll(),
			Fetcher: &mock.Fetcher{FetchFn: func(context.Context, *llmstxt.Target) (*llmstxt.Content, error) {
				return &llmstxt.Content{Text: " ", ContentType: "text/html"}, nil
			}},
			Converter: &mock.Converter{ConvertFn: func(string) (string, error) {
				return "", llmstxt.Errorf(llmstxt.EINVALID, "empty HTML input")
			}},
		}

		_, err := svc.FetchAll(context.Background(), []string{"https://a.dev/"})

		assert.Equal(t, llmstxt.EINVALID, llmstxt.ErrorCode(err))
	})
}

func TestService_FetchAll_Integration(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok" {
			_, _ = w.Write([]byte("# good docs"))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	serverURL, err := url.Parse(server.URL)
	require.NoError(t, err)

	dir := t.TempDir()
	localPath := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(localPath, []byte("local notes"), 0644))

	newService := func(domains ...string) *fetch.Service {
		return &fetch.Service{
			Resolver: fs.NewResolver(),
			Guard:    &llmstxt.AccessPolicy{Allowlist: llmstxt.NewAllowlist(domains...)},
			Fetcher: &fetch.Router{
				Remote: llmshttp.NewFetcher(),
				Local:  fs.NewReader(),
			},
		}
	}

	t.Run("fetches remote and local sources together", func(t *testing.T) {
		t.Parallel()

		svc := newService(serverURL.Hostname())

		got, err := svc.FetchAll(context.Background(), []string{server.URL + "/ok", localPath, fs.PathToFileURL(localPath).String()})

		require.NoError(t, err)
		assert.Equal(t, []string{"# good docs", "local notes", "local notes"}, texts(got))
	})

	t.Run("404 in batch fails the whole call", func(t *testing.T) {
		t.Parallel()

		svc := newService(llmstxt.Wildcard)

		got, err := svc.FetchAll(context.Background(), []string{server.URL + "/ok", server.URL + "/missing"})

		require.Error(t, err)
		assert.Nil(t, got)
		assert.Equal(t, 404, llmstxt.ErrorStatus(err))
	})

	t.Run("host outside allowlist is denied", func(t *testing.T) {
		t.Parallel()

		svc := newService("docs.example.com")

		_, err := svc.FetchAll(context.Background(), []string{server.URL + "/ok"})

		assert.Equal(t, llmstxt.EFORBIDDEN, llmstxt.ErrorCode(err))
	})

	t.Run("missing local file reports absolute path", func(t *testing.T) {
		t.Parallel()

		svc := newService()
		missing := filepath.Join(dir, "nope.md")

		_, err := svc.FetchAll(context.Background(), []string{missing})

		require.Error(t, err)
		assert.Equal(t, llmstxt.EUNSUPPORTED, llmstxt.ErrorCode(err))
		assert.Contains(t, err.Error(), missing)
	})

	t.Run("file URL to missing file is not found", func(t *testing.T) {
		t.Parallel()

		svc := newService()
		missing := filepath.Join(dir, "gone.md")

		_, err := svc.FetchAll(context.Background(), []string{fs.PathToFileURL(missing).String()})

		require.Error(t, err)
		assert.Equal(t, llmstxt.ENOTFOUND, llmstxt.ErrorCode(err))
		assert.Contains(t, err.Error(), missing)
	})
}
