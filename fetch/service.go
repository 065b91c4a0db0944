package fetch

import (
	"context"
	"fmt"
	"mime"

	"github.com/fwojciec/llmstxt"
	"golang.org/x/sync/errgroup"
)

var _ llmstxt.BatchFetcher = (*Service)(nil)

// Service runs the resolve, check and fetch pipeline for each requested
// location.
type Service struct {
	Resolver llmstxt.Resolver
	Guard    llmstxt.Guard
	Fetcher  llmstxt.Fetcher

	// Converter, when set, turns HTML responses into Markdown. Extractor,
	// when also set, strips page chrome first.
	Converter llmstxt.Converter
	Extractor llmstxt.Extractor

	// Concurrency bounds parallel fetches within one batch. Values below 2
	// fetch strictly in sequence.
	Concurrency int
}

// FetchAll implements llmstxt.BatchFetcher. The first failing location
// aborts the batch: later locations are not attempted (or are canceled when
// running concurrently) and no partial results are returned.
func (s *Service) FetchAll(ctx context.Context, inputs []string) ([]*llmstxt.Content, error) {
	if len(inputs) == 0 {
		return nil, llmstxt.Errorf(llmstxt.EINVALID, "at least one URL or path is required")
	}

	results := make([]*llmstxt.Content, len(inputs))

	if s.Concurrency < 2 || len(inputs) == 1 {
		for i, input := range inputs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			content, err := s.Fetch(ctx, input)
			if err != nil {
				return nil, err
			}
			results[i] = content
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Concurrency)

	for i, input := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			content, err := s.Fetch(gctx, input)
			if err != nil {
				return err
			}
			results[i] = content
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A canceled caller stops the loop without any fetch failing.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Fetch runs the pipeline for a single location. Errors name the location.
func (s *Service) Fetch(ctx context.Context, input string) (*llmstxt.Content, error) {
	target := s.Resolver.Resolve(input)
	if target.Kind == llmstxt.TargetUnsupported {
		return nil, &llmstxt.Error{
			Code:    llmstxt.EUNSUPPORTED,
			Message: fmt.Sprintf("for URL %s: %s", input, target.Reason),
		}
	}

	if err := s.Guard.CheckAccess(target); err != nil {
		return nil, wrap(input, err)
	}

	content, err := s.Fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, wrap(input, err)
	}

	if s.Converter != nil && isHTML(content.ContentType) {
		if content, err = s.toMarkdown(content); err != nil {
			return nil, wrap(input, err)
		}
	}

	return content, nil
}

func (s *Service) toMarkdown(content *llmstxt.Content) (*llmstxt.Content, error) {
	html := content.Text
	if s.Extractor != nil {
		result, err := s.Extractor.Extract(html)
		if err != nil {
			return nil, err
		}
		html = result.ContentHTML
	}

	markdown, err := s.Converter.Convert(html)
	if err != nil {
		return nil, err
	}

	return &llmstxt.Content{
		Location:    content.Location,
		Text:        markdown,
		ContentType: "text/markdown",
	}, nil
}

func wrap(input string, err error) error {
	return fmt.Errorf("for URL %s: %w", input, err)
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
