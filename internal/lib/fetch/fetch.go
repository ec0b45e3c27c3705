package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrTimeout reports that the request deadline elapsed before the vendor
// responded. Callers use errors.Is to tell a slow vendor from an
// unreachable one.
var ErrTimeout = errors.New("request timed out")

// Do issues req through client with a hard deadline. The request context is
// replaced by a derived one carrying the timeout; the derived context is
// cancelled on the error path immediately and on the success path when the
// response body is closed, so no timer outlives the call.
func Do(ctx context.Context, client *http.Client, req *http.Request, timeout time.Duration) (*http.Response, error) {
	const op = "lib.fetch.Do"

	ctx, cancel := context.WithTimeout(ctx, timeout)

	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		cancel()

		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s: %w after %s", op, ErrTimeout, timeout)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Reading the body needs the context alive; tie cancel to body close.
	resp.Body = &cancelingBody{body: resp.Body, cancel: cancel}

	return resp, nil
}

type cancelingBody struct {
	body   io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelingBody) Read(p []byte) (int, error) { return b.body.Read(p) }

func (b *cancelingBody) Close() error {
	b.cancel()
	return b.body.Close()
}
