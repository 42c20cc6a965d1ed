package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"unicode/utf8"

	tls "github.com/refraction-networking/utls"
)

// HTTPEngine fetches a page with a single net/http GET. TLS connections
// present a Chrome ClientHello so the request looks like the browser named
// in the User-Agent header.
type HTTPEngine struct {
	client  *http.Client
	maxBody int64
}

// chromeH1Spec is a Chrome-like TLS ClientHello with ALPN forced to http/1.1
// only. Computed once at init time and reused for every connection. When it
// cannot be built, chromeSpecErr is set and every TLS dial fails with it.
var (
	chromeH1Spec  tls.ClientHelloSpec
	chromeSpecErr error
)

func init() {
	chromeH1Spec, chromeSpecErr = http1Spec(tls.HelloChrome_Auto)
	if chromeSpecErr != nil {
		slog.Error("http_engine: build chrome tls spec", "error", chromeSpecErr)
	}
}

// http1Spec expands id into a ClientHelloSpec that offers only http/1.1,
// since http.Transport cannot speak h2 over a utls connection.
func http1Spec(id tls.ClientHelloID) (tls.ClientHelloSpec, error) {
	spec, err := tls.UTLSIdToSpec(id)
	if err != nil {
		return tls.ClientHelloSpec{}, fmt.Errorf("http_engine: tls spec for %s: %w", id.Str(), err)
	}
	for i, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			spec.Extensions[i] = alpn
			break
		}
	}
	return spec, nil
}

// NewHTTPEngine creates an HTTPEngine. Bodies larger than maxBody bytes are
// rejected; maxBody <= 0 disables the cap.
func NewHTTPEngine(maxBody int64) *HTTPEngine {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			if chromeSpecErr != nil {
				return nil, chromeSpecErr
			}
			dialer := &net.Dialer{}
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			host, _, _ := net.SplitHostPort(addr)
			tlsConn := tls.UClient(conn, &tls.Config{ServerName: host}, tls.HelloCustom)
			if err := tlsConn.ApplyPreset(&chromeH1Spec); err != nil {
				conn.Close()
				return nil, fmt.Errorf("http_engine: apply tls spec: %w", err)
			}
			if err := tlsConn.HandshakeContext(ctx); err != nil {
				conn.Close()
				return nil, err
			}
			return tlsConn, nil
		},
		ForceAttemptHTTP2: false,
		// Keeps the transport from adding Accept-Encoding; User-Agent is
		// the only header we send.
		DisableCompression: true,
	}
	return &HTTPEngine{
		client:  &http.Client{Transport: transport},
		maxBody: maxBody,
	}
}

func (e *HTTPEngine) Name() string { return "http" }

func (e *HTTPEngine) Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("http_engine: build request: %w", err)
	}
	if req.UserAgent != "" {
		httpReq.Header.Set("User-Agent", req.UserAgent)
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http_engine: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http_engine: HTTP %d for %s", resp.StatusCode, req.URL)
	}

	var body []byte
	if e.maxBody > 0 {
		body, err = io.ReadAll(io.LimitReader(resp.Body, e.maxBody+1))
		if err == nil && int64(len(body)) > e.maxBody {
			return nil, fmt.Errorf("http_engine: body exceeds %d bytes", e.maxBody)
		}
	} else {
		body, err = io.ReadAll(resp.Body)
	}
	if err != nil {
		return nil, fmt.Errorf("http_engine: read body: %w", err)
	}

	if !utf8.Valid(body) {
		return nil, fmt.Errorf("http_engine: decode body: %w", ErrInvalidEncoding)
	}

	return &FetchResult{
		HTML:       string(body),
		StatusCode: resp.StatusCode,
		FinalURL:   resp.Request.URL.String(),
		EngineName: e.Name(),
	}, nil
}
