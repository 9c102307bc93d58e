package markdown

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/tracing"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultMinLength = 10

// ErrDisallowedAddress 目标解析到回环、内网或链路本地地址
var ErrDisallowedAddress = errors.New("content host resolves to a disallowed address")

type Loader struct {
	client       *resty.Client
	minLength    int
	allowPrivate bool
}

type LoaderOption func(*Loader)

// AllowPrivateHosts 允许访问内网地址，仅用于本地开发和测试
func AllowPrivateHosts() LoaderOption {
	return func(l *Loader) { l.allowPrivate = true }
}

func NewLoader(timeout time.Duration, minLength int, opts ...LoaderOption) *Loader {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	l := &Loader{minLength: minLength}
	for _, opt := range opts {
		opt(l)
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "text/markdown, text/plain;q=0.9, */*;q=0.1")
	if !l.allowPrivate {
		client.SetTransport(guardedTransport())
	}
	l.client = client
	return l
}

// guardedTransport 在建立连接时检查实际解析出的 IP，重定向和 DNS 重绑定同样受限
func guardedTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
		Control: func(network, address string, _ syscall.RawConn) error {
			host, _, err := net.SplitHostPort(address)
			if err != nil {
				return err
			}
			ip := net.ParseIP(host)
			if ip == nil || disallowedIP(ip) {
				return fmt.Errorf("%w: %s", ErrDisallowedAddress, host)
			}
			return nil
		},
	}
	t := http.DefaultTransport.(*http.Transport).Clone()
	// 经代理时检查的是代理地址而不是目标地址
	t.Proxy = nil
	t.DialContext = dialer.DialContext
	return t
}

func disallowedIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() ||
		ip.IsMulticast()
}

// Load 拉取文本资料。判定顺序：HTML 404 页面 -> 非 2xx -> 内容过短
func (l *Loader) Load(ctx context.Context, url string) (string, error) {
	ctx, span := tracing.Tracer.Start(ctx, "markdown.Load")
	defer span.End()
	span.SetAttributes(attribute.String("content.url", url))

	text, err := l.load(ctx, url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		monitoring.MarkdownFetches.WithLabelValues(outcome(err)).Inc()
		return "", err
	}
	monitoring.MarkdownFetches.WithLabelValues("ok").Inc()
	return text, nil
}

func (l *Loader) load(ctx context.Context, url string) (string, error) {
	resp, err := l.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}

	body := resp.String()
	if isHTMLNotFound(body) {
		return "", &NotFoundError{URL: url}
	}
	if !resp.IsSuccess() {
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode()}
	}

	trimmed := strings.TrimSpace(body)
	if n := utf8.RuneCountInString(trimmed); n < l.minLength {
		return "", &EmptyContentError{URL: url, Length: n}
	}
	return body, nil
}

// isHTMLNotFound 静态站点对不存在的文件常返回一个 HTML 404 页面
func isHTMLNotFound(body string) bool {
	head := strings.ToLower(strings.TrimSpace(body))
	if !strings.HasPrefix(head, "<!doctype html") && !strings.HasPrefix(head, "<html") {
		return false
	}
	return strings.Contains(head, "404")
}

func outcome(err error) string {
	if errors.Is(err, ErrDisallowedAddress) {
		return "blocked"
	}
	switch err.(type) {
	case *NotFoundError:
		return "not_found"
	case *EmptyContentError:
		return "empty"
	default:
		return "fetch_error"
	}
}
