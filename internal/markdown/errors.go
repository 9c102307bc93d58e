package markdown

import (
	"errors"
	"fmt"
)

// ContentFetchError 拉取内容失败的统一接口，错误面板需要展示失败的 URL
type ContentFetchError interface {
	error
	FailedURL() string
}

// FetchError 网络错误或非 2xx 状态码
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error     { return e.Err }
func (e *FetchError) FailedURL() string { return e.URL }

// NotFoundError 返回的是包含 404 标记的 HTML 页面，而不是文本资料
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string     { return fmt.Sprintf("content not found: %s", e.URL) }
func (e *NotFoundError) FailedURL() string { return e.URL }

// EmptyContentError 去除空白后内容过短
type EmptyContentError struct {
	URL    string
	Length int
}

func (e *EmptyContentError) Error() string {
	return fmt.Sprintf("content at %s is empty or too short (%d chars)", e.URL, e.Length)
}
func (e *EmptyContentError) FailedURL() string { return e.URL }

// AsContentFetchError 取出错误链中的 ContentFetchError
func AsContentFetchError(err error) (ContentFetchError, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf, true
	}
	var ec *EmptyContentError
	if errors.As(err, &ec) {
		return ec, true
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
