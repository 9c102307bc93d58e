package util

import (
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DetectMimeType 按文件内容识别 MIME，并与允许的前缀或完整类型比对
func DetectMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	mt, err := mimetype.DetectReader(reader)
	if err != nil {
		return "", err
	}

	// text/plain; charset=utf-8 之类带参数的只比较主体部分
	detected := strings.TrimSpace(strings.SplitN(mt.String(), ";", 2)[0])
	for _, allowed := range allowedTypes {
		if strings.HasPrefix(detected, allowed) || mt.Is(allowed) {
			return detected, nil
		}
	}

	return detected, ErrInvalidFileType
}

func IsVideo(mimeType string) bool {
	return strings.HasPrefix(mimeType, MimeVideo) || mimeType == "application/x-mpegURL"
}
