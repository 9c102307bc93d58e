package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeVideo    = "video/"
	MimeImage    = "image/"
	MimePDF      = "application/pdf"
	MimeText     = "text/plain"
	MimeMarkdown = "text/markdown"
)

// 学习资料允许上传的 MIME 类型前缀
var AllowedMaterialMimeTypes = []string{
	MimeVideo,
	MimePDF,
	MimeText,
	MimeMarkdown,
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)
