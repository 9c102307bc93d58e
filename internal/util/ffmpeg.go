package util

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ProbeDuration 使用 ffprobe 读取视频时长（秒）
func ProbeDuration(videoPath string) (float64, error) {
	out, err := ffmpeg.Probe(videoPath)
	if err != nil {
		return 0, fmt.Errorf("获取视频信息失败: %w", err)
	}

	var result struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		return 0, fmt.Errorf("解析视频信息失败: %w", err)
	}

	return strconv.ParseFloat(result.Format.Duration, 64)
}

// FormatDuration 把秒数格式化为 mm:ss 或 h:mm:ss，用作资料的展示时长
func FormatDuration(seconds float64) string {
	total := int(math.Round(seconds))
	if total < 0 {
		total = 0
	}
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
