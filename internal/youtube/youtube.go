// Package youtube recognises YouTube links and builds embeddable player URLs.
package youtube

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/riverfjs/mdlite-go/internal/media"
	"github.com/riverfjs/mdlite-go/internal/types"
)

var (
	linkRe    = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.|m\.)?(?:youtube\.com|youtu\.be)/\S*$`)
	videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	secondsRe = regexp.MustCompile(`^(?:0|[1-9][0-9]*)$`)
)

// IsYouTubeURL reports whether s is a single bare URL on a YouTube host.
func IsYouTubeURL(s string) bool {
	return linkRe.MatchString(s)
}

func parseURL(raw string) (*url.URL, error) {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	return url.Parse(raw)
}

// ExtractVideoID 提取 11 位视频 id
//
// 支持 youtu.be/<id>、youtube.com/watch?v=<id>、/embed/、/shorts/、/live/、/v/。
func ExtractVideoID(raw string) (string, bool) {
	u, err := parseURL(raw)
	if err != nil {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")

	var id string
	switch host {
	case "youtu.be":
		id, _, _ = strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	case "youtube.com":
		if u.Path == "/watch" || u.Path == "/watch/" {
			id = u.Query().Get("v")
			break
		}
		for _, prefix := range []string{"/embed/", "/shorts/", "/live/", "/v/"} {
			if rest, ok := strings.CutPrefix(u.Path, prefix); ok {
				id, _, _ = strings.Cut(rest, "/")
				break
			}
		}
	}
	if !videoIDRe.MatchString(id) {
		return "", false
	}
	return id, true
}

// parseSeconds accepts only bare decimal seconds: no sign, no leading zeros.
func parseSeconds(v string) (int, bool) {
	if !secondsRe.MatchString(v) {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// EmbedURL 构建可嵌入播放器 URL
//
// 起始时间取 t 或 start，结束时间取 end，只在值为合法非负整数时转发；
// 非法或缺失的值直接省略，不默认为 0。
func EmbedURL(raw string, base string) (string, bool) {
	id, ok := ExtractVideoID(raw)
	if !ok {
		return "", false
	}
	u, err := parseURL(raw)
	if err != nil {
		return "", false
	}
	q := u.Query()

	params := make([]string, 0, 2)
	for _, key := range []string{"t", "start"} {
		if secs, ok := parseSeconds(q.Get(key)); ok {
			params = append(params, "start="+strconv.Itoa(secs))
			break
		}
	}
	if secs, ok := parseSeconds(q.Get("end")); ok {
		params = append(params, "end="+strconv.Itoa(secs))
	}

	out := base + id
	if len(params) > 0 {
		out += "?" + strings.Join(params, "&")
	}
	return out, true
}

// Parse builds the Video for a recognised link.
func Parse(raw string, base string) (*types.Video, bool) {
	embed, ok := EmbedURL(raw, base)
	if !ok {
		return nil, false
	}
	id, _ := ExtractVideoID(raw)
	return &types.Video{ID: id, URL: raw, EmbedURL: embed}, true
}

// ThumbnailURL 返回视频封面图地址
func ThumbnailURL(base string, id string) string {
	return base + id + "/hqdefault.jpg"
}

// FetchThumbnail downloads and validates the thumbnail of a video.
func FetchThumbnail(ctx context.Context, base string, id string, client *http.Client) ([]byte, media.Info, error) {
	return media.Fetch(ctx, ThumbnailURL(base, id), client)
}
