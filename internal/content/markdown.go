// Package content turns authored markdown into the HTML that goes out in
// newsletters: a shared pass run once per campaign and a personalization pass
// run once per recipient.
package content

import (
	"bytes"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	relativeSrcRe = regexp.MustCompile(`src="(/[^"]+)"`)
	imgTagRe      = regexp.MustCompile(`<img\b`)

	sanitizer = newSanitizer()
)

const emailImageStyle = `<img style="max-width:100%;height:auto;display:block;"`

func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	// Keep the inline sizing added by StyleImagesForEmail and nothing else.
	p.AllowStyles("max-width", "height", "width", "display", "border").OnElements("img")
	return p
}

// RenderMarkdown converts markdown to HTML with tables, strikethrough and
// autolinks. Raw HTML passes through; Sanitize runs afterwards.
func RenderMarkdown(md string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		// goldmark only fails on writer errors, which a bytes.Buffer never returns.
		return ""
	}
	return buf.String()
}

// AbsolutizeImageSrcs rewrites root-relative src attributes against baseURL.
// Already absolute values are left alone.
func AbsolutizeImageSrcs(htmlDoc, baseURL string) string {
	return relativeSrcRe.ReplaceAllStringFunc(htmlDoc, func(m string) string {
		path := relativeSrcRe.FindStringSubmatch(m)[1]
		return `src="` + baseURL + path + `"`
	})
}

// StyleImagesForEmail adds inline sizing to every <img> tag.
func StyleImagesForEmail(htmlDoc string) string {
	return imgTagRe.ReplaceAllLiteralString(htmlDoc, emailImageStyle)
}

// Sanitize strips scripts, event handlers and other active markup while
// keeping headings, emphasis, lists, tables, images and anchors.
func Sanitize(htmlDoc string) string {
	return sanitizer.Sanitize(htmlDoc)
}

// RenderShared runs the campaign-wide, non-personalized part of the pipeline.
func RenderShared(md, baseURL string) string {
	out := RenderMarkdown(md)
	out = AbsolutizeImageSrcs(out, baseURL)
	out = StyleImagesForEmail(out)
	return Sanitize(out)
}
