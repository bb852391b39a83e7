package plan

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/easycal/easycal/internal/log"
	"github.com/easycal/easycal/internal/planner"
)

// encodeAttachments produces data URLs for every attachment that still
// points at a local file. Encodings run concurrently and are joined before
// the request is dispatched.
func encodeAttachments(attachments []planner.Attachment) []planner.Attachment {
	if len(attachments) == 0 {
		return attachments
	}

	out := make([]planner.Attachment, len(attachments))
	var wg sync.WaitGroup
	for i, att := range attachments {
		wg.Add(1)
		go func(i int, att planner.Attachment) {
			defer wg.Done()
			out[i] = encodeAttachment(att)
		}(i, att)
	}
	wg.Wait()
	return out
}

// encodeAttachment reads the file behind the attachment and fills in its
// data URL. Failures leave the attachment as-is; it then degrades to
// metadata text like any non-image attachment.
func encodeAttachment(att planner.Attachment) planner.Attachment {
	if att.DataURL != "" || att.Path == "" {
		return att
	}

	data, err := os.ReadFile(att.Path)
	if err != nil {
		log.Error("failed to read attachment", err, "path", att.Path)
		return att
	}

	mimeType := att.MIMEType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	att.DataURL = "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
	if att.Size == 0 {
		att.Size = int64(len(data))
	}
	return att
}

// withAttachmentContext appends attachment metadata to the message text
// for providers that cannot receive the files themselves.
func withAttachmentContext(content string, attachments []planner.Attachment) string {
	if len(attachments) == 0 {
		return content
	}

	var b strings.Builder
	b.WriteString(content)
	b.WriteString("\n\nAttached files:\n")
	for i, att := range attachments {
		mimeType := att.MIMEType
		if mimeType == "" {
			mimeType = "unknown"
		}
		fmt.Fprintf(&b, "%d. %s (%s, %.1fKB)\n", i+1, att.Name, mimeType, float64(att.Size)/1024)
	}
	return strings.TrimRight(b.String(), "\n")
}
