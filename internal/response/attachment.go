package response

import "io"

// Attachment is a wrapper around an arbitrary io.Reader. If the size is
// unknown (<=0), the content will be streamed with chunked transfer encoding
type Attachment struct {
	content io.Reader
	size    int
}

func NewAttachment(content io.Reader, size int) Attachment {
	return Attachment{
		content: content,
		size:    size,
	}
}

func (a Attachment) Content() io.Reader {
	return a.content
}

func (a Attachment) Size() int {
	return a.size
}

func (a Attachment) Close() {
	if closer, ok := a.content.(io.Closer); ok {
		_ = closer.Close()
	}
}
