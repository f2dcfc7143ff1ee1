package response

import (
	"github.com/indigo-web/fileserve/http/mime"
	"github.com/indigo-web/fileserve/http/status"
	"github.com/indigo-web/fileserve/kv"
)

const DefaultContentType = mime.HTML

type Header = kv.Pair

// Fields is the mutable state behind the response builder. Revealed mostly
// for the serializer
type Fields struct {
	Code             status.Code
	Status           status.Status
	ContentType      mime.MIME
	TransferEncoding string
	Headers          []Header
	Body             []byte
	Attachment       Attachment
}

func (f *Fields) Clear() {
	f.Code = status.OK
	f.Status = ""
	f.ContentType = DefaultContentType
	f.TransferEncoding = ""
	f.Headers = f.Headers[:0]
	f.Body = nil
	f.Attachment = Attachment{}
}
