package http1

import (
	"io"
	"log"
	"strconv"

	"github.com/indigo-web/fileserve/http"
	"github.com/indigo-web/fileserve/http/method"
	"github.com/indigo-web/fileserve/http/proto"
	"github.com/indigo-web/fileserve/http/status"
	"github.com/indigo-web/fileserve/internal/httpchars"
	"github.com/indigo-web/fileserve/internal/response"
	"github.com/indigo-web/fileserve/internal/transport"
	"github.com/indigo-web/utils/strcomp"
)

const (
	contentType      = "Content-Type: "
	transferEncoding = "Transfer-Encoding: "
	contentLength    = "Content-Length: "
)

// minimalFileBuffSize defines the minimal size of the file buffer. In case
// it's less, it'll be set to this value and a debug log will be printed
const minimalFileBuffSize = 16

var chunkedFinalizer = []byte("0\r\n\r\n")

type Serializer struct {
	buff []byte
	// fileBuff isn't allocated until needed in order to save memory in cases,
	// where no files are being sent
	fileBuff       []byte
	fileBuffSize   int
	defaultHeaders defaultHeaders
}

func NewSerializer(buff []byte, fileBuffSize int, defHdrs map[string]string) *Serializer {
	if fileBuffSize < minimalFileBuffSize {
		log.Printf("misconfiguration: file buffer size (Config.HTTP.FileBuffSize) is set to %d, "+
			"however minimal possible value is %d. Setting it hard to %d\n",
			fileBuffSize, minimalFileBuffSize, minimalFileBuffSize,
		)

		fileBuffSize = minimalFileBuffSize
	}

	return &Serializer{
		buff:           buff[:0],
		fileBuffSize:   fileBuffSize,
		defaultHeaders: processDefaultHeaders(defHdrs),
	}
}

// Write writes the response, keeping in mind the difference between 1.0 and
// 1.1 HTTP versions
func (d *Serializer) Write(
	protocol proto.Proto, request *http.Request, resp *http.Response, writer transport.Writer,
) (err error) {
	defer d.clear()

	d.renderProtocol(protocol)
	fields := resp.Reveal()
	d.renderResponseLine(fields)

	if fields.Attachment.Content() != nil {
		return d.sendAttachment(protocol, request, resp, writer)
	}

	d.renderHeaders(fields)
	d.renderContentLength(int64(len(fields.Body)))
	d.crlf()

	if request.Method != method.HEAD {
		// HEAD request responses must be similar to GET request responses, except
		// the forced lack of body, even if Content-Length is specified
		d.buff = append(d.buff, fields.Body...)
	}

	err = writer.Write(d.buff)

	if !isKeepAlive(protocol, request) {
		err = status.ErrCloseConnection
	}

	return err
}

func (d *Serializer) renderResponseLine(fields *response.Fields) {
	codeStatus := status.CodeStatus(fields.Code)

	if fields.Status == "" && codeStatus != "" {
		d.buff = append(d.buff, codeStatus...)
		return
	}

	// in case we have a custom response status text or unknown code, fall back
	// to the slow path
	d.buff = strconv.AppendInt(d.buff, int64(fields.Code), 10)
	d.sp()
	statusText := fields.Status
	if statusText == "" {
		statusText = status.Text(fields.Code)
	}
	d.buff = append(d.buff, statusText...)
	d.crlf()
}

func (d *Serializer) renderHeaders(fields *response.Fields) {
	for _, header := range fields.Headers {
		d.renderHeader(header)
		d.defaultHeaders.Exclude(header.Key)
	}

	for _, header := range d.defaultHeaders {
		if header.Excluded {
			continue
		}

		d.buff = append(d.buff, header.Full...)
	}

	// Content-Type is compulsory. Transfer-Encoding is not
	d.renderKnownHeader(contentType, fields.ContentType)
	if len(fields.TransferEncoding) > 0 {
		d.renderKnownHeader(transferEncoding, fields.TransferEncoding)
	}
}

// sendAttachment encapsulates all the logic related to streaming arbitrary
// io.Reader implementations
func (d *Serializer) sendAttachment(
	protocol proto.Proto, request *http.Request, resp *http.Response, writer transport.Writer,
) (err error) {
	fields := resp.Reveal()
	size := fields.Attachment.Size()

	if size > 0 {
		d.renderHeaders(fields)
		d.renderContentLength(int64(size))
	} else {
		d.renderHeaders(resp.TransferEncoding("chunked").Reveal())
	}

	d.crlf()

	if err = writer.Write(d.buff); err != nil {
		fields.Attachment.Close()
		return status.ErrCloseConnection
	}

	if request.Method == method.HEAD {
		// HEAD requests MUST NOT contain response bodies. They are just like
		// GET requests, but without the response entities. The keep-alive
		// rules still apply to them
		fields.Attachment.Close()

		if !isKeepAlive(protocol, request) {
			return status.ErrCloseConnection
		}

		return nil
	}

	if len(d.fileBuff) == 0 {
		d.fileBuff = make([]byte, d.fileBuffSize)
	}

	if size > 0 {
		err = d.writePlainBody(fields.Attachment.Content(), writer)
	} else {
		err = d.writeChunkedBody(fields.Attachment.Content(), writer)
	}

	fields.Attachment.Close()

	if err == nil && !isKeepAlive(protocol, request) {
		err = status.ErrCloseConnection
	}

	return err
}

func (d *Serializer) writePlainBody(r io.Reader, writer transport.Writer) error {
	for {
		n, err := r.Read(d.fileBuff)

		if n > 0 {
			if err := writer.Write(d.fileBuff[:n]); err != nil {
				return status.ErrCloseConnection
			}
		}

		switch err {
		case nil:
		case io.EOF:
			return nil
		default:
			return status.ErrCloseConnection
		}
	}
}

func (d *Serializer) writeChunkedBody(r io.Reader, writer transport.Writer) error {
	const (
		hexValueOffset = 8
		crlfSize       = 1 /* CR */ + 1 /* LF */
		buffOffset     = hexValueOffset + crlfSize
	)

	for {
		n, err := r.Read(d.fileBuff[buffOffset : len(d.fileBuff)-crlfSize])

		if n > 0 {
			// first rewrite the beginning of the fileBuff to contain the
			// hexadecimal length
			buff := strconv.AppendUint(d.fileBuff[:0], uint64(n), 16)
			// now we can determine the length of the hexadecimal value and make
			// an offset for it
			blankSpace := hexValueOffset - len(buff)
			copy(d.fileBuff[blankSpace:], buff)
			copy(d.fileBuff[hexValueOffset:], httpchars.CRLF)
			copy(d.fileBuff[buffOffset+n:], httpchars.CRLF)

			if err := writer.Write(d.fileBuff[blankSpace : buffOffset+n+crlfSize]); err != nil {
				return status.ErrCloseConnection
			}
		}

		switch err {
		case nil:
		case io.EOF:
			return writer.Write(chunkedFinalizer)
		default:
			return status.ErrCloseConnection
		}
	}
}

// renderHeader renders the header into the buffer, appending CRLF in the end
func (d *Serializer) renderHeader(header response.Header) {
	d.buff = append(d.buff, header.Key...)
	d.colonsp()
	d.buff = append(d.buff, header.Value...)
	d.crlf()
}

func (d *Serializer) renderContentLength(value int64) {
	d.buff = strconv.AppendInt(append(d.buff, contentLength...), value, 10)
	d.crlf()
}

func (d *Serializer) renderKnownHeader(key, value string) {
	d.buff = append(d.buff, key...)
	d.buff = append(d.buff, value...)
	d.crlf()
}

func (d *Serializer) renderProtocol(protocol proto.Proto) {
	d.buff = append(d.buff, proto.ToBytes(protocol)...)
}

func (d *Serializer) sp() {
	d.buff = append(d.buff, ' ')
}

func (d *Serializer) colonsp() {
	d.buff = append(d.buff, httpchars.COLONSP...)
}

func (d *Serializer) crlf() {
	d.buff = append(d.buff, httpchars.CRLF...)
}

func (d *Serializer) clear() {
	d.buff = d.buff[:0]
	d.defaultHeaders.Reset()
}

func isKeepAlive(protocol proto.Proto, req *http.Request) bool {
	if req.HasBody() {
		// the server never reads request bodies, so the connection has to be
		// closed to not treat the body as the next request
		return false
	}

	switch protocol {
	case proto.HTTP10:
		return strcomp.EqualFold(req.Headers.Value("connection"), "keep-alive")
	case proto.HTTP11:
		// in case of HTTP/1.1, keep-alive may be only disabled
		return !strcomp.EqualFold(req.Headers.Value("connection"), "close")
	default:
		// don't know what this is, but act like everything is okay
		return true
	}
}

func processDefaultHeaders(hdrs map[string]string) defaultHeaders {
	processed := make(defaultHeaders, 0, len(hdrs))

	for key, value := range hdrs {
		full := renderHeader(key, value)
		processed = append(processed, defaultHeader{
			// we let the GC release all the values of the map, as here we're
			// using only the brand-new line without keeping the original string
			Key:  full[:len(key)],
			Full: full,
		})
	}

	return processed
}

func renderHeader(key, value string) string {
	return key + httpchars.COLONSP + value + "\r\n"
}

type defaultHeader struct {
	Excluded bool
	Key      string
	Full     string
}

type defaultHeaders []defaultHeader

func (d defaultHeaders) Exclude(key string) {
	for i, header := range d {
		if strcomp.EqualFold(header.Key, key) {
			header.Excluded = true
			d[i] = header
			return
		}
	}
}

func (d defaultHeaders) Reset() {
	for i := range d {
		d[i].Excluded = false
	}
}
