package config

import (
	"time"
)

type (
	HeadersNumber struct {
		Default, Maximal int
	}

	HeadersSpace struct {
		Default, Maximal int
	}

	RequestLineSize struct {
		Default, Maximal int
	}
)

type (
	URI struct {
		// RequestLineSize is a shared buffer storing the method, path and protocol.
		// Setting the maximal boundary too low results in 414s for longer paths.
		RequestLineSize RequestLineSize
	}

	Headers struct {
		// Number is responsible for the headers storage size.
		// Default value is the initial capacity, Maximal is the count of headers
		// allowed in a single request
		Number HeadersNumber
		// Space limits the amount of memory occupied by request header keys and
		// values (each gets its own buffer of these bounds.)
		Space HeadersSpace
		// Default headers are included into every response implicitly, unless
		// explicitly overridden.
		Default map[string]string `test:"nullable"`
	}

	NET struct {
		// ReadBufferSize is a size of buffer in bytes which will be used to read
		// from a socket
		ReadBufferSize int
		// ReadTimeout controls the maximal lifetime of IDLE connections. If no
		// data was received in this period of time, the connection is closed.
		ReadTimeout time.Duration
	}

	HTTP struct {
		// ResponseBuffSize is the initial size of the buffer, which stores a
		// rendered response before it's written to the socket.
		ResponseBuffSize int
		// FileBuffSize defines the size of the buffer used to stream files.
		FileBuffSize int
	}

	FS struct {
		// Index is the file served on requests for a directory containing it.
		Index string
	}
)

// Config holds settings used across various parts of the server, mainly
// restrictions, limitations and pre-allocations.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to
// initialize the config manually, as zero limits reject everything.
type Config struct {
	URI     URI
	Headers Headers
	NET     NET
	HTTP    HTTP
	FS      FS
}

// Default returns the default config. The defaults are well-balanced for an
// ordinary static site, maximal values are pretty permitting.
func Default() *Config {
	return &Config{
		URI: URI{
			RequestLineSize: RequestLineSize{
				Default: 2 * 1024,
				// most web-entities limit the request line to 4-8kb, so 8kb of
				// path must be fairly enough for serving files
				Maximal: 8 * 1024,
			},
		},
		Headers: Headers{
			Number: HeadersNumber{
				Default: 10,
				Maximal: 50,
			},
			Space: HeadersSpace{
				Default: 1 * 1024,
				Maximal: 16 * 1024, // there might be extremely long cookies
			},
			Default: map[string]string{
				"Server": "fileserve",
			},
		},
		NET: NET{
			ReadBufferSize: 2 * 1024,
			ReadTimeout:    90 * time.Second,
		},
		HTTP: HTTP{
			ResponseBuffSize: 1 * 1024,
			FileBuffSize:     64 * 1024,
		},
		FS: FS{
			Index: "index.html",
		},
	}
}

// Fill fills zero-valued fields of the config with their defaults.
func Fill(original *Config) *Config {
	defaults := Default()

	original.URI.RequestLineSize.Default = customOrDefault(
		original.URI.RequestLineSize.Default, defaults.URI.RequestLineSize.Default,
	)
	original.URI.RequestLineSize.Maximal = customOrDefault(
		original.URI.RequestLineSize.Maximal, defaults.URI.RequestLineSize.Maximal,
	)
	original.Headers.Number.Default = customOrDefault(
		original.Headers.Number.Default, defaults.Headers.Number.Default,
	)
	original.Headers.Number.Maximal = customOrDefault(
		original.Headers.Number.Maximal, defaults.Headers.Number.Maximal,
	)
	original.Headers.Space.Default = customOrDefault(
		original.Headers.Space.Default, defaults.Headers.Space.Default,
	)
	original.Headers.Space.Maximal = customOrDefault(
		original.Headers.Space.Maximal, defaults.Headers.Space.Maximal,
	)
	original.NET.ReadBufferSize = customOrDefault(
		original.NET.ReadBufferSize, defaults.NET.ReadBufferSize,
	)
	original.NET.ReadTimeout = customOrDefault(
		original.NET.ReadTimeout, defaults.NET.ReadTimeout,
	)
	original.HTTP.ResponseBuffSize = customOrDefault(
		original.HTTP.ResponseBuffSize, defaults.HTTP.ResponseBuffSize,
	)
	original.HTTP.FileBuffSize = customOrDefault(
		original.HTTP.FileBuffSize, defaults.HTTP.FileBuffSize,
	)

	if original.Headers.Default == nil {
		// an explicitly empty non-nil map disables default headers
		original.Headers.Default = defaults.Headers.Default
	}

	if len(original.FS.Index) == 0 {
		original.FS.Index = defaults.FS.Index
	}

	return original
}

type number interface {
	~int | ~int64
}

func customOrDefault[T number](custom, defaultVal T) T {
	if custom == 0 {
		return defaultVal
	}

	return custom
}
