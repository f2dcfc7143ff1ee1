package address

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const DefaultHost = "0.0.0.0"

type Address struct {
	Host string
	Port uint16
}

// Parse splits an address of a form "host:port" apart. The host may be omitted,
// in which case the listener binds all the interfaces
func Parse(addr string) (Address, error) {
	colon := strings.LastIndexByte(addr, ':')
	if colon == -1 {
		return Address{}, errors.New("no port given")
	}

	host := addr[:colon]
	if len(host) == 0 {
		host = DefaultHost
	}

	port, err := strconv.Atoi(addr[colon+1:])
	if err != nil || port < 0 || port > 65535 {
		return Address{}, fmt.Errorf("invalid port: %s", addr[colon+1:])
	}

	return Address{Host: host, Port: uint16(port)}, nil
}

func (a Address) SetPort(port uint16) Address {
	a.Port = port
	return a
}

func (a Address) IsLocalhost() bool {
	return strings.EqualFold(a.Host, "localhost") || a.Host == "127.0.0.1"
}

func (a Address) String() string {
	return a.Host + ":" + strconv.Itoa(int(a.Port))
}
