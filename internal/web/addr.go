package web

import "net"

// AdvertiseAddr resolves the address the status server is reachable at, for
// logging on a headless device. A listen address without a host is completed
// with the IP of the default route interface.
func AdvertiseAddr(listen string) string {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return listen
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		ip, err := outboundIP()
		if err != nil {
			return listen
		}
		host = ip
	}
	return net.JoinHostPort(host, port)
}

func outboundIP() (string, error) {
	// A fake outbound UDP connection reads the IP of the interface this
	// machine would use for its default route. No packets are sent.
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "", err
	}
	defer conn.Close()

	return conn.LocalAddr().(*net.UDPAddr).IP.String(), nil
}
