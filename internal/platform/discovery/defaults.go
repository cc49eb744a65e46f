// Package discovery centralizes internal service-discovery conventions.
package discovery

import (
	"strconv"
	"strings"
)

const (
	// ServiceTranslate is the translation HTTP service identity.
	ServiceTranslate = "translate"
	// ServiceSigns is the sign catalog HTTP service identity.
	ServiceSigns = "signs"
	// ServicePhrases is the phrase catalog HTTP service identity.
	ServicePhrases = "phrases"
)

var httpPorts = map[string]int{
	ServiceTranslate: 8000,
	ServiceSigns:     8001,
	ServicePhrases:   8002,
}

// DefaultHTTPAddr returns the documented local HTTP address for a service.
func DefaultHTTPAddr(service string) string {
	return defaultAddr(strings.TrimSpace(service), httpPorts)
}

// DefaultListenAddr returns the conventional listen address for a service,
// bound on every interface.
func DefaultListenAddr(service string) string {
	port := httpPorts[strings.TrimSpace(service)]
	if port <= 0 {
		return ""
	}
	return ":" + strconv.Itoa(port)
}

// DefaultHTTPPort returns the conventional listen port for a service, or 0.
func DefaultHTTPPort(service string) int {
	return httpPorts[strings.TrimSpace(service)]
}

// OrDefaultHTTPAddr returns value when set, otherwise the service convention.
func OrDefaultHTTPAddr(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	return DefaultHTTPAddr(service)
}

// OrDefaultHTTPBaseURL returns value when set, otherwise the documented
// http://127.0.0.1:<port> default for the service.
func OrDefaultHTTPBaseURL(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	addr := DefaultHTTPAddr(service)
	if addr == "" {
		return ""
	}
	return "http://" + addr
}

func defaultAddr(service string, ports map[string]int) string {
	port, ok := ports[service]
	if !ok || port <= 0 {
		return ""
	}
	return "127.0.0.1:" + strconv.Itoa(port)
}
