// Package site decides whether the engine may run on a page and extracts the
// page context (company, role, applicant tracking platform) that answer
// generation needs.
package site

import (
	"strings"

	"github.com/jonathan/job-autofill/internal/dom"
)

// Hosts returns the hostnames checked against the whitelist: the page's own
// and, inside an iframe, the embedding page's.
func Hosts(doc *dom.Document) []string {
	var hosts []string
	if h := doc.Hostname(); h != "" {
		hosts = append(hosts, h)
	}
	if doc.InFrame {
		if ref := doc.ReferrerHostname(); ref != "" {
			hosts = append(hosts, ref)
		}
	}
	return hosts
}

// Allowed reports whether any host equals or overlaps a whitelist entry. An
// entry overlaps a host when either contains the other.
func Allowed(whitelist []string, hosts ...string) bool {
	for _, entry := range whitelist {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		for _, host := range hosts {
			host = strings.ToLower(host)
			if host == "" {
				continue
			}
			if host == entry || strings.Contains(host, entry) || strings.Contains(entry, host) {
				return true
			}
		}
	}
	return false
}

// AllowedDocument applies Allowed to the document's hosts.
func AllowedDocument(whitelist []string, doc *dom.Document) bool {
	return Allowed(whitelist, Hosts(doc)...)
}
