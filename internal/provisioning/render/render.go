// Package render produces the configuration file set for a provisioning
// request and applies it to the host with backup-before-write semantics.
package render

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/imamik/hostforge/internal/config"
)

// Fixed render inputs.
const (
	// FallbackNS is the public secondary resolver.
	FallbackNS = "8.8.8.8"

	// DocumentRoot is the web root served by the vhost and exported by the
	// file share.
	DocumentRoot = "/var/www/html"

	// WebUser owns the document root and the share contents.
	WebUser = "www-data"

	// serialSuffix is the fixed sequence counter appended to the date. It is
	// never incremented, so two runs on the same day produce the same
	// serial. Single-shot tool, known limitation.
	serialSuffix = "01"
)

// File identifiers in the rendered set.
const (
	FileResolver    = "resolver"
	FileZones       = "zones"
	FileForwardZone = "forward-zone"
	FileReverseZone = "reverse-zone"
	FileWebVhost    = "web-vhost"
	FileFileShare   = "file-share"
)

// File is one rendered configuration file.
type File struct {
	ID      string
	Path    string
	Content string
}

// Set is the full rendered configuration, in apply order.
type Set struct {
	Files []File
}

// Lookup returns the file with the given identifier.
func (s *Set) Lookup(id string) (File, bool) {
	for _, f := range s.Files {
		if f.ID == id {
			return f, true
		}
	}
	return File{}, false
}

type templateData struct {
	IPAddress       string
	Domain          string
	SambaUsername   string
	Serial          string
	ReverseZone     string
	ReverseZonePath string
	LastOctet       string
	FallbackNS      string
	DocumentRoot    string
	WebUser         string
}

var templates = template.Must(template.New("resolver").Parse(resolverTemplate))

func init() {
	template.Must(templates.New("zones").Parse(zonesTemplate))
	template.Must(templates.New("forward").Parse(forwardZoneTemplate))
	template.Must(templates.New("reverse").Parse(reverseZoneTemplate))
	template.Must(templates.New("vhost").Parse(vhostTemplate))
	template.Must(templates.New("share").Parse(shareTemplate))
}

// Serial builds the zone serial for the given date: <YYYYMMDD>01.
func Serial(now time.Time) string {
	return now.Format("20060102") + serialSuffix
}

// reverseZoneFilePath derives the reverse zone data file name from the first
// three octets in reverse order, e.g. /etc/bind/db.1.168.192.
func reverseZoneFilePath(req *config.Request) string {
	o := req.Octets()
	return fmt.Sprintf("/etc/bind/db.%s.%s.%s", o[2], o[1], o[0])
}

// Render computes the configuration set for the request. Output is
// deterministic for a fixed request and calendar date.
func Render(req *config.Request, now time.Time) (*Set, error) {
	data := templateData{
		IPAddress:       req.IPAddress,
		Domain:          req.Domain,
		SambaUsername:   req.SambaUsername,
		Serial:          Serial(now),
		ReverseZone:     req.ReverseZoneName(),
		ReverseZonePath: reverseZoneFilePath(req),
		LastOctet:       req.LastOctet(),
		FallbackNS:      FallbackNS,
		DocumentRoot:    DocumentRoot,
		WebUser:         WebUser,
	}

	targets := []struct {
		id       string
		template string
		path     string
	}{
		{FileResolver, "resolver", "/etc/resolv.conf"},
		{FileZones, "zones", "/etc/bind/named.conf.local"},
		{FileForwardZone, "forward", "/etc/bind/db." + req.Domain},
		{FileReverseZone, "reverse", data.ReverseZonePath},
		{FileWebVhost, "vhost", "/etc/apache2/sites-available/" + req.Domain + ".conf"},
		{FileFileShare, "share", "/etc/samba/smb.conf"},
	}

	set := &Set{}
	for _, t := range targets {
		var buf bytes.Buffer
		if err := templates.ExecuteTemplate(&buf, t.template, data); err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", t.id, err)
		}
		set.Files = append(set.Files, File{ID: t.id, Path: t.path, Content: buf.String()})
	}

	return set, nil
}
