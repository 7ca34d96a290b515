// Package config defines the provisioning request, its field validators,
// and the YAML answers file used for non-interactive runs.
package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Defaults applied when the operator submits empty input.
const (
	DefaultDomain        = "example.com"
	DefaultSambaUsername = "shareuser"
)

// Request holds the validated operator-supplied parameters. It is fully
// populated and validated before any mutation step runs.
type Request struct {
	IPAddress          string `yaml:"ip_address"`
	Domain             string `yaml:"domain"`
	MySQLRootPassword  string `yaml:"mysql_root_password"`
	PHPMyAdminPassword string `yaml:"phpmyadmin_password"`
	SambaUsername      string `yaml:"samba_username"`
	SambaPassword      string `yaml:"samba_password"`
}

// ipv4Regex anchors exactly four dot-separated integer groups. Anchoring is
// what rejects inputs like "1.2.3.4.5"; range checking happens per group.
var ipv4Regex = regexp.MustCompile(`^(\d{1,3})\.(\d{1,3})\.(\d{1,3})\.(\d{1,3})$`)

// ValidateIPv4 accepts dotted-quad addresses with each octet in [0,255].
func ValidateIPv4(value string) error {
	m := ipv4Regex.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return fmt.Errorf("invalid IP address format: %q", value)
	}
	for _, group := range m[1:] {
		octet, err := strconv.Atoi(group)
		if err != nil || octet > 255 {
			return fmt.Errorf("invalid IP address octet: %q", group)
		}
	}
	return nil
}

// ValidateNonEmpty rejects blank input.
func ValidateNonEmpty(field string) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must not be empty", field)
		}
		return nil
	}
}

// FieldValidator pairs a request field with its validation function so the
// wizard and the answers-file loader share one rule table.
type FieldValidator struct {
	Name     string
	Validate func(string) error
	Value    func(*Request) string
}

// Validators returns the per-field validation table in prompt order.
func Validators() []FieldValidator {
	return []FieldValidator{
		{Name: "ip_address", Validate: ValidateIPv4, Value: func(r *Request) string { return r.IPAddress }},
		{Name: "domain", Validate: ValidateNonEmpty("domain"), Value: func(r *Request) string { return r.Domain }},
		{Name: "mysql_root_password", Validate: ValidateNonEmpty("MySQL root password"), Value: func(r *Request) string { return r.MySQLRootPassword }},
		{Name: "phpmyadmin_password", Validate: ValidateNonEmpty("phpMyAdmin password"), Value: func(r *Request) string { return r.PHPMyAdminPassword }},
		{Name: "samba_username", Validate: ValidateNonEmpty("Samba username"), Value: func(r *Request) string { return r.SambaUsername }},
		{Name: "samba_password", Validate: ValidateNonEmpty("Samba password"), Value: func(r *Request) string { return r.SambaPassword }},
	}
}

// ApplyDefaults fills fields that have defaults when the operator left them
// empty. Password fields never default.
func (r *Request) ApplyDefaults() {
	if strings.TrimSpace(r.Domain) == "" {
		r.Domain = DefaultDomain
	}
	if strings.TrimSpace(r.SambaUsername) == "" {
		r.SambaUsername = DefaultSambaUsername
	}
}

// Validate runs the whole field table against the request.
func (r *Request) Validate() error {
	for _, fv := range Validators() {
		if err := fv.Validate(fv.Value(r)); err != nil {
			return fmt.Errorf("field %s: %w", fv.Name, err)
		}
	}
	return nil
}

// Octets returns the four octets of the validated IP address.
func (r *Request) Octets() [4]string {
	parts := strings.Split(strings.TrimSpace(r.IPAddress), ".")
	var octets [4]string
	copy(octets[:], parts)
	return octets
}

// ReverseZoneName derives the in-addr.arpa zone from the first three octets
// in reverse order, e.g. 192.168.1.10 -> 1.168.192.in-addr.arpa.
func (r *Request) ReverseZoneName() string {
	o := r.Octets()
	return fmt.Sprintf("%s.%s.%s.in-addr.arpa", o[2], o[1], o[0])
}

// LastOctet returns the PTR record key for the reverse zone.
func (r *Request) LastOctet() string {
	o := r.Octets()
	return o[3]
}
