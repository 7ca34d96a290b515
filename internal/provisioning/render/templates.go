package render

// Config file templates. Rendered with text/template against templateData;
// zone files keep the cadence values fixed so two same-day renders are
// byte-identical.

const resolverTemplate = `search {{.Domain}}
nameserver {{.IPAddress}}
nameserver {{.FallbackNS}}
`

const zonesTemplate = `zone "{{.Domain}}" {
    type master;
    file "/etc/bind/db.{{.Domain}}";
};

zone "{{.ReverseZone}}" {
    type master;
    file "{{.ReverseZonePath}}";
};
`

const forwardZoneTemplate = `$TTL    604800
@       IN      SOA     ns.{{.Domain}}. admin.{{.Domain}}. (
                        {{.Serial}}      ; Serial
                        604800          ; Refresh
                        86400           ; Retry
                        2419200         ; Expire
                        604800 )        ; Negative Cache TTL
;
@       IN      NS      ns.{{.Domain}}.
@       IN      MX      10 mail.{{.Domain}}.
@       IN      A       {{.IPAddress}}
ns      IN      A       {{.IPAddress}}
www     IN      CNAME   ns
mail    IN      CNAME   ns
ftp     IN      CNAME   ns
ntp     IN      CNAME   ns
proxy   IN      CNAME   ns
`

const reverseZoneTemplate = `$TTL    604800
@       IN      SOA     ns.{{.Domain}}. admin.{{.Domain}}. (
                        {{.Serial}}      ; Serial
                        604800          ; Refresh
                        86400           ; Retry
                        2419200         ; Expire
                        604800 )        ; Negative Cache TTL
;
@       IN      NS      ns.{{.Domain}}.
{{.LastOctet}}      IN      PTR     ns.{{.Domain}}.
`

const vhostTemplate = `<VirtualHost {{.IPAddress}}:80>
    ServerName {{.Domain}}
    ServerAlias www.{{.Domain}}
    ServerAdmin admin@{{.Domain}}
    DocumentRoot {{.DocumentRoot}}

    <Directory {{.DocumentRoot}}>
        Options Indexes FollowSymLinks
        AllowOverride All
        Require all granted
    </Directory>

    ErrorLog ${APACHE_LOG_DIR}/{{.Domain}}-error.log
    CustomLog ${APACHE_LOG_DIR}/{{.Domain}}-access.log combined
</VirtualHost>
`

const shareTemplate = `[global]
   workgroup = WORKGROUP
   server string = {{.Domain}} file server
   security = user
   map to guest = bad user

[webshare]
   path = {{.DocumentRoot}}
   valid users = {{.SambaUsername}}
   guest ok = no
   writable = yes
   browsable = yes
   force user = {{.WebUser}}
   force group = {{.WebUser}}
   create mask = 0644
   directory mask = 0755
`
