package sqlframe

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/koustreak/sqlframe/errs"
)

// Descriptor holds the fields a connection URL is built from.
// Which fields are required depends on the driver: file-based drivers
// (sqlite, duckdb) need only Database (a filesystem path), network drivers
// need Host, Database, User and Password. Port is always optional.
type Descriptor struct {
	Driver   string
	Database string
	User     string
	Password string
	Host     string
	Port     int
}

// fileDrivers are engines whose Database field is a filesystem path.
var fileDrivers = map[string]bool{
	"sqlite":  true,
	"sqlite3": true,
	"duckdb":  true,
}

// networkDrivers are engines reached over host/user/password credentials.
// mssql and sqlserver are accepted by the builder even though no dialect is
// wired for them; the produced URL targets an external ODBC setup.
var networkDrivers = map[string]bool{
	"postgres":   true,
	"postgresql": true,
	"mysql":      true,
	"mssql":      true,
	"sqlserver":  true,
}

// BuildURL assembles a canonical connection URL from d. It performs no I/O.
//
// File-based drivers produce a path URL, with Windows separators normalized
// and UNC share paths preserved verbatim (never percent-encoded):
//
//	BuildURL(Descriptor{Driver: "sqlite", Database: `C:\data\app.db`})
//	    → "sqlite:///C:/data/app.db"
//	BuildURL(Descriptor{Driver: "sqlite", Database: `\\server\share\app.db`})
//	    → "sqlite:////server/share/app.db"
//
// Network drivers produce the usual credentials form:
//
//	BuildURL(Descriptor{Driver: "postgres", User: "app", Password: "pw",
//	    Host: "10.0.0.5", Port: 5432, Database: "inventory"})
//	    → "postgres://app:pw@10.0.0.5:5432/inventory"
//
// The mssql driver additionally appends the ODBC driver selector expected by
// SQL Server setups. A missing required field yields a configuration error.
func BuildURL(d Descriptor) (string, error) {
	driver := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(d.Driver)), "://")
	if driver == "" {
		return "", errs.New(errs.KindConfiguration, "driver is required")
	}

	if fileDrivers[driver] {
		if d.Database == "" {
			return "", errs.Newf(errs.KindConfiguration, "%s: database path is required", driver)
		}
		path := strings.ReplaceAll(d.Database, `\`, "/")
		if strings.HasPrefix(d.Database, `\\`) {
			// UNC share: collapse the leading slashes so the scheme carries
			// exactly four, then keep the path verbatim.
			path = strings.TrimLeft(path, "/")
			return driver + ":////" + path, nil
		}
		return driver + ":///" + path, nil
	}

	if !networkDrivers[driver] {
		return "", errs.Newf(errs.KindConfiguration, "unsupported driver %q", driver)
	}

	for _, f := range []struct{ name, value string }{
		{"host", d.Host},
		{"database", d.Database},
		{"user", d.User},
		{"password", d.Password},
	} {
		if f.value == "" {
			return "", errs.Newf(errs.KindConfiguration, "%s: %s is required", driver, f.name)
		}
	}

	hostPart := d.Host
	if d.Port != 0 {
		hostPart += ":" + strconv.Itoa(d.Port)
	}

	u := fmt.Sprintf("%s://%s:%s@%s/%s", driver, d.User, d.Password, hostPart, d.Database)
	if driver == "mssql" {
		u += "?driver=ODBC+Driver+17+for+SQL+Server"
	}
	return u, nil
}

// ParseURL decomposes a canonical connection URL back into a Descriptor.
// For URLs produced by BuildURL every field round-trips, with file paths in
// their normalized forward-slash form.
func ParseURL(raw string) (Descriptor, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Descriptor{}, errs.Wrap(errs.KindConfiguration, "malformed connection url", err)
	}
	driver := strings.ToLower(u.Scheme)
	if driver == "" {
		return Descriptor{}, errs.New(errs.KindConfiguration, "connection url has no driver scheme")
	}

	if fileDrivers[driver] {
		// "scheme:///C:/p" carries the path "C:/p"; "scheme:////p" (absolute
		// unix path or a built UNC share) carries "/p". Exactly one slash
		// belongs to the scheme separator.
		path := strings.TrimPrefix(u.Path, "/")
		if path == "" {
			return Descriptor{}, errs.Newf(errs.KindConfiguration, "%s: url carries no database path", driver)
		}
		return Descriptor{Driver: driver, Database: path}, nil
	}

	d := Descriptor{
		Driver:   driver,
		Host:     u.Hostname(),
		Database: strings.TrimPrefix(u.Path, "/"),
	}
	if u.User != nil {
		d.User = u.User.Username()
		d.Password, _ = u.User.Password()
	}
	if p := u.Port(); p != "" {
		d.Port, err = strconv.Atoi(p)
		if err != nil {
			return Descriptor{}, errs.Wrap(errs.KindConfiguration, "invalid port in connection url", err)
		}
	}
	return d, nil
}
