package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/hashicorp/go-version"
)

// ErrUnsupportedVersion is returned when the server is older than the
// adapter supports.
var ErrUnsupportedVersion = errors.New("unsupported server version")

var leadingVersion = regexp.MustCompile(`^\d+(\.\d+)*`)

// CheckVersion compares a server-reported version string against minimum.
// Vendor suffixes such as "-MariaDB" or " (Debian ...)" are ignored.
func CheckVersion(reported, minimum string) error {
	raw := leadingVersion.FindString(reported)
	if raw == "" {
		return fmt.Errorf("invalid version format: %q", reported)
	}
	current, err := version.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("invalid version format: %w", err)
	}
	required, err := version.NewVersion(minimum)
	if err != nil {
		return fmt.Errorf("invalid minimum version: %w", err)
	}
	if current.LessThan(required) {
		return fmt.Errorf("%w: %s is older than %s", ErrUnsupportedVersion, raw, minimum)
	}
	return nil
}

// QueryVersion runs query, which must return the version as one string,
// and checks it against minimum.
func QueryVersion(ctx context.Context, db *sql.DB, query, minimum string) (string, error) {
	var reported string
	if err := db.QueryRowContext(ctx, query).Scan(&reported); err != nil {
		return "", fmt.Errorf("failed to read server version: %w", err)
	}
	if err := CheckVersion(reported, minimum); err != nil {
		return "", err
	}
	return reported, nil
}
