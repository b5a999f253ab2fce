// Command hash-generator prints bcrypt digests for passwords, using the same
// cost as the user directory. With --username it prints an INSERT statement
// that seeds the first user, since every /users route needs a signed-in caller.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/phrazzld/notes-api/internal/domain"
	"github.com/phrazzld/notes-api/internal/service/auth"
)

func main() {
	username := pflag.String("username", "", "print an INSERT seeding this user instead of bare hashes")
	roles := pflag.StringSlice("roles", []string{string(domain.RoleAdmin)}, "roles for the seeded user")
	pflag.Parse()

	passwords := pflag.Args()
	if len(passwords) == 0 {
		passwords = readLines(os.Stdin)
	}

	if err := run(os.Stdout, auth.NewBcryptHasher(), *username, *roles, passwords); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(out io.Writer, hasher auth.PasswordHasher, username string, roles, passwords []string) error {
	if len(passwords) == 0 {
		return fmt.Errorf("no password given")
	}

	if username != "" {
		if len(passwords) != 1 {
			return fmt.Errorf("seeding %s takes exactly one password", username)
		}
		if err := domain.ValidateRoles(domain.RolesFromStrings(roles)); err != nil {
			return err
		}
		digest, err := hasher.Hash(passwords[0])
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		_, err = fmt.Fprintln(out, seedStatement(uuid.New(), username, digest, roles))
		return err
	}

	for _, password := range passwords {
		digest, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		if _, err := fmt.Fprintln(out, digest); err != nil {
			return err
		}
	}
	return nil
}

func seedStatement(id uuid.UUID, username, digest string, roles []string) string {
	quoted := make([]string, len(roles))
	for i, r := range roles {
		quoted[i] = sqlString(r)
	}
	return fmt.Sprintf(
		"INSERT INTO users (id, username, hashed_password, roles) VALUES (%s, %s, %s, ARRAY[%s]);",
		sqlString(id.String()), sqlString(username), sqlString(digest), strings.Join(quoted, ", "))
}

func sqlString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func readLines(r io.Reader) []string {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
