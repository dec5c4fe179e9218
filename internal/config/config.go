// Package config loads CameraHub connection profiles from an ini file in
// the user's home directory, creating them interactively when missing.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/term"
)

// DefaultServer is offered when a new profile is created.
const DefaultServer = "https://camerahub.info/api"

// Profile holds one server connection.
type Profile struct {
	Server   string
	Username string
	Password string
}

// DefaultPath returns ~/camerahub.ini.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, "camerahub.ini"), nil
}

// Load reads the named profile from the ini file at path. A missing file
// or section triggers an interactive bootstrap on the given streams and
// the result is persisted before being returned.
func Load(path, profile string, in io.Reader, out io.Writer) (Profile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Profile{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	if !v.IsSet(profile + ".server") {
		p, err := createProfile(profile, in, out)
		if err != nil {
			return Profile{}, err
		}
		v.Set(profile+".server", p.Server)
		v.Set(profile+".username", p.Username)
		v.Set(profile+".password", p.Password)
		if err := v.WriteConfigAs(path); err != nil {
			return Profile{}, fmt.Errorf("writing config %s: %w", path, err)
		}
		return p, nil
	}

	return Profile{
		Server:   v.GetString(profile + ".server"),
		Username: v.GetString(profile + ".username"),
		Password: v.GetString(profile + ".password"),
	}, nil
}

// createProfile prompts for the three settings of a new profile.
func createProfile(profile string, in io.Reader, out io.Writer) (Profile, error) {
	r := bufio.NewReader(in)

	fmt.Fprintf(out, "Enter CameraHub server for profile %q (default %s): ", profile, DefaultServer)
	server, err := readLine(r)
	if err != nil {
		return Profile{}, err
	}
	if server == "" {
		server = DefaultServer
	}

	fmt.Fprintf(out, "Enter CameraHub username for %s: ", server)
	username, err := readLine(r)
	if err != nil {
		return Profile{}, err
	}

	fmt.Fprintf(out, "Enter CameraHub password for %s: ", server)
	password, err := readPassword(r, out)
	if err != nil {
		return Profile{}, err
	}

	return Profile{Server: server, Username: username, Password: password}, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword suppresses echo when stdin is a terminal; otherwise it
// falls back to a plain line read so scripted input still works.
func readPassword(r *bufio.Reader, out io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return readLine(r)
}
