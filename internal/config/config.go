package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// File holds the parsed contents of a weather.conf file. Pointer fields
// distinguish "not set" from a legitimate zero value.
type File struct {
	Latitude      *float64
	Longitude     *float64
	Units         string
	CacheMaxRange *float64
	CacheMaxAge   *float64
	Token         string
}

// ParseError reports a weather.conf entry that could not be interpreted.
// It is distinct from I/O failures: the file was readable, its content is not.
type ParseError struct {
	Path  string
	Key   string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: invalid %s value %q", e.Path, e.Key, e.Value)
}

var validUnits = map[string]bool{
	"metric":   true,
	"imperial": true,
	"standard": true,
}

// CandidatePaths returns config search paths in priority order: the XDG
// location, the plain ~/.config fallback, and the legacy flat file. An
// environment with $XDG_CONFIG_HOME but no resolvable home directory still
// gets its XDG path.
func CandidatePaths() []string {
	var paths []string
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg != "" {
		paths = append(paths, filepath.Join(xdg, "weather", "weather.conf"))
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return paths
	}
	return append(paths,
		filepath.Join(home, ".config", "weather", "weather.conf"),
		filepath.Join(home, ".config", "weather.conf"),
	)
}

// Locate returns the first existing candidate config file. An absent file is
// an expected condition, not an error.
func Locate() (string, bool) {
	for _, p := range CandidatePaths() {
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

// Load locates and parses the config file. When no file exists an empty File
// is returned.
func Load() (*File, error) {
	path, ok := Locate()
	if !ok {
		return &File{}, nil
	}
	return ParseFile(path)
}

// ParseFile loads and parses a weather.conf file. An existing file that
// cannot be opened surfaces the underlying I/O error; malformed values yield
// a *ParseError.
func ParseFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	defer fh.Close()
	return parse(path, fh)
}

// assignment is one KEY=VALUE line with the key upper-cased and surrounding
// quotes stripped from the value.
type assignment struct {
	Key   string
	Value string
}

// parseAssignments turns conf text into an ordered list of assignments.
// Blank lines, # comments and lines without '=' are skipped. Order is
// preserved so that later assignments win, including across key aliases.
func parseAssignments(r io.Reader) []assignment {
	var out []assignment
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		out = append(out, assignment{
			Key:   strings.ToUpper(strings.TrimSpace(key)),
			Value: unquote(strings.TrimSpace(value)),
		})
	}
	return out
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

func parse(path string, r io.Reader) (*File, error) {
	f := &File{}
	for _, a := range parseAssignments(r) {
		switch a.Key {
		case "LAT", "LATITUDE":
			v, err := strconv.ParseFloat(a.Value, 64)
			if err != nil {
				return nil, &ParseError{Path: path, Key: a.Key, Value: a.Value}
			}
			f.Latitude = &v
		case "LON", "LONGITUDE":
			v, err := strconv.ParseFloat(a.Value, 64)
			if err != nil {
				return nil, &ParseError{Path: path, Key: a.Key, Value: a.Value}
			}
			f.Longitude = &v
		case "UNITS":
			if a.Value == "" {
				continue
			}
			u := strings.ToLower(a.Value)
			if !validUnits[u] {
				return nil, &ParseError{Path: path, Key: a.Key, Value: a.Value}
			}
			f.Units = u
		case "CACHE_MAX_RANGE":
			v, err := strconv.ParseFloat(a.Value, 64)
			if err != nil {
				return nil, &ParseError{Path: path, Key: a.Key, Value: a.Value}
			}
			f.CacheMaxRange = &v
		case "CACHE_MAX_AGE":
			v, err := strconv.ParseFloat(a.Value, 64)
			if err != nil {
				return nil, &ParseError{Path: path, Key: a.Key, Value: a.Value}
			}
			f.CacheMaxAge = &v
		case "OWM_TOKEN", "TOKEN": // TOKEN accepted for legacy configs
			if a.Value != "" {
				f.Token = a.Value
			}
		}
	}
	return f, nil
}
