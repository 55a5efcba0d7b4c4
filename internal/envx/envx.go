// Package envx reads prefixed settings from a dotenv file and the process
// environment. The environment wins over the file.
package envx

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/diplomadesk/internal/flagx"
)

// DefaultFile is read when no -e/-env flag names another file. It may be
// absent.
const DefaultFile = ".env"

// Values maps setting names, with the prefix removed, to raw values.
type Values map[string]string

// Load collects every variable starting with prefix. The dotenv file is
// taken from -e/-env in args, falling back to DefaultFile.
func Load(args []string, prefix string) (Values, error) {
	path := flagx.EnvFilePath(args)
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	file, err := godotenv.Read(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
		}
		file = nil
	}

	out := Values{}
	for k, v := range file {
		if name, ok := strings.CutPrefix(k, prefix); ok {
			out[name] = v
		}
	}
	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		if name, ok := strings.CutPrefix(k, prefix); ok {
			out[name] = v
		}
	}
	return out, nil
}

// String copies key into dst when set.
func (v Values) String(key string, dst *string) {
	if s, ok := v[key]; ok && s != "" {
		*dst = s
	}
}

// Duration parses key as a Go duration ("90s") or, if it is a bare integer,
// as that many units.
func (v Values) Duration(key string, unit time.Duration, dst *time.Duration) error {
	s, ok := v[key]
	if !ok || s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		*dst = time.Duration(n) * unit
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}
