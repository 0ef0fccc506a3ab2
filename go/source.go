package scare

import (
	"io/ioutil"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// LoadSource reads a newline delimited program and strips ';' comments.
func LoadSource(path string) ([]string, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading source")
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if i := strings.Index(line, ";"); i >= 0 {
			line = line[:i]
		}
		out = append(out, line)
	}
	return out, nil
}

func SaveSource(path string, lines []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating source file")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "closing source file")
		}
	}()
	_, err = f.WriteString(strings.Join(lines, "\n") + "\n")
	return errors.Wrap(err, "writing source")
}

// Load replaces the program with the contents of path.
func (s *Session) Load(path string) error {
	lines, err := LoadSource(path)
	if err != nil {
		return err
	}
	s.SetLines(lines)
	return nil
}

func (s *Session) Save(path string) error {
	return SaveSource(path, s.lines)
}
