package gradient

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Extension of gradient files inside a gradients directory.
const Extension = ".gradient"

var stopLine = regexp.MustCompile(`^([0-9]*\.?[0-9]+):\s*([0-9]*\.?[0-9]+),\s*([0-9]*\.?[0-9]+),\s*([0-9]*\.?[0-9]+)$`)

// Parse reads a gradient from lines of the form "pos: r, g, b". Lines that do
// not match are ignored. The gradient starts out black at 0 and white at 1;
// lines at these positions replace the defaults.
func Parse(name string, r io.Reader) (Gradient, error) {
	stops := []Stop{{Pos: 0}, {Pos: 1, R: 1, G: 1, B: 1}}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		m := stopLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		var values [4]float32
		for i := range values {
			v, err := strconv.ParseFloat(m[i+1], 32)
			if err != nil {
				return Gradient{}, fmt.Errorf("gradient %s: %q: %w", name, line, err)
			}
			values[i] = float32(v)
		}
		stops = append(stops, Stop{Pos: values[0], R: values[1], G: values[2], B: values[3]})
	}
	if err := scanner.Err(); err != nil {
		return Gradient{}, fmt.Errorf("gradient %s: %w", name, err)
	}

	return New(name, stops...), nil
}

// Load reads a gradient file. The gradient is named after the file without its extension.
func Load(path string) (Gradient, error) {
	f, err := os.Open(path)
	if err != nil {
		return Gradient{}, fmt.Errorf("unable to open gradient file: %w", err)
	}
	defer f.Close()

	return Parse(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), f)
}

// LoadAll loads every gradient file in dir, sorted by name.
func LoadAll(dir string) ([]Gradient, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to list gradients: %w", err)
	}

	gradients := make([]Gradient, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != Extension {
			continue
		}
		g, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		gradients = append(gradients, g)
	}

	sort.Slice(gradients, func(i, j int) bool {
		return gradients[i].Name < gradients[j].Name
	})
	return gradients, nil
}

// Find returns the gradient called name from dir. A name with a path
// separator or extension is loaded as a file.
func Find(dir string, name string) (Gradient, error) {
	if name == "" || name == Benchmark().Name {
		return Benchmark(), nil
	}
	if filepath.Ext(name) != "" || strings.ContainsRune(name, filepath.Separator) {
		return Load(name)
	}
	return Load(filepath.Join(dir, name+Extension))
}
