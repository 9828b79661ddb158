// Package dvccfg reads and edits the line-oriented DVC configuration file
// (.dvc/config). It only understands the subset of the format the
// bootstrapper cares about: section headers and url entries of remote
// sections. Every other line is carried through opaque and untouched, since
// the dvc tool owns the rest of the file.
package dvccfg

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Remote is one configured DVC remote.
type Remote struct {
	Name string
	URL  string
}

// FindURL scans config lines for the first entry of the form
// `url = <bucketBase>...` and returns the URL, which is the third
// whitespace-delimited token of the matching line. The second return value
// reports whether such a line was found.
func FindURL(lines []string, bucketBase string) (string, bool) {
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 3 || fields[0] != "url" || fields[1] != "=" {
			continue
		}
		if strings.HasPrefix(fields[2], bucketBase) {
			return fields[2], true
		}
	}
	return "", false
}

// Remotes lists all remotes declared in the config lines, in file order.
// A remote section without a url entry yields a Remote with an empty URL.
func Remotes(lines []string) []Remote {
	var (
		remotes []Remote
		current = -1
	)
	for _, line := range lines {
		if section, ok := sectionName(line); ok {
			if name, isRemote := remoteSection(section); isRemote {
				remotes = append(remotes, Remote{Name: name})
				current = len(remotes) - 1
			} else {
				current = -1
			}
			continue
		}
		if current < 0 {
			continue
		}
		if k, v, ok := keyValue(line); ok && k == "url" {
			remotes[current].URL = v
		}
	}
	return remotes
}

// SetRemoteURL returns a copy of the config lines where the named remote's
// url entry is set to url. An existing url line is rewritten in place,
// keeping its indentation; a remote section without one gets the entry
// inserted right after its header; a missing section is appended at the end.
// No other line is modified.
func SetRemoteURL(lines []string, name, url string) []string {
	out := make([]string, 0, len(lines)+2)
	inTarget := false
	done := false
	for _, line := range lines {
		if section, ok := sectionName(line); ok {
			if inTarget && !done {
				// leaving the target section without having seen a url entry
				out = append(out, "    url = "+url)
				done = true
			}
			rname, isRemote := remoteSection(section)
			inTarget = isRemote && rname == name
			out = append(out, line)
			continue
		}
		if inTarget && !done {
			if k, _, ok := keyValue(line); ok && k == "url" {
				out = append(out, indentOf(line)+"url = "+url)
				done = true
				continue
			}
		}
		out = append(out, line)
	}
	if !done {
		if !inTarget {
			out = append(out, `['remote "`+name+`"']`)
		}
		out = append(out, "    url = "+url)
	}
	return out
}

// Fresh returns the lines of a brand-new config declaring the named remote
// and making it the checkout's default, the way `dvc remote add -d` would.
func Fresh(name, url string) []string {
	return []string{
		"[core]",
		"    remote = " + name,
		`['remote "` + name + `"']`,
		"    url = " + url,
	}
}

// Load reads the config file into lines. A missing file is not an error:
// it loads as no lines at all.
func Load(fs afero.Fs, path string) ([]string, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "read config %q", path)
	}
	if len(b) == 0 {
		return nil, nil
	}
	return strings.Split(strings.TrimRight(string(b), "\n"), "\n"), nil
}

// Save writes the config lines back, newline-terminated.
func Save(fs afero.Fs, path string, lines []string) error {
	data := strings.Join(lines, "\n") + "\n"
	if err := afero.WriteFile(fs, path, []byte(data), 0644); err != nil {
		return errors.Wrapf(err, "write config %q", path)
	}
	return nil
}

func sectionName(line string) (string, bool) {
	s := strings.TrimSpace(line)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return "", false
	}
	return strings.Trim(s[1:len(s)-1], `'"`), true
}

// remoteSection extracts the remote name out of a section title such as
// `remote "storage"`.
func remoteSection(section string) (string, bool) {
	if !strings.HasPrefix(section, "remote") {
		return "", false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(section, "remote"))
	if rest == "" {
		return "", false
	}
	return strings.Trim(rest, `'"`), true
}

func keyValue(line string) (string, string, bool) {
	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", "", false
	}
	k := strings.TrimSpace(line[:idx])
	v := strings.TrimSpace(line[idx+1:])
	if k == "" {
		return "", "", false
	}
	return k, v, true
}

func indentOf(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
