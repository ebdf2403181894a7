package engine

import "github.com/google/shlex"

// Split breaks a command line into tokens. Single and double quotes group
// words and a backslash escapes the next character.
func Split(line string) ([]string, error) {
	return shlex.Split(line)
}
