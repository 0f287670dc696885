package completion

import (
	"os"
	"strings"
)

// CommandCompleter completes slash commands and, behind a "!" prefix,
// executables found on PATH.
type CommandCompleter struct {
	SlashCommands []string
}

// NewCommandCompleter creates a new command completer
func NewCommandCompleter(slashCommands []string) *CommandCompleter {
	return &CommandCompleter{
		SlashCommands: slashCommands,
	}
}

// DoComplete implements the completion logic for the current input line
func (c *CommandCompleter) DoComplete(line []rune, pos int) (newLine [][]rune, length int) {
	lineStr := string(line[:pos])

	// "!" runs a shell command directly; complete against PATH
	if len(lineStr) >= 1 && lineStr[0] == '!' {
		return c.completeShellCommands(lineStr[1:])
	}

	// Slash command completion
	if len(lineStr) > 0 && lineStr[0] == '/' {
		prefix := lineStr[1:]

		var candidates [][]rune
		for _, cmd := range c.SlashCommands {
			name := strings.TrimPrefix(cmd, "/")
			if strings.HasPrefix(name, prefix) {
				candidates = append(candidates, []rune(name))
			}
		}

		if len(candidates) == 0 {
			return nil, 0
		}

		return candidates, len(prefix)
	}

	return nil, 0
}

// completeShellCommands handles shell command auto-completion against PATH
func (c *CommandCompleter) completeShellCommands(cmdPrefix string) (newLine [][]rune, length int) {
	pathEnv := os.Getenv("PATH")
	if pathEnv == "" {
		return nil, 0
	}

	paths := strings.Split(pathEnv, ":")
	var matchingCommands []string

	for _, path := range paths {
		files, err := os.ReadDir(path)
		if err != nil {
			continue
		}

		for _, file := range files {
			if file.IsDir() {
				continue
			}

			fileName := file.Name()
			if strings.HasPrefix(fileName, cmdPrefix) {
				matchingCommands = append(matchingCommands, fileName)
			}

			// Cap the candidate list to keep the menu readable
			if len(matchingCommands) > 100 {
				break
			}
		}

		if len(matchingCommands) > 100 {
			break
		}
	}

	if len(matchingCommands) == 0 {
		return nil, 0
	}

	// Single match: append the untyped suffix
	if len(matchingCommands) == 1 {
		suffix := matchingCommands[0][len(cmdPrefix):]
		return [][]rune{[]rune(suffix)}, 0
	}

	// Extend to the longest common prefix when possible
	commonPrefix := matchingCommands[0]
	for _, cmd := range matchingCommands[1:] {
		i := 0
		for i < len(commonPrefix) && i < len(cmd) && commonPrefix[i] == cmd[i] {
			i++
		}
		commonPrefix = commonPrefix[:i]
	}

	if len(commonPrefix) > len(cmdPrefix) {
		suffix := commonPrefix[len(cmdPrefix):]
		return [][]rune{[]rune(suffix)}, 0
	}

	var candidates [][]rune
	for _, cmd := range matchingCommands {
		candidates = append(candidates, []rune(cmd))
	}

	return candidates, len(cmdPrefix)
}
