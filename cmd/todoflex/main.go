package main

import (
	"os"
	"strings"

	"todoflex/internal/cli"
)

func isTaskID(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "task-") && len(s) > len("task-")
}

// rewriteDirectTaskLookupArgs makes `todoflex <task-id>` behave like
// `todoflex tasks show <task-id>`. Cobra treats the first positional token as a
// subcommand, so argv is rewritten before parsing. Persistent flags may come
// first, so the scan looks for the first positional rather than argv[1].
func rewriteDirectTaskLookupArgs(argv []string) []string {
	valueFlags := map[string]bool{
		"--dir":      true,
		"--format":   true,
		"--log-file": true,
	}

	showAt := func(i int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "tasks", "show")
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		switch {
		case a == "":
			continue
		case a == "--":
			if i+1 < len(argv) && isTaskID(argv[i+1]) {
				return showAt(i + 1)
			}
			return argv
		case strings.HasPrefix(a, "-"):
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		case isTaskID(a):
			return showAt(i)
		default:
			return argv
		}
	}
	return argv
}

func main() {
	os.Args = rewriteDirectTaskLookupArgs(os.Args)

	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
