package agent

import (
	"fmt"
	"sort"
	"strings"
)

// SummarizeStep renders one transcript step as a single display line, used
// by the live transcript while a turn runs and by turn history afterwards.
func SummarizeStep(s Step) string {
	status := "ok"
	if !s.Result.OK {
		status = string(s.Result.ErrKind)
	}
	args := summarizeArgs(s.Call.Arguments)
	if args == "" {
		return fmt.Sprintf("%s [%s]", s.Call.Name, status)
	}
	return fmt.Sprintf("%s(%s) [%s]", s.Call.Name, args, status)
}

func summarizeArgs(args map[string]any) string {
	if len(args) == 0 {
		return ""
	}
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, args[k]))
	}
	return strings.Join(parts, ", ")
}
