// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"
	"io"
	"strings"
)

// PrintList writes the commands starting with prefix and their synopsis.
func (c *Commands) PrintList(w io.Writer, prefix string) {
	count := 0
	for _, name := range c.List() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		cmd := (*c)[name]
		fmt.Fprintf(w, "  %-8s %-28s %s\n", name, cmd.Usage, cmd.Short)
		count++
	}
	if prefix != "" {
		fmt.Fprintf(w, "%v commands beginning with %q\n", count, prefix)
	}
}

func PrintList(w io.Writer, prefix string) {
	commands.PrintList(w, prefix)
}
