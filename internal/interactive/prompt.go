// Package interactive reads per-step operator decisions from stdin.
package interactive

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Answer is the operator's decision for one step.
type Answer int

const (
	// Yes runs the step.
	Yes Answer = iota
	// Skip moves on without running the step or touching history.
	Skip
	// No aborts the whole run with the interrupted outcome.
	No
)

// Ask prompts on stdout and reads the answer from stdin, re-prompting until
// one of y/s/n is given.
func Ask(msg string) Answer {
	return AskReader(msg, os.Stdin)
}

// AskReader is Ask with an injectable reader for tests. EOF counts as "no":
// with nobody left to answer, stopping is the only safe choice.
func AskReader(msg string, r io.Reader) Answer {
	br := bufio.NewReader(r)
	for {
		fmt.Printf("%s [y]es/[s]kip/[n]o: ", msg)
		line, err := br.ReadString('\n')
		switch strings.TrimSpace(strings.ToLower(line)) {
		case "y", "yes":
			return Yes
		case "s", "skip":
			return Skip
		case "n", "no":
			return No
		}
		if err != nil {
			return No
		}
	}
}
