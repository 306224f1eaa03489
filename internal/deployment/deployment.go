// Package deployment decides which product variant the target installation
// is configured as. Steps declare the deployments they apply to; the queue
// builder uses this answer to filter them.
package deployment

import (
	"bufio"
	"fmt"
	"os"
	"regexp"

	"github.com/pressplay21/katello-installer-legacy/internal/status"
)

// Known deployment identifiers.
const (
	Katello = "katello"
	Headpin = "headpin"
)

// headpinAssignment matches a configure-file line selecting one of the
// alternate deployment identifiers. "sam" installs are headpin underneath.
var headpinAssignment = regexp.MustCompile(`^\s*deployment\s*=\s*(headpin|sam)\s*$`)

// Detect returns the active deployment. A non-empty override wins without
// touching the filesystem. Otherwise configPath is scanned for a deployment
// assignment; an unreadable file is fatal with the deployment-detection exit
// code because nothing downstream can be filtered without the answer.
func Detect(override string, configPath string) (string, error) {
	if override != "" {
		return override, nil
	}

	f, err := os.Open(configPath)
	if err != nil {
		return "", status.Wrap(status.DeploymentError, fmt.Sprintf("detect deployment from %s", configPath), err)
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if headpinAssignment.MatchString(sc.Text()) {
			return Headpin, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", status.Wrap(status.DeploymentError, fmt.Sprintf("detect deployment from %s", configPath), err)
	}
	return Katello, nil
}
