// Package report renders an interp.Parse result for human or machine
// consumption: the plain four-line form the CLI's single-string command is
// required to print, a repr-based debug dump of the full Findings value,
// and a JSON line for batch/log-pipeline consumption.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/gofrs/uuid"

	"github.com/haldor-security/log4scan/interp"
)

// Result bundles one scan's output and findings together with a fresh
// correlation id, so that each batch output line can be told apart without
// the core interpreter needing to know anything about concurrency or
// logging. It does not carry the scanned input, a file name or a line number.
type Result struct {
	ID           string          `json:"id"`
	Substituted  string          `json:"substituted"`
	SawJndi      bool            `json:"saw_jndi"`
	SawEnv       bool            `json:"saw_env"`
	SawMain      bool            `json:"saw_main"`
	RecursionHit bool            `json:"recursion_limit_hit"`
	Handlers     []string        `json:"handlers,omitempty"`
	findings     interp.Findings `json:"-"`
}

// NewResult assigns a fresh correlation id and bundles up a parse outcome.
func NewResult(substituted string, findings interp.Findings) Result {
	handlers := findings.Handlers()
	tags := make([]string, len(handlers))
	for i, h := range handlers {
		tags[i] = h.String()
	}

	return Result{
		ID:           uuid.Must(uuid.NewV4()).String(),
		Substituted:  substituted,
		SawJndi:      findings.SawJndi,
		SawEnv:       findings.SawEnv,
		SawMain:      findings.SawMain,
		RecursionHit: findings.HitRecursionLimit,
		Handlers:     tags,
		findings:     findings,
	}
}

// Plain renders the exact four-line form spec.md §6 requires of the
// single-string CLI command.
func (r Result) Plain() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Substituted: %s\n", r.Substituted)
	fmt.Fprintf(&b, "JNDI: %t\n", r.SawJndi)
	fmt.Fprintf(&b, "ENV: %t\n", r.SawEnv)
	fmt.Fprintf(&b, "Recursion Limit: %t\n", r.RecursionHit)
	return b.String()
}

// Debug renders a repr-formatted dump of the full Findings value, including
// the ordered handler-tag list, for the CLI's --debug flag.
func (r Result) Debug() string {
	return repr.String(r.findings)
}

// JSONLine renders the result as a single compact JSON line, for batch mode.
func (r Result) JSONLine() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
